package domain

import "time"

type OrderEvent struct {
	OrderUID      string    `json:"order_uid"`
	UserID        uint64    `json:"user_id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	GrandTotal    int       `json:"grand_total"`
	CourierCode   string    `json:"courier_code"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type OrderEventPublisher interface {
	PublishOrder(event OrderEvent) error
}
