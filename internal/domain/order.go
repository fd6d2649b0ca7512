package domain

import (
	"math"
	"time"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCanceled  OrderStatus = "canceled"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCOD          PaymentMethod = "COD"
)

// Shipping insurance premium model: fixed 0.2% rate plus a fixed admin fee.
const (
	insuranceRate     = 0.002
	insuranceAdminFee = 2000
)

type Order struct {
	ID       uint64
	OrderUID string
	UserID   uint64
	StoreID  uint64

	Status        OrderStatus
	PaymentStatus PaymentStatus
	PaymentMethod PaymentMethod

	ShippingCost     int
	ShippingCashback int
	ServiceFee       int
	AdditionalCost   int
	CODValue         int

	CourierCode  string
	ShippingType string

	OriginRO           int
	OriginAddress      string
	DestinationRO      int
	DestinationAddress string

	// Filled by the settlement webhook once the logistics order exists.
	ShipmentOrderID *string
	ShipmentOrderNo *string

	IsArchived  bool
	DeliveredAt *time.Time
	CanceledAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []OrderItem
}

// OrderItem snapshots the product name and price at order time, so later
// catalog changes never affect an existing order.
type OrderItem struct {
	ID           uint64
	OrderID      uint64
	ProductID    uint64
	ProductName  string
	ProductPrice float64
	Qty          int

	Product *Product
}

func (i *OrderItem) Subtotal() float64 {
	return i.ProductPrice * float64(i.Qty)
}

func (o *Order) ItemsTotal() float64 {
	total := 0.0
	for i := range o.Items {
		total += o.Items[i].Subtotal()
	}
	return total
}

// InsuranceValue returns the shipping insurance premium, rounded to two
// decimals. Orders with no item value carry no insurance.
func (o *Order) InsuranceValue() float64 {
	totalItemValue := o.ItemsTotal()
	if totalItemValue <= 0 {
		return 0
	}

	premium := float64(int64(totalItemValue))*insuranceRate + insuranceAdminFee
	return math.Round(premium*100) / 100
}

// GrandTotal truncates to a whole rupiah amount.
func (o *Order) GrandTotal() int {
	total := float64(int64(o.ItemsTotal())) +
		float64(o.ShippingCost) -
		float64(o.ShippingCashback) +
		o.InsuranceValue()
	return int(total)
}

// Validate enforces the order lifecycle invariant and must be called before
// every persist: an unpaid non-COD order may only be pending.
func (o *Order) Validate() error {
	if o.PaymentStatus == PaymentUnpaid &&
		o.PaymentMethod != MethodCOD &&
		o.Status != StatusPending {
		return ErrOrderStateConflict
	}
	return nil
}

// NormalizeCOD keeps cod_value consistent with the payment method.
func (o *Order) NormalizeCOD() {
	if o.PaymentMethod != MethodCOD {
		o.CODValue = 0
		return
	}
	o.CODValue = o.GrandTotal()
}

// NextPaymentStatus maps a gateway notification onto the payment state
// machine. Combinations outside the map leave the status unchanged.
func NextPaymentStatus(current PaymentStatus, transactionStatus, fraudStatus string) PaymentStatus {
	switch transactionStatus {
	case "settlement", "capture":
		if fraudStatus == "accept" {
			return PaymentPaid
		}
	case "deny", "cancel", "expire":
		return PaymentFailed
	case "refund":
		return PaymentRefunded
	}
	return current
}
