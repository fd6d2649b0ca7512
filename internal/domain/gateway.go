package domain

import "context"

// ShippingRateProvider quotes shipping costs for a shipment. No retry is
// built in; the caller decides.
type ShippingRateProvider interface {
	GetDomesticCost(ctx context.Context, req QuoteRequest) ([]ShippingQuote, error)
}

// ShipmentOrderInput is the full order document the logistics API needs to
// open a shipment order.
type ShipmentOrderInput struct {
	Order    *Order
	Store    *Store
	Customer *User
}

type ShipmentRef struct {
	OrderID string
	OrderNo string
}

type ShipmentOrderProvider interface {
	CreateShipmentOrder(ctx context.Context, input ShipmentOrderInput) (ShipmentRef, error)
}

// PaymentItemLine is one line of a gateway transaction. Gross amount is the
// sum of price×qty over all lines; the webhook signature is derived from it
// gateway-side, so the two computations must stay consistent.
type PaymentItemLine struct {
	ID    string
	Name  string
	Price int
	Qty   int
}

type CustomerDetails struct {
	FirstName string
	Email     string
	Phone     string
}

type PaymentTransactionRequest struct {
	OrderUID    string
	GrossAmount int
	Items       []PaymentItemLine
	Customer    CustomerDetails
}

type PaymentGateway interface {
	// CreateTransaction mints a payment token for the order's totals.
	CreateTransaction(ctx context.Context, req PaymentTransactionRequest) (string, error)

	// VerifySignature authenticates an inbound webhook against the shared
	// server key. This is the sole trust boundary for mutating an order
	// from the outside.
	VerifySignature(orderUID, statusCode, grossAmount, signature string) bool
}

// PaymentNotification is the gateway webhook payload. Optional fields decode
// to their zero value rather than failing.
type PaymentNotification struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	StatusCode        string `json:"status_code"`
	SettlementTime    string `json:"settlement_time"`
	PaymentType       string `json:"payment_type"`
	OrderID           string `json:"order_id"`
	MerchantID        string `json:"merchant_id"`
	GrossAmount       string `json:"gross_amount"`
	FraudStatus       string `json:"fraud_status"`
	Currency          string `json:"currency"`
	SignatureKey      string `json:"signature_key"`
}
