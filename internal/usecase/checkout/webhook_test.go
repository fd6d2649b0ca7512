package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokoniaga/order-service/internal/domain"
)

func seedPendingOrder(env *testEnv) *domain.Order {
	order := &domain.Order{
		ID:            1,
		OrderUID:      "uid-1",
		UserID:        testUserID,
		StoreID:       1,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentUnpaid,
		PaymentMethod: domain.MethodBankTransfer,
		ShippingCost:  15000,
		CourierCode:   "jne",
		ShippingType:  "REG",
		Items: []domain.OrderItem{
			{
				OrderID: 1, ProductID: 7,
				ProductName: "Kopi Arabika 500g", ProductPrice: 120000, Qty: 3,
				Product: &domain.Product{ID: 7, Name: "Kopi Arabika 500g", Weight: 550, Stock: 50},
			},
		},
	}
	env.orders.orders[order.OrderUID] = order
	env.orders.products[7] = &domain.Product{ID: 7, Name: "Kopi Arabika 500g", Stock: 50}
	return order
}

func settlementBody(transactionStatus, fraudStatus string) []byte {
	return []byte(`{
		"order_id": "uid-1",
		"status_code": "200",
		"gross_amount": "377810.00",
		"transaction_status": "` + transactionStatus + `",
		"fraud_status": "` + fraudStatus + `",
		"signature_key": "sig"
	}`)
}

func TestProcessPaymentNotification(t *testing.T) {
	t.Run("malformed payload", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.usecase.ProcessPaymentNotification(context.Background(), []byte(`{`))
		assert.ErrorIs(t, err, domain.ErrInvalidPayload)

		_, err = env.usecase.ProcessPaymentNotification(context.Background(), []byte(`{"order_id":"uid-1"}`))
		assert.ErrorIs(t, err, domain.ErrInvalidPayload)
	})

	t.Run("bad signature leaves the order untouched", func(t *testing.T) {
		env := newTestEnv()
		seedCatalog(env)
		seedPendingOrder(env)
		env.gateway.valid = false

		_, err := env.usecase.ProcessPaymentNotification(context.Background(), settlementBody("settlement", "accept"))
		assert.ErrorIs(t, err, domain.ErrInvalidSignature)

		assert.Equal(t, domain.PaymentUnpaid, env.orders.orders["uid-1"].PaymentStatus)
		assert.Equal(t, 50, env.orders.products[7].Stock)
	})

	t.Run("unknown order", func(t *testing.T) {
		env := newTestEnv()
		seedCatalog(env)

		_, err := env.usecase.ProcessPaymentNotification(context.Background(), settlementBody("settlement", "accept"))
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	})

	t.Run("settlement pays the order, opens a shipment and decrements stock", func(t *testing.T) {
		env := newTestEnv()
		seedCatalog(env)
		seedPendingOrder(env)
		env.shipments.ref = domain.ShipmentRef{OrderID: "98765", OrderNo: "KOM-2025-0001"}

		outcome, err := env.usecase.ProcessPaymentNotification(context.Background(), settlementBody("settlement", "accept"))
		require.NoError(t, err)
		assert.Equal(t, OutcomeSettled, outcome)

		order := env.orders.orders["uid-1"]
		assert.Equal(t, domain.PaymentPaid, order.PaymentStatus)
		require.NotNil(t, order.ShipmentOrderID)
		assert.Equal(t, "98765", *order.ShipmentOrderID)
		require.NotNil(t, order.ShipmentOrderNo)
		assert.Equal(t, "KOM-2025-0001", *order.ShipmentOrderNo)

		assert.Equal(t, 47, env.orders.products[7].Stock)

		assert.Equal(t, 1, env.shipments.calls)
		assert.Equal(t, "Toko Niaga", env.shipments.lastInput.Store.BrandName)
		assert.Equal(t, "budi", env.shipments.lastInput.Customer.Username)
	})

	t.Run("accepted capture settles too", func(t *testing.T) {
		env := newTestEnv()
		seedCatalog(env)
		seedPendingOrder(env)
		env.shipments.ref = domain.ShipmentRef{OrderID: "98765", OrderNo: "KOM-2025-0001"}

		outcome, err := env.usecase.ProcessPaymentNotification(context.Background(), settlementBody("capture", "accept"))
		require.NoError(t, err)
		assert.Equal(t, OutcomeSettled, outcome)
	})

	t.Run("deny marks the order failed without side effects", func(t *testing.T) {
		env := newTestEnv()
		seedCatalog(env)
		seedPendingOrder(env)

		outcome, err := env.usecase.ProcessPaymentNotification(context.Background(), settlementBody("deny", ""))
		require.NoError(t, err)
		assert.Equal(t, OutcomeNotCompleted, outcome)

		assert.Equal(t, domain.PaymentFailed, env.orders.orders["uid-1"].PaymentStatus)
		assert.Equal(t, 0, env.shipments.calls)
		assert.Equal(t, 50, env.orders.products[7].Stock)
	})

	t.Run("unrecognized status changes nothing", func(t *testing.T) {
		env := newTestEnv()
		seedCatalog(env)
		seedPendingOrder(env)

		outcome, err := env.usecase.ProcessPaymentNotification(context.Background(), settlementBody("pending", ""))
		require.NoError(t, err)
		assert.Equal(t, OutcomeNotCompleted, outcome)
		assert.Equal(t, domain.PaymentUnpaid, env.orders.orders["uid-1"].PaymentStatus)
	})

	t.Run("replayed settlement is acknowledged once", func(t *testing.T) {
		env := newTestEnv()
		seedCatalog(env)
		seedPendingOrder(env)
		env.shipments.ref = domain.ShipmentRef{OrderID: "98765", OrderNo: "KOM-2025-0001"}

		_, err := env.usecase.ProcessPaymentNotification(context.Background(), settlementBody("settlement", "accept"))
		require.NoError(t, err)

		outcome, err := env.usecase.ProcessPaymentNotification(context.Background(), settlementBody("settlement", "accept"))
		require.NoError(t, err)
		assert.Equal(t, OutcomeAlreadyProcessed, outcome)

		// one settlement, one decrement
		assert.Equal(t, 1, env.shipments.calls)
		assert.Equal(t, 47, env.orders.products[7].Stock)
	})

	t.Run("shipment failure rolls the settlement back", func(t *testing.T) {
		env := newTestEnv()
		seedCatalog(env)
		seedPendingOrder(env)
		env.shipments.err = &domain.ProviderError{Provider: "rajaongkir", Message: "service unavailable"}

		_, err := env.usecase.ProcessPaymentNotification(context.Background(), settlementBody("settlement", "accept"))
		require.Error(t, err)

		assert.Equal(t, domain.PaymentUnpaid, env.orders.orders["uid-1"].PaymentStatus)
		assert.Nil(t, env.orders.orders["uid-1"].ShipmentOrderID)
		assert.Equal(t, 50, env.orders.products[7].Stock)
	})

	t.Run("insufficient stock rolls the settlement back", func(t *testing.T) {
		env := newTestEnv()
		seedCatalog(env)
		seedPendingOrder(env)
		env.orders.products[7].Stock = 2
		env.shipments.ref = domain.ShipmentRef{OrderID: "98765", OrderNo: "KOM-2025-0001"}

		_, err := env.usecase.ProcessPaymentNotification(context.Background(), settlementBody("settlement", "accept"))
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		assert.Equal(t, domain.PaymentUnpaid, env.orders.orders["uid-1"].PaymentStatus)
		assert.Equal(t, 2, env.orders.products[7].Stock)
	})
}
