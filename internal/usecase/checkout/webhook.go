package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/tokoniaga/order-service/internal/domain"
)

// Webhook outcomes reported back to the delivery layer.
const (
	OutcomeSettled          = "settled"
	OutcomeNotCompleted     = "not_completed"
	OutcomeAlreadyProcessed = "already_processed"
)

// ProcessPaymentNotification settles a gateway webhook. Signature checking
// happens before any database work; all mutations run inside one transaction
// under row locks, so a failure at any step (shipment order, stock) rolls the
// whole settlement back and the gateway retries later.
func (u *Usecase) ProcessPaymentNotification(ctx context.Context, body []byte) (string, error) {
	started := u.now()

	var notification domain.PaymentNotification
	if err := json.Unmarshal(body, &notification); err != nil {
		u.metrics.RecordWebhook("invalid_payload", u.now().Sub(started).Seconds())
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidPayload, err)
	}
	if notification.OrderID == "" || notification.StatusCode == "" || notification.GrossAmount == "" {
		u.metrics.RecordWebhook("invalid_payload", u.now().Sub(started).Seconds())
		return "", domain.ErrInvalidPayload
	}

	if !u.gateway.VerifySignature(
		notification.OrderID,
		notification.StatusCode,
		notification.GrossAmount,
		notification.SignatureKey,
	) {
		u.metrics.RecordWebhook("invalid_signature", u.now().Sub(started).Seconds())
		u.log.Warn("webhook signature rejected",
			slog.String("order_uid", notification.OrderID),
		)
		return "", domain.ErrInvalidSignature
	}

	outcome := OutcomeNotCompleted
	var settled *domain.Order

	err := u.orders.WithinTx(ctx, func(tx domain.OrderTx) error {
		order, err := tx.LockOrderByUID(notification.OrderID)
		if err != nil {
			return err
		}

		// Replayed settlements are acknowledged without side effects.
		if order.PaymentStatus == domain.PaymentPaid {
			outcome = OutcomeAlreadyProcessed
			return nil
		}

		next := domain.NextPaymentStatus(order.PaymentStatus, notification.TransactionStatus, notification.FraudStatus)
		order.PaymentStatus = next

		if next != domain.PaymentPaid {
			return tx.SaveOrder(order)
		}

		store, err := u.stores.GetByID(ctx, order.StoreID)
		if err != nil {
			return err
		}
		customer, err := u.users.GetByID(ctx, order.UserID)
		if err != nil {
			return err
		}

		ref, err := u.shipments.CreateShipmentOrder(ctx, domain.ShipmentOrderInput{
			Order:    order,
			Store:    store,
			Customer: customer,
		})
		if err != nil {
			return fmt.Errorf("create shipment order: %w", err)
		}
		order.ShipmentOrderID = &ref.OrderID
		order.ShipmentOrderNo = &ref.OrderNo

		if err := tx.SaveOrder(order); err != nil {
			return err
		}
		if err := decrementStock(tx, order); err != nil {
			return err
		}

		outcome = OutcomeSettled
		settled = order
		return nil
	})
	if err != nil {
		u.metrics.RecordWebhook("error", u.now().Sub(started).Seconds())
		u.log.Error("webhook settlement failed",
			slog.String("order_uid", notification.OrderID),
			slog.String("transaction_status", notification.TransactionStatus),
			slog.String("error", err.Error()),
		)
		return "", err
	}

	u.metrics.RecordWebhook(outcome, u.now().Sub(started).Seconds())
	u.log.Info("webhook processed",
		slog.String("order_uid", notification.OrderID),
		slog.String("transaction_status", notification.TransactionStatus),
		slog.String("outcome", outcome),
	)

	if settled != nil {
		go u.publishOrderEvent(settled)
	}
	return outcome, nil
}

// decrementStock locks the order's product rows in ascending id order and
// subtracts the ordered quantities. Any shortfall aborts the transaction.
func decrementStock(tx domain.OrderTx, order *domain.Order) error {
	quantities := make(map[uint64]int, len(order.Items))
	for i := range order.Items {
		quantities[order.Items[i].ProductID] += order.Items[i].Qty
	}

	ids := make([]uint64, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	products, err := tx.LockProducts(ids)
	if err != nil {
		return err
	}
	locked := make(map[uint64]*domain.Product, len(products))
	for _, p := range products {
		locked[p.ID] = p
	}

	for _, id := range ids {
		product, ok := locked[id]
		if !ok {
			return fmt.Errorf("%w: product %d missing", domain.ErrInsufficientStock, id)
		}
		remaining := product.Stock - quantities[id]
		if remaining < 0 {
			return fmt.Errorf("%w: product %d", domain.ErrInsufficientStock, id)
		}
		if err := tx.SaveProductStock(id, remaining); err != nil {
			return err
		}
	}
	return nil
}
