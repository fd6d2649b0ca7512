package domain

import "context"

// OrderRepository persists orders together with their items.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) error

	// WithinTx runs fn inside one database transaction. Every write made
	// through the OrderTx rolls back if fn returns an error, including the
	// payment status flip of a settlement webhook.
	WithinTx(ctx context.Context, fn func(tx OrderTx) error) error
}

// OrderTx is the transactional read-modify-write contract used by webhook
// settlement: acquire exclusive row locks, check invariants, write, and let
// the enclosing transaction commit or abort atomically.
type OrderTx interface {
	// LockOrderByUID loads an order by its external token under a row-level
	// exclusive lock held until the transaction ends, with items and their
	// products attached.
	LockOrderByUID(orderUID string) (*Order, error)

	SaveOrder(order *Order) error

	// LockProducts locks the given product rows in ascending id order and
	// returns them for the stock check.
	LockProducts(productIDs []uint64) ([]*Product, error)

	SaveProductStock(productID uint64, stock int) error
}
