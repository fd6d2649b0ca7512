package domain

import "context"

type CheckoutSessionRepository interface {
	Create(ctx context.Context, session *CheckoutSession) error

	// Get returns the session regardless of expiry; the caller decides what
	// an expired session means. Missing sessions map to ErrSessionExpired.
	Get(ctx context.Context, id string, userID uint64) (*CheckoutSession, error)

	// Consume marks the session used. It is conditional: a session already
	// consumed (or missing) fails with ErrSessionExpired, so two concurrent
	// redemptions produce exactly one order.
	Consume(ctx context.Context, id string) error
}

type CartRepository interface {
	// GetByIDsForUser returns the user's cart rows among ids, products
	// attached. Ids belonging to other users are silently dropped.
	GetByIDsForUser(ctx context.Context, userID uint64, ids []uint64) ([]*Cart, error)
}

type StoreRepository interface {
	// GetActive returns the single active store or ErrStoreUnavailable.
	GetActive(ctx context.Context) (*Store, error)
	GetByID(ctx context.Context, id uint64) (*Store, error)
}

type ShippingAddressRepository interface {
	GetForUser(ctx context.Context, userID, id uint64) (*ShippingAddress, error)
	GetDefault(ctx context.Context, userID uint64) (*ShippingAddress, error)
}

type CourierRepository interface {
	ActiveCodes(ctx context.Context) ([]string, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id uint64) (*User, error)
}
