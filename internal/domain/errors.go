package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCartIDsRequired    = errors.New("cart_ids must be a non-empty list")
	ErrCartIDsNotIntegers = errors.New("all cart_ids entries must be integers")

	ErrCartNotFound        = errors.New("cart items not found")
	ErrStoreUnavailable    = errors.New("no active store")
	ErrDestinationMissing  = errors.New("shipping destination not set: choose an address or mark one as default")
	ErrSessionExpired      = errors.New("checkout session expired or not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrAddressNotFound     = errors.New("shipping address not found")
	ErrOrderStateConflict  = errors.New("order must stay pending while unpaid for non-COD payment")
	ErrInsufficientStock   = errors.New("insufficient product stock")
	ErrInvalidPayload      = errors.New("invalid notification payload")
	ErrInvalidSignature    = errors.New("invalid notification signature")
	ErrInvalidProviderResp = errors.New("invalid provider response")
)

// ProviderError carries an upstream API failure with the provider's own
// message verbatim.
type ProviderError struct {
	Provider string
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}
