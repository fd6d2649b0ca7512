package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/jaevor/go-nanoid"
	"github.com/tokoniaga/order-service/internal/domain"
)

type CheckoutInput struct {
	UserID        uint64
	CartIDs       any
	DestinationID uint64
}

type CheckoutOutput struct {
	CheckoutID      string                 `json:"checkout_id"`
	ShippingOptions []domain.ShippingQuote `json:"shipping_options"`
}

// ParseCartIDs validates the raw cart_ids field of a checkout request. JSON
// numbers arrive as float64, so integrality is checked explicitly.
func ParseCartIDs(raw any) ([]uint64, error) {
	list, ok := raw.([]any)
	if !ok || len(list) == 0 {
		return nil, domain.ErrCartIDsRequired
	}

	ids := make([]uint64, 0, len(list))
	for _, entry := range list {
		num, ok := entry.(float64)
		if !ok || num != math.Trunc(num) || num < 0 {
			return nil, domain.ErrCartIDsNotIntegers
		}
		ids = append(ids, uint64(num))
	}
	return ids, nil
}

// Checkout resolves the user's cart selection into priced shipping options
// and opens a short-lived session the transaction step later redeems.
func (u *Usecase) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutOutput, error) {
	cartIDs, err := ParseCartIDs(input.CartIDs)
	if err != nil {
		u.metrics.RecordCheckout("invalid_input")
		return nil, err
	}

	carts, err := u.carts.GetByIDsForUser(ctx, input.UserID, cartIDs)
	if err != nil {
		return nil, err
	}
	if len(carts) == 0 {
		u.metrics.RecordCheckout("cart_not_found")
		return nil, domain.ErrCartNotFound
	}

	store, err := u.stores.GetActive(ctx)
	if err != nil {
		u.metrics.RecordCheckout("store_unavailable")
		return nil, err
	}
	if store.ShippingAddress == nil {
		u.metrics.RecordCheckout("store_unavailable")
		return nil, domain.ErrStoreUnavailable
	}

	destination, err := u.resolveDestination(ctx, input.UserID, input.DestinationID)
	if err != nil {
		u.metrics.RecordCheckout("destination_missing")
		return nil, err
	}

	weight := 0
	for _, cart := range carts {
		if cart.Product == nil {
			return nil, domain.ErrCartNotFound
		}
		weight += int(cart.Product.Weight) * cart.Qty
	}

	codes, err := u.couriers.ActiveCodes(ctx)
	if err != nil {
		return nil, err
	}

	quotes, err := u.rates.GetDomesticCost(ctx, domain.QuoteRequest{
		OriginRO:      store.ShippingAddress.DistrictRO,
		DestinationRO: destination.DistrictRO,
		Weight:        weight,
		Courier:       strings.Join(codes, ":"),
	})
	if err != nil {
		u.metrics.RecordQuoteError()
		u.metrics.RecordCheckout("quote_error")
		u.log.Error("shipping quote lookup failed",
			slog.Uint64("user_id", input.UserID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	session := &domain.CheckoutSession{
		ID:            newSessionID(),
		UserID:        input.UserID,
		CartIDs:       cartIDs,
		DestinationID: destination.ID,
		StoreID:       store.ID,
		CreatedAt:     u.now(),
		ExpiresAt:     u.now().Add(u.sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	u.metrics.RecordCheckout("ok")
	u.log.Info("checkout session opened",
		slog.String("checkout_id", session.ID),
		slog.Uint64("user_id", input.UserID),
		slog.Int("weight_grams", weight),
	)

	return &CheckoutOutput{
		CheckoutID:      session.ID,
		ShippingOptions: quotes,
	}, nil
}

// resolveDestination prefers the explicitly chosen address and falls back to
// the user's default one.
func (u *Usecase) resolveDestination(ctx context.Context, userID, destinationID uint64) (*domain.ShippingAddress, error) {
	if destinationID != 0 {
		address, err := u.addresses.GetForUser(ctx, userID, destinationID)
		if err != nil {
			return nil, err
		}
		return address, nil
	}

	address, err := u.addresses.GetDefault(ctx, userID)
	if err != nil {
		return nil, domain.ErrDestinationMissing
	}
	return address, nil
}

var newSessionID = mustSessionIDGen()

func mustSessionIDGen() func() string {
	gen, err := nanoid.Standard(21)
	if err != nil {
		panic(err)
	}
	return gen
}
