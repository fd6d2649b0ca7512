package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/tokoniaga/order-service/internal/domain"
)

type TransactionInput struct {
	UserID       uint64
	CheckoutID   string
	ShippingCost int
	CourierCode  string
	ShippingType string
}

type TransactionOutput struct {
	OrderUID  string `json:"order_id"`
	SnapToken string `json:"snap_token"`
}

// Transaction redeems a checkout session into a pending order and mints a
// payment token for it. The session is consumed before the order is created,
// so a duplicate submit fails instead of double-ordering.
func (u *Usecase) Transaction(ctx context.Context, input TransactionInput) (*TransactionOutput, error) {
	session, err := u.sessions.Get(ctx, input.CheckoutID, input.UserID)
	if err != nil {
		return nil, err
	}
	if session.Expired(u.now()) {
		return nil, domain.ErrSessionExpired
	}
	if err := u.sessions.Consume(ctx, session.ID); err != nil {
		return nil, err
	}

	store, err := u.stores.GetByID(ctx, session.StoreID)
	if err != nil {
		return nil, err
	}
	destination, err := u.addresses.GetForUser(ctx, session.UserID, session.DestinationID)
	if err != nil {
		return nil, err
	}
	carts, err := u.carts.GetByIDsForUser(ctx, session.UserID, session.CartIDs)
	if err != nil {
		return nil, err
	}
	if len(carts) == 0 {
		return nil, domain.ErrCartNotFound
	}
	user, err := u.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		OrderUID:      uuid.New().String(),
		UserID:        session.UserID,
		StoreID:       store.ID,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentUnpaid,
		PaymentMethod: domain.MethodBankTransfer,

		ShippingCost: input.ShippingCost,
		CourierCode:  input.CourierCode,
		ShippingType: input.ShippingType,

		DestinationRO:      destination.DistrictRO,
		DestinationAddress: destination.FormattedAddress(),
	}
	if store.ShippingAddress != nil {
		order.OriginRO = store.ShippingAddress.DistrictRO
		order.OriginAddress = store.ShippingAddress.FormattedAddress()
	}

	for _, cart := range carts {
		if cart.Product == nil {
			return nil, domain.ErrCartNotFound
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:    cart.ProductID,
			ProductName:  cart.Product.Name,
			ProductPrice: cart.Product.Price,
			Qty:          cart.Qty,
			Product:      cart.Product,
		})
	}

	if err := u.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	token, err := u.gateway.CreateTransaction(ctx, buildPaymentRequest(order, user))
	if err != nil {
		u.log.Error("payment token creation failed",
			slog.String("order_uid", order.OrderUID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	u.metrics.RecordOrderCreated(string(order.PaymentMethod), order.GrandTotal())
	u.log.Info("order created",
		slog.String("order_uid", order.OrderUID),
		slog.Uint64("user_id", order.UserID),
		slog.Int("grand_total", order.GrandTotal()),
	)
	go u.publishOrderEvent(order)

	return &TransactionOutput{
		OrderUID:  order.OrderUID,
		SnapToken: token,
	}, nil
}

// buildPaymentRequest flattens the order into gateway item lines. Shipping
// and insurance ride along as synthetic lines so the gateway gross amount
// equals the order grand total.
func buildPaymentRequest(order *domain.Order, user *domain.User) domain.PaymentTransactionRequest {
	items := make([]domain.PaymentItemLine, 0, len(order.Items)+2)
	for i := range order.Items {
		item := &order.Items[i]
		items = append(items, domain.PaymentItemLine{
			ID:    strconv.FormatUint(item.ProductID, 10),
			Name:  item.ProductName,
			Price: int(item.ProductPrice),
			Qty:   item.Qty,
		})
	}
	items = append(items, domain.PaymentItemLine{
		ID:    "SHIPPING",
		Name:  "Shipping Cost",
		Price: order.ShippingCost - order.ShippingCashback,
		Qty:   1,
	})
	if insurance := int(order.InsuranceValue()); insurance > 0 {
		items = append(items, domain.PaymentItemLine{
			ID:    "INSURANCE",
			Name:  "Shipping Insurance",
			Price: insurance,
			Qty:   1,
		})
	}

	gross := 0
	for _, line := range items {
		gross += line.Price * line.Qty
	}

	return domain.PaymentTransactionRequest{
		OrderUID:    order.OrderUID,
		GrossAmount: gross,
		Items:       items,
		Customer: domain.CustomerDetails{
			FirstName: user.Username,
			Email:     user.Email,
			Phone:     user.PhoneNumber,
		},
	}
}
