package checkout

import (
	"log/slog"
	"time"

	"github.com/tokoniaga/order-service/internal/domain"
	"github.com/tokoniaga/order-service/internal/infrastructure/metrics"
)

// Usecase drives the checkout pipeline: quoting shipping, redeeming checkout
// sessions into orders with payment tokens, and settling payment webhooks.
type Usecase struct {
	log *slog.Logger

	orders    domain.OrderRepository
	sessions  domain.CheckoutSessionRepository
	carts     domain.CartRepository
	stores    domain.StoreRepository
	addresses domain.ShippingAddressRepository
	couriers  domain.CourierRepository
	users     domain.UserRepository

	rates     domain.ShippingRateProvider
	shipments domain.ShipmentOrderProvider
	gateway   domain.PaymentGateway
	publisher domain.OrderEventPublisher
	metrics   *metrics.OrderMetrics

	sessionTTL time.Duration
	now        func() time.Time
}

func NewUsecase(
	log *slog.Logger,
	orders domain.OrderRepository,
	sessions domain.CheckoutSessionRepository,
	carts domain.CartRepository,
	stores domain.StoreRepository,
	addresses domain.ShippingAddressRepository,
	couriers domain.CourierRepository,
	users domain.UserRepository,
	rates domain.ShippingRateProvider,
	shipments domain.ShipmentOrderProvider,
	gateway domain.PaymentGateway,
	publisher domain.OrderEventPublisher,
	orderMetrics *metrics.OrderMetrics,
	sessionTTL time.Duration,
) *Usecase {
	return &Usecase{
		log:        log,
		orders:     orders,
		sessions:   sessions,
		carts:      carts,
		stores:     stores,
		addresses:  addresses,
		couriers:   couriers,
		users:      users,
		rates:      rates,
		shipments:  shipments,
		gateway:    gateway,
		publisher:  publisher,
		metrics:    orderMetrics,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

func (u *Usecase) publishOrderEvent(order *domain.Order) {
	event := domain.OrderEvent{
		OrderUID:      order.OrderUID,
		UserID:        order.UserID,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		GrandTotal:    order.GrandTotal(),
		CourierCode:   order.CourierCode,
		OccurredAt:    u.now(),
	}
	if err := u.publisher.PublishOrder(event); err != nil {
		u.log.Error("failed to publish order event",
			slog.String("order_uid", order.OrderUID),
			slog.String("error", err.Error()),
		)
	}
}
