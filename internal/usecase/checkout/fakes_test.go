package checkout

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/tokoniaga/order-service/internal/domain"
	"github.com/tokoniaga/order-service/internal/infrastructure/metrics"
)

// promauto registers into the default registry; one instance per test binary.
var testMetrics = metrics.NewOrderMetrics()

func cloneOrder(o *domain.Order) *domain.Order {
	cp := *o
	cp.Items = make([]domain.OrderItem, len(o.Items))
	copy(cp.Items, o.Items)
	for i := range cp.Items {
		if cp.Items[i].Product != nil {
			p := *cp.Items[i].Product
			cp.Items[i].Product = &p
		}
	}
	if o.ShipmentOrderID != nil {
		v := *o.ShipmentOrderID
		cp.ShipmentOrderID = &v
	}
	if o.ShipmentOrderNo != nil {
		v := *o.ShipmentOrderNo
		cp.ShipmentOrderNo = &v
	}
	return &cp
}

type fakeOrderRepo struct {
	orders    map[string]*domain.Order
	products  map[uint64]*domain.Product
	nextID    uint64
	createErr error
}

var _ domain.OrderRepository = (*fakeOrderRepo)(nil)

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:   make(map[string]*domain.Order),
		products: make(map[uint64]*domain.Product),
	}
}

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, order *domain.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	if err := order.Validate(); err != nil {
		return err
	}
	order.NormalizeCOD()
	f.nextID++
	order.ID = f.nextID
	f.orders[order.OrderUID] = cloneOrder(order)
	return nil
}

// WithinTx runs fn against copies and commits them back only on success,
// mirroring transactional rollback.
func (f *fakeOrderRepo) WithinTx(ctx context.Context, fn func(tx domain.OrderTx) error) error {
	tx := &fakeOrderTx{
		orders:   make(map[string]*domain.Order, len(f.orders)),
		products: make(map[uint64]*domain.Product, len(f.products)),
	}
	for uid, o := range f.orders {
		tx.orders[uid] = cloneOrder(o)
	}
	for id, p := range f.products {
		cp := *p
		tx.products[id] = &cp
	}

	if err := fn(tx); err != nil {
		return err
	}
	f.orders = tx.orders
	f.products = tx.products
	return nil
}

type fakeOrderTx struct {
	orders   map[string]*domain.Order
	products map[uint64]*domain.Product
}

var _ domain.OrderTx = (*fakeOrderTx)(nil)

func (t *fakeOrderTx) LockOrderByUID(orderUID string) (*domain.Order, error) {
	order, ok := t.orders[orderUID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (t *fakeOrderTx) SaveOrder(order *domain.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}
	order.NormalizeCOD()
	t.orders[order.OrderUID] = order
	return nil
}

func (t *fakeOrderTx) LockProducts(productIDs []uint64) ([]*domain.Product, error) {
	var products []*domain.Product
	for _, id := range productIDs {
		if p, ok := t.products[id]; ok {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (t *fakeOrderTx) SaveProductStock(productID uint64, stock int) error {
	p, ok := t.products[productID]
	if !ok {
		return domain.ErrInsufficientStock
	}
	p.Stock = stock
	return nil
}

type fakeSessionRepo struct {
	sessions  map[string]*domain.CheckoutSession
	createErr error
}

var _ domain.CheckoutSessionRepository = (*fakeSessionRepo)(nil)

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*domain.CheckoutSession)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *domain.CheckoutSession) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) Get(ctx context.Context, id string, userID uint64) (*domain.CheckoutSession, error) {
	session, ok := f.sessions[id]
	if !ok || session.UserID != userID {
		return nil, domain.ErrSessionExpired
	}
	return session, nil
}

func (f *fakeSessionRepo) Consume(ctx context.Context, id string) error {
	session, ok := f.sessions[id]
	if !ok || session.ConsumedAt != nil {
		return domain.ErrSessionExpired
	}
	now := time.Now()
	session.ConsumedAt = &now
	return nil
}

type fakeCartRepo struct {
	carts []*domain.Cart
}

var _ domain.CartRepository = (*fakeCartRepo)(nil)

func (f *fakeCartRepo) GetByIDsForUser(ctx context.Context, userID uint64, ids []uint64) ([]*domain.Cart, error) {
	wanted := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var result []*domain.Cart
	for _, cart := range f.carts {
		if cart.UserID == userID && wanted[cart.ID] {
			result = append(result, cart)
		}
	}
	return result, nil
}

type fakeStoreRepo struct {
	active *domain.Store
}

var _ domain.StoreRepository = (*fakeStoreRepo)(nil)

func (f *fakeStoreRepo) GetActive(ctx context.Context) (*domain.Store, error) {
	if f.active == nil {
		return nil, domain.ErrStoreUnavailable
	}
	return f.active, nil
}

func (f *fakeStoreRepo) GetByID(ctx context.Context, id uint64) (*domain.Store, error) {
	if f.active == nil || f.active.ID != id {
		return nil, domain.ErrStoreUnavailable
	}
	return f.active, nil
}

type fakeAddressRepo struct {
	addresses map[uint64]*domain.ShippingAddress
}

var _ domain.ShippingAddressRepository = (*fakeAddressRepo)(nil)

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{addresses: make(map[uint64]*domain.ShippingAddress)}
}

func (f *fakeAddressRepo) GetForUser(ctx context.Context, userID, id uint64) (*domain.ShippingAddress, error) {
	address, ok := f.addresses[id]
	if !ok || address.UserID != userID {
		return nil, domain.ErrAddressNotFound
	}
	return address, nil
}

func (f *fakeAddressRepo) GetDefault(ctx context.Context, userID uint64) (*domain.ShippingAddress, error) {
	for _, address := range f.addresses {
		if address.UserID == userID && address.IsDefault {
			return address, nil
		}
	}
	return nil, domain.ErrAddressNotFound
}

type fakeCourierRepo struct {
	codes []string
}

var _ domain.CourierRepository = (*fakeCourierRepo)(nil)

func (f *fakeCourierRepo) ActiveCodes(ctx context.Context) ([]string, error) {
	return f.codes, nil
}

type fakeUserRepo struct {
	users map[uint64]*domain.User
}

var _ domain.UserRepository = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) GetByID(ctx context.Context, id uint64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

type fakeRates struct {
	quotes  []domain.ShippingQuote
	err     error
	lastReq domain.QuoteRequest
}

var _ domain.ShippingRateProvider = (*fakeRates)(nil)

func (f *fakeRates) GetDomesticCost(ctx context.Context, req domain.QuoteRequest) ([]domain.ShippingQuote, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.quotes, nil
}

type fakeShipments struct {
	ref       domain.ShipmentRef
	err       error
	calls     int
	lastInput domain.ShipmentOrderInput
}

var _ domain.ShipmentOrderProvider = (*fakeShipments)(nil)

func (f *fakeShipments) CreateShipmentOrder(ctx context.Context, input domain.ShipmentOrderInput) (domain.ShipmentRef, error) {
	f.calls++
	f.lastInput = input
	if f.err != nil {
		return domain.ShipmentRef{}, f.err
	}
	return f.ref, nil
}

type fakeGateway struct {
	token     string
	createErr error
	valid     bool
	lastReq   domain.PaymentTransactionRequest
}

var _ domain.PaymentGateway = (*fakeGateway)(nil)

func (f *fakeGateway) CreateTransaction(ctx context.Context, req domain.PaymentTransactionRequest) (string, error) {
	f.lastReq = req
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.token, nil
}

func (f *fakeGateway) VerifySignature(orderUID, statusCode, grossAmount, signature string) bool {
	return f.valid
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.OrderEvent
}

var _ domain.OrderEventPublisher = (*fakePublisher)(nil)

func (f *fakePublisher) PublishOrder(event domain.OrderEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

// testEnv bundles every fake behind a ready-to-use Usecase with a fixed
// clock.
type testEnv struct {
	usecase   *Usecase
	orders    *fakeOrderRepo
	sessions  *fakeSessionRepo
	carts     *fakeCartRepo
	stores    *fakeStoreRepo
	addresses *fakeAddressRepo
	couriers  *fakeCourierRepo
	users     *fakeUserRepo
	rates     *fakeRates
	shipments *fakeShipments
	gateway   *fakeGateway
	publisher *fakePublisher
	now       time.Time
}

func newTestEnv() *testEnv {
	env := &testEnv{
		orders:    newFakeOrderRepo(),
		sessions:  newFakeSessionRepo(),
		carts:     &fakeCartRepo{},
		stores:    &fakeStoreRepo{},
		addresses: newFakeAddressRepo(),
		couriers:  &fakeCourierRepo{codes: []string{"jne", "sicepat"}},
		users:     &fakeUserRepo{users: make(map[uint64]*domain.User)},
		rates:     &fakeRates{},
		shipments: &fakeShipments{},
		gateway:   &fakeGateway{valid: true},
		publisher: &fakePublisher{},
		now:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	env.usecase = NewUsecase(
		log,
		env.orders,
		env.sessions,
		env.carts,
		env.stores,
		env.addresses,
		env.couriers,
		env.users,
		env.rates,
		env.shipments,
		env.gateway,
		env.publisher,
		testMetrics,
		10*time.Minute,
	)
	env.usecase.now = func() time.Time { return env.now }
	return env
}
