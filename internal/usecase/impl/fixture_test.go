package impl_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
	"golang.org/x/crypto/bcrypt"

	"brewhouse/config"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/domain/pricing"
	"brewhouse/internal/domain/repository"
	"brewhouse/internal/domain/service"
	"brewhouse/internal/infra/auth"
	"brewhouse/internal/infra/catalog"
	"brewhouse/internal/infra/persistence/database"
	"brewhouse/internal/infra/qrcode"
	"brewhouse/internal/infra/storage"
	"brewhouse/internal/testutil"
	"brewhouse/internal/usecase"
	"brewhouse/internal/usecase/impl"
)

// fakeGateway approves every charge. When release is set, each charge blocks
// until the channel is closed and signals started first.
type fakeGateway struct {
	mu      sync.Mutex
	calls   []service.PaymentRequest
	started chan struct{}
	release chan struct{}
}

func (g *fakeGateway) Authorize(ctx context.Context, req service.PaymentRequest) (*service.PaymentReceipt, error) {
	g.mu.Lock()
	g.calls = append(g.calls, req)
	g.mu.Unlock()

	if g.release != nil {
		g.started <- struct{}{}
		select {
		case <-g.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return &service.PaymentReceipt{Reference: "pay_test"}, nil
}

func (g *fakeGateway) Calls() []service.PaymentRequest {
	g.mu.Lock()
	defer g.mu.Unlock()

	return append([]service.PaymentRequest(nil), g.calls...)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.OrderEvent
}

func (p *recordingPublisher) PublishOrderEvent(_ context.Context, event *service.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}

	return types
}

// fakeGoogle accepts only the tokens it was given.
type fakeGoogle map[string]*service.GoogleIdentity

func (g fakeGoogle) VerifyIDToken(_ context.Context, idToken string) (*service.GoogleIdentity, error) {
	identity, ok := g[idToken]
	if !ok {
		return nil, domainerrors.ErrInvalidGoogleToken
	}

	return identity, nil
}

// hookedTx runs the real transaction. A test may set wrap to swap the
// repositories handed to the callback.
type hookedTx struct {
	repository.TransactionManager

	mu   sync.Mutex
	wrap func(repository.RepositoryFactory) repository.RepositoryFactory
}

func (h *hookedTx) Execute(ctx context.Context, fn func(repos repository.RepositoryFactory) error) error {
	h.mu.Lock()
	wrap := h.wrap
	h.mu.Unlock()

	return h.TransactionManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if wrap != nil {
			repos = wrap(repos)
		}

		return fn(repos)
	})
}

func (h *hookedTx) Wrap(wrap func(repository.RepositoryFactory) repository.RepositoryFactory) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.wrap = wrap
}

type fixture struct {
	sessions      usecase.SessionUsecase
	identity      usecase.IdentityUsecase
	catalog       usecase.CatalogUsecase
	cart          usecase.CartUsecase
	checkout      usecase.CheckoutUsecase
	orders        usecase.OrderUsecase
	profile       usecase.ProfileUsecase
	rewards       usecase.RewardsUsecase
	notifications usecase.NotificationUsecase
	wishlist      usecase.WishlistUsecase

	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
	orderRepo   repository.OrderRepository
	payments    *fakeGateway
	publisher   *recordingPublisher
	google      fakeGoogle
	checkoutTx  *hookedTx
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	logger := testutil.DiscardLogger()

	cfg := &config.Config{
		Auth:     &config.AuthConfig{BcryptCost: bcrypt.MinCost, SignupBonus: 50},
		Checkout: config.DefaultCheckout(),
		Tracking: config.DefaultTracking(),
	}
	cfg.SecretKey.Access = "test-secret"

	rules, err := pricing.NewRules(cfg.Checkout.TaxRate, cfg.Checkout.DeliveryFee, cfg.Checkout.DiscountCodes)
	require.NoError(t, err)
	items, err := catalog.New()
	require.NoError(t, err)
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	txManager := database.NewTransactionManager(db)
	sessionRepo := database.NewSessionRepository(db)
	userRepo := database.NewUserRepository(db)
	cartRepo := database.NewCartRepository(db)
	orderRepo := database.NewOrderRepository(db)
	notificationRepo := database.NewNotificationRepository(db)
	payments := &fakeGateway{}
	publisher := &recordingPublisher{}
	google := fakeGoogle{}
	checkoutTx := &hookedTx{TransactionManager: txManager}

	return &fixture{
		sessions: impl.NewSessionService(impl.SessionServiceParams{
			TxManager:    txManager,
			SessionRepo:  sessionRepo,
			TokenService: tokens,
			Logger:       logger,
		}),
		identity: impl.NewIdentityService(impl.IdentityServiceParams{
			TxManager:   txManager,
			SessionRepo: sessionRepo,
			UserRepo:    userRepo,
			Hasher:      auth.NewBcryptHasher(cfg),
			Google:      google,
			Config:      cfg,
			Logger:      logger,
		}),
		catalog: impl.NewCatalogService(items),
		cart: impl.NewCartService(impl.CartServiceParams{
			TxManager: txManager,
			CartRepo:  cartRepo,
			Catalog:   items,
			Logger:    logger,
		}),
		checkout: impl.NewCheckoutService(impl.CheckoutServiceParams{
			TxManager:   checkoutTx,
			SessionRepo: sessionRepo,
			UserRepo:    userRepo,
			CartRepo:    cartRepo,
			Engine:      pricing.NewEngine(rules),
			Payments:    payments,
			Publisher:   publisher,
			Config:      cfg,
			Logger:      logger,
		}),
		orders: impl.NewOrderService(impl.OrderServiceParams{
			SessionRepo: sessionRepo,
			OrderRepo:   orderRepo,
			QRService:   qrcode.NewQRCodeService(128, "M"),
			Publisher:   publisher,
			Config:      cfg,
			Logger:      logger,
		}),
		profile: impl.NewProfileService(impl.ProfileServiceParams{
			TxManager: txManager,
			Avatars:   storage.NewAvatarStorage(bucket, "/static/avatars", 1024, logger),
			Logger:    logger,
		}),
		rewards:       impl.NewRewardsService(sessionRepo, userRepo, orderRepo),
		notifications: impl.NewNotificationService(notificationRepo),
		wishlist:      impl.NewWishlistService(database.NewWishlistRepository(db), items, logger),

		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		orderRepo:   orderRepo,
		payments:    payments,
		publisher:   publisher,
		google:      google,
		checkoutTx:  checkoutTx,
	}
}

// openSession returns the id of a fresh anonymous session.
func (f *fixture) openSession(t *testing.T) uuid.UUID {
	t.Helper()

	out, err := f.sessions.Open(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	return out.Session.ID
}

// loggedInSession opens a session and logs a new user into it.
func (f *fixture) loggedInSession(t *testing.T, email string) uuid.UUID {
	t.Helper()

	sessionID := f.openSession(t)
	_, err := f.identity.Login(context.Background(), sessionID, usecase.LoginInput{Email: email, Password: "secret1"})
	require.NoError(t, err)

	return sessionID
}

func (f *fixture) addLine(t *testing.T, sessionID uuid.UUID, input usecase.AddCartLineInput) {
	t.Helper()

	_, err := f.cart.AddLine(context.Background(), sessionID, input)
	require.NoError(t, err)
}

func testCard() *usecase.CardDetails {
	return &usecase.CardDetails{
		Number:     "4111 1111 1111 1111",
		Expiry:     "12/30",
		CVV:        "123",
		ZipCode:    "12345",
		HolderName: "Test Buyer",
	}
}
