package main

import (
	"context"
	"log/slog"
	"os"

	"brewhouse/config"
	"brewhouse/internal/delivery"
	"brewhouse/internal/delivery/api"
	"brewhouse/internal/delivery/api/middleware"
	"brewhouse/internal/delivery/api/router/handler"
	"brewhouse/internal/delivery/worker"
	"brewhouse/internal/domain/pricing"
	"brewhouse/internal/infra/auth"
	"brewhouse/internal/infra/catalog"
	logs "brewhouse/internal/infra/log"
	"brewhouse/internal/infra/payment"
	"brewhouse/internal/infra/persistence/database"
	"brewhouse/internal/infra/pubsub"
	"brewhouse/internal/infra/qrcode"
	"brewhouse/internal/infra/storage"
	"brewhouse/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			database.New,
			catalog.New,
		),
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			database.NewSessionRepository,
			database.NewUserRepository,
			database.NewCartRepository,
			database.NewOrderRepository,
			database.NewNotificationRepository,
			database.NewWishlistRepository,
			database.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			auth.NewGoogleVerifier,
			payment.NewSimulatedGateway,
			storage.New,
			qrcode.New,
			newPricingEngine,
		),
	)
}

// newPricingEngine builds the checkout rules from configuration.
func newPricingEngine(cfg *config.Config) (*pricing.Engine, error) {
	rules, err := pricing.NewRules(cfg.Checkout.TaxRate, cfg.Checkout.DeliveryFee, cfg.Checkout.DiscountCodes)
	if err != nil {
		return nil, err
	}

	return pricing.NewEngine(rules), nil
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			impl.NewIdentityService,
			impl.NewCatalogService,
			impl.NewCartService,
			impl.NewCheckoutService,
			impl.NewOrderService,
			impl.NewProfileService,
			impl.NewRewardsService,
			impl.NewNotificationService,
			impl.NewWishlistService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewSessionMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewSessionHandler,
			handler.NewAuthHandler,
			handler.NewCatalogHandler,
			handler.NewCartHandler,
			handler.NewCheckoutHandler,
			handler.NewOrderHandler,
			handler.NewProfileHandler,
			handler.NewRewardsHandler,
			handler.NewNotificationHandler,
			handler.NewWishlistHandler,
			handler.NewEventHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewTrackingWorker,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
