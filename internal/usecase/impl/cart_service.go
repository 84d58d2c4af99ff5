package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"brewhouse/internal/domain/entity"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/domain/repository"
	"brewhouse/internal/errors"
	"brewhouse/internal/usecase"
)

type cartService struct {
	txManager repository.TransactionManager
	cartRepo  repository.CartRepository
	catalog   repository.CatalogRepository
	logger    *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	CartRepo  repository.CartRepository
	Catalog   repository.CatalogRepository
	Logger    *slog.Logger
}

// NewCartService creates the cart use case.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		txManager: params.TxManager,
		cartRepo:  params.CartRepo,
		catalog:   params.Catalog,
		logger:    params.Logger,
	}
}

func newCartView(cart *entity.Cart) *usecase.CartView {
	return &usecase.CartView{
		Lines: cart.Snapshot(),
		Total: cart.Total(),
		Count: cart.Count(),
	}
}

func (srv *cartService) Get(ctx context.Context, sessionID uuid.UUID) (*usecase.CartView, error) {
	cart, err := srv.cartRepo.Load(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	return newCartView(cart), nil
}

// AddLine appends a new line. Identical configurations are never merged.
func (srv *cartService) AddLine(ctx context.Context, sessionID uuid.UUID, input usecase.AddCartLineInput) (*usecase.CartView, error) {
	item, err := getCatalogItem(ctx, srv.catalog, input.ItemID)
	if err != nil {
		return nil, err
	}
	line := applyLineOptions(entity.NewQuickAddLine(item), input.CartLineOptions)

	return srv.mutate(ctx, sessionID, func(cart *entity.Cart) error {
		return cart.AddLine(line)
	})
}

func (srv *cartService) UpdateLine(ctx context.Context, sessionID uuid.UUID, index int, options usecase.CartLineOptions) (*usecase.CartView, error) {
	if options.Quantity < 1 {
		return nil, errors.Wrap(domainerrors.ErrInvalidCartLine.WithDetails(entity.ErrInvalidQuantity.Error()), "update line")
	}

	return srv.mutate(ctx, sessionID, func(cart *entity.Cart) error {
		if index < 0 || index >= len(cart.Lines) {
			return nil
		}
		line := applyLineOptions(cart.Lines[index].Clone(), options)
		_, err := cart.UpdateLine(index, line)

		return err
	})
}

func (srv *cartService) RemoveLine(ctx context.Context, sessionID uuid.UUID, index int) (*usecase.CartView, error) {
	return srv.mutate(ctx, sessionID, func(cart *entity.Cart) error {
		cart.RemoveLine(index)

		return nil
	})
}

// mutate runs a read-modify-write of the whole cart in one transaction.
func (srv *cartService) mutate(ctx context.Context, sessionID uuid.UUID, fn func(*entity.Cart) error) (*usecase.CartView, error) {
	var view *usecase.CartView
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		cart, err := repos.CartRepo().Load(ctx, sessionID)
		if err != nil {
			return errors.Wrap(err, "failed to load cart")
		}
		if err := fn(cart); err != nil {
			return errors.Wrap(domainerrors.ErrInvalidCartLine.WithDetails(err.Error()), "cart update rejected")
		}
		if err := repos.CartRepo().Save(ctx, sessionID, cart); err != nil {
			return errors.Wrap(err, "failed to save cart")
		}
		view = newCartView(cart)

		return nil
	})
	if err != nil {
		loggerFor(ctx, srv.logger).Debug("Cart update failed", slog.String("session_id", sessionID.String()), slog.Any("error", err))

		return nil, err
	}

	return view, nil
}

// applyLineOptions overlays the options that are set onto line.
func applyLineOptions(line entity.CartLine, options usecase.CartLineOptions) entity.CartLine {
	if options.Quantity != 0 {
		line.Quantity = options.Quantity
	}
	if options.Size != "" {
		line.Size = options.Size
	}
	if options.Milk != "" {
		line.Milk = options.Milk
	}
	if options.Sweetness != nil {
		line.Sweetness = *options.Sweetness
	}
	if options.Ice != "" {
		line.Ice = options.Ice
	}

	return line
}
