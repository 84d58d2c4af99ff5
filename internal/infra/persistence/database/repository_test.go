package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brewhouse/internal/domain/entity"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/domain/repository"
	"brewhouse/internal/infra/persistence/database"
	"brewhouse/internal/testutil"
)

func drink(id int, price string, category entity.Category) entity.Item {
	return entity.Item{
		ID:           id,
		Name:         "Drink",
		Category:     category,
		Price:        decimal.RequireFromString(price),
		TastingNotes: []string{"Smooth"},
	}
}

func TestUserRepository_RoundTripWithAddressesAndCards(t *testing.T) {
	ctx := context.Background()
	repo := database.NewUserRepository(testutil.NewSQLiteDB(t))

	user := &entity.User{Email: "Jane@Example.com", Name: "Jane", PasswordHash: "hash", Credits: 50}
	require.NoError(t, repo.Create(ctx, user))
	require.NotEqual(t, uuid.Nil, user.ID)

	user.AddAddress(&entity.SavedAddress{FullName: "Jane", Street: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701"})
	user.AddAddress(&entity.SavedAddress{FullName: "Jane", Street: "9 Elm St", City: "Springfield", State: "IL", ZipCode: "62702"})
	card, err := entity.NewSavedCard("4111111111111111", "12/28", "Jane")
	require.NoError(t, err)
	user.AddCard(card)
	user.Credits = 42
	require.NoError(t, repo.Update(ctx, user))

	found, err := repo.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, 42, found.Credits)
	require.Len(t, found.Addresses, 2)
	assert.True(t, found.Addresses[0].IsDefault)
	assert.Equal(t, "9 Elm St", found.Addresses[1].Street)
	require.Len(t, found.Cards, 1)
	assert.Equal(t, "1111", found.Cards[0].LastFour)

	require.True(t, found.RemoveAddress(found.Addresses[0].ID))
	require.NoError(t, repo.Update(ctx, found))

	reloaded, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Addresses, 1)
	assert.True(t, reloaded.Addresses[0].IsDefault)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := database.NewUserRepository(testutil.NewSQLiteDB(t))

	require.NoError(t, repo.Create(ctx, &entity.User{Email: "dup@example.com", PasswordHash: "x"}))
	err := repo.Create(ctx, &entity.User{Email: "DUP@example.com", PasswordHash: "y"})

	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := database.NewUserRepository(testutil.NewSQLiteDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	err = repo.Update(context.Background(), &entity.User{ID: uuid.New(), Email: "ghost@example.com"})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestCartRepository_SaveReplacesLines(t *testing.T) {
	ctx := context.Background()
	repo := database.NewCartRepository(testutil.NewSQLiteDB(t))
	sessionID := uuid.New()

	cart := &entity.Cart{}
	require.NoError(t, cart.AddLine(entity.NewQuickAddLine(drink(1, "4.50", entity.CategoryEspresso))))
	cold := entity.NewQuickAddLine(drink(8, "5.25", entity.CategoryIced))
	cold.Size = entity.SizeLarge
	cold.Quantity = 2
	require.NoError(t, cart.AddLine(cold))
	require.NoError(t, repo.Save(ctx, sessionID, cart))

	loaded, err := repo.Load(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, loaded.Lines, 2)
	assert.Equal(t, 1, loaded.Lines[0].Item.ID)
	assert.Equal(t, entity.SizeLarge, loaded.Lines[1].Size)
	assert.Equal(t, []string{"Smooth"}, loaded.Lines[1].Item.TastingNotes)
	assert.True(t, cart.Total().Equal(loaded.Total()), "want %s got %s", cart.Total(), loaded.Total())

	loaded.RemoveLine(0)
	require.NoError(t, repo.Save(ctx, sessionID, loaded))

	again, err := repo.Load(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, again.Lines, 1)
	assert.Equal(t, 8, again.Lines[0].Item.ID)

	empty, err := repo.Load(ctx, uuid.New())
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}

func TestOrderRepository_StatusCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	repo := database.NewOrderRepository(testutil.NewSQLiteDB(t))
	sessionID := uuid.New()

	order := &entity.Order{
		SessionID:         sessionID,
		Lines:             []entity.CartLine{entity.NewQuickAddLine(drink(1, "4.50", entity.CategoryEspresso))},
		Subtotal:          decimal.RequireFromString("5.625"),
		Tax:               decimal.Zero,
		DeliveryFee:       decimal.Zero,
		Discount:          decimal.Zero,
		CreditsDiscount:   decimal.Zero,
		Total:             decimal.RequireFromString("5.625"),
		Status:            entity.StatusConfirmed,
		FulfillmentMethod: entity.FulfillmentPickup,
		EstimatedMinutes:  15,
	}
	require.NoError(t, repo.Create(ctx, order))

	require.True(t, order.Advance(3))
	require.NoError(t, repo.UpdateStatus(ctx, order, entity.StatusConfirmed))

	stale := *order
	stale.Status = entity.StatusReady
	assert.ErrorIs(t, repo.UpdateStatus(ctx, &stale, entity.StatusConfirmed), repository.ErrOrderStatusMismatch)

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPreparing, found.Status)
	assert.Equal(t, 12, found.EstimatedMinutes)
	assert.Equal(t, "5.63", found.Total.StringFixed(2))
	require.Len(t, found.Lines, 1)

	active, err := repo.ListActive(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestNotificationRepository(t *testing.T) {
	ctx := context.Background()
	repo := database.NewNotificationRepository(testutil.NewSQLiteDB(t))
	sessionID := uuid.New()

	welcome := entity.WelcomeNotifications(sessionID)
	require.NoError(t, repo.Create(ctx, welcome...))

	unread, err := repo.CountUnread(ctx, sessionID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, unread)

	require.NoError(t, repo.MarkRead(ctx, sessionID, welcome[0].ID))
	assert.ErrorIs(t, repo.MarkRead(ctx, uuid.New(), welcome[1].ID), repository.ErrNotificationNotFound)

	unread, err = repo.CountUnread(ctx, sessionID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)

	require.NoError(t, repo.MarkAllRead(ctx, sessionID))
	list, err := repo.ListBySession(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, n := range list {
		assert.True(t, n.Read)
	}
}

func TestNotificationRepository_CreateOnce(t *testing.T) {
	ctx := context.Background()
	repo := database.NewNotificationRepository(testutil.NewSQLiteDB(t))
	sessionID := uuid.New()
	order := &entity.Order{ID: uuid.New(), FulfillmentMethod: entity.FulfillmentPickup}

	created, err := repo.CreateOnce(ctx, entity.OrderStatusNotification(sessionID, order, entity.StatusReady))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateOnce(ctx, entity.OrderStatusNotification(sessionID, order, entity.StatusReady))
	require.NoError(t, err)
	assert.False(t, created)

	// Keyless notifications never collide.
	require.NoError(t, repo.Create(ctx, entity.WelcomeNotifications(sessionID)...))
	created, err = repo.CreateOnce(ctx, entity.NewNotification(sessionID, entity.NotificationPromo, "Promo", ""))
	require.NoError(t, err)
	assert.True(t, created)

	list, err := repo.ListBySession(ctx, sessionID)
	require.NoError(t, err)
	assert.Len(t, list, 4)
}

func TestWishlistRepository(t *testing.T) {
	ctx := context.Background()
	repo := database.NewWishlistRepository(testutil.NewSQLiteDB(t))
	sessionID := uuid.New()

	require.NoError(t, repo.Add(ctx, sessionID, 3))
	require.NoError(t, repo.Add(ctx, sessionID, 3))
	require.NoError(t, repo.Add(ctx, sessionID, 7))

	ids, err := repo.ListItemIDs(ctx, sessionID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{3, 7}, ids)

	removed, err := repo.Remove(ctx, sessionID, 3)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Remove(ctx, sessionID, 3)
	require.NoError(t, err)
	assert.False(t, removed)

	ok, err := repo.Contains(ctx, sessionID, 7)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	tm := database.NewTransactionManager(db)
	sessionID := uuid.New()
	boom := errors.New("boom")

	err := tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.SessionRepo().Create(ctx, entity.NewSession(sessionID)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		_, err := repos.SessionRepo().FindByID(ctx, sessionID)
		return err
	})
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestTransactionManager_RollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	tm := database.NewTransactionManager(testutil.NewSQLiteDB(t))
	sessionID := uuid.New()

	assert.Panics(t, func() {
		_ = tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
			_ = repos.SessionRepo().Create(ctx, entity.NewSession(sessionID))
			panic("boom")
		})
	})

	err := tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		_, err := repos.SessionRepo().FindByID(ctx, sessionID)
		return err
	})
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}
