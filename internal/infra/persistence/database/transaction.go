package database

import (
	"context"

	"gorm.io/gorm"

	"brewhouse/internal/domain/repository"
	"brewhouse/internal/errors"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory implements the domain's RepositoryFactory interface.
// It holds a specific GORM transaction object and uses it to create
// repository instances that are bound to that single transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB
}

func (f *gormRepositoryFactory) SessionRepo() repository.SessionRepository {
	return NewSessionRepository(f.tx)
}

func (f *gormRepositoryFactory) UserRepo() repository.UserRepository {
	return NewUserRepository(f.tx)
}

func (f *gormRepositoryFactory) CartRepo() repository.CartRepository {
	return NewCartRepository(f.tx)
}

func (f *gormRepositoryFactory) OrderRepo() repository.OrderRepository {
	return NewOrderRepository(f.tx)
}

func (f *gormRepositoryFactory) NotificationRepo() repository.NotificationRepository {
	return NewNotificationRepository(f.tx)
}

func (f *gormRepositoryFactory) WishlistRepo() repository.WishlistRepository {
	return NewWishlistRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
// This function will be used as an Fx provider.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs the given function within a single database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repos repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to begin transaction")
	}

	// Roll back on panic, then re-panic so echo's recover middleware or fx sees it.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&gormRepositoryFactory{tx: tx}); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return errors.Wrapf(err, "transaction rollback failed: %v", rbErr)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}
