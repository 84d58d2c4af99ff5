package database

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"brewhouse/internal/domain/entity"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/domain/repository"
	"brewhouse/internal/infra/persistence/model"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (repo *userRepository) preloaded(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Preload("Addresses", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Cards", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") })
}

// FindByID retrieves a single user by their unique ID, preloading addresses and cards.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.preloaded(ctx).Where("id = ?", id).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.preloaded(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user together with its addresses and cards.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WithDetails("credits must not be negative")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.Email = userM.Email
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update re-persists the user row and replaces its addresses and cards.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)
	db := repo.db.WithContext(ctx)

	result := db.Omit(clause.Associations).Model(&model.UserModel{ID: userM.ID}).
		Select("email", "name", "avatar", "preferred_drink", "password_hash", "credits", "updated_at").
		Updates(userM)
	if err := result.Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WithDetails("credits must not be negative")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	if err := db.Where("user_id = ?", userM.ID).Delete(&model.SavedAddressModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to replace saved addresses")
	}
	if len(userM.Addresses) > 0 {
		if err := db.Create(&userM.Addresses).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to replace saved addresses")
		}
	}

	if err := db.Where("user_id = ?", userM.ID).Delete(&model.SavedCardModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to replace saved cards")
	}
	if len(userM.Cards) > 0 {
		if err := db.Create(&userM.Cards).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to replace saved cards")
		}
	}

	user.UpdatedAt = userM.UpdatedAt

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// --- Mapper Functions ---

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	user := &entity.User{
		ID:             data.ID,
		Email:          data.Email,
		Name:           data.Name,
		Avatar:         data.Avatar,
		PreferredDrink: data.PreferredDrink,
		PasswordHash:   data.PasswordHash,
		Credits:        data.Credits,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}

	for _, a := range data.Addresses {
		user.Addresses = append(user.Addresses, &entity.SavedAddress{
			ID:        a.ID,
			Label:     a.Label,
			FullName:  a.FullName,
			Street:    a.Street,
			Apartment: a.Apartment,
			City:      a.City,
			State:     a.State,
			ZipCode:   a.ZipCode,
			Phone:     a.Phone,
			IsDefault: a.IsDefault,
		})
	}

	for _, c := range data.Cards {
		user.Cards = append(user.Cards, &entity.SavedCard{
			ID:          c.ID,
			Type:        entity.CardType(c.Type),
			LastFour:    c.LastFour,
			HolderName:  c.HolderName,
			ExpiryMonth: c.ExpiryMonth,
			ExpiryYear:  c.ExpiryYear,
			IsDefault:   c.IsDefault,
		})
	}

	return user
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	userM := &model.UserModel{
		ID:             data.ID,
		Email:          normalizeEmail(data.Email),
		Name:           data.Name,
		Avatar:         data.Avatar,
		PreferredDrink: data.PreferredDrink,
		PasswordHash:   data.PasswordHash,
		Credits:        data.Credits,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}

	for i, a := range data.Addresses {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		userM.Addresses = append(userM.Addresses, model.SavedAddressModel{
			ID:        a.ID,
			UserID:    data.ID,
			Position:  i,
			Label:     a.Label,
			FullName:  a.FullName,
			Street:    a.Street,
			Apartment: a.Apartment,
			City:      a.City,
			State:     a.State,
			ZipCode:   a.ZipCode,
			Phone:     a.Phone,
			IsDefault: a.IsDefault,
		})
	}

	for i, c := range data.Cards {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		userM.Cards = append(userM.Cards, model.SavedCardModel{
			ID:          c.ID,
			UserID:      data.ID,
			Position:    i,
			Type:        string(c.Type),
			LastFour:    c.LastFour,
			HolderName:  c.HolderName,
			ExpiryMonth: c.ExpiryMonth,
			ExpiryYear:  c.ExpiryYear,
			IsDefault:   c.IsDefault,
		})
	}

	return userM
}
