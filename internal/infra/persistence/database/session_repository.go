package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"brewhouse/internal/domain/entity"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/domain/repository"
	"brewhouse/internal/infra/persistence/model"
)

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a SessionRepository backed by GORM.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (repo *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	var sessionM model.SessionModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&sessionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find session by id")
	}

	return toSessionDomain(&sessionM), nil
}

func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	sessionM := fromSessionDomain(session)
	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create session")
	}
	session.CreatedAt = sessionM.CreatedAt
	session.UpdatedAt = sessionM.UpdatedAt

	return nil
}

func (repo *sessionRepository) Update(ctx context.Context, session *entity.Session) error {
	sessionM := fromSessionDomain(session)
	result := repo.db.WithContext(ctx).Model(&model.SessionModel{ID: sessionM.ID}).
		Select("user_id", "is_guest", "discount_code", "theme", "updated_at").
		Updates(sessionM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update session")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSessionNotFound
	}

	return nil
}

func toSessionDomain(data *model.SessionModel) *entity.Session {
	return &entity.Session{
		ID:           data.ID,
		UserID:       data.UserID,
		IsGuest:      data.IsGuest,
		DiscountCode: data.DiscountCode,
		Theme:        entity.Theme(data.Theme),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromSessionDomain(data *entity.Session) *model.SessionModel {
	theme := data.Theme
	if theme == "" {
		theme = entity.ThemeLight
	}

	return &model.SessionModel{
		ID:           data.ID,
		UserID:       data.UserID,
		IsGuest:      data.IsGuest,
		DiscountCode: data.DiscountCode,
		Theme:        string(theme),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
