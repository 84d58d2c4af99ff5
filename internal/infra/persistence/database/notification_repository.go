package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"brewhouse/internal/domain/entity"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/domain/repository"
	"brewhouse/internal/infra/persistence/model"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a NotificationRepository backed by GORM.
func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (repo *notificationRepository) Create(ctx context.Context, notifications ...*entity.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	rows := make([]model.NotificationModel, len(notifications))
	for i, n := range notifications {
		rows[i] = toNotificationModel(n)
	}
	if err := repo.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create notifications")
	}
	for i, n := range notifications {
		n.CreatedAt = rows[i].CreatedAt
	}

	return nil
}

func (repo *notificationRepository) CreateOnce(ctx context.Context, n *entity.Notification) (bool, error) {
	row := toNotificationModel(n)
	result := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row)
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to create notification")
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	n.CreatedAt = row.CreatedAt

	return true, nil
}

func (repo *notificationRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*entity.Notification, error) {
	var rows []model.NotificationModel
	err := repo.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	notifications := make([]*entity.Notification, 0, len(rows))
	for _, row := range rows {
		notifications = append(notifications, &entity.Notification{
			ID:          row.ID,
			SessionID:   row.SessionID,
			Title:       row.Title,
			Description: row.Description,
			Type:        entity.NotificationType(row.Type),
			Read:        row.Read,
			DedupeKey:   dedupeKeyOf(row.DedupeKey),
			CreatedAt:   row.CreatedAt,
		})
	}

	return notifications, nil
}

func (repo *notificationRepository) MarkRead(ctx context.Context, sessionID, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("id = ? AND session_id = ?", id, sessionID).
		Update("read", true)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark notification read")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotificationNotFound
	}

	return nil
}

func (repo *notificationRepository) MarkAllRead(ctx context.Context, sessionID uuid.UUID) error {
	err := repo.db.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("session_id = ? AND read = ?", sessionID, false).
		Update("read", true).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to mark notifications read")
	}

	return nil
}

func (repo *notificationRepository) CountUnread(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("session_id = ? AND read = ?", sessionID, false).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count unread notifications")
	}

	return count, nil
}

func toNotificationModel(n *entity.Notification) model.NotificationModel {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}

	var key *string
	if n.DedupeKey != "" {
		key = &n.DedupeKey
	}

	return model.NotificationModel{
		ID:          n.ID,
		SessionID:   n.SessionID,
		Title:       n.Title,
		Description: n.Description,
		Type:        string(n.Type),
		Read:        n.Read,
		DedupeKey:   key,
		CreatedAt:   n.CreatedAt,
	}
}

func dedupeKeyOf(key *string) string {
	if key == nil {
		return ""
	}

	return *key
}
