package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/estatewave/inquiry-service/internal/domain"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM-based notification repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Create inserts a new notification record.
func (r *GormNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}

	model := domain.NotificationToModel(n)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}

	n.CreatedAt = model.CreatedAt
	return nil
}

// ListByRecipient returns at most limit notifications for the recipient,
// newest first.
func (r *GormNotificationRepository) ListByRecipient(ctx context.Context, email string, limit int) ([]*domain.Notification, error) {
	var models []domain.NotificationModel
	err := r.db.WithContext(ctx).
		Where("recipient_email = ?", email).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Notification, 0, len(models))
	for i := range models {
		out = append(out, models[i].ToDomain())
	}
	return out, nil
}

// GetByIDAndRecipient retrieves a notification only if it belongs to the
// recipient.
func (r *GormNotificationRepository) GetByIDAndRecipient(ctx context.Context, id, email string) (*domain.Notification, error) {
	var model domain.NotificationModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND recipient_email = ?", id, email).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// MarkRead flips the read flag.
func (r *GormNotificationRepository) MarkRead(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&domain.NotificationModel{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
