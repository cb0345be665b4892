package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/estatewave/inquiry-service/internal/domain"
)

// GormDirectoryRepository implements DirectoryRepository using GORM.
type GormDirectoryRepository struct {
	db *gorm.DB
}

// NewGormDirectoryRepository creates a new GORM-based directory repository.
func NewGormDirectoryRepository(db *gorm.DB) *GormDirectoryRepository {
	return &GormDirectoryRepository{db: db}
}

// PropertyByID retrieves a property by ID.
func (r *GormDirectoryRepository) PropertyByID(ctx context.Context, id string) (*domain.Property, error) {
	var model domain.PropertyModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// PendingProperties lists properties awaiting a moderation decision,
// oldest first.
func (r *GormDirectoryRepository) PendingProperties(ctx context.Context) ([]*domain.Property, error) {
	var models []domain.PropertyModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.PropertyPending)).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Property, 0, len(models))
	for i := range models {
		out = append(out, models[i].ToDomain())
	}
	return out, nil
}

// UpdatePropertyStatus moves a property to a new moderation status.
func (r *GormDirectoryRepository) UpdatePropertyStatus(ctx context.Context, id string, status domain.PropertyStatus) error {
	result := r.db.WithContext(ctx).Model(&domain.PropertyModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

// UserByID retrieves a user by ID.
func (r *GormDirectoryRepository) UserByID(ctx context.Context, id string) (*domain.User, error) {
	var model domain.UserModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// UserByEmail retrieves a user by email.
func (r *GormDirectoryRepository) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model domain.UserModel
	result := r.db.WithContext(ctx).First(&model, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// AgentByID retrieves an agent profile by ID.
func (r *GormDirectoryRepository) AgentByID(ctx context.Context, id string) (*domain.Agent, error) {
	var model domain.AgentModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// AgentByLinkedUserID retrieves the agent profile linked to a login user.
func (r *GormDirectoryRepository) AgentByLinkedUserID(ctx context.Context, userID string) (*domain.Agent, error) {
	var model domain.AgentModel
	result := r.db.WithContext(ctx).First(&model, "linked_user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}
