package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/estatewave/inquiry-service/internal/domain"
)

// GormInquiryRepository implements InquiryRepository using GORM.
type GormInquiryRepository struct {
	db *gorm.DB
}

// NewGormInquiryRepository creates a new GORM-based inquiry repository.
func NewGormInquiryRepository(db *gorm.DB) *GormInquiryRepository {
	return &GormInquiryRepository{db: db}
}

// Create inserts a new inquiry thread.
func (r *GormInquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	if inquiry.ID == "" {
		inquiry.ID = uuid.New().String()
	}

	model := domain.InquiryToModel(inquiry)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}

	inquiry.CreatedAt = model.CreatedAt
	return nil
}

// GetByID retrieves an inquiry by ID.
func (r *GormInquiryRepository) GetByID(ctx context.Context, id string) (*domain.Inquiry, error) {
	var model domain.InquiryModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// Update persists the mutable thread fields.
func (r *GormInquiryRepository) Update(ctx context.Context, inquiry *domain.Inquiry) error {
	result := r.db.WithContext(ctx).Model(&domain.InquiryModel{}).
		Where("id = ?", inquiry.ID).
		Updates(map[string]interface{}{
			"status":             string(inquiry.Status),
			"assigned_agent_id":  inquiry.AssignedAgentID,
			"last_message_at":    inquiry.LastMessageAt,
			"last_read_at_user":  inquiry.LastReadAtUser,
			"last_read_at_admin": inquiry.LastReadAtAdmin,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInquiryNotFound
	}
	return nil
}

// ListByUser returns the user's inquiries, newest activity first.
func (r *GormInquiryRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Inquiry, error) {
	var models []domain.InquiryModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_message_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toInquiries(models), nil
}

// ListAll returns every inquiry, optionally filtered by status.
func (r *GormInquiryRepository) ListAll(ctx context.Context, status *domain.InquiryStatus) ([]*domain.Inquiry, error) {
	q := r.db.WithContext(ctx).Order("last_message_at DESC")
	if status != nil {
		q = q.Where("status = ?", string(*status))
	}

	var models []domain.InquiryModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	return toInquiries(models), nil
}

// ListByAgent returns inquiries assigned to the agent, optionally filtered
// by status.
func (r *GormInquiryRepository) ListByAgent(ctx context.Context, agentID string, status *domain.InquiryStatus) ([]*domain.Inquiry, error) {
	q := r.db.WithContext(ctx).
		Where("assigned_agent_id = ?", agentID).
		Order("last_message_at DESC")
	if status != nil {
		q = q.Where("status = ?", string(*status))
	}

	var models []domain.InquiryModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	return toInquiries(models), nil
}

// CreateMessage appends a message to a thread.
func (r *GormInquiryRepository) CreateMessage(ctx context.Context, msg *domain.InquiryMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}

	model := domain.MessageToModel(msg)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}

	msg.CreatedAt = model.CreatedAt
	return nil
}

// Messages returns all messages of a thread in creation order.
func (r *GormInquiryRepository) Messages(ctx context.Context, inquiryID string) ([]*domain.InquiryMessage, error) {
	var models []domain.InquiryMessageModel
	err := r.db.WithContext(ctx).
		Where("inquiry_id = ?", inquiryID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	msgs := make([]*domain.InquiryMessage, 0, len(models))
	for i := range models {
		msgs = append(msgs, models[i].ToDomain())
	}
	return msgs, nil
}

// LastMessage returns the newest message of a thread, or nil if the thread
// has none.
func (r *GormInquiryRepository) LastMessage(ctx context.Context, inquiryID string) (*domain.InquiryMessage, error) {
	var model domain.InquiryMessageModel
	result := r.db.WithContext(ctx).
		Where("inquiry_id = ?", inquiryID).
		Order("created_at DESC").
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

func toInquiries(models []domain.InquiryModel) []*domain.Inquiry {
	out := make([]*domain.Inquiry, 0, len(models))
	for i := range models {
		out = append(out, models[i].ToDomain())
	}
	return out
}
