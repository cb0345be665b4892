package repository

import (
	"context"
	"errors"

	"github.com/estatewave/inquiry-service/internal/domain"
)

var (
	ErrInquiryNotFound      = errors.New("inquiry not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrPropertyNotFound     = errors.New("property not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrAgentNotFound        = errors.New("agent not found")
)

// InquiryRepository persists inquiry threads and their messages.
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *domain.Inquiry) error
	GetByID(ctx context.Context, id string) (*domain.Inquiry, error)
	// Update persists the mutable thread fields: status, assigned agent,
	// lastMessageAt and both read markers.
	Update(ctx context.Context, inquiry *domain.Inquiry) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Inquiry, error)
	ListAll(ctx context.Context, status *domain.InquiryStatus) ([]*domain.Inquiry, error)
	ListByAgent(ctx context.Context, agentID string, status *domain.InquiryStatus) ([]*domain.Inquiry, error)

	CreateMessage(ctx context.Context, msg *domain.InquiryMessage) error
	Messages(ctx context.Context, inquiryID string) ([]*domain.InquiryMessage, error)
	LastMessage(ctx context.Context, inquiryID string) (*domain.InquiryMessage, error)
}

// NotificationRepository persists durable per-user notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByRecipient(ctx context.Context, email string, limit int) ([]*domain.Notification, error)
	GetByIDAndRecipient(ctx context.Context, id, email string) (*domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

// DirectoryRepository resolves marketplace collaborators by id: properties,
// users and agent profiles. The inquiry engine only reads these; the
// listing decision flow also moves property status.
type DirectoryRepository interface {
	PropertyByID(ctx context.Context, id string) (*domain.Property, error)
	PendingProperties(ctx context.Context) ([]*domain.Property, error)
	UpdatePropertyStatus(ctx context.Context, id string, status domain.PropertyStatus) error

	UserByID(ctx context.Context, id string) (*domain.User, error)
	UserByEmail(ctx context.Context, email string) (*domain.User, error)

	AgentByID(ctx context.Context, id string) (*domain.Agent, error)
	AgentByLinkedUserID(ctx context.Context, userID string) (*domain.Agent, error)
}
