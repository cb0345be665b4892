package service

import (
	"context"
	"errors"

	"github.com/estatewave/inquiry-service/internal/domain"
)

var (
	ErrPropertyNotFound     = errors.New("property not found")
	ErrInquiryNotFound      = errors.New("inquiry not found")
	ErrAgentNotFound        = errors.New("agent profile not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrAccessDenied         = errors.New("access denied")
	ErrInquiryClosed        = errors.New("cannot send messages to a closed inquiry")
	ErrEmptyMessage         = errors.New("message text must not be empty")
	ErrListingNotPending    = errors.New("listing is not pending")
)

// Identity is the verified caller of an operation, as resolved by the
// auth middleware.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Role   domain.Role
}

// InquiryService owns the inquiry thread state machine: creation, access
// control, status transitions and read-marker bookkeeping. Every mutation
// asks the event publisher to notify the relevant parties.
type InquiryService interface {
	Create(ctx context.Context, actor Identity, req *domain.CreateInquiryRequest) (*domain.InquirySummary, error)
	ListForUser(ctx context.Context, userID string) ([]*domain.InquirySummary, error)
	ListAll(ctx context.Context, status *domain.InquiryStatus) ([]*domain.InquirySummary, error)
	ListForAgent(ctx context.Context, actor Identity, status *domain.InquiryStatus) ([]*domain.InquirySummary, error)
	GetMessages(ctx context.Context, inquiryID string, actor Identity) ([]*domain.MessageView, error)
	SendMessage(ctx context.Context, inquiryID string, actor Identity, req *domain.SendMessageRequest) (*domain.MessageView, error)
	Close(ctx context.Context, inquiryID string, actor Identity) error
	Reassign(ctx context.Context, inquiryID, agentID string, actor Identity) (*domain.InquirySummary, error)
}

// NotificationService reads and mutates durable per-user notifications.
type NotificationService interface {
	List(ctx context.Context, email string) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, email string) (*domain.Notification, error)
}

// ListingService handles admin moderation decisions on pending
// properties; each decision triggers a durable notification to the
// property owner.
type ListingService interface {
	Pending(ctx context.Context) ([]*domain.Property, error)
	Approve(ctx context.Context, propertyID, message string, actor Identity) (*domain.Property, error)
	Reject(ctx context.Context, propertyID, reason string, actor Identity) (*domain.Property, error)
}
