package service

import (
	"context"
	"errors"

	"github.com/estatewave/inquiry-service/internal/audit"
	"github.com/estatewave/inquiry-service/internal/domain"
	"github.com/estatewave/inquiry-service/internal/repository"
)

// listLimit caps the notification panel at the newest entries.
const listLimit = 50

type notificationService struct {
	notifications repository.NotificationRepository
}

// NewNotificationService creates the durable notification reader.
func NewNotificationService(notifications repository.NotificationRepository) NotificationService {
	return &notificationService{notifications: notifications}
}

// List returns the recipient's newest notifications, capped at 50.
func (s *notificationService) List(ctx context.Context, email string) ([]*domain.Notification, error) {
	return s.notifications.ListByRecipient(ctx, email, listLimit)
}

// MarkRead flips the read flag on a notification owned by email. A
// notification belonging to someone else is indistinguishable from a
// missing one.
func (s *notificationService) MarkRead(ctx context.Context, id, email string) (*domain.Notification, error) {
	n, err := s.notifications.GetByIDAndRecipient(ctx, id, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}

	if !n.IsRead {
		if err := s.notifications.MarkRead(ctx, n.ID); err != nil {
			return nil, err
		}
		n.IsRead = true
	}

	audit.Log(ctx, audit.ActionNotificationRead, email, n.ID, "notification read")
	return n, nil
}
