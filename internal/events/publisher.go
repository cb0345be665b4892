package events

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/estatewave/inquiry-service/internal/domain"
	"github.com/estatewave/inquiry-service/internal/hub"
	"github.com/estatewave/inquiry-service/internal/repository"
	"github.com/estatewave/inquiry-service/pkg/log"
)

// streamPublisher implements Publisher over the in-process registry.
type streamPublisher struct {
	registry      *hub.Registry
	notifications repository.NotificationRepository
}

// NewPublisher creates the event publisher.
func NewPublisher(registry *hub.Registry, notifications repository.NotificationRepository) Publisher {
	return &streamPublisher{
		registry:      registry,
		notifications: notifications,
	}
}

// Notify persists the notification first, then pushes it live.
func (p *streamPublisher) Notify(ctx context.Context, recipientEmail, title, message string, propertyID *string) (*domain.Notification, error) {
	l := log.Ctx(ctx)

	if strings.TrimSpace(recipientEmail) == "" {
		l.Warn().Msg("durable notify skipped: empty recipient")
		return nil, nil
	}

	n := &domain.Notification{
		RecipientEmail: recipientEmail,
		Title:          title,
		Message:        message,
		PropertyID:     propertyID,
		IsRead:         false,
	}
	if err := p.notifications.Create(ctx, n); err != nil {
		l.Error().Err(err).Str(log.FieldEmail, recipientEmail).Msg("failed to persist notification")
		return nil, err
	}

	data, err := json.Marshal(n)
	if err != nil {
		l.Error().Err(err).Str(log.FieldNotificationID, n.ID).Msg("failed to marshal notification")
		return n, nil
	}
	p.push(recipientEmail, hub.Event{Name: domain.EventNotification, Data: data})

	return n, nil
}

// Broadcast pushes a payload to the topic's live sessions.
func (p *streamPublisher) Broadcast(topic, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		l := log.L()
		l.Error().Err(err).Str(log.FieldTopic, topic).Str(log.FieldEvent, event).Msg("failed to marshal broadcast payload")
		return
	}
	p.push(topic, hub.Event{Name: event, Data: data})
}

// push delivers an event to every live session under key. Each delivery
// attempt is isolated: a dead session is pruned and the rest still get
// the event.
func (p *streamPublisher) push(key string, ev hub.Event) {
	sessions := p.registry.Snapshot(key)
	if len(sessions) == 0 {
		return
	}

	for _, s := range sessions {
		if !s.TrySend(ev) {
			l := log.L()
			l.Debug().Str(log.FieldSessionID, s.ID).Str(log.FieldTopic, key).Msg("pruning dead session")
			p.registry.Remove(s)
		}
	}
}
