package events

import (
	"context"

	"github.com/estatewave/inquiry-service/internal/domain"
)

// Publisher delivers events to subscribed clients. Both modes are
// best-effort: a failed push only removes the dead session and is never
// surfaced to the triggering caller.
type Publisher interface {
	// Notify persists a durable notification for the recipient, then
	// pushes it to every live session under the recipient key. Push
	// failures do not roll back the persisted record.
	Notify(ctx context.Context, recipientEmail, title, message string, propertyID *string) (*domain.Notification, error)

	// Broadcast pushes a payload to every live session under the topic.
	// Nothing is persisted; with no subscribers the event is lost.
	Broadcast(topic, event string, payload interface{})
}
