package domain

import "time"

// Notification is a durable per-recipient record surviving disconnection,
// distinct from ephemeral topic broadcasts. Only the event publisher
// creates these; only the owning recipient marks them read.
type Notification struct {
	ID             string    `json:"id"`
	RecipientEmail string    `json:"recipient_email"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	PropertyID     *string   `json:"property_id,omitempty"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

// ListingDecisionRequest carries the optional admin message attached to an
// approve/reject decision.
type ListingDecisionRequest struct {
	Message string `json:"message"`
}
