package domain

import "time"

// PropertyStatus is the moderation state of a listed property.
type PropertyStatus string

const (
	PropertyPending  PropertyStatus = "PENDING"
	PropertyApproved PropertyStatus = "APPROVED"
	PropertyRejected PropertyStatus = "REJECTED"
)

// User is a marketplace identity.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Agent is a property agent profile, optionally linked to a login user.
type Agent struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	LinkedUserID *string `json:"linked_user_id,omitempty"`
}

// Property is a marketplace listing.
type Property struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Address         string         `json:"address"`
	OwnerEmail      string         `json:"owner_email"`
	AssignedAgentID *string        `json:"assigned_agent_id,omitempty"`
	Status          PropertyStatus `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
