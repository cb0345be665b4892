package domain

import "time"

// InquiryStatus is the lifecycle state of an inquiry thread.
//
//	PENDING - waiting for an agent/admin response
//	REPLIED - an agent or admin has responded
//	CLOSED  - resolved; terminal, no further messages accepted
type InquiryStatus string

const (
	StatusPending InquiryStatus = "PENDING"
	StatusReplied InquiryStatus = "REPLIED"
	StatusClosed  InquiryStatus = "CLOSED"
)

// Valid reports whether s is a known status value.
func (s InquiryStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReplied, StatusClosed:
		return true
	}
	return false
}

// AcceptsMessages reports whether new messages may be appended.
func (s InquiryStatus) AcceptsMessages() bool {
	return s != StatusClosed
}

// Role is the closed set of identities known to the marketplace.
type Role string

const (
	RoleUser   Role = "USER"
	RoleAgent  Role = "AGENT"
	RoleAdmin  Role = "ADMIN"
	RoleSeller Role = "SELLER"
)

// Valid reports whether r is a known role value.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAgent, RoleAdmin, RoleSeller:
		return true
	}
	return false
}

// StaffSide reports whether the role reads the thread from the admin/agent
// side, which shares a single read marker.
func (r Role) StaffSide() bool {
	switch r {
	case RoleAgent, RoleAdmin:
		return true
	case RoleUser, RoleSeller:
		return false
	}
	return false
}

// Inquiry is a conversation thread between a prospective buyer and the
// party responsible for one property.
type Inquiry struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	PropertyID      string        `json:"property_id"`
	AssignedAgentID *string       `json:"assigned_agent_id,omitempty"`
	Status          InquiryStatus `json:"status"`
	LastMessageAt   time.Time     `json:"last_message_at"`
	LastReadAtUser  *time.Time    `json:"last_read_at_user,omitempty"`
	LastReadAtAdmin *time.Time    `json:"last_read_at_admin,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

// UnreadForAdmin reports whether the thread has messages the admin/agent
// side has not seen: marker unset, or activity strictly after it.
func (i *Inquiry) UnreadForAdmin() bool {
	if i.LastReadAtAdmin == nil {
		return true
	}
	return i.LastMessageAt.After(*i.LastReadAtAdmin)
}

// UnreadForUser is the symmetric derivation for the initiating user,
// defaulting the marker to the creation time when unset.
func (i *Inquiry) UnreadForUser() bool {
	lastRead := i.CreatedAt
	if i.LastReadAtUser != nil {
		lastRead = *i.LastReadAtUser
	}
	return i.LastMessageAt.After(lastRead)
}

// InquiryMessage is a single immutable message within a thread.
type InquiryMessage struct {
	ID         string    `json:"id"`
	InquiryID  string    `json:"inquiry_id"`
	SenderID   string    `json:"sender_id"`
	SenderRole Role      `json:"sender_role"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

const previewLimit = 100

// MessagePreview truncates a message for list views, appending an
// ellipsis when the text exceeds the preview limit.
func MessagePreview(text string) string {
	runes := []rune(text)
	if len(runes) > previewLimit {
		return string(runes[:previewLimit]) + "..."
	}
	return text
}

// FirstMessagePreview truncates the first message shown on the creation
// summary. Unlike list previews it carries no ellipsis.
func FirstMessagePreview(text string) string {
	runes := []rune(text)
	if len(runes) > previewLimit {
		return string(runes[:previewLimit])
	}
	return text
}

// InquirySummary is the list/creation view of an inquiry.
type InquirySummary struct {
	ID                 string        `json:"id"`
	UserID             string        `json:"user_id"`
	UserName           string        `json:"user_name"`
	PropertyID         string        `json:"property_id"`
	PropertyTitle      string        `json:"property_title"`
	PropertyAddress    string        `json:"property_address"`
	AssignedAgentID    *string       `json:"assigned_agent_id,omitempty"`
	AssignedAgentName  *string       `json:"assigned_agent_name,omitempty"`
	Status             InquiryStatus `json:"status"`
	LastMessagePreview string        `json:"last_message_preview"`
	LastMessageAt      time.Time     `json:"last_message_at"`
	CreatedAt          time.Time     `json:"created_at"`
	HasUnread          bool          `json:"has_unread"`
}

// MessageView is the API view of a single thread message.
type MessageView struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	SenderRole Role      `json:"sender_role"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateInquiryRequest opens a new inquiry thread on a property.
type CreateInquiryRequest struct {
	PropertyID string `json:"property_id" binding:"required"`
	Message    string `json:"message" binding:"required"`
}

// SendMessageRequest appends a message to an existing thread.
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// ReassignRequest moves an inquiry to a different agent.
type ReassignRequest struct {
	AgentID string `json:"agent_id" binding:"required"`
}
