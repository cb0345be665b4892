package domain

import (
	"time"
)

// InquiryModel is the GORM model for the inquiries table.
type InquiryModel struct {
	ID              string     `gorm:"type:varchar(36);primaryKey"`
	UserID          string     `gorm:"type:varchar(36);index;not null"`
	PropertyID      string     `gorm:"type:varchar(36);index;not null"`
	AssignedAgentID *string    `gorm:"type:varchar(36);index"`
	Status          string     `gorm:"type:varchar(16);not null"`
	LastMessageAt   time.Time  `gorm:"index"`
	LastReadAtUser  *time.Time ``
	LastReadAtAdmin *time.Time ``
	CreatedAt       time.Time  `gorm:"autoCreateTime"`

	Messages []InquiryMessageModel `gorm:"foreignKey:InquiryID;constraint:OnDelete:CASCADE"`
}

func (InquiryModel) TableName() string { return "inquiries" }

// ToDomain converts InquiryModel to a domain Inquiry.
func (m *InquiryModel) ToDomain() *Inquiry {
	return &Inquiry{
		ID:              m.ID,
		UserID:          m.UserID,
		PropertyID:      m.PropertyID,
		AssignedAgentID: m.AssignedAgentID,
		Status:          InquiryStatus(m.Status),
		LastMessageAt:   m.LastMessageAt,
		LastReadAtUser:  m.LastReadAtUser,
		LastReadAtAdmin: m.LastReadAtAdmin,
		CreatedAt:       m.CreatedAt,
	}
}

// InquiryToModel converts a domain Inquiry to its GORM model.
func InquiryToModel(i *Inquiry) *InquiryModel {
	return &InquiryModel{
		ID:              i.ID,
		UserID:          i.UserID,
		PropertyID:      i.PropertyID,
		AssignedAgentID: i.AssignedAgentID,
		Status:          string(i.Status),
		LastMessageAt:   i.LastMessageAt,
		LastReadAtUser:  i.LastReadAtUser,
		LastReadAtAdmin: i.LastReadAtAdmin,
		CreatedAt:       i.CreatedAt,
	}
}

// InquiryMessageModel is the GORM model for the inquiry_messages table.
type InquiryMessageModel struct {
	ID         string    `gorm:"type:varchar(36);primaryKey"`
	InquiryID  string    `gorm:"type:varchar(36);index;not null"`
	SenderID   string    `gorm:"type:varchar(36);not null"`
	SenderRole string    `gorm:"type:varchar(16);not null"`
	Text       string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
}

func (InquiryMessageModel) TableName() string { return "inquiry_messages" }

// ToDomain converts InquiryMessageModel to a domain InquiryMessage.
func (m *InquiryMessageModel) ToDomain() *InquiryMessage {
	return &InquiryMessage{
		ID:         m.ID,
		InquiryID:  m.InquiryID,
		SenderID:   m.SenderID,
		SenderRole: Role(m.SenderRole),
		Text:       m.Text,
		CreatedAt:  m.CreatedAt,
	}
}

// MessageToModel converts a domain InquiryMessage to its GORM model.
func MessageToModel(msg *InquiryMessage) *InquiryMessageModel {
	return &InquiryMessageModel{
		ID:         msg.ID,
		InquiryID:  msg.InquiryID,
		SenderID:   msg.SenderID,
		SenderRole: string(msg.SenderRole),
		Text:       msg.Text,
		CreatedAt:  msg.CreatedAt,
	}
}

// NotificationModel is the GORM model for the user_notifications table.
type NotificationModel struct {
	ID             string    `gorm:"type:varchar(36);primaryKey"`
	RecipientEmail string    `gorm:"type:varchar(255);index;not null"`
	Title          string    `gorm:"type:varchar(255);not null"`
	Message        string    `gorm:"type:text;not null"`
	PropertyID     *string   `gorm:"type:varchar(36)"`
	IsRead         bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index"`
}

func (NotificationModel) TableName() string { return "user_notifications" }

// ToDomain converts NotificationModel to a domain Notification.
func (m *NotificationModel) ToDomain() *Notification {
	return &Notification{
		ID:             m.ID,
		RecipientEmail: m.RecipientEmail,
		Title:          m.Title,
		Message:        m.Message,
		PropertyID:     m.PropertyID,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
}

// NotificationToModel converts a domain Notification to its GORM model.
func NotificationToModel(n *Notification) *NotificationModel {
	return &NotificationModel{
		ID:             n.ID,
		RecipientEmail: n.RecipientEmail,
		Title:          n.Title,
		Message:        n.Message,
		PropertyID:     n.PropertyID,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
}

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Role      string    `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (UserModel) TableName() string { return "users" }

// ToDomain converts UserModel to a domain User.
func (m *UserModel) ToDomain() *User {
	return &User{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Role:      Role(m.Role),
		CreatedAt: m.CreatedAt,
	}
}

// AgentModel is the GORM model for the agents table.
type AgentModel struct {
	ID           string  `gorm:"type:varchar(36);primaryKey"`
	Name         string  `gorm:"type:varchar(100);not null"`
	LinkedUserID *string `gorm:"type:varchar(36);uniqueIndex"`
}

func (AgentModel) TableName() string { return "agents" }

// ToDomain converts AgentModel to a domain Agent.
func (m *AgentModel) ToDomain() *Agent {
	return &Agent{
		ID:           m.ID,
		Name:         m.Name,
		LinkedUserID: m.LinkedUserID,
	}
}

// PropertyModel is the GORM model for the properties table.
type PropertyModel struct {
	ID              string    `gorm:"type:varchar(36);primaryKey"`
	Title           string    `gorm:"type:varchar(255);not null"`
	Address         string    `gorm:"type:varchar(255)"`
	OwnerEmail      string    `gorm:"type:varchar(255);index;not null"`
	AssignedAgentID *string   `gorm:"type:varchar(36);index"`
	Status          string    `gorm:"type:varchar(16);index;not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (PropertyModel) TableName() string { return "properties" }

// ToDomain converts PropertyModel to a domain Property.
func (m *PropertyModel) ToDomain() *Property {
	return &Property{
		ID:              m.ID,
		Title:           m.Title,
		Address:         m.Address,
		OwnerEmail:      m.OwnerEmail,
		AssignedAgentID: m.AssignedAgentID,
		Status:          PropertyStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
