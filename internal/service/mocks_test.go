package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/estatewave/inquiry-service/internal/domain"
)

type mockInquiryRepo struct {
	mock.Mock
}

func (m *mockInquiryRepo) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	args := m.Called(ctx, inquiry)
	if args.Error(0) == nil && inquiry.ID == "" {
		inquiry.ID = uuid.New().String()
	}
	return args.Error(0)
}

func (m *mockInquiryRepo) GetByID(ctx context.Context, id string) (*domain.Inquiry, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Inquiry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInquiryRepo) Update(ctx context.Context, inquiry *domain.Inquiry) error {
	return m.Called(ctx, inquiry).Error(0)
}

func (m *mockInquiryRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Inquiry, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Inquiry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInquiryRepo) ListAll(ctx context.Context, status *domain.InquiryStatus) ([]*domain.Inquiry, error) {
	args := m.Called(ctx, status)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Inquiry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInquiryRepo) ListByAgent(ctx context.Context, agentID string, status *domain.InquiryStatus) ([]*domain.Inquiry, error) {
	args := m.Called(ctx, agentID, status)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Inquiry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInquiryRepo) CreateMessage(ctx context.Context, msg *domain.InquiryMessage) error {
	args := m.Called(ctx, msg)
	if args.Error(0) == nil && msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	return args.Error(0)
}

func (m *mockInquiryRepo) Messages(ctx context.Context, inquiryID string) ([]*domain.InquiryMessage, error) {
	args := m.Called(ctx, inquiryID)
	if v := args.Get(0); v != nil {
		return v.([]*domain.InquiryMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInquiryRepo) LastMessage(ctx context.Context, inquiryID string) (*domain.InquiryMessage, error) {
	args := m.Called(ctx, inquiryID)
	if v := args.Get(0); v != nil {
		return v.(*domain.InquiryMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockDirectoryRepo struct {
	mock.Mock
}

func (m *mockDirectoryRepo) PropertyByID(ctx context.Context, id string) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Property), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDirectoryRepo) PendingProperties(ctx context.Context) ([]*domain.Property, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Property), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDirectoryRepo) UpdatePropertyStatus(ctx context.Context, id string, status domain.PropertyStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockDirectoryRepo) UserByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDirectoryRepo) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if v := args.Get(0); v != nil {
		return v.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDirectoryRepo) AgentByID(ctx context.Context, id string) (*domain.Agent, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Agent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDirectoryRepo) AgentByLinkedUserID(ctx context.Context, userID string) (*domain.Agent, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*domain.Agent), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Notify(ctx context.Context, recipientEmail, title, message string, propertyID *string) (*domain.Notification, error) {
	args := m.Called(ctx, recipientEmail, title, message, propertyID)
	if v := args.Get(0); v != nil {
		return v.(*domain.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPublisher) Broadcast(topic, event string, payload interface{}) {
	m.Called(topic, event, payload)
}
