package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/estatewave/inquiry-service/internal/domain"
	"github.com/estatewave/inquiry-service/internal/hub"
)

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	if args.Error(0) == nil && n.ID == "" {
		n.ID = uuid.New().String()
	}
	return args.Error(0)
}

func (m *mockNotificationRepo) ListByRecipient(ctx context.Context, email string, limit int) ([]*domain.Notification, error) {
	args := m.Called(ctx, email, limit)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationRepo) GetByIDAndRecipient(ctx context.Context, id, email string) (*domain.Notification, error) {
	args := m.Called(ctx, id, email)
	if v := args.Get(0); v != nil {
		return v.(*domain.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func TestNotifyPersistsThenPushes(t *testing.T) {
	registry := hub.NewRegistry(4)
	repo := new(mockNotificationRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	session := registry.Subscribe("owner@example.com")
	defer registry.Remove(session)

	p := NewPublisher(registry, repo)
	propertyID := "p1"
	n, err := p.Notify(context.Background(), "owner@example.com", "Listing Approved", "all good", &propertyID)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.IsRead)

	select {
	case ev := <-session.Events():
		assert.Equal(t, domain.EventNotification, ev.Name)
		var got domain.Notification
		require.NoError(t, json.Unmarshal(ev.Data, &got))
		assert.Equal(t, "Listing Approved", got.Title)
		assert.Equal(t, "owner@example.com", got.RecipientEmail)
	default:
		t.Fatal("expected a live push")
	}

	repo.AssertExpectations(t)
}

func TestNotifySkipsEmptyRecipient(t *testing.T) {
	registry := hub.NewRegistry(4)
	repo := new(mockNotificationRepo)

	p := NewPublisher(registry, repo)
	n, err := p.Notify(context.Background(), "  ", "t", "m", nil)
	require.NoError(t, err)
	assert.Nil(t, n)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNotifyReturnsPersistError(t *testing.T) {
	registry := hub.NewRegistry(4)
	repo := new(mockNotificationRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	session := registry.Subscribe("owner@example.com")
	defer registry.Remove(session)

	p := NewPublisher(registry, repo)
	n, err := p.Notify(context.Background(), "owner@example.com", "t", "m", nil)
	require.Error(t, err)
	assert.Nil(t, n)

	// Persistence failed, so nothing went live.
	select {
	case <-session.Events():
		t.Fatal("no push expected after persist failure")
	default:
	}
}

func TestBroadcastReachesEverySessionOnTopic(t *testing.T) {
	registry := hub.NewRegistry(4)
	p := NewPublisher(registry, new(mockNotificationRepo))

	topic := TopicAdminInquiry("i1")
	s1 := registry.Subscribe(topic)
	s2 := registry.Subscribe(topic)
	other := registry.Subscribe(TopicUserInquiry("u1", "i1"))

	p.Broadcast(topic, domain.EventMessage, map[string]string{"text": "hello"})

	for _, s := range []*hub.Session{s1, s2} {
		select {
		case ev := <-s.Events():
			assert.Equal(t, domain.EventMessage, ev.Name)
		default:
			t.Fatal("expected delivery on subscribed session")
		}
	}

	select {
	case <-other.Events():
		t.Fatal("unrelated topic must not receive the event")
	default:
	}
}

func TestBroadcastWithNoSubscribersIsNoOp(t *testing.T) {
	registry := hub.NewRegistry(4)
	p := NewPublisher(registry, new(mockNotificationRepo))

	p.Broadcast(TopicAdminInquiries(), domain.EventInquiry, map[string]string{"id": "i1"})
}

func TestDeadSessionIsPrunedWithoutBlockingOthers(t *testing.T) {
	registry := hub.NewRegistry(1)
	p := NewPublisher(registry, new(mockNotificationRepo))

	topic := TopicAgentInquiries("u-agent")
	stuck := registry.Subscribe(topic)
	live := registry.Subscribe(topic)

	// Fill the stuck session's buffer so the next push fails.
	require.True(t, stuck.TrySend(hub.Event{Name: "inquiry", Data: []byte(`{}`)}))

	p.Broadcast(topic, domain.EventInquiry, map[string]string{"id": "i1"})

	// The live session still got the event; the stuck one is gone.
	select {
	case ev := <-live.Events():
		assert.Equal(t, domain.EventInquiry, ev.Name)
	default:
		t.Fatal("live session should receive the event")
	}
	assert.Equal(t, 1, registry.Len(topic))

	select {
	case <-stuck.Done():
	default:
		t.Fatal("pruned session should be closed")
	}
}

func TestTopicKeys(t *testing.T) {
	assert.Equal(t, "admin/inquiries", TopicAdminInquiries())
	assert.Equal(t, "admin/inquiries/i1", TopicAdminInquiry("i1"))
	assert.Equal(t, "agents/u9/inquiries", TopicAgentInquiries("u9"))
	assert.Equal(t, "agents/u9/inquiries/i1", TopicAgentInquiry("u9", "i1"))
	assert.Equal(t, "users/u3/inquiries/i1", TopicUserInquiry("u3", "i1"))
}
