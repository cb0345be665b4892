package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/estatewave/inquiry-service/internal/domain"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.InquiryModel{},
		&domain.InquiryMessageModel{},
		&domain.NotificationModel{},
		&domain.UserModel{},
		&domain.AgentModel{},
		&domain.PropertyModel{},
	))
	return db
}

func newInquiry(userID, propertyID string, lastMessageAt time.Time) *domain.Inquiry {
	return &domain.Inquiry{
		UserID:        userID,
		PropertyID:    propertyID,
		Status:        domain.StatusPending,
		LastMessageAt: lastMessageAt,
		CreatedAt:     lastMessageAt,
	}
}

func TestInquiryCreateAndGet(t *testing.T) {
	repo := NewGormInquiryRepository(testDB(t))
	ctx := context.Background()

	inquiry := newInquiry("u1", "p1", time.Now())
	require.NoError(t, repo.Create(ctx, inquiry))
	require.NotEmpty(t, inquiry.ID)

	got, err := repo.GetByID(ctx, inquiry.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Nil(t, got.LastReadAtAdmin)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrInquiryNotFound)
}

func TestInquiryUpdatePersistsMutableFields(t *testing.T) {
	repo := NewGormInquiryRepository(testDB(t))
	ctx := context.Background()

	inquiry := newInquiry("u1", "p1", time.Now())
	require.NoError(t, repo.Create(ctx, inquiry))

	now := time.Now()
	agentID := "g1"
	inquiry.Status = domain.StatusReplied
	inquiry.AssignedAgentID = &agentID
	inquiry.LastReadAtAdmin = &now
	require.NoError(t, repo.Update(ctx, inquiry))

	got, err := repo.GetByID(ctx, inquiry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReplied, got.Status)
	require.NotNil(t, got.AssignedAgentID)
	assert.Equal(t, "g1", *got.AssignedAgentID)
	assert.NotNil(t, got.LastReadAtAdmin)
}

func TestInquiryUpdateMissingRow(t *testing.T) {
	repo := NewGormInquiryRepository(testDB(t))

	err := repo.Update(context.Background(), &domain.Inquiry{ID: "ghost", Status: domain.StatusClosed})
	assert.ErrorIs(t, err, ErrInquiryNotFound)
}

func TestInquiryListsOrderByActivity(t *testing.T) {
	repo := NewGormInquiryRepository(testDB(t))
	ctx := context.Background()

	old := newInquiry("u1", "p1", time.Now().Add(-time.Hour))
	fresh := newInquiry("u1", "p2", time.Now())
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, fresh))

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, fresh.ID, list[0].ID)
	assert.Equal(t, old.ID, list[1].ID)
}

func TestInquiryListAllStatusFilter(t *testing.T) {
	repo := NewGormInquiryRepository(testDB(t))
	ctx := context.Background()

	open := newInquiry("u1", "p1", time.Now())
	require.NoError(t, repo.Create(ctx, open))

	closed := newInquiry("u2", "p2", time.Now())
	closed.Status = domain.StatusClosed
	require.NoError(t, repo.Create(ctx, closed))

	pending := domain.StatusPending
	list, err := repo.ListAll(ctx, &pending)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, open.ID, list[0].ID)

	all, err := repo.ListAll(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestInquiryListByAgent(t *testing.T) {
	repo := NewGormInquiryRepository(testDB(t))
	ctx := context.Background()

	agentID := "g1"
	mine := newInquiry("u1", "p1", time.Now())
	mine.AssignedAgentID = &agentID
	require.NoError(t, repo.Create(ctx, mine))
	require.NoError(t, repo.Create(ctx, newInquiry("u2", "p2", time.Now())))

	list, err := repo.ListByAgent(ctx, "g1", nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)
}

func TestMessagesCreationOrderAndLast(t *testing.T) {
	repo := NewGormInquiryRepository(testDB(t))
	ctx := context.Background()

	inquiry := newInquiry("u1", "p1", time.Now())
	require.NoError(t, repo.Create(ctx, inquiry))

	base := time.Now().Add(-time.Minute)
	for i, text := range []string{"first", "second", "third"} {
		msg := &domain.InquiryMessage{
			InquiryID:  inquiry.ID,
			SenderID:   "u1",
			SenderRole: domain.RoleUser,
			Text:       text,
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.CreateMessage(ctx, msg))
	}

	msgs, err := repo.Messages(ctx, inquiry.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "first", msgs[0].Text)
	assert.Equal(t, "third", msgs[2].Text)

	last, err := repo.LastMessage(ctx, inquiry.ID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "third", last.Text)
}

func TestLastMessageEmptyThread(t *testing.T) {
	repo := NewGormInquiryRepository(testDB(t))

	last, err := repo.LastMessage(context.Background(), "empty")
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestNotificationListIsLimitedAndNewestFirst(t *testing.T) {
	repo := NewGormNotificationRepository(testDB(t))
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		n := &domain.Notification{
			RecipientEmail: "uma@example.com",
			Title:          "t",
			Message:        "m",
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, n))
	}

	list, err := repo.ListByRecipient(ctx, "uma@example.com", 3)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, list[0].CreatedAt.After(list[2].CreatedAt))
}

func TestNotificationOwnershipScopedLookup(t *testing.T) {
	repo := NewGormNotificationRepository(testDB(t))
	ctx := context.Background()

	n := &domain.Notification{RecipientEmail: "uma@example.com", Title: "t", Message: "m"}
	require.NoError(t, repo.Create(ctx, n))

	got, err := repo.GetByIDAndRecipient(ctx, n.ID, "uma@example.com")
	require.NoError(t, err)
	assert.Equal(t, n.ID, got.ID)

	_, err = repo.GetByIDAndRecipient(ctx, n.ID, "intruder@example.com")
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestNotificationMarkRead(t *testing.T) {
	repo := NewGormNotificationRepository(testDB(t))
	ctx := context.Background()

	n := &domain.Notification{RecipientEmail: "uma@example.com", Title: "t", Message: "m"}
	require.NoError(t, repo.Create(ctx, n))

	require.NoError(t, repo.MarkRead(ctx, n.ID))
	got, err := repo.GetByIDAndRecipient(ctx, n.ID, "uma@example.com")
	require.NoError(t, err)
	assert.True(t, got.IsRead)

	assert.ErrorIs(t, repo.MarkRead(ctx, "ghost"), ErrNotificationNotFound)
}

func TestDirectoryLookups(t *testing.T) {
	db := testDB(t)
	repo := NewGormDirectoryRepository(db)
	ctx := context.Background()

	linked := "u-agent"
	require.NoError(t, db.Create(&domain.UserModel{ID: "u1", Name: "Uma", Email: "uma@example.com", Role: string(domain.RoleUser)}).Error)
	require.NoError(t, db.Create(&domain.AgentModel{ID: "g1", Name: "Greg", LinkedUserID: &linked}).Error)
	require.NoError(t, db.Create(&domain.PropertyModel{ID: "p1", Title: "Villa", Status: string(domain.PropertyPending), OwnerEmail: "o@example.com"}).Error)

	user, err := repo.UserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Uma", user.Name)

	user, err = repo.UserByEmail(ctx, "uma@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	agent, err := repo.AgentByLinkedUserID(ctx, "u-agent")
	require.NoError(t, err)
	assert.Equal(t, "g1", agent.ID)

	_, err = repo.AgentByLinkedUserID(ctx, "nobody")
	assert.ErrorIs(t, err, ErrAgentNotFound)

	property, err := repo.PropertyByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Villa", property.Title)

	_, err = repo.PropertyByID(ctx, "ghost")
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestPendingPropertiesAndDecision(t *testing.T) {
	db := testDB(t)
	repo := NewGormDirectoryRepository(db)
	ctx := context.Background()

	older := &domain.PropertyModel{ID: "p1", Title: "A", Status: string(domain.PropertyPending), CreatedAt: time.Now().Add(-time.Hour)}
	newer := &domain.PropertyModel{ID: "p2", Title: "B", Status: string(domain.PropertyPending), CreatedAt: time.Now()}
	approved := &domain.PropertyModel{ID: "p3", Title: "C", Status: string(domain.PropertyApproved), CreatedAt: time.Now()}
	for _, m := range []*domain.PropertyModel{older, newer, approved} {
		require.NoError(t, db.Create(m).Error)
	}

	pending, err := repo.PendingProperties(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "p1", pending[0].ID)

	require.NoError(t, repo.UpdatePropertyStatus(ctx, "p1", domain.PropertyApproved))
	got, err := repo.PropertyByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.PropertyApproved, got.Status)

	assert.ErrorIs(t, repo.UpdatePropertyStatus(ctx, "ghost", domain.PropertyRejected), ErrPropertyNotFound)
}
