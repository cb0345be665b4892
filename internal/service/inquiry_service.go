package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/estatewave/inquiry-service/internal/audit"
	"github.com/estatewave/inquiry-service/internal/cache"
	"github.com/estatewave/inquiry-service/internal/domain"
	"github.com/estatewave/inquiry-service/internal/events"
	"github.com/estatewave/inquiry-service/internal/repository"
	"github.com/estatewave/inquiry-service/pkg/log"
)

// inquiryService implements InquiryService.
type inquiryService struct {
	inquiries repository.InquiryRepository
	directory repository.DirectoryRepository
	publisher events.Publisher
	dirCache  *cache.RedisDirectoryCache
}

// NewInquiryService creates the inquiry thread engine. dirCache may be
// nil, in which case directory lookups always hit the repository.
func NewInquiryService(
	inquiries repository.InquiryRepository,
	directory repository.DirectoryRepository,
	publisher events.Publisher,
	dirCache *cache.RedisDirectoryCache,
) InquiryService {
	return &inquiryService{
		inquiries: inquiries,
		directory: directory,
		publisher: publisher,
		dirCache:  dirCache,
	}
}

// Create opens a new inquiry thread with its first message and notifies
// the admin queue plus the assigned agent, if any.
func (s *inquiryService) Create(ctx context.Context, actor Identity, req *domain.CreateInquiryRequest) (*domain.InquirySummary, error) {
	l := log.Ctx(ctx)

	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}

	property, err := s.resolveProperty(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inquiry := &domain.Inquiry{
		UserID:          actor.UserID,
		PropertyID:      property.ID,
		AssignedAgentID: property.AssignedAgentID, // auto-assign from property
		Status:          domain.StatusPending,
		LastMessageAt:   now,
		CreatedAt:       now,
	}
	if err := s.inquiries.Create(ctx, inquiry); err != nil {
		l.Error().Err(err).Str(log.FieldPropertyID, property.ID).Msg("failed to create inquiry")
		return nil, err
	}

	msg := &domain.InquiryMessage{
		InquiryID:  inquiry.ID,
		SenderID:   actor.UserID,
		SenderRole: actor.Role,
		Text:       req.Message,
		CreatedAt:  now,
	}
	if err := s.inquiries.CreateMessage(ctx, msg); err != nil {
		l.Error().Err(err).Str(log.FieldInquiryID, inquiry.ID).Msg("failed to create first message")
		return nil, err
	}

	summary := s.buildSummary(ctx, inquiry, domain.FirstMessagePreview(req.Message))

	s.publisher.Broadcast(events.TopicAdminInquiries(), domain.EventInquiry, summary)
	if inquiry.AssignedAgentID != nil {
		if agent, err := s.directory.AgentByID(ctx, *inquiry.AssignedAgentID); err == nil && agent.LinkedUserID != nil {
			s.publisher.Broadcast(events.TopicAgentInquiries(*agent.LinkedUserID), domain.EventInquiry, summary)
		}
	}

	audit.Log(ctx, audit.ActionInquiryCreate, actor.UserID, inquiry.ID, "inquiry created")
	l.Info().
		Str(log.FieldInquiryID, inquiry.ID).
		Str(log.FieldPropertyID, property.ID).
		Msg("inquiry created")

	return summary, nil
}

// ListForUser returns the user's own inquiries, newest activity first.
func (s *inquiryService) ListForUser(ctx context.Context, userID string) ([]*domain.InquirySummary, error) {
	inquiries, err := s.inquiries.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summarizeAll(ctx, inquiries), nil
}

// ListAll returns every inquiry for the admin console, optionally
// filtered by status.
func (s *inquiryService) ListAll(ctx context.Context, status *domain.InquiryStatus) ([]*domain.InquirySummary, error) {
	inquiries, err := s.inquiries.ListAll(ctx, status)
	if err != nil {
		return nil, err
	}
	return s.summarizeAll(ctx, inquiries), nil
}

// ListForAgent returns inquiries assigned to the calling agent.
func (s *inquiryService) ListForAgent(ctx context.Context, actor Identity, status *domain.InquiryStatus) ([]*domain.InquirySummary, error) {
	agent, err := s.directory.AgentByLinkedUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrAgentNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}

	inquiries, err := s.inquiries.ListByAgent(ctx, agent.ID, status)
	if err != nil {
		return nil, err
	}
	return s.summarizeAll(ctx, inquiries), nil
}

// GetMessages returns the thread in creation order and, as a side
// effect, advances the caller's read marker.
func (s *inquiryService) GetMessages(ctx context.Context, inquiryID string, actor Identity) ([]*domain.MessageView, error) {
	inquiry, err := s.getAuthorized(ctx, inquiryID, actor)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if actor.Role.StaffSide() {
		inquiry.LastReadAtAdmin = &now
	} else {
		inquiry.LastReadAtUser = &now
	}
	if err := s.inquiries.Update(ctx, inquiry); err != nil {
		return nil, err
	}

	msgs, err := s.inquiries.Messages(ctx, inquiryID)
	if err != nil {
		return nil, err
	}

	views := make([]*domain.MessageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, s.toMessageView(ctx, m))
	}
	return views, nil
}

// SendMessage appends a message to the thread, runs the status
// transition and broadcasts to the counter-party's topics.
func (s *inquiryService) SendMessage(ctx context.Context, inquiryID string, actor Identity, req *domain.SendMessageRequest) (*domain.MessageView, error) {
	l := log.Ctx(ctx)

	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyMessage
	}

	inquiry, err := s.getAuthorized(ctx, inquiryID, actor)
	if err != nil {
		return nil, err
	}
	if !inquiry.Status.AcceptsMessages() {
		return nil, ErrInquiryClosed
	}

	now := time.Now()
	msg := &domain.InquiryMessage{
		InquiryID:  inquiry.ID,
		SenderID:   actor.UserID,
		SenderRole: actor.Role,
		Text:       req.Text,
		CreatedAt:  now,
	}
	if err := s.inquiries.CreateMessage(ctx, msg); err != nil {
		l.Error().Err(err).Str(log.FieldInquiryID, inquiry.ID).Msg("failed to append message")
		return nil, err
	}

	inquiry.LastMessageAt = now
	if actor.Role.StaffSide() {
		inquiry.Status = domain.StatusReplied
		inquiry.LastReadAtAdmin = &now
	} else {
		if inquiry.Status == domain.StatusReplied {
			inquiry.Status = domain.StatusPending
		}
		inquiry.LastReadAtUser = &now
	}
	if err := s.inquiries.Update(ctx, inquiry); err != nil {
		return nil, err
	}

	view := s.toMessageView(ctx, msg)

	if actor.Role.StaffSide() {
		s.publisher.Broadcast(events.TopicUserInquiry(inquiry.UserID, inquiry.ID), domain.EventMessage, view)
	} else {
		s.publisher.Broadcast(events.TopicAdminInquiry(inquiry.ID), domain.EventMessage, view)
		if inquiry.AssignedAgentID != nil {
			if agent, err := s.directory.AgentByID(ctx, *inquiry.AssignedAgentID); err == nil && agent.LinkedUserID != nil {
				s.publisher.Broadcast(events.TopicAgentInquiry(*agent.LinkedUserID, inquiry.ID), domain.EventMessage, view)
			}
		}
	}

	audit.Log(ctx, audit.ActionInquiryMessage, actor.UserID, inquiry.ID, "message sent")
	return view, nil
}

// Close moves the thread to its terminal state. Non-admin actors must be
// the assigned agent.
func (s *inquiryService) Close(ctx context.Context, inquiryID string, actor Identity) error {
	inquiry, err := s.inquiries.GetByID(ctx, inquiryID)
	if err != nil {
		if errors.Is(err, repository.ErrInquiryNotFound) {
			return ErrInquiryNotFound
		}
		return err
	}

	if err := s.authorizeStaff(ctx, inquiry, actor); err != nil {
		return err
	}

	inquiry.Status = domain.StatusClosed
	if err := s.inquiries.Update(ctx, inquiry); err != nil {
		return err
	}

	audit.Log(ctx, audit.ActionInquiryClose, actor.UserID, inquiry.ID, "inquiry closed")
	return nil
}

// Reassign hands the thread to a different agent and broadcasts the
// updated summary to the new agent's queue. The previous agent is not
// notified.
func (s *inquiryService) Reassign(ctx context.Context, inquiryID, agentID string, actor Identity) (*domain.InquirySummary, error) {
	inquiry, err := s.inquiries.GetByID(ctx, inquiryID)
	if err != nil {
		if errors.Is(err, repository.ErrInquiryNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, err
	}

	agent, err := s.directory.AgentByID(ctx, agentID)
	if err != nil {
		if errors.Is(err, repository.ErrAgentNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}

	inquiry.AssignedAgentID = &agent.ID
	if err := s.inquiries.Update(ctx, inquiry); err != nil {
		return nil, err
	}

	summary := s.summarizeWithLastMessage(ctx, inquiry)
	if agent.LinkedUserID != nil {
		s.publisher.Broadcast(events.TopicAgentInquiries(*agent.LinkedUserID), domain.EventInquiry, summary)
	}

	audit.Log(ctx, audit.ActionInquiryReassign, actor.UserID, inquiry.ID, "inquiry reassigned")
	return summary, nil
}

// getAuthorized loads the thread and checks the actor against the access
// rule: initiating user, assigned agent, or admin.
func (s *inquiryService) getAuthorized(ctx context.Context, inquiryID string, actor Identity) (*domain.Inquiry, error) {
	inquiry, err := s.inquiries.GetByID(ctx, inquiryID)
	if err != nil {
		if errors.Is(err, repository.ErrInquiryNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, err
	}

	switch actor.Role {
	case domain.RoleAdmin:
		return inquiry, nil
	case domain.RoleUser, domain.RoleSeller:
		if inquiry.UserID != actor.UserID {
			return nil, ErrAccessDenied
		}
		return inquiry, nil
	case domain.RoleAgent:
		if err := s.checkAssignedAgent(ctx, inquiry, actor); err != nil {
			return nil, err
		}
		return inquiry, nil
	}
	return nil, ErrAccessDenied
}

// authorizeStaff allows admin unconditionally and agents only when
// assigned; initiating users cannot perform staff operations.
func (s *inquiryService) authorizeStaff(ctx context.Context, inquiry *domain.Inquiry, actor Identity) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleAgent:
		return s.checkAssignedAgent(ctx, inquiry, actor)
	case domain.RoleUser, domain.RoleSeller:
		return ErrAccessDenied
	}
	return ErrAccessDenied
}

func (s *inquiryService) checkAssignedAgent(ctx context.Context, inquiry *domain.Inquiry, actor Identity) error {
	agent, err := s.directory.AgentByLinkedUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrAgentNotFound) {
			return ErrAgentNotFound
		}
		return err
	}
	if inquiry.AssignedAgentID == nil || *inquiry.AssignedAgentID != agent.ID {
		return ErrAccessDenied
	}
	return nil
}

func (s *inquiryService) summarizeAll(ctx context.Context, inquiries []*domain.Inquiry) []*domain.InquirySummary {
	out := make([]*domain.InquirySummary, 0, len(inquiries))
	for _, inquiry := range inquiries {
		out = append(out, s.summarizeWithLastMessage(ctx, inquiry))
	}
	return out
}

func (s *inquiryService) summarizeWithLastMessage(ctx context.Context, inquiry *domain.Inquiry) *domain.InquirySummary {
	preview := ""
	if last, err := s.inquiries.LastMessage(ctx, inquiry.ID); err == nil && last != nil {
		preview = domain.MessagePreview(last.Text)
	}
	return s.buildSummary(ctx, inquiry, preview)
}

func (s *inquiryService) buildSummary(ctx context.Context, inquiry *domain.Inquiry, preview string) *domain.InquirySummary {
	summary := &domain.InquirySummary{
		ID:                 inquiry.ID,
		UserID:             inquiry.UserID,
		UserName:           s.lookupUserName(ctx, inquiry.UserID),
		PropertyID:         inquiry.PropertyID,
		AssignedAgentID:    inquiry.AssignedAgentID,
		Status:             inquiry.Status,
		LastMessagePreview: preview,
		LastMessageAt:      inquiry.LastMessageAt,
		CreatedAt:          inquiry.CreatedAt,
		HasUnread:          inquiry.UnreadForAdmin(),
	}

	if property, err := s.resolveProperty(ctx, inquiry.PropertyID); err == nil {
		summary.PropertyTitle = property.Title
		summary.PropertyAddress = property.Address
	}
	if inquiry.AssignedAgentID != nil {
		if agent, err := s.directory.AgentByID(ctx, *inquiry.AssignedAgentID); err == nil {
			summary.AssignedAgentName = &agent.Name
		}
	}
	return summary
}

func (s *inquiryService) toMessageView(ctx context.Context, msg *domain.InquiryMessage) *domain.MessageView {
	return &domain.MessageView{
		ID:         msg.ID,
		SenderID:   msg.SenderID,
		SenderName: s.senderName(ctx, msg),
		SenderRole: msg.SenderRole,
		Text:       msg.Text,
		CreatedAt:  msg.CreatedAt,
	}
}

func (s *inquiryService) senderName(ctx context.Context, msg *domain.InquiryMessage) string {
	switch msg.SenderRole {
	case domain.RoleAdmin:
		return "Admin"
	case domain.RoleUser, domain.RoleAgent, domain.RoleSeller:
		return s.lookupUserName(ctx, msg.SenderID)
	}
	return "Unknown"
}

func (s *inquiryService) lookupUserName(ctx context.Context, userID string) string {
	if user, err := s.dirCache.GetUser(ctx, userID); err == nil {
		return user.Name
	}

	user, err := s.directory.UserByID(ctx, userID)
	if err != nil {
		return "Unknown"
	}
	if err := s.dirCache.SetUser(ctx, user); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldUserID, userID).Msg("failed to cache user")
	}
	return user.Name
}

func (s *inquiryService) resolveProperty(ctx context.Context, propertyID string) (*domain.Property, error) {
	if property, err := s.dirCache.GetProperty(ctx, propertyID); err == nil {
		return property, nil
	}

	property, err := s.directory.PropertyByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	if err := s.dirCache.SetProperty(ctx, property); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldPropertyID, propertyID).Msg("failed to cache property")
	}
	return property, nil
}
