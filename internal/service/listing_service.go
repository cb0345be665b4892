package service

import (
	"context"
	"errors"
	"strings"

	"github.com/estatewave/inquiry-service/internal/audit"
	"github.com/estatewave/inquiry-service/internal/cache"
	"github.com/estatewave/inquiry-service/internal/domain"
	"github.com/estatewave/inquiry-service/internal/events"
	"github.com/estatewave/inquiry-service/internal/repository"
	"github.com/estatewave/inquiry-service/pkg/log"
)

// Default texts used when the admin submits a decision without a message.
const (
	defaultApprovalMessage = "Your listing has been approved by admin."
	defaultRejectionReason = "No reason provided"

	titleListingApproved = "Listing Approved"
	titleListingRejected = "Listing Rejected"
)

type listingService struct {
	directory repository.DirectoryRepository
	publisher events.Publisher
	dirCache  *cache.RedisDirectoryCache
}

// NewListingService creates the admin moderation service for pending
// properties.
func NewListingService(
	directory repository.DirectoryRepository,
	publisher events.Publisher,
	dirCache *cache.RedisDirectoryCache,
) ListingService {
	return &listingService{
		directory: directory,
		publisher: publisher,
		dirCache:  dirCache,
	}
}

// Pending returns properties awaiting a moderation decision, oldest first.
func (s *listingService) Pending(ctx context.Context) ([]*domain.Property, error) {
	return s.directory.PendingProperties(ctx)
}

// Approve moves a pending property to APPROVED and notifies the owner.
func (s *listingService) Approve(ctx context.Context, propertyID, message string, actor Identity) (*domain.Property, error) {
	if strings.TrimSpace(message) == "" {
		message = defaultApprovalMessage
	}
	return s.decide(ctx, propertyID, domain.PropertyApproved, titleListingApproved, message, audit.ActionListingApprove, actor)
}

// Reject moves a pending property to REJECTED and notifies the owner
// with the given reason.
func (s *listingService) Reject(ctx context.Context, propertyID, reason string, actor Identity) (*domain.Property, error) {
	if strings.TrimSpace(reason) == "" {
		reason = defaultRejectionReason
	}
	return s.decide(ctx, propertyID, domain.PropertyRejected, titleListingRejected, reason, audit.ActionListingReject, actor)
}

func (s *listingService) decide(ctx context.Context, propertyID string, status domain.PropertyStatus, title, message, action string, actor Identity) (*domain.Property, error) {
	l := log.Ctx(ctx)

	property, err := s.directory.PropertyByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	if property.Status != domain.PropertyPending {
		return nil, ErrListingNotPending
	}

	if err := s.directory.UpdatePropertyStatus(ctx, property.ID, status); err != nil {
		return nil, err
	}
	property.Status = status

	if err := s.dirCache.InvalidateProperty(ctx, property.ID); err != nil {
		l.Warn().Err(err).Str(log.FieldPropertyID, property.ID).Msg("failed to invalidate cached property")
	}

	// The decision stands even if the owner notification fails.
	if _, err := s.publisher.Notify(ctx, property.OwnerEmail, title, message, &property.ID); err != nil {
		l.Error().Err(err).Str(log.FieldPropertyID, property.ID).Msg("failed to notify listing owner")
	}

	audit.Log(ctx, action, actor.UserID, property.ID, "listing decision recorded")
	return property, nil
}
