package audit

import (
	"context"

	"github.com/estatewave/inquiry-service/pkg/log"
)

// Audit actions for the inquiry service.
const (
	ActionInquiryCreate    = "inquiry.create"
	ActionInquiryMessage   = "inquiry.message"
	ActionInquiryClose     = "inquiry.close"
	ActionInquiryReassign  = "inquiry.reassign"
	ActionNotificationRead = "notification.read"
	ActionListingApprove   = "listing.approve"
	ActionListingReject    = "listing.reject"
)

// Field constants for audit entries.
const (
	FieldAction   = "action"
	FieldTargetID = "target_id"
)

// Log emits a structured audit log entry via the context logger.
func Log(ctx context.Context, action, actorID, targetID, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUserID, actorID).
		Str(FieldTargetID, targetID).
		Msg(msg)
}
