package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Actor (matches pkg/middleware/auth.go keys)
	FieldUserID = "user_id"
	FieldEmail  = "email"
	FieldRole   = "role"

	// Domain
	FieldInquiryID      = "inquiry_id"
	FieldPropertyID     = "property_id"
	FieldAgentID        = "agent_id"
	FieldNotificationID = "notification_id"
	FieldTopic          = "topic"
	FieldSessionID      = "session_id"
	FieldEvent          = "event"

	// Service
	FieldService = "service"

	// Log type (for audit log)
	FieldLogType = "log_type"
	LogTypeAudit = "audit"
)
