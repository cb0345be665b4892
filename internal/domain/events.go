package domain

// Stream event names delivered to subscribed clients.
const (
	EventConnected    = "connected"
	EventNotification = "notification"
	EventInquiry      = "inquiry"
	EventMessage      = "message"
)

// WebSocket message types from client.
const (
	MsgTypeSubscribe   = "subscribe"
	MsgTypeUnsubscribe = "unsubscribe"
	MsgTypePing        = "ping"
)

// WebSocket message types to client.
const (
	MsgTypeEvent      = "event"
	MsgTypeSubscribed = "subscribed"
	MsgTypeError      = "error"
	MsgTypePong       = "pong"
)

// Error codes
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
)

// BaseMessage is the base structure for all WebSocket messages.
type BaseMessage struct {
	Type string `json:"type"`
}

// SubscribeMessage asks to join or leave a broadcast topic.
type SubscribeMessage struct {
	Type  string `json:"type"`
	Topic string `json:"topic"`
}

// SubscribedMessage acknowledges a topic subscription change.
type SubscribedMessage struct {
	Type   string `json:"type"`
	Topic  string `json:"topic"`
	Active bool   `json:"active"`
}

// ErrorMessage reports a protocol error to the client.
type ErrorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorMessage builds an error frame.
func NewErrorMessage(code, message string) ErrorMessage {
	return ErrorMessage{Type: MsgTypeError, Code: code, Message: message}
}
