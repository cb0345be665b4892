package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/estatewave/inquiry-service/internal/domain"
	"github.com/estatewave/inquiry-service/internal/hub"
	"github.com/estatewave/inquiry-service/pkg/log"
	"github.com/estatewave/inquiry-service/pkg/middleware"
	"github.com/estatewave/inquiry-service/pkg/response"
)

// StreamHandler serves the two live surfaces: the per-user notification
// stream over SSE and the topic broadcast endpoint over websocket.
type StreamHandler struct {
	registry    *hub.Registry
	auth        *middleware.AuthMiddleware
	wsCfg       hub.ClientConfig
	idleTimeout time.Duration
	upgrader    websocket.Upgrader
}

// NewStreamHandler creates the stream handler. idleTimeout bounds how
// long an SSE session may sit without traffic before the server ends it.
func NewStreamHandler(registry *hub.Registry, auth *middleware.AuthMiddleware, wsCfg hub.ClientConfig, idleTimeout time.Duration) *StreamHandler {
	return &StreamHandler{
		registry:    registry,
		auth:        auth,
		wsCfg:       wsCfg,
		idleTimeout: idleTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// RegisterRoutes mounts the stream endpoints. Both authenticate via a
// token query parameter because EventSource and browser websockets
// cannot set headers.
func (h *StreamHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/notifications/stream", h.NotificationStream)
	api.GET("/ws", h.Websocket)
}

// NotificationStream holds an SSE connection open and forwards the
// caller's durable notifications as they are created. The session ends
// on client disconnect, idle timeout, or registry removal; all three
// converge on the same teardown.
func (h *StreamHandler) NotificationStream(c *gin.Context) {
	claims, err := h.auth.ValidateToken(c.Query("token"))
	if err != nil {
		response.Unauthorized(c, err.Error())
		return
	}
	if strings.TrimSpace(claims.Email) == "" {
		response.Unauthorized(c, "token carries no email")
		return
	}

	session := h.registry.Subscribe(claims.Email)
	defer h.registry.Remove(session)

	l := log.Ctx(c.Request.Context())
	l.Info().
		Str(log.FieldSessionID, session.ID).
		Str(log.FieldEmail, claims.Email).
		Msg("notification stream opened")

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.SSEvent(domain.EventConnected, gin.H{"session_id": session.ID})
	c.Writer.Flush()

	idle := time.NewTimer(h.idleTimeout)
	defer idle.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case ev := <-session.Events():
			c.SSEvent(ev.Name, string(ev.Data))
			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(h.idleTimeout)
			return true
		case <-idle.C:
			l.Info().Str(log.FieldSessionID, session.ID).Msg("notification stream idle timeout")
			return false
		case <-session.Done():
			return false
		case <-ctx.Done():
			return false
		}
	})
}

// Websocket upgrades the connection and serves topic subscriptions over
// it until either pump exits.
func (h *StreamHandler) Websocket(c *gin.Context) {
	claims, err := h.auth.ValidateToken(c.Query("token"))
	if err != nil {
		response.Unauthorized(c, err.Error())
		return
	}

	role := domain.Role(claims.Role)
	if !role.Valid() {
		response.Unauthorized(c, "unknown role")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		l := log.Ctx(c.Request.Context())
		l.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := hub.NewClient(uuid.New().String(), claims.UserID, role, conn, h.registry, h.wsCfg)

	client.SendMessage(gin.H{
		"type":       domain.EventConnected,
		"session_id": client.ID,
	})

	go client.WritePump()
	client.ReadPump(h.handleClientMessage)
}

func (h *StreamHandler) handleClientMessage(client *hub.Client, raw []byte) {
	var base domain.BaseMessage
	if err := json.Unmarshal(raw, &base); err != nil {
		client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "malformed message"))
		return
	}

	switch base.Type {
	case domain.MsgTypeSubscribe:
		h.handleSubscribe(client, raw, true)
	case domain.MsgTypeUnsubscribe:
		h.handleSubscribe(client, raw, false)
	case domain.MsgTypePing:
		client.SendMessage(domain.BaseMessage{Type: domain.MsgTypePong})
	default:
		client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "unknown message type"))
	}
}

func (h *StreamHandler) handleSubscribe(client *hub.Client, raw []byte, subscribe bool) {
	var msg domain.SubscribeMessage
	if err := json.Unmarshal(raw, &msg); err != nil || msg.Topic == "" {
		client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "missing topic"))
		return
	}

	if !topicAllowed(client.UserID, client.Role, msg.Topic) {
		client.SendMessage(domain.NewErrorMessage(domain.ErrCodeUnauthorized, "topic not permitted"))
		return
	}

	if subscribe {
		client.Subscribe(msg.Topic)
	} else {
		client.Unsubscribe(msg.Topic)
	}

	client.SendMessage(domain.SubscribedMessage{
		Type:   domain.MsgTypeSubscribed,
		Topic:  msg.Topic,
		Active: subscribe,
	})
}

// topicAllowed checks a subscription request against the caller's role.
// Admins may watch any topic; agents and users are confined to the
// subtree keyed by their own user id.
func topicAllowed(userID string, role domain.Role, topic string) bool {
	switch role {
	case domain.RoleAdmin:
		return true
	case domain.RoleAgent:
		return strings.HasPrefix(topic, "agents/"+userID+"/")
	case domain.RoleUser, domain.RoleSeller:
		return strings.HasPrefix(topic, "users/"+userID+"/")
	}
	return false
}
