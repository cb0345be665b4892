package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/estatewave/inquiry-service/internal/domain"
	"github.com/estatewave/inquiry-service/pkg/log"
)

// ClientConfig tunes websocket connection behaviour.
type ClientConfig struct {
	PingInterval   time.Duration `mapstructure:"ping_interval"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
	WriteWait      time.Duration `mapstructure:"write_wait"`
	MaxMessageSize int64         `mapstructure:"max_message_size"`
}

// EventFrame is the wire envelope for topic events, so one connection can
// multiplex any number of topic subscriptions.
type EventFrame struct {
	Type  string          `json:"type"`
	Topic string          `json:"topic"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Client is one websocket connection subscribed to broadcast topics. For
// every subscribed topic it holds a registry session whose events are
// forwarded into the connection's single send channel; the write pump is
// the only goroutine writing to the connection.
type Client struct {
	ID       string
	UserID   string
	Role     domain.Role
	conn     *websocket.Conn
	registry *Registry
	cfg      ClientConfig

	send chan []byte
	done chan struct{}

	mu        sync.Mutex
	topics    map[string]*Session
	closeOnce sync.Once
}

// NewClient wraps an upgraded websocket connection.
func NewClient(id, userID string, role domain.Role, conn *websocket.Conn, registry *Registry, cfg ClientConfig) *Client {
	return &Client{
		ID:       id,
		UserID:   userID,
		Role:     role,
		conn:     conn,
		registry: registry,
		cfg:      cfg,
		send:     make(chan []byte, 256),
		done:     make(chan struct{}),
		topics:   make(map[string]*Session),
	}
}

// Subscribe registers a session for the topic and starts forwarding its
// events to this connection. Subscribing twice to one topic is a no-op.
func (c *Client) Subscribe(topic string) {
	c.mu.Lock()
	if _, ok := c.topics[topic]; ok {
		c.mu.Unlock()
		return
	}
	session := c.registry.Subscribe(topic)
	c.topics[topic] = session
	c.mu.Unlock()

	go c.forward(topic, session)
}

// Unsubscribe drops the topic subscription, if any.
func (c *Client) Unsubscribe(topic string) {
	c.mu.Lock()
	session, ok := c.topics[topic]
	if ok {
		delete(c.topics, topic)
	}
	c.mu.Unlock()

	if ok {
		c.registry.Remove(session)
	}
}

// Subscribed reports whether the client currently holds the topic.
func (c *Client) Subscribed(topic string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.topics[topic]
	return ok
}

func (c *Client) forward(topic string, session *Session) {
	for {
		select {
		case ev := <-session.Events():
			frame, err := json.Marshal(EventFrame{
				Type:  domain.MsgTypeEvent,
				Topic: topic,
				Event: ev.Name,
				Data:  ev.Data,
			})
			if err != nil {
				continue
			}
			c.enqueue(frame)
		case <-session.Done():
			return
		case <-c.done:
			return
		}
	}
}

// Close tears the connection down: every topic session is removed from
// the registry and the write pump is released. Safe from any trigger.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)

		c.mu.Lock()
		sessions := make([]*Session, 0, len(c.topics))
		for _, s := range c.topics {
			sessions = append(sessions, s)
		}
		c.topics = make(map[string]*Session)
		c.mu.Unlock()

		for _, s := range sessions {
			c.registry.Remove(s)
		}
	})
}

// SendMessage marshals and enqueues a control frame for the client.
func (c *Client) SendMessage(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	c.enqueue(data)
	return nil
}

func (c *Client) enqueue(data []byte) {
	select {
	case c.send <- data:
	case <-c.done:
	default:
		// Slow consumer: drop rather than block the fan-out.
	}
}

// ReadPump consumes client frames until the connection dies, then
// converges on the shared teardown path.
func (c *Client) ReadPump(handler func(*Client, []byte)) {
	defer func() {
		c.Close()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.cfg.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				l := log.L()
				l.Warn().Err(err).Str(log.FieldSessionID, c.ID).Msg("websocket read failed")
			}
			break
		}

		handler(c, message)
	}
}

// WritePump is the single writer on the connection: it drains the send
// channel and keeps the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		c.Close()
		c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
