package hub

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is a single unit of delivery to a subscribed client: a named
// event carrying a pre-marshalled JSON payload.
type Event struct {
	Name string
	Data []byte
}

// Session is one live, one-directional event stream for a single
// subscriber key. It is the unit the registry tracks; the registry and
// the underlying connection both hold it, and whichever ends first
// triggers removal.
type Session struct {
	ID        string
	Key       string
	CreatedAt time.Time

	ch        chan Event
	done      chan struct{}
	closeOnce sync.Once
}

func newSession(key string, buffer int) *Session {
	return &Session{
		ID:        uuid.New().String(),
		Key:       key,
		CreatedAt: time.Now(),
		ch:        make(chan Event, buffer),
		done:      make(chan struct{}),
	}
}

// Events is the delivery channel consumed by the transport goroutine.
func (s *Session) Events() <-chan Event {
	return s.ch
}

// Done is closed when the session terminates, from any trigger.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close terminates the session. Safe to call from multiple triggers;
// only the first call has effect.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// TrySend enqueues an event without blocking. It reports false when the
// session is closed or its buffer is full, in which case the caller
// should treat the session as dead.
func (s *Session) TrySend(ev Event) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.ch <- ev:
		return true
	case <-s.done:
		return false
	default:
		return false
	}
}
