package hub

import (
	"sync"

	"github.com/estatewave/inquiry-service/pkg/log"
)

// Registry is the process-wide map of subscriber key to live sessions.
// It is constructed once at the composition root and injected wherever
// sessions are created or pushed to; there is no implicit singleton.
//
// Keys are independent: sessions under one key are added, removed and
// enumerated without contending with any other key.
type Registry struct {
	buffer int
	sets   sync.Map // key -> *sessionSet
}

type sessionSet struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	// dead marks a set that has been detached from the registry after its
	// last session left. A subscriber that raced the detach retries.
	dead bool
}

// NewRegistry creates a registry whose sessions buffer up to buffer
// undelivered events each.
func NewRegistry(buffer int) *Registry {
	if buffer <= 0 {
		buffer = 64
	}
	return &Registry{buffer: buffer}
}

// Subscribe creates and registers a new session under key.
func (r *Registry) Subscribe(key string) *Session {
	s := newSession(key, r.buffer)

	for {
		v, _ := r.sets.LoadOrStore(key, &sessionSet{sessions: make(map[string]*Session)})
		set := v.(*sessionSet)

		set.mu.Lock()
		if set.dead {
			set.mu.Unlock()
			continue
		}
		set.sessions[s.ID] = s
		set.mu.Unlock()

		l := log.L()
		l.Debug().Str(log.FieldSessionID, s.ID).Str(log.FieldTopic, key).Msg("session subscribed")
		return s
	}
}

// Remove closes the session and deregisters it. Removal is idempotent:
// removing an already-absent session is a no-op. When the last session
// for a key is removed, the key itself is dropped.
func (r *Registry) Remove(s *Session) {
	s.Close()

	v, ok := r.sets.Load(s.Key)
	if !ok {
		return
	}
	set := v.(*sessionSet)

	set.mu.Lock()
	if _, ok := set.sessions[s.ID]; !ok {
		set.mu.Unlock()
		return
	}
	delete(set.sessions, s.ID)
	if len(set.sessions) == 0 {
		set.dead = true
		r.sets.Delete(s.Key)
	}
	set.mu.Unlock()

	l := log.L()
	l.Debug().Str(log.FieldSessionID, s.ID).Str(log.FieldTopic, s.Key).Msg("session removed")
}

// Snapshot returns the live sessions currently registered under key.
// The slice is a copy; it tolerates concurrent subscribe and remove.
func (r *Registry) Snapshot(key string) []*Session {
	v, ok := r.sets.Load(key)
	if !ok {
		return nil
	}
	set := v.(*sessionSet)

	set.mu.RLock()
	defer set.mu.RUnlock()

	out := make([]*Session, 0, len(set.sessions))
	for _, s := range set.sessions {
		out = append(out, s)
	}
	return out
}

// Len returns the number of live sessions under key.
func (r *Registry) Len(key string) int {
	v, ok := r.sets.Load(key)
	if !ok {
		return 0
	}
	set := v.(*sessionSet)

	set.mu.RLock()
	defer set.mu.RUnlock()
	return len(set.sessions)
}

// HasKey reports whether any session is registered under key.
func (r *Registry) HasKey(key string) bool {
	_, ok := r.sets.Load(key)
	return ok
}
