package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Well-known keys for the UI working state. The store is a plain key-value
// bag; repositories and the allocator never read it. Handlers copy what
// they need into explicit parameters.
const (
	KeyMode            = "mode"
	KeyCurrentManifest = "current_manifest_no"
	KeyCurrentStop     = "current_stop_drop_no"
)

// Entry modes toggled by the top navigation
const (
	ModeCreate   = "create"
	ModeRetrieve = "retrieve"
)

type bag struct {
	values   map[string]string
	lastSeen time.Time
}

// Store is an in-memory key-value session store with per-session TTL.
// Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*bag
	ttl      time.Duration
	done     chan struct{}
	once     sync.Once
}

// NewStore creates a session store whose sessions expire after ttl of
// inactivity; a background sweep reclaims them.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*bag),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Open creates a new session with default working state and returns its id
func (s *Store) Open() string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &bag{
		values: map[string]string{
			KeyMode: ModeCreate,
		},
		lastSeen: time.Now(),
	}
	return id
}

// Get returns the value for key in the session, if present
func (s *Store) Get(sessionID, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.sessions[sessionID]
	if !ok {
		return "", false
	}
	b.lastSeen = time.Now()
	val, ok := b.values[key]
	return val, ok
}

// Set stores the value for key in the session. Unknown session ids are
// created silently; expired cookies should not break data entry.
func (s *Store) Set(sessionID, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.sessions[sessionID]
	if !ok {
		b = &bag{values: make(map[string]string)}
		s.sessions[sessionID] = b
	}
	b.lastSeen = time.Now()
	b.values[key] = value
}

// Delete removes key from the session
func (s *Store) Delete(sessionID, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.sessions[sessionID]; ok {
		b.lastSeen = time.Now()
		delete(b.values, key)
	}
}

// Exists reports whether key is set in the session
func (s *Store) Exists(sessionID, key string) bool {
	_, ok := s.Get(sessionID, key)
	return ok
}

// Reset clears a session's manifest working state back to create mode,
// keeping the session itself alive
func (s *Store) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.sessions[sessionID]; ok {
		b.lastSeen = time.Now()
		b.values = map[string]string{KeyMode: ModeCreate}
	}
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close stops the background sweep
func (s *Store) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *Store) sweep() {
	interval := s.ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, b := range s.sessions {
				if now.Sub(b.lastSeen) > s.ttl {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
