package server

import (
	"sync"
	"time"

	"trafficdash/analytics"
)

// Session is the per-operator interaction state: the current filter
// selection and the last camera fetch. Nothing here is derived data;
// aggregations are recomputed from the store on every request.
type Session struct {
	ID        string            `json:"id"`
	Filters   analytics.Filters `json:"filters"`
	Cameras   []CameraDevice    `json:"cameras,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// SessionStore keeps sessions in memory, keyed by the session header.
// Sessions hold selections only, losing them on restart is acceptable.
// Accessors return snapshots; slice fields are replaced wholesale on
// write and never mutated in place, so a shallow copy is safe to read
// outside the lock.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// DefaultSessionID is used when the client sends no session header.
const DefaultSessionID = "default"

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// locked returns the stored session for id, creating it on first use.
// Callers must hold mu.
func (s *SessionStore) locked(id string) *Session {
	if id == "" {
		id = DefaultSessionID
	}
	session, ok := s.sessions[id]
	if !ok {
		session = &Session{ID: id, UpdatedAt: time.Now()}
		s.sessions[id] = session
	}
	return session
}

// Get returns a snapshot of the session for id, creating it on first
// use. An empty id maps to the default session.
func (s *SessionStore) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := *s.locked(id)
	return &snapshot
}

// SetFilters replaces the filter selection of a session.
func (s *SessionStore) SetFilters(id string, filters analytics.Filters) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := s.locked(id)
	session.Filters = filters
	session.UpdatedAt = time.Now()
	snapshot := *session
	return &snapshot
}

// SetCameras stores the result of a camera registry fetch on the session
// so the map view can re-render without refetching.
func (s *SessionStore) SetCameras(id string, cameras []CameraDevice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := s.locked(id)
	session.Cameras = cameras
	session.UpdatedAt = time.Now()
}

// Reset clears the session's filters and cached fetches.
func (s *SessionStore) Reset(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := s.locked(id)
	session.Filters = analytics.Filters{}
	session.Cameras = nil
	session.UpdatedAt = time.Now()
}
