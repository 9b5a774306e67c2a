package services

import (
	"errors"
	"sort"
	"sync"
	"time"

	"go-frontier/internal/industry/dto"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired session ids
var ErrSessionNotFound = errors.New("selection session not found")

// session holds one selection of type ids
type session struct {
	id        string
	createdAt time.Time
	updatedAt time.Time
	items     map[int]struct{}
}

// SessionStore keeps selection sessions in memory, keyed by a generated
// session id. All access goes through the store mutex.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*session)}
}

func (st *SessionStore) view(s *session) dto.SessionView {
	items := make([]int, 0, len(s.items))
	for id := range s.items {
		items = append(items, id)
	}
	sort.Ints(items)
	return dto.SessionView{
		SessionID: s.id,
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
		Count:     len(items),
		Items:     items,
	}
}

// Create starts a new session, optionally seeded with type ids
func (st *SessionStore) Create(typeIDs []int) dto.SessionView {
	now := time.Now()
	s := &session{
		id:        uuid.New().String(),
		createdAt: now,
		updatedAt: now,
		items:     make(map[int]struct{}, len(typeIDs)),
	}
	for _, id := range typeIDs {
		s.items[id] = struct{}{}
	}

	st.mu.Lock()
	st.sessions[s.id] = s
	st.mu.Unlock()

	return st.view(s)
}

// Get returns a snapshot of the session
func (st *SessionStore) Get(sessionID string) (dto.SessionView, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[sessionID]
	if !ok {
		return dto.SessionView{}, ErrSessionNotFound
	}
	return st.view(s), nil
}

// Delete removes the session entirely
func (st *SessionStore) Delete(sessionID string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(st.sessions, sessionID)
	return nil
}

// SetItems replaces the session's selection wholesale
func (st *SessionStore) SetItems(sessionID string, typeIDs []int) (dto.SessionView, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[sessionID]
	if !ok {
		return dto.SessionView{}, ErrSessionNotFound
	}
	s.items = make(map[int]struct{}, len(typeIDs))
	for _, id := range typeIDs {
		s.items[id] = struct{}{}
	}
	s.updatedAt = time.Now()
	return st.view(s), nil
}

// AddItem adds one type id to the selection
func (st *SessionStore) AddItem(sessionID string, typeID int) (dto.SessionView, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[sessionID]
	if !ok {
		return dto.SessionView{}, ErrSessionNotFound
	}
	s.items[typeID] = struct{}{}
	s.updatedAt = time.Now()
	return st.view(s), nil
}

// RemoveItem drops one type id from the selection
func (st *SessionStore) RemoveItem(sessionID string, typeID int) (dto.SessionView, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[sessionID]
	if !ok {
		return dto.SessionView{}, ErrSessionNotFound
	}
	delete(s.items, typeID)
	s.updatedAt = time.Now()
	return st.view(s), nil
}

// Items returns the selected ids in ascending order
func (st *SessionStore) Items(sessionID string) ([]int, error) {
	v, err := st.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return v.Items, nil
}

// Count returns the number of live sessions
func (st *SessionStore) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Prune drops sessions idle for longer than maxAge and reports how many
// were removed
func (st *SessionStore) Prune(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	st.mu.Lock()
	defer st.mu.Unlock()
	pruned := 0
	for id, s := range st.sessions {
		if s.updatedAt.Before(cutoff) {
			delete(st.sessions, id)
			pruned++
		}
	}
	return pruned
}
