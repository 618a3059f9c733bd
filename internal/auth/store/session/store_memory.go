package session

import (
	"context"
	"slices"
	"sync"
	"time"

	"dochub/internal/auth/models"
	id "dochub/pkg/domain"
	"dochub/pkg/platform/sentinel"
)

// InMemorySessionStore keeps sessions in a map. Execute runs its callbacks
// under the write lock, so validation and mutation are atomic.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[id.SessionID]*models.Session
}

func New() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[id.SessionID]*models.Session)}
}

func (s *InMemorySessionStore) Create(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; ok {
		return sentinel.ErrConflict
	}
	cp := *session
	s.sessions[session.ID] = &cp
	return nil
}

func (s *InMemorySessionStore) FindByID(_ context.Context, sessionID id.SessionID) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[sessionID]; ok {
		cp := *sess
		return &cp, nil
	}
	return nil, sentinel.ErrNotFound
}

// Execute validates and mutates a session atomically. A validate error
// leaves the stored session untouched.
func (s *InMemorySessionStore) Execute(_ context.Context, sessionID id.SessionID, validate func(*models.Session) error, mutate func(*models.Session)) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.sessions[sessionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	working := *stored
	if err := validate(&working); err != nil {
		return nil, err
	}
	mutate(&working)
	s.sessions[sessionID] = &working
	cp := working
	return &cp, nil
}

func (s *InMemorySessionStore) RevokeSessionIfActive(_ context.Context, sessionID id.SessionID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if sess.Status == models.SessionStatusRevoked {
		return ErrSessionRevoked
	}
	sess.ApplyRevocation(now)
	return nil
}

func (s *InMemorySessionStore) ListByUser(_ context.Context, userID id.UserID) ([]*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Session
	for _, sess := range s.sessions {
		if sess.UserID == userID {
			cp := *sess
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *models.Session) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

// DeleteSessionsByUser removes every session of userID. It returns
// sentinel.ErrNotFound when there were none.
func (s *InMemorySessionStore) DeleteSessionsByUser(_ context.Context, userID id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := false
	for sid, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, sid)
			deleted = true
		}
	}
	if !deleted {
		return sentinel.ErrNotFound
	}
	return nil
}

// DeleteExpired drops sessions that expired before now and returns how many.
func (s *InMemorySessionStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for sid, sess := range s.sessions {
		if !now.Before(sess.ExpiresAt) {
			delete(s.sessions, sid)
			n++
		}
	}
	return n, nil
}
