package user

import (
	"context"
	"slices"
	"strings"
	"sync"

	"dochub/internal/auth/models"
	"dochub/internal/identity"
	id "dochub/pkg/domain"
	"dochub/pkg/platform/sentinel"
)

// InMemoryUserStore keeps users in maps with secondary indexes for each
// identifier. Uniqueness is checked and applied under one lock.
type InMemoryUserStore struct {
	mu           sync.RWMutex
	users        map[id.UserID]*models.User
	byEmail      map[string]id.UserID
	byPhone      map[string]id.UserID
	byNationalID map[string]id.UserID
}

func New() *InMemoryUserStore {
	return &InMemoryUserStore{
		users:        make(map[id.UserID]*models.User),
		byEmail:      make(map[string]id.UserID),
		byPhone:      make(map[string]id.UserID),
		byNationalID: make(map[string]id.UserID),
	}
}

// Create inserts user, or returns one of the Err*Taken errors.
func (s *InMemoryUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; ok {
		return sentinel.ErrConflict
	}
	email := emailKey(user.Email)
	if _, ok := s.byEmail[email]; ok && email != "" {
		return ErrEmailTaken
	}
	if _, ok := s.byPhone[user.Phone]; ok && user.Phone != "" {
		return ErrPhoneTaken
	}
	if _, ok := s.byNationalID[user.NationalID]; ok && user.NationalID != "" {
		return ErrNationalIDTaken
	}

	stored := *user
	s.users[user.ID] = &stored
	if email != "" {
		s.byEmail[email] = user.ID
	}
	if user.Phone != "" {
		s.byPhone[user.Phone] = user.ID
	}
	if user.NationalID != "" {
		s.byNationalID[user.NationalID] = user.ID
	}
	return nil
}

func (s *InMemoryUserStore) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[userID]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, sentinel.ErrNotFound
}

// FindByIdentifier looks a user up by email, phone, or national ID.
func (s *InMemoryUserStore) FindByIdentifier(_ context.Context, method identity.Method, value string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var index map[string]id.UserID
	key := strings.TrimSpace(value)
	switch method {
	case identity.MethodEmail:
		index, key = s.byEmail, emailKey(value)
	case identity.MethodPhone:
		index = s.byPhone
	case identity.MethodNationalID:
		index = s.byNationalID
	default:
		return nil, sentinel.ErrNotFound
	}
	userID, ok := index[key]
	if !ok || key == "" {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.users[userID]
	return &cp, nil
}

// List returns matching users, newest first.
func (s *InMemoryUserStore) List(_ context.Context, filter ListFilter) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		if filter.matches(u) {
			cp := *u
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *models.User) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Email, b.Email)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// CountByRole counts active users with the given role.
func (s *InMemoryUserStore) CountByRole(_ context.Context, role models.Role) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, u := range s.users {
		if u.Role == role && u.IsActive() {
			n++
		}
	}
	return n, nil
}

func (s *InMemoryUserStore) Delete(_ context.Context, userID id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byEmail, emailKey(u.Email))
	delete(s.byPhone, u.Phone)
	delete(s.byNationalID, u.NationalID)
	delete(s.users, userID)
	return nil
}
