package store

import (
	"context"
	"slices"
	"sync"

	"dochub/internal/applications/models"
	id "dochub/pkg/domain"
	"dochub/pkg/platform/sentinel"
)

// InMemoryStore keeps applications in a map guarded by a RWMutex.
type InMemoryStore struct {
	mu       sync.RWMutex
	apps     map[id.ApplicationID]*models.Application
	byNumber map[string]id.ApplicationID
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		apps:     make(map[id.ApplicationID]*models.Application),
		byNumber: make(map[string]id.ApplicationID),
	}
}

func (s *InMemoryStore) Create(_ context.Context, app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[app.ID]; ok {
		return sentinel.ErrConflict
	}
	if _, ok := s.byNumber[app.Number]; ok {
		return sentinel.ErrConflict
	}
	s.apps[app.ID] = clone(app)
	s.byNumber[app.Number] = app.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, appID id.ApplicationID) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	app, ok := s.apps[appID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(app), nil
}

// List returns matching applications, newest submission first.
func (s *InMemoryStore) List(_ context.Context, filter models.Filter) ([]*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Application, 0)
	for _, app := range s.apps {
		if matches(filter, app) {
			out = append(out, clone(app))
		}
	}
	slices.SortFunc(out, func(a, b *models.Application) int {
		if c := b.SubmittedAt.Compare(a.SubmittedAt); c != 0 {
			return c
		}
		return compareNumbers(a.Number, b.Number)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func compareNumbers(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Update applies mutate under the write lock. A mutate error leaves the
// stored application untouched.
func (s *InMemoryStore) Update(_ context.Context, appID id.ApplicationID, mutate func(*models.Application) error) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.apps[appID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	working := clone(stored)
	if err := mutate(working); err != nil {
		return nil, err
	}
	s.apps[appID] = working
	return clone(working), nil
}

func (s *InMemoryStore) Delete(_ context.Context, appID id.ApplicationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[appID]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byNumber, app.Number)
	delete(s.apps, appID)
	return nil
}

func (s *InMemoryStore) DeleteByOwner(_ context.Context, ownerID id.UserID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for appID, app := range s.apps {
		if app.OwnerID == ownerID {
			delete(s.byNumber, app.Number)
			delete(s.apps, appID)
			n++
		}
	}
	return n, nil
}

// CountByStatus counts applications per status, optionally for one owner.
func (s *InMemoryStore) CountByStatus(_ context.Context, ownerID id.UserID) (map[models.Status]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[models.Status]int, len(models.Statuses))
	for _, app := range s.apps {
		if ownerID.IsNil() || app.OwnerID == ownerID {
			counts[app.Status]++
		}
	}
	return counts, nil
}
