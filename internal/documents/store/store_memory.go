// Package store persists document metadata in memory or PostgreSQL.
package store

import (
	"context"
	"slices"
	"sync"

	"dochub/internal/documents/models"
	id "dochub/pkg/domain"
	"dochub/pkg/platform/sentinel"
)

// InMemoryStore keeps documents in a map guarded by a RWMutex.
type InMemoryStore struct {
	mu   sync.RWMutex
	docs map[id.DocumentID]*models.Document
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{docs: make(map[id.DocumentID]*models.Document)}
}

func (s *InMemoryStore) Create(_ context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[doc.ID]; ok {
		return sentinel.ErrConflict
	}
	cp := *doc
	s.docs[doc.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, docID id.DocumentID) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[docID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *doc
	return &cp, nil
}

// ListByOwner returns the owner's documents, newest upload first.
func (s *InMemoryStore) ListByOwner(_ context.Context, ownerID id.UserID) ([]*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Document, 0)
	for _, doc := range s.docs {
		if doc.OwnerID == ownerID {
			cp := *doc
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *models.Document) int {
		if c := b.UploadedAt.Compare(a.UploadedAt); c != 0 {
			return c
		}
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return out, nil
}

func (s *InMemoryStore) CountByOwner(_ context.Context, ownerID id.UserID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, doc := range s.docs {
		if doc.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (s *InMemoryStore) Delete(_ context.Context, docID id.DocumentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[docID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.docs, docID)
	return nil
}

func (s *InMemoryStore) DeleteByOwner(_ context.Context, ownerID id.UserID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for docID, doc := range s.docs {
		if doc.OwnerID == ownerID {
			delete(s.docs, docID)
			n++
		}
	}
	return n, nil
}

// DetachApplication clears the application link on documents attached to
// appID. The documents themselves are kept.
func (s *InMemoryStore) DetachApplication(_ context.Context, appID id.ApplicationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.docs {
		if doc.ApplicationID == appID {
			doc.ApplicationID = id.ApplicationID{}
		}
	}
	return nil
}
