package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"dochub/internal/auth/models"
	id "dochub/pkg/domain"
	"dochub/pkg/platform/sentinel"
)

type SessionStoreSuite struct {
	suite.Suite
	store *InMemorySessionStore
	ctx   context.Context
	now   time.Time
}

func TestSessionStoreSuite(t *testing.T) {
	suite.Run(t, new(SessionStoreSuite))
}

func (s *SessionStoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
}

func (s *SessionStoreSuite) newSession(userID id.UserID) *models.Session {
	return &models.Session{
		ID:          id.SessionID(uuid.New()),
		UserID:      userID,
		Role:        models.RoleCitizen,
		DisplayName: "Citizen User",
		Status:      models.SessionStatusActive,
		CreatedAt:   s.now,
		ExpiresAt:   s.now.Add(12 * time.Hour),
		CurrentView: "citizen",
	}
}

func (s *SessionStoreSuite) TestSessionLookup() {
	sess := s.newSession(id.UserID(uuid.New()))
	s.Require().NoError(s.store.Create(s.ctx, sess))

	s.Run("found", func() {
		got, err := s.store.FindByID(s.ctx, sess.ID)
		s.Require().NoError(err)
		s.Equal(sess.UserID, got.UserID)
		s.Equal("citizen", got.CurrentView)
	})

	s.Run("missing", func() {
		_, err := s.store.FindByID(s.ctx, id.SessionID(uuid.New()))
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("duplicate create conflicts", func() {
		err := s.store.Create(s.ctx, sess)
		s.ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("returned session is a copy", func() {
		got, err := s.store.FindByID(s.ctx, sess.ID)
		s.Require().NoError(err)
		got.CurrentView = "admin"

		again, err := s.store.FindByID(s.ctx, sess.ID)
		s.Require().NoError(err)
		s.Equal("citizen", again.CurrentView)
	})
}

func (s *SessionStoreSuite) TestExecute() {
	sess := s.newSession(id.UserID(uuid.New()))
	s.Require().NoError(s.store.Create(s.ctx, sess))

	s.Run("mutation is persisted", func() {
		got, err := s.store.Execute(s.ctx, sess.ID,
			func(*models.Session) error { return nil },
			func(cur *models.Session) { cur.SelectedService = "birth-certificate" },
		)
		s.Require().NoError(err)
		s.Equal("birth-certificate", got.SelectedService)

		stored, err := s.store.FindByID(s.ctx, sess.ID)
		s.Require().NoError(err)
		s.Equal("birth-certificate", stored.SelectedService)
	})

	s.Run("validation failure leaves session untouched", func() {
		boom := errors.New("rejected")
		_, err := s.store.Execute(s.ctx, sess.ID,
			func(*models.Session) error { return boom },
			func(cur *models.Session) { cur.SelectedService = "marriage-registration" },
		)
		s.ErrorIs(err, boom)

		stored, err := s.store.FindByID(s.ctx, sess.ID)
		s.Require().NoError(err)
		s.Equal("birth-certificate", stored.SelectedService)
	})

	s.Run("missing session", func() {
		_, err := s.store.Execute(s.ctx, id.SessionID(uuid.New()),
			func(*models.Session) error { return nil },
			func(*models.Session) {},
		)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *SessionStoreSuite) TestSessionRevocation() {
	sess := s.newSession(id.UserID(uuid.New()))
	sess.SelectedService = "citizenship-certificate"
	s.Require().NoError(s.store.Create(s.ctx, sess))

	s.Require().NoError(s.store.RevokeSessionIfActive(s.ctx, sess.ID, s.now.Add(time.Minute)))

	got, err := s.store.FindByID(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(models.SessionStatusRevoked, got.Status)
	s.Require().NotNil(got.RevokedAt)
	s.Empty(got.SelectedService)
	s.Equal("home", got.CurrentView)
	s.False(got.IsActive(s.now.Add(time.Minute)))

	err = s.store.RevokeSessionIfActive(s.ctx, sess.ID, s.now.Add(2*time.Minute))
	s.ErrorIs(err, ErrSessionRevoked)
	s.ErrorIs(err, sentinel.ErrInvalidState)
}

func (s *SessionStoreSuite) TestConcurrentRevokeSucceedsOnce() {
	sess := s.newSession(id.UserID(uuid.New()))
	s.Require().NoError(s.store.Create(s.ctx, sess))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.store.RevokeSessionIfActive(s.ctx, sess.ID, s.now); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	s.Equal(1, wins)
}

func (s *SessionStoreSuite) TestSessionDeletionByUser() {
	userID := id.UserID(uuid.New())
	first := s.newSession(userID)
	second := s.newSession(userID)
	second.CreatedAt = s.now.Add(time.Hour)
	other := s.newSession(id.UserID(uuid.New()))
	for _, sess := range []*models.Session{first, second, other} {
		s.Require().NoError(s.store.Create(s.ctx, sess))
	}

	listed, err := s.store.ListByUser(s.ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(listed, 2)
	s.Equal(second.ID, listed[0].ID, "newest first")

	s.Require().NoError(s.store.DeleteSessionsByUser(s.ctx, userID))

	_, err = s.store.FindByID(s.ctx, first.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindByID(s.ctx, other.ID)
	s.NoError(err, "other users keep their sessions")

	err = s.store.DeleteSessionsByUser(s.ctx, userID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *SessionStoreSuite) TestDeleteExpired() {
	live := s.newSession(id.UserID(uuid.New()))
	stale := s.newSession(id.UserID(uuid.New()))
	stale.ExpiresAt = s.now.Add(-time.Minute)
	s.Require().NoError(s.store.Create(s.ctx, live))
	s.Require().NoError(s.store.Create(s.ctx, stale))

	n, err := s.store.DeleteExpired(s.ctx, s.now)
	s.Require().NoError(err)
	s.Equal(1, n)

	_, err = s.store.FindByID(s.ctx, stale.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
