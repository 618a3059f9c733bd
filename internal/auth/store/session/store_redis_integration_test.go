//go:build integration

package session_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"dochub/internal/auth/models"
	"dochub/internal/auth/store/session"
	id "dochub/pkg/domain"
	"dochub/pkg/platform/sentinel"
	"dochub/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *session.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = session.NewRedis(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func makeSession(userID id.UserID) *models.Session {
	now := time.Now()
	return &models.Session{
		ID:          id.SessionID(uuid.New()),
		UserID:      userID,
		Role:        models.RoleOfficer,
		DisplayName: "Government Officer",
		Status:      models.SessionStatusActive,
		CreatedAt:   now,
		ExpiresAt:   now.Add(24 * time.Hour),
		CurrentView: "officer",
		Language:    "np",
	}
}

func (s *RedisStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	sess := makeSession(id.UserID(uuid.New()))
	sess.OpenApplicationID = id.ApplicationID(uuid.New())
	s.Require().NoError(s.store.Create(ctx, sess))

	got, err := s.store.FindByID(ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(sess.UserID, got.UserID)
	s.Equal(sess.OpenApplicationID, got.OpenApplicationID)
	s.Equal(models.RoleOfficer, got.Role)
	s.Equal("np", got.Language)

	s.ErrorIs(s.store.Create(ctx, sess), sentinel.ErrConflict)

	_, err = s.store.FindByID(ctx, id.SessionID(uuid.New()))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

// Concurrent revokes race on WATCH; exactly one wins.
func (s *RedisStoreSuite) TestWATCHConflictDetection() {
	ctx := context.Background()
	sess := makeSession(id.UserID(uuid.New()))
	s.Require().NoError(s.store.Create(ctx, sess))

	const goroutines = 20
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		lost      atomic.Int32
		other     atomic.Int32
	)
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.RevokeSessionIfActive(ctx, sess.ID, time.Now())
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, redis.TxFailedErr), errors.Is(err, session.ErrSessionRevoked):
				lost.Add(1)
			default:
				other.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), succeeded.Load())
	s.Equal(int32(goroutines-1), lost.Load())
	s.Zero(other.Load())
}

func (s *RedisStoreSuite) TestExecuteValidationRollback() {
	ctx := context.Background()
	sess := makeSession(id.UserID(uuid.New()))
	s.Require().NoError(s.store.Create(ctx, sess))

	boom := errors.New("validation failed")
	_, err := s.store.Execute(ctx, sess.ID,
		func(*models.Session) error { return boom },
		func(cur *models.Session) { cur.CurrentView = "admin" },
	)
	s.ErrorIs(err, boom)

	got, err := s.store.FindByID(ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal("officer", got.CurrentView)
}

func (s *RedisStoreSuite) TestTTLPreservation() {
	ctx := context.Background()
	sess := makeSession(id.UserID(uuid.New()))
	sess.ExpiresAt = time.Now().Add(time.Hour)
	s.Require().NoError(s.store.Create(ctx, sess))

	key := "session:" + uuid.UUID(sess.ID).String()
	initial, err := s.redis.Client.TTL(ctx, key).Result()
	s.Require().NoError(err)
	s.Greater(initial, time.Duration(0))

	_, err = s.store.Execute(ctx, sess.ID,
		func(*models.Session) error { return nil },
		func(cur *models.Session) { cur.SelectedService = "birth-certificate" },
	)
	s.Require().NoError(err)

	after, err := s.redis.Client.TTL(ctx, key).Result()
	s.Require().NoError(err)
	s.InDelta(initial.Seconds(), after.Seconds(), 5.0)
}

func (s *RedisStoreSuite) TestListAndDeleteByUser() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())

	const goroutines = 10
	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.NoError(s.store.Create(ctx, makeSession(userID)))
		}()
	}
	wg.Wait()

	listed, err := s.store.ListByUser(ctx, userID)
	s.Require().NoError(err)
	s.Len(listed, goroutines)

	s.Require().NoError(s.store.DeleteSessionsByUser(ctx, userID))

	listed, err = s.store.ListByUser(ctx, userID)
	s.Require().NoError(err)
	s.Empty(listed)
	s.ErrorIs(s.store.DeleteSessionsByUser(ctx, userID), sentinel.ErrNotFound)
}
