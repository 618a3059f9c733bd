package bucket

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	testLimit  = 3
	testWindow = time.Minute
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
	now   time.Time
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.store = NewInMemory()
	s.store.now = func() time.Time { return s.now }
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) TestAllow() {
	s.Run("requests up to the limit are allowed", func() {
		for i := range testLimit {
			result, err := s.store.Allow(s.ctx, "login:a", testLimit, testWindow)
			s.Require().NoError(err)
			s.True(result.Allowed)
			s.Equal(testLimit-i-1, result.Remaining)
		}
	})

	s.Run("the next request is denied with a retry hint", func() {
		result, err := s.store.Allow(s.ctx, "login:a", testLimit, testWindow)
		s.Require().NoError(err)
		s.False(result.Allowed)
		s.Zero(result.Remaining)
		s.Equal(60, result.RetryAfter)
	})

	s.Run("denied requests are not counted", func() {
		count, err := s.store.Count(s.ctx, "login:a")
		s.Require().NoError(err)
		s.Equal(testLimit, count)
	})

	s.Run("the window slides", func() {
		s.now = s.now.Add(testWindow + time.Second)
		result, err := s.store.Allow(s.ctx, "login:a", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
	})

	s.Run("keys are independent", func() {
		result, err := s.store.Allow(s.ctx, "login:b", testLimit, testWindow)
		s.Require().NoError(err)
		s.Equal(testLimit-1, result.Remaining)
	})
}

func (s *InMemoryStoreSuite) TestReset() {
	for range testLimit {
		_, err := s.store.Allow(s.ctx, "reset:a", testLimit, testWindow)
		s.Require().NoError(err)
	}
	s.Require().NoError(s.store.Reset(s.ctx, "reset:a"))

	count, err := s.store.Count(s.ctx, "reset:a")
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *InMemoryStoreSuite) TestConcurrentAllow() {
	const workers = 50
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := s.store.Allow(s.ctx, "race", 10, testWindow)
			s.NoError(err)
			if result.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	s.Equal(10, allowed)
}
