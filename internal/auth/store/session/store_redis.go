package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"dochub/internal/auth/models"
	id "dochub/pkg/domain"
	"dochub/pkg/platform/sentinel"
)

const (
	sessionKeyPrefix = "session:"
	userIndexPrefix  = "user_sessions:"
)

// RedisStore keeps each session as JSON under session:<id> with a TTL equal
// to its remaining lifetime, and indexes ids per user in a set.
// Execute uses WATCH, so a concurrent write makes it fail with redis.TxFailedErr.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func sessionKey(sessionID id.SessionID) string {
	return sessionKeyPrefix + uuid.UUID(sessionID).String()
}

func userIndexKey(userID id.UserID) string {
	return userIndexPrefix + uuid.UUID(userID).String()
}

func (s *RedisStore) ttl(sess *models.Session) time.Duration {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl < time.Second {
		ttl = time.Second
	}
	return ttl
}

func (s *RedisStore) Create(ctx context.Context, sess *models.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ok, err := s.client.SetNX(ctx, sessionKey(sess.ID), payload, s.ttl(sess)).Result()
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if !ok {
		return sentinel.ErrConflict
	}
	indexKey := userIndexKey(sess.UserID)
	pipe := s.client.TxPipeline()
	pipe.SAdd(ctx, indexKey, uuid.UUID(sess.ID).String())
	pipe.ExpireGT(ctx, indexKey, s.ttl(sess))
	pipe.ExpireNX(ctx, indexKey, s.ttl(sess))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("index session: %w", err)
	}
	return nil
}

func (s *RedisStore) FindByID(ctx context.Context, sessionID id.SessionID) (*models.Session, error) {
	return s.get(ctx, s.client, sessionKey(sessionID))
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisStore) get(ctx context.Context, c getter, key string) (*models.Session, error) {
	raw, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	var sess models.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *RedisStore) Execute(ctx context.Context, sessionID id.SessionID, validate func(*models.Session) error, mutate func(*models.Session)) (*models.Session, error) {
	key := sessionKey(sessionID)
	var result *models.Session
	err := s.client.Watch(ctx, func(rtx *redis.Tx) error {
		sess, err := s.get(ctx, rtx, key)
		if err != nil {
			return err
		}
		if err := validate(sess); err != nil {
			return err
		}
		mutate(sess)
		payload, err := json.Marshal(sess)
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}
		_, err = rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SetArgs(ctx, key, payload, redis.SetArgs{KeepTTL: true})
			return nil
		})
		if err != nil {
			return err
		}
		result = sess
		return nil
	}, key)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *RedisStore) RevokeSessionIfActive(ctx context.Context, sessionID id.SessionID, now time.Time) error {
	_, err := s.Execute(ctx, sessionID,
		func(sess *models.Session) error {
			if sess.Status == models.SessionStatusRevoked {
				return ErrSessionRevoked
			}
			return nil
		},
		func(sess *models.Session) { sess.ApplyRevocation(now) },
	)
	return err
}

func (s *RedisStore) ListByUser(ctx context.Context, userID id.UserID) ([]*models.Session, error) {
	ids, err := s.client.SMembers(ctx, userIndexKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	out := make([]*models.Session, 0, len(ids))
	for _, raw := range ids {
		sess, err := s.get(ctx, s.client, sessionKeyPrefix+raw)
		if errors.Is(err, sentinel.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	slices.SortFunc(out, func(a, b *models.Session) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func (s *RedisStore) DeleteSessionsByUser(ctx context.Context, userID id.UserID) error {
	indexKey := userIndexKey(userID)
	ids, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	if len(ids) == 0 {
		return sentinel.ErrNotFound
	}
	keys := make([]string, 0, len(ids)+1)
	for _, raw := range ids {
		keys = append(keys, sessionKeyPrefix+raw)
	}
	keys = append(keys, indexKey)
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	return nil
}
