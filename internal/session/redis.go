package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"civic-qa/internal/common/errors"
	"civic-qa/internal/common/metrics"
	"civic-qa/internal/models"
)

const sessionKeyPrefix = "civicqa:session:"

// RedisStore persists sessions as JSON documents with a sliding TTL.
// A zero TTL stores sessions without expiration.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return &models.Session{ID: sessionID, CreatedAt: time.Now().UTC()}, nil
	}
	if err != nil {
		return nil, errors.NewSessionLoadFailedError(sessionID, err)
	}

	var sess models.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, errors.NewSessionLoadFailedError(sessionID, fmt.Errorf("decode session: %w", err))
	}
	return &sess, nil
}

func (s *RedisStore) Append(ctx context.Context, sessionID string, ex models.Exchange) error {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	// A stored session always has at least one exchange, so an empty one
	// means this is the session's first turn.
	if len(sess.Exchanges) == 0 {
		metrics.ActiveSessions.Inc()
	}
	sess.Append(ex)

	raw, err := json.Marshal(sess)
	if err != nil {
		return errors.NewSessionSaveFailedError(sessionID, fmt.Errorf("encode session: %w", err))
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+sessionID, raw, s.ttl).Err(); err != nil {
		return errors.NewSessionSaveFailedError(sessionID, err)
	}
	return nil
}
