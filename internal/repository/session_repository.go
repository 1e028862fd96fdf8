package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when no session record exists for an id.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository is the key-value session store. A session maps the token
// session id to the authenticated user id; clearing it invalidates the token
// immediately.
type SessionRepository interface {
	Set(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (int64, error)
	Clear(ctx context.Context, sessionID string) error
}

const sessionKeyPrefix = "gearguard:session:"

type redisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository constructs a Redis-backed session store.
func NewSessionRepository(client *redis.Client) SessionRepository {
	return &redisSessionRepository{client: client}
}

func (r *redisSessionRepository) Set(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error {
	return r.client.Set(ctx, sessionKeyPrefix+sessionID, userID, ttl).Err()
}

func (r *redisSessionRepository) Get(ctx context.Context, sessionID string) (int64, error) {
	val, err := r.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrSessionNotFound
		}
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

func (r *redisSessionRepository) Clear(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
