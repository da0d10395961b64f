package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionPrefix = "session:"
	sessionTTL    = 24 * time.Hour
)

type redisStore struct {
	rdb *redis.Client
}

func newRedisStore(rdb *redis.Client) *redisStore {
	return &redisStore{rdb: rdb}
}

func (s *redisStore) Load(ctx context.Context, subscriberID string) (Data, error) {
	raw, err := s.rdb.Get(ctx, sessionPrefix+subscriberID).Bytes()
	if errors.Is(err, redis.Nil) {
		return Data{}, nil
	}
	if err != nil {
		return Data{}, fmt.Errorf("failed to load session: %w", err)
	}

	var data Data
	if err = json.Unmarshal(raw, &data); err != nil {
		return Data{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return data, nil
}

func (s *redisStore) Save(ctx context.Context, subscriberID string, data Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err = s.rdb.Set(ctx, sessionPrefix+subscriberID, raw, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}
