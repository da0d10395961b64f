package session

import (
	"context"
	"xpresabot/app/config"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/samber/oops"
)

const maxTurns = 20

type Store interface {
	Load(ctx context.Context, subscriberID string) (Data, error)
	Save(ctx context.Context, subscriberID string, data Data) error
}

type Service struct {
	store Store
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	if cfg.Session.RedisURL == "" {
		return &Service{store: newMemoryStore()}, nil
	}

	opts, err := redis.ParseURL(cfg.Session.RedisURL)
	if err != nil {
		return nil, oops.Errorf("invalid redis url: %w", err)
	}

	return &Service{store: newRedisStore(redis.NewClient(opts))}, nil
}

func NewWithStore(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Load(ctx context.Context, subscriberID string) (Data, error) {
	return s.store.Load(ctx, subscriberID)
}

// Append records an exchange and the product now in context, trimming
// history to the newest maxTurns turns.
func (s *Service) Append(ctx context.Context, subscriberID string, data Data, turns ...Turn) error {
	data.Turns = append(data.Turns, turns...)

	if len(data.Turns) > maxTurns {
		data.Turns = data.Turns[len(data.Turns)-maxTurns:]
	}

	return s.store.Save(ctx, subscriberID, data)
}
