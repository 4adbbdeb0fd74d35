package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/oziev02/threadtree/internal/domain"
	"github.com/oziev02/threadtree/internal/infrastructure/codec"
)

// Repository хранит лес одним строковым значением в Redis
type Repository struct {
	client redis.UniversalClient
	key    string
}

// NewRepository создает новый экземпляр Repository
func NewRepository(client redis.UniversalClient, key string) *Repository {
	return &Repository{client: client, key: key}
}

// Load выполняет GET по ключу; redis.Nil означает отсутствие значения
func (r *Repository) Load(ctx context.Context) (domain.Forest, bool, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get forest: %w", err)
	}

	forest, err := codec.Decode(data)
	if err != nil {
		return nil, false, err
	}
	return forest, true, nil
}

// Save выполняет SET без срока жизни
func (r *Repository) Save(ctx context.Context, forest domain.Forest) error {
	data, err := codec.Encode(forest)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set forest: %w", err)
	}
	return nil
}
