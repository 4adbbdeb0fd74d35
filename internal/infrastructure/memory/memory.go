package memory

import (
	"context"
	"sync"

	"github.com/oziev02/threadtree/internal/domain"
	"github.com/oziev02/threadtree/internal/infrastructure/codec"
)

// Repository хранит сериализованный лес в памяти процесса
type Repository struct {
	mu    sync.RWMutex
	key   string
	blobs map[string][]byte
}

// NewRepository создает новый экземпляр Repository
func NewRepository(key string) *Repository {
	return &Repository{
		key:   key,
		blobs: make(map[string][]byte),
	}
}

// Load загружает лес; found == false, если он ещё не сохранялся
func (r *Repository) Load(ctx context.Context) (domain.Forest, bool, error) {
	_ = ctx

	r.mu.RLock()
	data, ok := r.blobs[r.key]
	r.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	forest, err := codec.Decode(data)
	if err != nil {
		return nil, false, err
	}
	return forest, true, nil
}

// Save сохраняет лес целиком под ключом хранилища
func (r *Repository) Save(ctx context.Context, forest domain.Forest) error {
	_ = ctx

	data, err := codec.Encode(forest)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.blobs[r.key] = data
	r.mu.Unlock()

	return nil
}

// Put записывает произвольный блоб под ключ хранилища
func (r *Repository) Put(data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs[r.key] = append([]byte(nil), data...)
}
