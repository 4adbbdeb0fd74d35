package badgerstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"github.com/oziev02/threadtree/internal/domain"
	"github.com/oziev02/threadtree/internal/infrastructure/codec"
)

// Config содержит настройки встроенного хранилища
type Config struct {
	Path       string
	Key        string
	InMemory   bool
	SyncWrites bool
	Logger     *logrus.Logger
}

// Repository хранит лес одним значением в badger
type Repository struct {
	db  *badger.DB
	key []byte
	log *logrus.Logger
}

// Open открывает базу badger по пути из конфигурации
func Open(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.Key == "" {
		return nil, errors.New("no storage key provided in configuration")
	}
	if cfg.Path == "" && !cfg.InMemory {
		return nil, errors.New("no path provided in configuration")
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = cfg.Logger
	opts.SyncWrites = cfg.SyncWrites

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}

	return &Repository{
		db:  db,
		key: []byte(cfg.Key),
		log: cfg.Logger,
	}, nil
}

// Load читает лес; found == false при отсутствии ключа
func (r *Repository) Load(ctx context.Context) (domain.Forest, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var data []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(r.key)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read forest: %w", err)
	}

	forest, err := codec.Decode(data)
	if err != nil {
		return nil, false, err
	}
	return forest, true, nil
}

// Save записывает лес целиком в одной транзакции
func (r *Repository) Save(ctx context.Context, forest domain.Forest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := codec.Encode(forest)
	if err != nil {
		return err
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(r.key, data)
	})
	if err != nil {
		r.log.WithError(err).Error("failed to write forest")
		return fmt.Errorf("failed to write forest: %w", err)
	}

	r.log.WithField("bytes", len(data)).Debug("forest written")
	return nil
}

// Close закрывает базу
func (r *Repository) Close() error {
	return r.db.Close()
}
