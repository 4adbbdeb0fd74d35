package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oziev02/threadtree/internal/domain"
	"github.com/oziev02/threadtree/internal/infrastructure/codec"
)

const defaultTable = "kv_store"

// Querier — подмножество методов pgxpool.Pool, используемое репозиторием
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository хранит сериализованный лес одной строкой
// таблицы ключ-значение
type PostgresRepository struct {
	db    Querier
	key   string
	table string
	psql  sq.StatementBuilderType
	now   func() time.Time
}

// NewPostgresRepository создает новый экземпляр PostgresRepository
func NewPostgresRepository(db Querier, key string) *PostgresRepository {
	return &PostgresRepository{
		db:    db,
		key:   key,
		table: defaultTable,
		psql:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		now:   time.Now,
	}
}

// EnsureSchema создает таблицу ключ-значение, если её нет
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key        TEXT PRIMARY KEY,
			value      BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`, r.table)

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create %s: %w", r.table, err)
	}
	return nil
}

// Load получает лес по ключу
func (r *PostgresRepository) Load(ctx context.Context) (domain.Forest, bool, error) {
	query, args, err := r.psql.
		Select("value").
		From(r.table).
		Where(sq.Eq{"key": r.key}).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("failed to build select: %w", err)
	}

	var data []byte
	err = r.db.QueryRow(ctx, query, args...).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load forest: %w", err)
	}

	forest, err := codec.Decode(data)
	if err != nil {
		return nil, false, err
	}
	return forest, true, nil
}

// Save записывает лес по ключу, заменяя предыдущее значение
func (r *PostgresRepository) Save(ctx context.Context, forest domain.Forest) error {
	data, err := codec.Encode(forest)
	if err != nil {
		return err
	}

	query, args, err := r.psql.
		Insert(r.table).
		Columns("key", "value", "updated_at").
		Values(r.key, data, r.now().UTC()).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save forest: %w", err)
	}
	return nil
}
