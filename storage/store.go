// Package storage is the durable client-side state backend: a single SQLite
// key-value table holding the bearer token, the session-change markers, and
// the locale preference — the Go analog of the browser's local storage, and
// shareable across processes on the same machine.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// StateModel is the Bun model of one persisted key.
type StateModel struct {
	bun.BaseModel `bun:"table:client_state,alias:cs"`

	Key       string    `bun:"key,pk"`
	Value     string    `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Store implements the client's KeyValue contract over SQLite via Bun.
type Store struct {
	db *bun.DB
}

// Open creates or opens the state database at path and ensures the schema
// exists. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	if path == "" {
		path = ":memory:"
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "unable to open client state database").
			WithMetadata(map[string]any{"path": path})
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.NewCreateTable().
		Model((*StateModel)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		_ = db.Close()
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "unable to create client state table")
	}

	return &Store{db: db}, nil
}

// Get returns the value under key, or "" when the key is absent.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var model StateModel
	err := s.db.NewSelect().
		Model(&model).
		Where("key = ?", key).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", goerrors.Wrap(err, goerrors.CategoryOperation, "client state read failed").
			WithMetadata(map[string]any{"key": key})
	}
	return model.Value, nil
}

// Set upserts the value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	model := &StateModel{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	_, err := s.db.NewInsert().
		Model(model).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "client state write failed").
			WithMetadata(map[string]any{"key": key})
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.NewDelete().
		Model((*StateModel)(nil)).
		Where("key = ?", key).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "client state delete failed").
			WithMetadata(map[string]any{"key": key})
	}
	return nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
