package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/together-server/internal/config"
	"github.com/carson-networks/together-server/internal/storage/memory"
)

// Storage reads through Reader and hands out a Writer per write transaction.
type Storage struct {
	Reader

	begin func(ctx context.Context) (*Writer, error)
	ping  func(ctx context.Context) error
	close func() error
}

// NewStorage picks the backend named by the configuration.
func NewStorage(env *config.Config) (*Storage, error) {
	switch env.StorageBackend {
	case config.BackendMemory:
		return NewMemoryStorage(memory.New(memory.WithRates(memory.DefaultRates()...))), nil
	case config.BackendPostgres:
		return NewPostgresStorage(env)
	}
	return nil, fmt.Errorf("unknown storage backend %q", env.StorageBackend)
}

func NewPostgresStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.PostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	return NewPostgresStorageFromDB(db), nil
}

// NewPostgresStorageFromDB wraps an already opened database handle.
func NewPostgresStorageFromDB(db *sql.DB) *Storage {
	bobDB := bob.NewDB(db)
	return &Storage{
		Reader: *NewReader(bobDB),
		begin: func(ctx context.Context) (*Writer, error) {
			tx, err := bobDB.BeginTx(ctx, nil)
			if err != nil {
				return nil, fmt.Errorf("BeginTx: %w", err)
			}
			return NewWriter(tx), nil
		},
		ping:  db.PingContext,
		close: db.Close,
	}
}

func NewMemoryStorage(db *memory.DB) *Storage {
	return &Storage{
		Reader: *newMemoryReader(db.Tables()),
		begin: func(ctx context.Context) (*Writer, error) {
			tx, err := db.Begin(ctx)
			if err != nil {
				return nil, err
			}
			return newMemoryWriter(tx), nil
		},
		ping:  func(ctx context.Context) error { return ctx.Err() },
		close: func() error { return nil },
	}
}

// Write opens a transaction. The caller must Commit or Rollback the returned Writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	return s.begin(ctx)
}

// Ping reports whether the backend is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

func (s *Storage) Close() error {
	return s.close()
}
