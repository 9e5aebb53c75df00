package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/together-server/internal/config"
	"github.com/carson-networks/together-server/internal/storage/memory"
)

func TestMemoryStorage_WriterCommit(t *testing.T) {
	s := NewMemoryStorage(memory.New())
	ctx := context.Background()

	w, err := s.Write(ctx)
	require.NoError(t, err)
	acc, err := w.Accounts.Insert(ctx)
	require.NoError(t, err)
	require.NoError(t, w.Commit())

	found, err := s.Accounts.FindByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.NotNil(t, found)
}

func TestMemoryStorage_WriterRollback(t *testing.T) {
	s := NewMemoryStorage(memory.New())
	ctx := context.Background()

	w, err := s.Write(ctx)
	require.NoError(t, err)
	acc, err := w.Accounts.Insert(ctx)
	require.NoError(t, err)
	require.NoError(t, w.Rollback())

	found, err := s.Accounts.FindByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestMemoryStorage_WriteHonoursCancelledContext(t *testing.T) {
	s := NewMemoryStorage(memory.New())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Write(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewStorage_MemoryBackendSeedsRates(t *testing.T) {
	s, err := NewStorage(&config.Config{StorageBackend: config.BackendMemory})
	require.NoError(t, err)
	defer s.Close()

	r, err := s.Rates.Find(context.Background(), "EUR", "USD")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "1.1", r.Rate.String())
}

func TestNewStorage_UnknownBackend(t *testing.T) {
	_, err := NewStorage(&config.Config{StorageBackend: "sqlite"})
	assert.Error(t, err)
}

func TestMemoryStorage_Ping(t *testing.T) {
	s := NewMemoryStorage(memory.New())
	assert.NoError(t, s.Ping(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Ping(ctx), context.Canceled)
}
