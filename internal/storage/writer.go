package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/together-server/internal/storage/memory"
)

// txCloser is satisfied by bob.Tx and memory.Tx.
type txCloser interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer exposes the tables bound to one write transaction.
type Writer struct {
	tx txCloser
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:     tx,
		Reader: *NewReader(tx),
	}
}

func newMemoryWriter(tx *memory.Tx) *Writer {
	return &Writer{
		tx:     tx,
		Reader: *newMemoryReader(tx.Tables()),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
