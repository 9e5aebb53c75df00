package actions

import (
	"context"

	"github.com/carson-networks/together-server/internal/storage"
)

// IAction is a unit of writes run inside one storage transaction. Perform returning an
// error rolls the whole transaction back. Actions keep their results in their own fields
// so the caller can read them once Process returns.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
