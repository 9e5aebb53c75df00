package account

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Account is the owner of a person pair and its ledger.
type Account struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

// IAccountTable defines the interface for account storage operations.
// FindByID returns nil, nil when the account does not exist.
// Delete reports whether a row was removed; dependents cascade.
type IAccountTable interface {
	Insert(ctx context.Context) (*Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
