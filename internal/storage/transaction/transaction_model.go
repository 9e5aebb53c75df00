package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/together-server/internal/finance"
)

// Transaction represents a row of the finance table.
type Transaction struct {
	ID        uuid.UUID               `db:"id"`
	AccountID uuid.UUID               `db:"user_id"`
	Person    finance.PersonKey       `db:"person"`
	Title     string                  `db:"title"`
	Amount    decimal.Decimal         `db:"amount"`
	Currency  string                  `db:"currency"`
	Type      finance.TransactionType `db:"type"`
	Category  string                  `db:"category"`
	Date      time.Time               `db:"date"`
	CreatedAt time.Time               `db:"created_at"`
	UpdatedAt time.Time               `db:"updated_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	AccountID uuid.UUID
	Person    finance.PersonKey
	Title     string
	Amount    decimal.Decimal
	Currency  string
	Type      finance.TransactionType
	Category  string
	Date      time.Time
}

// TransactionFilter specifies filters for listing transactions.
// Nil fields are not filtered on; From and To are inclusive.
type TransactionFilter struct {
	AccountID uuid.UUID
	Person    *finance.PersonKey
	From      *time.Time
	To        *time.Time
}

// ITransactionTable defines the interface for transaction storage operations.
// This abstraction allows swapping the implementation without changing callers.
// List orders by date, then created_at, then id, all descending.
type ITransactionTable interface {
	FindByID(ctx context.Context, accountID uuid.UUID, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	Delete(ctx context.Context, accountID uuid.UUID, id uuid.UUID) (bool, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
}
