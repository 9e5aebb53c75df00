package actions

import (
	"context"
	"fmt"

	"github.com/carson-networks/together-server/internal/apperrors"
	"github.com/carson-networks/together-server/internal/storage"
	"github.com/carson-networks/together-server/internal/storage/transaction"
)

var _ IAction = (*CreateTransaction)(nil)

// CreateTransaction inserts a ledger entry. An empty Currency takes the person's
// preference as read inside the same transaction.
type CreateTransaction struct {
	Create transaction.TransactionCreate

	Result *transaction.Transaction
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	owner, err := writer.Persons.Find(ctx, t.Create.AccountID, t.Create.Person)
	if err != nil {
		return fmt.Errorf("Persons.Find: %w", err)
	}
	if owner == nil {
		return apperrors.NotFound("person", string(t.Create.Person))
	}

	storageCreate := t.Create
	if storageCreate.Currency == "" {
		storageCreate.Currency = owner.CurrencyPreference
	}

	created, err := writer.Transactions.Insert(ctx, &storageCreate)
	if err != nil {
		return fmt.Errorf("Transactions.Insert: %w", err)
	}

	t.Result = created
	return nil
}
