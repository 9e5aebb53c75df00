package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/together-server/internal/apperrors"
	"github.com/carson-networks/together-server/internal/finance"
	"github.com/carson-networks/together-server/internal/storage"
	"github.com/carson-networks/together-server/internal/storage/person"
)

var _ IAction = (*InitializePersons)(nil)

// InitializePersons creates whichever of the two slots is missing. Existing slots are
// never touched, so running it twice, or concurrently, leaves exactly two rows.
type InitializePersons struct {
	AccountID uuid.UUID
}

func (i *InitializePersons) Perform(ctx context.Context, writer *storage.Writer) error {
	acc, err := writer.Accounts.FindByID(ctx, i.AccountID)
	if err != nil {
		return fmt.Errorf("Accounts.FindByID: %w", err)
	}
	if acc == nil {
		return apperrors.NotFound("account", i.AccountID.String())
	}
	return insertDefaultPersons(ctx, writer, i.AccountID)
}

func insertDefaultPersons(ctx context.Context, writer *storage.Writer, accountID uuid.UUID) error {
	for _, key := range finance.PersonKeys {
		err := writer.Persons.InsertIfMissing(ctx, &person.PersonCreate{
			AccountID:          accountID,
			Key:                key,
			Name:               finance.DefaultPersonName(key),
			CurrencyPreference: finance.DefaultCurrency,
		})
		if err != nil {
			return fmt.Errorf("Persons.InsertIfMissing(%s): %w", key, err)
		}
	}
	return nil
}
