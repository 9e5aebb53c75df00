package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/together-server/internal/apperrors"
	"github.com/carson-networks/together-server/internal/storage"
)

var _ IAction = (*DeleteTransaction)(nil)

type DeleteTransaction struct {
	AccountID     uuid.UUID
	TransactionID uuid.UUID
}

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	deleted, err := writer.Transactions.Delete(ctx, d.AccountID, d.TransactionID)
	if err != nil {
		return fmt.Errorf("Transactions.Delete: %w", err)
	}
	if !deleted {
		return apperrors.NotFound("transaction", d.TransactionID.String())
	}
	return nil
}
