package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/together-server/internal/apperrors"
	"github.com/carson-networks/together-server/internal/storage"
)

var _ IAction = (*DeleteAccount)(nil)

type DeleteAccount struct {
	AccountID uuid.UUID
}

func (d *DeleteAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	deleted, err := writer.Accounts.Delete(ctx, d.AccountID)
	if err != nil {
		return fmt.Errorf("Accounts.Delete: %w", err)
	}
	if !deleted {
		return apperrors.NotFound("account", d.AccountID.String())
	}
	return nil
}
