package actions

import (
	"context"
	"fmt"

	"github.com/carson-networks/together-server/internal/storage"
	"github.com/carson-networks/together-server/internal/storage/account"
)

var _ IAction = (*CreateAccount)(nil)

// CreateAccount inserts an account together with both of its person slots.
type CreateAccount struct {
	Result *account.Account
}

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	acc, err := writer.Accounts.Insert(ctx)
	if err != nil {
		return fmt.Errorf("Accounts.Insert: %w", err)
	}

	if err = insertDefaultPersons(ctx, writer, acc.ID); err != nil {
		return err
	}

	c.Result = acc
	return nil
}
