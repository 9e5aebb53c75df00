package sqlconfig

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/together-server/internal/storage/account"
)

// Ensure AccountsTable implements IAccountTable at compile time.
var _ account.IAccountTable = (*AccountsTable)(nil)

// AccountsTable provides access to the accounts table.
type AccountsTable struct {
	exec bob.Executor
}

// NewAccountsTable creates an AccountsTable on the given executor.
func NewAccountsTable(exec bob.Executor) *AccountsTable {
	return &AccountsTable{exec: exec}
}

// Insert creates a new account with a generated ID.
func (t *AccountsTable) Insert(ctx context.Context) (*account.Account, error) {
	q := psql.RawQuery("INSERT INTO " + accountsTable + " DEFAULT VALUES RETURNING id, created_at")
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[account.Account]())
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByID retrieves an account by primary key.
func (t *AccountsTable) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	q := psql.Select(
		sm.Columns("id", "created_at"),
		sm.From(psql.Quote(accountsTable)),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[account.Account]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete removes the account. Persons and transactions go with it through ON DELETE CASCADE.
func (t *AccountsTable) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	q := psql.Delete(
		dm.From(psql.Quote(accountsTable)),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	res, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
