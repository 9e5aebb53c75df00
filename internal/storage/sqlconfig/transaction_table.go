package sqlconfig

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/together-server/internal/storage/transaction"
)

var _ transaction.ITransactionTable = (*TransactionsTable)(nil)

var transactionColumns = []any{
	"id", "user_id", "person", "title", "amount", "currency",
	"type", "category", "date", "created_at", "updated_at",
}

// TransactionsTable provides access to the finance table.
type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

// FindByID retrieves a transaction scoped to its account.
func (t *TransactionsTable) FindByID(ctx context.Context, accountID uuid.UUID, id uuid.UUID) (*transaction.Transaction, error) {
	q := psql.Select(
		sm.Columns(transactionColumns...),
		sm.From(psql.Quote(financeTable)),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(accountID))),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[transaction.Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Insert creates a new transaction and returns the stored row.
func (t *TransactionsTable) Insert(ctx context.Context, create *transaction.TransactionCreate) (*transaction.Transaction, error) {
	q := psql.Insert(
		im.Into(psql.Quote(financeTable), "user_id", "person", "title", "amount", "currency", "type", "category", "date"),
		im.Values(
			psql.Arg(create.AccountID),
			psql.Arg(string(create.Person)),
			psql.Arg(create.Title),
			psql.Arg(create.Amount),
			psql.Arg(create.Currency),
			psql.Arg(string(create.Type)),
			psql.Arg(create.Category),
			psql.Arg(create.Date),
		),
		im.Returning(transactionColumns...),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[transaction.Transaction]())
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete hard-deletes a transaction and reports whether a row matched.
func (t *TransactionsTable) Delete(ctx context.Context, accountID uuid.UUID, id uuid.UUID) (bool, error) {
	q := psql.Delete(
		dm.From(psql.Quote(financeTable)),
		dm.Where(psql.Quote("user_id").EQ(psql.Arg(accountID))),
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

// List returns the account's transactions matching the filter, newest date first.
func (t *TransactionsTable) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(transactionColumns...),
		sm.From(psql.Quote(financeTable)),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(filter.AccountID))),
	}
	if filter.Person != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("person").EQ(psql.Arg(string(*filter.Person)))))
	}
	if filter.From != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("date").GTE(psql.Arg(*filter.From))))
	}
	if filter.To != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("date").LTE(psql.Arg(*filter.To))))
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("date")).Desc(),
		sm.OrderBy(psql.Quote("created_at")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
	)

	rows, err := bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[transaction.Transaction]())
	if err != nil {
		return nil, err
	}
	result := make([]*transaction.Transaction, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
