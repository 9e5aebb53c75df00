package sqlconfig

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/together-server/internal/finance"
	"github.com/carson-networks/together-server/internal/storage/person"
)

var _ person.IPersonTable = (*PersonsTable)(nil)

var personColumns = []any{"user_id", "person_key", "name", "currency_preference", "created_at", "updated_at"}

// PersonsTable provides access to the persons table.
type PersonsTable struct {
	exec bob.Executor
}

func NewPersonsTable(exec bob.Executor) *PersonsTable {
	return &PersonsTable{exec: exec}
}

// List returns the account's persons ordered by key.
func (t *PersonsTable) List(ctx context.Context, accountID uuid.UUID) ([]*person.Person, error) {
	q := psql.Select(
		sm.Columns(personColumns...),
		sm.From(psql.Quote(personsTable)),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(accountID))),
		sm.OrderBy(psql.Quote("person_key")).Asc(),
	)
	rows, err := bob.All(ctx, t.exec, q, scan.StructMapper[person.Person]())
	if err != nil {
		return nil, err
	}
	result := make([]*person.Person, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func (t *PersonsTable) Find(ctx context.Context, accountID uuid.UUID, key finance.PersonKey) (*person.Person, error) {
	q := psql.Select(
		sm.Columns(personColumns...),
		sm.From(psql.Quote(personsTable)),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(accountID))),
		sm.Where(psql.Quote("person_key").EQ(psql.Arg(string(key)))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[person.Person]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// InsertIfMissing inserts the slot unless (user_id, person_key) already exists.
// Concurrent callers race on the unique constraint, never on application state.
func (t *PersonsTable) InsertIfMissing(ctx context.Context, create *person.PersonCreate) error {
	q := psql.RawQuery(
		"INSERT INTO "+personsTable+" (user_id, person_key, name, currency_preference) VALUES (?, ?, ?, ?) "+
			"ON CONFLICT (user_id, person_key) DO NOTHING",
		create.AccountID, string(create.Key), create.Name, create.CurrencyPreference,
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}

// Update applies the set fields of update and returns the new row.
func (t *PersonsTable) Update(ctx context.Context, accountID uuid.UUID, key finance.PersonKey, update *person.PersonUpdate) (*person.Person, error) {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table(psql.Quote(personsTable)),
		um.SetCol("updated_at").ToArg(time.Now().UTC()),
	}
	if name, ok := update.Name.Get(); ok {
		queryMods = append(queryMods, um.SetCol("name").ToArg(name))
	}
	if currency, ok := update.CurrencyPreference.Get(); ok {
		queryMods = append(queryMods, um.SetCol("currency_preference").ToArg(currency))
	}
	queryMods = append(queryMods,
		um.Where(psql.Quote("user_id").EQ(psql.Arg(accountID))),
		um.Where(psql.Quote("person_key").EQ(psql.Arg(string(key)))),
		um.Returning(personColumns...),
	)

	row, err := bob.One(ctx, t.exec, psql.Update(queryMods...), scan.StructMapper[person.Person]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
