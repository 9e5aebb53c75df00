package sqlconfig

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/together-server/internal/storage/rate"
)

var _ rate.IRateTable = (*RatesTable)(nil)

var rateColumns = []any{"base_currency", "target_currency", "rate", "last_updated"}

// RatesTable provides access to the currency_rates table.
type RatesTable struct {
	exec bob.Executor
}

func NewRatesTable(exec bob.Executor) *RatesTable {
	return &RatesTable{exec: exec}
}

func (t *RatesTable) Find(ctx context.Context, base, target string) (*rate.Rate, error) {
	q := psql.Select(
		sm.Columns(rateColumns...),
		sm.From(psql.Quote(ratesTable)),
		sm.Where(psql.Quote("base_currency").EQ(psql.Arg(base))),
		sm.Where(psql.Quote("target_currency").EQ(psql.Arg(target))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[rate.Rate]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (t *RatesTable) List(ctx context.Context, filter *rate.RateFilter) ([]*rate.Rate, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(rateColumns...),
		sm.From(psql.Quote(ratesTable)),
	}
	if filter != nil && filter.Base != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("base_currency").EQ(psql.Arg(*filter.Base))))
	}
	if filter != nil && filter.Target != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("target_currency").EQ(psql.Arg(*filter.Target))))
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("base_currency")).Asc(),
		sm.OrderBy(psql.Quote("target_currency")).Asc(),
	)

	rows, err := bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[rate.Rate]())
	if err != nil {
		return nil, err
	}
	result := make([]*rate.Rate, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

// Upsert writes the pair's rate and stamps last_updated.
func (t *RatesTable) Upsert(ctx context.Context, base, target string, value decimal.Decimal) (*rate.Rate, error) {
	q := psql.RawQuery(
		"INSERT INTO "+ratesTable+" (base_currency, target_currency, rate, last_updated) VALUES (?, ?, ?, now()) "+
			"ON CONFLICT (base_currency, target_currency) DO UPDATE SET rate = EXCLUDED.rate, last_updated = EXCLUDED.last_updated "+
			"RETURNING base_currency, target_currency, rate, last_updated",
		base, target, value,
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[rate.Rate]())
	if err != nil {
		return nil, err
	}
	return &row, nil
}
