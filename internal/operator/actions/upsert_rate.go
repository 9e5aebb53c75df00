package actions

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/together-server/internal/storage"
	"github.com/carson-networks/together-server/internal/storage/rate"
)

var _ IAction = (*UpsertRate)(nil)

type UpsertRate struct {
	Base   string
	Target string
	Rate   decimal.Decimal

	Result *rate.Rate
}

func (u *UpsertRate) Perform(ctx context.Context, writer *storage.Writer) error {
	stored, err := writer.Rates.Upsert(ctx, u.Base, u.Target, u.Rate)
	if err != nil {
		return fmt.Errorf("Rates.Upsert: %w", err)
	}
	u.Result = stored
	return nil
}
