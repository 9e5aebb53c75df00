package rate

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Rate converts one unit of Base into Rate units of Target.
type Rate struct {
	Base        string          `db:"base_currency"`
	Target      string          `db:"target_currency"`
	Rate        decimal.Decimal `db:"rate"`
	LastUpdated time.Time       `db:"last_updated"`
}

// RateFilter narrows a listing. Nil fields match everything.
type RateFilter struct {
	Base   *string
	Target *string
}

// IRateTable defines the interface for currency rate storage operations.
// Find returns nil, nil for a pair that has no row.
type IRateTable interface {
	Find(ctx context.Context, base, target string) (*Rate, error)
	List(ctx context.Context, filter *RateFilter) ([]*Rate, error)
	Upsert(ctx context.Context, base, target string, value decimal.Decimal) (*Rate, error)
}
