package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/together-server/internal/finance"
	"github.com/carson-networks/together-server/internal/logging"
	"github.com/carson-networks/together-server/internal/storage/rate"
)

var identityRate = decimal.NewFromInt(1)

type ratePair struct {
	from, to string
}

// rateBook resolves conversion rates for one request. Each pair is read at most once.
// A pair without a row converts at rate 1 and is remembered so the caller can report it.
type rateBook struct {
	rates  rate.IRateTable
	cache  map[ratePair]decimal.Decimal
	missed map[string]struct{}
}

func newRateBook(rates rate.IRateTable) *rateBook {
	return &rateBook{
		rates:  rates,
		cache:  make(map[ratePair]decimal.Decimal),
		missed: make(map[string]struct{}),
	}
}

func (b *rateBook) rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if from == to {
		return identityRate, nil
	}
	pair := ratePair{from: from, to: to}
	if r, ok := b.cache[pair]; ok {
		return r, nil
	}

	var stopTimer func()
	if logData := logging.GetLogData(ctx); logData != nil {
		stopTimer = logData.AddToExistingTiming("rateLookupMs")
	}
	row, err := b.rates.Find(ctx, from, to)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("Rates.Find(%s->%s): %w", from, to, err)
	}

	r := identityRate
	if row == nil {
		logrus.WithFields(logrus.Fields{
			"baseCurrency":   from,
			"targetCurrency": to,
		}).Warn("Conversion.rateMissing.usingIdentity")
		b.missed[from] = struct{}{}
	} else {
		r = row.Rate
	}
	b.cache[pair] = r
	return r, nil
}

// convert returns amount expressed in to, rounded to cents. Equal currencies return
// amount untouched.
func (b *rateBook) convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, decimal.Decimal, error) {
	r, err := b.rate(ctx, from, to)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return finance.ConvertAmount(amount, from, to, r), r, nil
}

func (b *rateBook) unconverted() []string {
	if len(b.missed) == 0 {
		return nil
	}
	codes := make([]string, 0, len(b.missed))
	for code := range b.missed {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
