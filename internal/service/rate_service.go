package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/together-server/internal/apperrors"
	"github.com/carson-networks/together-server/internal/finance"
	"github.com/carson-networks/together-server/internal/operator"
	"github.com/carson-networks/together-server/internal/operator/actions"
	"github.com/carson-networks/together-server/internal/storage"
	"github.com/carson-networks/together-server/internal/storage/rate"
)

// RateService manages the conversion table that an external refresh job keeps current.
type RateService struct {
	storage   *storage.Storage
	delegator operator.IDelegator
}

func NewRateService(store *storage.Storage, delegator operator.IDelegator) *RateService {
	return &RateService{storage: store, delegator: delegator}
}

// ListRates returns every stored pair, or only those from base when it is set.
func (s *RateService) ListRates(ctx context.Context, base string) ([]Rate, error) {
	filter := &rate.RateFilter{}
	if base != "" {
		if err := finance.CheckRecognizedCurrency("base", base); err != nil {
			return nil, err
		}
		filter.Base = &base
	}

	rows, err := s.storage.Rates.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("Rates.List: %w", err)
	}
	result := make([]Rate, len(rows))
	for i, row := range rows {
		result[i] = rateFromStorage(row)
	}
	return result, nil
}

// UpsertRate stores 1 base = value target. The inverse pair is not derived.
func (s *RateService) UpsertRate(ctx context.Context, base, target string, value decimal.Decimal) (*Rate, error) {
	if err := finance.CheckRecognizedCurrency("base", base); err != nil {
		return nil, err
	}
	if err := finance.CheckRecognizedCurrency("target", target); err != nil {
		return nil, err
	}
	if base == target {
		return nil, apperrors.Validation("target", "must differ from base")
	}
	if !value.IsPositive() {
		return nil, apperrors.Validation("rate", "must be greater than 0")
	}
	if !value.Equal(value.Round(finance.RatePlaces)) {
		return nil, apperrors.Validation("rate", fmt.Sprintf("at most %d decimal places", finance.RatePlaces))
	}

	action := &actions.UpsertRate{Base: base, Target: target, Rate: value}
	if err := s.delegator.Process(ctx, action); err != nil {
		return nil, err
	}
	result := rateFromStorage(action.Result)
	return &result, nil
}
