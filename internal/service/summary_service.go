package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/together-server/internal/finance"
	"github.com/carson-networks/together-server/internal/storage"
	"github.com/carson-networks/together-server/internal/storage/transaction"
)

// SummaryService is the read-side aggregation engine. It never writes and keeps no cache.
type SummaryService struct {
	storage *storage.Storage
}

func NewSummaryService(store *storage.Storage) *SummaryService {
	return &SummaryService{storage: store}
}

type categoryKey struct {
	txType   finance.TransactionType
	category string
}

type accumulator struct {
	total decimal.Decimal
	count int
}

func (a *accumulator) add(amount decimal.Decimal) {
	a.total = a.total.Add(amount)
	a.count++
}

// ComputeSummary converts every matching transaction into displayCurrency and folds the
// results into per-type totals. Sums keep full precision and are rounded once at the end.
func (s *SummaryService) ComputeSummary(ctx context.Context, accountID uuid.UUID, personFilter, displayCurrency string) (*Summary, error) {
	if err := finance.CheckRecognizedCurrency("currency", displayCurrency); err != nil {
		return nil, err
	}
	who, err := finance.ParsePersonFilter(personFilter)
	if err != nil {
		return nil, err
	}
	if err := requireAccount(ctx, s.storage.Accounts, accountID); err != nil {
		return nil, err
	}

	filter := &transaction.TransactionFilter{AccountID: accountID}
	if !who.Both {
		filter.Person = &who.Key
	}
	rows, err := s.storage.Transactions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("Transactions.List: %w", err)
	}

	book := newRateBook(s.storage.Rates)
	byType := make(map[finance.TransactionType]*accumulator, len(finance.TransactionTypes))
	for _, t := range finance.TransactionTypes {
		byType[t] = &accumulator{}
	}
	byCategory := make(map[categoryKey]*accumulator)

	for _, row := range rows {
		converted, _, err := book.convert(ctx, row.Amount, row.Currency, displayCurrency)
		if err != nil {
			return nil, err
		}
		acc, ok := byType[row.Type]
		if !ok {
			return nil, fmt.Errorf("transaction %s has unknown type %q", row.ID, row.Type)
		}
		acc.add(converted)

		key := categoryKey{txType: row.Type, category: row.Category}
		if byCategory[key] == nil {
			byCategory[key] = &accumulator{}
		}
		byCategory[key].add(converted)
	}

	total := func(t finance.TransactionType) TypeTotal {
		return TypeTotal{
			Total:    finance.RoundMoney(byType[t].total),
			Count:    byType[t].count,
			Currency: displayCurrency,
		}
	}
	summary := &Summary{
		Person:                who.String(),
		Currency:              displayCurrency,
		Income:                total(finance.TypeIncome),
		Expense:               total(finance.TypeExpense),
		Savings:               total(finance.TypeSavings),
		Categories:            categoryTotals(byCategory),
		UnconvertedCurrencies: book.unconverted(),
	}
	summary.Balance = summary.Income.Total.Sub(summary.Expense.Total)
	return summary, nil
}

func categoryTotals(byCategory map[categoryKey]*accumulator) []CategoryTotal {
	typeOrder := make(map[finance.TransactionType]int, len(finance.TransactionTypes))
	for i, t := range finance.TransactionTypes {
		typeOrder[t] = i
	}

	result := make([]CategoryTotal, 0, len(byCategory))
	for key, acc := range byCategory {
		result = append(result, CategoryTotal{
			Type:     key.txType,
			Category: key.category,
			Total:    finance.RoundMoney(acc.total),
			Count:    acc.count,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Type != result[j].Type {
			return typeOrder[result[i].Type] < typeOrder[result[j].Type]
		}
		return result[i].Category < result[j].Category
	})
	return result
}
