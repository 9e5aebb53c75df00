package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/together-server/internal/apperrors"
	"github.com/carson-networks/together-server/internal/finance"
	"github.com/carson-networks/together-server/internal/logging"
	"github.com/carson-networks/together-server/internal/storage"
	"github.com/carson-networks/together-server/internal/storage/rate"
	"github.com/carson-networks/together-server/internal/storage/transaction"
)

func (f *fixture) add(t *testing.T, person, txType, amount, currency, category string) {
	t.Helper()
	_, err := f.svc.Transaction.CreateTransaction(context.Background(), f.accountID, TransactionInput{
		Person:   person,
		Title:    txType + " " + category,
		Amount:   decimal.RequireFromString(amount),
		Currency: currency,
		Type:     txType,
		Category: category,
		Date:     dateOn(1),
	})
	require.NoError(t, err)
}

func TestComputeSummary_MixedCurrencyScenario(t *testing.T) {
	f := newFixture(t)
	f.add(t, "person1", "income", "1000", "USD", "salary")
	f.add(t, "person1", "expense", "200", "USD", "rent")
	f.add(t, "person2", "expense", "100", "EUR", "food")

	summary, err := f.svc.Summary.ComputeSummary(context.Background(), f.accountID, "both", "USD")

	require.NoError(t, err)
	assert.Equal(t, "both", summary.Person)
	assert.Equal(t, "USD", summary.Currency)
	assert.Equal(t, "1000.00", summary.Income.Total.StringFixed(2))
	assert.Equal(t, 1, summary.Income.Count)
	assert.Equal(t, "310.00", summary.Expense.Total.StringFixed(2))
	assert.Equal(t, 2, summary.Expense.Count)
	assert.Equal(t, "USD", summary.Expense.Currency)
	assert.Equal(t, "690.00", summary.Balance.StringFixed(2))
	assert.Empty(t, summary.UnconvertedCurrencies)
}

func TestComputeSummary_PerPerson(t *testing.T) {
	f := newFixture(t)
	f.add(t, "person1", "income", "1000", "USD", "salary")
	f.add(t, "person2", "expense", "100", "EUR", "food")

	summary, err := f.svc.Summary.ComputeSummary(context.Background(), f.accountID, "person2", "USD")

	require.NoError(t, err)
	assert.Equal(t, "person2", summary.Person)
	assert.True(t, summary.Income.Total.IsZero())
	assert.Equal(t, "110.00", summary.Expense.Total.StringFixed(2))
	assert.Equal(t, "-110.00", summary.Balance.StringFixed(2))
}

func TestComputeSummary_IdentityConversionIsExact(t *testing.T) {
	f := newFixture(t)
	amounts := []string{"0.10", "0.20", "19.99", "0.01"}
	for _, a := range amounts {
		f.add(t, "person1", "expense", a, "EUR", "misc")
	}

	summary, err := f.svc.Summary.ComputeSummary(context.Background(), f.accountID, "person1", "EUR")

	require.NoError(t, err)
	assert.True(t, summary.Expense.Total.Equal(decimal.RequireFromString("20.30")))
	assert.Equal(t, len(amounts), summary.Expense.Count)
}

func TestComputeSummary_SavingsExcludedFromBalance(t *testing.T) {
	f := newFixture(t)
	f.add(t, "person1", "income", "500", "USD", "salary")
	f.add(t, "person1", "expense", "120.50", "USD", "bills")
	f.add(t, "person2", "savings", "300", "USD", "emergency fund")

	summary, err := f.svc.Summary.ComputeSummary(context.Background(), f.accountID, "", "USD")

	require.NoError(t, err)
	assert.Equal(t, "300.00", summary.Savings.Total.StringFixed(2))
	assert.True(t, summary.Balance.Equal(summary.Income.Total.Sub(summary.Expense.Total)))
	assert.Equal(t, "379.50", summary.Balance.StringFixed(2))
}

func TestComputeSummary_MissingRateUsesIdentityAndIsReported(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	f := newFixture(t)
	f.add(t, "person1", "expense", "1500", "JPY", "travel")
	f.add(t, "person1", "expense", "500", "JPY", "travel")
	f.add(t, "person1", "income", "10", "USD", "refund")

	summary, err := f.svc.Summary.ComputeSummary(context.Background(), f.accountID, "person1", "USD")

	require.NoError(t, err)
	assert.Equal(t, "2000.00", summary.Expense.Total.StringFixed(2))
	assert.Equal(t, []string{"JPY"}, summary.UnconvertedCurrencies)

	var warnings []*logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warnings = append(warnings, entry)
		}
	}
	require.Len(t, warnings, 1, "one warning per missing pair")
	assert.Equal(t, "JPY", warnings[0].Data["baseCurrency"])
	assert.Equal(t, "USD", warnings[0].Data["targetCurrency"])
}

func TestComputeSummary_NoInverseRateInference(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Rate.UpsertRate(context.Background(), "USD", "CHF", decimal.RequireFromString("0.90"))
	require.NoError(t, err)
	f.add(t, "person1", "income", "90", "CHF", "gift")

	summary, err := f.svc.Summary.ComputeSummary(context.Background(), f.accountID, "person1", "USD")

	require.NoError(t, err)
	assert.Equal(t, "90.00", summary.Income.Total.StringFixed(2))
	assert.Equal(t, []string{"CHF"}, summary.UnconvertedCurrencies)
}

func TestComputeSummary_Categories(t *testing.T) {
	f := newFixture(t)
	f.add(t, "person1", "expense", "20", "USD", "food")
	f.add(t, "person2", "expense", "30", "USD", "food")
	f.add(t, "person1", "expense", "15", "USD", "bills")
	f.add(t, "person1", "income", "100", "USD", "salary")

	summary, err := f.svc.Summary.ComputeSummary(context.Background(), f.accountID, "both", "USD")

	require.NoError(t, err)
	require.Len(t, summary.Categories, 3)
	assert.Equal(t, finance.TypeIncome, summary.Categories[0].Type)
	assert.Equal(t, "salary", summary.Categories[0].Category)
	assert.Equal(t, "bills", summary.Categories[1].Category)
	assert.Equal(t, "food", summary.Categories[2].Category)
	assert.Equal(t, "50.00", summary.Categories[2].Total.StringFixed(2))
	assert.Equal(t, 2, summary.Categories[2].Count)
}

func TestComputeSummary_EmptyLedger(t *testing.T) {
	f := newFixture(t)

	summary, err := f.svc.Summary.ComputeSummary(context.Background(), f.accountID, "both", "GBP")

	require.NoError(t, err)
	assert.True(t, summary.Balance.IsZero())
	assert.Equal(t, "GBP", summary.Savings.Currency)
	assert.Empty(t, summary.Categories)
}

func TestComputeSummary_UnknownOrDeletedAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Summary.ComputeSummary(ctx, uuid.Must(uuid.NewV4()), "both", "USD")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	f.add(t, "person1", "income", "10", "USD", "salary")
	require.NoError(t, f.svc.Account.DeleteAccount(ctx, f.accountID))

	summary, err := f.svc.Summary.ComputeSummary(ctx, f.accountID, "both", "USD")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, summary)
}

func TestComputeSummary_RecordsRateLookupTiming(t *testing.T) {
	f := newFixture(t)
	f.add(t, "person2", "expense", "100", "EUR", "food")
	f.add(t, "person2", "expense", "40", "GBP", "food")

	logger, hook := logtest.NewNullLogger()
	logData := logging.NewLogData(logger)
	ctx := logging.WithLogData(context.Background(), logData)

	_, err := f.svc.Summary.ComputeSummary(ctx, f.accountID, "both", "USD")
	require.NoError(t, err)

	logData.Log().Info("done")
	require.NotNil(t, hook.LastEntry())
	assert.Contains(t, hook.LastEntry().Data, "rateLookupMs")
}

func TestComputeSummary_InvalidInputFailsBeforeReading(t *testing.T) {
	tests := []struct {
		name     string
		person   string
		currency string
	}{
		{name: "unrecognized currency", person: "both", currency: "ABC"},
		{name: "lowercase currency", person: "both", currency: "usd"},
		{name: "missing currency", person: "both", currency: ""},
		{name: "unknown person", person: "person3", currency: "USD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txTable := &mockTransactionTable{}
			rateTable := &mockRateTable{}
			svc := NewSummaryService(&storage.Storage{Reader: storage.Reader{Transactions: txTable, Rates: rateTable}})

			summary, err := svc.ComputeSummary(context.Background(), uuid.Must(uuid.NewV4()), tt.person, tt.currency)

			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Nil(t, summary)
			txTable.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
			rateTable.AssertNotCalled(t, "Find", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestComputeSummary_RateLookupError(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	txTable := &mockTransactionTable{}
	txTable.On("List", mock.Anything, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.AccountID == accountID && f.Person == nil
	})).Return([]*transaction.Transaction{{
		ID: uuid.Must(uuid.NewV4()), Amount: decimal.NewFromInt(5), Currency: "EUR", Type: finance.TypeExpense,
	}}, nil)
	rateTable := &mockRateTable{}
	rateTable.On("Find", mock.Anything, "EUR", "USD").Return((*rate.Rate)(nil), errors.New("timeout"))
	svc := NewSummaryService(&storage.Storage{Reader: storage.Reader{
		Accounts: existingAccount(accountID), Transactions: txTable, Rates: rateTable,
	}})

	summary, err := svc.ComputeSummary(context.Background(), accountID, "both", "USD")

	assert.Nil(t, summary)
	assert.EqualError(t, err, "Rates.Find(EUR->USD): timeout")
	txTable.AssertExpectations(t)
	rateTable.AssertExpectations(t)
}
