package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/together-server/internal/apperrors"
	"github.com/carson-networks/together-server/internal/finance"
	"github.com/carson-networks/together-server/internal/storage"
)

func dateOn(day int) *time.Time {
	d := time.Date(2025, 6, day, 9, 0, 0, 0, time.UTC)
	return &d
}

func validInput() TransactionInput {
	return TransactionInput{
		Person:   "person1",
		Title:    "Salary",
		Amount:   decimal.RequireFromString("1000"),
		Currency: "USD",
		Type:     "income",
		Category: "work",
		Date:     dateOn(1),
	}
}

// -- CreateTransaction tests --

func TestCreateTransaction_Success(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Transaction.CreateTransaction(context.Background(), f.accountID, validInput())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, finance.Person1, created.Person)
	assert.Equal(t, "Salary", created.Title)
	assert.True(t, created.Amount.Equal(decimal.RequireFromString("1000.00")))
	assert.Equal(t, "USD", created.Currency)
	assert.Equal(t, finance.TypeIncome, created.Type)
	assert.Equal(t, "work", created.Category)
	assert.True(t, created.Date.Equal(*dateOn(1)))
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestCreateTransaction_RoundsAmountToCents(t *testing.T) {
	f := newFixture(t)
	input := validInput()
	input.Amount = decimal.RequireFromString("12.345")

	created, err := f.svc.Transaction.CreateTransaction(context.Background(), f.accountID, input)

	require.NoError(t, err)
	assert.Equal(t, "12.35", created.Amount.StringFixed(2))
}

func TestCreateTransaction_DefaultsDateToNow(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2025, 8, 2, 10, 30, 0, 0, time.UTC)
	f.svc.Transaction.now = func() time.Time { return now }

	input := validInput()
	input.Date = nil
	created, err := f.svc.Transaction.CreateTransaction(context.Background(), f.accountID, input)

	require.NoError(t, err)
	assert.True(t, created.Date.Equal(now))
}

func TestCreateTransaction_CurrencyDefaultsToPersonPreference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Person.UpdatePerson(ctx, f.accountID, "person1", PersonPatch{CurrencyPreference: omit.From("GBP")})
	require.NoError(t, err)

	input := validInput()
	input.Currency = ""
	created, err := f.svc.Transaction.CreateTransaction(ctx, f.accountID, input)

	require.NoError(t, err)
	assert.Equal(t, "GBP", created.Currency)
}

func TestCreateTransaction_SyntacticCurrencyOnly(t *testing.T) {
	f := newFixture(t)
	input := validInput()
	input.Currency = "QQQ"

	created, err := f.svc.Transaction.CreateTransaction(context.Background(), f.accountID, input)

	require.NoError(t, err)
	assert.Equal(t, "QQQ", created.Currency)
}

func TestCreateTransaction_ValidationFailuresPersistNothing(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *TransactionInput)
		field  string
	}{
		{name: "zero amount", mutate: func(in *TransactionInput) { in.Amount = decimal.Zero }, field: "amount"},
		{name: "negative amount", mutate: func(in *TransactionInput) { in.Amount = decimal.RequireFromString("-5") }, field: "amount"},
		{name: "amount rounding to zero", mutate: func(in *TransactionInput) { in.Amount = decimal.RequireFromString("0.004") }, field: "amount"},
		{name: "unknown type", mutate: func(in *TransactionInput) { in.Type = "transfer" }, field: "type"},
		{name: "unknown person", mutate: func(in *TransactionInput) { in.Person = "person3" }, field: "person"},
		{name: "both is not a person", mutate: func(in *TransactionInput) { in.Person = "both" }, field: "person"},
		{name: "empty title", mutate: func(in *TransactionInput) { in.Title = " " }, field: "title"},
		{name: "lowercase currency", mutate: func(in *TransactionInput) { in.Currency = "usd" }, field: "currency"},
		{name: "long currency", mutate: func(in *TransactionInput) { in.Currency = "USDT" }, field: "currency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			input := validInput()
			tt.mutate(&input)

			created, err := f.svc.Transaction.CreateTransaction(context.Background(), f.accountID, input)

			require.ErrorIs(t, err, apperrors.ErrValidation)
			var validationErr *apperrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Nil(t, created)
			assert.Equal(t, 0, f.countTransactions(t))
		})
	}
}

func TestCreateTransaction_UnknownAccount(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Transaction.CreateTransaction(context.Background(), uuid.Must(uuid.NewV4()), validInput())

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// -- DeleteTransaction tests --

func TestDeleteTransaction_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.Transaction.CreateTransaction(ctx, f.accountID, validInput())
	require.NoError(t, err)

	require.NoError(t, f.svc.Transaction.DeleteTransaction(ctx, f.accountID, created.ID))
	assert.Equal(t, 0, f.countTransactions(t))

	err = f.svc.Transaction.DeleteTransaction(ctx, f.accountID, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteTransaction_UnknownIDLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Transaction.CreateTransaction(ctx, f.accountID, validInput())
	require.NoError(t, err)

	err = f.svc.Transaction.DeleteTransaction(ctx, f.accountID, uuid.Must(uuid.NewV4()))

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, 1, f.countTransactions(t))
}

func TestDeleteTransaction_OtherAccountsRowIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.Transaction.CreateTransaction(ctx, f.accountID, validInput())
	require.NoError(t, err)

	other, err := f.svc.Account.CreateAccount(ctx)
	require.NoError(t, err)

	err = f.svc.Transaction.DeleteTransaction(ctx, other.ID, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, 1, f.countTransactions(t))
}

// -- GetTransaction tests --

func TestGetTransaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.Transaction.CreateTransaction(ctx, f.accountID, validInput())
	require.NoError(t, err)

	found, err := f.svc.Transaction.GetTransaction(ctx, f.accountID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = f.svc.Transaction.GetTransaction(ctx, f.accountID, uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetTransaction_StorageError(t *testing.T) {
	table := &mockTransactionTable{}
	table.On("FindByID", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
	svc := NewTransactionService(&storage.Storage{Reader: storage.Reader{Transactions: table}}, &mockDelegator{})

	found, err := svc.GetTransaction(context.Background(), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()))

	assert.Nil(t, found)
	assert.EqualError(t, err, "Transactions.FindByID: connection refused")
	table.AssertExpectations(t)
}

// -- ListTransactions tests --

func TestListTransactions_RoundTripInDateOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 12
	days := rand.New(rand.NewSource(7)).Perm(n)
	created := make(map[uuid.UUID]bool, n)
	for _, day := range days {
		input := validInput()
		input.Date = dateOn(day + 1)
		tx, err := f.svc.Transaction.CreateTransaction(ctx, f.accountID, input)
		require.NoError(t, err)
		created[tx.ID] = true
	}
	other := validInput()
	other.Person = "person2"
	_, err := f.svc.Transaction.CreateTransaction(ctx, f.accountID, other)
	require.NoError(t, err)

	listed, err := f.svc.Transaction.ListTransactions(ctx, f.accountID, TransactionQuery{Person: "person1"})

	require.NoError(t, err)
	require.Len(t, listed, n)
	for i, tx := range listed {
		assert.True(t, created[tx.ID])
		assert.Nil(t, tx.Converted)
		if i > 0 {
			assert.False(t, tx.Date.After(listed[i-1].Date), "listing must be date descending")
		}
	}

	both, err := f.svc.Transaction.ListTransactions(ctx, f.accountID, TransactionQuery{Person: "both"})
	require.NoError(t, err)
	assert.Len(t, both, n+1)
}

func TestListTransactions_DateRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, day := range []int{1, 10, 20} {
		input := validInput()
		input.Date = dateOn(day)
		_, err := f.svc.Transaction.CreateTransaction(ctx, f.accountID, input)
		require.NoError(t, err)
	}

	listed, err := f.svc.Transaction.ListTransactions(ctx, f.accountID, TransactionQuery{
		From: dateOn(5),
		To:   dateOn(20),
	})

	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.True(t, listed[0].Date.Equal(*dateOn(20)))
	assert.True(t, listed[1].Date.Equal(*dateOn(10)))
}

func TestListTransactions_ConvertsWhenCurrencyRequested(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	input := validInput()
	input.Currency = "EUR"
	input.Amount = decimal.RequireFromString("100")
	_, err := f.svc.Transaction.CreateTransaction(ctx, f.accountID, input)
	require.NoError(t, err)

	listed, err := f.svc.Transaction.ListTransactions(ctx, f.accountID, TransactionQuery{Currency: "USD"})

	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "EUR", listed[0].Currency)
	assert.Equal(t, "100.00", listed[0].Amount.StringFixed(2))
	require.NotNil(t, listed[0].Converted)
	assert.Equal(t, "USD", listed[0].Converted.Currency)
	assert.Equal(t, "110.00", listed[0].Converted.Amount.StringFixed(2))
	assert.Equal(t, "1.1", listed[0].Converted.Rate.String())
}

func TestListTransactions_InvalidQuery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Transaction.ListTransactions(ctx, f.accountID, TransactionQuery{Person: "person3"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.svc.Transaction.ListTransactions(ctx, f.accountID, TransactionQuery{Currency: "XYZ"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.svc.Transaction.ListTransactions(ctx, f.accountID, TransactionQuery{From: dateOn(10), To: dateOn(1)})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestListTransactions_UnknownAccount(t *testing.T) {
	f := newFixture(t)

	txs, err := f.svc.Transaction.ListTransactions(context.Background(), uuid.Must(uuid.NewV4()), TransactionQuery{})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, txs)
}

func TestListTransactions_StorageError(t *testing.T) {
	table := &mockTransactionTable{}
	table.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("database unavailable"))
	accountID := uuid.Must(uuid.NewV4())
	svc := NewTransactionService(&storage.Storage{Reader: storage.Reader{
		Accounts: existingAccount(accountID), Transactions: table,
	}}, &mockDelegator{})

	txs, err := svc.ListTransactions(context.Background(), accountID, TransactionQuery{})

	assert.Nil(t, txs)
	assert.EqualError(t, err, "Transactions.List: database unavailable")
}
