package service

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/together-server/internal/operator"
	"github.com/carson-networks/together-server/internal/operator/actions"
	"github.com/carson-networks/together-server/internal/storage"
	"github.com/carson-networks/together-server/internal/storage/account"
	"github.com/carson-networks/together-server/internal/storage/memory"
	"github.com/carson-networks/together-server/internal/storage/rate"
	"github.com/carson-networks/together-server/internal/storage/transaction"
)

type fixture struct {
	svc       *Service
	store     *storage.Storage
	accountID uuid.UUID
}

// newFixture wires the services to a seeded memory store and a running delegator, and
// creates one account.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := storage.NewMemoryStorage(memory.New(memory.WithRates(memory.DefaultRates()...)))
	delegator := operator.NewOperatorDelegator(store, 2)
	delegator.Start()
	t.Cleanup(delegator.Stop)

	svc := NewService(store, delegator)
	acc, err := svc.Account.CreateAccount(context.Background())
	require.NoError(t, err)

	return &fixture{svc: svc, store: store, accountID: acc.ID}
}

func (f *fixture) countTransactions(t *testing.T) int {
	t.Helper()
	rows, err := f.store.Transactions.List(context.Background(), &transaction.TransactionFilter{AccountID: f.accountID})
	require.NoError(t, err)
	return len(rows)
}

type mockDelegator struct {
	mock.Mock
}

func (m *mockDelegator) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

type mockAccountTable struct {
	mock.Mock
}

// existingAccount returns an account table that knows only accountID.
func existingAccount(accountID uuid.UUID) *mockAccountTable {
	table := &mockAccountTable{}
	table.On("FindByID", mock.Anything, accountID).Return(&account.Account{ID: accountID}, nil)
	return table
}

func (m *mockAccountTable) Insert(ctx context.Context) (*account.Account, error) {
	args := m.Called(ctx)
	row, _ := args.Get(0).(*account.Account)
	return row, args.Error(1)
}

func (m *mockAccountTable) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*account.Account)
	return row, args.Error(1)
}

func (m *mockAccountTable) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockTransactionTable struct {
	mock.Mock
}

func (m *mockTransactionTable) FindByID(ctx context.Context, accountID uuid.UUID, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, accountID, id)
	row, _ := args.Get(0).(*transaction.Transaction)
	return row, args.Error(1)
}

func (m *mockTransactionTable) Insert(ctx context.Context, create *transaction.TransactionCreate) (*transaction.Transaction, error) {
	args := m.Called(ctx, create)
	row, _ := args.Get(0).(*transaction.Transaction)
	return row, args.Error(1)
}

func (m *mockTransactionTable) Delete(ctx context.Context, accountID uuid.UUID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, accountID, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockTransactionTable) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*transaction.Transaction)
	return rows, args.Error(1)
}

type mockRateTable struct {
	mock.Mock
}

func (m *mockRateTable) Find(ctx context.Context, base, target string) (*rate.Rate, error) {
	args := m.Called(ctx, base, target)
	row, _ := args.Get(0).(*rate.Rate)
	return row, args.Error(1)
}

func (m *mockRateTable) List(ctx context.Context, filter *rate.RateFilter) ([]*rate.Rate, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*rate.Rate)
	return rows, args.Error(1)
}

func (m *mockRateTable) Upsert(ctx context.Context, base, target string, value decimal.Decimal) (*rate.Rate, error) {
	args := m.Called(ctx, base, target, value)
	row, _ := args.Get(0).(*rate.Rate)
	return row, args.Error(1)
}
