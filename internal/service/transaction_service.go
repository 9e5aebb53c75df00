package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/together-server/internal/apperrors"
	"github.com/carson-networks/together-server/internal/finance"
	"github.com/carson-networks/together-server/internal/operator"
	"github.com/carson-networks/together-server/internal/operator/actions"
	"github.com/carson-networks/together-server/internal/storage"
	"github.com/carson-networks/together-server/internal/storage/transaction"
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage   *storage.Storage
	delegator operator.IDelegator
	now       func() time.Time
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, delegator operator.IDelegator) *TransactionService {
	return &TransactionService{
		storage:   store,
		delegator: delegator,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateTransaction validates the input and stores it. Nothing is written when
// validation fails.
func (s *TransactionService) CreateTransaction(ctx context.Context, accountID uuid.UUID, input TransactionInput) (*Transaction, error) {
	storageCreate, err := s.validateInput(accountID, input)
	if err != nil {
		return nil, err
	}

	action := &actions.CreateTransaction{Create: *storageCreate}
	if err := s.delegator.Process(ctx, action); err != nil {
		return nil, err
	}

	result := transactionFromStorage(action.Result)
	return &result, nil
}

func (s *TransactionService) validateInput(accountID uuid.UUID, input TransactionInput) (*transaction.TransactionCreate, error) {
	key, err := finance.ParsePersonKey(input.Person)
	if err != nil {
		return nil, err
	}

	txType, err := finance.ParseTransactionType(input.Type)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.Validation("title", "must not be empty")
	}

	amount := finance.RoundMoney(input.Amount)
	if !amount.IsPositive() {
		return nil, apperrors.Validation("amount", "must be greater than 0")
	}

	if input.Currency != "" {
		if err := finance.CheckCurrencySyntax("currency", input.Currency); err != nil {
			return nil, err
		}
	}

	date := s.now()
	if input.Date != nil {
		date = input.Date.UTC()
	}

	return &transaction.TransactionCreate{
		AccountID: accountID,
		Person:    key,
		Title:     title,
		Amount:    amount,
		Currency:  input.Currency,
		Type:      txType,
		Category:  strings.TrimSpace(input.Category),
		Date:      date,
	}, nil
}

// DeleteTransaction fails with a not found error when the account has no such row,
// including when it was already deleted.
func (s *TransactionService) DeleteTransaction(ctx context.Context, accountID, id uuid.UUID) error {
	return s.delegator.Process(ctx, &actions.DeleteTransaction{AccountID: accountID, TransactionID: id})
}

func (s *TransactionService) GetTransaction(ctx context.Context, accountID, id uuid.UUID) (*Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, accountID, id)
	if err != nil {
		return nil, fmt.Errorf("Transactions.FindByID: %w", err)
	}
	if row == nil {
		return nil, apperrors.NotFound("transaction", id.String())
	}
	result := transactionFromStorage(row)
	return &result, nil
}

// ListTransactions returns the account's transactions newest first. When query.Currency
// is set every record also carries its amount converted into that currency.
func (s *TransactionService) ListTransactions(ctx context.Context, accountID uuid.UUID, query TransactionQuery) ([]Transaction, error) {
	who, err := finance.ParsePersonFilter(query.Person)
	if err != nil {
		return nil, err
	}
	if query.From != nil && query.To != nil && query.From.After(*query.To) {
		return nil, apperrors.Validation("from", "must not be after to")
	}
	if query.Currency != "" {
		if err := finance.CheckRecognizedCurrency("currency", query.Currency); err != nil {
			return nil, err
		}
	}
	if err := requireAccount(ctx, s.storage.Accounts, accountID); err != nil {
		return nil, err
	}

	filter := &transaction.TransactionFilter{
		AccountID: accountID,
		From:      query.From,
		To:        query.To,
	}
	if !who.Both {
		filter.Person = &who.Key
	}

	rows, err := s.storage.Transactions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("Transactions.List: %w", err)
	}

	book := newRateBook(s.storage.Rates)
	result := make([]Transaction, len(rows))
	for i, row := range rows {
		result[i] = transactionFromStorage(row)
		if query.Currency == "" {
			continue
		}
		converted, r, err := book.convert(ctx, row.Amount, row.Currency, query.Currency)
		if err != nil {
			return nil, err
		}
		result[i].Converted = &ConvertedAmount{Amount: converted, Currency: query.Currency, Rate: r}
	}
	return result, nil
}
