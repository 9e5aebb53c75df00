package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/together-server/internal/apperrors"
	"github.com/carson-networks/together-server/internal/operator"
	"github.com/carson-networks/together-server/internal/storage"
	"github.com/carson-networks/together-server/internal/storage/account"
)

// Service holds all business logic services. Reads go straight to storage; writes are
// handed to the delegator so each one runs in its own transaction.
type Service struct {
	Account     *AccountService
	Person      *PersonService
	Transaction *TransactionService
	Summary     *SummaryService
	Rate        *RateService
}

// NewService creates a new Service with the given storage and write delegator.
func NewService(store *storage.Storage, delegator operator.IDelegator) *Service {
	return &Service{
		Account:     NewAccountService(delegator),
		Person:      NewPersonService(store, delegator),
		Transaction: NewTransactionService(store, delegator),
		Summary:     NewSummaryService(store),
		Rate:        NewRateService(store, delegator),
	}
}

// requireAccount reports NotFound when the account was never created or has been deleted.
func requireAccount(ctx context.Context, accounts account.IAccountTable, accountID uuid.UUID) error {
	acc, err := accounts.FindByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("Accounts.FindByID: %w", err)
	}
	if acc == nil {
		return apperrors.NotFound("account", accountID.String())
	}
	return nil
}
