package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/together-server/internal/operator"
	"github.com/carson-networks/together-server/internal/operator/actions"
)

// AccountService handles account business logic.
type AccountService struct {
	delegator operator.IDelegator
}

// NewAccountService creates a new AccountService.
func NewAccountService(delegator operator.IDelegator) *AccountService {
	return &AccountService{delegator: delegator}
}

// CreateAccount creates an account with both person slots initialized.
func (s *AccountService) CreateAccount(ctx context.Context) (*Account, error) {
	action := &actions.CreateAccount{}
	if err := s.delegator.Process(ctx, action); err != nil {
		return nil, err
	}
	return accountFromStorage(action.Result), nil
}

// DeleteAccount removes the account along with its persons and transactions.
func (s *AccountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return s.delegator.Process(ctx, &actions.DeleteAccount{AccountID: id})
}
