package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/together-server/internal/apperrors"
	"github.com/carson-networks/together-server/internal/finance"
	"github.com/carson-networks/together-server/internal/operator"
	"github.com/carson-networks/together-server/internal/operator/actions"
	"github.com/carson-networks/together-server/internal/storage"
	"github.com/carson-networks/together-server/internal/storage/person"
)

// PersonService is the person registry: two fixed slots per account.
type PersonService struct {
	storage   *storage.Storage
	delegator operator.IDelegator
}

func NewPersonService(store *storage.Storage, delegator operator.IDelegator) *PersonService {
	return &PersonService{storage: store, delegator: delegator}
}

// GetPersons fails with a not found error until both slots exist.
func (s *PersonService) GetPersons(ctx context.Context, accountID uuid.UUID) (*Persons, error) {
	rows, err := s.storage.Persons.List(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("Persons.List: %w", err)
	}

	result := &Persons{}
	found := 0
	for _, row := range rows {
		switch row.Key {
		case finance.Person1:
			result.Person1 = personFromStorage(row)
			found++
		case finance.Person2:
			result.Person2 = personFromStorage(row)
			found++
		}
	}
	if found != len(finance.PersonKeys) {
		return nil, apperrors.NotFound("persons", "")
	}
	return result, nil
}

// EnsureInitialized creates whichever slot is missing and returns the registry. Safe to
// call concurrently for the same account.
func (s *PersonService) EnsureInitialized(ctx context.Context, accountID uuid.UUID) (*Persons, error) {
	if err := s.delegator.Process(ctx, &actions.InitializePersons{AccountID: accountID}); err != nil {
		return nil, err
	}
	return s.GetPersons(ctx, accountID)
}

func (s *PersonService) UpdatePerson(ctx context.Context, accountID uuid.UUID, personKey string, patch PersonPatch) (*Person, error) {
	key, err := finance.ParsePersonKey(personKey)
	if err != nil {
		return nil, err
	}

	update := person.PersonUpdate{}
	if name, ok := patch.Name.Get(); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, apperrors.Validation("name", "must not be empty")
		}
		update.Name = omit.From(name)
	}
	if code, ok := patch.CurrencyPreference.Get(); ok {
		if err := finance.CheckRecognizedCurrency("currencyPreference", code); err != nil {
			return nil, err
		}
		update.CurrencyPreference = omit.From(code)
	}

	action := &actions.UpdatePerson{AccountID: accountID, Key: key, Update: update}
	if err := s.delegator.Process(ctx, action); err != nil {
		return nil, err
	}

	result := personFromStorage(action.Result)
	return &result, nil
}
