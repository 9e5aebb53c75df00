package memory

import (
	"context"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/together-server/internal/finance"
	"github.com/carson-networks/together-server/internal/storage/account"
	"github.com/carson-networks/together-server/internal/storage/person"
	"github.com/carson-networks/together-server/internal/storage/rate"
	"github.com/carson-networks/together-server/internal/storage/transaction"
)

var (
	_ account.IAccountTable         = (*AccountsTable)(nil)
	_ person.IPersonTable           = (*PersonsTable)(nil)
	_ transaction.ITransactionTable = (*TransactionsTable)(nil)
	_ rate.IRateTable               = (*RatesTable)(nil)
)

// Tables groups the four tables bound to one view of the state.
type Tables struct {
	Accounts     *AccountsTable
	Persons      *PersonsTable
	Transactions *TransactionsTable
	Rates        *RatesTable
}

func newTables(v view, now func() time.Time) Tables {
	return Tables{
		Accounts:     &AccountsTable{v: v, now: now},
		Persons:      &PersonsTable{v: v, now: now},
		Transactions: &TransactionsTable{v: v, now: now},
		Rates:        &RatesTable{v: v, now: now},
	}
}

type AccountsTable struct {
	v   view
	now func() time.Time
}

func (t *AccountsTable) Insert(_ context.Context) (*account.Account, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	row := account.Account{ID: id, CreatedAt: t.now()}
	err = t.v.write(func(s *state) error {
		s.accounts[id] = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (t *AccountsTable) FindByID(_ context.Context, id uuid.UUID) (*account.Account, error) {
	var found *account.Account
	err := t.v.read(func(s *state) error {
		if row, ok := s.accounts[id]; ok {
			found = &row
		}
		return nil
	})
	return found, err
}

// Delete cascades to the account's persons and transactions.
func (t *AccountsTable) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	deleted := false
	err := t.v.write(func(s *state) error {
		if _, ok := s.accounts[id]; !ok {
			return nil
		}
		delete(s.accounts, id)
		for pid := range s.persons {
			if pid.accountID == id {
				delete(s.persons, pid)
			}
		}
		for txID, tx := range s.transactions {
			if tx.AccountID == id {
				delete(s.transactions, txID)
			}
		}
		deleted = true
		return nil
	})
	return deleted, err
}

type PersonsTable struct {
	v   view
	now func() time.Time
}

func (t *PersonsTable) List(_ context.Context, accountID uuid.UUID) ([]*person.Person, error) {
	var result []*person.Person
	err := t.v.read(func(s *state) error {
		for _, key := range finance.PersonKeys {
			if row, ok := s.persons[personID{accountID: accountID, key: key}]; ok {
				result = append(result, &row)
			}
		}
		return nil
	})
	return result, err
}

func (t *PersonsTable) Find(_ context.Context, accountID uuid.UUID, key finance.PersonKey) (*person.Person, error) {
	var found *person.Person
	err := t.v.read(func(s *state) error {
		if row, ok := s.persons[personID{accountID: accountID, key: key}]; ok {
			found = &row
		}
		return nil
	})
	return found, err
}

func (t *PersonsTable) InsertIfMissing(_ context.Context, create *person.PersonCreate) error {
	if _, err := finance.ParsePersonKey(string(create.Key)); err != nil {
		return ErrInvalidPersonField
	}
	return t.v.write(func(s *state) error {
		if _, ok := s.accounts[create.AccountID]; !ok {
			return ErrAccountMissing
		}
		pid := personID{accountID: create.AccountID, key: create.Key}
		if _, exists := s.persons[pid]; exists {
			return nil
		}
		now := t.now()
		s.persons[pid] = person.Person{
			AccountID:          create.AccountID,
			Key:                create.Key,
			Name:               create.Name,
			CurrencyPreference: create.CurrencyPreference,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		return nil
	})
}

func (t *PersonsTable) Update(_ context.Context, accountID uuid.UUID, key finance.PersonKey, update *person.PersonUpdate) (*person.Person, error) {
	var updated *person.Person
	err := t.v.write(func(s *state) error {
		pid := personID{accountID: accountID, key: key}
		row, ok := s.persons[pid]
		if !ok {
			return nil
		}
		if name, ok := update.Name.Get(); ok {
			row.Name = name
		}
		if currency, ok := update.CurrencyPreference.Get(); ok {
			row.CurrencyPreference = currency
		}
		row.UpdatedAt = t.now()
		s.persons[pid] = row
		updated = &row
		return nil
	})
	return updated, err
}

type TransactionsTable struct {
	v   view
	now func() time.Time
}

func (t *TransactionsTable) FindByID(_ context.Context, accountID uuid.UUID, id uuid.UUID) (*transaction.Transaction, error) {
	var found *transaction.Transaction
	err := t.v.read(func(s *state) error {
		if row, ok := s.transactions[id]; ok && row.AccountID == accountID {
			found = &row
		}
		return nil
	})
	return found, err
}

func (t *TransactionsTable) Insert(_ context.Context, create *transaction.TransactionCreate) (*transaction.Transaction, error) {
	if !create.Amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	now := t.now()
	row := transaction.Transaction{
		ID:        id,
		AccountID: create.AccountID,
		Person:    create.Person,
		Title:     create.Title,
		Amount:    finance.RoundMoney(create.Amount),
		Currency:  create.Currency,
		Type:      create.Type,
		Category:  create.Category,
		Date:      create.Date,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = t.v.write(func(s *state) error {
		if _, ok := s.persons[personID{accountID: create.AccountID, key: create.Person}]; !ok {
			return ErrPersonMissing
		}
		s.transactions[id] = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (t *TransactionsTable) Delete(_ context.Context, accountID uuid.UUID, id uuid.UUID) (bool, error) {
	deleted := false
	err := t.v.write(func(s *state) error {
		if row, ok := s.transactions[id]; ok && row.AccountID == accountID {
			delete(s.transactions, id)
			deleted = true
		}
		return nil
	})
	return deleted, err
}

func (t *TransactionsTable) List(_ context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	var result []*transaction.Transaction
	err := t.v.read(func(s *state) error {
		for _, row := range s.transactions {
			if row.AccountID != filter.AccountID {
				continue
			}
			if filter.Person != nil && row.Person != *filter.Person {
				continue
			}
			if filter.From != nil && row.Date.Before(*filter.From) {
				continue
			}
			if filter.To != nil && row.Date.After(*filter.To) {
				continue
			}
			r := row
			result = append(result, &r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() > b.ID.String()
	})
	return result, nil
}

type RatesTable struct {
	v   view
	now func() time.Time
}

func (t *RatesTable) Find(_ context.Context, base, target string) (*rate.Rate, error) {
	var found *rate.Rate
	err := t.v.read(func(s *state) error {
		if row, ok := s.rates[ratePair{base: base, target: target}]; ok {
			found = &row
		}
		return nil
	})
	return found, err
}

func (t *RatesTable) List(_ context.Context, filter *rate.RateFilter) ([]*rate.Rate, error) {
	var result []*rate.Rate
	err := t.v.read(func(s *state) error {
		for _, row := range s.rates {
			if filter != nil && filter.Base != nil && row.Base != *filter.Base {
				continue
			}
			if filter != nil && filter.Target != nil && row.Target != *filter.Target {
				continue
			}
			r := row
			result = append(result, &r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Base != result[j].Base {
			return result[i].Base < result[j].Base
		}
		return result[i].Target < result[j].Target
	})
	return result, nil
}

func (t *RatesTable) Upsert(_ context.Context, base, target string, value decimal.Decimal) (*rate.Rate, error) {
	if !value.IsPositive() {
		return nil, ErrNonPositiveRate
	}
	row := rate.Rate{Base: base, Target: target, Rate: value, LastUpdated: t.now()}
	err := t.v.write(func(s *state) error {
		s.rates[ratePair{base: base, target: target}] = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}
