package service

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/together-server/internal/finance"
	"github.com/carson-networks/together-server/internal/storage/account"
	"github.com/carson-networks/together-server/internal/storage/person"
	"github.com/carson-networks/together-server/internal/storage/rate"
	"github.com/carson-networks/together-server/internal/storage/transaction"
)

type Account struct {
	ID        uuid.UUID
	CreatedAt time.Time
}

type Person struct {
	Key                finance.PersonKey
	Name               string
	CurrencyPreference string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Persons is the registry of an account: always both slots.
type Persons struct {
	Person1 Person
	Person2 Person
}

// PersonPatch is a partial update; unset fields keep their value.
type PersonPatch struct {
	Name               omit.Val[string]
	CurrencyPreference omit.Val[string]
}

type Transaction struct {
	ID        uuid.UUID
	Person    finance.PersonKey
	Title     string
	Amount    decimal.Decimal
	Currency  string
	Type      finance.TransactionType
	Category  string
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// Converted is set only when a listing asked for a display currency.
	Converted *ConvertedAmount
}

type ConvertedAmount struct {
	Amount   decimal.Decimal
	Currency string
	// Rate is 1 when no rate row exists for the pair.
	Rate decimal.Decimal
}

// TransactionInput is the unvalidated body of a create request. Empty Currency means the
// person's preference; a nil Date means now.
type TransactionInput struct {
	Person   string
	Title    string
	Amount   decimal.Decimal
	Currency string
	Type     string
	Category string
	Date     *time.Time
}

// TransactionQuery filters a listing. Person accepts person1, person2, both or empty.
type TransactionQuery struct {
	Person   string
	From     *time.Time
	To       *time.Time
	Currency string
}

type TypeTotal struct {
	Total    decimal.Decimal
	Count    int
	Currency string
}

type CategoryTotal struct {
	Type     finance.TransactionType
	Category string
	Total    decimal.Decimal
	Count    int
}

type Summary struct {
	Person   string
	Currency string
	Income   TypeTotal
	Expense  TypeTotal
	Savings  TypeTotal
	// Balance is income minus expense; savings never count.
	Balance    decimal.Decimal
	Categories []CategoryTotal
	// UnconvertedCurrencies lists source currencies that had no rate to Currency and were
	// counted at rate 1.
	UnconvertedCurrencies []string
}

type Rate struct {
	Base        string
	Target      string
	Rate        decimal.Decimal
	LastUpdated time.Time
}

func accountFromStorage(row *account.Account) *Account {
	return &Account{ID: row.ID, CreatedAt: row.CreatedAt}
}

func personFromStorage(row *person.Person) Person {
	return Person{
		Key:                row.Key,
		Name:               row.Name,
		CurrencyPreference: row.CurrencyPreference,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}

func transactionFromStorage(row *transaction.Transaction) Transaction {
	return Transaction{
		ID:        row.ID,
		Person:    row.Person,
		Title:     row.Title,
		Amount:    row.Amount,
		Currency:  row.Currency,
		Type:      row.Type,
		Category:  row.Category,
		Date:      row.Date,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func rateFromStorage(row *rate.Rate) Rate {
	return Rate{Base: row.Base, Target: row.Target, Rate: row.Rate, LastUpdated: row.LastUpdated}
}
