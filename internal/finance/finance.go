// Package finance holds the closed vocabulary of the two-person ledger: person slots,
// transaction types, currency codes and the rounding rule for converted amounts.
package finance

import (
	"regexp"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/carson-networks/together-server/internal/apperrors"
)

// MoneyPlaces is the number of decimal places amounts are stored and displayed with.
const MoneyPlaces = 2

// RatePlaces is the precision of a stored conversion rate.
const RatePlaces = 8

// DefaultCurrency is the preference given to freshly initialized persons.
const DefaultCurrency = "USD"

type PersonKey string

const (
	Person1 PersonKey = "person1"
	Person2 PersonKey = "person2"
)

// PersonKeys lists the slots in their canonical order.
var PersonKeys = []PersonKey{Person1, Person2}

// DefaultPersonName is the display name a slot is created with.
func DefaultPersonName(key PersonKey) string {
	switch key {
	case Person1:
		return "Person 1"
	case Person2:
		return "Person 2"
	}
	return ""
}

func ParsePersonKey(s string) (PersonKey, error) {
	switch PersonKey(s) {
	case Person1, Person2:
		return PersonKey(s), nil
	}
	return "", apperrors.Validation("person", "must be one of person1, person2")
}

// PersonFilter selects one slot or, when Both is true, the whole account.
type PersonFilter struct {
	Key  PersonKey
	Both bool
}

// AllPersons selects both slots.
var AllPersons = PersonFilter{Both: true}

// ParsePersonFilter accepts person1, person2, both, or the empty string (both).
func ParsePersonFilter(s string) (PersonFilter, error) {
	if s == "" || s == "both" {
		return AllPersons, nil
	}
	key, err := ParsePersonKey(s)
	if err != nil {
		return PersonFilter{}, apperrors.Validation("person", "must be one of person1, person2, both")
	}
	return PersonFilter{Key: key}, nil
}

func (f PersonFilter) String() string {
	if f.Both {
		return "both"
	}
	return string(f.Key)
}

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
	TypeSavings TransactionType = "savings"
)

var TransactionTypes = []TransactionType{TypeIncome, TypeExpense, TypeSavings}

func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TypeIncome, TypeExpense, TypeSavings:
		return TransactionType(s), nil
	}
	return "", apperrors.Validation("type", "must be one of income, expense, savings")
}

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// CheckCurrencySyntax only checks the shape of the code, not whether it exists.
func CheckCurrencySyntax(field, code string) error {
	if !currencyCodePattern.MatchString(code) {
		return apperrors.Validation(field, "must be a 3-letter uppercase currency code")
	}
	return nil
}

// CheckRecognizedCurrency requires an ISO 4217 code known to x/text.
func CheckRecognizedCurrency(field, code string) error {
	if err := CheckCurrencySyntax(field, code); err != nil {
		return err
	}
	if _, err := currency.ParseISO(code); err != nil {
		return apperrors.Validation(field, "is not a recognized ISO 4217 currency code")
	}
	return nil
}

// RoundMoney rounds half away from zero, which is half-up for the positive amounts
// the ledger stores.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// ConvertAmount applies rate to amount. Equal currencies short-circuit so the
// identity path never rounds.
func ConvertAmount(amount decimal.Decimal, from, to string, rate decimal.Decimal) decimal.Decimal {
	if from == to {
		return amount
	}
	return RoundMoney(amount.Mul(rate))
}
