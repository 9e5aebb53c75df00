package transaction

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/together-server/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID        string `json:"id" doc:"Transaction UUID"`
	Person    string `json:"person" doc:"person1 or person2"`
	Title     string `json:"title" doc:"Short description"`
	Amount    string `json:"amount" doc:"Decimal amount in the transaction's own currency"`
	Currency  string `json:"currency" doc:"Currency the amount was recorded in"`
	Type      string `json:"type" doc:"income, expense or savings"`
	Category  string `json:"category" doc:"Free text category"`
	Date      string `json:"date" doc:"RFC3339 occurrence time"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt string `json:"updatedAt" doc:"RFC3339 last update time"`

	ConvertedAmount   string `json:"convertedAmount,omitempty" doc:"Amount in the requested display currency"`
	ConvertedCurrency string `json:"convertedCurrency,omitempty" doc:"Requested display currency"`
	ConversionRate    string `json:"conversionRate,omitempty" doc:"Rate applied, 1 when the pair has no stored rate"`
}

func fromService(tx service.Transaction) Transaction {
	result := Transaction{
		ID:        tx.ID.String(),
		Person:    string(tx.Person),
		Title:     tx.Title,
		Amount:    tx.Amount.StringFixed(2),
		Currency:  tx.Currency,
		Type:      string(tx.Type),
		Category:  tx.Category,
		Date:      tx.Date.Format(time.RFC3339),
		CreatedAt: tx.CreatedAt.Format(time.RFC3339),
		UpdatedAt: tx.UpdatedAt.Format(time.RFC3339),
	}
	if tx.Converted != nil {
		result.ConvertedAmount = tx.Converted.Amount.StringFixed(2)
		result.ConvertedCurrency = tx.Converted.Currency
		result.ConversionRate = tx.Converted.Rate.String()
	}
	return result
}

// parseTime accepts RFC3339 timestamps and plain YYYY-MM-DD dates (midnight UTC). With
// endOfDay a plain date becomes the last microsecond of that day, the finest instant
// Postgres stores, so an inclusive upper bound covers the whole day.
func parseTime(field, value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid "+field+": expected RFC3339 or YYYY-MM-DD", err)
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Microsecond)
	}
	return &t, nil
}
