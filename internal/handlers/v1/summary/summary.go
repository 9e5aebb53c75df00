package summary

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/together-server/internal/handlers/httperr"
	"github.com/carson-networks/together-server/internal/handlers/identity"
	"github.com/carson-networks/together-server/internal/logging"
	"github.com/carson-networks/together-server/internal/service"
)

type TypeTotal struct {
	Total    string `json:"total" doc:"Sum in the display currency, 2 decimal places"`
	Count    int    `json:"count" doc:"Number of transactions folded into the total"`
	Currency string `json:"currency" doc:"Display currency"`
}

type CategoryTotal struct {
	Type     string `json:"type"`
	Category string `json:"category"`
	Total    string `json:"total"`
	Count    int    `json:"count"`
}

type Summary struct {
	Person                string          `json:"person" doc:"person1, person2 or both"`
	Currency              string          `json:"currency" doc:"Display currency"`
	Income                TypeTotal       `json:"income"`
	Expense               TypeTotal       `json:"expense"`
	Savings               TypeTotal       `json:"savings"`
	Balance               string          `json:"balance" doc:"Income minus expense"`
	Categories            []CategoryTotal `json:"categories"`
	UnconvertedCurrencies []string        `json:"unconvertedCurrencies" doc:"Source currencies with no stored rate, counted at rate 1"`
}

func typeTotal(t service.TypeTotal) TypeTotal {
	return TypeTotal{Total: t.Total.StringFixed(2), Count: t.Count, Currency: t.Currency}
}

func fromService(s *service.Summary) Summary {
	result := Summary{
		Person:                s.Person,
		Currency:              s.Currency,
		Income:                typeTotal(s.Income),
		Expense:               typeTotal(s.Expense),
		Savings:               typeTotal(s.Savings),
		Balance:               s.Balance.StringFixed(2),
		Categories:            make([]CategoryTotal, len(s.Categories)),
		UnconvertedCurrencies: s.UnconvertedCurrencies,
	}
	for i, c := range s.Categories {
		result.Categories[i] = CategoryTotal{
			Type:     string(c.Type),
			Category: c.Category,
			Total:    c.Total.StringFixed(2),
			Count:    c.Count,
		}
	}
	if result.UnconvertedCurrencies == nil {
		result.UnconvertedCurrencies = []string{}
	}
	return result
}

type GetSummaryInput struct {
	identity.AccountHeader
	Person   string `query:"person" doc:"person1, person2 or both (default)"`
	Currency string `query:"currency" doc:"ISO 4217 display currency"`
}

type GetSummaryOutput struct {
	Body Summary
}

type summaryComputer interface {
	ComputeSummary(ctx context.Context, accountID uuid.UUID, personFilter, displayCurrency string) (*service.Summary, error)
}

// GetSummaryHandler handles GET /v1/finance/summary.
type GetSummaryHandler struct {
	SummaryService summaryComputer
}

func NewGetSummaryHandler(svc summaryComputer) *GetSummaryHandler {
	return &GetSummaryHandler{SummaryService: svc}
}

func (h *GetSummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-summary",
		Method:      http.MethodGet,
		Path:        "/v1/finance/summary",
		Summary:     "Get summary",
		Description: "Converts every matching transaction into the display currency and returns per-type totals and the balance.",
		Tags:        []string{"Summary"},
	}, h.handle)
}

func (h *GetSummaryHandler) handle(ctx context.Context, input *GetSummaryInput) (*GetSummaryOutput, error) {
	logData := logging.GetLogData(ctx)

	accountID, err := input.Account()
	if err != nil {
		return nil, httperr.FromService(ctx, err, "")
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("computeSummaryMs")
	}
	summary, err := h.SummaryService.ComputeSummary(ctx, accountID, input.Person, input.Currency)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromService(ctx, err, "failed to compute summary")
	}

	if logData != nil && len(summary.UnconvertedCurrencies) > 0 {
		logData.AddData("unconvertedCurrencies", summary.UnconvertedCurrencies)
	}

	return &GetSummaryOutput{Body: fromService(summary)}, nil
}
