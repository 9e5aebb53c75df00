package rate

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/together-server/internal/handlers/httperr"
	"github.com/carson-networks/together-server/internal/service"
)

type ListRatesInput struct {
	Base string `query:"base" doc:"Only pairs converting from this currency"`
}

type ListRatesResponseBody struct {
	Rates []Rate `json:"rates"`
}

type ListRatesOutput struct {
	Body ListRatesResponseBody
}

type rateLister interface {
	ListRates(ctx context.Context, base string) ([]service.Rate, error)
}

// ListRatesHandler handles GET /v1/finance/rates.
type ListRatesHandler struct {
	RateService rateLister
}

func NewListRatesHandler(svc rateLister) *ListRatesHandler {
	return &ListRatesHandler{RateService: svc}
}

func (h *ListRatesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-rates",
		Method:      http.MethodGet,
		Path:        "/v1/finance/rates",
		Summary:     "List conversion rates",
		Tags:        []string{"Rates"},
	}, h.handle)
}

func (h *ListRatesHandler) handle(ctx context.Context, input *ListRatesInput) (*ListRatesOutput, error) {
	rates, err := h.RateService.ListRates(ctx, input.Base)
	if err != nil {
		return nil, httperr.FromService(ctx, err, "failed to list rates")
	}

	resp := ListRatesResponseBody{Rates: make([]Rate, len(rates))}
	for i, r := range rates {
		resp.Rates[i] = fromService(r)
	}
	return &ListRatesOutput{Body: resp}, nil
}
