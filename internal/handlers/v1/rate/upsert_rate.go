package rate

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/together-server/internal/handlers/httperr"
	"github.com/carson-networks/together-server/internal/handlers/wire"
	"github.com/carson-networks/together-server/internal/logging"
	"github.com/carson-networks/together-server/internal/service"
)

type UpsertRateBody struct {
	Rate wire.Decimal `json:"rate" doc:"Decimal multiplier, greater than 0, at most 8 decimal places"`
}

type UpsertRateInput struct {
	Base   string `path:"base" doc:"Source currency"`
	Target string `path:"target" doc:"Destination currency"`
	Body   UpsertRateBody
}

type UpsertRateOutput struct {
	Body Rate
}

type rateUpserter interface {
	UpsertRate(ctx context.Context, base, target string, value decimal.Decimal) (*service.Rate, error)
}

// UpsertRateHandler handles PUT /v1/finance/rates/{base}/{target}. An external refresh job
// is expected to call it; the inverse pair is left alone.
type UpsertRateHandler struct {
	RateService rateUpserter
}

func NewUpsertRateHandler(svc rateUpserter) *UpsertRateHandler {
	return &UpsertRateHandler{RateService: svc}
}

func (h *UpsertRateHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "upsert-rate",
		Method:      http.MethodPut,
		Path:        "/v1/finance/rates/{base}/{target}",
		Summary:     "Create or replace a conversion rate",
		Tags:        []string{"Rates"},
	}, h.handle)
}

func (h *UpsertRateHandler) handle(ctx context.Context, input *UpsertRateInput) (*UpsertRateOutput, error) {
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("pair", input.Base+"/"+input.Target)
	}

	r, err := h.RateService.UpsertRate(ctx, input.Base, input.Target, input.Body.Rate.Decimal)
	if err != nil {
		return nil, httperr.FromService(ctx, err, "failed to store rate")
	}
	return &UpsertRateOutput{Body: fromService(*r)}, nil
}
