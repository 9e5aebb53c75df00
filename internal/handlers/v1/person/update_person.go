package person

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/together-server/internal/handlers/httperr"
	"github.com/carson-networks/together-server/internal/handlers/identity"
	"github.com/carson-networks/together-server/internal/logging"
	"github.com/carson-networks/together-server/internal/service"
)

// UpdatePersonBody holds the fields to change. Absent fields are left untouched.
type UpdatePersonBody struct {
	Name               *string `json:"name,omitempty" doc:"New display name"`
	CurrencyPreference *string `json:"currencyPreference,omitempty" doc:"New ISO 4217 currency preference"`
}

type UpdatePersonInput struct {
	identity.AccountHeader
	PersonKey string `path:"personKey" doc:"person1 or person2"`
	Body      UpdatePersonBody
}

type UpdatePersonOutput struct {
	Body Person
}

type personUpdater interface {
	UpdatePerson(ctx context.Context, accountID uuid.UUID, personKey string, patch service.PersonPatch) (*service.Person, error)
}

// UpdatePersonHandler handles PATCH /v1/persons/{personKey}.
type UpdatePersonHandler struct {
	PersonService personUpdater
}

func NewUpdatePersonHandler(svc personUpdater) *UpdatePersonHandler {
	return &UpdatePersonHandler{PersonService: svc}
}

func (h *UpdatePersonHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-person",
		Method:      http.MethodPatch,
		Path:        "/v1/persons/{personKey}",
		Summary:     "Update a person",
		Description: "Partially updates a person slot's name or currency preference.",
		Tags:        []string{"Persons"},
	}, h.handle)
}

func parseUpdatePersonBody(body UpdatePersonBody) service.PersonPatch {
	patch := service.PersonPatch{}
	if body.Name != nil {
		patch.Name = omit.From(*body.Name)
	}
	if body.CurrencyPreference != nil {
		patch.CurrencyPreference = omit.From(*body.CurrencyPreference)
	}
	return patch
}

func (h *UpdatePersonHandler) handle(ctx context.Context, input *UpdatePersonInput) (*UpdatePersonOutput, error) {
	accountID, err := input.Account()
	if err != nil {
		return nil, httperr.FromService(ctx, err, "")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("personKey", input.PersonKey)
	}

	updated, err := h.PersonService.UpdatePerson(ctx, accountID, input.PersonKey, parseUpdatePersonBody(input.Body))
	if err != nil {
		return nil, httperr.FromService(ctx, err, "failed to update person")
	}
	return &UpdatePersonOutput{Body: fromService(*updated)}, nil
}
