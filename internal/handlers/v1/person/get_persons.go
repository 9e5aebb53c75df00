package person

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/together-server/internal/handlers/httperr"
	"github.com/carson-networks/together-server/internal/handlers/identity"
	"github.com/carson-networks/together-server/internal/service"
)

type GetPersonsInput struct {
	identity.AccountHeader
}

type PersonsOutput struct {
	Body Persons
}

type personsReader interface {
	GetPersons(ctx context.Context, accountID uuid.UUID) (*service.Persons, error)
}

// GetPersonsHandler handles GET /v1/persons.
type GetPersonsHandler struct {
	PersonService personsReader
}

func NewGetPersonsHandler(svc personsReader) *GetPersonsHandler {
	return &GetPersonsHandler{PersonService: svc}
}

func (h *GetPersonsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-persons",
		Method:      http.MethodGet,
		Path:        "/v1/persons",
		Summary:     "Get persons",
		Description: "Returns both person slots of the caller's account. 404 until the registry is initialized.",
		Tags:        []string{"Persons"},
	}, h.handle)
}

func (h *GetPersonsHandler) handle(ctx context.Context, input *GetPersonsInput) (*PersonsOutput, error) {
	accountID, err := input.Account()
	if err != nil {
		return nil, httperr.FromService(ctx, err, "")
	}

	persons, err := h.PersonService.GetPersons(ctx, accountID)
	if err != nil {
		return nil, httperr.FromService(ctx, err, "failed to get persons")
	}
	return &PersonsOutput{Body: personsFromService(persons)}, nil
}
