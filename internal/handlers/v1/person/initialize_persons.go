package person

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

type InitializePersonsInput struct {
	identity.AccountHeader
}

type personsInitializer interface {
	EnsureInitialized(ctx context.Context, accountID uuid.UUID) (*service.Persons, error)
}

// InitializePersonsHandler handles POST /v1/persons/init.
type InitializePersonsHandler struct {
	PersonService personsInitializer
}

func NewInitializePersonsHandler(svc personsInitializer) *InitializePersonsHandler {
	return &InitializePersonsHandler{PersonService: svc}
}

func (h *InitializePersonsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "initialize-persons",
		Method:      http.MethodPost,
		Path:        "/v1/persons/init",
		Summary:     "Initialize persons",
		Description: "Creates any missing person slot with its default name and currency. Existing slots are left as they are.",
		Tags:        []string{"Persons"},
	}, h.handle)
}

func (h *InitializePersonsHandler) handle(ctx context.Context, input *InitializePersonsInput) (*PersonsOutput, error) {
	accountID, err := input.Account()
	if err != nil {
		return nil, httperr.FromService(ctx, err, "")
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		logData.AddData("accountID", accountID.String())
		stopTimer = logData.AddTiming("initializePersonsMs")
	}
	persons, err := h.PersonService.EnsureInitialized(ctx, accountID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromService(ctx, err, "failed to initialize persons")
	}
	return &PersonsOutput{Body: personsFromService(persons)}, nil
}
