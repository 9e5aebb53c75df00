package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/together-server/internal/apperrors"
	"github.com/carson-networks/together-server/internal/handlers/httperr"
	"github.com/carson-networks/together-server/internal/handlers/identity"
	"github.com/carson-networks/together-server/internal/logging"
)

// DeleteAccountInput is the Huma input for deleting an account.
type DeleteAccountInput struct {
	identity.AccountHeader
	ID string `path:"accountID" doc:"Account UUID, must match the caller's account"`
}

type DeleteAccountOutput struct {
	Status int
}

type accountDeleter interface {
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

// DeleteAccountHandler handles DELETE /v1/accounts/{accountID}.
type DeleteAccountHandler struct {
	AccountService accountDeleter
}

func NewDeleteAccountHandler(svc accountDeleter) *DeleteAccountHandler {
	return &DeleteAccountHandler{AccountService: svc}
}

func (h *DeleteAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-account",
		Method:        http.MethodDelete,
		Path:          "/v1/accounts/{accountID}",
		Summary:       "Delete an account",
		Description:   "Deletes the caller's account with its persons and transactions.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *DeleteAccountHandler) handle(ctx context.Context, input *DeleteAccountInput) (*DeleteAccountOutput, error) {
	callerID, err := input.Account()
	if err != nil {
		return nil, httperr.FromService(ctx, err, "")
	}
	if input.ID != callerID.String() {
		return nil, httperr.FromService(ctx, apperrors.Unauthorized("account does not belong to caller"), "")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("accountID", callerID.String())
	}

	if err := h.AccountService.DeleteAccount(ctx, callerID); err != nil {
		return nil, httperr.FromService(ctx, err, "failed to delete account")
	}
	return &DeleteAccountOutput{Status: http.StatusNoContent}, nil
}
