package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/together-server/internal/apperrors"
	"github.com/carson-networks/together-server/internal/handlers/httperr"
	"github.com/carson-networks/together-server/internal/handlers/identity"
	"github.com/carson-networks/together-server/internal/service"
)

// TransactionIDInput addresses one transaction of the caller's account.
type TransactionIDInput struct {
	identity.AccountHeader
	ID string `path:"id" doc:"Transaction UUID"`
}

// parseIDs returns the caller's account and the transaction id. An id that is not a
// UUID cannot exist, so it is reported as not found.
func parseIDs(input *TransactionIDInput) (uuid.UUID, uuid.UUID, error) {
	accountID, err := input.Account()
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperrors.NotFound("transaction", input.ID)
	}
	return accountID, id, nil
}

type GetTransactionOutput struct {
	Body Transaction
}

type transactionGetter interface {
	GetTransaction(ctx context.Context, accountID, id uuid.UUID) (*service.Transaction, error)
}

// GetTransactionHandler handles GET /v1/finance/transactions/{id}.
type GetTransactionHandler struct {
	TransactionService transactionGetter
}

func NewGetTransactionHandler(svc transactionGetter) *GetTransactionHandler {
	return &GetTransactionHandler{TransactionService: svc}
}

func (h *GetTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/v1/finance/transactions/{id}",
		Summary:     "Get transaction",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *GetTransactionHandler) handle(ctx context.Context, input *TransactionIDInput) (*GetTransactionOutput, error) {
	accountID, id, err := parseIDs(input)
	if err != nil {
		return nil, httperr.FromService(ctx, err, "")
	}

	tx, err := h.TransactionService.GetTransaction(ctx, accountID, id)
	if err != nil {
		return nil, httperr.FromService(ctx, err, "failed to get transaction")
	}
	return &GetTransactionOutput{Body: fromService(*tx)}, nil
}
