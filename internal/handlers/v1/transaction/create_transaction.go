package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/together-server/internal/handlers/httperr"
	"github.com/carson-networks/together-server/internal/handlers/identity"
	"github.com/carson-networks/together-server/internal/handlers/wire"
	"github.com/carson-networks/together-server/internal/logging"
	"github.com/carson-networks/together-server/internal/service"
)

// CreateTransactionBody is the request body for creating a transaction. Every field is
// optional in the schema; the service rejects bad values with a 400. Amount takes a
// decimal string or a JSON number.
type CreateTransactionBody struct {
	Person   string       `json:"person,omitempty" doc:"person1 or person2"`
	Title    string       `json:"title,omitempty" doc:"Short description"`
	Amount   wire.Decimal `json:"amount,omitempty" doc:"Positive decimal amount, stored with 2 decimal places"`
	Currency string       `json:"currency,omitempty" doc:"3-letter uppercase code, defaults to the person's preference"`
	Type     string       `json:"type,omitempty" doc:"income, expense or savings"`
	Category string       `json:"category,omitempty" doc:"Free text category"`
	Date     string       `json:"date,omitempty" doc:"RFC3339 or YYYY-MM-DD occurrence date, defaults to now"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	identity.AccountHeader
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   Transaction
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	CreateTransaction(ctx context.Context, accountID uuid.UUID, input service.TransactionInput) (*service.Transaction, error)
}

// CreateTransactionHandler handles POST /v1/finance/transactions.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/finance/transactions",
		Summary:       "Create transaction",
		Description:   "Records an income, expense or savings entry for one person.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

// parseCreateTransactionInput converts the wire format. Only syntax is checked here.
func parseCreateTransactionInput(input *CreateTransactionInput) (service.TransactionInput, error) {
	date, err := parseTime("date", input.Body.Date, false)
	if err != nil {
		return service.TransactionInput{}, err
	}

	return service.TransactionInput{
		Person:   input.Body.Person,
		Title:    input.Body.Title,
		Amount:   input.Body.Amount.Decimal,
		Currency: input.Body.Currency,
		Type:     input.Body.Type,
		Category: input.Body.Category,
		Date:     date,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	accountID, err := input.Account()
	if err != nil {
		return nil, httperr.FromService(ctx, err, "")
	}

	txInput, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	created, err := h.TransactionService.CreateTransaction(ctx, accountID, txInput)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromService(ctx, err, "failed to create transaction")
	}

	if logData != nil {
		logData.AddData("transactionID", created.ID.String())
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   fromService(*created),
	}, nil
}
