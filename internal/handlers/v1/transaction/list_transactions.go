package transaction

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

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	identity.AccountHeader
	Person   string `query:"person" doc:"person1, person2 or both (default)"`
	Currency string `query:"currency" doc:"ISO 4217 display currency; when set each record also carries its converted amount"`
	From     string `query:"from" doc:"Inclusive lower bound on date, RFC3339 or YYYY-MM-DD"`
	To       string `query:"to" doc:"Inclusive upper bound on date, RFC3339 or YYYY-MM-DD (a plain date includes that whole day)"`
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction `json:"transactions" doc:"Transactions, newest date first"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListTransactions(ctx context.Context, accountID uuid.UUID, query service.TransactionQuery) ([]service.Transaction, error)
}

// ListTransactionsHandler handles GET /v1/finance/transactions.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/finance/transactions",
		Summary:     "List transactions",
		Description: "Returns the account's transactions ordered by date descending.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseListTransactionsInput parses the date bounds. Everything else is validated by
// the service.
func parseListTransactionsInput(input *ListTransactionsInput) (service.TransactionQuery, error) {
	from, err := parseTime("from", input.From, false)
	if err != nil {
		return service.TransactionQuery{}, err
	}
	to, err := parseTime("to", input.To, true)
	if err != nil {
		return service.TransactionQuery{}, err
	}
	return service.TransactionQuery{
		Person:   input.Person,
		From:     from,
		To:       to,
		Currency: input.Currency,
	}, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)

	accountID, err := input.Account()
	if err != nil {
		return nil, httperr.FromService(ctx, err, "")
	}

	query, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	txs, err := h.TransactionService.ListTransactions(ctx, accountID, query)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromService(ctx, err, "failed to list transactions")
	}

	if logData != nil {
		logData.AddData("transactionCount", len(txs))
	}

	resp := ListTransactionsResponseBody{
		Transactions: make([]Transaction, len(txs)),
	}
	for i, tx := range txs {
		resp.Transactions[i] = fromService(tx)
	}

	return &ListTransactionsOutput{Body: resp}, nil
}
