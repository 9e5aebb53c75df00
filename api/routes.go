package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/together-server/internal/handlers/httperr"
	"github.com/carson-networks/together-server/internal/handlers/v1/account"
	"github.com/carson-networks/together-server/internal/handlers/v1/person"
	"github.com/carson-networks/together-server/internal/handlers/v1/rate"
	"github.com/carson-networks/together-server/internal/handlers/v1/status"
	"github.com/carson-networks/together-server/internal/handlers/v1/summary"
	"github.com/carson-networks/together-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/together-server/internal/logging"
	"github.com/carson-networks/together-server/internal/service"
	"github.com/carson-networks/together-server/internal/storage"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Storage *storage.Storage
	Service *service.Service
}

// registrar is implemented by every huma handler.
type registrar interface {
	Register(api huma.API)
}

// Handler builds the mux: /status as a plain handler and everything else through huma.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Storage)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	httperr.UseBadRequestForValidation()
	humaAPI := humago.New(mux, huma.DefaultConfig("Together Finance API", "1.0.0"))
	humaAPI.UseMiddleware(logging.HumaMiddleware(r.Logger))

	svc := r.Service
	handlers := []registrar{
		account.NewCreateAccountHandler(svc.Account),
		account.NewDeleteAccountHandler(svc.Account),
		person.NewGetPersonsHandler(svc.Person),
		person.NewInitializePersonsHandler(svc.Person),
		person.NewUpdatePersonHandler(svc.Person),
		transaction.NewCreateTransactionHandler(svc.Transaction),
		transaction.NewListTransactionsHandler(svc.Transaction),
		transaction.NewGetTransactionHandler(svc.Transaction),
		transaction.NewDeleteTransactionHandler(svc.Transaction),
		summary.NewGetSummaryHandler(svc.Summary),
		rate.NewListRatesHandler(svc.Rate),
		rate.NewUpsertRateHandler(svc.Rate),
	}
	for _, h := range handlers {
		h.Register(humaAPI)
	}

	return mux
}

// Server returns the configured http.Server. The caller runs ListenAndServe and Shutdown.
func (r *Rest) Server() *http.Server {
	return &http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}
}
