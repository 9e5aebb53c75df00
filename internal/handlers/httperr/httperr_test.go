package httperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/together-server/internal/apperrors"
	"github.com/carson-networks/together-server/internal/logging"
)

func TestFromService(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "validation",
			err:     apperrors.Validation("amount", "must be greater than 0"),
			status:  http.StatusBadRequest,
			message: "amount: must be greater than 0",
		},
		{
			name:    "wrapped not found",
			err:     fmt.Errorf("action: %w", apperrors.NotFound("transaction", "abc")),
			status:  http.StatusNotFound,
			message: "action: transaction abc not found",
		},
		{
			name:    "unauthorized",
			err:     apperrors.Unauthorized("missing X-Account-ID header"),
			status:  http.StatusUnauthorized,
			message: "unauthorized: missing X-Account-ID header",
		},
		{
			name:    "internal",
			err:     errors.New("pq: connection refused"),
			status:  http.StatusInternalServerError,
			message: "failed to do the thing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromService(context.Background(), tt.err, "failed to do the thing")

			var statusErr huma.StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.GetStatus())
			assert.Equal(t, tt.message, statusErr.Error())
		})
	}
}

func TestFromService_InternalErrorIsLogged(t *testing.T) {
	logData := logging.NewLogData(logrus.New())
	ctx := logging.WithLogData(context.Background(), logData)

	_ = FromService(ctx, errors.New("pq: connection refused"), "failed to list transactions")

	entry := logData.Log()
	assert.Equal(t, "pq: connection refused", entry.Data["error"])
}

func TestUseBadRequestForValidation(t *testing.T) {
	UseBadRequestForValidation()
	UseBadRequestForValidation()

	err := huma.NewError(http.StatusUnprocessableEntity, "validation failed")
	assert.Equal(t, http.StatusBadRequest, err.GetStatus())

	err = huma.NewError(http.StatusNotFound, "missing")
	assert.Equal(t, http.StatusNotFound, err.GetStatus())
}
