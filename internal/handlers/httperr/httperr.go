// Package httperr turns service errors into huma errors with the matching status.
package httperr

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/together-server/internal/apperrors"
	"github.com/carson-networks/together-server/internal/logging"
)

// FromService maps validation errors to 400, missing resources to 404 and missing
// credentials to 401. Anything else is a 500 carrying only msg; the underlying error
// goes to the request log instead of the response.
func FromService(ctx context.Context, err error, msg string) error {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return huma.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		return huma.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		return huma.NewError(http.StatusUnauthorized, err.Error())
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("error", err.Error())
	}
	return huma.NewError(http.StatusInternalServerError, msg)
}

var (
	defaultNewError = huma.NewError
	installOnce     sync.Once
)

// UseBadRequestForValidation makes huma report request schema and body decode failures
// as 400 instead of 422, so every invalid request gets the same status whether huma or a
// service rejects it.
func UseBadRequestForValidation() {
	installOnce.Do(func() {
		huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
			if status == http.StatusUnprocessableEntity {
				status = http.StatusBadRequest
			}
			return defaultNewError(status, msg, errs...)
		}
	})
}
