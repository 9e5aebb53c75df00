// Package identity reads the caller's account from the header set by the auth layer.
package identity

import (
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/together-server/internal/apperrors"
)

const HeaderName = "X-Account-ID"

// AccountHeader is embedded in the input of every account-scoped operation.
type AccountHeader struct {
	AccountID string `header:"X-Account-ID" doc:"Account UUID, set by the authenticating proxy"`
}

// Account returns the caller's account id. A missing or malformed header is an
// unauthorized error.
func (h AccountHeader) Account() (uuid.UUID, error) {
	if h.AccountID == "" {
		return uuid.Nil, apperrors.Unauthorized("missing " + HeaderName + " header")
	}
	id, err := uuid.FromString(h.AccountID)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apperrors.Unauthorized("malformed " + HeaderName + " header")
	}
	return id, nil
}
