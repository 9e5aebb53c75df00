package person

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/together-server/internal/finance"
)

// Person is one of the two slots of an account.
type Person struct {
	AccountID          uuid.UUID         `db:"user_id"`
	Key                finance.PersonKey `db:"person_key"`
	Name               string            `db:"name"`
	CurrencyPreference string            `db:"currency_preference"`
	CreatedAt          time.Time         `db:"created_at"`
	UpdatedAt          time.Time         `db:"updated_at"`
}

// PersonCreate is the input for creating a slot.
type PersonCreate struct {
	AccountID          uuid.UUID
	Key                finance.PersonKey
	Name               string
	CurrencyPreference string
}

// PersonUpdate carries a partial update. Unset fields are left untouched.
type PersonUpdate struct {
	Name               omit.Val[string]
	CurrencyPreference omit.Val[string]
}

// IPersonTable defines the interface for person storage operations.
// Find and Update return nil, nil when the row does not exist.
// InsertIfMissing relies on the (account, key) uniqueness and never overwrites.
type IPersonTable interface {
	List(ctx context.Context, accountID uuid.UUID) ([]*Person, error)
	Find(ctx context.Context, accountID uuid.UUID, key finance.PersonKey) (*Person, error)
	InsertIfMissing(ctx context.Context, create *PersonCreate) error
	Update(ctx context.Context, accountID uuid.UUID, key finance.PersonKey, update *PersonUpdate) (*Person, error)
}
