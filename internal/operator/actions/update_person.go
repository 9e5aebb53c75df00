package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/together-server/internal/apperrors"
	"github.com/carson-networks/together-server/internal/finance"
	"github.com/carson-networks/together-server/internal/storage"
	"github.com/carson-networks/together-server/internal/storage/person"
)

var _ IAction = (*UpdatePerson)(nil)

type UpdatePerson struct {
	AccountID uuid.UUID
	Key       finance.PersonKey
	Update    person.PersonUpdate

	Result *person.Person
}

func (u *UpdatePerson) Perform(ctx context.Context, writer *storage.Writer) error {
	updated, err := writer.Persons.Update(ctx, u.AccountID, u.Key, &u.Update)
	if err != nil {
		return fmt.Errorf("Persons.Update: %w", err)
	}
	if updated == nil {
		return apperrors.NotFound("person", string(u.Key))
	}
	u.Result = updated
	return nil
}
