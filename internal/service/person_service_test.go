package service

import (
	"context"
	"sync"
	"testing"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/together-server/internal/apperrors"
	"github.com/carson-networks/together-server/internal/finance"
	"github.com/carson-networks/together-server/internal/storage"
	"github.com/carson-networks/together-server/internal/storage/memory"
)

func TestGetPersons_UninitializedAccount(t *testing.T) {
	f := newFixture(t)

	persons, err := f.svc.Person.GetPersons(context.Background(), uuid.Must(uuid.NewV4()))

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, persons)
}

func TestEnsureInitialized_ConcurrentCallsLeaveTwoRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Person.EnsureInitialized(ctx, f.accountID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	rows, err := f.store.Persons.List(ctx, f.accountID)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestEnsureInitialized_KeepsEdits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Person.UpdatePerson(ctx, f.accountID, "person2", PersonPatch{Name: omit.From("Sam")})
	require.NoError(t, err)

	persons, err := f.svc.Person.EnsureInitialized(ctx, f.accountID)
	require.NoError(t, err)
	assert.Equal(t, "Sam", persons.Person2.Name)
}

func TestEnsureInitialized_UnknownAccount(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Person.EnsureInitialized(context.Background(), uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdatePerson_PartialUpdate(t *testing.T) {
	f := newFixture(t)

	updated, err := f.svc.Person.UpdatePerson(context.Background(), f.accountID, "person1", PersonPatch{
		CurrencyPreference: omit.From("EUR"),
	})

	require.NoError(t, err)
	assert.Equal(t, finance.Person1, updated.Key)
	assert.Equal(t, "EUR", updated.CurrencyPreference)
	assert.Equal(t, "Person 1", updated.Name)
}

func TestUpdatePerson_ValidationFailuresNeverReachStorage(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		patch PersonPatch
		field string
	}{
		{name: "key outside enum", key: "person3", field: "person"},
		{name: "unrecognized currency", key: "person1", patch: PersonPatch{CurrencyPreference: omit.From("QQQ")}, field: "currencyPreference"},
		{name: "lowercase currency", key: "person1", patch: PersonPatch{CurrencyPreference: omit.From("usd")}, field: "currencyPreference"},
		{name: "blank name", key: "person2", patch: PersonPatch{Name: omit.From("   ")}, field: "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delegator := &mockDelegator{}
			svc := NewPersonService(storage.NewMemoryStorage(memory.New()), delegator)

			_, err := svc.UpdatePerson(context.Background(), uuid.Must(uuid.NewV4()), tt.key, tt.patch)

			require.ErrorIs(t, err, apperrors.ErrValidation)
			var validationErr *apperrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			delegator.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdatePerson_UnknownAccount(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Person.UpdatePerson(context.Background(), uuid.Must(uuid.NewV4()), "person1", PersonPatch{
		Name: omit.From("Nobody"),
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
