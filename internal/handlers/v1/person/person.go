package person

import (
	"time"

	"github.com/carson-networks/together-server/internal/service"
)

// Person is the API response model for a person slot.
type Person struct {
	PersonKey          string `json:"personKey" doc:"Slot key: person1 or person2"`
	Name               string `json:"name" doc:"Display name"`
	CurrencyPreference string `json:"currencyPreference" doc:"ISO 4217 code used as the default transaction currency"`
	CreatedAt          string `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt          string `json:"updatedAt" doc:"RFC3339 last update time"`
}

// Persons is the registry of an account.
type Persons struct {
	Person1 Person `json:"person1"`
	Person2 Person `json:"person2"`
}

func fromService(p service.Person) Person {
	return Person{
		PersonKey:          string(p.Key),
		Name:               p.Name,
		CurrencyPreference: p.CurrencyPreference,
		CreatedAt:          p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          p.UpdatedAt.Format(time.RFC3339),
	}
}

func personsFromService(p *service.Persons) Persons {
	return Persons{
		Person1: fromService(p.Person1),
		Person2: fromService(p.Person2),
	}
}
