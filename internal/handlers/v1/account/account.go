package account

import (
	"time"

	"github.com/carson-networks/together-server/internal/service"
)

// Account is the API response model for an account.
type Account struct {
	ID        string `json:"id" doc:"Account UUID"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(acc *service.Account) Account {
	return Account{
		ID:        acc.ID.String(),
		CreatedAt: acc.CreatedAt.Format(time.RFC3339),
	}
}
