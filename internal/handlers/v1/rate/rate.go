package rate

import (
	"time"

	"github.com/carson-networks/together-server/internal/service"
)

// Rate is one stored conversion: 1 Base = Rate Target.
type Rate struct {
	Base        string `json:"base" doc:"Source currency"`
	Target      string `json:"target" doc:"Destination currency"`
	Rate        string `json:"rate" doc:"Decimal multiplier"`
	LastUpdated string `json:"lastUpdated" doc:"RFC3339 time of the last upsert"`
}

func fromService(r service.Rate) Rate {
	return Rate{
		Base:        r.Base,
		Target:      r.Target,
		Rate:        r.Rate.String(),
		LastUpdated: r.LastUpdated.Format(time.RFC3339),
	}
}
