package session

import (
	"time"

	"github.com/admin/tg-bots/astro-miniapp/internal/usecases/practice"
)

type Config struct {
	RacePolicy     string          `envconfig:"RACE_POLICY" default:"last_response"` // last_response | last_request
	ActionRate     float64         `envconfig:"ACTION_RATE" default:"5"`             // действий в секунду
	ActionBurst    int             `envconfig:"ACTION_BURST" default:"10"`
	OutboundBuffer int             `envconfig:"OUTBOUND_BUFFER" default:"256"` // кадров в очереди на отправку
	SaveCloseDelay time.Duration   `envconfig:"SAVE_CLOSE_DELAY" default:"1s"`
	Practice       practice.Config `envconfig:"PRACTICE"`
}
