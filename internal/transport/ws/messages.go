package ws

import (
	"time"

	"github.com/cwrk-planet/presence-service/internal/domain"
)

// TypeState is sent once on connect: a snapshot of both registries.
// Everything after it is the live event stream.
const TypeState = "state"

type StatePayload struct {
	Participants map[string]ParticipantStateItem `json:"participants"`
	Markers      map[string]MarkerStateItem      `json:"markers"`
}

type ParticipantStateItem struct {
	Level    string          `json:"level"`
	Position domain.Position `json:"position"`
	Channel  float64         `json:"channel"`
	LastSeen int64           `json:"last_seen_unix"`
}

type MarkerStateItem struct {
	Owner     string          `json:"owner"`
	Channel   float64         `json:"channel"`
	Level     string          `json:"level"`
	Position  domain.Position `json:"position"`
	Kind      string          `json:"kind"`
	CreatedAt int64           `json:"created_at_unix"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
}
