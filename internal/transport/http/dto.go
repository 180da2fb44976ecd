package http

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/cwrk-planet/presence-service/internal/domain"
)

// Level accepts a JSON string or number; the registry stores it as an
// opaque string tag either way.
type Level string

func (l *Level) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*l = ""
	case string:
		*l = Level(t)
	case float64:
		*l = Level(strconv.FormatFloat(t, 'f', -1, 64))
	default:
		return fmt.Errorf("level must be a string or a number")
	}
	return nil
}

type JoinRequest struct {
	Name    string           `json:"name" validate:"required"`
	Level   Level            `json:"level" validate:"required"`
	Coords  *domain.Position `json:"coords" validate:"required"`
	Channel *float64         `json:"channel" validate:"required"`
}

type JoinResponse struct {
	Status  string                     `json:"status"`
	Players map[string]ParticipantItem `json:"players"`
}

type ParticipantItem struct {
	Level    string          `json:"level"`
	Coords   domain.Position `json:"coords"`
	Channel  float64         `json:"channel"`
	LastSeen time.Time       `json:"last_seen"`
}

type PlayersResponse struct {
	Players map[string]ParticipantItem `json:"players"`
}

type PlaceMarkerRequest struct {
	Owner   string           `json:"owner" validate:"required"`
	Channel *float64         `json:"channel" validate:"required"`
	Level   Level            `json:"level" validate:"required"`
	Coords  *domain.Position `json:"coords" validate:"required"`
	Kind    string           `json:"kind" validate:"required"`
	TTL     *float64         `json:"ttl"` // seconds; absent — server default window
}

type PlaceMarkerResponse struct {
	MarkerID string `json:"marker_id"`
}

type MarkerItem struct {
	Owner     string          `json:"owner"`
	Channel   float64         `json:"channel"`
	Level     string          `json:"level"`
	Coords    domain.Position `json:"coords"`
	Kind      string          `json:"kind"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
}

type MarkersResponse struct {
	Markers map[string]MarkerItem `json:"markers"`
}

type RemoveMarkerResponse struct {
	Status string `json:"status"`
}

type ClearMarkersResponse struct {
	Count int `json:"count"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toParticipantItem(p domain.Participant, _ string) ParticipantItem {
	return ParticipantItem{
		Level:    p.Level,
		Coords:   p.Position,
		Channel:  p.Channel,
		LastSeen: p.LastSeen,
	}
}

func toMarkerItem(m domain.Marker, _ string) MarkerItem {
	return MarkerItem{
		Owner:     m.Owner,
		Channel:   m.Channel,
		Level:     m.Level,
		Coords:    m.Position,
		Kind:      m.Kind,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
	}
}
