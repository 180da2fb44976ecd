package events

import "log/slog"

// Event types raised by the registries and the sweep.
const (
	TypeParticipantJoined  = "participant_joined"
	TypeParticipantUpdated = "participant_updated"
	TypeParticipantEvicted = "participant_evicted"
	TypeMarkerPlaced       = "marker_placed"
	TypeMarkerRemoved      = "marker_removed"
	TypeMarkerExpired      = "marker_expired"
)

type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Sink receives registry notifications. Publishing is best-effort and must
// not block registry operations.
type Sink interface {
	Publish(e Event)
}

// LogSink writes every event to the service log.
type LogSink struct{}

func (LogSink) Publish(e Event) {
	slog.Debug("event", "type", e.Type, "payload", e.Payload)
}

// Multi fans an event out to several sinks.
type Multi []Sink

func (m Multi) Publish(e Event) {
	for _, s := range m {
		s.Publish(e)
	}
}

// Payloads carried on the feed.

type ParticipantPayload struct {
	Name    string  `json:"name"`
	Level   string  `json:"level"`
	Channel float64 `json:"channel"`
}

type EvictionPayload struct {
	Name string `json:"name"`
}

type MarkerPayload struct {
	MarkerID string  `json:"marker_id"`
	Owner    string  `json:"owner,omitempty"`
	Channel  float64 `json:"channel,omitempty"`
	Kind     string  `json:"kind,omitempty"`
}
