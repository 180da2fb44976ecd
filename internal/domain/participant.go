package domain

import "time"

// Position is a point in the shared coordinate space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type Participant struct {
	Name     string
	Level    string
	Position Position
	Channel  float64
	LastSeen time.Time
}

// Same reports whether the mutable attributes are structurally equal
// (everything except LastSeen).
func (p Participant) Same(other Participant) bool {
	return p.Level == other.Level &&
		p.Channel == other.Channel &&
		p.Position == other.Position
}

type UpsertStatus string

const (
	StatusCreated   UpsertStatus = "created"
	StatusUpdated   UpsertStatus = "updated"
	StatusUnchanged UpsertStatus = "unchanged"
)
