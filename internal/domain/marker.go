package domain

import "time"

// Marker is a shared annotation placed on the coordinate space.
// Markers are immutable after creation; replace = delete + recreate.
type Marker struct {
	ID        string
	Owner     string
	Channel   float64
	Level     string
	Position  Position
	Kind      string
	CreatedAt time.Time
	ExpiresAt *time.Time // nil — never auto-expires
}

// Expired reports whether the marker's lifetime has run out at now.
// The same predicate is used by live queries and by the sweep.
func (m Marker) Expired(now time.Time) bool {
	return m.ExpiresAt != nil && !m.ExpiresAt.After(now)
}
