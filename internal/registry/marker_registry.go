package registry

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cwrk-planet/presence-service/internal/domain"
)

// MarkerRegistry is the in-memory store of shared markers, keyed by a
// registry-generated ID. Markers are immutable after placement.
type MarkerRegistry struct {
	mu    sync.RWMutex
	items map[string]domain.Marker
}

func NewMarkerRegistry() *MarkerRegistry {
	return &MarkerRegistry{items: make(map[string]domain.Marker)}
}

// Place stores the marker under a fresh unique ID and returns it. IDs are
// never reused, even after deletion. A generated duplicate is a broken
// invariant, not a retry case.
func (r *MarkerRegistry) Place(m domain.Marker) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	if _, dup := r.items[id]; dup {
		panic(fmt.Sprintf("marker id collision: %s", id))
	}
	m.ID = id
	r.items[id] = m
	return id
}

// Remove deletes the marker. With a non-nil owner the stored owner must
// match, otherwise nothing is mutated.
func (r *MarkerRegistry) Remove(id string, owner *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[id]
	if !ok {
		return domain.ErrMarkerNotFound
	}
	if owner != nil && m.Owner != *owner {
		return domain.ErrNotOwner
	}
	delete(r.items, id)
	return nil
}

// Clear removes every marker matching at least one supplied predicate
// (owner OR channel) and returns the count removed.
func (r *MarkerRegistry) Clear(f domain.Filter) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, m := range r.items {
		if f.MatchMarkerAny(m) {
			delete(r.items, id)
			removed++
		}
	}
	return removed
}

// Query returns a copy of every live marker matching the filter. Expiry is
// applied on read: a marker past its expires_at is never returned, whether
// or not the sweep got to it yet.
func (r *MarkerRegistry) Query(f domain.Filter, now time.Time) map[string]domain.Marker {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]domain.Marker)
	for id, m := range r.items {
		if m.Expired(now) {
			continue
		}
		if f.MatchMarker(m) {
			out[id] = m
		}
	}
	return out
}

func (r *MarkerRegistry) Get(id string) (domain.Marker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[id]
	return m, ok
}

// EvictExpired removes every marker past its expires_at and returns the
// evicted IDs.
func (r *MarkerRegistry) EvictExpired(now time.Time) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var evicted []string
	for id, m := range r.items {
		if m.Expired(now) {
			delete(r.items, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}

func (r *MarkerRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}
