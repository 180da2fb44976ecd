package registry

import (
	"sync"
	"time"

	"github.com/cwrk-planet/presence-service/internal/domain"
)

// ParticipantRegistry is the in-memory store of active participants,
// keyed by name. All access goes through the registry; callers only ever
// see copies.
type ParticipantRegistry struct {
	mu    sync.RWMutex
	items map[string]domain.Participant
}

func NewParticipantRegistry() *ParticipantRegistry {
	return &ParticipantRegistry{items: make(map[string]domain.Participant)}
}

// Upsert creates the participant on first sight, refreshes last_seen when
// the mutable attributes are unchanged, and replaces them otherwise.
// Atomic with respect to concurrent upserts and sweeps on the same name.
func (r *ParticipantRegistry) Upsert(p domain.Participant, now time.Time) (domain.UpsertStatus, domain.Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.items[p.Name]
	if !ok {
		p.LastSeen = now
		r.items[p.Name] = p
		return domain.StatusCreated, p
	}

	if cur.Same(p) {
		cur.LastSeen = now
		r.items[p.Name] = cur
		return domain.StatusUnchanged, cur
	}

	cur.Level = p.Level
	cur.Position = p.Position
	cur.Channel = p.Channel
	cur.LastSeen = now
	r.items[p.Name] = cur
	return domain.StatusUpdated, cur
}

// Touch refreshes last_seen for an existing participant. Returns false if
// the name is unknown.
func (r *ParticipantRegistry) Touch(name string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[name]
	if !ok {
		return false
	}
	p.LastSeen = now
	r.items[name] = p
	return true
}

func (r *ParticipantRegistry) Get(name string) (domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[name]
	return p, ok
}

// ListAll returns a point-in-time copy of the registry.
func (r *ParticipantRegistry) ListAll() map[string]domain.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]domain.Participant, len(r.items))
	for name, p := range r.items {
		out[name] = p
	}
	return out
}

// EvictStale removes every participant not seen within timeout and returns
// the evicted names. Matches are recomputed under the write lock, so an
// entry upserted concurrently with the sweep keeps its fresh last_seen.
func (r *ParticipantRegistry) EvictStale(now time.Time, timeout time.Duration) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var evicted []string
	for name, p := range r.items {
		if now.Sub(p.LastSeen) > timeout {
			delete(r.items, name)
			evicted = append(evicted, name)
		}
	}
	return evicted
}

func (r *ParticipantRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}
