package registry

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cwrk-planet/presence-service/internal/domain"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func eve() domain.Participant {
	return domain.Participant{
		Name:     "eve",
		Level:    "1",
		Position: domain.Position{X: 0, Y: 0, Z: 0},
		Channel:  2.0,
	}
}

func TestParticipantRegistry_Upsert_Created_Then_Unchanged(t *testing.T) {
	req := require.New(t)
	r := NewParticipantRegistry()

	// First upsert creates the participant.
	status, snap := r.Upsert(eve(), t0)
	req.Equal(domain.StatusCreated, status)
	req.Equal(t0, snap.LastSeen)

	// Same attributes again: only last_seen moves.
	status, snap = r.Upsert(eve(), t0.Add(5*time.Second))
	req.Equal(domain.StatusUnchanged, status)
	req.Equal(t0.Add(5*time.Second), snap.LastSeen)
	req.Equal("1", snap.Level)
	req.Equal(1, r.Len())
}

func TestParticipantRegistry_Upsert_Updated_Replaces_Attributes(t *testing.T) {
	req := require.New(t)
	r := NewParticipantRegistry()
	r.Upsert(eve(), t0)

	moved := eve()
	moved.Position = domain.Position{X: 3, Y: 4, Z: 5}
	status, snap := r.Upsert(moved, t0.Add(time.Second))

	req.Equal(domain.StatusUpdated, status)
	req.Equal(domain.Position{X: 3, Y: 4, Z: 5}, snap.Position)
	req.Equal(t0.Add(time.Second), snap.LastSeen)
	req.Equal(1, r.Len())
}

func TestParticipantRegistry_Upsert_Detects_Each_Attribute_Change(t *testing.T) {
	req := require.New(t)

	for name, mutate := range map[string]func(*domain.Participant){
		"level":    func(p *domain.Participant) { p.Level = "2" },
		"channel":  func(p *domain.Participant) { p.Channel = 7.5 },
		"position": func(p *domain.Participant) { p.Position.Z = 100 },
	} {
		r := NewParticipantRegistry()
		r.Upsert(eve(), t0)

		changed := eve()
		mutate(&changed)
		status, _ := r.Upsert(changed, t0.Add(time.Second))
		req.Equal(domain.StatusUpdated, status, "changed %s", name)
	}
}

func TestParticipantRegistry_Touch(t *testing.T) {
	req := require.New(t)
	r := NewParticipantRegistry()
	r.Upsert(eve(), t0)

	req.True(r.Touch("eve", t0.Add(30*time.Second)))
	p, ok := r.Get("eve")
	req.True(ok)
	req.Equal(t0.Add(30*time.Second), p.LastSeen)

	req.False(r.Touch("ghost", t0))
}

func TestParticipantRegistry_ListAll_Is_A_Copy(t *testing.T) {
	req := require.New(t)
	r := NewParticipantRegistry()
	r.Upsert(eve(), t0)

	all := r.ListAll()
	req.Len(all, 1)

	delete(all, "eve")
	req.Equal(1, r.Len(), "mutating the snapshot must not touch the registry")
}

func TestParticipantRegistry_EvictStale(t *testing.T) {
	req := require.New(t)
	r := NewParticipantRegistry()
	r.Upsert(eve(), t0)

	bob := eve()
	bob.Name = "bob"
	r.Upsert(bob, t0.Add(50*time.Second))

	timeout := 60 * time.Second

	// Exactly at the window edge nobody is stale yet (strict >).
	req.Empty(r.EvictStale(t0.Add(60*time.Second), timeout))
	req.Equal(2, r.Len())

	evicted := r.EvictStale(t0.Add(61*time.Second), timeout)
	req.Equal([]string{"eve"}, evicted)

	_, ok := r.Get("eve")
	req.False(ok)
	_, ok = r.Get("bob")
	req.True(ok)
}

func TestParticipantRegistry_Concurrent_Upserts_And_Sweeps(t *testing.T) {
	req := require.New(t)
	r := NewParticipantRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				now := t0.Add(time.Duration(j) * time.Millisecond)
				r.Upsert(eve(), now)
				r.EvictStale(now, time.Minute)
				r.ListAll()
			}
		}()
	}
	wg.Wait()

	// eve was upserted after every eviction point, so she survives.
	_, ok := r.Get("eve")
	req.True(ok)
}
