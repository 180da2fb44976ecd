package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cwrk-planet/presence-service/internal/domain"
	"github.com/cwrk-planet/presence-service/internal/events"
	"github.com/cwrk-planet/presence-service/internal/registry"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// recordingSink collects published events for assertions.
type recordingSink struct {
	got []events.Event
}

func (s *recordingSink) Publish(e events.Event) { s.got = append(s.got, e) }

func (s *recordingSink) types() []string {
	out := make([]string, 0, len(s.got))
	for _, e := range s.got {
		out = append(out, e.Type)
	}
	return out
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestPresenceService_Join_Created_Then_Unchanged(t *testing.T) {
	req := require.New(t)
	sink := &recordingSink{}
	svc := NewPresenceService(registry.NewParticipantRegistry(), sink)
	svc.SetClock(fixedClock(t0))

	status, snap, err := svc.Join(context.Background(), "eve", "1", domain.Position{}, 2.0)
	req.NoError(err)
	req.Equal(domain.StatusCreated, status)
	req.Equal(t0, snap.LastSeen)

	// Immediate repeat with the same arguments.
	status, _, err = svc.Join(context.Background(), "eve", "1", domain.Position{}, 2.0)
	req.NoError(err)
	req.Equal(domain.StatusUnchanged, status)

	req.Equal([]string{events.TypeParticipantJoined}, sink.types(), "unchanged upserts publish nothing")
}

func TestPresenceService_Join_Updated_Publishes(t *testing.T) {
	req := require.New(t)
	sink := &recordingSink{}
	svc := NewPresenceService(registry.NewParticipantRegistry(), sink)
	svc.SetClock(fixedClock(t0))

	_, _, err := svc.Join(context.Background(), "eve", "1", domain.Position{}, 2.0)
	req.NoError(err)

	status, _, err := svc.Join(context.Background(), "eve", "2", domain.Position{X: 1}, 2.0)
	req.NoError(err)
	req.Equal(domain.StatusUpdated, status)
	req.Equal([]string{events.TypeParticipantJoined, events.TypeParticipantUpdated}, sink.types())
}

func TestPresenceService_Join_Validation(t *testing.T) {
	req := require.New(t)
	svc := NewPresenceService(registry.NewParticipantRegistry(), &recordingSink{})

	_, _, err := svc.Join(context.Background(), "", "1", domain.Position{}, 2.0)
	req.ErrorIs(err, domain.ErrInvalidInput)

	_, _, err = svc.Join(context.Background(), "eve", "", domain.Position{}, 2.0)
	req.ErrorIs(err, domain.ErrInvalidInput)

	req.Empty(svc.List(context.Background()), "a rejected join applies nothing")
}

func TestPresenceService_Touch(t *testing.T) {
	req := require.New(t)
	parts := registry.NewParticipantRegistry()
	svc := NewPresenceService(parts, &recordingSink{})
	svc.SetClock(fixedClock(t0))

	_, _, err := svc.Join(context.Background(), "eve", "1", domain.Position{}, 2.0)
	req.NoError(err)

	svc.SetClock(fixedClock(t0.Add(time.Minute)))
	req.True(svc.Touch(context.Background(), "eve"))

	p, ok := parts.Get("eve")
	req.True(ok)
	req.Equal(t0.Add(time.Minute), p.LastSeen)

	req.False(svc.Touch(context.Background(), "nobody"))
}
