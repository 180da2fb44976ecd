package service

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/cwrk-planet/presence-service/internal/events"
	"github.com/cwrk-planet/presence-service/internal/registry"
)

const (
	DefaultSweepInterval      = 60 * time.Second
	DefaultParticipantTimeout = 60 * time.Second
)

// Sweeper periodically evicts stale participants and expired markers.
// Both passes in one tick share a single now sample. A failed tick is
// logged and the loop keeps going; eviction is idempotent, so there is
// nothing to drain on shutdown.
type Sweeper struct {
	participants *registry.ParticipantRegistry
	markers      *registry.MarkerRegistry
	sink         events.Sink

	interval time.Duration
	timeout  time.Duration

	now func() time.Time
}

func NewSweeper(participants *registry.ParticipantRegistry, markers *registry.MarkerRegistry, sink events.Sink, interval, timeout time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if timeout <= 0 {
		timeout = DefaultParticipantTimeout
	}
	return &Sweeper{
		participants: participants,
		markers:      markers,
		sink:         sink,
		interval:     interval,
		timeout:      timeout,
		now:          time.Now,
	}
}

func (s *Sweeper) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Run loops until the context is canceled.
func (s *Sweeper) Run(ctx context.Context) error {
	slog.Info("sweeper started", "interval", s.interval, "participant_timeout", s.timeout)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("sweeper stopped")
			return ctx.Err()
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick runs one eviction pass over both registries.
func (s *Sweeper) Tick() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("sweep tick panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()

	now := s.now()

	for _, name := range s.participants.EvictStale(now, s.timeout) {
		slog.Info("participant evicted", "name", name)
		s.sink.Publish(events.Event{
			Type:    events.TypeParticipantEvicted,
			Payload: events.EvictionPayload{Name: name},
		})
	}

	for _, id := range s.markers.EvictExpired(now) {
		slog.Info("marker expired", "id", id)
		s.sink.Publish(events.Event{
			Type:    events.TypeMarkerExpired,
			Payload: events.MarkerPayload{MarkerID: id},
		})
	}
}
