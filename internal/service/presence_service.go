package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cwrk-planet/presence-service/internal/domain"
	"github.com/cwrk-planet/presence-service/internal/events"
	"github.com/cwrk-planet/presence-service/internal/registry"
)

type PresenceService struct {
	participants *registry.ParticipantRegistry
	sink         events.Sink

	now func() time.Time
}

func NewPresenceService(participants *registry.ParticipantRegistry, sink events.Sink) *PresenceService {
	return &PresenceService{
		participants: participants,
		sink:         sink,
		now:          time.Now,
	}
}

func (s *PresenceService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Join creates or refreshes the participant. A repeat with identical
// attributes only refreshes last_seen.
func (s *PresenceService) Join(ctx context.Context, name, level string, pos domain.Position, channel float64) (domain.UpsertStatus, domain.Participant, error) {
	if name == "" {
		return "", domain.Participant{}, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if level == "" {
		return "", domain.Participant{}, fmt.Errorf("%w: level is required", domain.ErrInvalidInput)
	}

	status, snap := s.participants.Upsert(domain.Participant{
		Name:     name,
		Level:    level,
		Position: pos,
		Channel:  channel,
	}, s.now())

	switch status {
	case domain.StatusCreated:
		slog.Info("participant joined", "name", name, "channel", channel)
		s.sink.Publish(events.Event{
			Type:    events.TypeParticipantJoined,
			Payload: events.ParticipantPayload{Name: name, Level: level, Channel: channel},
		})
	case domain.StatusUpdated:
		s.sink.Publish(events.Event{
			Type:    events.TypeParticipantUpdated,
			Payload: events.ParticipantPayload{Name: name, Level: level, Channel: channel},
		})
	}

	return status, snap, nil
}

// List returns a point-in-time copy of all participants.
func (s *PresenceService) List(ctx context.Context) map[string]domain.Participant {
	return s.participants.ListAll()
}

// Touch refreshes last_seen; best-effort, unknown names are ignored.
func (s *PresenceService) Touch(ctx context.Context, name string) bool {
	return s.participants.Touch(name, s.now())
}
