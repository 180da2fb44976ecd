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

// DefaultMarkerTTL is the fallback expiry window applied when a placement
// carries no TTL. A marker without a TTL still expires.
const DefaultMarkerTTL = 5 * time.Minute

type MarkerService struct {
	markers    *registry.MarkerRegistry
	sink       events.Sink
	defaultTTL time.Duration

	now func() time.Time
}

func NewMarkerService(markers *registry.MarkerRegistry, sink events.Sink, defaultTTL time.Duration) *MarkerService {
	if defaultTTL <= 0 {
		defaultTTL = DefaultMarkerTTL
	}
	return &MarkerService{
		markers:    markers,
		sink:       sink,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

func (s *MarkerService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

type PlaceInput struct {
	Owner    string
	Channel  float64
	Level    string
	Position domain.Position
	Kind     string
	TTL      *time.Duration // nil — use the default window
}

// Place validates the input, stamps created/expires timestamps and stores
// the marker under a fresh ID.
func (s *MarkerService) Place(ctx context.Context, in PlaceInput) (domain.Marker, error) {
	if in.Owner == "" {
		return domain.Marker{}, fmt.Errorf("%w: owner is required", domain.ErrInvalidInput)
	}
	if in.Level == "" {
		return domain.Marker{}, fmt.Errorf("%w: level is required", domain.ErrInvalidInput)
	}
	if in.Kind == "" {
		return domain.Marker{}, fmt.Errorf("%w: kind is required", domain.ErrInvalidInput)
	}

	ttl := s.defaultTTL
	if in.TTL != nil {
		if *in.TTL <= 0 {
			return domain.Marker{}, fmt.Errorf("%w: ttl must be positive", domain.ErrInvalidInput)
		}
		ttl = *in.TTL
	}

	now := s.now()
	expires := now.Add(ttl)
	m := domain.Marker{
		Owner:     in.Owner,
		Channel:   in.Channel,
		Level:     in.Level,
		Position:  in.Position,
		Kind:      in.Kind,
		CreatedAt: now,
		ExpiresAt: &expires,
	}
	m.ID = s.markers.Place(m)

	slog.Info("marker placed", "id", m.ID, "owner", m.Owner, "kind", m.Kind, "channel", m.Channel)
	s.sink.Publish(events.Event{
		Type:    events.TypeMarkerPlaced,
		Payload: events.MarkerPayload{MarkerID: m.ID, Owner: m.Owner, Channel: m.Channel, Kind: m.Kind},
	})

	return m, nil
}

// Query returns live markers matching the optional channel/level filters.
func (s *MarkerService) Query(ctx context.Context, channel *float64, level *string) map[string]domain.Marker {
	return s.markers.Query(domain.Filter{Channel: channel, Level: level}, s.now())
}

// Remove deletes one marker. A non-nil owner must match the stored owner.
func (s *MarkerService) Remove(ctx context.Context, id string, owner *string) error {
	if id == "" {
		return fmt.Errorf("%w: marker id is required", domain.ErrInvalidInput)
	}
	if err := s.markers.Remove(id, owner); err != nil {
		return err
	}

	s.sink.Publish(events.Event{
		Type:    events.TypeMarkerRemoved,
		Payload: events.MarkerPayload{MarkerID: id},
	})
	return nil
}

// Clear bulk-removes markers by owner and/or channel; at least one filter
// is required. A marker matching either supplied filter is removed.
func (s *MarkerService) Clear(ctx context.Context, owner *string, channel *float64) (int, error) {
	if owner == nil && channel == nil {
		return 0, fmt.Errorf("%w: owner or channel filter is required", domain.ErrInvalidInput)
	}

	count := s.markers.Clear(domain.Filter{Owner: owner, Channel: channel})
	if count > 0 {
		slog.Info("markers cleared", "count", count)
	}
	return count, nil
}
