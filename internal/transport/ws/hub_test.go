package ws

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwrk-planet/presence-service/internal/events"
)

type fakeConn struct {
	got []events.Event
}

func (c *fakeConn) Send(e events.Event) error { c.got = append(c.got, e); return nil }
func (c *fakeConn) Close() error              { return nil }

func TestHub_Broadcasts_To_All_Conns(t *testing.T) {
	req := require.New(t)
	h := NewHub()

	a := &fakeConn{}
	b := &fakeConn{}
	h.Add(a)
	h.Add(b)
	req.Equal(2, h.Len())

	h.Publish(events.Event{Type: events.TypeMarkerPlaced})
	req.Len(a.got, 1)
	req.Len(b.got, 1)
}

func TestHub_Remove(t *testing.T) {
	req := require.New(t)
	h := NewHub()

	a := &fakeConn{}
	h.Add(a)
	h.Remove(a)
	req.Equal(0, h.Len())

	h.Publish(events.Event{Type: events.TypeMarkerExpired})
	req.Empty(a.got)

	// Removing twice is harmless.
	h.Remove(a)
}
