package ws

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/samber/lo"

	"github.com/cwrk-planet/presence-service/internal/domain"
	"github.com/cwrk-planet/presence-service/internal/events"
)

type PresenceSvc interface {
	List(ctx context.Context) map[string]domain.Participant
}

type MarkerSvc interface {
	Query(ctx context.Context, channel *float64, level *string) map[string]domain.Marker
}

type Server struct {
	upgrader    websocket.Upgrader
	hub         *Hub
	presenceSvc PresenceSvc
	markerSvc   MarkerSvc

	pingEvery time.Duration
}

func NewServer(hub *Hub, presence PresenceSvc, markers MarkerSvc) *Server {
	return &Server{
		hub:         hub,
		presenceSvc: presence,
		markerSvc:   markers,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: 15 * time.Second,
	}
}

// WS endpoint: GET /ws/events
// Write-only feed: one state snapshot on connect, then live events.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		http.Error(w, "upgrade failed", http.StatusBadRequest)
		return
	}

	c := newWsConn(conn)
	s.hub.Add(c)

	if err := s.sendState(r.Context(), c); err != nil {
		slog.Warn("ws send initial state failed", "err", err)
	}

	go s.writeLoop(r.Context(), c)
	s.readLoop(c)

	s.hub.Remove(c)
	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "err", err)
	}
}

func (s *Server) sendState(ctx context.Context, c *wsConn) error {
	participants := lo.MapValues(s.presenceSvc.List(ctx), func(p domain.Participant, _ string) ParticipantStateItem {
		return ParticipantStateItem{
			Level:    p.Level,
			Position: p.Position,
			Channel:  p.Channel,
			LastSeen: p.LastSeen.Unix(),
		}
	})
	markers := lo.MapValues(s.markerSvc.Query(ctx, nil, nil), func(m domain.Marker, _ string) MarkerStateItem {
		return MarkerStateItem{
			Owner:     m.Owner,
			Channel:   m.Channel,
			Level:     m.Level,
			Position:  m.Position,
			Kind:      m.Kind,
			CreatedAt: m.CreatedAt.Unix(),
			ExpiresAt: m.ExpiresAt,
		}
	})

	return c.Send(events.Event{
		Type:    TypeState,
		Payload: StatePayload{Participants: participants, Markers: markers},
	})
}

// readLoop drains the connection until it drops. Inbound frames carry no
// meaning on this feed.
func (s *Server) readLoop(c *wsConn) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(1 << 16)
	c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writeLoop(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}

type wsConn struct {
	conn   *websocket.Conn
	sendMu chan struct{}
	closed chan struct{}
}

func newWsConn(c *websocket.Conn) *wsConn {
	return &wsConn{
		conn:   c,
		sendMu: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

func (c *wsConn) Send(e events.Event) error {
	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))

	return c.conn.WriteJSON(e)
}

func (c *wsConn) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}

	return c.conn.Close()
}
