package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cwrk-planet/presence-service/internal/service"
	httpmw "github.com/cwrk-planet/presence-service/internal/transport/http/middleware"
	"github.com/cwrk-planet/presence-service/internal/transport/ws"
)

func NewRouter(h *Handler, presenceSvc *service.PresenceService, wsServer *ws.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewareChi.RequestID)
	r.Use(middlewareChi.RealIP)
	r.Use(middlewareChi.Recoverer)

	// any origin may read the registry
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// WS event feed
	r.Get("/ws/events", wsServer.HandleWS)

	r.Group(func(pr chi.Router) {
		pr.Use(httpmw.RequireAgent)
		pr.Use(httpmw.HeartbeatMiddleware(presenceSvc))
		pr.Use(middlewareChi.Timeout(30 * time.Second))

		pr.Post("/join", h.Join)
		pr.Get("/players", h.ListPlayers)

		pr.Route("/markers", func(rm chi.Router) {
			rm.Post("/", h.PlaceMarker)
			rm.Get("/", h.QueryMarkers)
			rm.Delete("/", h.ClearMarkers)
			rm.Delete("/{id}", h.RemoveMarker)
		})
	})

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
