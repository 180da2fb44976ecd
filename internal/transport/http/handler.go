package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/cwrk-planet/presence-service/internal/domain"
	"github.com/cwrk-planet/presence-service/internal/service"
)

type Handler struct {
	presenceSvc *service.PresenceService
	markerSvc   *service.MarkerService
	validate    *validator.Validate
}

func NewHandler(presence *service.PresenceService, markers *service.MarkerService) *Handler {
	return &Handler{
		presenceSvc: presence,
		markerSvc:   markers,
		validate:    validator.New(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrMarkerNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotOwner):
		writeJSON(w, http.StatusForbidden, ErrorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}

// optional query parameters; absent means no filter
func queryString(r *http.Request, key string) *string {
	if s := r.URL.Query().Get(key); s != "" {
		return &s
	}
	return nil
}

func queryFloat(r *http.Request, key string) (*float64, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// POST /join
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	var req JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "missing name, level, coords or channel"})
		return
	}

	status, _, err := h.presenceSvc.Join(r.Context(), req.Name, string(req.Level), *req.Coords, *req.Channel)
	if err != nil {
		slog.Error("handler.Join:", slog.Any("err", err))
		writeDomainErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, JoinResponse{
		Status:  string(status),
		Players: lo.MapValues(h.presenceSvc.List(r.Context()), toParticipantItem),
	})
}

// GET /players
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PlayersResponse{
		Players: lo.MapValues(h.presenceSvc.List(r.Context()), toParticipantItem),
	})
}

// POST /markers
func (h *Handler) PlaceMarker(w http.ResponseWriter, r *http.Request) {
	var req PlaceMarkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "missing owner, channel, level, coords or kind"})
		return
	}

	in := service.PlaceInput{
		Owner:    req.Owner,
		Channel:  *req.Channel,
		Level:    string(req.Level),
		Position: *req.Coords,
		Kind:     req.Kind,
	}
	if req.TTL != nil {
		ttl := time.Duration(*req.TTL * float64(time.Second))
		in.TTL = &ttl
	}

	m, err := h.markerSvc.Place(r.Context(), in)
	if err != nil {
		slog.Error("handler.PlaceMarker:", slog.Any("err", err))
		writeDomainErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, PlaceMarkerResponse{MarkerID: m.ID})
}

// GET /markers?channel=&level=
func (h *Handler) QueryMarkers(w http.ResponseWriter, r *http.Request) {
	channel, err := queryFloat(r, "channel")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid channel"})
		return
	}
	level := queryString(r, "level")

	markers := h.markerSvc.Query(r.Context(), channel, level)
	writeJSON(w, http.StatusOK, MarkersResponse{
		Markers: lo.MapValues(markers, toMarkerItem),
	})
}

// DELETE /markers/{id}?owner=
func (h *Handler) RemoveMarker(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	owner := queryString(r, "owner")

	if err := h.markerSvc.Remove(r.Context(), id, owner); err != nil {
		if !errors.Is(err, domain.ErrMarkerNotFound) {
			slog.Error("handler.RemoveMarker:", slog.Any("err", err))
		}
		writeDomainErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, RemoveMarkerResponse{Status: "removed"})
}

// DELETE /markers?owner=&channel=
func (h *Handler) ClearMarkers(w http.ResponseWriter, r *http.Request) {
	channel, err := queryFloat(r, "channel")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid channel"})
		return
	}
	owner := queryString(r, "owner")

	count, err := h.markerSvc.Clear(r.Context(), owner, channel)
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ClearMarkersResponse{Count: count})
}
