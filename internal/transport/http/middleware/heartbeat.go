package httpmw

import (
	"context"
	"net/http"
)

const HeaderParticipant = "X-Participant"

type HeartbeatToucher interface {
	Touch(ctx context.Context, name string) bool
}

// HeartbeatMiddleware refreshes last_seen for the participant named in
// X-Participant, if any. Best-effort: unknown names never fail the request.
func HeartbeatMiddleware(svc HeartbeatToucher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if name := r.Header.Get(HeaderParticipant); name != "" {
				_ = svc.Touch(r.Context(), name)
			}
			next.ServeHTTP(w, r)
		})
	}
}
