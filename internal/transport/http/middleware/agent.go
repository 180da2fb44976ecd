package httpmw

import (
	"net/http"
	"strings"
)

// RequireAgent keeps browsers out of the API group: the registry is for
// programmatic clients, not web pages.
func RequireAgent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := r.Header.Get("User-Agent")
		if strings.HasPrefix(ua, "Mozilla") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"programmatic clients only"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
