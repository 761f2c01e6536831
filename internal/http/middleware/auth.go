package middlewarex

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"eventconsole/internal/config"
)

// AdminAuth requires the configured admin token in X-Admin-Token or as a bearer token.
// With no token configured the guard is off.
func AdminAuth(cfg config.Cfg) func(http.Handler) http.Handler {
	want := []byte(cfg.Sec.AdminToken)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(want) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			got := r.Header.Get("X-Admin-Token")
			if got == "" {
				got = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			}
			if subtle.ConstantTimeCompare([]byte(got), want) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
