package middleware

import (
	"io"
	"net/http"
)

// DrainAndCloseRequest reads whatever is left of the request body once the handler is
// done and closes it, so the connection can be reused. Dashboard handlers decode only
// the JSON value they need and may leave trailing bytes behind.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if r.Body == nil {
					return
				}
				_, _ = io.Copy(io.Discard, r.Body)
				_ = r.Body.Close()
			}()
			next.ServeHTTP(w, r)
		})
	}
}
