package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recoverer converts a handler panic into the given 500 response instead of
// killing the connection. The panic value and stack are logged server-side;
// the client only sees the rendered error page.
func Recoverer(render500 http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					slog.Error("internal server error",
						"error", fmt.Sprint(rec),
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)
					render500(w, r)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
