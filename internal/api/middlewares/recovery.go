package middlewares

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"
)

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				// Get request ID if available
				rid := GetRequestID(r)
				if rid == "" {
					rid = "unknown"
				}

				zerolog.Ctx(r.Context()).Error().
					Str("request_id", rid).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", err).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				// Don't expose internal errors to client
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
