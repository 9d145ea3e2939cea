package middlewares

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Observer receives one call per finished request.
type Observer interface {
	ObserveRequest(method string, status int, seconds float64)
}

// statusWriter records the status and size, and stamps X-Response-Time just
// before headers go out.
type statusWriter struct {
	http.ResponseWriter
	start  time.Time
	status int
	bytes  int
}

func (w *statusWriter) stamp(code int) {
	if w.status == 0 {
		w.status = code
		w.Header().Set("X-Response-Time", time.Since(w.start).String())
	}
}

func (w *statusWriter) WriteHeader(code int) {
	w.stamp(code)
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.stamp(http.StatusOK)
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// AccessLog puts a request-scoped logger in the context (zerolog.Ctx), sets
// X-Response-Time and logs every request once it completes. Bodies are never logged: they carry passwords.
func AccessLog(base zerolog.Logger, obs Observer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			l := base.With().
				Str("request_id", GetRequestID(r)).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Logger()
			r = r.WithContext(l.WithContext(r.Context()))

			sw := &statusWriter{ResponseWriter: w, start: start}
			next.ServeHTTP(sw, r)

			// nothing written (e.g. HEAD): the server sends 200 after we return
			sw.stamp(http.StatusOK)
			status := sw.status
			latency := time.Since(start)
			if obs != nil {
				obs.ObserveRequest(r.Method, status, latency.Seconds())
			}

			var ev *zerolog.Event
			switch {
			case status >= 500:
				ev = l.Error()
			case status >= 400:
				ev = l.Warn()
			default:
				ev = l.Info()
			}
			ev.Int("status", status).
				Int("bytes", sw.bytes).
				Dur("latency", latency).
				Str("ip", clientIP(r)).
				Str("user_agent", r.UserAgent()).
				Msg("request processed")
		})
	}
}
