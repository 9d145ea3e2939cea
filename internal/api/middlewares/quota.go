package middlewares

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/5w1tchy/vitallife-forms/internal/api/httpx"
)

// PhotoPreviewCost is what one photo preview draws from a bucket. A preview
// buffers up to 2MB while a strength or RUT check is a few bytes per keystroke.
const PhotoPreviewCost = 10

type KeyFunc func(r *http.Request) string

// CostFunc prices a request in tokens. Zero exempts it from the limiter.
type CostFunc func(r *http.Request) int

// Quota pairs the bucket a request draws from with what it costs.
type Quota struct {
	Key  KeyFunc
	Cost CostFunc
}

// cost clamps to capacity so an expensive request is throttled, never locked out.
func (q Quota) cost(r *http.Request, capacity int) int {
	if q.Cost == nil {
		return 1
	}
	return min(max(q.Cost(r), 0), capacity)
}

// PerIPQuota charges every request one token from a single bucket per client.
func PerIPQuota(prefix string) Quota {
	return Quota{Key: PerIPKey(prefix)}
}

// FormsQuota gives each form helper its own bucket per client, so typing in
// the password field cannot starve the photo upload. Health checks and
// scrapes are free.
func FormsQuota(prefix string) Quota {
	return Quota{
		Key: func(r *http.Request) string {
			return prefix + ":" + routeClass(r.URL.Path) + ":" + ipOrUnknown(r)
		},
		Cost: FormCost,
	}
}

// FormCost prices a request by the form helper it hits.
func FormCost(r *http.Request) int {
	switch routeClass(r.URL.Path) {
	case "exempt":
		return 0
	case "photo":
		return PhotoPreviewCost
	default:
		return 1
	}
}

// routeClass maps a path onto a fixed set so keys stay bounded.
func routeClass(path string) string {
	switch path {
	case "/forms/password/strength":
		return "strength"
	case "/forms/rut/format":
		return "rut"
	case "/forms/photo/preview":
		return "photo"
	case "/healthz", "/metrics":
		return "exempt"
	default:
		return "other"
	}
}

// PerIPKey keys limits by client IP. The assist endpoints are called before
// login, so there is no user to key on.
func PerIPKey(prefix string) KeyFunc {
	return func(r *http.Request) string {
		return prefix + ":" + ipOrUnknown(r)
	}
}

func ipOrUnknown(r *http.Request) string {
	if ip := clientIP(r); ip != "" {
		return ip
	}
	return "unknown"
}

func clientIP(r *http.Request) string {
	// X-Forwarded-For may have a list: client, proxy1, proxy2...
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

func limitHeaders(w http.ResponseWriter, policy string, limit, remaining int64) {
	w.Header().Set("X-RateLimit-Policy", policy)
	w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
	if remaining >= 0 {
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
	}
}

func tooManyRequests(w http.ResponseWriter, r *http.Request, policy, key string, retrySec int64) {
	retrySec = max(retrySec, 1)
	w.Header().Set("Retry-After", strconv.FormatInt(retrySec, 10))

	zerolog.Ctx(r.Context()).Info().
		Str("limiter", policy).
		Str("key", key).
		Int64("retry_after_s", retrySec).
		Msg("rate limited")

	httpx.ErrorJSON(w, http.StatusTooManyRequests, "demasiadas solicitudes, intenta de nuevo en unos segundos")
}
