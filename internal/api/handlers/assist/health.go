package assist

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/5w1tchy/vitallife-forms/internal/api/httpx"
)

// Healthz reports liveness. When rdb is set the rate limiter store is pinged too;
// the helpers themselves keep working without it.
func Healthz(rdb *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"service": "ok"}
		if rdb != nil {
			ctx, cancel := context.WithTimeout(r.Context(), time.Second)
			defer cancel()
			if err := rdb.Ping(ctx).Err(); err != nil {
				status["redis"] = "unavailable"
			} else {
				status["redis"] = "ok"
			}
		}
		httpx.OK(w, status)
	}
}
