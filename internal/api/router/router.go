package router

import (
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/5w1tchy/vitallife-forms/internal/api/handlers/assist"
	"github.com/5w1tchy/vitallife-forms/internal/api/middlewares"
)

type Deps struct {
	Assist  *assist.Handler
	Metrics http.Handler             // nil disables GET /metrics
	Redis   *redis.Client            // optional, only reported by /healthz
	CSRF    *middlewares.CSRFOptions // nil disables CSRF and GET /csrf-token
}

func Router(d Deps) http.Handler {
	mux := http.NewServeMux()

	// Ops
	mux.Handle("GET /healthz", assist.Healthz(d.Redis))
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics)
	}
	if d.CSRF != nil {
		mux.Handle("GET /csrf-token", middlewares.CSRFTokenHandler(*d.CSRF))
	}

	MountForms(mux, d)

	return mux
}
