package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/5w1tchy/vitallife-forms/internal/api/handlers/assist"
	mw "github.com/5w1tchy/vitallife-forms/internal/api/middlewares"
	"github.com/5w1tchy/vitallife-forms/internal/api/router"
	"github.com/5w1tchy/vitallife-forms/internal/config"
	"github.com/5w1tchy/vitallife-forms/internal/logging"
	"github.com/5w1tchy/vitallife-forms/internal/metrics"
	"github.com/5w1tchy/vitallife-forms/internal/validate"
	"github.com/5w1tchy/vitallife-forms/pkg/utils"
)

func main() {
	cfg, err := config.Load(".env", "../../.env")
	if err != nil {
		boot := logging.New("info", "console", os.Stderr)
		boot.Fatal().Err(err).Msg("config")
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)

	if err := validate.Config(cfg); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	for _, w := range validate.HardeningWarnings(cfg) {
		logger.Warn().Msg(w)
	}

	rdb, err := connectRedis(cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connection failed")
	}
	if rdb != nil {
		defer rdb.Close()
		logger.Info().Msg("connected to redis")
	}

	m := metrics.New()
	deps := router.Deps{
		Assist:  assist.New(cfg.Forms, m),
		Metrics: m.Handler(),
		Redis:   rdb,
	}
	if cfg.Security.CSRFEnabled {
		opts := mw.DefaultCSRFOptions(cfg.TLS.Enabled() || cfg.IsProduction())
		deps.CSRF = &opts
	}

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           buildHandler(cfg, logger, m, rdb, router.Router(deps)),
		ReadHeaderTimeout: 5 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Port).Bool("tls", cfg.TLS.Enabled()).Msg("server is running")
		if cfg.TLS.Enabled() {
			errCh <- srv.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
			return
		}
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("error starting server")
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}

// connectRedis returns nil when REDIS_URL is unset; rate limiting is then per process.
func connectRedis(rc config.RedisConfig) (*redis.Client, error) {
	if rc.URL == "" {
		return nil, nil
	}
	opt, err := redis.ParseURL(rc.URL) // e.g. rediss://default:<token>@host:port
	if err != nil {
		return nil, err
	}
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 1 * time.Second
	opt.WriteTimeout = 1 * time.Second
	rdb := redis.NewClient(opt)

	// Fail fast if Redis isn't reachable
	if err := validate.PingRedis(rdb, 5*time.Second); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// buildHandler wraps the router; the last middleware listed sees the request first.
func buildHandler(cfg config.Config, logger zerolog.Logger, m *metrics.Metrics, rdb *redis.Client, h http.Handler) http.Handler {
	chain := []utils.Middleware{
		mw.Cors(cfg.Security.AllowedOrigins),
		mw.HPP(mw.DefaultHPPOptions()),
		mw.BodySizeLimit(cfg.Limits.MaxBodySize),
	}
	if rdb != nil {
		// burst is per form helper; the hourly window is one budget per client, priced per helper
		tb := mw.NewRedisTokenBucket(rdb, cfg.Limits.RatePerSecond, cfg.Limits.Burst, mw.FormsQuota("forms:tb"))
		sw := mw.NewRedisSlidingWindow(rdb, cfg.Limits.WindowMax, cfg.Limits.Window, mw.Quota{
			Key:  mw.PerIPKey("forms:sw"),
			Cost: mw.FormCost,
		})
		chain = append(chain, tb.Middleware, sw.Middleware)
	} else {
		tb := mw.NewLocalTokenBucket(cfg.Limits.RatePerSecond, cfg.Limits.Burst, mw.FormsQuota("forms:tb"))
		chain = append(chain, tb.Middleware)
	}
	chain = append(chain,
		mw.Compression,
		mw.SecurityHeaders(cfg.Security.Strict),
		mw.Recovery,
		mw.AccessLog(logger, m),
		mw.RequestID,
	)
	return utils.ApplyMiddleware(h, chain...)
}
