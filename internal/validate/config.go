package validate

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/5w1tchy/vitallife-forms/internal/config"
)

// Config validates startup configuration. Fail-fast on bad config.
func Config(cfg config.Config) error {
	if !strings.HasPrefix(cfg.Port, ":") && !strings.Contains(cfg.Port, ":") {
		return fmt.Errorf("PORT: %q must look like :3000 or host:3000", cfg.Port)
	}
	if cfg.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be > 0")
	}

	if err := Grouping(cfg.Forms.GroupSeparator, cfg.Forms.GroupSize); err != nil {
		return fmt.Errorf("RUT_GROUP_SEPARATOR/RUT_GROUP_SIZE: %w", err)
	}

	// Limits
	if cfg.Limits.RatePerSecond <= 0 || cfg.Limits.Burst < 1 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be > 0")
	}
	if cfg.Limits.Window <= 0 || cfg.Limits.WindowMax < 1 {
		return errors.New("RATE_LIMIT_WINDOW and RATE_LIMIT_WINDOW_MAX must be > 0")
	}
	if cfg.Limits.MaxBodySize < 1 {
		return errors.New("MAX_BODY_SIZE must be > 0")
	}

	if cfg.Redis.URL != "" {
		if _, err := redis.ParseURL(cfg.Redis.URL); err != nil {
			return fmt.Errorf("REDIS_URL: %w", err)
		}
	}
	for _, o := range cfg.Security.AllowedOrigins {
		u, err := url.Parse(o)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("ALLOWED_ORIGINS: invalid origin %q", o)
		}
	}
	return nil
}

// Grouping rejects a RUT grouping the formatter could not undo: a group size
// below one, or a separator that reads as a digit, check digit or hyphen.
func Grouping(sep string, size int) error {
	if size < 1 {
		return fmt.Errorf("group size must be >= 1, got %d", size)
	}
	if strings.ContainsAny(sep, "0123456789kK-") {
		return fmt.Errorf("separator %q collides with RUT characters", sep)
	}
	return nil
}

// HardeningWarnings returns non-fatal warnings you may want to log on startup.
func HardeningWarnings(cfg config.Config) []string {
	var warns []string

	if cfg.Redis.URL == "" {
		warns = append(warns, "REDIS_URL not set; rate limiting is per process and the sliding window is off")
	}
	if cfg.Limits.MaxBodySize > 10<<20 {
		warns = append(warns, fmt.Sprintf("MAX_BODY_SIZE=%d is > 10MB; photo previews are capped at 2MB by the form", cfg.Limits.MaxBodySize))
	}

	// Production-specific nudges
	if cfg.IsProduction() {
		if strings.HasPrefix(cfg.Redis.URL, "redis://") {
			warns = append(warns, "REDIS_URL uses redis:// (no TLS). Prefer rediss:// for TLS")
		}
		if !cfg.Security.CSRFEnabled {
			warns = append(warns, "CSRF_ENABLED is off in production")
		}
		for _, o := range cfg.Security.AllowedOrigins {
			if strings.HasPrefix(o, "http://") {
				warns = append(warns, fmt.Sprintf("ALLOWED_ORIGINS contains non-TLS origin %s", o))
			}
		}
	}

	return warns
}

// PingRedis checks connectivity with a short timeout.
func PingRedis(rdb *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_, err := rdb.Ping(ctx).Result()
	return err
}
