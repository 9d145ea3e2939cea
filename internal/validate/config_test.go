package validate_test

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5w1tchy/vitallife-forms/internal/config"
	"github.com/5w1tchy/vitallife-forms/internal/validate"
)

func baseConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Parse()
	require.NoError(t, err)
	return cfg
}

func TestConfig_DefaultsAreValid(t *testing.T) {
	assert.NoError(t, validate.Config(baseConfig(t)))
}

func TestConfig_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"bad port", func(c *config.Config) { c.Port = "3000" }},
		{"zero group size", func(c *config.Config) { c.Forms.GroupSize = 0 }},
		{"digit separator", func(c *config.Config) { c.Forms.GroupSeparator = "0" }},
		{"dash separator", func(c *config.Config) { c.Forms.GroupSeparator = "-" }},
		{"zero rps", func(c *config.Config) { c.Limits.RatePerSecond = 0 }},
		{"zero window", func(c *config.Config) { c.Limits.Window = 0 }},
		{"zero body", func(c *config.Config) { c.Limits.MaxBodySize = 0 }},
		{"bad redis url", func(c *config.Config) { c.Redis.URL = "http://nope" }},
		{"bad origin", func(c *config.Config) { c.Security.AllowedOrigins = []string{"localhost"} }},
		{"zero shutdown", func(c *config.Config) { c.ShutdownTimeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig(t)
			tt.mutate(&cfg)
			assert.Error(t, validate.Config(cfg))
		})
	}
}

func TestHardeningWarnings(t *testing.T) {
	cfg := baseConfig(t)
	warns := validate.HardeningWarnings(cfg)
	assert.Contains(t, warns, "REDIS_URL not set; rate limiting is per process and the sliding window is off")

	cfg.AppEnv = "production"
	cfg.Redis.URL = "redis://localhost:6379"
	warns = validate.HardeningWarnings(cfg)
	assert.Contains(t, warns, "REDIS_URL uses redis:// (no TLS). Prefer rediss:// for TLS")
	assert.Contains(t, warns, "CSRF_ENABLED is off in production")
	assert.Contains(t, warns, "ALLOWED_ORIGINS contains non-TLS origin http://localhost:8000")
}

func TestPingRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	assert.NoError(t, validate.PingRedis(rdb, time.Second))

	mr.Close()
	assert.Error(t, validate.PingRedis(rdb, 200*time.Millisecond))
}
