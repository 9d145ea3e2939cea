package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/5w1tchy/vitallife-forms/internal/rut"
)

// DefaultPasswordHelp is the form's own help text for the password field,
// shown while the field is empty.
const DefaultPasswordHelp = "Tu contraseña debe contener al menos 8 caracteres."

type Config struct {
	Port            string        `env:"PORT" envDefault:":3000"`
	AppEnv          string        `env:"APP_ENV" envDefault:"development"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	Log      LogConfig
	TLS      TLSConfig
	Forms    FormsConfig
	Redis    RedisConfig
	Limits   LimitsConfig
	Security SecurityConfig
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"` // console | json
}

// TLSConfig enables ListenAndServeTLS when both files are set.
type TLSConfig struct {
	CertFile string `env:"TLS_CERT_FILE"`
	KeyFile  string `env:"TLS_KEY_FILE"`
}

func (t TLSConfig) Enabled() bool { return t.CertFile != "" && t.KeyFile != "" }

type FormsConfig struct {
	PasswordHelp   string `env:"PASSWORD_HELP_TEXT"`
	GroupSeparator string `env:"RUT_GROUP_SEPARATOR" envDefault:"."`
	GroupSize      int    `env:"RUT_GROUP_SIZE" envDefault:"3"`
}

type RedisConfig struct {
	URL string `env:"REDIS_URL"`
}

type LimitsConfig struct {
	RatePerSecond float64       `env:"RATE_LIMIT_RPS" envDefault:"5"`
	Burst         int           `env:"RATE_LIMIT_BURST" envDefault:"20"`
	Window        time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1h"`
	WindowMax     int           `env:"RATE_LIMIT_WINDOW_MAX" envDefault:"3000"`
	MaxBodySize   int64         `env:"MAX_BODY_SIZE" envDefault:"2097152"` // 2MB, the profile photo cap
}

type SecurityConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:8000,http://127.0.0.1:8000"`
	CSRFEnabled    bool     `env:"CSRF_ENABLED" envDefault:"false"`
	Strict         bool     `env:"STRICT_SECURITY" envDefault:"false"`
}

// Load reads an optional .env file and then the process environment.
func Load(dotenvPaths ...string) (Config, error) {
	if len(dotenvPaths) == 0 {
		dotenvPaths = []string{".env"}
	}
	for _, p := range dotenvPaths {
		_ = godotenv.Load(p) // missing file is fine
	}
	return Parse()
}

// Parse reads the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Forms.PasswordHelp == "" {
		cfg.Forms.PasswordHelp = DefaultPasswordHelp
	}
	return cfg, nil
}

// Grouping is the configured RUT digit grouping.
func (f FormsConfig) Grouping() rut.Grouping {
	return rut.Grouping{Separator: f.GroupSeparator, Size: f.GroupSize}
}

func (c Config) IsProduction() bool { return c.AppEnv == "production" }

// Exitf prints an error to stderr and exits with status 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
