// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	EnvDev  = "dev"
	EnvTest = "test"
	EnvProd = "prod"
)

const minSigningKeyLen = 32

// Config holds the web server settings.
type Config struct {
	Env               string        `env:"CASA_WEB_ENV" envDefault:"dev"`
	Addr              string        `env:"CASA_WEB_ADDR"`
	Port              string        `env:"PORT" envDefault:"8080"`
	BaseURL           string        `env:"CASA_WEB_BASE_URL" envDefault:"http://localhost:8080"`
	TemplatesDir      string        `env:"CASA_WEB_TEMPLATES_DIR" envDefault:"templates"`
	PublicDir         string        `env:"CASA_WEB_PUBLIC_DIR" envDefault:"public"`
	ContentDir        string        `env:"CASA_WEB_CONTENT_DIR" envDefault:"content"`
	LocalesDir        string        `env:"CASA_WEB_LOCALES_DIR" envDefault:"locales"`
	CatalogFile       string        `env:"CASA_WEB_CATALOG_FILE"`
	DefaultLocale     string        `env:"CASA_WEB_DEFAULT_LOCALE" envDefault:"en"`
	SupportedLocales  []string      `env:"CASA_WEB_SUPPORTED_LOCALES" envSeparator:"," envDefault:"en,hi"`
	LogLevel          string        `env:"CASA_WEB_LOG_LEVEL" envDefault:"info"`
	SessionSigningKey string        `env:"CASA_WEB_SESSION_SIGNING_KEY"`
	AnalyticsID       string        `env:"CASA_WEB_GA_MEASUREMENT_ID"`
	PrepareImages     bool          `env:"CASA_WEB_PREPARE_IMAGES" envDefault:"true"`
	ContentCacheTTL   time.Duration `env:"CASA_WEB_CONTENT_CACHE_TTL" envDefault:"5m"`
	ShutdownTimeout   time.Duration `env:"CASA_WEB_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	HealthCacheTTL    time.Duration `env:"CASA_WEB_HEALTH_CACHE_TTL" envDefault:"5s"`
}

type loadOptions struct {
	environ map[string]string
	envFile string
}

// Option customizes Load.
type Option func(*loadOptions)

// WithEnvMap parses from m instead of the process environment. No .env file is read.
func WithEnvMap(m map[string]string) Option {
	return func(o *loadOptions) { o.environ = m }
}

// WithEnvFile sets the .env path read before parsing. An empty path disables it.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) { o.envFile = path }
}

// Load reads the configuration and validates it.
func Load(opts ...Option) (Config, error) {
	o := loadOptions{envFile: ".env"}
	for _, opt := range opts {
		opt(&o)
	}

	if o.environ == nil && o.envFile != "" && !strings.EqualFold(os.Getenv("CASA_WEB_ENV"), EnvProd) {
		if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", o.envFile, err)
		}
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: o.environ}); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if strings.TrimSpace(c.Addr) == "" {
		c.Addr = ":" + strings.TrimSpace(c.Port)
	}
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.DefaultLocale = strings.ToLower(strings.TrimSpace(c.DefaultLocale))
	locales := make([]string, 0, len(c.SupportedLocales))
	for _, l := range c.SupportedLocales {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != "" && !slices.Contains(locales, l) {
			locales = append(locales, l)
		}
	}
	c.SupportedLocales = locales
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Env {
	case EnvDev, EnvTest, EnvProd:
	default:
		return fmt.Errorf("config: CASA_WEB_ENV must be one of dev, test, prod (got %q)", c.Env)
	}
	if c.Env == EnvProd && len(c.SessionSigningKey) < minSigningKeyLen {
		return fmt.Errorf("config: CASA_WEB_SESSION_SIGNING_KEY must be at least %d bytes in prod", minSigningKeyLen)
	}
	if !slices.Contains(c.SupportedLocales, c.DefaultLocale) {
		return fmt.Errorf("config: default locale %q is not in CASA_WEB_SUPPORTED_LOCALES", c.DefaultLocale)
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("config: CASA_WEB_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// IsDev reports whether templates should be reparsed per request.
func (c Config) IsDev() bool { return c.Env == EnvDev }

// IsProd reports whether the server runs in production.
func (c Config) IsProd() bool { return c.Env == EnvProd }
