package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/km-arc/go-inject/framework/container"
)

// Token resolves the application *Config.
var Token = container.NewToken[*Config]("config")

// Config is the central typed configuration struct.
type Config struct {
	App       AppConfig
	Container ContainerConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	Port  string
}

// ContainerConfig tunes the dependency container.
type ContainerConfig struct {
	// ScopeWarningDelay is how long a ToInstance/ToCall binding may stay
	// without a scope before a warning is logged.
	ScopeWarningDelay time.Duration

	// Metrics enables the prometheus resolution collector.
	Metrics bool
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "GoInject"),
			Env:   env("APP_ENV", "local"),
			Debug: envBool("APP_DEBUG", true),
			Port:  env("APP_PORT", "8000"),
		},
		Container: ContainerConfig{
			ScopeWarningDelay: GetDuration("CONTAINER_SCOPE_WARNING_DELAY", container.DefaultScopeWarningDelay),
			Metrics:           envBool("CONTAINER_METRICS", true),
		},
	}
}

// IsProduction reports whether APP_ENV is production. Container diagnostics
// are silenced in production.
func (c *Config) IsProduction() bool { return c.App.Env == "production" }

// IsTesting reports whether APP_ENV is testing.
func (c *Config) IsTesting() bool { return c.App.Env == "testing" }

// Diagnostics returns the container diagnostics settings for this config.
func (c *Config) Diagnostics() container.DiagnosticsConfig {
	return container.DiagnosticsConfig{
		Production:        c.IsProduction(),
		ScopeWarningDelay: c.Container.ScopeWarningDelay,
	}
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// GetDuration returns a time.Duration env value such as "250ms".
func GetDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
