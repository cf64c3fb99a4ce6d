package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
)

// ── Load ─────────────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load("testdata/empty.env")

	assert.Equal(t, "GoInject", cfg.App.Name)
	assert.Equal(t, "local", cfg.App.Env)
	assert.Equal(t, "8000", cfg.App.Port)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, container.DefaultScopeWarningDelay, cfg.Container.ScopeWarningDelay)
	assert.True(t, cfg.Container.Metrics)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("APP_NAME", "MyApp")
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("APP_DEBUG", "false")

	cfg := config.Load("testdata/empty.env")

	assert.Equal(t, "MyApp", cfg.App.Name)
	assert.Equal(t, "9000", cfg.App.Port)
	assert.False(t, cfg.App.Debug)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Diagnostics().Production)
}

func TestLoad_EnvFile(t *testing.T) {
	// godotenv never overrides variables that are already set
	for _, key := range []string{"APP_NAME", "CONTAINER_SCOPE_WARNING_DELAY", "CONTAINER_METRICS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := config.Load("testdata/custom.env")

	assert.Equal(t, "FromFile", cfg.App.Name)
	assert.Equal(t, 250*time.Millisecond, cfg.Container.ScopeWarningDelay)
	assert.False(t, cfg.Container.Metrics)
	assert.Equal(t, 250*time.Millisecond, cfg.Diagnostics().ScopeWarningDelay)
}

func TestLoad_TestingEnv(t *testing.T) {
	t.Setenv("APP_ENV", "testing")
	cfg := config.Load("testdata/empty.env")
	assert.True(t, cfg.IsTesting())
	assert.False(t, cfg.IsProduction())
}

// ── Get / GetInt / GetBool / GetDuration ─────────────────────────────────────

func TestGet(t *testing.T) {
	t.Setenv("CUSTOM_KEY", "hello")
	assert.Equal(t, "hello", config.Get("CUSTOM_KEY", "default"))

	os.Unsetenv("MISSING_KEY")
	assert.Equal(t, "fallback", config.Get("MISSING_KEY", "fallback"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("SOME_INT", "42")
	assert.Equal(t, 42, config.GetInt("SOME_INT", 0))

	t.Setenv("SOME_INT", "notanint")
	assert.Equal(t, 99, config.GetInt("SOME_INT", 99))
}

func TestGetBool(t *testing.T) {
	for _, val := range []string{"true", "1", "True", "TRUE"} {
		t.Setenv("BOOL_KEY", val)
		assert.True(t, config.GetBool("BOOL_KEY", false), val)
	}

	t.Setenv("BOOL_KEY", "false")
	assert.False(t, config.GetBool("BOOL_KEY", true))

	t.Setenv("BOOL_KEY", "notabool")
	assert.True(t, config.GetBool("BOOL_KEY", true))
}

func TestGetDuration(t *testing.T) {
	t.Setenv("DELAY", "2s")
	assert.Equal(t, 2*time.Second, config.GetDuration("DELAY", time.Millisecond))

	t.Setenv("DELAY", "soon")
	assert.Equal(t, time.Millisecond, config.GetDuration("DELAY", time.Millisecond))

	t.Setenv("DELAY", "-1s")
	assert.Equal(t, time.Millisecond, config.GetDuration("DELAY", time.Millisecond))
}
