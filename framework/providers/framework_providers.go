package providers

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
	gohttp "github.com/km-arc/go-inject/framework/http"
	"github.com/km-arc/go-inject/framework/logging"
	"github.com/km-arc/go-inject/framework/metrics"
	"github.com/km-arc/go-inject/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env.
//
// Bound tokens:
//   - config.Token → *config.Config
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	envFiles := p.EnvFiles
	app.Bind(config.Token).ToCall(container.NewTarget("config.Load", func() *config.Config {
		return config.Load(envFiles...)
	})).InSingletonScope()
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider builds the zap logger and routes container
// diagnostics to it.
//
// Bound tokens:
//   - logging.Token → *zap.Logger
type LoggingServiceProvider struct {
	container.BaseProvider
}

func (p *LoggingServiceProvider) Register(app *container.Container) {
	newLogger := container.Injected(container.NewTarget("logging.New", logging.New), config.Token)
	app.Bind(logging.Token).ToInstance(newLogger).InSingletonScope()
}

// Boot applies the diagnostics settings of the loaded config.
func (p *LoggingServiceProvider) Boot(app *container.Container) {
	cfg := container.MustResolve(app, config.Token)
	diag := cfg.Diagnostics()
	diag.Logger = container.MustResolve(app, logging.Token).Named("container")
	container.ConfigureDiagnostics(diag)
}

// ── MetricsServiceProvider ────────────────────────────────────────────────────

// MetricsServiceProvider attaches a prometheus collector to the container
// when CONTAINER_METRICS is enabled.
//
// Bound tokens:
//   - metrics.Token → *metrics.Collector
type MetricsServiceProvider struct {
	container.BaseProvider
}

func (p *MetricsServiceProvider) Register(app *container.Container) {
	app.Bind(metrics.Token).ToInstance(container.NewTarget("metrics.New", metrics.New)).InSingletonScope()
}

func (p *MetricsServiceProvider) Boot(app *container.Container) {
	if !container.MustResolve(app, config.Token).Container.Metrics {
		return
	}
	app.SetObserver(container.MustResolve(app, metrics.Token))
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router. It is deferred: the
// router is built the first time routing.Token is resolved.
//
// Bound tokens:
//   - routing.Token → *routing.Router
type RoutingServiceProvider struct {
	container.BaseProvider
	Scope []gohttp.ScopeOption
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	scope := p.Scope
	newRouter := container.Injected(container.NewTarget("routing.New", func(l *zap.Logger) *routing.Router {
		return routing.New(app, routing.WithLogger(l), routing.WithScope(scope...))
	}), logging.Token)
	app.Bind(routing.Token).ToInstance(newRouter).InSingletonScope()
}

func (p *RoutingServiceProvider) IsDeferred() bool { return true }

func (p *RoutingServiceProvider) Provides() []container.Dependency {
	return []container.Dependency{routing.Token}
}
