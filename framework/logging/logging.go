// Package logging builds the application's zap logger from configuration.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
)

// Token resolves the application *zap.Logger.
var Token = container.NewToken[*zap.Logger]("logger")

// New returns a JSON production logger when APP_ENV=production, a no-op
// logger when APP_ENV=testing and a development console logger otherwise.
// Debug level is enabled only when APP_DEBUG is true.
func New(cfg *config.Config) (*zap.Logger, error) {
	switch {
	case cfg.IsTesting():
		return zap.NewNop(), nil
	case cfg.IsProduction():
		zc := zap.NewProductionConfig()
		if cfg.App.Debug {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		return build(zc, cfg)
	default:
		zc := zap.NewDevelopmentConfig()
		if !cfg.App.Debug {
			zc.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}
		return build(zc, cfg)
	}
}

func build(zc zap.Config, cfg *config.Config) (*zap.Logger, error) {
	l, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return l.With(zap.String("app", cfg.App.Name), zap.String("env", cfg.App.Env)), nil
}
