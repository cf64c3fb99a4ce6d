package container

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultScopeWarningDelay is how long a binding may stay without a scope
// before the missing-scope warning fires.
const DefaultScopeWarningDelay = 50 * time.Millisecond

// DiagnosticsConfig controls the non-fatal misconfiguration reports.
type DiagnosticsConfig struct {
	// Logger receives the reports. nil means zap.NewNop().
	Logger *zap.Logger

	// Production suppresses every report.
	Production bool

	// ScopeWarningDelay overrides DefaultScopeWarningDelay when > 0.
	ScopeWarningDelay time.Duration
}

type diagnostics struct {
	mu    sync.RWMutex
	log   *zap.Logger
	prod  bool
	delay time.Duration
}

var diag = &diagnostics{log: zap.NewNop(), delay: DefaultScopeWarningDelay}

// ConfigureDiagnostics replaces the process-wide diagnostics settings.
func ConfigureDiagnostics(cfg DiagnosticsConfig) {
	diag.mu.Lock()
	defer diag.mu.Unlock()
	diag.log = cfg.Logger
	if diag.log == nil {
		diag.log = zap.NewNop()
	}
	diag.prod = cfg.Production
	diag.delay = cfg.ScopeWarningDelay
	if diag.delay <= 0 {
		diag.delay = DefaultScopeWarningDelay
	}
}

// logger returns nil in production.
func (d *diagnostics) logger() *zap.Logger {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.prod {
		return nil
	}
	return d.log
}

func (d *diagnostics) scopeDelay() time.Duration {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.delay
}

func (d *diagnostics) ambiguousConditions(token string, matched []Condition) {
	l := d.logger()
	if l == nil {
		return
	}
	names := make([]string, len(matched))
	for i, c := range matched {
		names[i] = c.conditionName()
	}
	l.Warn("multiple conditions matched, the first one is used",
		zap.String("token", token),
		zap.Strings("conditions", names))
}

func (d *diagnostics) missingCapture() {
	if l := d.logger(); l != nil {
		l.Error("restore called without a captured snapshot, nothing to restore")
	}
}

// armScopeWarning schedules the missing-scope warning for a binding that is
// waiting for an In*Scope call. Stop the returned timer once a scope is set.
// It returns nil in production.
func (d *diagnostics) armScopeWarning(token, target string) *time.Timer {
	if d.logger() == nil {
		return nil
	}
	return time.AfterFunc(d.scopeDelay(), func() {
		if l := d.logger(); l != nil {
			l.Warn("binding declared without a scope, it will be recreated on every resolution",
				zap.String("token", token),
				zap.String("target", target))
		}
	})
}
