package container_test

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/km-arc/go-inject/framework/container"
)

// ── stub types ────────────────────────────────────────────────────────────────

type Doubler struct{ N int }

func NewDoubler(n int) *Doubler { return &Doubler{N: n} }

// ── diamond fixture ───────────────────────────────────────────────────────────
//
//	     A
//	    / \
//	   B   C
//	    \ /
//	     D
//	     |
//	     E

type E struct{}
type D struct{ E *E }
type B struct{ D *D }
type C struct{ D *D }
type A struct {
	B *B
	C *C
}

type diamond struct {
	A container.Token[*A]
	B container.Token[*B]
	C container.Token[*C]
	D container.Token[*D]
	E container.Token[*E]
}

func newDiamond(c *container.Container) diamond {
	tk := diamond{
		A: container.NewToken[*A]("A"),
		B: container.NewToken[*B]("B"),
		C: container.NewToken[*C]("C"),
		D: container.NewToken[*D]("D"),
		E: container.NewToken[*E]("E"),
	}

	e := container.NewTarget("E", func() *E { return &E{} })
	d := container.Injected(container.NewTarget("D", func(e *E) *D { return &D{E: e} }), tk.E)
	b := container.Injected(container.NewTarget("B", func(d *D) *B { return &B{D: d} }), tk.D)
	cc := container.Injected(container.NewTarget("C", func(d *D) *C { return &C{D: d} }), tk.D)
	a := container.Injected(container.NewTarget("A", func(b *B, c *C) *A { return &A{B: b, C: c} }), tk.B, tk.C)

	c.Bind(tk.A).ToInstance(a).InTransientScope()
	c.Bind(tk.B).ToInstance(b).InTransientScope()
	c.Bind(tk.C).ToInstance(cc).InTransientScope()
	c.Bind(tk.D).ToInstance(d).InResolutionScope()
	c.Bind(tk.E).ToInstance(e).InResolutionScope()
	return tk
}

// ── helpers ───────────────────────────────────────────────────────────────────

// observeDiagnostics routes container diagnostics to an in-memory zap core
// for the duration of the test.
func observeDiagnostics(t *testing.T, production bool) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	container.ConfigureDiagnostics(container.DiagnosticsConfig{
		Logger:            zap.New(core),
		Production:        production,
		ScopeWarningDelay: 10 * time.Millisecond,
	})
	t.Cleanup(func() { container.ConfigureDiagnostics(container.DiagnosticsConfig{}) })
	return logs
}

func forToken(logs *observer.ObservedLogs, msg, token string) int {
	return logs.FilterMessage(msg).FilterField(zap.String("token", token)).Len()
}
