package container_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-inject/framework/container"
)

// ── End to end ────────────────────────────────────────────────────────────────

func TestGet_ConstantInjectedIntoTransientInstance(t *testing.T) {
	num := container.NewToken[int]("num")
	doubler := container.NewToken[*Doubler]("doubler")
	target := container.Injected(container.NewTarget("Doubler", NewDoubler), num)

	c := container.New()
	c.Bind(num).ToConstant(5)
	c.Bind(doubler).ToInstance(target).InTransientScope()

	first, err := container.Resolve(c, doubler)
	require.NoError(t, err)
	second, err := container.Resolve(c, doubler)
	require.NoError(t, err)

	assert.Equal(t, 5, first.N)
	assert.Equal(t, 5, second.N)
	assert.NotSame(t, first, second)
}

func TestGet_ConstantReturnedVerbatim(t *testing.T) {
	tok := container.NewToken[map[string]int]("map")
	value := map[string]int{"a": 1}

	c := container.New()
	c.Bind(tok).ToConstant(value)

	got, err := c.Get(tok)
	require.NoError(t, err)
	got.(map[string]int)["b"] = 2
	assert.Equal(t, 2, value["b"], "constant must not be copied")
}

func TestGet_ToCallInvokesPlainFunction(t *testing.T) {
	greeting := container.NewToken[string]("greeting")
	name := container.NewToken[string]("name")
	greet := container.Injected(container.NewTarget("greet", func(n string) string { return "hello " + n }), name)

	c := container.New()
	c.Bind(name).ToConstant("gopher")
	c.Bind(greeting).ToCall(greet).InTransientScope()

	assert.Equal(t, "hello gopher", container.MustResolve(c, greeting))
}

// ── Errors ────────────────────────────────────────────────────────────────────

func TestGet_UnboundTokenReturnsUnresolvedBindingError(t *testing.T) {
	tok := container.NewToken[int]("missing value")

	_, err := container.New().Get(tok)
	require.Error(t, err)
	assert.Equal(t, "No matching bindings found for 'missing value' token.", err.Error())
	assert.True(t, errors.Is(err, container.ErrUnresolvedBinding))

	var unresolved *container.UnresolvedBindingError
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, "missing value", unresolved.Token)
}

func TestGet_UnboundDependencyAbortsWholeGraph(t *testing.T) {
	missing := container.NewToken[int]("missing")
	outer := container.NewToken[*Doubler]("outer")
	built := 0
	target := container.Injected(container.NewTarget("Doubler", func(n int) *Doubler {
		built++
		return &Doubler{N: n}
	}), missing)

	c := container.New()
	c.Bind(outer).ToInstance(target).InSingletonScope()

	_, err := c.Get(outer)
	require.ErrorIs(t, err, container.ErrUnresolvedBinding)
	assert.Zero(t, built)

	c.Bind(missing).ToConstant(3)
	got, err := container.Resolve(c, outer)
	require.NoError(t, err)
	assert.Equal(t, 3, got.N, "failed resolution must not be cached")
}

func TestGet_MissingInjectedRegistration(t *testing.T) {
	tok := container.NewToken[*Doubler]("doubler")
	c := container.New()
	c.Bind(tok).ToInstance(container.NewTarget("UnregisteredDoubler", NewDoubler)).InTransientScope()

	_, err := c.Get(tok)
	require.Error(t, err)
	assert.Equal(t, "Missing required 'injected' registration of 'UnregisteredDoubler'", err.Error())
	assert.ErrorIs(t, err, container.ErrMissingInjection)
}

func TestGet_ZeroArityTargetNeedsNoRegistration(t *testing.T) {
	tok := container.NewToken[*E]("E")
	c := container.New()
	c.Bind(tok).ToInstance(container.NewTarget("E", func() *E { return &E{} })).InTransientScope()

	got, err := container.Resolve(c, tok)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestGet_ConstructorErrorPassesThroughUnchanged(t *testing.T) {
	errBoom := errors.New("boom")
	tok := container.NewToken[*E]("E")
	outer := container.NewToken[*D]("D")
	failing := container.NewTarget("E", func() (*E, error) { return nil, errBoom })
	d := container.Injected(container.NewTarget("D", func(e *E) *D { return &D{E: e} }), tok)

	c := container.New()
	c.Bind(tok).ToInstance(failing).InSingletonScope()
	c.Bind(outer).ToInstance(d).InSingletonScope()

	_, err := c.Get(outer)
	assert.Same(t, errBoom, err)
}

func TestGet_ArgumentTypeMismatch(t *testing.T) {
	text := container.NewToken[string]("text")
	tok := container.NewToken[*Doubler]("doubler")
	target := container.Injected(container.NewTarget("Doubler", NewDoubler), text)

	c := container.New()
	c.Bind(text).ToConstant("five")
	c.Bind(tok).ToInstance(target).InTransientScope()

	_, err := c.Get(tok)
	var argErr *container.ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, 0, argErr.Index)
	assert.Equal(t, "int", argErr.Want)
	assert.Equal(t, "string", argErr.Got)
}

func TestResolve_TypeMismatch(t *testing.T) {
	tok := container.NewToken[int]("num")
	c := container.New()
	c.Bind(tok).ToConstant("not a number")

	_, err := container.Resolve(c, tok)
	var mismatch *container.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "int", mismatch.Want)
	assert.Equal(t, "string", mismatch.Got)
}

func TestMustResolve_PanicsOnError(t *testing.T) {
	tok := container.NewToken[int]("num")
	assert.Panics(t, func() { container.MustResolve(container.New(), tok) })
}

func TestInjected_ArityMismatchPanics(t *testing.T) {
	tok := container.NewToken[int]("num")
	target := container.NewTarget("two", func(a, b int) int { return a + b })
	assert.Panics(t, func() { container.Injected(target, tok) })
}

func TestNewTarget_RejectsNonFunc(t *testing.T) {
	assert.Panics(t, func() { container.NewTarget("bad", 42) })
}

// ── Optional tokens ───────────────────────────────────────────────────────────

func TestGet_OptionalTokenMiss(t *testing.T) {
	tok := container.NewToken[int]("num")
	c := container.New()

	v, err := c.Get(tok.Optional())
	require.NoError(t, err)
	assert.Nil(t, v)

	n, err := container.ResolveOptional(c, tok.Optional())
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = c.Get(tok)
	assert.ErrorIs(t, err, container.ErrUnresolvedBinding)
}

func TestGet_OptionalTokenSharesIdentity(t *testing.T) {
	tok := container.NewToken[int]("num")
	c := container.New()
	c.Bind(tok.Optional()).ToConstant(7)

	assert.Equal(t, 7, container.MustResolve(c, tok))
}

func TestGet_OptionalDependencyFallsBackToZeroValue(t *testing.T) {
	type Service struct{ Logger *E }
	logger := container.NewToken[*E]("logger")
	svc := container.NewToken[*Service]("service")
	target := container.Injected(container.NewTarget("Service", func(l *E) *Service {
		if l == nil {
			l = &E{}
		}
		return &Service{Logger: l}
	}), logger.Optional())

	c := container.New()
	c.Bind(svc).ToInstance(target).InTransientScope()

	got, err := container.Resolve(c, svc)
	require.NoError(t, err)
	assert.NotNil(t, got.Logger)
}

func TestNewToken_IdentityIsNotDescription(t *testing.T) {
	first := container.NewToken[int]("same")
	second := container.NewToken[int]("same")

	c := container.New()
	c.Bind(first).ToConstant(1)

	assert.True(t, c.Bound(first))
	assert.False(t, c.Bound(second))
}

// ── Hierarchy ─────────────────────────────────────────────────────────────────

func TestGet_ChildFallsBackToParentAndOverrides(t *testing.T) {
	v := container.NewToken[int]("V")
	parent := container.New()
	parent.Bind(v).ToConstant(1)
	child := container.New(container.WithParent(parent))

	assert.Equal(t, 1, container.MustResolve(child, v))

	child.Bind(v).ToConstant(2)
	assert.Equal(t, 2, container.MustResolve(child, v))
	assert.Equal(t, 1, container.MustResolve(parent, v))
}

func TestGet_ParentBindingUsesRequestingContainerForDependencies(t *testing.T) {
	num := container.NewToken[int]("num")
	doubler := container.NewToken[*Doubler]("doubler")
	target := container.Injected(container.NewTarget("Doubler", NewDoubler), num)

	parent := container.New()
	parent.Bind(num).ToConstant(1)
	parent.Bind(doubler).ToInstance(target).InTransientScope()

	child := container.New(container.WithParent(parent))
	child.Bind(num).ToConstant(2)

	assert.Equal(t, 2, container.MustResolve(child, doubler).N)
	assert.Equal(t, 1, container.MustResolve(parent, doubler).N)
}

func TestExtend_ReparentsContainer(t *testing.T) {
	v := container.NewToken[int]("V")
	first := container.New()
	first.Bind(v).ToConstant(1)
	second := container.New()
	second.Bind(v).ToConstant(2)

	c := container.New().Extend(first)
	assert.Same(t, first, c.Parent())
	assert.Equal(t, 1, container.MustResolve(c, v))

	c.Extend(second)
	assert.Equal(t, 2, container.MustResolve(c, v))

	c.Extend(nil)
	assert.False(t, c.Bound(v))
}

func TestBind_LastWriteWins(t *testing.T) {
	v := container.NewToken[int]("V")
	c := container.New()
	c.Bind(v).ToConstant(1)
	c.Bind(v).ToConstant(2)

	assert.Equal(t, 2, container.MustResolve(c, v))
}

func TestBind_NilTokenPanics(t *testing.T) {
	var tok container.Token[int]
	assert.Panics(t, func() { container.New().Bind(tok) })
}

func TestResetRegistry_ForgetsInjections(t *testing.T) {
	num := container.NewToken[int]("num")
	tok := container.NewToken[*Doubler]("doubler")
	target := container.Injected(container.NewTarget("Doubler", NewDoubler), num)

	c := container.New()
	c.Bind(num).ToConstant(4)
	c.Bind(tok).ToInstance(target).InTransientScope()
	assert.Equal(t, 4, container.MustResolve(c, tok).N)

	container.ResetRegistry()
	_, err := c.Get(tok)
	assert.ErrorIs(t, err, container.ErrMissingInjection)
}
