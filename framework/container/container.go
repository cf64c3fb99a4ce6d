package container

import (
	"fmt"
	"reflect"
	"sync"
	"time"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container resolves tokens to values using the bindings declared on it, on
// the dependency modules it uses and on its parent chain.
//
// It supports:
//   - Bind / When(...).Bind / Use(...).From
//   - Transient, singleton, container, resolution and global scopes
//   - Tag and target conditions
//   - Parent containers (Extend) and Clone
//   - Capture / Restore snapshots
type Container struct {
	mu sync.RWMutex

	vault    *Vault
	parent   *Container
	snapshot *Container
	observer Observer

	// bindings holding a container-scope value for this container
	scoped map[*Binding]struct{}
}

// Option configures a Container created by New.
type Option func(*Container)

// WithParent makes parent the fallback for tokens the new container lacks.
func WithParent(parent *Container) Option {
	return func(c *Container) { c.setParent(parent) }
}

// WithObserver reports every resolution of the container to o.
func WithObserver(o Observer) Option {
	return func(c *Container) { c.observer = o }
}

// New creates an empty container. A child inherits its parent's observer
// unless WithObserver is given.
func New(opts ...Option) *Container {
	c := &Container{vault: newVault()}
	for _, opt := range opts {
		opt(c)
	}
	if c.observer == nil && c.parent != nil {
		c.observer = c.parent.getObserver()
	}
	return c
}

func (c *Container) bindings() *Vault {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vault
}

func (c *Container) setParent(parent *Container) {
	c.mu.Lock()
	c.parent = parent
	v := c.vault
	c.mu.Unlock()
	if parent == nil {
		v.setParent(nil)
		return
	}
	v.setParent(parent)
}

// Parent returns the container this one falls back to, or nil.
func (c *Container) Parent() *Container {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.parent
}

// Extend sets parent as the fallback of c and returns c. Passing nil detaches
// c from its parent.
//
//	child := root.Clone().Extend(requestParent)
func (c *Container) Extend(parent *Container) *Container {
	c.setParent(parent)
	return c
}

// SetObserver replaces the observer notified on each resolution.
func (c *Container) SetObserver(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observer = o
}

func (c *Container) getObserver() Observer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.observer
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind starts an unconditional binding of tok.
//
//	c.Bind(TOKENS.Port).ToConstant(8080)
//	c.Bind(TOKENS.Server).ToInstance(ServerTarget).InSingletonScope()
func (c *Container) Bind(tok Dependency) *Binder {
	return newBinder(c, tok, nil)
}

// When starts a binding that applies only when cond is in play: cond is a tag
// attached to the target being built, a tag passed to Get, or the target
// itself.
//
//	c.When(TAGS.Offline).Bind(TOKENS.Client).ToInstance(MockClient).InTransientScope()
func (c *Container) When(cond Condition) *ConditionalBinder {
	return &ConditionalBinder{owner: c, cond: cond}
}

// Use delegates tokens to a dependency module.
//
//	c.Use(TOKENS.Repository).From(storageModule)
func (c *Container) Use(toks ...Dependency) *UseBuilder {
	return &UseBuilder{owner: c, tokens: toks}
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Get resolves dep. conditions, when given, take the place of target tags to
// choose among conditional bindings; the first one that has a binding wins.
//
// An unbound required token yields *UnresolvedBindingError; an unbound
// OptionalToken yields (nil, nil). Errors returned by constructors are
// passed through unchanged.
func (c *Container) Get(dep Dependency, conditions ...Condition) (any, error) {
	return c.resolveDependency(dep, newResolutionContext(), conditions, nil)
}

// Bound reports whether dep has a binding reachable from c.
func (c *Container) Bound(dep Dependency, conditions ...Condition) bool {
	k := dep.key()
	if k == nil {
		return false
	}
	rc := newResolutionContext()
	rc.silent = true
	return c.bindings().get(k, k.description, rc, conditions, nil) != nil
}

func (c *Container) resolveDependency(dep Dependency, rc *resolutionContext, conditions []Condition, target *Target) (any, error) {
	k := dep.key()
	if k == nil {
		return nil, &UnresolvedBindingError{Token: dep.Description()}
	}

	b := c.bindings().get(k, k.description, rc, conditions, target)
	if b == nil {
		if dep.optional() {
			return nil, nil
		}
		if o := c.getObserver(); o != nil {
			o.Unresolved(k.description)
		}
		return nil, &UnresolvedBindingError{Token: k.description}
	}
	return c.resolveBinding(b, rc)
}

func (c *Container) resolveBinding(b *Binding, rc *resolutionContext) (any, error) {
	switch b.kind {
	case KindConstant:
		c.observe(b, true, 0)
		return b.value, nil

	case KindFactory:
		c.observe(b, false, 0)
		return Factory(func(args ...any) (any, error) {
			v, _, err := c.construct(b.target, rc.fresh())
			if err != nil {
				return nil, err
			}
			if b.initializer != nil {
				b.initializer(v, args...)
			}
			return v, nil
		}), nil

	case KindCreator:
		c.observe(b, false, 0)
		return Creator(func(args ...any) (any, error) {
			v, _, err := c.construct(b.target, rc.fresh())
			if err != nil {
				return nil, err
			}
			if b.initializer != nil && len(args) > 0 {
				b.initializer(v, args...)
			}
			return v, nil
		}), nil
	}

	switch b.scope {
	case ScopeSingleton:
		if v, ok := b.singleton(); ok {
			c.observe(b, true, 0)
			return v, nil
		}
		return c.build(b, rc, b.storeSingleton)

	case ScopeContainer:
		if v, ok := b.forContainer(c); ok {
			c.observe(b, true, 0)
			return v, nil
		}
		return c.build(b, rc, func(v any) any {
			v, stored := b.storeForContainer(c, v)
			if stored {
				c.track(b)
			}
			return v
		})

	case ScopeResolution:
		if v, ok := rc.instances[b]; ok {
			c.observe(b, true, 0)
			return v, nil
		}
		return c.build(b, rc, func(v any) any {
			rc.instances[b] = v
			return v
		})

	case ScopeGlobal:
		if v, ok := globals.get(b.token); ok {
			c.observe(b, true, 0)
			return v, nil
		}
		return c.build(b, rc, func(v any) any { return globals.store(b.token, v) })
	}

	return c.build(b, rc, nil)
}

// build invokes the binding's target and hands a defined result to store.
// Undefined results are never stored.
func (c *Container) build(b *Binding, rc *resolutionContext, store func(any) any) (any, error) {
	start := time.Now()
	v, defined, err := c.construct(b.target, rc)
	if err != nil {
		return nil, err
	}
	if defined && store != nil {
		v = store(v)
	}
	c.observe(b, false, time.Since(start))
	return v, nil
}

// construct resolves the target's injected dependencies, in order, and calls it.
func (c *Container) construct(t *Target, rc *resolutionContext) (any, bool, error) {
	deps, ok := targets.dependencies(t)
	if !ok && t.arity() > 0 {
		return nil, false, &MissingInjectionError{Target: t.name}
	}

	var args []any
	if len(deps) > 0 {
		tags := targets.tags(t)
		args = make([]any, len(deps))
		for i, dep := range deps {
			v, err := c.resolveDependency(dep, rc.split(), tags, t)
			if err != nil {
				return nil, false, err
			}
			args[i] = v
		}
	}
	return t.call(args)
}

func (c *Container) track(b *Binding) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scoped == nil {
		c.scoped = make(map[*Binding]struct{})
	}
	c.scoped[b] = struct{}{}
}

func (c *Container) observe(b *Binding, cached bool, d time.Duration) {
	o := c.getObserver()
	if o == nil {
		return
	}
	scope := b.scope.String()
	if b.kind != KindEntity {
		scope = "none"
	}
	o.Resolved(Event{
		Token:    b.token.description,
		Kind:     b.label(),
		Scope:    scope,
		Cached:   cached,
		Duration: d,
	})
}

// ── Lifecycle ─────────────────────────────────────────────────────────────────

// Clone returns a container with the same parent and a copy of every
// binding. Values cached on the copies are not shared after the clone, except
// for the global scope, which belongs to the token.
func (c *Container) Clone() *Container {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return &Container{
		vault:    c.vault.clone(),
		parent:   c.parent,
		observer: c.observer,
	}
}

// Copy is an alias of Clone.
func (c *Container) Copy() *Container { return c.Clone() }

// Capture stores a clone of the current bindings for a later Restore.
func (c *Container) Capture() {
	snap := c.Clone()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = snap
}

// Restore replaces the bindings and the parent with a fresh copy of the
// captured snapshot. It can be called any number of times. Without a prior
// Capture it only reports a diagnostic.
func (c *Container) Restore() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		diag.missingCapture()
		return
	}
	// the clone carries the captured parent, undoing any later Extend
	c.vault = c.snapshot.bindings().clone()
	c.parent = c.snapshot.parent
}

// Dispose removes the values cached for c by container-scope bindings, which
// may live on a parent's bindings. Call it when a short-lived child, such as
// a per-request container, is done.
func (c *Container) Dispose() {
	c.mu.Lock()
	scoped := c.scoped
	c.scoped = nil
	c.mu.Unlock()
	for b := range scoped {
		b.forget(c)
	}
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve is a generic helper that calls Get and type-asserts the result.
//
//	// Instead of: v, err := c.Get(TOKENS.DB); db := v.(*sql.DB)
//	// Write:      db, err := container.Resolve(c, TOKENS.DB)
func Resolve[T any](c *Container, tok Token[T], conditions ...Condition) (T, error) {
	v, err := c.Get(tok, conditions...)
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](tok.Description(), v)
}

// ResolveOptional is Resolve for optional tokens; an unbound token yields the
// zero value of T.
func ResolveOptional[T any](c *Container, tok OptionalToken[T], conditions ...Condition) (T, error) {
	v, err := c.Get(tok, conditions...)
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](tok.Description(), v)
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](c *Container, tok Token[T], conditions ...Condition) T {
	v, err := Resolve(c, tok, conditions...)
	if err != nil {
		panic(fmt.Sprintf("container: MustResolve[%s]: %v", reflect.TypeOf((*T)(nil)).Elem(), err))
	}
	return v
}

func cast[T any](desc string, v any) (T, error) {
	if v == nil {
		var zero T
		return zero, nil
	}
	typed, ok := v.(T)
	if !ok {
		want := reflect.TypeOf((*T)(nil)).Elem().String()
		return typed, &TypeMismatchError{Token: desc, Want: want, Got: fmt.Sprintf("%T", v)}
	}
	return typed, nil
}
