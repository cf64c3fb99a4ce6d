package container

import (
	"sync"
	"time"
)

// ── Binding types ─────────────────────────────────────────────────────────────

// Kind is how a binding produces its value.
type Kind uint8

const (
	// KindConstant returns the stored value verbatim.
	KindConstant Kind = iota
	// KindEntity invokes a target; isConstructor tells ToInstance from ToCall.
	KindEntity
	// KindFactory returns a Factory building a fresh entity per call.
	KindFactory
	// KindCreator returns a Creator calling a plain function per call.
	KindCreator
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindEntity:
		return "entity"
	case KindFactory:
		return "factory"
	case KindCreator:
		return "creator"
	}
	return "unknown"
}

// Scope is the caching policy of an entity binding.
type Scope uint8

const (
	// ScopeTransient builds a new value on every resolution.
	ScopeTransient Scope = iota
	// ScopeSingleton builds once per binding.
	ScopeSingleton
	// ScopeContainer builds once per requesting container.
	ScopeContainer
	// ScopeResolution builds once per top-level Get call.
	ScopeResolution
	// ScopeGlobal builds once per token for the whole process.
	ScopeGlobal
)

func (s Scope) String() string {
	switch s {
	case ScopeTransient:
		return "transient"
	case ScopeSingleton:
		return "singleton"
	case ScopeContainer:
		return "container"
	case ScopeResolution:
		return "resolution"
	case ScopeGlobal:
		return "global"
	}
	return "unknown"
}

// Initializer runs on every entity a Factory builds. Its args are the ones
// passed to the Factory call.
type Initializer func(entity any, args ...any)

// Factory builds a new entity on each call.
type Factory func(args ...any) (any, error)

// Creator calls a plain function on each call.
type Creator func(args ...any) (any, error)

// Binding describes how one token is produced under one condition.
type Binding struct {
	kind          Kind
	scope         Scope
	token         *tokenKey
	value         any
	target        *Target
	isConstructor bool
	initializer   Initializer

	// pending fires the missing-scope warning unless a scope is chosen.
	pending *time.Timer

	mu sync.Mutex

	// singleton cell; hasCached is separate so falsy values stay cached
	hasCached bool
	cached    any

	// container scope: requesting container → value
	perContainer map[*Container]any
}

// Kind returns the binding kind.
func (b *Binding) Kind() Kind { return b.kind }

// Scope returns the binding scope. Constants report ScopeTransient.
func (b *Binding) Scope() Scope { return b.scope }

// IsConstructor reports whether the binding was declared with ToInstance.
func (b *Binding) IsConstructor() bool { return b.isConstructor }

func (b *Binding) label() string {
	if b.kind != KindEntity {
		return b.kind.String()
	}
	if b.isConstructor {
		return "instance"
	}
	return "call"
}

func (b *Binding) setScope(s Scope) {
	if b.pending != nil {
		b.pending.Stop()
		b.pending = nil
	}
	b.scope = s
}

// clone copies the binding. A singleton value already built is carried over,
// later builds are not shared. Container-scope values are never carried over.
func (b *Binding) clone() *Binding {
	b.mu.Lock()
	defer b.mu.Unlock()
	return &Binding{
		kind:          b.kind,
		scope:         b.scope,
		token:         b.token,
		value:         b.value,
		target:        b.target,
		isConstructor: b.isConstructor,
		initializer:   b.initializer,
		hasCached:     b.hasCached,
		cached:        b.cached,
	}
}

func (b *Binding) singleton() (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cached, b.hasCached
}

// storeSingleton keeps the first stored value and returns it.
func (b *Binding) storeSingleton(v any) any {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.hasCached {
		return b.cached
	}
	b.cached, b.hasCached = v, true
	return v
}

func (b *Binding) forContainer(c *Container) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.perContainer[c]
	return v, ok
}

// storeForContainer keeps the first stored value for c and returns it.
func (b *Binding) storeForContainer(c *Container, v any) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if prev, ok := b.perContainer[c]; ok {
		return prev, false
	}
	if b.perContainer == nil {
		b.perContainer = make(map[*Container]any)
	}
	b.perContainer[c] = v
	return v, true
}

func (b *Binding) forget(c *Container) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.perContainer, c)
}

// ── Global scope ──────────────────────────────────────────────────────────────

type globalTable struct {
	mu     sync.Mutex
	values map[*tokenKey]any
}

var globals = &globalTable{values: make(map[*tokenKey]any)}

func (g *globalTable) get(k *tokenKey) (any, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	v, ok := g.values[k]
	return v, ok
}

// store keeps the first writer's value and returns it.
func (g *globalTable) store(k *tokenKey, v any) any {
	g.mu.Lock()
	defer g.mu.Unlock()
	if prev, ok := g.values[k]; ok {
		return prev
	}
	g.values[k] = v
	return v
}

// ResetGlobalScope drops every value cached in the global scope.
func ResetGlobalScope() {
	globals.mu.Lock()
	defer globals.mu.Unlock()
	globals.values = make(map[*tokenKey]any)
}
