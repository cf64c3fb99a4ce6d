package container

import "fmt"

// Binder implements the fluent binding API. Every chain must end in one of
// ToConstant, ToInstance(...).In*Scope, ToCall(...).In*Scope, ToFactory or
// ToCreator.
//
//	c.Bind(TOKENS.Port).ToConstant(8080)
//	c.Bind(TOKENS.Server).ToInstance(ServerTarget).InSingletonScope()
//	c.When(TAGS.Admin).Bind(TOKENS.Policy).ToCall(AdminPolicy).InTransientScope()
type Binder struct {
	owner Module
	token *tokenKey
	cond  Condition
}

func newBinder(owner Module, tok Dependency, cond Condition) *Binder {
	if tok == nil || tok.key() == nil {
		panic("container: Bind called with a nil token")
	}
	return &Binder{owner: owner, token: tok.key(), cond: cond}
}

func (b *Binder) set(binding *Binding) {
	binding.token = b.token
	b.owner.bindings().set(binding, b.token, b.cond)
}

// ToConstant binds a value returned verbatim on every resolution.
func (b *Binder) ToConstant(value any) {
	b.set(&Binding{kind: KindConstant, value: value})
}

// ToInstance binds a constructor. The binding is usable right away in the
// transient scope; pick the scope with the returned ScopeSetter.
func (b *Binder) ToInstance(t *Target) *ScopeSetter {
	return b.entity(t, true)
}

// ToCall binds a plain function. Like ToInstance, it waits for a scope.
func (b *Binder) ToCall(t *Target) *ScopeSetter {
	return b.entity(t, false)
}

func (b *Binder) entity(t *Target, isConstructor bool) *ScopeSetter {
	if t == nil {
		panic(fmt.Sprintf("container: [%s] bound to a nil target", b.token.description))
	}
	binding := &Binding{kind: KindEntity, scope: ScopeTransient, target: t, isConstructor: isConstructor}
	binding.pending = diag.armScopeWarning(b.token.description, t.name)
	b.set(binding)
	return &ScopeSetter{binding: binding}
}

// ToFactory binds a Factory building a new entity from t on every call.
// init, when not nil, runs on each entity with the Factory call's arguments.
//
//	c.Bind(TOKENS.UserFactory).ToFactory(UserTarget, func(u any, args ...any) {
//	    u.(*User).Name = args[0].(string)
//	})
func (b *Binder) ToFactory(t *Target, init Initializer) {
	if t == nil {
		panic(fmt.Sprintf("container: [%s] bound to a nil factory target", b.token.description))
	}
	b.set(&Binding{kind: KindFactory, target: t, isConstructor: true, initializer: init})
}

// ToCreator binds a Creator calling the plain function t on every call. A
// call without arguments yields t's result as is; with arguments, mutate (when
// not nil) runs on the result with them.
func (b *Binder) ToCreator(t *Target, mutate Initializer) {
	if t == nil {
		panic(fmt.Sprintf("container: [%s] bound to a nil creator target", b.token.description))
	}
	b.set(&Binding{kind: KindCreator, target: t, initializer: mutate})
}

// ScopeSetter chooses the scope of an entity binding.
type ScopeSetter struct {
	binding *Binding
}

// InTransientScope builds a new value on every resolution.
func (s *ScopeSetter) InTransientScope() { s.binding.setScope(ScopeTransient) }

// InSingletonScope builds the value once for this binding.
func (s *ScopeSetter) InSingletonScope() { s.binding.setScope(ScopeSingleton) }

// InContainerScope builds the value once per container resolving it.
func (s *ScopeSetter) InContainerScope() { s.binding.setScope(ScopeContainer) }

// InResolutionScope builds the value once per top-level Get call.
func (s *ScopeSetter) InResolutionScope() { s.binding.setScope(ScopeResolution) }

// InGlobalScope builds the value once per token, shared by every container.
func (s *ScopeSetter) InGlobalScope() { s.binding.setScope(ScopeGlobal) }

// ConditionalBinder binds tokens under a condition.
type ConditionalBinder struct {
	owner Module
	cond  Condition
}

// Bind starts a binding of tok that applies only under the condition.
func (w *ConditionalBinder) Bind(tok Dependency) *Binder {
	if w.cond == nil {
		panic("container: When called with a nil condition")
	}
	return newBinder(w.owner, tok, w.cond)
}

// UseBuilder mounts tokens from a dependency module.
type UseBuilder struct {
	owner  Module
	tokens []Dependency
}

// From delegates the tokens to module. module may be a *DependencyModule or
// another *Container; its bindings are borrowed, not copied.
func (u *UseBuilder) From(module Module) {
	if module == nil {
		panic("container: Use(...).From called with a nil module")
	}
	v := u.owner.bindings()
	for _, tok := range u.tokens {
		if tok == nil || tok.key() == nil {
			panic("container: Use called with a nil token")
		}
		v.setModule(module, tok.key())
	}
}
