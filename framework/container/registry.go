package container

import (
	"fmt"
	"sync"
)

// registry holds per-target metadata: the ordered dependency tokens and the
// tags attached to each target. It is process-wide because targets are.
type registry struct {
	mu       sync.RWMutex
	injected map[*Target][]Dependency
	tagged   map[*Target][]Condition
}

var targets = newRegistry()

func newRegistry() *registry {
	return &registry{
		injected: make(map[*Target][]Dependency),
		tagged:   make(map[*Target][]Condition),
	}
}

// Injected registers the tokens whose values are passed to target, in
// parameter order. It returns target so declarations can be chained.
//
//	var UserService = container.Injected(
//	    container.NewTarget("UserService", NewUserService),
//	    TOKENS.DB, TOKENS.Logger.Optional(),
//	)
func Injected(target *Target, deps ...Dependency) *Target {
	if target == nil {
		panic("container: Injected called with a nil target")
	}
	if len(deps) != target.arity() {
		panic(fmt.Sprintf("container: [%s] takes %d parameters, %d tokens injected",
			target.name, target.arity(), len(deps)))
	}
	targets.mu.Lock()
	defer targets.mu.Unlock()
	targets.injected[target] = append([]Dependency(nil), deps...)
	return target
}

// Tagged attaches tags to target. When target's dependencies are resolved,
// bindings registered When(tag) are preferred in the order given here.
func Tagged(target *Target, tags ...*Tag) *Target {
	if target == nil {
		panic("container: Tagged called with a nil target")
	}
	conds := make([]Condition, len(tags))
	for i, tag := range tags {
		conds[i] = tag
	}
	targets.mu.Lock()
	defer targets.mu.Unlock()
	targets.tagged[target] = conds
	return target
}

// ResetRegistry forgets every Injected and Tagged registration.
func ResetRegistry() {
	targets.mu.Lock()
	defer targets.mu.Unlock()
	targets.injected = make(map[*Target][]Dependency)
	targets.tagged = make(map[*Target][]Condition)
}

func (r *registry) dependencies(t *Target) ([]Dependency, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	deps, ok := r.injected[t]
	return deps, ok
}

func (r *registry) tags(t *Target) []Condition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tagged[t]
}
