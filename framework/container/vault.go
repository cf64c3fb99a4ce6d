package container

import "sync"

// Module is a bindings source that can be mounted with Use(...).From: a
// *DependencyModule or a *Container.
type Module interface {
	bindings() *Vault
}

// entry is either a binding or a dependency module.
type entry struct {
	binding *Binding
	module  Module
}

// Vault stores bindings by token and condition. An entry may delegate a
// token to another vault (a dependency module), and a vault may have a
// parent it falls back to.
type Vault struct {
	mu      sync.RWMutex
	parent  Module
	entries map[*tokenKey]map[Condition]entry
}

func newVault() *Vault {
	return &Vault{entries: make(map[*tokenKey]map[Condition]entry)}
}

// set stores b for (token, cond), replacing any previous entry.
func (v *Vault) set(b *Binding, token *tokenKey, cond Condition) {
	v.put(entry{binding: b}, token, cond)
}

// setModule delegates token to module.
func (v *Vault) setModule(module Module, token *tokenKey) {
	v.put(entry{module: module}, token, noCondition)
}

func (v *Vault) put(e entry, token *tokenKey, cond Condition) {
	if cond == nil {
		cond = noCondition
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	m, ok := v.entries[token]
	if !ok {
		m = make(map[Condition]entry)
		v.entries[token] = m
	}
	m[cond] = e
}

func (v *Vault) setParent(p Module) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.parent = p
}

func (v *Vault) getParent() Module {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.parent
}

// clone copies the vault and every binding in it. Module vaults stay shared.
func (v *Vault) clone() *Vault {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := &Vault{
		parent:  v.parent,
		entries: make(map[*tokenKey]map[Condition]entry, len(v.entries)),
	}
	for token, m := range v.entries {
		cp := make(map[Condition]entry, len(m))
		for cond, e := range m {
			if e.binding != nil {
				e = entry{binding: e.binding.clone()}
			}
			cp[cond] = e
		}
		out.entries[token] = cp
	}
	return out
}

// find selects the entry of token in this vault only: the target's own
// binding first, then the first matching condition, then the default.
// Ambiguous conditions are reported only when report is set.
func (v *Vault) find(token *tokenKey, desc string, conditions []Condition, target *Target, report bool) (entry, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	m, ok := v.entries[token]
	if !ok {
		return entry{}, false
	}
	if target != nil {
		if e, ok := m[target]; ok {
			return e, true
		}
	}
	if len(conditions) > 0 {
		var matched []Condition
		for _, c := range conditions {
			if _, ok := m[c]; ok {
				matched = append(matched, c)
			}
		}
		if report && len(matched) > 1 {
			diag.ambiguousConditions(desc, matched)
		}
		if len(matched) > 0 {
			return m[matched[0]], true
		}
	}
	e, ok := m[noCondition]
	return e, ok
}

// resolve looks token up in this vault, inside modules it delegates to, and
// then in the parent chain. Entered modules are recorded on rc.
func (v *Vault) resolve(token *tokenKey, desc string, rc *resolutionContext, conditions []Condition, target *Target) *Binding {
	e, ok := v.find(token, desc, conditions, target, !rc.silent)
	switch {
	case ok && e.binding != nil:
		return e.binding
	case ok && e.module != nil:
		nested := e.module.bindings()
		rc.vaults = append(rc.vaults, nested)
		// conditions belong to the scope that declared them
		if b := nested.resolve(token, desc, rc, nil, nil); b != nil {
			return b
		}
	}
	if p := v.getParent(); p != nil {
		return p.bindings().resolve(token, desc, rc, conditions, target)
	}
	return nil
}

// get resolves token starting at v. When nothing is found, the module vaults
// entered earlier on this branch are tried, most recent first.
func (v *Vault) get(token *tokenKey, desc string, rc *resolutionContext, conditions []Condition, target *Target) *Binding {
	if b := v.resolve(token, desc, rc, conditions, target); b != nil {
		return b
	}
	visited := rc.vaults
	for i := len(visited) - 1; i >= 0; i-- {
		if b := visited[i].resolve(token, desc, rc, nil, nil); b != nil {
			return b
		}
	}
	return nil
}
