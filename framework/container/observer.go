package container

import "time"

// Event describes one resolved binding.
type Event struct {
	Token  string
	Kind   string // constant, instance, call, factory or creator
	Scope  string // scope name, "none" for non-entity bindings
	Cached bool

	// Duration is the construction time, zero for cache hits.
	Duration time.Duration
}

// Observer is notified of resolutions. Implementations must be cheap and
// safe for concurrent use.
type Observer interface {
	Resolved(ev Event)
	Unresolved(token string)
}
