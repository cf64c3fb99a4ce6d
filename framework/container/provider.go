package container

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related bindings.
//
// Register is called when the provider is added to a ProviderRegistry. Boot
// is called after every provider is registered, so it may resolve tokens
// bound by other providers.
//
//	type StorageProvider struct{ container.BaseProvider }
//
//	func (p *StorageProvider) Register(app *container.Container) {
//	    app.Bind(TOKENS.Repository).ToInstance(RepositoryTarget).InSingletonScope()
//	}
//
//	func (p *StorageProvider) Boot(app *container.Container) {
//	    repo := container.MustResolve(app, TOKENS.Repository)
//	    repo.Migrate()
//	}
type ServiceProvider interface {
	// Register declares bindings. Do not resolve here, use Boot.
	Register(app *Container)

	// Boot runs after all providers are registered.
	Boot(app *Container)

	// Provides lists the tokens a deferred provider binds.
	Provides() []Dependency

	// IsDeferred reports whether Register waits until one of Provides() is
	// first resolved.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with no-op Boot, Provides and
// IsDeferred. Embed it and implement Register.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) {}

func (p *BaseProvider) Provides() []Dependency { return nil }

func (p *BaseProvider) IsDeferred() bool { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry registers and boots ServiceProviders against one
// container, including deferred providers.
type ProviderRegistry struct {
	app        *Container
	eager      []ServiceProvider
	booted     bool
	registered map[ServiceProvider]bool
	loaded     map[ServiceProvider]bool // deferred providers already registered
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		registered: make(map[ServiceProvider]bool),
		loaded:     make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register method unless it is
// deferred. Adding the same provider twice is a no-op.
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	if r.registered[provider] {
		return
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		r.interceptDeferred(provider)
		return
	}

	provider.Register(r.app)
	r.eager = append(r.eager, provider)

	// If already booted, boot this provider immediately
	if r.booted {
		provider.Boot(r.app)
	}
}

// interceptDeferred binds every provided token to a loader. The first
// resolution registers the provider, whose bindings replace the loaders, and
// resolves the token again.
//
// A loader can outlive the load: a clone taken before it, or a Restore of an
// earlier Capture, still holds one. Such loaders resolve through the app, and
// when the app itself holds the loader again, the provider is re-registered.
func (r *ProviderRegistry) interceptDeferred(provider ServiceProvider) {
	for _, tok := range provider.Provides() {
		var load *Target
		load = NewTarget("deferred:"+tok.Description(), func() (any, error) {
			switch {
			case !r.loaded[provider]:
				r.load(provider)
			case r.holdsLoader(tok, load):
				provider.Register(r.app)
			}
			if r.holdsLoader(tok, load) {
				// Register ran but did not bind tok
				return nil, &UnresolvedBindingError{Token: tok.Description()}
			}
			return r.app.Get(tok)
		})
		r.app.Bind(tok).ToCall(load).InTransientScope()
	}
}

// holdsLoader reports whether the app's own default binding of tok is still
// the loader. Clones copy bindings but keep their target.
func (r *ProviderRegistry) holdsLoader(tok Dependency, load *Target) bool {
	k := tok.key()
	e, ok := r.app.bindings().find(k, k.description, nil, nil, false)
	return ok && e.binding != nil && e.binding.target == load
}

func (r *ProviderRegistry) load(provider ServiceProvider) {
	if r.loaded[provider] {
		return
	}
	r.loaded[provider] = true
	provider.Register(r.app)
	if r.booted {
		provider.Boot(r.app)
	}
}

// Boot calls Boot on every eager provider once.
func (r *ProviderRegistry) Boot() {
	if r.booted {
		return
	}
	r.booted = true
	for _, provider := range r.eager {
		provider.Boot(r.app)
	}
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.eager }
