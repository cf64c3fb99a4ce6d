package container

// DependencyModule is a headless set of bindings. Containers mount selected
// tokens of a module with Use(...).From(module); the module's other bindings
// stay invisible to the host.
//
//	storage := container.NewDependencyModule()
//	storage.Bind(TOKENS.DSN).ToConstant("postgres://...")
//	storage.Bind(TOKENS.Repository).ToInstance(RepositoryTarget).InSingletonScope()
//
//	app.Use(TOKENS.Repository).From(storage)
type DependencyModule struct {
	vault *Vault
}

// NewDependencyModule creates an empty module.
func NewDependencyModule() *DependencyModule {
	return &DependencyModule{vault: newVault()}
}

func (m *DependencyModule) bindings() *Vault { return m.vault }

// Bind starts an unconditional binding in the module.
func (m *DependencyModule) Bind(tok Dependency) *Binder {
	return newBinder(m, tok, nil)
}

// When starts a conditional binding in the module.
func (m *DependencyModule) When(cond Condition) *ConditionalBinder {
	return &ConditionalBinder{owner: m, cond: cond}
}

// Use delegates tokens of this module to another module.
func (m *DependencyModule) Use(toks ...Dependency) *UseBuilder {
	return &UseBuilder{owner: m, tokens: toks}
}
