// Package container provides a token-based dependency injection container
// with scopes, conditional bindings, dependency modules and snapshots.
//
// # Overview
//
// Values are identified by typed tokens and produced by bindings. Producers
// are ordinary Go funcs wrapped in a Target; their parameters come from the
// tokens registered with Injected, in order. There is no reflection-based
// auto-wiring: every edge of the graph is declared.
//
//	var TOKENS = struct {
//	    Num     container.Token[int]
//	    Doubler container.Token[*Doubler]
//	}{
//	    Num:     container.NewToken[int]("num"),
//	    Doubler: container.NewToken[*Doubler]("doubler"),
//	}
//
//	var DoublerTarget = container.Injected(
//	    container.NewTarget("Doubler", NewDoubler), TOKENS.Num,
//	)
//
//	c := container.New()
//	c.Bind(TOKENS.Num).ToConstant(5)
//	c.Bind(TOKENS.Doubler).ToInstance(DoublerTarget).InTransientScope()
//
//	d, err := container.Resolve(c, TOKENS.Doubler)
//
// # Bindings
//
//	c.Bind(tok).ToConstant(v)                          // returned verbatim
//	c.Bind(tok).ToInstance(ctor).InSingletonScope()    // constructor
//	c.Bind(tok).ToCall(fn).InTransientScope()          // plain function
//	c.Bind(tok).ToFactory(ctor, initializer)           // container.Factory
//	c.Bind(tok).ToCreator(fn, mutator)                 // container.Creator
//
// An entity binding waits for its scope. Until In*Scope is called it behaves
// as transient, and a warning is logged if the scope is not chosen shortly.
//
// # Scopes
//
//   - Transient: a new value on every resolution.
//   - Singleton: one value per binding. Clones start from the value already
//     built, if any, and build their own otherwise.
//   - Container: one value per container resolving the token. Call Dispose on
//     short-lived containers to release their values.
//   - Resolution: one value per top-level Get call, shared by the whole graph
//     that call builds.
//   - Global: one value per token for the process; the first build wins.
//
// A producer result that is an untyped nil (a nil any or interface, or a func
// with no results) is never cached. Typed nil pointers, false, 0 and "" are.
//
// # Conditions
//
//	var Offline = container.NewTag("offline")
//
//	c.When(Offline).Bind(TOKENS.Client).ToInstance(MockClient).InTransientScope()
//	container.Tagged(ServiceTarget, Offline)      // ServiceTarget's deps prefer Offline
//	c.Get(TOKENS.Client, Offline)                 // explicit conditions
//	c.When(ServiceTarget).Bind(TOKENS.Client)...  // binding for one target only
//
// When several conditions have bindings, the first in the target's (or the
// caller's) order wins and a warning is logged.
//
// # Hierarchy and modules
//
//	child := container.New(container.WithParent(root))
//
//	storage := container.NewDependencyModule()
//	storage.Bind(TOKENS.DSN).ToConstant("postgres://...")
//	storage.Bind(TOKENS.Repo).ToInstance(RepoTarget).InSingletonScope()
//	c.Use(TOKENS.Repo).From(storage)
//
// Tokens missing on a container fall back to its parent chain. A module
// lends only the tokens named in Use; its remaining bindings are consulted
// solely while building something obtained from it, after the host chain.
//
// # Snapshots
//
//	c.Capture()
//	c.Bind(TOKENS.Num).ToConstant(10)  // e.g. in a test
//	c.Restore()                        // back to 5, repeatable
//
// # Diagnostics
//
// Misconfiguration reports go to the zap logger set with
// ConfigureDiagnostics and are suppressed in production.
package container
