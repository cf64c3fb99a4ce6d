package http

import (
	"context"
	"net/http"

	"github.com/km-arc/go-inject/framework/container"
)

// RequestToken resolves the *http.Request served by a request container.
var RequestToken = container.NewToken[*http.Request]("http.request")

type ctxKey struct{}

// ScopeOption configures Middleware.
type ScopeOption func(*scopeConfig)

type scopeConfig struct {
	template *container.Container
	setup    []func(c *container.Container, r *http.Request)
}

// WithTemplate makes every request container a clone of template, re-parented
// to the root container. Bindings declared on template are therefore fresh
// per request, including their singletons.
func WithTemplate(template *container.Container) ScopeOption {
	return func(cfg *scopeConfig) { cfg.template = template }
}

// WithSetup runs fn on every request container before the handler.
//
//	gohttp.WithSetup(func(c *container.Container, r *http.Request) {
//	    c.Bind(TOKENS.TenantID).ToConstant(r.Header.Get("X-Tenant"))
//	})
func WithSetup(fn func(c *container.Container, r *http.Request)) ScopeOption {
	return func(cfg *scopeConfig) { cfg.setup = append(cfg.setup, fn) }
}

// Middleware gives every request its own child container of root. The child
// binds RequestToken, is stored in the request context and is disposed when
// the handler returns, which releases its container-scope values.
func Middleware(root *container.Container, opts ...ScopeOption) func(http.Handler) http.Handler {
	cfg := &scopeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := cfg.newScope(root)
			defer c.Dispose()

			r = r.WithContext(WithContainer(r.Context(), c))
			c.Bind(RequestToken).ToConstant(r)
			for _, fn := range cfg.setup {
				fn(c, r)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (cfg *scopeConfig) newScope(root *container.Container) *container.Container {
	if cfg.template != nil {
		return cfg.template.Clone().Extend(root)
	}
	return container.New(container.WithParent(root))
}

// WithContainer returns a copy of ctx carrying c.
func WithContainer(ctx context.Context, c *container.Container) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the request container stored in ctx, if any.
func FromContext(ctx context.Context) (*container.Container, bool) {
	c, ok := ctx.Value(ctxKey{}).(*container.Container)
	return c, ok && c != nil
}

// FromRequest returns the request container of r, or nil outside Middleware.
func FromRequest(r *http.Request) *container.Container {
	c, _ := FromContext(r.Context())
	return c
}

// Resolve resolves tok from the request container of r.
//
//	svc, err := gohttp.Resolve(r, TOKENS.Greeter)
func Resolve[T any](r *http.Request, tok container.Token[T], conditions ...container.Condition) (T, error) {
	c := FromRequest(r)
	if c == nil {
		var zero T
		return zero, &container.UnresolvedBindingError{Token: tok.Description()}
	}
	return container.Resolve(c, tok, conditions...)
}
