// Package http scopes a dependency container to each HTTP request.
//
// # Request containers
//
// Middleware creates a child of the root container for every request. Tokens
// missing from the child fall back to the root, so application singletons are
// shared while request values stay private:
//
//	r.Use(gohttp.Middleware(app.Container,
//	    gohttp.WithSetup(func(c *container.Container, req *http.Request) {
//	        c.Bind(TOKENS.User).ToConstant(userFrom(req))
//	    }),
//	))
//
// Inside a handler:
//
//	svc, err := gohttp.Resolve(req, TOKENS.Greeter)
//	if err != nil {
//	    gohttp.NewResponse(w).Failed(err)
//	    return
//	}
//
// Bindings declared InContainerScope on the root are built once per request
// container and released when the request ends.
//
// # Templates
//
// WithTemplate clones a prepared container for each request and re-parents
// the clone to the root, so every request starts from the same bindings with
// no value shared between requests.
//
// # Response
//
// Response wraps http.ResponseWriter with JSON helpers:
//
//	res := gohttp.NewResponse(w)
//	res.Success(data)                        // 200 {"data": ...}
//	res.Error(http.StatusNotFound, "Gone")   // 404 {"message": "Gone"}
//	res.Failed(err)                          // 500 for resolution errors
package http
