package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/metrics"
)

type service struct{}

func TestCollector_CountsResolutions(t *testing.T) {
	col := metrics.New()
	port := container.NewToken[int]("port")
	svc := container.NewToken[*service]("service")
	missing := container.NewToken[string]("missing")

	c := container.New(container.WithObserver(col))
	c.Bind(port).ToConstant(8080)
	c.Bind(svc).ToInstance(container.NewTarget("service", func() *service { return &service{} })).InSingletonScope()

	container.MustResolve(c, port)
	container.MustResolve(c, svc)
	container.MustResolve(c, svc)
	_, err := c.Get(missing)
	require.Error(t, err)

	assert.Equal(t, 4, testutil.CollectAndCount(col.Registry(), "inject_resolutions_total")+
		testutil.CollectAndCount(col.Registry(), "inject_unresolved_total"))
	assert.Equal(t, 1, testutil.CollectAndCount(col.Registry(), "inject_build_duration_seconds"))
}

func TestCollector_Handler(t *testing.T) {
	col := metrics.New()
	col.Resolved(container.Event{Token: "port", Kind: "constant", Scope: "none", Cached: true})
	col.Unresolved("missing")

	rec := httptest.NewRecorder()
	col.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `inject_resolutions_total{cached="true",kind="constant",scope="none",token="port"} 1`)
	assert.Contains(t, body, `inject_unresolved_total{token="missing"} 1`)
}
