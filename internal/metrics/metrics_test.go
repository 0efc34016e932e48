package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/{bucket}/*", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/shop/widget.txt", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/shop/gadget.txt", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/{bucket}/*", "GET", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inflight))
}

func TestObserveOperation(t *testing.T) {
	m := New()
	m.ObserveOperation("create_bucket", "ok")
	m.ObserveOperation("create_bucket", "conflict")
	m.ObserveOperation("create_bucket", "ok")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("create_bucket", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("create_bucket", "conflict")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveOperation("list_buckets", "ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `taskrepo_repo_operations_total{op="list_buckets",outcome="ok"} 1`)
}
