package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_PrivateRegistries(t *testing.T) {
	a := NewCollector()
	b := NewCollector()
	a.ObserveReload(3, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.DatasetReloads.WithLabelValues("ok")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.DatasetReloads.WithLabelValues("ok")))
}

func TestCollector_ObserveReload(t *testing.T) {
	c := NewCollector()
	c.ObserveReload(31, nil)
	c.ObserveReload(0, errors.New("bad yaml"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.DatasetReloads.WithLabelValues("error")))
	assert.Equal(t, 31.0, testutil.ToFloat64(c.DatasetPeople))
}

func TestCollector_Middleware(t *testing.T) {
	c := NewCollector()
	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/people/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/people/p-1", "/people/p-2", "/ok"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/people/{id}", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/ok", "200")))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.ObserveSearch(2, false)
	c.ObserveSearch(1, true)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `kue_search_results_count{mode="exact"} 1`), body)
	assert.True(t, strings.Contains(body, `kue_search_results_count{mode="fuzzy"} 1`), body)
}
