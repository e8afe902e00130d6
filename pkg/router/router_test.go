package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casatartufo/tartufo/pkg/router"
)

func ok(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body)) //nolint:errcheck
	}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGroupPrefixes(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	api.Get("/products", "catalog.index", ok("products"))

	nested := api.Group("/admin")
	nested.Get("/stats", "admin.stats", ok("stats"))

	assert.Equal(t, "products", get(t, r.Handler(), "/api/products").Body.String())
	assert.Equal(t, "stats", get(t, r.Handler(), "/api/admin/stats").Body.String())
	assert.Equal(t, http.StatusNotFound, get(t, r.Handler(), "/products").Code)
}

func TestGroupMiddlewareOnlyAppliesInsideGroup(t *testing.T) {
	deny := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}

	r := router.New()
	api := r.Group("/api")
	api.Get("/open", "open", ok("open"))

	protected := api.Group("", deny)
	protected.Get("/closed", "closed", ok("closed"))

	assert.Equal(t, http.StatusOK, get(t, r.Handler(), "/api/open").Code)
	assert.Equal(t, http.StatusUnauthorized, get(t, r.Handler(), "/api/closed").Code)
}

func TestRoutes_SortedRegistry(t *testing.T) {
	r := router.New()
	r.Post("/b", "b.create", ok(""))
	r.Get("/a", "a.index", ok(""))
	r.Get("/b", "b.index", ok(""))

	infos := r.Routes()
	require.Len(t, infos, 3)
	assert.Equal(t, "/a", infos[0].Path)
	assert.Equal(t, "/b", infos[1].Path)
	assert.Equal(t, http.MethodGet, infos[1].Method)
	assert.Equal(t, http.MethodPost, infos[2].Method)
}

func TestUnnamedRoutesStayOutOfRegistry(t *testing.T) {
	r := router.New()
	r.Get("/internal", "", ok(""))

	assert.Empty(t, r.Routes())
	assert.Equal(t, http.StatusOK, get(t, r.Handler(), "/internal").Code)
}
