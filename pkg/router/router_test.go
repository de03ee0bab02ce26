package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawmart/pawmart/pkg/router"
)

func TestRoutingAndParams(t *testing.T) {
	r := router.New()
	r.Get("/products/{id}", "products.show", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("id=" + router.Param(req, "id")))
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/42", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "id=42", rec.Body.String())
}

func TestGroupsNestPrefixesAndMiddleware(t *testing.T) {
	var sawMiddleware bool
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			sawMiddleware = true
			next.ServeHTTP(w, req)
		})
	}

	r := router.New()
	api := r.Group("/api", mw)
	admin := api.Group("/admin")
	admin.Get("/orders", "admin.orders", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, sawMiddleware)
}

func TestNamedRouteURL(t *testing.T) {
	r := router.New()
	r.Get("/orders/{id}", "orders.show", func(http.ResponseWriter, *http.Request) {})

	url, err := r.URL("orders.show", map[string]string{"id": "7"})
	require.NoError(t, err)
	assert.Equal(t, "/orders/7", url)

	_, err = r.URL("orders.show", nil)
	assert.Error(t, err)

	_, err = r.URL("missing.route", nil)
	assert.Error(t, err)
}

func TestMethodMatters(t *testing.T) {
	r := router.New()
	r.Post("/checkout", "checkout", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/checkout", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
