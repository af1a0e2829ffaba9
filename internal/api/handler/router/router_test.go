package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func tag(name string, calls *[]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*calls = append(*calls, name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestRouter_OrdemDosMiddlewares(t *testing.T) {
	var calls []string
	var wrappedPath string

	rt := New(
		WithRouteWrapper(func(route Route, next http.Handler) http.Handler {
			wrappedPath = route.Path
			return tag("wrapper", &calls)(next)
		}),
		WithRoutes(Route{
			Path:   "/v1/brands/:brand_id/metrics",
			Method: http.MethodGet,
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls = append(calls, "handler:"+httprouter.ParamsFromContext(r.Context()).ByName("brand_id"))
			}),
			Middlewares: []func(http.Handler) http.Handler{tag("primeiro", &calls), tag("segundo", &calls)},
		}),
	)

	rt.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/brands/b1/metrics", nil))

	assert.Equal(t, []string{"wrapper", "primeiro", "segundo", "handler:b1"}, calls)
	assert.Equal(t, "/v1/brands/:brand_id/metrics", wrappedPath)
}

func TestRouter_NotFound(t *testing.T) {
	rt := New(WithNotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("rota inexistente"))
	})))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nada", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "inexistente"))
}
