package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

var (
	WithRoutes = func(routes ...Route) ConfigRouter {
		return func(router *Router) {
			router.AddRoutes(routes...)
		}
	}

	// WithRouteWrapper envolve cada rota adicionada depois dele, por fora dos middlewares da rota
	WithRouteWrapper = func(wrapper RouteWrapper) ConfigRouter {
		return func(router *Router) {
			router.wrappers = append(router.wrappers, wrapper)
		}
	}

	WithNotFound = func(handler http.Handler) ConfigRouter {
		return func(router *Router) {
			router.router.NotFound = handler
		}
	}
)

type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []func(http.Handler) http.Handler
}

// RouteWrapper recebe a rota para poder rotular o handler pelo padrão do caminho
type RouteWrapper func(route Route, next http.Handler) http.Handler

type Router struct {
	router   *httprouter.Router
	wrappers []RouteWrapper
}

type ConfigRouter func(router *Router)

func New(configs ...ConfigRouter) *Router {
	router := &Router{
		router: httprouter.New(),
	}

	for _, config := range configs {
		config(router)
	}

	return router
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// AddRoutes registra as rotas aplicando os middlewares na ordem em que foram declarados
func (r *Router) AddRoutes(routes ...Route) {
	for _, route := range routes {
		handler := route.Handler

		for i := len(route.Middlewares) - 1; i >= 0; i-- {
			handler = route.Middlewares[i](handler)
		}

		for i := len(r.wrappers) - 1; i >= 0; i-- {
			handler = r.wrappers[i](route, handler)
		}

		r.router.Handler(route.Method, route.Path, handler)
	}
}
