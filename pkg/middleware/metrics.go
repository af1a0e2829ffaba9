package middleware

import (
	"net/http"
	"time"
)

// HTTPObserver recebe a duração e o status de cada requisição
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, duration time.Duration)
}

// Metrics registra as requisições de uma rota. O nome da rota é o padrão do
// httprouter (ex: /v1/brands/:brand_id/coupons) para não explodir a cardinalidade.
func Metrics(observer HTTPObserver, route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()
			lrw := newLoggingResponseWriter(w)

			next.ServeHTTP(lrw, r)

			observer.ObserveHTTP(r.Method, route, lrw.statusCode, time.Since(startTime))
		})
	}
}
