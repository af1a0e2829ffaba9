package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "trackr"

// Metrics agrupa as métricas Prometheus da API
type Metrics struct {
	// HTTP
	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec

	// Dashboard
	WidgetLatency *prometheus.HistogramVec
	WidgetErrors  *prometheus.CounterVec
	CacheResults  *prometheus.CounterVec

	// Sincronização de pedidos
	SyncedOrders *prometheus.CounterVec
	SyncRuns     *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New cria e registra as métricas no registry informado
func New(registry *prometheus.Registry) *Metrics {
	factory := promauto.With(registry)

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total de requisições HTTP",
			},
			[]string{"method", "route", "status"},
		),
		HTTPLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duração das requisições HTTP em segundos",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		WidgetLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "widget_duration_seconds",
				Help:      "Duração do cálculo de cada card do dashboard",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"widget"},
		),
		WidgetErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "widget_errors_total",
				Help:      "Total de falhas no cálculo de cards do dashboard",
			},
			[]string{"widget"},
		),
		CacheResults: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_results_total",
				Help:      "Acertos e falhas do cache do dashboard",
			},
			[]string{"widget", "result"},
		),
		SyncedOrders: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "synced_orders_total",
				Help:      "Pedidos importados da Nuvemshop",
			},
			[]string{"result"},
		),
		SyncRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "order_sync_runs_total",
				Help:      "Execuções da sincronização de pedidos",
			},
			[]string{"trigger"},
		),
		gatherer: registry,
	}
}

// Handler expõe as métricas no formato do Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveHTTP registra uma requisição finalizada
func (m *Metrics) ObserveHTTP(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveWidget registra o tempo de um card e, se houver, a falha
func (m *Metrics) ObserveWidget(widget string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.WidgetLatency.WithLabelValues(widget).Observe(duration.Seconds())
	if err != nil {
		m.WidgetErrors.WithLabelValues(widget).Inc()
	}
}

func (m *Metrics) ObserveCache(widget string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheResults.WithLabelValues(widget, result).Inc()
}

func (m *Metrics) ObserveSyncedOrder(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.SyncedOrders.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveSyncRun(trigger string) {
	if m == nil {
		return
	}
	m.SyncRuns.WithLabelValues(trigger).Inc()
}
