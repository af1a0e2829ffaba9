package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveWidget(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveWidget("top_coupons", 10*time.Millisecond, nil)
	m.ObserveWidget("top_coupons", 10*time.Millisecond, errors.New("falhou"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.WidgetErrors.WithLabelValues("top_coupons")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTP(http.MethodGet, "/healthcheck", http.StatusOK, time.Millisecond)
		m.ObserveWidget("daily_revenue", time.Millisecond, nil)
		m.ObserveCache("daily_revenue", true)
		m.ObserveSyncedOrder(nil)
		m.ObserveSyncRun("cron")
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveHTTP(http.MethodGet, "/v1/brands/:brand_id/metrics", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "trackr_http_requests_total")
}
