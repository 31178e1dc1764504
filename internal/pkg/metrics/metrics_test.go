package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurant/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Run("should expose registered collectors", func(t *testing.T) {
		// Given
		m := metrics.New(prometheus.NewRegistry())
		m.Requests.WithLabelValues("/api/v1/orders", http.MethodGet, "200").Inc()
		m.PendingEvents.Set(3)

		// When
		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `restaurant_http_requests_total{method="GET",route="/api/v1/orders",status="200"} 1`)
		assert.Contains(t, rec.Body.String(), "restaurant_notifier_pending_events 3")
	})

	t.Run("should keep separate registries apart", func(t *testing.T) {
		first := metrics.New(prometheus.NewRegistry())
		second := metrics.New(prometheus.NewRegistry())

		first.NotificationsSent.WithLabelValues("order.placed").Inc()

		assert.InDelta(t, 1, testutil.ToFloat64(first.NotificationsSent.WithLabelValues("order.placed")), 0)
		assert.InDelta(t, 0, testutil.ToFloat64(second.NotificationsSent.WithLabelValues("order.placed")), 0)
	})
}
