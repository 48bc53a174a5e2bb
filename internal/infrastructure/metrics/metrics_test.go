package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xausdorf/vietqr-hub/internal/infrastructure/metrics"
)

func TestNew_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := metrics.New("core", reg)
	require.NoError(t, err)

	_, err = metrics.New("core", reg)
	require.Error(t, err, "registering the same collectors twice must fail")
}

func TestHandler_ExposesSeries(t *testing.T) {
	m, err := metrics.New("gateway", prometheus.NewRegistry())
	require.NoError(t, err)

	m.PayloadsIssued.WithLabelValues("dynamic").Add(2)
	m.QRImages.Inc()

	assert.InDelta(t, 2, testutil.ToFloat64(m.PayloadsIssued.WithLabelValues("dynamic")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.QRImages), 0)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `vietqr_payloads_issued_total{method="dynamic",service="gateway"} 2`)
	assert.Contains(t, string(body), `vietqr_qr_images_total{service="gateway"} 1`)
}
