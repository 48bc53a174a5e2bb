package http //nolint:revive // directory-based package name, imported with alias

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Xausdorf/vietqr-hub/internal/infrastructure/metrics"
)

// Instrument counts requests per matched route pattern and status code.
// Unmatched paths are reported under the route "unmatched".
func Instrument(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			code := ww.Status()
			if code == 0 {
				code = http.StatusOK
			}

			m.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
			m.HTTPReqDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		})
	}
}
