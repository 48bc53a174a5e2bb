package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the prometheus collectors shared by the core and gateway
// services. Label vectors a service never touches export nothing.
type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPReqDuration *prometheus.HistogramVec
	RPCRequests     *prometheus.CounterVec
	RPCLatency      *prometheus.HistogramVec
	PayloadsIssued  *prometheus.CounterVec
	QRImages        prometheus.Counter

	gatherer prometheus.Gatherer
}

type Labels = prometheus.Labels

// NewRegistry returns a registry preloaded with the Go runtime and process
// collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// New creates the collectors and registers them with reg, which also backs
// Handler.
func New(service string, reg *prometheus.Registry) (*Metrics, error) {
	constLabels := Labels{"service": service}

	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "vietqr_http_requests_total",
				Help:        "Total number of HTTP requests by route and status code",
				ConstLabels: constLabels,
			},
			[]string{"route", "status"},
		),
		HTTPReqDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "vietqr_http_request_duration_seconds",
				Help:        "HTTP request duration by route",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: constLabels,
			},
			[]string{"route"},
		),
		RPCRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "vietqr_rpc_requests_total",
				Help:        "Total number of gRPC calls by method and status code",
				ConstLabels: constLabels,
			},
			[]string{"method", "code"},
		),
		RPCLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "vietqr_rpc_duration_seconds",
				Help:        "gRPC call duration by method",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: constLabels,
			},
			[]string{"method"},
		),
		PayloadsIssued: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "vietqr_payloads_issued_total",
				Help:        "Number of payloads encoded by initiation method",
				ConstLabels: constLabels,
			},
			[]string{"method"},
		),
		QRImages: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        "vietqr_qr_images_total",
				Help:        "Number of QR images rendered",
				ConstLabels: constLabels,
			},
		),
		gatherer: reg,
	}

	for _, c := range []prometheus.Collector{
		m.HTTPRequests,
		m.HTTPReqDuration,
		m.RPCRequests,
		m.RPCLatency,
		m.PayloadsIssued,
		m.QRImages,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
