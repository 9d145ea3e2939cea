package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the form assist collectors.
type Metrics struct {
	registry *prometheus.Registry

	Assessments   *prometheus.CounterVec
	RutFormats    *prometheus.CounterVec
	PhotoPreviews *prometheus.CounterVec
	Requests      *prometheus.CounterVec
	Latency       *prometheus.HistogramVec
}

// New registers collectors on a private registry so tests can build as many
// instances as they like.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forms_password_assessments_total",
			Help: "Password strength assessments by tier.",
		}, []string{"tier"}),
		RutFormats: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forms_rut_formats_total",
			Help: "RUT format calls, split by whether a check digit was positioned.",
		}, []string{"split"}),
		PhotoPreviews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forms_photo_previews_total",
			Help: "Photo preview requests by outcome.",
		}, []string{"outcome"}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method and status.",
		}, []string{"method", "status"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
	reg.MustRegister(m.Assessments, m.RutFormats, m.PhotoPreviews, m.Requests, m.Latency)
	return m
}

func (m *Metrics) ObserveAssessment(tier string) {
	m.Assessments.WithLabelValues(tier).Inc()
}

func (m *Metrics) ObserveRutFormat(split bool) {
	m.RutFormats.WithLabelValues(strconv.FormatBool(split)).Inc()
}

func (m *Metrics) ObservePhotoPreview(outcome string) {
	m.PhotoPreviews.WithLabelValues(outcome).Inc()
}

// ObserveRequest folds methods the service does not route into "other"
// so a client cannot mint new series.
func (m *Metrics) ObserveRequest(method string, status int, seconds float64) {
	method = methodLabel(method)
	m.Requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.Latency.WithLabelValues(method).Observe(seconds)
}

func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodHead, http.MethodOptions:
		return method
	default:
		return "other"
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
