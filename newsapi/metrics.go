package newsapi

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records client-side request metrics. A nil *Metrics records
// nothing.
type Metrics struct {
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	uploadBytes prometheus.Counter
}

// NewMetrics creates the client collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "newsapi",
				Subsystem: "client",
				Name:      "requests_total",
				Help:      "Total number of API requests by method and status code",
			},
			[]string{"method", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "newsapi",
				Subsystem: "client",
				Name:      "request_duration_seconds",
				Help:      "Duration of API requests, including reading the response",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~20s
			},
			[]string{"method"},
		),
		uploadBytes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "newsapi",
				Subsystem: "client",
				Name:      "upload_bytes_total",
				Help:      "Total multipart body bytes sent by requests that received a response",
			},
		),
	}

	for _, c := range []prometheus.Collector{m.requests, m.duration, m.uploadBytes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// observe records one request. status 0 means no response was received.
func (m *Metrics) observe(method string, status int, elapsed time.Duration, bodySize int) {
	if m == nil {
		return
	}

	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())

	if status == 0 {
		m.requests.WithLabelValues(method, "error").Inc()
		return
	}

	m.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.uploadBytes.Add(float64(bodySize))
}
