package metrics

import "github.com/prometheus/client_golang/prometheus"

// ChatMetrics tracks how messages flow through the appointment engine.
type ChatMetrics struct {
	messagesTotal  *prometheus.CounterVec
	backendLatency *prometheus.HistogramVec
	backendErrors  *prometheus.CounterVec
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medassist",
			Subsystem: "chat",
			Name:      "messages_total",
			Help:      "Chat messages by intent and reply path",
		}, []string{"intent", "path"}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "medassist",
			Subsystem: "chat",
			Name:      "backend_latency_seconds",
			Help:      "Latency of generative backend calls",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30},
		}, []string{"outcome"}),
		backendErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medassist",
			Subsystem: "chat",
			Name:      "backend_errors_total",
			Help:      "Failed generative backend calls",
		}, []string{"quota"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.messagesTotal, m.backendLatency, m.backendErrors)
	return m
}

func (m *ChatMetrics) ObserveMessage(intent, path string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(intent, path).Inc()
}

func (m *ChatMetrics) ObserveBackend(seconds float64, err error, quota bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
		label := "false"
		if quota {
			label = "true"
		}
		m.backendErrors.WithLabelValues(label).Inc()
	}
	m.backendLatency.WithLabelValues(outcome).Observe(seconds)
}

// HTTPMetrics counts requests per route.
type HTTPMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medassist",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "medassist",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration)
	return m
}

func (m *HTTPMetrics) ObserveRequest(route, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(route, method, status).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(seconds)
}
