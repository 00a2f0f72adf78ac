// Package metrics - коллекторы Prometheus мини-приложения
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "astro_miniapp"

var (
	// Registry - собственный реестр, чтобы тесты не тянули глобальное состояние
	Registry = prometheus.NewRegistry()

	backendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Requests issued to the astrology backend.",
		},
		[]string{"endpoint", "method", "status"},
	)

	backendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Duration of backend requests.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		},
		[]string{"endpoint"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests handled by the mini-app host.",
		},
		[]string{"method", "path", "status"},
	)

	httpPanics = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "panics_recovered_total",
			Help:      "Handler panics turned into 500 responses.",
		},
		[]string{"path"},
	)

	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "active",
			Help:      "Currently connected mini-app sessions.",
		},
	)

	sessionActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "actions_total",
			Help:      "User actions received from the mini-app.",
		},
		[]string{"type", "result"},
	)

	practiceCycles = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "practice",
			Name:      "breathing_cycles_total",
			Help:      "Started breathing cycles.",
		},
	)
)

func init() {
	Registry.MustRegister(
		backendRequests,
		backendDuration,
		httpRequests,
		httpPanics,
		activeSessions,
		sessionActions,
		practiceCycles,
		prometheus.NewGoCollector(),
	)
}

// Handler отдаёт метрики реестра
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveBackendRequest status=0 - транспортная ошибка
func ObserveBackendRequest(endpoint, method string, status int, elapsed time.Duration) {
	statusLabel := "transport_error"
	if status > 0 {
		statusLabel = strconv.Itoa(status)
	}
	backendRequests.WithLabelValues(endpoint, method, statusLabel).Inc()
	backendDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func ObserveHTTPRequest(method, path string, status int) {
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// PanicRecovered path - шаблон маршрута
func PanicRecovered(path string) {
	httpPanics.WithLabelValues(path).Inc()
}

func SessionOpened() {
	activeSessions.Inc()
}

func SessionClosed() {
	activeSessions.Dec()
}

func ObserveAction(actionType, result string) {
	sessionActions.WithLabelValues(actionType, result).Inc()
}

func BreathingCycleStarted() {
	practiceCycles.Inc()
}
