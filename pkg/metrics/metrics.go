// Package metrics содержит Prometheus-метрики HTTP-слоя и операций с аккаунтами и заметками.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Значения метки status для доменных операций.
const (
	StatusSuccess  = "success"
	StatusRejected = "rejected"
	StatusFailed   = "failed"
)

var (
	// HTTPRequestDuration - длительность HTTP-запросов в секундах.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gomemo",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms .. ~4s
		},
		[]string{"method", "route", "status"},
	)

	// AccountOperations - регистрации и входы по результату.
	AccountOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gomemo",
			Name:      "account_operations_total",
			Help:      "Total number of account operations",
		},
		[]string{"operation", "status"},
	)

	// MemoOperations - добавления и удаления заметок по результату.
	MemoOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gomemo",
			Name:      "memo_operations_total",
			Help:      "Total number of memo operations",
		},
		[]string{"operation", "status"},
	)

	// MemoCacheLookups - обращения к кэшу списков заметок.
	MemoCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gomemo",
			Name:      "memo_cache_lookups_total",
			Help:      "Memo list cache lookups by result",
		},
		[]string{"result"},
	)
)

// RecordHTTPRequest записывает длительность обработанного запроса.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// IncrementAccountOperation увеличивает счетчик операций с аккаунтом.
func IncrementAccountOperation(operation, status string) {
	AccountOperations.WithLabelValues(operation, status).Inc()
}

// IncrementMemoOperation увеличивает счетчик операций с заметками.
func IncrementMemoOperation(operation, status string) {
	MemoOperations.WithLabelValues(operation, status).Inc()
}

// RecordCacheLookup учитывает попадание или промах кэша.
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	MemoCacheLookups.WithLabelValues(result).Inc()
}
