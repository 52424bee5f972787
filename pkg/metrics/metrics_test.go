package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"gomemo/pkg/metrics"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(metrics.MemoOperations.WithLabelValues("add", metrics.StatusSuccess))
	metrics.IncrementMemoOperation("add", metrics.StatusSuccess)
	after := testutil.ToFloat64(metrics.MemoOperations.WithLabelValues("add", metrics.StatusSuccess))
	assert.InDelta(t, 1, after-before, 0.0001)

	before = testutil.ToFloat64(metrics.AccountOperations.WithLabelValues("login", metrics.StatusRejected))
	metrics.IncrementAccountOperation("login", metrics.StatusRejected)
	after = testutil.ToFloat64(metrics.AccountOperations.WithLabelValues("login", metrics.StatusRejected))
	assert.InDelta(t, 1, after-before, 0.0001)

	before = testutil.ToFloat64(metrics.MemoCacheLookups.WithLabelValues("hit"))
	metrics.RecordCacheLookup(true)
	after = testutil.ToFloat64(metrics.MemoCacheLookups.WithLabelValues("hit"))
	assert.InDelta(t, 1, after-before, 0.0001)
}

func TestRecordHTTPRequest(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.RecordHTTPRequest("POST", "/users/login", 200, 15*time.Millisecond)
	})
	assert.Positive(t, testutil.CollectAndCount(metrics.HTTPRequestDuration))
}
