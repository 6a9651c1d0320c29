package kadmin

import (
	"time"

	"github.com/rcrowley/go-metrics"
)

// MetricsRegistry is the narrow seam over rcrowley/go-metrics the driver
// reports through, grounded on consumer.go's metricRegistry field (the
// teacher registers per-partition-consumer counters the same way this
// registers per-admin-API counters).
type MetricsRegistry = metrics.Registry

// NewMetricsRegistry returns a fresh, unshared registry.
func NewMetricsRegistry() MetricsRegistry {
	return metrics.NewRegistry()
}

// recordSubmit increments the per-API submission counter, same idiom as
// the teacher's "<api>-rate" meters.
func recordSubmit(reg MetricsRegistry, api string) {
	if reg == nil {
		return
	}
	metrics.GetOrRegisterCounter("kadmin-admin-requests-"+api, reg).Inc(1)
}

// recordLatency records the time from submission to completion, mirroring
// the teacher's use of metrics.Timer for consume-request latency.
func recordLatency(reg MetricsRegistry, api string, d time.Duration) {
	if reg == nil {
		return
	}
	metrics.GetOrRegisterTimer("kadmin-admin-latency-"+api, reg).Update(d)
}
