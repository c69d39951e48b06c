package transport

import "time"

// MetricsCollector receives one observation per Submit call.
// status is 0 when no response was received.
type MetricsCollector interface {
	RecordRequest(method, endpoint string, status int, attempts int, duration time.Duration)
}

// NoopMetricsCollector discards all observations
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRequest(string, string, int, int, time.Duration) {}
