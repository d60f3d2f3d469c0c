package metrics

import (
	"time"
)

// FailureKind classifies why a controller call failed.
type FailureKind string

const (
	FailureConnection FailureKind = "connection"
	FailureHTTP       FailureKind = "http"
	FailureController FailureKind = "controller"
)

// Recorder provides high-level methods for recording metrics.
type Recorder struct{}

var defaultRecorder = &Recorder{}

// DefaultRecorder returns the singleton recorder instance.
func DefaultRecorder() *Recorder {
	return defaultRecorder
}

// RecordRPC records one controller round-trip.
func (r *Recorder) RecordRPC(method, status string, duration time.Duration) {
	rpcRequests.WithLabelValues(method).Inc()
	rpcDuration.WithLabelValues(method, status).Observe(duration.Seconds())
}

// RecordRPCFailure records a failed controller call with classification.
func (r *Recorder) RecordRPCFailure(method string, kind FailureKind) {
	rpcFailures.WithLabelValues(method, string(kind)).Inc()
}

// RecordToolCall records an MCP tool execution.
func (r *Recorder) RecordToolCall(tool, status string) {
	toolCalls.WithLabelValues(tool, status).Inc()
}

// RecordMemoSynthesis records one network memo render.
func (r *Recorder) RecordMemoSynthesis() {
	memoSyntheses.Inc()
}

// SetSessionSizes updates the session history gauges.
func (r *Recorder) SetSessionSizes(configs, insights int) {
	sessionConfigs.Set(float64(configs))
	sessionInsights.Set(float64(insights))
}
