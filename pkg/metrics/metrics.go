package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// --- Controller RPC Metrics ---
	rpcRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pox_rpc_requests_total",
		Help: "Total JSON-RPC requests sent to the POX controller.",
	}, []string{"method"})

	rpcDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pox_rpc_request_duration_seconds",
		Help:    "Duration of POX controller round-trips.",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
	}, []string{"method", "status"})

	rpcFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pox_rpc_failures_total",
		Help: "Total failed controller calls by failure kind.",
	}, []string{"method", "kind"})

	// --- Tool Usage Metrics ---
	toolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pox_tool_calls_total",
		Help: "Total MCP tool executions.",
	}, []string{"tool", "status"})

	// --- Session & Memo Metrics ---
	memoSyntheses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pox_memo_syntheses_total",
		Help: "Total network memo renders.",
	})

	sessionConfigs = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pox_session_configs",
		Help: "Applied flow configurations held in session history.",
	})

	sessionInsights = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pox_session_insights",
		Help: "Insights held in session history.",
	})
)
