package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector exported by this process. It is separate from
// the prometheus default registry so tests and embedders get a clean view.
var Registry = prometheus.NewRegistry()

var (
	toolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "multiagent_tool_calls_total",
			Help: "Total number of tool calls",
		},
		[]string{"tool", "status"},
	)

	toolCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "multiagent_tool_call_duration_seconds",
			Help:    "Tool call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tool"},
	)

	turnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "multiagent_turns_total",
			Help: "Total number of conversation turns",
		},
		[]string{"agent", "status"},
	)

	turnDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "multiagent_turn_duration_seconds",
			Help:    "Conversation turn duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"agent"},
	)
)

func init() {
	Registry.MustRegister(
		toolCallsTotal,
		toolCallDuration,
		turnsTotal,
		turnDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler returns an HTTP handler exposing Registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// RecordToolCall records one tool invocation. status is the tool's own result
// status ("success" or "error"), not whether the Go call failed.
func RecordToolCall(tool, status string, duration time.Duration) {
	toolCallsTotal.WithLabelValues(tool, status).Inc()
	toolCallDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// RecordTurn records one completed or failed conversation turn.
func RecordTurn(agent, status string, duration time.Duration) {
	turnsTotal.WithLabelValues(agent, status).Inc()
	turnDuration.WithLabelValues(agent).Observe(duration.Seconds())
}
