package pipeline

import "github.com/prometheus/client_golang/prometheus"

// Collectors are the pipeline metrics. They are registered by the router.
var Collectors = []prometheus.Collector{
	runCount,
	stageDuration,
	alertCount,
	softFailureCount,
}

var runCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pipeline_runs_total",
		Help: "How many messages were processed, partitioned by result.",
	},
	[]string{"result"},
)

var stageDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "pipeline_stage_duration_seconds",
		Help: "The duration of pipeline stages in seconds.",
	},
	[]string{"stage"},
)

var alertCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pipeline_alerts_total",
		Help: "How many budget alerts were raised, partitioned by category.",
	},
	[]string{"category"},
)

var softFailureCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pipeline_soft_failures_total",
		Help: "How many stages failed without failing the run, partitioned by stage.",
	},
	[]string{"stage"},
)
