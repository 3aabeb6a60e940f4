// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommandsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voice_commands_processed_total",
			Help: "Total number of voice commands processed, by resolved action kind",
		},
		[]string{"accion"},
	)

	CommandIntents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voice_command_intents_total",
			Help: "Total number of voice commands by matched intent",
		},
		[]string{"intent"},
	)

	CommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "voice_command_duration_seconds",
			Help: "Duration of voice command resolution in seconds",
		},
		[]string{"accion"},
	)

	CategoryRulesLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "interpreter_category_rules",
			Help: "Number of category rules currently installed in the interpreter",
		},
	)

	ReportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_generated_total",
			Help: "Total number of reports generated, by report id and format",
		},
		[]string{"report_id", "format"},
	)

	ForecastRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecast_runs_total",
			Help: "Total number of forecasting job runs, by outcome",
		},
		[]string{"status"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Total number of notifications dispatched, by channel and outcome",
		},
		[]string{"channel", "status"},
	)
)
