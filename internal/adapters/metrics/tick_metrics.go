package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// TickMetricsCollector records tick engine metrics
type TickMetricsCollector struct {
	tickDuration     prometheus.Histogram
	planetsProcessed prometheus.Counter
	planetsSkipped   prometheus.Counter
	eventsEmitted    *prometheus.CounterVec
	commandsTotal    *prometheus.CounterVec
	commandDuration  *prometheus.HistogramVec
	lastTickPlanets  prometheus.Gauge
}

// NewTickMetricsCollector creates a new tick metrics collector
func NewTickMetricsCollector() *TickMetricsCollector {
	return &TickMetricsCollector{
		tickDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "tick_duration_seconds",
				Help:      "Tick execution duration distribution",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),
		planetsProcessed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "planets_processed_total",
				Help:      "Total number of planets processed across all ticks",
			},
		),
		planetsSkipped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "planets_skipped_total",
				Help:      "Total number of planets skipped for data-integrity faults",
			},
		),
		eventsEmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "events_emitted_total",
				Help:      "Total number of domain events emitted by event name",
			},
			[]string{"event"},
		),
		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "commands_total",
				Help:      "Total number of handled commands by name and outcome",
			},
			[]string{"command", "success"},
		),
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "command_duration_seconds",
				Help:      "Command execution duration distribution by command name",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"command"},
		),
		lastTickPlanets: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "last_tick_planets",
				Help:      "Number of planets processed by the most recent tick",
			},
		),
	}
}

// Register registers all collectors with the given registry
func (c *TickMetricsCollector) Register(registry *prometheus.Registry) error {
	collectors := []prometheus.Collector{
		c.tickDuration,
		c.planetsProcessed,
		c.planetsSkipped,
		c.eventsEmitted,
		c.commandsTotal,
		c.commandDuration,
		c.lastTickPlanets,
	}
	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// RecordTick records a completed tick
func (c *TickMetricsCollector) RecordTick(durationSeconds float64, planetsProcessed, planetsSkipped, eventsEmitted int) {
	c.tickDuration.Observe(durationSeconds)
	c.planetsProcessed.Add(float64(planetsProcessed))
	c.planetsSkipped.Add(float64(planetsSkipped))
	c.lastTickPlanets.Set(float64(planetsProcessed))
}

// RecordEvent records one domain event emission
func (c *TickMetricsCollector) RecordEvent(eventName string) {
	c.eventsEmitted.WithLabelValues(eventName).Inc()
}

// RecordCommand records a handled command
func (c *TickMetricsCollector) RecordCommand(command string, success bool) {
	c.commandsTotal.WithLabelValues(command, strconv.FormatBool(success)).Inc()
}

// ObserveCommandDuration records one command execution duration
func (c *TickMetricsCollector) ObserveCommandDuration(command string, seconds float64) {
	c.commandDuration.WithLabelValues(command).Observe(seconds)
}
