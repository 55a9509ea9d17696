package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "galaxycolony"
	// Subsystem for tick engine metrics
	subsystem = "engine"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalCollector is the singleton tick metrics collector
	// Set by SetGlobalCollector() when metrics are enabled
	globalCollector TickMetricsRecorder
)

// TickMetricsRecorder defines the interface for recording tick metrics.
// This interface is used by application code to record metrics without
// depending on the collector implementation.
type TickMetricsRecorder interface {
	RecordTick(durationSeconds float64, planetsProcessed, planetsSkipped, eventsEmitted int)
	RecordEvent(eventName string)
	RecordCommand(command string, success bool)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalCollector sets the global metrics collector
func SetGlobalCollector(collector TickMetricsRecorder) {
	globalCollector = collector
}

// RecordTick records a completed tick globally
func RecordTick(durationSeconds float64, planetsProcessed, planetsSkipped, eventsEmitted int) {
	if globalCollector != nil {
		globalCollector.RecordTick(durationSeconds, planetsProcessed, planetsSkipped, eventsEmitted)
	}
}

// RecordEvent records a domain event emission globally
func RecordEvent(eventName string) {
	if globalCollector != nil {
		globalCollector.RecordEvent(eventName)
	}
}

// RecordCommand records a handled command globally
func RecordCommand(command string, success bool) {
	if globalCollector != nil {
		globalCollector.RecordCommand(command, success)
	}
}
