package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/galaxycolony-go/internal/application/common"
)

// InstrumentedMediator wraps a mediator and records execution metrics for
// every command and query dispatched through it
type InstrumentedMediator struct {
	inner     common.Mediator
	collector TickMetricsRecorder
	durations commandDurationObserver
}

type commandDurationObserver interface {
	ObserveCommandDuration(command string, seconds float64)
}

// NewInstrumentedMediator wraps the given mediator. A nil collector
// disables recording and dispatch passes straight through.
func NewInstrumentedMediator(inner common.Mediator, collector TickMetricsRecorder) *InstrumentedMediator {
	m := &InstrumentedMediator{inner: inner, collector: collector}
	if observer, ok := collector.(commandDurationObserver); ok {
		m.durations = observer
	}
	return m
}

// Register delegates to the wrapped mediator
func (m *InstrumentedMediator) Register(requestType reflect.Type, handler common.RequestHandler) error {
	return m.inner.Register(requestType, handler)
}

// Send dispatches the request and records its outcome and duration
func (m *InstrumentedMediator) Send(ctx context.Context, request common.Request) (common.Response, error) {
	if m.collector == nil {
		return m.inner.Send(ctx, request)
	}

	commandName := extractCommandName(request)
	start := time.Now()

	response, err := m.inner.Send(ctx, request)

	m.collector.RecordCommand(commandName, err == nil)
	if m.durations != nil {
		m.durations.ObserveCommandDuration(commandName, time.Since(start).Seconds())
	}
	return response, err
}

// extractCommandName extracts a clean command name from the request.
// Example: "*commands.StartConstructionCommand" → "StartConstructionCommand"
func extractCommandName(request common.Request) string {
	if request == nil {
		return "UnknownCommand"
	}
	fullName := reflect.TypeOf(request).String()
	fullName = strings.TrimPrefix(fullName, "*")
	if idx := strings.LastIndex(fullName, "."); idx >= 0 {
		return fullName[idx+1:]
	}
	return fullName
}
