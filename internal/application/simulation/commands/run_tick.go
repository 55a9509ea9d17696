package commands

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/galaxycolony-go/internal/adapters/metrics"
	"github.com/andrescamacho/galaxycolony-go/internal/application/common"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/simulation"
)

// RunTickCommand executes the tick for the slot covering Now. The scheduler
// and the admin trigger both send this; an admin run lands in the same
// idempotency slot as the scheduled run it replaces.
type RunTickCommand struct{}

// RunTickResponse summarizes the completed tick
type RunTickResponse struct {
	Slot             time.Time
	Duration         time.Duration
	PlanetsProcessed int
	PlanetsSkipped   int
	EventsEmitted    int
}

// RunTickHandler handles the RunTick command
type RunTickHandler struct {
	orchestrator *simulation.Orchestrator
	schedule     *simulation.Schedule
	events       *shared.EventQueue
	limiter      *rate.Limiter
	clock        shared.Clock
}

// NewRunTickHandler creates a new RunTickHandler. The limiter throttles
// repeated admin triggers; scheduled runs pass through it too but fire far
// below its rate.
func NewRunTickHandler(
	orchestrator *simulation.Orchestrator,
	schedule *simulation.Schedule,
	events *shared.EventQueue,
	limiter *rate.Limiter,
	clock shared.Clock,
) *RunTickHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Every(10*time.Second), 1)
	}
	return &RunTickHandler{
		orchestrator: orchestrator,
		schedule:     schedule,
		events:       events,
		limiter:      limiter,
		clock:        clock,
	}
}

// Handle executes the RunTick command
func (h *RunTickHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*RunTickCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *RunTickCommand")
	}

	if !h.limiter.Allow() {
		return nil, shared.NewBusyError("tick trigger")
	}

	slot := h.schedule.SlotFor(h.clock.Now())
	record, err := h.orchestrator.RunTick(ctx, slot)
	if err != nil {
		return nil, err
	}

	metrics.RecordTick(record.Duration.Seconds(),
		record.PlanetsProcessed, record.PlanetsSkipped, record.EventsEmitted)
	if h.events != nil {
		for _, event := range h.events.Drain() {
			metrics.RecordEvent(event.EventName())
		}
	}

	return &RunTickResponse{
		Slot:             record.Slot,
		Duration:         record.Duration,
		PlanetsProcessed: record.PlanetsProcessed,
		PlanetsSkipped:   record.PlanetsSkipped,
		EventsEmitted:    record.EventsEmitted,
	}, nil
}
