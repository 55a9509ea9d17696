package simulation

import (
	"context"
	"time"
)

// TickRecord summarizes one executed tick slot
type TickRecord struct {
	Slot             time.Time
	StartedAt        time.Time
	Duration         time.Duration
	PlanetsProcessed int
	PlanetsSkipped   int
	EventsEmitted    int
}

// TickLog is the persistence port backing tick idempotency. Begin must
// atomically claim a slot: a second Begin for the same slot returns
// TickAlreadyRanError, making double-invocation within a scheduled slot a
// rejected no-op.
type TickLog interface {
	Begin(ctx context.Context, slot time.Time) error
	Complete(ctx context.Context, record TickRecord) error
	LastCompleted(ctx context.Context) (*TickRecord, error)
}
