package shared

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is a domain event emitted during a tick. The orchestrator appends
// events to an EventQueue; the transport collaborator drains and relays
// them. Simulation correctness never depends on delivery.
type Event interface {
	EventID() string
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent carries the fields common to all domain events
type BaseEvent struct {
	ID   string
	Name string
	At   time.Time
}

func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) EventName() string     { return e.Name }
func (e BaseEvent) OccurredAt() time.Time { return e.At }

func newBaseEvent(name string, at time.Time) BaseEvent {
	return BaseEvent{ID: uuid.NewString(), Name: name, At: at}
}

// BuildingCompletedEvent fires when a building finishes construction
type BuildingCompletedEvent struct {
	BaseEvent
	PlanetID   PlanetID
	BuildingID string
	Building   string
}

func NewBuildingCompletedEvent(at time.Time, planetID PlanetID, buildingID, building string) *BuildingCompletedEvent {
	return &BuildingCompletedEvent{
		BaseEvent:  newBaseEvent("building.completed", at),
		PlanetID:   planetID,
		BuildingID: buildingID,
		Building:   building,
	}
}

// ResourcesUpdatedEvent carries a planet's post-tick balances
type ResourcesUpdatedEvent struct {
	BaseEvent
	PlanetID PlanetID
	Balances map[string]int64
	Energy   int64
}

func NewResourcesUpdatedEvent(at time.Time, planetID PlanetID, balances map[string]int64, energy int64) *ResourcesUpdatedEvent {
	return &ResourcesUpdatedEvent{
		BaseEvent: newBaseEvent("resources.updated", at),
		PlanetID:  planetID,
		Balances:  balances,
		Energy:    energy,
	}
}

// ResearchCompletedEvent fires when a player's research reaches its target
type ResearchCompletedEvent struct {
	BaseEvent
	PlayerID     PlayerID
	ResearchType string
}

func NewResearchCompletedEvent(at time.Time, playerID PlayerID, researchType string) *ResearchCompletedEvent {
	return &ResearchCompletedEvent{
		BaseEvent:    newBaseEvent("research.completed", at),
		PlayerID:     playerID,
		ResearchType: researchType,
	}
}

// ResearchProgressedEvent reports accumulated progress toward the target
type ResearchProgressedEvent struct {
	BaseEvent
	PlayerID     PlayerID
	ResearchType string
	Progress     int64
	Target       int64
}

func NewResearchProgressedEvent(at time.Time, playerID PlayerID, researchType string, progress, target int64) *ResearchProgressedEvent {
	return &ResearchProgressedEvent{
		BaseEvent:    newBaseEvent("research.progressed", at),
		PlayerID:     playerID,
		ResearchType: researchType,
		Progress:     progress,
		Target:       target,
	}
}

// EventQueue is the explicit per-tick event buffer. Appending never blocks;
// the consumer drains the accumulated batch after the tick finishes.
type EventQueue struct {
	mu     sync.Mutex
	events []Event
}

// NewEventQueue creates an empty event queue
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Append adds an event to the queue
func (q *EventQueue) Append(event Event) {
	if event == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, event)
}

// Drain returns all buffered events and empties the queue
func (q *EventQueue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	drained := q.events
	q.events = nil
	return drained
}

// Len returns the number of buffered events
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
