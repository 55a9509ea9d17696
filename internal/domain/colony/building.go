package colony

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
)

// Building is a concrete, leveled building instance occupying one field on
// one planet. Lifecycle transitions are driven by the construction state
// machine during ticks; the online flag is recomputed by the energy balance
// pass each tick and is meaningful only for Active buildings.
type Building struct {
	id            string
	planetID      shared.PlanetID
	field         int
	typeKey       string
	level         int
	pendingLevel  int
	state         ConstructionState
	commissionSeq int64
	startedAt     time.Time
	completedAt   *time.Time
	online        bool
}

// NewBuilding commissions a new building instance at level 1 in
// UnderConstruction state. Cost and precondition checks are the planet
// aggregate's responsibility.
func NewBuilding(planetID shared.PlanetID, field int, typeKey string, commissionSeq int64, now time.Time) *Building {
	return &Building{
		id:            uuid.NewString(),
		planetID:      planetID,
		field:         field,
		typeKey:       typeKey,
		level:         1,
		pendingLevel:  1,
		state:         StateUnderConstruction,
		commissionSeq: commissionSeq,
		startedAt:     now,
	}
}

// ReconstructBuilding restores a building from persistence, bypassing
// commissioning rules
func ReconstructBuilding(
	id string,
	planetID shared.PlanetID,
	field int,
	typeKey string,
	level int,
	pendingLevel int,
	state ConstructionState,
	commissionSeq int64,
	startedAt time.Time,
	completedAt *time.Time,
	online bool,
) *Building {
	if pendingLevel < level {
		pendingLevel = level
	}
	return &Building{
		id:            id,
		planetID:      planetID,
		field:         field,
		typeKey:       typeKey,
		level:         level,
		pendingLevel:  pendingLevel,
		state:         state,
		commissionSeq: commissionSeq,
		startedAt:     startedAt,
		completedAt:   completedAt,
		online:        online,
	}
}

// Getters

func (b *Building) ID() string                       { return b.id }
func (b *Building) PlanetID() shared.PlanetID        { return b.planetID }
func (b *Building) Field() int                       { return b.field }
func (b *Building) TypeKey() string                  { return b.typeKey }
func (b *Building) Level() int                       { return b.level }
func (b *Building) PendingLevel() int                { return b.pendingLevel }
func (b *Building) State() ConstructionState         { return b.state }
func (b *Building) CommissionSeq() int64             { return b.commissionSeq }
func (b *Building) ConstructionStartedAt() time.Time { return b.startedAt }
func (b *Building) CompletedAt() *time.Time          { return b.completedAt }

// IsActive reports whether construction has finished and the building has
// not been demolished
func (b *Building) IsActive() bool {
	return b.state == StateActive
}

// IsOnline reports whether the building is both active and currently
// powered; only online buildings produce and consume
func (b *Building) IsOnline() bool {
	return b.state == StateActive && b.online
}

// SetOnline is called by the energy balance pass after the shedding
// decision for the tick
func (b *Building) SetOnline(online bool) {
	b.online = online
}

// CompleteIfDue fires the UnderConstruction → Active transition when the
// build duration has elapsed. Returns true if the transition fired this
// call. Completed buildings join the energy balance from the next tick
// onward, because the energy pass runs before the construction pass.
func (b *Building) CompleteIfDue(now time.Time, buildTime time.Duration) bool {
	if b.state != StateUnderConstruction {
		return false
	}
	if now.Sub(b.startedAt) < buildTime {
		return false
	}
	completed := now
	b.state = StateActive
	b.completedAt = &completed
	b.level = b.pendingLevel
	return true
}

// StartUpgrade re-enters UnderConstruction to raise the level by one. The
// building contributes nothing while the upgrade is in progress.
func (b *Building) StartUpgrade(now time.Time) error {
	if b.state != StateActive {
		return fmt.Errorf("cannot upgrade building in %s state", b.state)
	}
	b.state = StateUnderConstruction
	b.pendingLevel = b.level + 1
	b.startedAt = now
	b.completedAt = nil
	b.online = false
	return nil
}

// Demolish transitions to the terminal Demolished state. Valid from both
// UnderConstruction and Active; the refund rate is identical for both.
func (b *Building) Demolish() error {
	if b.state == StateDemolished {
		return fmt.Errorf("building %s is already demolished", b.id)
	}
	b.state = StateDemolished
	b.online = false
	return nil
}
