package research

import (
	"fmt"
	"time"

	"github.com/andrescamacho/galaxycolony-go/internal/domain/resource"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
)

// PlayerTickStats is the per-player reading the progression engine needs
// from the colony layer: lab capacity, current production rates, and what
// was actually produced this tick across all owned planets.
type PlayerTickStats struct {
	LabCount              int
	ResearchPointsPerTick int64
	ProductionRates       resource.Amounts
	RealizedProduction    resource.Amounts
}

// Engine enforces the research progression rules. It is a stateless domain
// service; all state lives in Progress rows and the caller's repositories.
type Engine struct{}

// NewEngine creates a research progression engine
func NewEngine() *Engine {
	return &Engine{}
}

// Start validates and begins research for a player.
//
// Rules, in order: the type must exist; its prerequisite (if any) must be
// completed; the player's lab count must meet the requirement; no other
// research may be in progress; and threshold research additionally needs
// the named resource to be produced at a positive rate right now, because
// a zero rate could never complete.
func (e *Engine) Start(
	catalog Catalog,
	playerID shared.PlayerID,
	typeKey string,
	completed map[string]bool,
	inProgress *Progress,
	stats PlayerTickStats,
	now time.Time,
) (*Progress, error) {
	rt, err := catalog.Get(typeKey)
	if err != nil {
		return nil, err
	}
	if completed[typeKey] {
		return nil, fmt.Errorf("research %s is already completed", typeKey)
	}
	if rt.Prerequisite != "" && !completed[rt.Prerequisite] {
		return nil, shared.NewResearchPrerequisiteUnmetError(typeKey, rt.Prerequisite)
	}
	if stats.LabCount < rt.RequiredLabs {
		return nil, shared.NewInsufficientLabsError(rt.RequiredLabs, stats.LabCount)
	}
	if inProgress != nil && inProgress.IsInProgress() {
		return nil, shared.NewResearchAlreadyInProgressError(inProgress.TypeKey())
	}
	if rt.IsThreshold() {
		rate := stats.ProductionRates[rt.Threshold.Resource]
		if rate <= 0 {
			return nil, shared.NewInsufficientProductionError(rt.Threshold.Resource.String(), rt.Threshold.RatePerTick, rate)
		}
	}
	return NewProgress(playerID, typeKey, now), nil
}

// AdvanceTick applies one tick of accrual to an in-progress row.
// Point-cost research accrues the player's research point production;
// threshold research accrues the tick's realized production of the named
// resource. Returns true when the research completed this tick.
func (e *Engine) AdvanceTick(catalog Catalog, progress *Progress, stats PlayerTickStats, now time.Time) (bool, error) {
	rt, err := catalog.Get(progress.TypeKey())
	if err != nil {
		return false, err
	}
	var accrual int64
	if rt.IsThreshold() {
		accrual = stats.RealizedProduction[rt.Threshold.Resource]
	} else {
		accrual = stats.ResearchPointsPerTick
	}
	return progress.Advance(accrual, rt.Target(), now)
}

// Cancel validates that an in-progress row may be discarded. All
// accumulated progress is lost; the caller surfaces a confirmation warning
// before invoking this.
func (e *Engine) Cancel(progress *Progress) error {
	if progress == nil || !progress.IsInProgress() {
		return fmt.Errorf("no research in progress to cancel")
	}
	return nil
}

// Status is the player-facing availability annotation for one research type
type Status string

const (
	StatusCompleted  Status = "completed"
	StatusInProgress Status = "in_progress"
	StatusAvailable  Status = "available"
	StatusLocked     Status = "locked"
)

// StatusFor annotates a research type for a player's catalog view
func (e *Engine) StatusFor(rt *ResearchType, completed map[string]bool, inProgress *Progress, labCount int) Status {
	if completed[rt.Key] {
		return StatusCompleted
	}
	if inProgress != nil && inProgress.IsInProgress() && inProgress.TypeKey() == rt.Key {
		return StatusInProgress
	}
	if rt.Prerequisite != "" && !completed[rt.Prerequisite] {
		return StatusLocked
	}
	if labCount < rt.RequiredLabs {
		return StatusLocked
	}
	return StatusAvailable
}
