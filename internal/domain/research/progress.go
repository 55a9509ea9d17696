package research

import (
	"fmt"
	"time"

	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
)

// ProgressState is the lifecycle state of a player's research attempt
type ProgressState string

const (
	ProgressNotStarted ProgressState = "NOT_STARTED"
	ProgressInProgress ProgressState = "IN_PROGRESS"
	ProgressCompleted  ProgressState = "COMPLETED"
)

// String returns the string representation of the state
func (s ProgressState) String() string {
	return string(s)
}

// IsValid checks if the state is known
func (s ProgressState) IsValid() bool {
	switch s {
	case ProgressNotStarted, ProgressInProgress, ProgressCompleted:
		return true
	default:
		return false
	}
}

// Progress tracks one player's accumulation toward one research type.
// A player has at most one InProgress row at a time; completed rows are
// immutable.
type Progress struct {
	playerID    shared.PlayerID
	typeKey     string
	state       ProgressState
	accumulated int64
	startedAt   time.Time
	completedAt *time.Time
}

// NewProgress creates an InProgress row at zero accumulation. Start-time
// validation (prerequisites, labs, concurrency, production gates) is the
// engine's responsibility.
func NewProgress(playerID shared.PlayerID, typeKey string, now time.Time) *Progress {
	return &Progress{
		playerID:  playerID,
		typeKey:   typeKey,
		state:     ProgressInProgress,
		startedAt: now,
	}
}

// ReconstructProgress restores a row from persistence
func ReconstructProgress(
	playerID shared.PlayerID,
	typeKey string,
	state ProgressState,
	accumulated int64,
	startedAt time.Time,
	completedAt *time.Time,
) *Progress {
	return &Progress{
		playerID:    playerID,
		typeKey:     typeKey,
		state:       state,
		accumulated: accumulated,
		startedAt:   startedAt,
		completedAt: completedAt,
	}
}

// Getters

func (p *Progress) PlayerID() shared.PlayerID { return p.playerID }
func (p *Progress) TypeKey() string           { return p.typeKey }
func (p *Progress) State() ProgressState      { return p.state }
func (p *Progress) Accumulated() int64        { return p.accumulated }
func (p *Progress) StartedAt() time.Time      { return p.startedAt }
func (p *Progress) CompletedAt() *time.Time   { return p.completedAt }

// IsInProgress reports whether the row is still accumulating
func (p *Progress) IsInProgress() bool {
	return p.state == ProgressInProgress
}

// Advance adds one tick's realized accrual and completes the research when
// the target is reached. Returns true when the completion transition fired
// this call. Completed rows never advance again.
func (p *Progress) Advance(amount int64, target int64, now time.Time) (bool, error) {
	if p.state != ProgressInProgress {
		return false, fmt.Errorf("cannot advance research in %s state", p.state)
	}
	if amount < 0 {
		return false, fmt.Errorf("research accrual must be non-negative, got %d", amount)
	}
	p.accumulated += amount
	if p.accumulated >= target {
		completed := now
		p.state = ProgressCompleted
		p.completedAt = &completed
		return true, nil
	}
	return false, nil
}
