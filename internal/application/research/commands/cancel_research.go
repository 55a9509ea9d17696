package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/galaxycolony-go/internal/application/common"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/research"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/simulation"
)

// CancelResearchCommand abandons the player's in-progress research.
// All accumulated progress is forfeited; callers confirm with the player
// before sending this.
type CancelResearchCommand struct {
	PlayerID int
}

// CancelResearchResponse reports what was abandoned
type CancelResearchResponse struct {
	ResearchType string
	Forfeited    int64
}

// CancelResearchHandler handles the CancelResearch command
type CancelResearchHandler struct {
	progressRepo research.ProgressRepository
	engine       *research.Engine
	locks        *simulation.Locks
	lockTimeout  time.Duration
}

// NewCancelResearchHandler creates a new CancelResearchHandler
func NewCancelResearchHandler(
	progressRepo research.ProgressRepository,
	locks *simulation.Locks,
	lockTimeout time.Duration,
) *CancelResearchHandler {
	return &CancelResearchHandler{
		progressRepo: progressRepo,
		engine:       research.NewEngine(),
		locks:        locks,
		lockTimeout:  lockTimeout,
	}
}

// Handle executes the CancelResearch command
func (h *CancelResearchHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*CancelResearchCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CancelResearchCommand")
	}

	playerID, err := shared.NewPlayerID(cmd.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID: %w", err)
	}

	release, err := h.locks.AcquirePlayer(playerID, h.lockTimeout)
	if err != nil {
		return nil, err
	}
	defer release()

	progress, err := h.progressRepo.FindInProgress(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("loading research in progress: %w", err)
	}
	if err := h.engine.Cancel(progress); err != nil {
		return nil, err
	}
	if err := h.progressRepo.Delete(ctx, playerID, progress.TypeKey()); err != nil {
		return nil, fmt.Errorf("deleting research progress: %w", err)
	}

	return &CancelResearchResponse{
		ResearchType: progress.TypeKey(),
		Forfeited:    progress.Accumulated(),
	}, nil
}
