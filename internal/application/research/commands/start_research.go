package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/galaxycolony-go/internal/application/common"
	appresearch "github.com/andrescamacho/galaxycolony-go/internal/application/research"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/colony"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/research"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/simulation"
)

// StartResearchCommand begins a research project for a player
type StartResearchCommand struct {
	PlayerID     int
	ResearchType string
}

// StartResearchResponse reports the started project and its target
type StartResearchResponse struct {
	ResearchType string
	Target       int64
}

// StartResearchHandler handles the StartResearch command
type StartResearchHandler struct {
	planetRepo      colony.PlanetRepository
	progressRepo    research.ProgressRepository
	buildingCatalog colony.Catalog
	researchCatalog research.Catalog
	engine          *research.Engine
	locks           *simulation.Locks
	lockTimeout     time.Duration
	clock           shared.Clock
}

// NewStartResearchHandler creates a new StartResearchHandler
func NewStartResearchHandler(
	planetRepo colony.PlanetRepository,
	progressRepo research.ProgressRepository,
	buildingCatalog colony.Catalog,
	researchCatalog research.Catalog,
	locks *simulation.Locks,
	lockTimeout time.Duration,
	clock shared.Clock,
) *StartResearchHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &StartResearchHandler{
		planetRepo:      planetRepo,
		progressRepo:    progressRepo,
		buildingCatalog: buildingCatalog,
		researchCatalog: researchCatalog,
		engine:          research.NewEngine(),
		locks:           locks,
		lockTimeout:     lockTimeout,
		clock:           clock,
	}
}

// Handle executes the StartResearch command
func (h *StartResearchHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*StartResearchCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *StartResearchCommand")
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

	completed, err := h.progressRepo.CompletedKeys(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("loading completed research: %w", err)
	}
	inProgress, err := h.progressRepo.FindInProgress(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("loading research in progress: %w", err)
	}
	stats, err := appresearch.GatherPlayerStats(ctx, h.planetRepo, h.buildingCatalog, playerID)
	if err != nil {
		return nil, fmt.Errorf("gathering player stats: %w", err)
	}

	progress, err := h.engine.Start(h.researchCatalog, playerID, cmd.ResearchType, completed, inProgress, stats, h.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := h.progressRepo.Save(ctx, progress); err != nil {
		return nil, fmt.Errorf("saving research progress: %w", err)
	}

	rt, err := h.researchCatalog.Get(cmd.ResearchType)
	if err != nil {
		return nil, err
	}
	return &StartResearchResponse{
		ResearchType: cmd.ResearchType,
		Target:       rt.Target(),
	}, nil
}
