package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/galaxycolony-go/internal/application/common"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/colony"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/research"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/simulation"
)

// StartConstructionCommand commissions a new building on a planet field
type StartConstructionCommand struct {
	PlanetID     int
	BuildingType string
	Field        int
}

// StartConstructionResponse reports the commissioned building
type StartConstructionResponse struct {
	BuildingID  string
	CompletesAt time.Time
}

// StartConstructionHandler handles the StartConstruction command
type StartConstructionHandler struct {
	planetRepo   colony.PlanetRepository
	progressRepo research.ProgressRepository
	catalog      colony.Catalog
	locks        *simulation.Locks
	lockTimeout  time.Duration
	clock        shared.Clock
}

// NewStartConstructionHandler creates a new StartConstructionHandler
func NewStartConstructionHandler(
	planetRepo colony.PlanetRepository,
	progressRepo research.ProgressRepository,
	catalog colony.Catalog,
	locks *simulation.Locks,
	lockTimeout time.Duration,
	clock shared.Clock,
) *StartConstructionHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &StartConstructionHandler{
		planetRepo:   planetRepo,
		progressRepo: progressRepo,
		catalog:      catalog,
		locks:        locks,
		lockTimeout:  lockTimeout,
		clock:        clock,
	}
}

// Handle executes the StartConstruction command
func (h *StartConstructionHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*StartConstructionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *StartConstructionCommand")
	}

	planetID, err := shared.NewPlanetID(cmd.PlanetID)
	if err != nil {
		return nil, fmt.Errorf("invalid planet ID: %w", err)
	}
	bt, err := h.catalog.Get(cmd.BuildingType)
	if err != nil {
		return nil, err
	}

	release, err := h.locks.AcquirePlanet(planetID, h.lockTimeout)
	if err != nil {
		return nil, err
	}
	defer release()

	planet, err := h.planetRepo.FindByID(ctx, planetID)
	if err != nil {
		return nil, err
	}

	if bt.RequiresResearch != "" {
		completed, err := h.progressRepo.CompletedKeys(ctx, planet.OwnerID())
		if err != nil {
			return nil, fmt.Errorf("checking research unlocks: %w", err)
		}
		if !completed[bt.RequiresResearch] {
			return nil, shared.NewResearchPrerequisiteUnmetError(bt.Key, bt.RequiresResearch)
		}
	}

	now := h.clock.Now()
	building, err := planet.Commission(bt, cmd.Field, now)
	if err != nil {
		return nil, err
	}

	if err := h.planetRepo.Save(ctx, planet); err != nil {
		return nil, fmt.Errorf("saving planet: %w", err)
	}

	return &StartConstructionResponse{
		BuildingID:  building.ID(),
		CompletesAt: now.Add(bt.BuildTime),
	}, nil
}
