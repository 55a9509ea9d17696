package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/galaxycolony-go/internal/application/common"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/colony"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/simulation"
)

// UpgradeBuildingCommand starts a level upgrade on an existing building
type UpgradeBuildingCommand struct {
	PlanetID   int
	BuildingID string
}

// UpgradeBuildingResponse reports the pending level and its completion time
type UpgradeBuildingResponse struct {
	BuildingID   string
	PendingLevel int
	CompletesAt  time.Time
}

// UpgradeBuildingHandler handles the UpgradeBuilding command
type UpgradeBuildingHandler struct {
	planetRepo  colony.PlanetRepository
	catalog     colony.Catalog
	locks       *simulation.Locks
	lockTimeout time.Duration
	clock       shared.Clock
}

// NewUpgradeBuildingHandler creates a new UpgradeBuildingHandler
func NewUpgradeBuildingHandler(
	planetRepo colony.PlanetRepository,
	catalog colony.Catalog,
	locks *simulation.Locks,
	lockTimeout time.Duration,
	clock shared.Clock,
) *UpgradeBuildingHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &UpgradeBuildingHandler{
		planetRepo:  planetRepo,
		catalog:     catalog,
		locks:       locks,
		lockTimeout: lockTimeout,
		clock:       clock,
	}
}

// Handle executes the UpgradeBuilding command
func (h *UpgradeBuildingHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*UpgradeBuildingCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UpgradeBuildingCommand")
	}

	planetID, err := shared.NewPlanetID(cmd.PlanetID)
	if err != nil {
		return nil, fmt.Errorf("invalid planet ID: %w", err)
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
	building, err := planet.FindBuilding(cmd.BuildingID)
	if err != nil {
		return nil, err
	}
	bt, err := h.catalog.Get(building.TypeKey())
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	if _, err := planet.CommissionUpgrade(bt, cmd.BuildingID, now); err != nil {
		return nil, err
	}

	if err := h.planetRepo.Save(ctx, planet); err != nil {
		return nil, fmt.Errorf("saving planet: %w", err)
	}

	return &UpgradeBuildingResponse{
		BuildingID:   building.ID(),
		PendingLevel: building.PendingLevel(),
		CompletesAt:  now.Add(bt.BuildTime),
	}, nil
}
