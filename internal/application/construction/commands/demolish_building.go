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

// DemolishBuildingCommand tears down a building, refunding half its cost
type DemolishBuildingCommand struct {
	PlanetID   int
	BuildingID string
}

// DemolishBuildingResponse reports the refunded materials
type DemolishBuildingResponse struct {
	Refund map[string]int64
}

// DemolishBuildingHandler handles the DemolishBuilding command
type DemolishBuildingHandler struct {
	planetRepo  colony.PlanetRepository
	catalog     colony.Catalog
	locks       *simulation.Locks
	lockTimeout time.Duration
}

// NewDemolishBuildingHandler creates a new DemolishBuildingHandler
func NewDemolishBuildingHandler(
	planetRepo colony.PlanetRepository,
	catalog colony.Catalog,
	locks *simulation.Locks,
	lockTimeout time.Duration,
) *DemolishBuildingHandler {
	return &DemolishBuildingHandler{
		planetRepo:  planetRepo,
		catalog:     catalog,
		locks:       locks,
		lockTimeout: lockTimeout,
	}
}

// Handle executes the DemolishBuilding command
func (h *DemolishBuildingHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*DemolishBuildingCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DemolishBuildingCommand")
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

	refund, err := planet.Demolish(h.catalog, cmd.BuildingID)
	if err != nil {
		return nil, err
	}

	if err := h.planetRepo.Save(ctx, planet); err != nil {
		return nil, fmt.Errorf("saving planet: %w", err)
	}

	return &DemolishBuildingResponse{Refund: refund.StringMap()}, nil
}
