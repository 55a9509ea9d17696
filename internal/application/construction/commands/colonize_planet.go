package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/galaxycolony-go/internal/application/common"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/colony"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/resource"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
)

// ColonySettings are the starting conditions for a new colony
type ColonySettings struct {
	FieldCount       int
	StorageCapacity  int64
	EnergyCapacity   int64
	StarterCredits   int64
	StarterDurastahl int64
	StarterCrystal   int64
	StarterEnergy    int64
}

// DefaultColonySettings returns the standard new-colony loadout, sized so
// the starter balances cover a command center and a first production chain
func DefaultColonySettings() ColonySettings {
	return ColonySettings{
		FieldCount:       20,
		StorageCapacity:  10000,
		EnergyCapacity:   1000,
		StarterCredits:   3000,
		StarterDurastahl: 2000,
		StarterCrystal:   500,
		StarterEnergy:    200,
	}
}

// ColonizePlanetCommand creates a new colony for a player
type ColonizePlanetCommand struct {
	PlayerID int
	Name     string
}

// ColonizePlanetResponse reports the new colony and its command center
type ColonizePlanetResponse struct {
	PlanetID        int
	CommandCenterID string
}

// ColonizePlanetHandler handles the ColonizePlanet command
type ColonizePlanetHandler struct {
	planetRepo colony.PlanetRepository
	catalog    colony.Catalog
	settings   ColonySettings
	clock      shared.Clock
}

// NewColonizePlanetHandler creates a new ColonizePlanetHandler
func NewColonizePlanetHandler(
	planetRepo colony.PlanetRepository,
	catalog colony.Catalog,
	settings ColonySettings,
	clock shared.Clock,
) *ColonizePlanetHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &ColonizePlanetHandler{
		planetRepo: planetRepo,
		catalog:    catalog,
		settings:   settings,
		clock:      clock,
	}
}

// Handle executes the ColonizePlanet command
func (h *ColonizePlanetHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ColonizePlanetCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ColonizePlanetCommand")
	}

	playerID, err := shared.NewPlayerID(cmd.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID: %w", err)
	}
	if cmd.Name == "" {
		return nil, shared.NewValidationError("name", "colony name cannot be empty")
	}

	planetID, err := h.planetRepo.NextIdentity(ctx)
	if err != nil {
		return nil, fmt.Errorf("reserving planet identity: %w", err)
	}

	now := h.clock.Now()
	planet := colony.NewPlanet(
		planetID,
		playerID,
		cmd.Name,
		h.settings.FieldCount,
		h.settings.StorageCapacity,
		h.settings.EnergyCapacity,
		resource.Amounts{
			resource.TypeCredits:   h.settings.StarterCredits,
			resource.TypeDurastahl: h.settings.StarterDurastahl,
			resource.TypeCrystal:   h.settings.StarterCrystal,
		},
	)
	planet.Stockpile().CreditEnergy(h.settings.StarterEnergy)

	// Every colony starts by raising its command center on field 0
	commandCenter, err := h.catalog.Get(colony.BuildingCommandCenter)
	if err != nil {
		return nil, fmt.Errorf("loading command center type: %w", err)
	}
	building, err := planet.Commission(commandCenter, 0, now)
	if err != nil {
		return nil, err
	}

	if err := h.planetRepo.Save(ctx, planet); err != nil {
		return nil, fmt.Errorf("saving colony: %w", err)
	}

	return &ColonizePlanetResponse{
		PlanetID:        planetID.Value(),
		CommandCenterID: building.ID(),
	}, nil
}
