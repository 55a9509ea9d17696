package queries

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

// DashboardSummaryQuery assembles a player's empire overview
type DashboardSummaryQuery struct {
	PlayerID int
}

// BuildingSummary is one building row in the dashboard
type BuildingSummary struct {
	BuildingID string
	Type       string
	Field      int
	Level      int
	State      string
	Online     bool
}

// PlanetSummary is one planet's dashboard section
type PlanetSummary struct {
	PlanetID          int
	Name              string
	Balances          map[string]int64
	StorageUsed       int64
	StorageCapacity   int64
	EnergyStore       int64
	EnergyCapacity    int64
	EnergyProduction  int64
	EnergyConsumption int64
	ProductionPerTick map[string]int64
	Buildings         []BuildingSummary
}

// ActiveResearchSummary describes the player's in-progress project, if any
type ActiveResearchSummary struct {
	ResearchType string
	Accumulated  int64
	Target       int64
}

// DashboardSummaryResponse is the full empire overview
type DashboardSummaryResponse struct {
	PlayerID       int
	Planets        []PlanetSummary
	ActiveResearch *ActiveResearchSummary
	NextTickAt     time.Time
}

// DashboardSummaryHandler handles the DashboardSummary query
type DashboardSummaryHandler struct {
	planetRepo      colony.PlanetRepository
	progressRepo    research.ProgressRepository
	buildingCatalog colony.Catalog
	researchCatalog research.Catalog
	schedule        *simulation.Schedule
	clock           shared.Clock
}

// NewDashboardSummaryHandler creates a new DashboardSummaryHandler
func NewDashboardSummaryHandler(
	planetRepo colony.PlanetRepository,
	progressRepo research.ProgressRepository,
	buildingCatalog colony.Catalog,
	researchCatalog research.Catalog,
	schedule *simulation.Schedule,
	clock shared.Clock,
) *DashboardSummaryHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &DashboardSummaryHandler{
		planetRepo:      planetRepo,
		progressRepo:    progressRepo,
		buildingCatalog: buildingCatalog,
		researchCatalog: researchCatalog,
		schedule:        schedule,
		clock:           clock,
	}
}

// Handle executes the DashboardSummary query
func (h *DashboardSummaryHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*DashboardSummaryQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DashboardSummaryQuery")
	}

	playerID, err := shared.NewPlayerID(query.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID: %w", err)
	}

	planets, err := h.planetRepo.FindByOwner(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("loading planets: %w", err)
	}

	summaries := make([]PlanetSummary, 0, len(planets))
	for _, p := range planets {
		balance, err := colony.ComputeEnergyBalance(p, h.buildingCatalog)
		if err != nil {
			return nil, fmt.Errorf("computing energy balance for planet %s: %w", p.ID(), err)
		}
		rates, err := p.ProductionPerTick(h.buildingCatalog)
		if err != nil {
			return nil, fmt.Errorf("computing production for planet %s: %w", p.ID(), err)
		}

		stockpile := p.Stockpile()
		summary := PlanetSummary{
			PlanetID:          p.ID().Value(),
			Name:              p.Name(),
			Balances:          stockpile.Snapshot().StringMap(),
			StorageUsed:       stockpile.Total(),
			StorageCapacity:   stockpile.StorageCapacity(),
			EnergyStore:       stockpile.Energy(),
			EnergyCapacity:    stockpile.EnergyCapacity(),
			EnergyProduction:  balance.Production,
			EnergyConsumption: balance.Consumption,
			ProductionPerTick: rates.StringMap(),
		}
		for _, b := range p.Buildings() {
			summary.Buildings = append(summary.Buildings, BuildingSummary{
				BuildingID: b.ID(),
				Type:       b.TypeKey(),
				Field:      b.Field(),
				Level:      b.Level(),
				State:      string(b.State()),
				Online:     b.IsOnline(),
			})
		}
		summaries = append(summaries, summary)
	}

	response := &DashboardSummaryResponse{
		PlayerID:   playerID.Value(),
		Planets:    summaries,
		NextTickAt: h.schedule.NextAfter(h.clock.Now()),
	}

	inProgress, err := h.progressRepo.FindInProgress(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("loading research in progress: %w", err)
	}
	if inProgress != nil && inProgress.IsInProgress() {
		rt, err := h.researchCatalog.Get(inProgress.TypeKey())
		if err != nil {
			return nil, err
		}
		response.ActiveResearch = &ActiveResearchSummary{
			ResearchType: inProgress.TypeKey(),
			Accumulated:  inProgress.Accumulated(),
			Target:       rt.Target(),
		}
	}

	return response, nil
}
