package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/galaxycolony-go/internal/application/common"
	appresearch "github.com/andrescamacho/galaxycolony-go/internal/application/research"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/colony"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/research"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
)

// AvailableResearchQuery lists the research catalog annotated for a player
type AvailableResearchQuery struct {
	PlayerID int
}

// ResearchEntry is one catalog row in a player's view
type ResearchEntry struct {
	Key          string
	Name         string
	Category     string
	Tier         int
	Prerequisite string
	RequiredLabs int
	Status       string
	Accumulated  int64
	Target       int64
}

// AvailableResearchResponse carries the annotated catalog
type AvailableResearchResponse struct {
	Entries []ResearchEntry
}

// AvailableResearchHandler handles the AvailableResearch query
type AvailableResearchHandler struct {
	planetRepo      colony.PlanetRepository
	progressRepo    research.ProgressRepository
	buildingCatalog colony.Catalog
	researchCatalog research.Catalog
	engine          *research.Engine
}

// NewAvailableResearchHandler creates a new AvailableResearchHandler
func NewAvailableResearchHandler(
	planetRepo colony.PlanetRepository,
	progressRepo research.ProgressRepository,
	buildingCatalog colony.Catalog,
	researchCatalog research.Catalog,
) *AvailableResearchHandler {
	return &AvailableResearchHandler{
		planetRepo:      planetRepo,
		progressRepo:    progressRepo,
		buildingCatalog: buildingCatalog,
		researchCatalog: researchCatalog,
		engine:          research.NewEngine(),
	}
}

// Handle executes the AvailableResearch query
func (h *AvailableResearchHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*AvailableResearchQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AvailableResearchQuery")
	}

	playerID, err := shared.NewPlayerID(query.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID: %w", err)
	}

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

	types := h.researchCatalog.All()
	entries := make([]ResearchEntry, 0, len(types))
	for _, rt := range types {
		entry := ResearchEntry{
			Key:          rt.Key,
			Name:         rt.Name,
			Category:     string(rt.Category),
			Tier:         rt.Tier,
			Prerequisite: rt.Prerequisite,
			RequiredLabs: rt.RequiredLabs,
			Status:       string(h.engine.StatusFor(rt, completed, inProgress, stats.LabCount)),
			Target:       rt.Target(),
		}
		if entry.Status == string(research.StatusCompleted) {
			entry.Accumulated = rt.Target()
		}
		if inProgress != nil && inProgress.TypeKey() == rt.Key && inProgress.IsInProgress() {
			entry.Accumulated = inProgress.Accumulated()
		}
		entries = append(entries, entry)
	}

	return &AvailableResearchResponse{Entries: entries}, nil
}
