package research

import (
	"context"

	"github.com/andrescamacho/galaxycolony-go/internal/domain/colony"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/research"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/resource"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
)

// GatherPlayerStats sums lab capacity, research point output, and production
// rates across every planet the player owns. Realized production is left
// zero: outside a tick there is nothing realized, and the start-research
// gate only reads rates.
func GatherPlayerStats(
	ctx context.Context,
	planetRepo colony.PlanetRepository,
	catalog colony.Catalog,
	playerID shared.PlayerID,
) (research.PlayerTickStats, error) {
	stats := research.PlayerTickStats{
		ProductionRates:    make(resource.Amounts),
		RealizedProduction: make(resource.Amounts),
	}
	planets, err := planetRepo.FindByOwner(ctx, playerID)
	if err != nil {
		return stats, err
	}
	for _, p := range planets {
		labs, err := p.LabCount(catalog)
		if err != nil {
			return stats, err
		}
		points, err := p.ResearchPointsPerTick(catalog)
		if err != nil {
			return stats, err
		}
		rates, err := p.ProductionPerTick(catalog)
		if err != nil {
			return stats, err
		}
		stats.LabCount += labs
		stats.ResearchPointsPerTick += points
		for t, v := range rates {
			stats.ProductionRates[t] += v
		}
	}
	return stats, nil
}
