package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/galaxycolony-go/internal/application/player/queries"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/colony"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/research"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/resource"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/simulation"
	"github.com/andrescamacho/galaxycolony-go/test/helpers"
)

func TestDashboardSummaryHandler_AssemblesEmpireOverview(t *testing.T) {
	// Arrange
	planets := helpers.NewMemoryPlanetRepository()
	progress := helpers.NewMemoryProgressRepository()
	catalog := colony.DefaultCatalog()
	clock := shared.NewMockClock(time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC))

	p := colony.NewPlanet(
		shared.MustNewPlanetID(1),
		shared.MustNewPlayerID(1),
		"Homeworld",
		20,
		50000,
		2000,
		resource.Amounts{
			resource.TypeCredits:   20000,
			resource.TypeDurastahl: 10000,
			resource.TypeCrystal:   5000,
		},
	)
	p.Stockpile().CreditEnergy(500)
	t0 := clock.Now().Add(-24 * time.Hour)
	for i, key := range []string{colony.BuildingSolarArray, colony.BuildingDurastahlMine} {
		bt, err := catalog.Get(key)
		require.NoError(t, err)
		_, err = p.Commission(bt, i, t0)
		require.NoError(t, err)
	}
	_, err := p.CompleteDueConstruction(catalog, t0.Add(2*time.Hour))
	require.NoError(t, err)
	for _, b := range p.Buildings() {
		b.SetOnline(true)
	}
	planets.Put(p)

	row := research.NewProgress(shared.MustNewPlayerID(1), research.ResearchIonPropulsion, t0)
	require.NoError(t, progress.Save(context.Background(), row))

	handler := queries.NewDashboardSummaryHandler(
		planets, progress, catalog, research.DefaultCatalog(),
		simulation.MustNewSchedule("UTC", simulation.DefaultSlots), clock,
	)

	// Act
	response, err := handler.Handle(context.Background(), &queries.DashboardSummaryQuery{PlayerID: 1})

	// Assert
	require.NoError(t, err)
	result := response.(*queries.DashboardSummaryResponse)
	require.Len(t, result.Planets, 1)

	planet := result.Planets[0]
	assert.Equal(t, "Homeworld", planet.Name)
	assert.Equal(t, int64(50), planet.EnergyProduction)
	assert.Equal(t, int64(10), planet.EnergyConsumption)
	assert.Equal(t, int64(50), planet.ProductionPerTick["DURASTAHL"])
	assert.Len(t, planet.Buildings, 2)

	require.NotNil(t, result.ActiveResearch)
	assert.Equal(t, research.ResearchIonPropulsion, result.ActiveResearch.ResearchType)
	assert.Equal(t, int64(800), result.ActiveResearch.Target)

	// 13:00 UTC sits between the 12:00 and 15:00 slots
	assert.Equal(t, time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC), result.NextTickAt)
}

func TestDashboardSummaryHandler_PlayerWithoutPlanets(t *testing.T) {
	planets := helpers.NewMemoryPlanetRepository()
	progress := helpers.NewMemoryProgressRepository()
	handler := queries.NewDashboardSummaryHandler(
		planets, progress, colony.DefaultCatalog(), research.DefaultCatalog(),
		simulation.MustNewSchedule("UTC", simulation.DefaultSlots), nil,
	)

	response, err := handler.Handle(context.Background(), &queries.DashboardSummaryQuery{PlayerID: 9})

	require.NoError(t, err)
	result := response.(*queries.DashboardSummaryResponse)
	assert.Empty(t, result.Planets)
	assert.Nil(t, result.ActiveResearch)
}
