package simulation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/galaxycolony-go/internal/domain/colony"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/research"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/resource"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/simulation"
	"github.com/andrescamacho/galaxycolony-go/test/helpers"
)

type tickFixture struct {
	orchestrator *simulation.Orchestrator
	planets      *helpers.MemoryPlanetRepository
	progress     *helpers.MemoryProgressRepository
	tickLog      *helpers.MemoryTickLog
	clock        *shared.MockClock
	events       *shared.EventQueue
}

func newTickFixture(t *testing.T) *tickFixture {
	t.Helper()
	planets := helpers.NewMemoryPlanetRepository()
	progress := helpers.NewMemoryProgressRepository()
	tickLog := helpers.NewMemoryTickLog()
	clock := shared.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	events := shared.NewEventQueue()
	orchestrator := simulation.NewOrchestrator(
		planets,
		progress,
		tickLog,
		colony.DefaultCatalog(),
		research.DefaultCatalog(),
		clock,
		events,
		simulation.NewLocks(),
		time.Second,
		2,
	)
	return &tickFixture{
		orchestrator: orchestrator,
		planets:      planets,
		progress:     progress,
		tickLog:      tickLog,
		clock:        clock,
		events:       events,
	}
}

// seedPlanetWithOnlineMine creates a planet with an active durastahl mine
// and a solar array so the mine stays powered
func seedPlanetWithOnlineMine(t *testing.T, f *tickFixture, planetID, playerID int) *colony.Planet {
	t.Helper()
	catalog := colony.DefaultCatalog()
	p := colony.NewPlanet(
		shared.MustNewPlanetID(planetID),
		shared.MustNewPlayerID(playerID),
		"Colony",
		20,
		100000,
		2000,
		resource.Amounts{
			resource.TypeCredits:   20000,
			resource.TypeDurastahl: 10000,
			resource.TypeCrystal:   5000,
		},
	)
	p.Stockpile().CreditEnergy(1000)
	t0 := f.clock.Now().Add(-24 * time.Hour)
	for i, key := range []string{colony.BuildingSolarArray, colony.BuildingDurastahlMine} {
		bt, err := catalog.Get(key)
		require.NoError(t, err)
		_, err = p.Commission(bt, i, t0)
		require.NoError(t, err)
	}
	_, err := p.CompleteDueConstruction(catalog, t0.Add(2*time.Hour))
	require.NoError(t, err)
	f.planets.Put(p)
	return p
}

func TestRunTick_CreditsProductionAndEmitsEvents(t *testing.T) {
	f := newTickFixture(t)
	p := seedPlanetWithOnlineMine(t, f, 1, 1)
	durastahlBefore := p.Stockpile().Balance(resource.TypeDurastahl)

	record, err := f.orchestrator.RunTick(context.Background(), f.clock.Now())

	require.NoError(t, err)
	assert.Equal(t, 1, record.PlanetsProcessed)
	assert.Equal(t, 0, record.PlanetsSkipped)
	assert.Equal(t, durastahlBefore+50, p.Stockpile().Balance(resource.TypeDurastahl))

	events := f.events.Drain()
	require.NotEmpty(t, events)
	var sawResources bool
	for _, e := range events {
		if _, ok := e.(*shared.ResourcesUpdatedEvent); ok {
			sawResources = true
		}
	}
	assert.True(t, sawResources)
}

func TestRunTick_SameSlotIsRejectedWithoutReapplying(t *testing.T) {
	f := newTickFixture(t)
	p := seedPlanetWithOnlineMine(t, f, 1, 1)
	slot := f.clock.Now()

	_, err := f.orchestrator.RunTick(context.Background(), slot)
	require.NoError(t, err)
	durastahlAfterFirst := p.Stockpile().Balance(resource.TypeDurastahl)

	_, err = f.orchestrator.RunTick(context.Background(), slot)

	var alreadyRanErr *shared.TickAlreadyRanError
	require.ErrorAs(t, err, &alreadyRanErr)
	assert.Equal(t, durastahlAfterFirst, p.Stockpile().Balance(resource.TypeDurastahl))
}

func TestRunTick_CompletesDueConstruction(t *testing.T) {
	f := newTickFixture(t)
	p := seedPlanetWithOnlineMine(t, f, 1, 1)
	catalog := colony.DefaultCatalog()
	farm, _ := catalog.Get(colony.BuildingHydroponicFarm)

	b, err := p.Commission(farm, 10, f.clock.Now())
	require.NoError(t, err)

	// First slot: build timer still running
	_, err = f.orchestrator.RunTick(context.Background(), f.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, colony.StateUnderConstruction, b.State())
	f.events.Drain()

	// Next slot, past the farm's 45-minute build time
	f.clock.Advance(3 * time.Hour)
	_, err = f.orchestrator.RunTick(context.Background(), f.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, colony.StateActive, b.State())

	var sawCompleted bool
	for _, e := range f.events.Drain() {
		if completed, ok := e.(*shared.BuildingCompletedEvent); ok {
			assert.Equal(t, b.ID(), completed.BuildingID)
			sawCompleted = true
		}
	}
	assert.True(t, sawCompleted)
}

func TestRunTick_AdvancesThresholdResearchWithRealizedProduction(t *testing.T) {
	f := newTickFixture(t)
	seedPlanetWithOnlineMine(t, f, 1, 1)
	playerID := shared.MustNewPlayerID(1)

	// Custom threshold: 150 durastahl at the mine's 50/tick rate
	researchCatalog, err := research.NewStaticCatalog([]*research.ResearchType{
		{
			Key:          "TEST_THRESHOLD",
			Name:         "Test Threshold",
			Category:     research.CategoryConstruction,
			Tier:         1,
			RequiredLabs: 0,
			Threshold: &research.ProductionThreshold{
				Resource:      resource.TypeDurastahl,
				RatePerTick:   50,
				RequiredTotal: 150,
			},
		},
	})
	require.NoError(t, err)
	f.orchestrator = simulation.NewOrchestrator(
		f.planets, f.progress, f.tickLog,
		colony.DefaultCatalog(), researchCatalog,
		f.clock, f.events, simulation.NewLocks(), time.Second, 2,
	)

	row := research.NewProgress(playerID, "TEST_THRESHOLD", f.clock.Now())
	require.NoError(t, f.progress.Save(context.Background(), row))

	// Completes on the third tick: 50, 100, 150
	for tick := 1; tick <= 2; tick++ {
		_, err := f.orchestrator.RunTick(context.Background(), f.clock.Now())
		require.NoError(t, err)
		assert.Equal(t, int64(tick*50), row.Accumulated())
		f.clock.Advance(3 * time.Hour)
	}
	_, err = f.orchestrator.RunTick(context.Background(), f.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, research.ProgressCompleted, row.State())

	var sawCompleted bool
	for _, e := range f.events.Drain() {
		if completed, ok := e.(*shared.ResearchCompletedEvent); ok {
			assert.Equal(t, "TEST_THRESHOLD", completed.ResearchType)
			sawCompleted = true
		}
	}
	assert.True(t, sawCompleted)
}

func TestRunTick_ResearchAdvancesOncePerPlayerAcrossPlanets(t *testing.T) {
	f := newTickFixture(t)
	seedPlanetWithOnlineMine(t, f, 1, 1)
	seedPlanetWithOnlineMine(t, f, 2, 1)
	playerID := shared.MustNewPlayerID(1)

	researchCatalog, err := research.NewStaticCatalog([]*research.ResearchType{
		{
			Key:          "TEST_THRESHOLD",
			Name:         "Test Threshold",
			Category:     research.CategoryConstruction,
			Tier:         1,
			RequiredLabs: 0,
			Threshold: &research.ProductionThreshold{
				Resource:      resource.TypeDurastahl,
				RatePerTick:   50,
				RequiredTotal: 1000,
			},
		},
	})
	require.NoError(t, err)
	f.orchestrator = simulation.NewOrchestrator(
		f.planets, f.progress, f.tickLog,
		colony.DefaultCatalog(), researchCatalog,
		f.clock, f.events, simulation.NewLocks(), time.Second, 2,
	)

	row := research.NewProgress(playerID, "TEST_THRESHOLD", f.clock.Now())
	require.NoError(t, f.progress.Save(context.Background(), row))

	_, err = f.orchestrator.RunTick(context.Background(), f.clock.Now())
	require.NoError(t, err)

	// Two mines at 50/tick each: a single advance of 100, not one per planet
	assert.Equal(t, int64(100), row.Accumulated())
}

func TestRunTick_CorruptPlanetIsSkippedOthersProceed(t *testing.T) {
	f := newTickFixture(t)
	healthy := seedPlanetWithOnlineMine(t, f, 1, 1)

	// A planet holding a building type missing from the catalog
	ghost := colony.ReconstructBuilding(
		"ghost-id", shared.MustNewPlanetID(2), 0, "GHOST_FACTORY", 1, 1,
		colony.StateActive, 1, f.clock.Now().Add(-time.Hour), nil, true,
	)
	corrupt := colony.ReconstructPlanet(
		shared.MustNewPlanetID(2), shared.MustNewPlayerID(2), "Corrupt", 20,
		10000, 1000, resource.Amounts{}, 0, 1, []*colony.Building{ghost},
		colony.DefaultCatalog(),
	)
	f.planets.Put(corrupt)

	durastahlBefore := healthy.Stockpile().Balance(resource.TypeDurastahl)
	record, err := f.orchestrator.RunTick(context.Background(), f.clock.Now())

	require.NoError(t, err)
	assert.Equal(t, 1, record.PlanetsProcessed)
	assert.Equal(t, 1, record.PlanetsSkipped)
	assert.Equal(t, durastahlBefore+50, healthy.Stockpile().Balance(resource.TypeDurastahl))
}

func TestRunTick_RecordsCompletionInTickLog(t *testing.T) {
	f := newTickFixture(t)
	seedPlanetWithOnlineMine(t, f, 1, 1)
	slot := f.clock.Now()

	_, err := f.orchestrator.RunTick(context.Background(), slot)
	require.NoError(t, err)

	records := f.tickLog.Records()
	require.Len(t, records, 1)
	assert.Equal(t, slot, records[0].Slot)
	assert.Equal(t, 1, records[0].PlanetsProcessed)
}
