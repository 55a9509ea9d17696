package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/galaxycolony-go/internal/application/construction/commands"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/colony"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/research"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/resource"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/simulation"
	"github.com/andrescamacho/galaxycolony-go/test/helpers"
)

func seedPlanet(t *testing.T, repo *helpers.MemoryPlanetRepository, planetID, playerID int) *colony.Planet {
	t.Helper()
	p := colony.NewPlanet(
		shared.MustNewPlanetID(planetID),
		shared.MustNewPlayerID(playerID),
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
	p.Stockpile().CreditEnergy(1000)
	repo.Put(p)
	return p
}

func TestColonizePlanetHandler_CreatesColonyWithCommandCenter(t *testing.T) {
	// Arrange
	repo := helpers.NewMemoryPlanetRepository()
	clock := shared.NewMockClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	handler := commands.NewColonizePlanetHandler(repo, colony.DefaultCatalog(), commands.DefaultColonySettings(), clock)

	// Act
	response, err := handler.Handle(context.Background(), &commands.ColonizePlanetCommand{
		PlayerID: 7,
		Name:     "New Terra",
	})

	// Assert
	require.NoError(t, err)
	result := response.(*commands.ColonizePlanetResponse)
	assert.NotEmpty(t, result.CommandCenterID)

	planet, err := repo.FindByID(context.Background(), shared.MustNewPlanetID(result.PlanetID))
	require.NoError(t, err)
	assert.Equal(t, "New Terra", planet.Name())
	assert.Equal(t, 7, planet.OwnerID().Value())

	cc := planet.BuildingAt(0)
	require.NotNil(t, cc)
	assert.Equal(t, colony.BuildingCommandCenter, cc.TypeKey())
	assert.Equal(t, colony.StateUnderConstruction, cc.State())

	// Starter credits minus the command center's 400-credit cost
	settings := commands.DefaultColonySettings()
	assert.Equal(t, settings.StarterCredits-400, planet.Stockpile().Balance(resource.TypeCredits))
}

func TestColonizePlanetHandler_RejectsEmptyName(t *testing.T) {
	repo := helpers.NewMemoryPlanetRepository()
	handler := commands.NewColonizePlanetHandler(repo, colony.DefaultCatalog(), commands.DefaultColonySettings(), nil)

	_, err := handler.Handle(context.Background(), &commands.ColonizePlanetCommand{PlayerID: 1})

	var validationErr *shared.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestStartConstructionHandler_CommissionsBuilding(t *testing.T) {
	// Arrange
	planets := helpers.NewMemoryPlanetRepository()
	progress := helpers.NewMemoryProgressRepository()
	planet := seedPlanet(t, planets, 1, 1)
	clock := shared.NewMockClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	handler := commands.NewStartConstructionHandler(
		planets, progress, colony.DefaultCatalog(), simulation.NewLocks(), time.Second, clock,
	)

	// Act
	response, err := handler.Handle(context.Background(), &commands.StartConstructionCommand{
		PlanetID:     1,
		BuildingType: colony.BuildingSolarArray,
		Field:        3,
	})

	// Assert
	require.NoError(t, err)
	result := response.(*commands.StartConstructionResponse)
	assert.Equal(t, clock.Now().Add(40*time.Minute), result.CompletesAt)

	b := planet.BuildingAt(3)
	require.NotNil(t, b)
	assert.Equal(t, colony.BuildingSolarArray, b.TypeKey())
	assert.Equal(t, colony.StateUnderConstruction, b.State())
}

func TestStartConstructionHandler_GatesResearchLockedBuildings(t *testing.T) {
	planets := helpers.NewMemoryPlanetRepository()
	progress := helpers.NewMemoryProgressRepository()
	planet := seedPlanet(t, planets, 1, 1)
	creditsBefore := planet.Stockpile().Balance(resource.TypeCredits)
	handler := commands.NewStartConstructionHandler(
		planets, progress, colony.DefaultCatalog(), simulation.NewLocks(), time.Second, nil,
	)
	cmd := &commands.StartConstructionCommand{
		PlanetID:     1,
		BuildingType: colony.BuildingVoriumSynthesizer,
		Field:        4,
	}

	// Locked until the unlocking research completes
	_, err := handler.Handle(context.Background(), cmd)

	var prereqErr *shared.ResearchPrerequisiteUnmetError
	require.ErrorAs(t, err, &prereqErr)
	assert.Equal(t, creditsBefore, planet.Stockpile().Balance(resource.TypeCredits))

	// Unlock it and retry
	now := time.Now().UTC()
	row := research.ReconstructProgress(
		shared.MustNewPlayerID(1), research.ResearchVoriumSynthesis,
		research.ProgressCompleted, 1500, now.Add(-time.Hour), &now,
	)
	require.NoError(t, progress.Save(context.Background(), row))

	_, err = handler.Handle(context.Background(), cmd)

	require.NoError(t, err)
	assert.NotNil(t, planet.BuildingAt(4))
}

func TestStartConstructionHandler_BusyPlanetFailsFast(t *testing.T) {
	planets := helpers.NewMemoryPlanetRepository()
	progress := helpers.NewMemoryProgressRepository()
	seedPlanet(t, planets, 1, 1)
	locks := simulation.NewLocks()
	handler := commands.NewStartConstructionHandler(
		planets, progress, colony.DefaultCatalog(), locks, 10*time.Millisecond, nil,
	)

	release, err := locks.AcquirePlanet(shared.MustNewPlanetID(1), time.Second)
	require.NoError(t, err)
	defer release()

	_, err = handler.Handle(context.Background(), &commands.StartConstructionCommand{
		PlanetID:     1,
		BuildingType: colony.BuildingSolarArray,
		Field:        3,
	})

	var busyErr *shared.BusyError
	assert.ErrorAs(t, err, &busyErr)
}

func TestUpgradeBuildingHandler_DebitsScaledCost(t *testing.T) {
	// Arrange
	planets := helpers.NewMemoryPlanetRepository()
	planet := seedPlanet(t, planets, 1, 1)
	catalog := colony.DefaultCatalog()
	clock := shared.NewMockClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))

	mineType, err := catalog.Get(colony.BuildingDurastahlMine)
	require.NoError(t, err)
	mine, err := planet.Commission(mineType, 2, clock.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = planet.CompleteDueConstruction(catalog, clock.Now())
	require.NoError(t, err)
	creditsBefore := planet.Stockpile().Balance(resource.TypeCredits)

	handler := commands.NewUpgradeBuildingHandler(planets, catalog, simulation.NewLocks(), time.Second, clock)

	// Act
	response, err := handler.Handle(context.Background(), &commands.UpgradeBuildingCommand{
		PlanetID:   1,
		BuildingID: mine.ID(),
	})

	// Assert: level 2 costs twice the base 600 credits
	require.NoError(t, err)
	result := response.(*commands.UpgradeBuildingResponse)
	assert.Equal(t, 2, result.PendingLevel)
	assert.Equal(t, creditsBefore-1200, planet.Stockpile().Balance(resource.TypeCredits))
	assert.Equal(t, colony.StateUnderConstruction, mine.State())
}

func TestDemolishBuildingHandler_RefundsHalfTheCost(t *testing.T) {
	// Arrange
	planets := helpers.NewMemoryPlanetRepository()
	planet := seedPlanet(t, planets, 1, 1)
	catalog := colony.DefaultCatalog()
	clock := shared.NewMockClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))

	mineType, err := catalog.Get(colony.BuildingDurastahlMine)
	require.NoError(t, err)
	mine, err := planet.Commission(mineType, 2, clock.Now())
	require.NoError(t, err)
	creditsBefore := planet.Stockpile().Balance(resource.TypeCredits)

	handler := commands.NewDemolishBuildingHandler(planets, catalog, simulation.NewLocks(), time.Second)

	// Act
	response, err := handler.Handle(context.Background(), &commands.DemolishBuildingCommand{
		PlanetID:   1,
		BuildingID: mine.ID(),
	})

	// Assert: half of the 600-credit cost comes back, the field frees up
	require.NoError(t, err)
	result := response.(*commands.DemolishBuildingResponse)
	assert.Equal(t, int64(300), result.Refund["CREDITS"])
	assert.Equal(t, creditsBefore+300, planet.Stockpile().Balance(resource.TypeCredits))
	assert.Nil(t, planet.BuildingAt(2))
}
