package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/galaxycolony-go/internal/application/research/commands"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/colony"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/research"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/resource"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/simulation"
	"github.com/andrescamacho/galaxycolony-go/test/helpers"
)

// seedPlanetWithLabs creates a planet whose active lab and mine satisfy the
// tier-1 lab and production gates
func seedPlanetWithLabs(t *testing.T, planets *helpers.MemoryPlanetRepository, planetID, playerID, labs int) *colony.Planet {
	t.Helper()
	catalog := colony.DefaultCatalog()
	p := colony.NewPlanet(
		shared.MustNewPlanetID(planetID),
		shared.MustNewPlayerID(playerID),
		"Research World",
		20,
		100000,
		5000,
		resource.Amounts{
			resource.TypeCredits:   50000,
			resource.TypeDurastahl: 30000,
			resource.TypeCrystal:   15000,
		},
	)
	p.Stockpile().CreditEnergy(2000)
	t0 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	keys := []string{colony.BuildingSolarArray, colony.BuildingDurastahlMine}
	for i := 0; i < labs; i++ {
		keys = append(keys, colony.BuildingResearchLab)
	}
	for field, key := range keys {
		bt, err := catalog.Get(key)
		require.NoError(t, err)
		_, err = p.Commission(bt, field, t0)
		require.NoError(t, err)
	}
	_, err := p.CompleteDueConstruction(catalog, t0.Add(12*time.Hour))
	require.NoError(t, err)
	for _, b := range p.Buildings() {
		b.SetOnline(true)
	}
	planets.Put(p)
	return p
}

func newStartHandler(planets *helpers.MemoryPlanetRepository, progress *helpers.MemoryProgressRepository) *commands.StartResearchHandler {
	return commands.NewStartResearchHandler(
		planets, progress,
		colony.DefaultCatalog(), research.DefaultCatalog(),
		simulation.NewLocks(), time.Second, nil,
	)
}

func TestStartResearchHandler_StartsThresholdResearch(t *testing.T) {
	// Arrange
	planets := helpers.NewMemoryPlanetRepository()
	progress := helpers.NewMemoryProgressRepository()
	seedPlanetWithLabs(t, planets, 1, 1, 1)
	handler := newStartHandler(planets, progress)

	// Act
	response, err := handler.Handle(context.Background(), &commands.StartResearchCommand{
		PlayerID:     1,
		ResearchType: research.ResearchAlloyRefinement,
	})

	// Assert
	require.NoError(t, err)
	result := response.(*commands.StartResearchResponse)
	assert.Equal(t, int64(5000), result.Target)

	row, err := progress.FindInProgress(context.Background(), shared.MustNewPlayerID(1))
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, research.ResearchAlloyRefinement, row.TypeKey())
}

func TestStartResearchHandler_RejectsSecondConcurrentProject(t *testing.T) {
	planets := helpers.NewMemoryPlanetRepository()
	progress := helpers.NewMemoryProgressRepository()
	seedPlanetWithLabs(t, planets, 1, 1, 1)
	handler := newStartHandler(planets, progress)

	_, err := handler.Handle(context.Background(), &commands.StartResearchCommand{
		PlayerID:     1,
		ResearchType: research.ResearchAlloyRefinement,
	})
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), &commands.StartResearchCommand{
		PlayerID:     1,
		ResearchType: research.ResearchIonPropulsion,
	})

	var concurrentErr *shared.ResearchAlreadyInProgressError
	assert.ErrorAs(t, err, &concurrentErr)
}

func TestStartResearchHandler_RejectsWhenLabsInsufficient(t *testing.T) {
	planets := helpers.NewMemoryPlanetRepository()
	progress := helpers.NewMemoryProgressRepository()
	seedPlanetWithLabs(t, planets, 1, 1, 0)
	handler := newStartHandler(planets, progress)

	_, err := handler.Handle(context.Background(), &commands.StartResearchCommand{
		PlayerID:     1,
		ResearchType: research.ResearchIonPropulsion,
	})

	var labsErr *shared.InsufficientLabsError
	assert.ErrorAs(t, err, &labsErr)
}

func TestCancelResearchHandler_DiscardsProgress(t *testing.T) {
	// Arrange
	progress := helpers.NewMemoryProgressRepository()
	playerID := shared.MustNewPlayerID(1)
	row := research.NewProgress(playerID, research.ResearchIonPropulsion, time.Now().UTC())
	_, err := row.Advance(300, 800, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, progress.Save(context.Background(), row))
	handler := commands.NewCancelResearchHandler(progress, simulation.NewLocks(), time.Second)

	// Act
	response, err := handler.Handle(context.Background(), &commands.CancelResearchCommand{PlayerID: 1})

	// Assert: accumulated progress is forfeited, not banked
	require.NoError(t, err)
	result := response.(*commands.CancelResearchResponse)
	assert.Equal(t, research.ResearchIonPropulsion, result.ResearchType)
	assert.Equal(t, int64(300), result.Forfeited)

	remaining, err := progress.FindInProgress(context.Background(), playerID)
	require.NoError(t, err)
	assert.Nil(t, remaining)
}

func TestCancelResearchHandler_NothingInProgress(t *testing.T) {
	progress := helpers.NewMemoryProgressRepository()
	handler := commands.NewCancelResearchHandler(progress, simulation.NewLocks(), time.Second)

	_, err := handler.Handle(context.Background(), &commands.CancelResearchCommand{PlayerID: 1})

	assert.Error(t, err)
}
