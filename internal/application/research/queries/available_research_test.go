package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/galaxycolony-go/internal/application/research/queries"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/colony"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/research"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/resource"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
	"github.com/andrescamacho/galaxycolony-go/test/helpers"
)

func seedLabWorld(t *testing.T, planets *helpers.MemoryPlanetRepository, labs int) {
	t.Helper()
	catalog := colony.DefaultCatalog()
	p := colony.NewPlanet(
		shared.MustNewPlanetID(1),
		shared.MustNewPlayerID(1),
		"Lab World",
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
}

func TestAvailableResearchHandler_AnnotatesCatalogForPlayer(t *testing.T) {
	// Arrange
	planets := helpers.NewMemoryPlanetRepository()
	progress := helpers.NewMemoryProgressRepository()
	seedLabWorld(t, planets, 1)
	playerID := shared.MustNewPlayerID(1)

	// Ion propulsion is halfway done; vorium synthesis waits on its
	// prerequisite and a second lab
	row := research.NewProgress(playerID, research.ResearchIonPropulsion, time.Now().UTC())
	_, err := row.Advance(400, 800, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, progress.Save(context.Background(), row))

	handler := queries.NewAvailableResearchHandler(
		planets, progress, colony.DefaultCatalog(), research.DefaultCatalog(),
	)

	// Act
	response, err := handler.Handle(context.Background(), &queries.AvailableResearchQuery{PlayerID: 1})

	// Assert
	require.NoError(t, err)
	result := response.(*queries.AvailableResearchResponse)

	byKey := make(map[string]queries.ResearchEntry)
	for _, entry := range result.Entries {
		byKey[entry.Key] = entry
	}
	require.Len(t, byKey, 6)

	assert.Equal(t, string(research.StatusInProgress), byKey[research.ResearchIonPropulsion].Status)
	assert.Equal(t, int64(400), byKey[research.ResearchIonPropulsion].Accumulated)
	assert.Equal(t, string(research.StatusAvailable), byKey[research.ResearchAlloyRefinement].Status)
	assert.Equal(t, string(research.StatusLocked), byKey[research.ResearchVoriumSynthesis].Status)
	assert.Equal(t, string(research.StatusLocked), byKey[research.ResearchDeflectorShields].Status)
}

func TestAvailableResearchHandler_CompletedEntriesShowFullProgress(t *testing.T) {
	planets := helpers.NewMemoryPlanetRepository()
	progress := helpers.NewMemoryProgressRepository()
	seedLabWorld(t, planets, 2)
	playerID := shared.MustNewPlayerID(1)

	now := time.Now().UTC()
	done := research.ReconstructProgress(
		playerID, research.ResearchAlloyRefinement,
		research.ProgressCompleted, 5000, now.Add(-48*time.Hour), &now,
	)
	require.NoError(t, progress.Save(context.Background(), done))

	handler := queries.NewAvailableResearchHandler(
		planets, progress, colony.DefaultCatalog(), research.DefaultCatalog(),
	)

	response, err := handler.Handle(context.Background(), &queries.AvailableResearchQuery{PlayerID: 1})

	require.NoError(t, err)
	result := response.(*queries.AvailableResearchResponse)
	for _, entry := range result.Entries {
		switch entry.Key {
		case research.ResearchAlloyRefinement:
			assert.Equal(t, string(research.StatusCompleted), entry.Status)
			assert.Equal(t, entry.Target, entry.Accumulated)
		case research.ResearchVoriumSynthesis:
			// Prerequisite completed and two labs online
			assert.Equal(t, string(research.StatusAvailable), entry.Status)
		}
	}
}
