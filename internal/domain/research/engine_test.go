package research_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/galaxycolony-go/internal/domain/research"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/resource"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
)

var testPlayer = shared.MustNewPlayerID(7)

func healthyStats() research.PlayerTickStats {
	return research.PlayerTickStats{
		LabCount:              3,
		ResearchPointsPerTick: 100,
		ProductionRates: resource.Amounts{
			resource.TypeDurastahl: 50,
			resource.TypeCrystal:   30,
			resource.TypeCredits:   80,
		},
		RealizedProduction: resource.Amounts{
			resource.TypeDurastahl: 50,
			resource.TypeCrystal:   30,
			resource.TypeCredits:   80,
		},
	}
}

func TestEngine_StartPointCostResearch(t *testing.T) {
	engine := research.NewEngine()
	catalog := research.DefaultCatalog()
	now := time.Now().UTC()

	progress, err := engine.Start(catalog, testPlayer, research.ResearchIonPropulsion, map[string]bool{}, nil, healthyStats(), now)

	require.NoError(t, err)
	assert.Equal(t, research.ProgressInProgress, progress.State())
	assert.Equal(t, int64(0), progress.Accumulated())
	assert.Equal(t, now, progress.StartedAt())
}

func TestEngine_StartRejectsUnmetPrerequisiteAtEveryChainDepth(t *testing.T) {
	engine := research.NewEngine()
	catalog := research.DefaultCatalog()
	now := time.Now().UTC()

	cases := []struct {
		key          string
		prerequisite string
		completed    map[string]bool
	}{
		{research.ResearchVoriumSynthesis, research.ResearchAlloyRefinement, map[string]bool{}},
		{research.ResearchDeflectorShields, research.ResearchFusionPower, map[string]bool{}},
		{research.ResearchDeflectorShields, research.ResearchFusionPower, map[string]bool{research.ResearchAlloyRefinement: true}},
	}
	for _, tc := range cases {
		_, err := engine.Start(catalog, testPlayer, tc.key, tc.completed, nil, healthyStats(), now)

		var prereqErr *shared.ResearchPrerequisiteUnmetError
		require.ErrorAs(t, err, &prereqErr, "key %s", tc.key)
		assert.Equal(t, tc.prerequisite, prereqErr.Prerequisite)
	}
}

func TestEngine_StartRejectsInsufficientLabs(t *testing.T) {
	engine := research.NewEngine()
	catalog := research.DefaultCatalog()
	stats := healthyStats()
	stats.LabCount = 1

	_, err := engine.Start(catalog, testPlayer, research.ResearchVoriumSynthesis,
		map[string]bool{research.ResearchAlloyRefinement: true}, nil, stats, time.Now().UTC())

	var labsErr *shared.InsufficientLabsError
	require.ErrorAs(t, err, &labsErr)
	assert.Equal(t, 2, labsErr.Required)
	assert.Equal(t, 1, labsErr.Available)
}

func TestEngine_StartRejectsConcurrentResearch(t *testing.T) {
	engine := research.NewEngine()
	catalog := research.DefaultCatalog()
	now := time.Now().UTC()
	inProgress := research.NewProgress(testPlayer, research.ResearchIonPropulsion, now)

	_, err := engine.Start(catalog, testPlayer, research.ResearchAlloyRefinement, map[string]bool{}, inProgress, healthyStats(), now)

	var concurrentErr *shared.ResearchAlreadyInProgressError
	require.ErrorAs(t, err, &concurrentErr)
	assert.Equal(t, research.ResearchIonPropulsion, concurrentErr.ResearchType)
}

func TestEngine_StartThresholdResearchRequiresLiveProduction(t *testing.T) {
	engine := research.NewEngine()
	catalog := research.DefaultCatalog()
	stats := healthyStats()
	stats.ProductionRates[resource.TypeDurastahl] = 0

	_, err := engine.Start(catalog, testPlayer, research.ResearchAlloyRefinement, map[string]bool{}, nil, stats, time.Now().UTC())

	var productionErr *shared.InsufficientProductionError
	require.ErrorAs(t, err, &productionErr)
	assert.Equal(t, resource.TypeDurastahl.String(), productionErr.Resource)
}

func TestEngine_ThresholdResearchCompletesAfterExactTickCount(t *testing.T) {
	engine := research.NewEngine()
	catalog, err := research.NewStaticCatalog([]*research.ResearchType{
		{
			Key:          "TEST_THRESHOLD",
			Name:         "Test Threshold",
			Category:     research.CategoryConstruction,
			Tier:         1,
			RequiredLabs: 1,
			Threshold: &research.ProductionThreshold{
				Resource:      resource.TypeDurastahl,
				RatePerTick:   50,
				RequiredTotal: 150,
			},
		},
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	stats := research.PlayerTickStats{
		LabCount:           1,
		ProductionRates:    resource.Amounts{resource.TypeDurastahl: 50},
		RealizedProduction: resource.Amounts{resource.TypeDurastahl: 50},
	}
	progress, err := engine.Start(catalog, testPlayer, "TEST_THRESHOLD", map[string]bool{}, nil, stats, now)
	require.NoError(t, err)

	// 150 required at 50/tick: completes on the third tick exactly
	for tick := 1; tick <= 2; tick++ {
		completed, err := engine.AdvanceTick(catalog, progress, stats, now)
		require.NoError(t, err)
		assert.False(t, completed, "tick %d", tick)
		assert.Equal(t, int64(tick*50), progress.Accumulated())
	}
	completed, err := engine.AdvanceTick(catalog, progress, stats, now)
	require.NoError(t, err)
	assert.True(t, completed)
	assert.Equal(t, research.ProgressCompleted, progress.State())
	require.NotNil(t, progress.CompletedAt())
}

func TestEngine_PointCostResearchAccruesResearchPoints(t *testing.T) {
	engine := research.NewEngine()
	catalog := research.DefaultCatalog()
	now := time.Now().UTC()
	stats := healthyStats()

	progress, err := engine.Start(catalog, testPlayer, research.ResearchIonPropulsion, map[string]bool{}, nil, stats, now)
	require.NoError(t, err)

	// 800 points at 100/tick: eight ticks to complete
	for tick := 1; tick <= 7; tick++ {
		completed, err := engine.AdvanceTick(catalog, progress, stats, now)
		require.NoError(t, err)
		assert.False(t, completed)
	}
	completed, err := engine.AdvanceTick(catalog, progress, stats, now)
	require.NoError(t, err)
	assert.True(t, completed)
}

func TestEngine_CompletedProgressNeverAdvances(t *testing.T) {
	progress := research.ReconstructProgress(testPlayer, research.ResearchIonPropulsion,
		research.ProgressCompleted, 800, time.Now().UTC(), nil)

	_, err := progress.Advance(100, 800, time.Now().UTC())

	require.Error(t, err)
}

func TestEngine_CancelDiscardsProgress(t *testing.T) {
	engine := research.NewEngine()
	now := time.Now().UTC()
	progress := research.NewProgress(testPlayer, research.ResearchIonPropulsion, now)
	_, err := progress.Advance(500, 800, now)
	require.NoError(t, err)

	err = engine.Cancel(progress)

	require.NoError(t, err)
}

func TestEngine_CancelWithoutInProgressFails(t *testing.T) {
	engine := research.NewEngine()

	err := engine.Cancel(nil)

	require.Error(t, err)
}

func TestEngine_StatusAnnotations(t *testing.T) {
	engine := research.NewEngine()
	catalog := research.DefaultCatalog()
	now := time.Now().UTC()

	alloy, _ := catalog.Get(research.ResearchAlloyRefinement)
	vorium, _ := catalog.Get(research.ResearchVoriumSynthesis)
	ion, _ := catalog.Get(research.ResearchIonPropulsion)

	completed := map[string]bool{research.ResearchAlloyRefinement: true}
	inProgress := research.NewProgress(testPlayer, research.ResearchIonPropulsion, now)

	assert.Equal(t, research.StatusCompleted, engine.StatusFor(alloy, completed, inProgress, 3))
	assert.Equal(t, research.StatusInProgress, engine.StatusFor(ion, completed, inProgress, 3))
	assert.Equal(t, research.StatusAvailable, engine.StatusFor(vorium, completed, nil, 3))
	assert.Equal(t, research.StatusLocked, engine.StatusFor(vorium, map[string]bool{}, nil, 3))
	assert.Equal(t, research.StatusLocked, engine.StatusFor(vorium, completed, nil, 1))
}

func TestResearchType_ExactlyOneCostModelEnforced(t *testing.T) {
	bad := &research.ResearchType{
		Key:       "BAD",
		Name:      "Bad",
		PointCost: 100,
		Threshold: &research.ProductionThreshold{
			Resource:      resource.TypeCrystal,
			RatePerTick:   1,
			RequiredTotal: 1,
		},
	}
	require.Error(t, bad.Validate())

	neither := &research.ResearchType{Key: "NONE", Name: "None"}
	require.Error(t, neither.Validate())
}
