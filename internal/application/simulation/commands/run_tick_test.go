package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/galaxycolony-go/internal/application/simulation/commands"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/colony"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/research"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/resource"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/simulation"
	"github.com/andrescamacho/galaxycolony-go/test/helpers"
)

type runTickFixture struct {
	handler *commands.RunTickHandler
	planets *helpers.MemoryPlanetRepository
	tickLog *helpers.MemoryTickLog
	clock   *shared.MockClock
	limiter *rate.Limiter
}

func newRunTickFixture(t *testing.T) *runTickFixture {
	t.Helper()
	planets := helpers.NewMemoryPlanetRepository()
	progress := helpers.NewMemoryProgressRepository()
	tickLog := helpers.NewMemoryTickLog()
	clock := shared.NewMockClock(time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC))
	events := shared.NewEventQueue()
	orchestrator := simulation.NewOrchestrator(
		planets, progress, tickLog,
		colony.DefaultCatalog(), research.DefaultCatalog(),
		clock, events, simulation.NewLocks(), time.Second, 2,
	)
	schedule := simulation.MustNewSchedule("UTC", simulation.DefaultSlots)
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	return &runTickFixture{
		handler: commands.NewRunTickHandler(orchestrator, schedule, events, limiter, clock),
		planets: planets,
		tickLog: tickLog,
		clock:   clock,
		limiter: limiter,
	}
}

func (f *runTickFixture) seedPlanet(t *testing.T) {
	t.Helper()
	catalog := colony.DefaultCatalog()
	p := colony.NewPlanet(
		shared.MustNewPlanetID(1),
		shared.MustNewPlayerID(1),
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
}

func TestRunTickHandler_RunsSlotCoveringNow(t *testing.T) {
	// Arrange: 12:30 falls into the 12:00 slot
	f := newRunTickFixture(t)
	f.seedPlanet(t)

	// Act
	response, err := f.handler.Handle(context.Background(), &commands.RunTickCommand{})

	// Assert
	require.NoError(t, err)
	result := response.(*commands.RunTickResponse)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), result.Slot)
	assert.Equal(t, 1, result.PlanetsProcessed)
	require.Len(t, f.tickLog.Records(), 1)
}

func TestRunTickHandler_SameSlotRejectedOnRetrigger(t *testing.T) {
	f := newRunTickFixture(t)
	f.seedPlanet(t)

	_, err := f.handler.Handle(context.Background(), &commands.RunTickCommand{})
	require.NoError(t, err)

	// A later trigger inside the same slot window
	f.limiter.SetLimit(rate.Inf)
	f.clock.Advance(time.Hour)
	_, err = f.handler.Handle(context.Background(), &commands.RunTickCommand{})

	var alreadyRanErr *shared.TickAlreadyRanError
	assert.ErrorAs(t, err, &alreadyRanErr)
}

func TestRunTickHandler_ThrottlesRapidTriggers(t *testing.T) {
	f := newRunTickFixture(t)
	f.seedPlanet(t)

	_, err := f.handler.Handle(context.Background(), &commands.RunTickCommand{})
	require.NoError(t, err)

	_, err = f.handler.Handle(context.Background(), &commands.RunTickCommand{})

	var busyErr *shared.BusyError
	assert.ErrorAs(t, err, &busyErr)
}
