package steps

import (
	"context"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/galaxycolony-go/internal/domain/colony"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/research"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/resource"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/simulation"
	"github.com/andrescamacho/galaxycolony-go/test/helpers"
)

const lockTimeout = time.Second

// Initialize registers every step definition against a scenario-scoped
// world. The world is rebuilt before each scenario so state never leaks.
func Initialize(sc *godog.ScenarioContext) {
	w := newWorld()
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		w.reset()
		return ctx, nil
	})
	InitializeConstructionScenario(sc, w)
	InitializeResearchScenario(sc, w)
}

// world carries the state shared by all step definitions within one
// scenario: in-memory repositories, a deterministic clock, and the
// outcome of the last command
type world struct {
	planets         *helpers.MemoryPlanetRepository
	progress        *helpers.MemoryProgressRepository
	tickLog         *helpers.MemoryTickLog
	clock           *shared.MockClock
	events          *shared.EventQueue
	locks           *simulation.Locks
	buildingCatalog colony.Catalog
	researchCatalog research.Catalog
	orchestrator    *simulation.Orchestrator

	planetID shared.PlanetID
	playerID shared.PlayerID

	lastErr   error
	refund    map[string]int64
	forfeited int64
}

func newWorld() *world {
	w := &world{}
	w.reset()
	return w
}

func (w *world) reset() {
	w.planets = helpers.NewMemoryPlanetRepository()
	w.progress = helpers.NewMemoryProgressRepository()
	w.tickLog = helpers.NewMemoryTickLog()
	w.clock = shared.NewMockClock(time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC))
	w.events = shared.NewEventQueue()
	w.locks = simulation.NewLocks()
	w.buildingCatalog = colony.DefaultCatalog()
	w.researchCatalog = research.DefaultCatalog()
	w.orchestrator = simulation.NewOrchestrator(
		w.planets, w.progress, w.tickLog,
		w.buildingCatalog, w.researchCatalog,
		w.clock, w.events, w.locks, time.Second, 2,
	)
	w.planetID = shared.MustNewPlanetID(1)
	w.playerID = shared.MustNewPlayerID(1)
	w.lastErr = nil
	w.refund = nil
	w.forfeited = 0
}

// seedPlanet registers a fresh planet with the given starter balances and
// a charged energy store
func (w *world) seedPlanet(credits, durastahl, crystal int64) {
	p := colony.NewPlanet(
		w.planetID, w.playerID, "New Terra",
		20, 100000, 2000,
		resource.Amounts{
			resource.TypeCredits:   credits,
			resource.TypeDurastahl: durastahl,
			resource.TypeCrystal:   crystal,
		},
	)
	p.Stockpile().CreditEnergy(1000)
	w.planets.Put(p)
}

// buildActive commissions a building, finishes its construction, and
// brings it online
func (w *world) buildActive(typeKey string, field int) error {
	p, err := w.planets.FindByID(context.Background(), w.planetID)
	if err != nil {
		return err
	}
	bt, err := w.buildingCatalog.Get(typeKey)
	if err != nil {
		return err
	}
	startedAt := w.clock.Now().Add(-bt.BuildTime - time.Hour)
	b, err := p.Commission(bt, field, startedAt)
	if err != nil {
		return err
	}
	if _, err := p.CompleteDueConstruction(w.buildingCatalog, w.clock.Now()); err != nil {
		return err
	}
	b.SetOnline(true)
	return nil
}

// runTick advances the clock and executes the tick for the new instant
func (w *world) runTick(hours int) error {
	w.clock.Advance(time.Duration(hours) * time.Hour)
	_, err := w.orchestrator.RunTick(context.Background(), w.clock.Now())
	return err
}
