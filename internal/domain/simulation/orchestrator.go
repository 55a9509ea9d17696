package simulation

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/andrescamacho/galaxycolony-go/internal/domain/colony"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/research"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/resource"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
)

// Orchestrator drives one tick across all planets. Per planet the sub-steps
// run in strict order (energy, production, construction) because later
// steps read state written by earlier ones; across planets processing is
// independent and runs on a bounded worker pool. Research advances once per
// player after every owned planet has been processed.
type Orchestrator struct {
	planets         colony.PlanetRepository
	progress        research.ProgressRepository
	tickLog         TickLog
	buildingCatalog colony.Catalog
	researchCatalog research.Catalog
	engine          *research.Engine
	clock           shared.Clock
	events          *shared.EventQueue
	locks           *Locks
	lockTimeout     time.Duration
	workers         int
}

// NewOrchestrator wires the tick driver. A nil clock defaults to real time.
func NewOrchestrator(
	planets colony.PlanetRepository,
	progress research.ProgressRepository,
	tickLog TickLog,
	buildingCatalog colony.Catalog,
	researchCatalog research.Catalog,
	clock shared.Clock,
	events *shared.EventQueue,
	locks *Locks,
	lockTimeout time.Duration,
	workers int,
) *Orchestrator {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if locks == nil {
		locks = NewLocks()
	}
	if lockTimeout <= 0 {
		lockTimeout = 5 * time.Second
	}
	if workers <= 0 {
		workers = 4
	}
	return &Orchestrator{
		planets:         planets,
		progress:        progress,
		tickLog:         tickLog,
		buildingCatalog: buildingCatalog,
		researchCatalog: researchCatalog,
		engine:          research.NewEngine(),
		clock:           clock,
		events:          events,
		locks:           locks,
		lockTimeout:     lockTimeout,
		workers:         workers,
	}
}

// Events returns the queue the orchestrator appends to
func (o *Orchestrator) Events() *shared.EventQueue {
	return o.events
}

// Locks returns the lock table shared with the command handlers
func (o *Orchestrator) Locks() *Locks {
	return o.locks
}

// playerAccumulator gathers per-player readings across the planet pass
type playerAccumulator struct {
	labs     int
	points   int64
	rates    resource.Amounts
	realized resource.Amounts
}

func newPlayerAccumulator() *playerAccumulator {
	return &playerAccumulator{
		rates:    make(resource.Amounts),
		realized: make(resource.Amounts),
	}
}

func (a *playerAccumulator) stats() research.PlayerTickStats {
	return research.PlayerTickStats{
		LabCount:              a.labs,
		ResearchPointsPerTick: a.points,
		ProductionRates:       a.rates,
		RealizedProduction:    a.realized,
	}
}

// RunTick executes the tick for the given slot. Re-running an
// already-executed slot is rejected with TickAlreadyRanError before any
// planet state is touched.
func (o *Orchestrator) RunTick(ctx context.Context, slot time.Time) (*TickRecord, error) {
	if err := o.tickLog.Begin(ctx, slot); err != nil {
		return nil, err
	}
	startedAt := o.clock.Now()

	planetIDs, err := o.planets.AllIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing planets: %w", err)
	}

	var (
		mu        sync.Mutex
		processed int
		skipped   int
		byPlayer  = make(map[int]*playerAccumulator)
	)

	jobs := make(chan shared.PlanetID)
	var wg sync.WaitGroup
	for w := 0; w < o.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for planetID := range jobs {
				owner, acc, err := o.processPlanet(ctx, planetID, startedAt)
				mu.Lock()
				if err != nil {
					// A data-integrity fault halts this planet only;
					// the rest of the tick run proceeds.
					log.Printf("tick %s: skipping planet %s: %v", slot.Format(time.RFC3339), planetID, err)
					skipped++
				} else {
					processed++
					target, ok := byPlayer[owner.Value()]
					if !ok {
						target = newPlayerAccumulator()
						byPlayer[owner.Value()] = target
					}
					target.labs += acc.labs
					target.points += acc.points
					for t, v := range acc.rates {
						target.rates[t] += v
					}
					for t, v := range acc.realized {
						target.realized[t] += v
					}
				}
				mu.Unlock()
			}
		}()
	}
	for _, id := range planetIDs {
		jobs <- id
	}
	close(jobs)
	wg.Wait()

	if err := o.advanceResearch(ctx, startedAt, byPlayer); err != nil {
		return nil, err
	}

	record := TickRecord{
		Slot:             slot,
		StartedAt:        startedAt,
		Duration:         o.clock.Now().Sub(startedAt),
		PlanetsProcessed: processed,
		PlanetsSkipped:   skipped,
		EventsEmitted:    o.events.Len(),
	}
	if err := o.tickLog.Complete(ctx, record); err != nil {
		return nil, fmt.Errorf("recording tick completion: %w", err)
	}
	return &record, nil
}

// processPlanet runs the strictly ordered per-planet sub-steps:
// energy apply, production credit, construction transitions
func (o *Orchestrator) processPlanet(ctx context.Context, planetID shared.PlanetID, now time.Time) (shared.PlayerID, *playerAccumulator, error) {
	release, err := o.locks.AcquirePlanet(planetID, o.lockTimeout)
	if err != nil {
		return shared.PlayerID{}, nil, err
	}
	defer release()

	planet, err := o.planets.FindByID(ctx, planetID)
	if err != nil {
		return shared.PlayerID{}, nil, err
	}

	// Step 1: energy balance, including the shedding decision
	if _, err := colony.ApplyEnergyTick(planet, o.buildingCatalog); err != nil {
		return shared.PlayerID{}, nil, err
	}

	// Step 2: material production for online buildings, clamped by storage
	rates, err := planet.ProductionPerTick(o.buildingCatalog)
	if err != nil {
		return shared.PlayerID{}, nil, err
	}
	realized := planet.Stockpile().CreditAll(rates)

	// Step 3: construction completions
	completed, err := planet.CompleteDueConstruction(o.buildingCatalog, now)
	if err != nil {
		return shared.PlayerID{}, nil, err
	}

	acc := newPlayerAccumulator()
	acc.rates = rates
	acc.realized = realized
	if acc.labs, err = planet.LabCount(o.buildingCatalog); err != nil {
		return shared.PlayerID{}, nil, err
	}
	if acc.points, err = planet.ResearchPointsPerTick(o.buildingCatalog); err != nil {
		return shared.PlayerID{}, nil, err
	}

	if err := o.planets.Save(ctx, planet); err != nil {
		return shared.PlayerID{}, nil, err
	}

	for _, b := range completed {
		o.events.Append(shared.NewBuildingCompletedEvent(now, planetID, b.ID(), b.TypeKey()))
	}
	o.events.Append(shared.NewResourcesUpdatedEvent(now, planetID, planet.Stockpile().Snapshot().StringMap(), planet.Stockpile().Energy()))

	return planet.OwnerID(), acc, nil
}

// advanceResearch runs step 4 once per player, after all planets
func (o *Orchestrator) advanceResearch(ctx context.Context, now time.Time, byPlayer map[int]*playerAccumulator) error {
	rows, err := o.progress.ListInProgress(ctx)
	if err != nil {
		return fmt.Errorf("listing research in progress: %w", err)
	}
	for _, row := range rows {
		playerID := row.PlayerID()
		release, err := o.locks.AcquirePlayer(playerID, o.lockTimeout)
		if err != nil {
			log.Printf("tick: skipping research for player %s: %v", playerID, err)
			continue
		}

		acc, ok := byPlayer[playerID.Value()]
		if !ok {
			acc = newPlayerAccumulator()
		}
		rt, err := o.researchCatalog.Get(row.TypeKey())
		if err != nil {
			release()
			log.Printf("tick: skipping research %s for player %s: %v", row.TypeKey(), playerID, err)
			continue
		}

		done, err := o.engine.AdvanceTick(o.researchCatalog, row, acc.stats(), now)
		if err != nil {
			release()
			log.Printf("tick: research %s for player %s failed to advance: %v", row.TypeKey(), playerID, err)
			continue
		}
		if err := o.progress.Save(ctx, row); err != nil {
			release()
			return fmt.Errorf("saving research progress: %w", err)
		}
		if done {
			o.events.Append(shared.NewResearchCompletedEvent(now, playerID, row.TypeKey()))
		} else {
			o.events.Append(shared.NewResearchProgressedEvent(now, playerID, row.TypeKey(), row.Accumulated(), rt.Target()))
		}
		release()
	}
	return nil
}
