package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/andrescamacho/galaxycolony-go/internal/adapters/cli"
	"github.com/andrescamacho/galaxycolony-go/internal/adapters/metrics"
	"github.com/andrescamacho/galaxycolony-go/internal/application/common"
	simulationCmd "github.com/andrescamacho/galaxycolony-go/internal/application/simulation/commands"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/simulation"
	"github.com/andrescamacho/galaxycolony-go/internal/infrastructure/config"
	"github.com/andrescamacho/galaxycolony-go/internal/infrastructure/database"
	"github.com/andrescamacho/galaxycolony-go/internal/infrastructure/pidfile"
)

func main() {
	forceFlag := flag.Bool("force", false, "Kill any existing daemon and start a new one")
	flag.Parse()

	fmt.Println("GalaxyColony Daemon v0.1.0")
	fmt.Println("==========================")

	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig("") // Empty string = search default paths

	// Acquire PID file lock to prevent multiple instances
	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Daemon.PIDFile)
	pf := pidfile.New(cfg.Daemon.PIDFile)

	if err := pf.Acquire(); err != nil {
		if *forceFlag {
			fmt.Println("Force mode enabled - attempting to kill existing daemon...")
			if killErr := pf.KillExisting(); killErr != nil {
				log.Fatalf("Failed to kill existing daemon: %v", killErr)
			}
			fmt.Println("Existing daemon killed")

			if err := pf.Acquire(); err != nil {
				log.Fatalf("Failed to acquire PID file lock after killing existing daemon: %v", err)
			}
		} else {
			log.Fatalf("Failed to acquire PID file lock: %v\nUse --force to kill the existing daemon", err)
		}
	}

	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Warning: failed to release PID file: %v", err)
		}
	}()
	fmt.Println("PID file lock acquired")

	if err := run(cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)
	fmt.Println("Database connected")

	// Metrics registry and HTTP endpoint
	var metricsServer *metrics.Server
	var collector *metrics.TickMetricsCollector
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		collector = metrics.NewTickMetricsCollector()
		if err := collector.Register(metrics.GetRegistry()); err != nil {
			return fmt.Errorf("failed to register metrics collectors: %w", err)
		}
		metrics.SetGlobalCollector(collector)

		metricsServer = metrics.NewServer(&cfg.Metrics)
		if metricsServer != nil {
			go func() {
				fmt.Printf("Metrics available at http://%s:%d%s\n",
					cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
				if err := metricsServer.Start(); err != nil {
					log.Printf("Metrics server error: %v", err)
				}
			}()
		}
	}

	clock := shared.NewRealClock()

	var dispatch common.Mediator
	dispatch, err = cli.BuildMediator(cfg, db, clock)
	if err != nil {
		return err
	}
	if collector != nil {
		dispatch = metrics.NewInstrumentedMediator(dispatch, collector)
	}

	schedule, err := simulation.NewSchedule(cfg.Simulation.Timezone, cfg.Simulation.Slots)
	if err != nil {
		return fmt.Errorf("invalid tick schedule: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Tick schedule: %v (%s)\n", cfg.Simulation.Slots, cfg.Simulation.Timezone)
	fmt.Println("\nDaemon is running")
	fmt.Println("Press Ctrl+C to stop")

	// Catch up on the current slot before waiting for the next one. The
	// tick log makes re-triggering an already-run slot harmless.
	triggerTick(ctx, dispatch)

	if err := scheduleLoop(ctx, dispatch, schedule, clock); err != nil {
		return err
	}

	// Graceful shutdown
	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Daemon.ShutdownTimeout)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Warning: metrics server shutdown: %v", err)
		}
	}

	fmt.Println("\nDaemon stopped")
	return nil
}

// scheduleLoop fires a tick at every schedule slot until the context is
// cancelled
func scheduleLoop(ctx context.Context, dispatch common.Mediator, schedule *simulation.Schedule, clock shared.Clock) error {
	for {
		next := schedule.NextAfter(clock.Now())
		// Fire just past the slot boundary so the slot resolves
		// unambiguously
		wait := time.Until(next) + time.Second

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
			triggerTick(ctx, dispatch)
		}
	}
}

// triggerTick runs one tick and logs the outcome. Idempotency rejections
// and trigger throttling are expected conditions, not failures.
func triggerTick(ctx context.Context, dispatch common.Mediator) {
	response, err := dispatch.Send(ctx, &simulationCmd.RunTickCommand{})
	if err != nil {
		var alreadyRan *shared.TickAlreadyRanError
		var busy *shared.BusyError
		switch {
		case errors.As(err, &alreadyRan):
			log.Printf("Tick skipped: %v", err)
		case errors.As(err, &busy):
			log.Printf("Tick throttled: %v", err)
		case ctx.Err() != nil:
			// Shutting down
		default:
			log.Printf("Tick failed: %v", err)
		}
		return
	}

	result := response.(*simulationCmd.RunTickResponse)
	log.Printf("Tick %s completed in %s: %d planet(s) processed, %d skipped, %d event(s)",
		result.Slot.Format(time.RFC3339), result.Duration.Round(time.Millisecond),
		result.PlanetsProcessed, result.PlanetsSkipped, result.EventsEmitted)
}
