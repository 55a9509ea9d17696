package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/galaxycolony-go/internal/adapters/persistence"
	"github.com/andrescamacho/galaxycolony-go/internal/application/simulation/commands"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/simulation"
)

// NewTickCommand creates the tick command with subcommands
func NewTickCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Run and inspect simulation ticks",
		Long: `Run and inspect simulation ticks.

A tick processes every planet for the current schedule slot: completes
finished construction, settles the energy balance, realizes production,
and advances research. Each slot runs at most once.

Examples:
  galaxycolony tick run
  galaxycolony tick status`,
	}

	cmd.AddCommand(newTickRunCommand())
	cmd.AddCommand(newTickStatusCommand())

	return cmd
}

// newTickRunCommand creates the tick run subcommand
func newTickRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Trigger a tick for the current slot",
		Long: `Trigger a tick for the current slot.

If the slot has already run the command fails with an idempotency error.
Triggers are rate limited to absorb rapid retries.

Examples:
  galaxycolony tick run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()

			response, err := app.mediator.Send(ctx, &commands.RunTickCommand{})
			if err != nil {
				return fmt.Errorf("failed to run tick: %w", err)
			}

			result := response.(*commands.RunTickResponse)
			fmt.Println("Tick completed")
			fmt.Printf("  Slot: %s\n", result.Slot.Format(time.RFC3339))
			fmt.Printf("  Duration: %s\n", formatDuration(result.Duration))
			fmt.Printf("  Planets processed: %d\n", result.PlanetsProcessed)
			fmt.Printf("  Planets skipped: %d\n", result.PlanetsSkipped)
			fmt.Printf("  Events emitted: %d\n", result.EventsEmitted)
			return nil
		},
	}

	return cmd
}

// newTickStatusCommand creates the tick status subcommand
func newTickStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the last completed tick and the next scheduled slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			schedule, err := simulation.NewSchedule(app.cfg.Simulation.Timezone, app.cfg.Simulation.Slots)
			if err != nil {
				return fmt.Errorf("invalid tick schedule: %w", err)
			}

			tickLog := persistence.NewGormTickLog(app.db)
			last, err := tickLog.LastCompleted(ctx)
			if err != nil {
				return fmt.Errorf("failed to load tick log: %w", err)
			}

			if last == nil {
				fmt.Println("Last tick: never ran")
			} else {
				fmt.Printf("Last tick: %s\n", last.Slot.Format(time.RFC3339))
				fmt.Printf("  Duration: %s\n", formatDuration(last.Duration))
				fmt.Printf("  Planets processed: %d\n", last.PlanetsProcessed)
				fmt.Printf("  Planets skipped: %d\n", last.PlanetsSkipped)
				fmt.Printf("  Events emitted: %d\n", last.EventsEmitted)
			}
			fmt.Printf("Next tick: %s\n", schedule.NextAfter(time.Now()).Format(time.RFC3339))
			return nil
		},
	}

	return cmd
}
