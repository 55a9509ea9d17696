package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/galaxycolony-go/internal/application/construction/commands"
	"github.com/andrescamacho/galaxycolony-go/internal/application/player/queries"
)

// NewColonyCommand creates the colony command with subcommands
func NewColonyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "colony",
		Short: "Manage player colonies",
		Long: `Manage player colonies.

A colony is a planet owned by a player. Creating one seeds the planet
with starter resources and commissions the command center on field 0.

Examples:
  galaxycolony colony create --player 1 --name "New Terra"
  galaxycolony colony dashboard --player 1`,
	}

	cmd.AddCommand(newColonyCreateCommand())
	cmd.AddCommand(newColonyDashboardCommand())

	return cmd
}

// newColonyCreateCommand creates the colony create subcommand
func newColonyCreateCommand() *cobra.Command {
	var playerID int
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Colonize a new planet for a player",
		Long: `Colonize a new planet for a player.

The new planet receives the configured starter balances and a command
center under construction on field 0.

Examples:
  galaxycolony colony create --player 1 --name "New Terra"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			response, err := app.mediator.Send(ctx, &commands.ColonizePlanetCommand{
				PlayerID: playerID,
				Name:     name,
			})
			if err != nil {
				return fmt.Errorf("failed to colonize planet: %w", err)
			}

			result := response.(*commands.ColonizePlanetResponse)
			fmt.Println("Colonized new planet")
			fmt.Printf("  Planet ID: %d\n", result.PlanetID)
			fmt.Printf("  Command Center: %s\n", result.CommandCenterID)
			return nil
		},
	}

	cmd.Flags().IntVar(&playerID, "player", 0, "Player ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "Planet name (required)")
	cmd.MarkFlagRequired("player")
	cmd.MarkFlagRequired("name")

	return cmd
}

// newColonyDashboardCommand creates the colony dashboard subcommand
func newColonyDashboardCommand() *cobra.Command {
	var playerID int

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show a player's empire overview",
		Long: `Show a player's empire overview.

Lists every planet with its balances, storage, energy balance, per-tick
production, and buildings, plus the active research project and the next
scheduled tick.

Examples:
  galaxycolony colony dashboard --player 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			response, err := app.mediator.Send(ctx, &queries.DashboardSummaryQuery{PlayerID: playerID})
			if err != nil {
				return fmt.Errorf("failed to load dashboard: %w", err)
			}

			result := response.(*queries.DashboardSummaryResponse)
			printDashboard(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&playerID, "player", 0, "Player ID (required)")
	cmd.MarkFlagRequired("player")

	return cmd
}

func printDashboard(summary *queries.DashboardSummaryResponse) {
	fmt.Printf("Player %d - %d planet(s)\n", summary.PlayerID, len(summary.Planets))
	fmt.Printf("Next tick: %s\n", summary.NextTickAt.Format(time.RFC3339))

	if summary.ActiveResearch != nil {
		fmt.Printf("Research: %s (%d/%d)\n",
			summary.ActiveResearch.ResearchType,
			summary.ActiveResearch.Accumulated,
			summary.ActiveResearch.Target)
	} else {
		fmt.Println("Research: none in progress")
	}

	for _, planet := range summary.Planets {
		fmt.Printf("\nPlanet %d: %s\n", planet.PlanetID, planet.Name)
		fmt.Printf("  Storage: %d/%d  Energy: %d/%d (+%d/-%d per tick)\n",
			planet.StorageUsed, planet.StorageCapacity,
			planet.EnergyStore, planet.EnergyCapacity,
			planet.EnergyProduction, planet.EnergyConsumption)

		fmt.Println("  Balances:")
		for _, key := range sortedKeys(planet.Balances) {
			line := fmt.Sprintf("    %-18s %d", key, planet.Balances[key])
			if rate, ok := planet.ProductionPerTick[key]; ok && rate != 0 {
				line += fmt.Sprintf("  (%+d/tick)", rate)
			}
			fmt.Println(line)
		}

		if len(planet.Buildings) > 0 {
			fmt.Println("  Buildings:")
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "    FIELD\tTYPE\tLEVEL\tSTATE\tONLINE")
			for _, b := range planet.Buildings {
				fmt.Fprintf(w, "    %d\t%s\t%d\t%s\t%t\n",
					b.Field, b.Type, b.Level, b.State, b.Online)
			}
			w.Flush()
		}
	}
}

func sortedKeys(amounts map[string]int64) []string {
	keys := make([]string, 0, len(amounts))
	for key := range amounts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
