package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/galaxycolony-go/internal/application/research/commands"
	"github.com/andrescamacho/galaxycolony-go/internal/application/research/queries"
)

// NewResearchCommand creates the research command with subcommands
func NewResearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "research",
		Short: "Manage a player's research projects",
		Long: `Manage a player's research projects.

A player runs at most one research project at a time. Points accumulate
from research labs at every tick until the target is reached.

Examples:
  galaxycolony research list --player 1
  galaxycolony research start --player 1 --type ALLOY_REFINEMENT
  galaxycolony research cancel --player 1`,
	}

	cmd.AddCommand(newResearchListCommand())
	cmd.AddCommand(newResearchStartCommand())
	cmd.AddCommand(newResearchCancelCommand())

	return cmd
}

// newResearchListCommand creates the research list subcommand
func newResearchListCommand() *cobra.Command {
	var playerID int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the research catalog annotated for a player",
		Long: `List the research catalog annotated for a player.

Each entry shows its status for the player: completed, in_progress,
available, or locked (unmet prerequisite or too few labs).

Examples:
  galaxycolony research list --player 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			response, err := app.mediator.Send(ctx, &queries.AvailableResearchQuery{PlayerID: playerID})
			if err != nil {
				return fmt.Errorf("failed to list research: %w", err)
			}

			result := response.(*queries.AvailableResearchResponse)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tNAME\tCATEGORY\tTIER\tLABS\tSTATUS\tPROGRESS")
			for _, entry := range result.Entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%d/%d\n",
					entry.Key, entry.Name, entry.Category, entry.Tier,
					entry.RequiredLabs, entry.Status, entry.Accumulated, entry.Target)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&playerID, "player", 0, "Player ID (required)")
	cmd.MarkFlagRequired("player")

	return cmd
}

// newResearchStartCommand creates the research start subcommand
func newResearchStartCommand() *cobra.Command {
	var playerID int
	var researchType string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a research project for a player",
		Long: `Start a research project for a player.

Fails if another project is already in progress, if the prerequisite is
not completed, or if the player has fewer labs than the type requires.

Examples:
  galaxycolony research start --player 1 --type ALLOY_REFINEMENT`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			response, err := app.mediator.Send(ctx, &commands.StartResearchCommand{
				PlayerID:     playerID,
				ResearchType: researchType,
			})
			if err != nil {
				return fmt.Errorf("failed to start research: %w", err)
			}

			result := response.(*commands.StartResearchResponse)
			fmt.Println("Research started")
			fmt.Printf("  Type: %s\n", result.ResearchType)
			fmt.Printf("  Target: %d points\n", result.Target)
			return nil
		},
	}

	cmd.Flags().IntVar(&playerID, "player", 0, "Player ID (required)")
	cmd.Flags().StringVar(&researchType, "type", "", "Research type key (required)")
	cmd.MarkFlagRequired("player")
	cmd.MarkFlagRequired("type")

	return cmd
}

// newResearchCancelCommand creates the research cancel subcommand
func newResearchCancelCommand() *cobra.Command {
	var playerID int

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel the player's in-progress research",
		Long: `Cancel the player's in-progress research.

Accumulated points are forfeited.

Examples:
  galaxycolony research cancel --player 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			response, err := app.mediator.Send(ctx, &commands.CancelResearchCommand{PlayerID: playerID})
			if err != nil {
				return fmt.Errorf("failed to cancel research: %w", err)
			}

			result := response.(*commands.CancelResearchResponse)
			fmt.Println("Research cancelled")
			fmt.Printf("  Type: %s\n", result.ResearchType)
			fmt.Printf("  Forfeited: %d points\n", result.Forfeited)
			return nil
		},
	}

	cmd.Flags().IntVar(&playerID, "player", 0, "Player ID (required)")
	cmd.MarkFlagRequired("player")

	return cmd
}
