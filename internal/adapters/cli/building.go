package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/galaxycolony-go/internal/application/construction/commands"
)

// NewBuildingCommand creates the building command with subcommands
func NewBuildingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "building",
		Short: "Manage planet buildings",
		Long: `Manage planet buildings.

Construction and upgrades debit resources immediately and complete at a
later tick. Demolition refunds half of the cumulative investment.

Examples:
  galaxycolony building build --planet 1 --type DURASTAHL_MINE --field 3
  galaxycolony building upgrade --planet 1 --building 4f6c...
  galaxycolony building demolish --planet 1 --building 4f6c...`,
	}

	cmd.AddCommand(newBuildingBuildCommand())
	cmd.AddCommand(newBuildingUpgradeCommand())
	cmd.AddCommand(newBuildingDemolishCommand())

	return cmd
}

// newBuildingBuildCommand creates the building build subcommand
func newBuildingBuildCommand() *cobra.Command {
	var planetID int
	var buildingType string
	var field int

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Start construction of a new building",
		Long: `Start construction of a new building.

The level 1 cost is debited immediately and the building occupies its
field right away in UNDER_CONSTRUCTION state. Research-gated types
require the corresponding research to be completed first.

Examples:
  galaxycolony building build --planet 1 --type SOLAR_ARRAY --field 1
  galaxycolony building build --planet 1 --type DURASTAHL_MINE --field 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			response, err := app.mediator.Send(ctx, &commands.StartConstructionCommand{
				PlanetID:     planetID,
				BuildingType: buildingType,
				Field:        field,
			})
			if err != nil {
				return fmt.Errorf("failed to start construction: %w", err)
			}

			result := response.(*commands.StartConstructionResponse)
			fmt.Println("Construction started")
			fmt.Printf("  Building ID: %s\n", result.BuildingID)
			fmt.Printf("  Completes at: %s\n", result.CompletesAt.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().IntVar(&planetID, "planet", 0, "Planet ID (required)")
	cmd.Flags().StringVar(&buildingType, "type", "", "Building type key (required)")
	cmd.Flags().IntVar(&field, "field", 0, "Field index on the planet")
	cmd.MarkFlagRequired("planet")
	cmd.MarkFlagRequired("type")

	return cmd
}

// newBuildingUpgradeCommand creates the building upgrade subcommand
func newBuildingUpgradeCommand() *cobra.Command {
	var planetID int
	var buildingID string

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Start an upgrade of an active building",
		Long: `Start an upgrade of an active building.

The next-level cost is debited immediately. The building keeps producing
at its current level until the upgrade completes.

Examples:
  galaxycolony building upgrade --planet 1 --building 4f6c...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			response, err := app.mediator.Send(ctx, &commands.UpgradeBuildingCommand{
				PlanetID:   planetID,
				BuildingID: buildingID,
			})
			if err != nil {
				return fmt.Errorf("failed to start upgrade: %w", err)
			}

			result := response.(*commands.UpgradeBuildingResponse)
			fmt.Println("Upgrade started")
			fmt.Printf("  Building ID: %s\n", result.BuildingID)
			fmt.Printf("  Pending level: %d\n", result.PendingLevel)
			fmt.Printf("  Completes at: %s\n", result.CompletesAt.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().IntVar(&planetID, "planet", 0, "Planet ID (required)")
	cmd.Flags().StringVar(&buildingID, "building", "", "Building ID (required)")
	cmd.MarkFlagRequired("planet")
	cmd.MarkFlagRequired("building")

	return cmd
}

// newBuildingDemolishCommand creates the building demolish subcommand
func newBuildingDemolishCommand() *cobra.Command {
	var planetID int
	var buildingID string

	cmd := &cobra.Command{
		Use:   "demolish",
		Short: "Demolish a building and refund part of its cost",
		Long: `Demolish a building and refund part of its cost.

Half of the cumulative investment is credited back, subject to storage
capacity. The field becomes free immediately. The command center cannot
be demolished.

Examples:
  galaxycolony building demolish --planet 1 --building 4f6c...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			response, err := app.mediator.Send(ctx, &commands.DemolishBuildingCommand{
				PlanetID:   planetID,
				BuildingID: buildingID,
			})
			if err != nil {
				return fmt.Errorf("failed to demolish building: %w", err)
			}

			result := response.(*commands.DemolishBuildingResponse)
			fmt.Println("Building demolished")
			if len(result.Refund) == 0 {
				fmt.Println("  Refund: none")
				return nil
			}
			fmt.Println("  Refund:")
			for _, key := range sortedKeys(result.Refund) {
				fmt.Printf("    %-18s %d\n", key, result.Refund[key])
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&planetID, "planet", 0, "Planet ID (required)")
	cmd.Flags().StringVar(&buildingID, "building", "", "Building ID (required)")
	cmd.MarkFlagRequired("planet")
	cmd.MarkFlagRequired("building")

	return cmd
}
