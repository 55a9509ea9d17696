package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "galaxycolony",
		Short: "GalaxyColony CLI - Administer the colony simulation engine",
		Long: `GalaxyColony CLI provides commands to administer the colony simulation.
The CLI operates directly against the engine database.

Examples:
  galaxycolony colony create --player 1 --name "New Terra"
  galaxycolony colony dashboard --player 1
  galaxycolony building build --planet 1 --type DURASTAHL_MINE --field 3
  galaxycolony research start --player 1 --type ALLOY_REFINEMENT
  galaxycolony tick run
  galaxycolony tick status`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search standard locations)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewColonyCommand())
	rootCmd.AddCommand(NewBuildingCommand())
	rootCmd.AddCommand(NewResearchCommand())
	rootCmd.AddCommand(NewTickCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
