package cli

import (
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/andrescamacho/galaxycolony-go/internal/adapters/persistence"
	"github.com/andrescamacho/galaxycolony-go/internal/application/common"
	constructionCmd "github.com/andrescamacho/galaxycolony-go/internal/application/construction/commands"
	playerQuery "github.com/andrescamacho/galaxycolony-go/internal/application/player/queries"
	researchCmd "github.com/andrescamacho/galaxycolony-go/internal/application/research/commands"
	researchQuery "github.com/andrescamacho/galaxycolony-go/internal/application/research/queries"
	simulationCmd "github.com/andrescamacho/galaxycolony-go/internal/application/simulation/commands"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/colony"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/research"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/simulation"
	"github.com/andrescamacho/galaxycolony-go/internal/infrastructure/config"
	"github.com/andrescamacho/galaxycolony-go/internal/infrastructure/database"
)

// app bundles everything a CLI command needs: configuration, the database
// connection, and a mediator with every handler registered
type app struct {
	cfg      *config.Config
	db       *gorm.DB
	mediator common.Mediator
}

// newApp loads configuration, connects to the database, and wires the full
// command surface
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	med, err := BuildMediator(cfg, db, shared.NewRealClock())
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}

	return &app{cfg: cfg, db: db, mediator: med}, nil
}

// Close releases the database connection
func (a *app) Close() {
	_ = database.Close(a.db)
}

// BuildMediator wires repositories, catalogs, and every command and query
// handler into a mediator. Shared by the CLI and the daemon.
func BuildMediator(cfg *config.Config, db *gorm.DB, clock shared.Clock) (common.Mediator, error) {
	buildingCatalog := colony.DefaultCatalog()
	researchCatalog := research.DefaultCatalog()

	planetRepo := persistence.NewGormPlanetRepository(db, buildingCatalog)
	progressRepo := persistence.NewGormProgressRepository(db)
	tickLog := persistence.NewGormTickLog(db)

	locks := simulation.NewLocks()
	events := shared.NewEventQueue()
	lockTimeout := cfg.Simulation.LockTimeout

	schedule, err := simulation.NewSchedule(cfg.Simulation.Timezone, cfg.Simulation.Slots)
	if err != nil {
		return nil, fmt.Errorf("invalid tick schedule: %w", err)
	}

	orchestrator := simulation.NewOrchestrator(
		planetRepo, progressRepo, tickLog,
		buildingCatalog, researchCatalog,
		clock, events, locks, lockTimeout, cfg.Simulation.Workers,
	)

	settings := constructionCmd.ColonySettings{
		FieldCount:       cfg.Simulation.Colony.FieldCount,
		StorageCapacity:  cfg.Simulation.Colony.StorageCapacity,
		EnergyCapacity:   cfg.Simulation.Colony.EnergyCapacity,
		StarterCredits:   cfg.Simulation.Colony.StarterCredits,
		StarterDurastahl: cfg.Simulation.Colony.StarterDurastahl,
		StarterCrystal:   cfg.Simulation.Colony.StarterCrystal,
		StarterEnergy:    cfg.Simulation.Colony.StarterEnergy,
	}

	med := common.NewMediator()

	if err := common.RegisterHandler[*constructionCmd.ColonizePlanetCommand](med,
		constructionCmd.NewColonizePlanetHandler(planetRepo, buildingCatalog, settings, clock)); err != nil {
		return nil, fmt.Errorf("failed to register colonize planet handler: %w", err)
	}
	if err := common.RegisterHandler[*constructionCmd.StartConstructionCommand](med,
		constructionCmd.NewStartConstructionHandler(planetRepo, progressRepo, buildingCatalog, locks, lockTimeout, clock)); err != nil {
		return nil, fmt.Errorf("failed to register start construction handler: %w", err)
	}
	if err := common.RegisterHandler[*constructionCmd.UpgradeBuildingCommand](med,
		constructionCmd.NewUpgradeBuildingHandler(planetRepo, buildingCatalog, locks, lockTimeout, clock)); err != nil {
		return nil, fmt.Errorf("failed to register upgrade building handler: %w", err)
	}
	if err := common.RegisterHandler[*constructionCmd.DemolishBuildingCommand](med,
		constructionCmd.NewDemolishBuildingHandler(planetRepo, buildingCatalog, locks, lockTimeout)); err != nil {
		return nil, fmt.Errorf("failed to register demolish building handler: %w", err)
	}
	if err := common.RegisterHandler[*researchCmd.StartResearchCommand](med,
		researchCmd.NewStartResearchHandler(planetRepo, progressRepo, buildingCatalog, researchCatalog, locks, lockTimeout, clock)); err != nil {
		return nil, fmt.Errorf("failed to register start research handler: %w", err)
	}
	if err := common.RegisterHandler[*researchCmd.CancelResearchCommand](med,
		researchCmd.NewCancelResearchHandler(progressRepo, locks, lockTimeout)); err != nil {
		return nil, fmt.Errorf("failed to register cancel research handler: %w", err)
	}
	if err := common.RegisterHandler[*researchQuery.AvailableResearchQuery](med,
		researchQuery.NewAvailableResearchHandler(planetRepo, progressRepo, buildingCatalog, researchCatalog)); err != nil {
		return nil, fmt.Errorf("failed to register available research handler: %w", err)
	}
	if err := common.RegisterHandler[*playerQuery.DashboardSummaryQuery](med,
		playerQuery.NewDashboardSummaryHandler(planetRepo, progressRepo, buildingCatalog, researchCatalog, schedule, clock)); err != nil {
		return nil, fmt.Errorf("failed to register dashboard summary handler: %w", err)
	}
	limiter := rate.NewLimiter(rate.Every(cfg.Simulation.TriggerInterval), 1)
	if err := common.RegisterHandler[*simulationCmd.RunTickCommand](med,
		simulationCmd.NewRunTickHandler(orchestrator, schedule, events, limiter, clock)); err != nil {
		return nil, fmt.Errorf("failed to register run tick handler: %w", err)
	}

	return med, nil
}

// formatDuration renders a duration in a compact human form
func formatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
