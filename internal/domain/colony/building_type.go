package colony

import (
	"fmt"
	"time"

	"github.com/andrescamacho/galaxycolony-go/internal/domain/resource"
)

// Category groups building types by their role in the colony
type Category string

const (
	CategoryCommand    Category = "COMMAND"
	CategoryProduction Category = "PRODUCTION"
	CategoryEnergy     Category = "ENERGY"
	CategoryStorage    Category = "STORAGE"
	CategoryResearch   Category = "RESEARCH"
	CategoryDefense    Category = "DEFENSE"
)

// BuildingType is an immutable catalog entry describing one kind of
// building. All rates are per level per tick; costs are one-time.
type BuildingType struct {
	Key      string
	Name     string
	Category Category

	// Production lists the material resources generated per level per tick
	Production resource.Amounts

	// EnergyProduction is energy generated per level per tick
	EnergyProduction int64

	// EnergyPerTick is energy consumed per level per tick while the
	// building is online
	EnergyPerTick int64

	// EnergyCostToBuild is the one-time energy reservation debited when
	// construction is commissioned, distinct from EnergyPerTick
	EnergyCostToBuild int64

	// BuildCost is the one-time material/currency cost
	BuildCost resource.Amounts

	// BuildTime is how long construction takes
	BuildTime time.Duration

	// StorageBonus raises the planet's shared storage capacity per level
	StorageBonus int64

	// EnergyStorageBonus raises the planet's energy capacity per level
	EnergyStorageBonus int64

	// ResearchPointsPerTick is the research point output per level,
	// non-zero only for Research-category buildings
	ResearchPointsPerTick int64

	// SingleInstance restricts the building to one per planet
	// (the command center rule)
	SingleInstance bool

	// RequiresResearch names the research key that unlocks this building,
	// empty if available from the start
	RequiresResearch string
}

// Validate checks the catalog entry for data-integrity faults. A negative
// cost or rate halts tick processing for the affected planet, so the
// orchestrator validates types up front.
func (bt *BuildingType) Validate() error {
	if bt.Key == "" {
		return fmt.Errorf("building type has empty key")
	}
	if bt.EnergyProduction < 0 || bt.EnergyPerTick < 0 || bt.EnergyCostToBuild < 0 {
		return fmt.Errorf("building type %s has negative energy figures", bt.Key)
	}
	if bt.BuildTime < 0 {
		return fmt.Errorf("building type %s has negative build time", bt.Key)
	}
	if bt.StorageBonus < 0 || bt.EnergyStorageBonus < 0 || bt.ResearchPointsPerTick < 0 {
		return fmt.Errorf("building type %s has negative bonus figures", bt.Key)
	}
	for t, amount := range bt.Production {
		if !t.IsMaterial() {
			return fmt.Errorf("building type %s produces non-material resource %s", bt.Key, t)
		}
		if amount < 0 {
			return fmt.Errorf("building type %s has negative production for %s", bt.Key, t)
		}
	}
	for t, amount := range bt.BuildCost {
		if !t.IsMaterial() {
			return fmt.Errorf("building type %s has non-material cost %s", bt.Key, t)
		}
		if amount < 0 {
			return fmt.Errorf("building type %s has negative cost for %s", bt.Key, t)
		}
	}
	return nil
}

// UpgradeCost returns the material cost of upgrading to the given level.
// Cost scales linearly with the target level.
func (bt *BuildingType) UpgradeCost(toLevel int) resource.Amounts {
	return bt.BuildCost.Scale(int64(toLevel), 1)
}
