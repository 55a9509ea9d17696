package colony

import (
	"fmt"
	"sort"
	"time"

	"github.com/andrescamacho/galaxycolony-go/internal/domain/resource"
)

// Catalog provides read-only access to the building type reference data
type Catalog interface {
	Get(key string) (*BuildingType, error)
	All() []*BuildingType
}

// StaticCatalog is an in-memory Catalog backed by a fixed map
type StaticCatalog struct {
	types map[string]*BuildingType
}

// NewStaticCatalog creates a catalog from the given types, validating each
func NewStaticCatalog(types []*BuildingType) (*StaticCatalog, error) {
	byKey := make(map[string]*BuildingType, len(types))
	for _, bt := range types {
		if err := bt.Validate(); err != nil {
			return nil, fmt.Errorf("invalid building type: %w", err)
		}
		if _, exists := byKey[bt.Key]; exists {
			return nil, fmt.Errorf("duplicate building type key: %s", bt.Key)
		}
		byKey[bt.Key] = bt
	}
	return &StaticCatalog{types: byKey}, nil
}

// Get returns the building type for a key
func (c *StaticCatalog) Get(key string) (*BuildingType, error) {
	bt, ok := c.types[key]
	if !ok {
		return nil, fmt.Errorf("unknown building type: %s", key)
	}
	return bt, nil
}

// All returns every building type, sorted by key for determinism
func (c *StaticCatalog) All() []*BuildingType {
	out := make([]*BuildingType, 0, len(c.types))
	for _, bt := range c.types {
		out = append(out, bt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Building type keys for the standard catalog
const (
	BuildingCommandCenter     = "COMMAND_CENTER"
	BuildingDurastahlMine     = "DURASTAHL_MINE"
	BuildingCrystalExtractor  = "CRYSTAL_EXTRACTOR"
	BuildingVoriumSynthesizer = "VORIUM_SYNTHESIZER"
	BuildingHydrazinePlant    = "HYDRAZINE_PLANT"
	BuildingHydroponicFarm    = "HYDROPONIC_FARM"
	BuildingTradeHub          = "TRADE_HUB"
	BuildingSolarArray        = "SOLAR_ARRAY"
	BuildingFusionReactor     = "FUSION_REACTOR"
	BuildingStorageDepot      = "STORAGE_DEPOT"
	BuildingEnergySilo        = "ENERGY_SILO"
	BuildingResearchLab       = "RESEARCH_LAB"
	BuildingShieldGenerator   = "SHIELD_GENERATOR"
)

// DefaultCatalog returns the standard building reference data
func DefaultCatalog() *StaticCatalog {
	catalog, err := NewStaticCatalog([]*BuildingType{
		{
			Key:                BuildingCommandCenter,
			Name:               "Command Center",
			Category:           CategoryCommand,
			Production:         resource.Amounts{resource.TypeCredits: 20},
			EnergyPerTick:      5,
			EnergyCostToBuild:  0,
			BuildCost:          resource.Amounts{resource.TypeCredits: 400, resource.TypeDurastahl: 300},
			BuildTime:          30 * time.Minute,
			StorageBonus:       500,
			EnergyStorageBonus: 100,
			SingleInstance:     true,
		},
		{
			Key:               BuildingDurastahlMine,
			Name:              "Durastahl Mine",
			Category:          CategoryProduction,
			Production:        resource.Amounts{resource.TypeDurastahl: 50},
			EnergyPerTick:     10,
			EnergyCostToBuild: 20,
			BuildCost:         resource.Amounts{resource.TypeCredits: 600, resource.TypeDurastahl: 500, resource.TypeCrystal: 100},
			BuildTime:         60 * time.Minute,
		},
		{
			Key:               BuildingCrystalExtractor,
			Name:              "Crystal Extractor",
			Category:          CategoryProduction,
			Production:        resource.Amounts{resource.TypeCrystal: 30},
			EnergyPerTick:     15,
			EnergyCostToBuild: 30,
			BuildCost:         resource.Amounts{resource.TypeCredits: 800, resource.TypeDurastahl: 400},
			BuildTime:         90 * time.Minute,
		},
		{
			Key:               BuildingVoriumSynthesizer,
			Name:              "Vorium Synthesizer",
			Category:          CategoryProduction,
			Production:        resource.Amounts{resource.TypeVorium: 10},
			EnergyPerTick:     40,
			EnergyCostToBuild: 80,
			BuildCost:         resource.Amounts{resource.TypeCredits: 2000, resource.TypeDurastahl: 1200, resource.TypeCrystal: 600},
			BuildTime:         4 * time.Hour,
			RequiresResearch:  "VORIUM_SYNTHESIS",
		},
		{
			Key:               BuildingHydrazinePlant,
			Name:              "Hydrazine Plant",
			Category:          CategoryProduction,
			Production:        resource.Amounts{resource.TypeHydrazine: 25},
			EnergyPerTick:     20,
			EnergyCostToBuild: 40,
			BuildCost:         resource.Amounts{resource.TypeCredits: 1000, resource.TypeDurastahl: 600, resource.TypeCrystal: 200},
			BuildTime:         2 * time.Hour,
		},
		{
			Key:               BuildingHydroponicFarm,
			Name:              "Hydroponic Farm",
			Category:          CategoryProduction,
			Production:        resource.Amounts{resource.TypeFood: 40},
			EnergyPerTick:     8,
			EnergyCostToBuild: 15,
			BuildCost:         resource.Amounts{resource.TypeCredits: 500, resource.TypeDurastahl: 200},
			BuildTime:         45 * time.Minute,
		},
		{
			Key:               BuildingTradeHub,
			Name:              "Trade Hub",
			Category:          CategoryProduction,
			Production:        resource.Amounts{resource.TypeCredits: 60},
			EnergyPerTick:     12,
			EnergyCostToBuild: 25,
			BuildCost:         resource.Amounts{resource.TypeCredits: 1200, resource.TypeDurastahl: 400, resource.TypeCrystal: 150},
			BuildTime:         90 * time.Minute,
		},
		{
			Key:              BuildingSolarArray,
			Name:             "Solar Array",
			Category:         CategoryEnergy,
			EnergyProduction: 50,
			BuildCost:        resource.Amounts{resource.TypeCredits: 500, resource.TypeDurastahl: 300},
			BuildTime:        40 * time.Minute,
		},
		{
			Key:               BuildingFusionReactor,
			Name:              "Fusion Reactor",
			Category:          CategoryEnergy,
			EnergyProduction:  300,
			EnergyCostToBuild: 50,
			BuildCost:         resource.Amounts{resource.TypeCredits: 3000, resource.TypeDurastahl: 1500, resource.TypeCrystal: 800, resource.TypeVorium: 100},
			BuildTime:         6 * time.Hour,
			RequiresResearch:  "FUSION_POWER",
		},
		{
			Key:          BuildingStorageDepot,
			Name:         "Storage Depot",
			Category:     CategoryStorage,
			StorageBonus: 2000,
			BuildCost:    resource.Amounts{resource.TypeCredits: 400, resource.TypeDurastahl: 600},
			BuildTime:    time.Hour,
		},
		{
			Key:                BuildingEnergySilo,
			Name:               "Energy Silo",
			Category:           CategoryStorage,
			EnergyStorageBonus: 500,
			BuildCost:          resource.Amounts{resource.TypeCredits: 600, resource.TypeDurastahl: 400, resource.TypeCrystal: 100},
			BuildTime:          time.Hour,
		},
		{
			Key:                   BuildingResearchLab,
			Name:                  "Research Lab",
			Category:              CategoryResearch,
			ResearchPointsPerTick: 10,
			EnergyPerTick:         25,
			EnergyCostToBuild:     50,
			BuildCost:             resource.Amounts{resource.TypeCredits: 1500, resource.TypeDurastahl: 800, resource.TypeCrystal: 400},
			BuildTime:             3 * time.Hour,
		},
		{
			Key:               BuildingShieldGenerator,
			Name:              "Shield Generator",
			Category:          CategoryDefense,
			EnergyPerTick:     30,
			EnergyCostToBuild: 60,
			BuildCost:         resource.Amounts{resource.TypeCredits: 2500, resource.TypeDurastahl: 1000, resource.TypeCrystal: 500},
			BuildTime:         5 * time.Hour,
			RequiresResearch:  "DEFLECTOR_SHIELDS",
		},
	})
	if err != nil {
		// The default catalog is compile-time data; failing to build it is
		// a programming error, not a runtime condition.
		panic(err)
	}
	return catalog
}
