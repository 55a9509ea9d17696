package research

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/galaxycolony-go/internal/domain/resource"
)

// Category groups research types by the game system they improve
type Category string

const (
	CategoryConstruction Category = "CONSTRUCTION"
	CategoryEnergy       Category = "ENERGY"
	CategoryDefense      Category = "DEFENSE"
	CategoryPropulsion   Category = "PROPULSION"
	CategoryEconomy      Category = "ECONOMY"
)

// ProductionThreshold is the production-based cost model: the research can
// only be started while the named resource is being produced at or above
// the gate rate, and completes once cumulative production reaches the
// required total.
type ProductionThreshold struct {
	Resource      resource.Type
	RatePerTick   int64
	RequiredTotal int64
}

// UnlockEffect describes what completing a research grants: a building
// type, a ship type (consumed by the external shipyard), or a named
// percentage bonus other subsystems query by category and name.
type UnlockEffect struct {
	BuildingKey  string
	ShipKey      string
	BonusName    string
	BonusPercent int
}

// ResearchType is an immutable catalog entry. Exactly one of the two cost
// models is set: PointCost > 0 for point-cost research, or Threshold for
// production-threshold research.
type ResearchType struct {
	Key          string
	Name         string
	Category     Category
	Tier         int
	Prerequisite string
	RequiredLabs int
	PointCost    int64
	Threshold    *ProductionThreshold
	Unlocks      UnlockEffect
}

// Target returns the accumulation target of whichever cost model is set
func (rt *ResearchType) Target() int64 {
	if rt.Threshold != nil {
		return rt.Threshold.RequiredTotal
	}
	return rt.PointCost
}

// IsThreshold reports whether the type uses the production-threshold model
func (rt *ResearchType) IsThreshold() bool {
	return rt.Threshold != nil
}

// Validate checks the catalog entry for data-integrity faults, including
// the exactly-one-cost-model rule
func (rt *ResearchType) Validate() error {
	if rt.Key == "" {
		return fmt.Errorf("research type has empty key")
	}
	if rt.RequiredLabs < 0 {
		return fmt.Errorf("research type %s has negative lab requirement", rt.Key)
	}
	hasPoints := rt.PointCost > 0
	hasThreshold := rt.Threshold != nil
	if hasPoints == hasThreshold {
		return fmt.Errorf("research type %s must have exactly one cost model", rt.Key)
	}
	if hasThreshold {
		if !rt.Threshold.Resource.IsMaterial() {
			return fmt.Errorf("research type %s thresholds non-material resource %s", rt.Key, rt.Threshold.Resource)
		}
		if rt.Threshold.RatePerTick <= 0 || rt.Threshold.RequiredTotal <= 0 {
			return fmt.Errorf("research type %s has non-positive threshold figures", rt.Key)
		}
	}
	return nil
}

// Catalog provides read-only access to the research reference data
type Catalog interface {
	Get(key string) (*ResearchType, error)
	All() []*ResearchType
}

// StaticCatalog is an in-memory Catalog backed by a fixed map
type StaticCatalog struct {
	types map[string]*ResearchType
}

// NewStaticCatalog creates a catalog from the given types, validating each
// entry and every prerequisite reference
func NewStaticCatalog(types []*ResearchType) (*StaticCatalog, error) {
	byKey := make(map[string]*ResearchType, len(types))
	for _, rt := range types {
		if err := rt.Validate(); err != nil {
			return nil, fmt.Errorf("invalid research type: %w", err)
		}
		if _, exists := byKey[rt.Key]; exists {
			return nil, fmt.Errorf("duplicate research type key: %s", rt.Key)
		}
		byKey[rt.Key] = rt
	}
	for _, rt := range byKey {
		if rt.Prerequisite == "" {
			continue
		}
		if _, ok := byKey[rt.Prerequisite]; !ok {
			return nil, fmt.Errorf("research type %s references unknown prerequisite %s", rt.Key, rt.Prerequisite)
		}
	}
	return &StaticCatalog{types: byKey}, nil
}

// Get returns the research type for a key
func (c *StaticCatalog) Get(key string) (*ResearchType, error) {
	rt, ok := c.types[key]
	if !ok {
		return nil, fmt.Errorf("unknown research type: %s", key)
	}
	return rt, nil
}

// All returns every research type sorted by tier, then key
func (c *StaticCatalog) All() []*ResearchType {
	out := make([]*ResearchType, 0, len(c.types))
	for _, rt := range c.types {
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tier != out[j].Tier {
			return out[i].Tier < out[j].Tier
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Research type keys for the standard catalog
const (
	ResearchAlloyRefinement  = "ALLOY_REFINEMENT"
	ResearchVoriumSynthesis  = "VORIUM_SYNTHESIS"
	ResearchFusionPower      = "FUSION_POWER"
	ResearchDeflectorShields = "DEFLECTOR_SHIELDS"
	ResearchIonPropulsion    = "ION_PROPULSION"
	ResearchOrbitalLogistics = "ORBITAL_LOGISTICS"
)

// DefaultCatalog returns the standard research reference data: two chains
// plus standalone entries, forming a forest
func DefaultCatalog() *StaticCatalog {
	catalog, err := NewStaticCatalog([]*ResearchType{
		{
			Key:          ResearchAlloyRefinement,
			Name:         "Alloy Refinement",
			Category:     CategoryConstruction,
			Tier:         1,
			RequiredLabs: 1,
			Threshold: &ProductionThreshold{
				Resource:      resource.TypeDurastahl,
				RatePerTick:   25,
				RequiredTotal: 5000,
			},
			Unlocks: UnlockEffect{BonusName: "build_cost", BonusPercent: -10},
		},
		{
			Key:          ResearchVoriumSynthesis,
			Name:         "Vorium Synthesis",
			Category:     CategoryConstruction,
			Tier:         2,
			Prerequisite: ResearchAlloyRefinement,
			RequiredLabs: 2,
			PointCost:    1500,
			Unlocks:      UnlockEffect{BuildingKey: "VORIUM_SYNTHESIZER"},
		},
		{
			Key:          ResearchFusionPower,
			Name:         "Fusion Power",
			Category:     CategoryEnergy,
			Tier:         2,
			RequiredLabs: 2,
			Threshold: &ProductionThreshold{
				Resource:      resource.TypeCrystal,
				RatePerTick:   20,
				RequiredTotal: 8000,
			},
			Unlocks: UnlockEffect{BuildingKey: "FUSION_REACTOR"},
		},
		{
			Key:          ResearchDeflectorShields,
			Name:         "Deflector Shields",
			Category:     CategoryDefense,
			Tier:         3,
			Prerequisite: ResearchFusionPower,
			RequiredLabs: 3,
			PointCost:    4000,
			Unlocks:      UnlockEffect{BuildingKey: "SHIELD_GENERATOR", BonusName: "defense", BonusPercent: 15},
		},
		{
			Key:          ResearchIonPropulsion,
			Name:         "Ion Propulsion",
			Category:     CategoryPropulsion,
			Tier:         1,
			RequiredLabs: 1,
			PointCost:    800,
			Unlocks:      UnlockEffect{ShipKey: "ION_FRIGATE"},
		},
		{
			Key:          ResearchOrbitalLogistics,
			Name:         "Orbital Logistics",
			Category:     CategoryEconomy,
			Tier:         1,
			RequiredLabs: 1,
			Threshold: &ProductionThreshold{
				Resource:      resource.TypeCredits,
				RatePerTick:   50,
				RequiredTotal: 10000,
			},
			Unlocks: UnlockEffect{BonusName: "storage", BonusPercent: 10},
		},
	})
	if err != nil {
		panic(err)
	}
	return catalog
}
