package resource

import "fmt"

// Type represents one of the named resources a colony can hold or produce
type Type string

const (
	// TypeCredits is the universal currency
	TypeCredits Type = "CREDITS"

	// TypeDurastahl is the primary construction alloy
	TypeDurastahl Type = "DURASTAHL"

	// TypeCrystal is the refined crystal used by advanced structures
	TypeCrystal Type = "CRYSTAL"

	// TypeVorium is the rare mineral consumed by high-tier technology
	TypeVorium Type = "VORIUM"

	// TypeHydrazine is the fuel compound produced by chemical plants
	TypeHydrazine Type = "HYDRAZINE"

	// TypeFood sustains the colony population
	TypeFood Type = "FOOD"

	// TypeEnergy is stored separately from the material pool and never
	// counts against the shared storage capacity
	TypeEnergy Type = "ENERGY"

	// TypeResearchPoints is a player-scoped currency, accrued by labs and
	// spent by point-cost research; it is not stored on any planet
	TypeResearchPoints Type = "RESEARCH_POINTS"
)

// MaterialTypes returns the resource types that share the planet's storage
// pool, in the fixed catalog order. Simultaneous credits within a tick are
// applied in this order, so later entries absorb any capacity shortfall.
func MaterialTypes() []Type {
	return []Type{
		TypeCredits,
		TypeDurastahl,
		TypeCrystal,
		TypeVorium,
		TypeHydrazine,
		TypeFood,
	}
}

// String returns the string representation of the Type
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the resource type is known
func (t Type) IsValid() bool {
	switch t {
	case TypeCredits, TypeDurastahl, TypeCrystal, TypeVorium, TypeHydrazine, TypeFood,
		TypeEnergy, TypeResearchPoints:
		return true
	default:
		return false
	}
}

// IsMaterial reports whether the type counts against the shared storage pool
func (t Type) IsMaterial() bool {
	switch t {
	case TypeCredits, TypeDurastahl, TypeCrystal, TypeVorium, TypeHydrazine, TypeFood:
		return true
	default:
		return false
	}
}

// ParseType parses a string into a resource Type
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid resource type: %s", s)
	}
	return t, nil
}
