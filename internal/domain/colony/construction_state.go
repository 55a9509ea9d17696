package colony

import "fmt"

// ConstructionState is the tagged lifecycle state of a building instance.
// The tagged representation makes invalid combinations (a building that is
// simultaneously active and unfinished) unrepresentable.
type ConstructionState string

const (
	// StateUnderConstruction indicates the build timer is still running.
	// Buildings in this state contribute no production and no consumption.
	StateUnderConstruction ConstructionState = "UNDER_CONSTRUCTION"

	// StateActive indicates construction finished and the building takes
	// part in production, subject to per-tick energy gating
	StateActive ConstructionState = "ACTIVE"

	// StateDemolished is terminal; the field is freed and 50% of the
	// material build cost has been refunded
	StateDemolished ConstructionState = "DEMOLISHED"
)

// String returns the string representation of the state
func (s ConstructionState) String() string {
	return string(s)
}

// IsValid checks if the state is known
func (s ConstructionState) IsValid() bool {
	switch s {
	case StateUnderConstruction, StateActive, StateDemolished:
		return true
	default:
		return false
	}
}

// ParseConstructionState parses a string into a ConstructionState
func ParseConstructionState(s string) (ConstructionState, error) {
	state := ConstructionState(s)
	if !state.IsValid() {
		return "", fmt.Errorf("invalid construction state: %s", s)
	}
	return state, nil
}
