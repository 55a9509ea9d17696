package shared

import "fmt"

// PlanetID is a value object identifying a single colonized planet
type PlanetID struct {
	value int
}

// NewPlanetID creates a new PlanetID value object
func NewPlanetID(id int) (PlanetID, error) {
	if id <= 0 {
		return PlanetID{}, fmt.Errorf("planet_id must be positive")
	}
	return PlanetID{value: id}, nil
}

// MustNewPlanetID creates a new PlanetID, panicking if invalid
// Use this only when you're certain the ID is valid (e.g., from database)
func MustNewPlanetID(id int) PlanetID {
	planetID, err := NewPlanetID(id)
	if err != nil {
		panic(err)
	}
	return planetID
}

// Value returns the integer value of the PlanetID
func (p PlanetID) Value() int {
	return p.value
}

// String returns a string representation of the PlanetID
func (p PlanetID) String() string {
	return fmt.Sprintf("%d", p.value)
}

// Equals checks if two PlanetIDs are equal
func (p PlanetID) Equals(other PlanetID) bool {
	return p.value == other.value
}

// IsZero checks if the PlanetID is the zero value (uninitialized)
func (p PlanetID) IsZero() bool {
	return p.value == 0
}
