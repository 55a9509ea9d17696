package colony

import (
	"context"

	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
)

// PlanetRepository is the persistence port for planet aggregates.
// Implementations live in the adapters layer.
type PlanetRepository interface {
	// FindByID loads a planet with its buildings
	FindByID(ctx context.Context, id shared.PlanetID) (*Planet, error)

	// FindByOwner loads all planets owned by a player
	FindByOwner(ctx context.Context, ownerID shared.PlayerID) ([]*Planet, error)

	// AllIDs returns the IDs of every colonized planet
	AllIDs(ctx context.Context) ([]shared.PlanetID, error)

	// NextIdentity reserves the identifier for a new colony
	NextIdentity(ctx context.Context) (shared.PlanetID, error)

	// Save persists the aggregate and its buildings as one transactional unit
	Save(ctx context.Context, planet *Planet) error
}
