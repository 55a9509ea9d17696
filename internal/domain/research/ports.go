package research

import (
	"context"

	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
)

// ProgressRepository is the persistence port for research progress rows
type ProgressRepository interface {
	// FindInProgress returns the player's single in-progress row, or nil
	FindInProgress(ctx context.Context, playerID shared.PlayerID) (*Progress, error)

	// FindByPlayer returns all rows for a player, completed included
	FindByPlayer(ctx context.Context, playerID shared.PlayerID) ([]*Progress, error)

	// ListInProgress returns every in-progress row across all players
	ListInProgress(ctx context.Context) ([]*Progress, error)

	// CompletedKeys returns the set of research keys a player has completed
	CompletedKeys(ctx context.Context, playerID shared.PlayerID) (map[string]bool, error)

	// Save persists a row (insert or update)
	Save(ctx context.Context, progress *Progress) error

	// Delete removes a row; used when research is cancelled
	Delete(ctx context.Context, playerID shared.PlayerID, typeKey string) error
}
