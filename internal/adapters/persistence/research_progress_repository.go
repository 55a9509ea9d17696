package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/galaxycolony-go/internal/domain/research"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
)

// GormProgressRepository implements research.ProgressRepository using GORM
type GormProgressRepository struct {
	db *gorm.DB
}

// NewGormProgressRepository creates a new GORM research progress repository
func NewGormProgressRepository(db *gorm.DB) *GormProgressRepository {
	return &GormProgressRepository{db: db}
}

// FindInProgress returns the player's single in-progress row, or nil
func (r *GormProgressRepository) FindInProgress(ctx context.Context, playerID shared.PlayerID) (*research.Progress, error) {
	var model ResearchProgressModel
	result := r.db.WithContext(ctx).
		Where("player_id = ? AND state = ?", playerID.Value(), string(research.ProgressInProgress)).
		First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find research in progress: %w", result.Error)
	}
	return r.modelToProgress(&model)
}

// FindByPlayer returns every progress row a player owns
func (r *GormProgressRepository) FindByPlayer(ctx context.Context, playerID shared.PlayerID) ([]*research.Progress, error) {
	var models []ResearchProgressModel
	result := r.db.WithContext(ctx).
		Where("player_id = ?", playerID.Value()).
		Order("type_key").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list research progress: %w", result.Error)
	}
	return r.modelsToProgress(models)
}

// ListInProgress returns every in-progress row across all players, in a
// stable order for deterministic tick processing
func (r *GormProgressRepository) ListInProgress(ctx context.Context) ([]*research.Progress, error) {
	var models []ResearchProgressModel
	result := r.db.WithContext(ctx).
		Where("state = ?", string(research.ProgressInProgress)).
		Order("player_id, type_key").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list research in progress: %w", result.Error)
	}
	return r.modelsToProgress(models)
}

// CompletedKeys returns the set of research keys a player has completed
func (r *GormProgressRepository) CompletedKeys(ctx context.Context, playerID shared.PlayerID) (map[string]bool, error) {
	var keys []string
	result := r.db.WithContext(ctx).
		Model(&ResearchProgressModel{}).
		Where("player_id = ? AND state = ?", playerID.Value(), string(research.ProgressCompleted)).
		Pluck("type_key", &keys)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list completed research: %w", result.Error)
	}

	completed := make(map[string]bool, len(keys))
	for _, key := range keys {
		completed[key] = true
	}
	return completed, nil
}

// Save upserts a progress row
func (r *GormProgressRepository) Save(ctx context.Context, progress *research.Progress) error {
	model := ResearchProgressModel{
		PlayerID:    progress.PlayerID().Value(),
		TypeKey:     progress.TypeKey(),
		State:       string(progress.State()),
		Accumulated: progress.Accumulated(),
		StartedAt:   progress.StartedAt(),
		CompletedAt: progress.CompletedAt(),
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&model)
	if result.Error != nil {
		return fmt.Errorf("failed to save research progress: %w", result.Error)
	}
	return nil
}

// Delete removes a progress row (cancellation)
func (r *GormProgressRepository) Delete(ctx context.Context, playerID shared.PlayerID, typeKey string) error {
	result := r.db.WithContext(ctx).
		Where("player_id = ? AND type_key = ?", playerID.Value(), typeKey).
		Delete(&ResearchProgressModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete research progress: %w", result.Error)
	}
	return nil
}

func (r *GormProgressRepository) modelToProgress(model *ResearchProgressModel) (*research.Progress, error) {
	playerID, err := shared.NewPlayerID(model.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID in database: %w", err)
	}
	return research.ReconstructProgress(
		playerID,
		model.TypeKey,
		research.ProgressState(model.State),
		model.Accumulated,
		model.StartedAt,
		model.CompletedAt,
	), nil
}

func (r *GormProgressRepository) modelsToProgress(models []ResearchProgressModel) ([]*research.Progress, error) {
	out := make([]*research.Progress, 0, len(models))
	for i := range models {
		p, err := r.modelToProgress(&models[i])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
