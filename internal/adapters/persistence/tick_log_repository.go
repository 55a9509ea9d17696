package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/simulation"
)

// GormTickLog implements simulation.TickLog using GORM. The unique index on
// the slot column makes Begin an atomic claim: whichever process inserts the
// row first owns the tick, every other attempt fails with TickAlreadyRan.
type GormTickLog struct {
	db *gorm.DB
}

// NewGormTickLog creates a new GORM tick log
func NewGormTickLog(db *gorm.DB) *GormTickLog {
	return &GormTickLog{db: db}
}

// Begin claims the slot, rejecting re-runs
func (l *GormTickLog) Begin(ctx context.Context, slot time.Time) error {
	model := TickLogModel{
		Slot:      slot.UTC(),
		StartedAt: time.Now().UTC(),
	}
	result := l.db.WithContext(ctx).Create(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) || isUniqueViolation(result.Error) {
			return shared.NewTickAlreadyRanError(slot.UTC().Format(time.RFC3339))
		}
		return fmt.Errorf("failed to claim tick slot: %w", result.Error)
	}
	return nil
}

// Complete fills in the outcome for a claimed slot
func (l *GormTickLog) Complete(ctx context.Context, record simulation.TickRecord) error {
	now := time.Now().UTC()
	result := l.db.WithContext(ctx).
		Model(&TickLogModel{}).
		Where("slot = ?", record.Slot.UTC()).
		Updates(map[string]interface{}{
			"completed_at":      &now,
			"duration":          record.Duration,
			"planets_processed": record.PlanetsProcessed,
			"planets_skipped":   record.PlanetsSkipped,
			"events_emitted":    record.EventsEmitted,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to record tick completion: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no claimed slot to complete: %s", record.Slot.UTC().Format(time.RFC3339))
	}
	return nil
}

// LastCompleted returns the most recent completed tick, or nil
func (l *GormTickLog) LastCompleted(ctx context.Context) (*simulation.TickRecord, error) {
	var model TickLogModel
	result := l.db.WithContext(ctx).
		Where("completed_at IS NOT NULL").
		Order("slot DESC").
		First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load last tick: %w", result.Error)
	}

	return &simulation.TickRecord{
		Slot:             model.Slot,
		StartedAt:        model.StartedAt,
		Duration:         model.Duration,
		PlanetsProcessed: model.PlanetsProcessed,
		PlanetsSkipped:   model.PlanetsSkipped,
		EventsEmitted:    model.EventsEmitted,
	}, nil
}

// isUniqueViolation matches driver-specific unique constraint errors that
// gorm does not translate on every dialect
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
