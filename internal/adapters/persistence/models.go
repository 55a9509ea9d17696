package persistence

import (
	"time"
)

// PlanetModel represents the planets table
type PlanetModel struct {
	ID             int       `gorm:"column:id;primaryKey;autoIncrement"`
	OwnerID        int       `gorm:"column:owner_id;index;not null"`
	Name           string    `gorm:"column:name;not null"`
	FieldCount     int       `gorm:"column:field_count;not null"`
	BaseStorage    int64     `gorm:"column:base_storage;not null"`
	BaseEnergyCap  int64     `gorm:"column:base_energy_cap;not null"`
	Balances       string    `gorm:"column:balances;type:text;not null"` // resource map as JSON
	Energy         int64     `gorm:"column:energy;not null;default:0"`
	CommissionSeq  int64     `gorm:"column:commission_seq;not null;default:0"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`

	Buildings []BuildingModel `gorm:"foreignKey:PlanetID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (PlanetModel) TableName() string {
	return "planets"
}

// BuildingModel represents the buildings table
type BuildingModel struct {
	ID            string     `gorm:"column:id;primaryKey"`
	PlanetID      int        `gorm:"column:planet_id;index;not null"`
	Field         int        `gorm:"column:field;not null"`
	TypeKey       string     `gorm:"column:type_key;not null"`
	Level         int        `gorm:"column:level;not null;default:1"`
	PendingLevel  int        `gorm:"column:pending_level;not null;default:1"`
	State         string     `gorm:"column:state;not null"`
	CommissionSeq int64      `gorm:"column:commission_seq;not null"`
	StartedAt     time.Time  `gorm:"column:started_at;not null"`
	CompletedAt   *time.Time `gorm:"column:completed_at"`
	Online        bool       `gorm:"column:online;not null;default:false"`
}

func (BuildingModel) TableName() string {
	return "buildings"
}

// ResearchProgressModel represents the research_progress table.
// Primary key is composite: (player_id, type_key), one row per project a
// player has ever started and not cancelled.
type ResearchProgressModel struct {
	PlayerID    int        `gorm:"column:player_id;primaryKey;not null"`
	TypeKey     string     `gorm:"column:type_key;primaryKey;not null"`
	State       string     `gorm:"column:state;not null"`
	Accumulated int64      `gorm:"column:accumulated;not null;default:0"`
	StartedAt   time.Time  `gorm:"column:started_at;not null"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
}

func (ResearchProgressModel) TableName() string {
	return "research_progress"
}

// TickLogModel represents the tick_log table. The unique slot column is the
// idempotency claim: the first runner to insert a row for a slot owns that
// tick, later attempts hit the constraint.
type TickLogModel struct {
	ID               int           `gorm:"column:id;primaryKey;autoIncrement"`
	Slot             time.Time     `gorm:"column:slot;uniqueIndex;not null"`
	StartedAt        time.Time     `gorm:"column:started_at;not null"`
	CompletedAt      *time.Time    `gorm:"column:completed_at"`
	Duration         time.Duration `gorm:"column:duration"`
	PlanetsProcessed int           `gorm:"column:planets_processed;not null;default:0"`
	PlanetsSkipped   int           `gorm:"column:planets_skipped;not null;default:0"`
	EventsEmitted    int           `gorm:"column:events_emitted;not null;default:0"`
}

func (TickLogModel) TableName() string {
	return "tick_log"
}
