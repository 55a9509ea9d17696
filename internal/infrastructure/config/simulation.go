package config

import "time"

// SimulationConfig holds the tick engine configuration
type SimulationConfig struct {
	// IANA time zone the tick schedule is interpreted in
	Timezone string `mapstructure:"timezone" validate:"required"`

	// Wall-clock tick slots as HH:MM strings, local to Timezone
	Slots []string `mapstructure:"slots" validate:"required,min=1"`

	// Maximum wait for a planet or player lock before a command fails busy
	LockTimeout time.Duration `mapstructure:"lock_timeout" validate:"required"`

	// Number of planets processed concurrently during a tick
	Workers int `mapstructure:"workers" validate:"min=1"`

	// Minimum interval between manual tick triggers
	TriggerInterval time.Duration `mapstructure:"trigger_interval"`

	// Colony holds the new-colony starting conditions
	Colony ColonyConfig `mapstructure:"colony"`
}

// ColonyConfig holds the starting conditions applied on colonization
type ColonyConfig struct {
	FieldCount       int   `mapstructure:"field_count" validate:"min=1"`
	StorageCapacity  int64 `mapstructure:"storage_capacity" validate:"min=1"`
	EnergyCapacity   int64 `mapstructure:"energy_capacity" validate:"min=1"`
	StarterCredits   int64 `mapstructure:"starter_credits" validate:"min=0"`
	StarterDurastahl int64 `mapstructure:"starter_durastahl" validate:"min=0"`
	StarterCrystal   int64 `mapstructure:"starter_crystal" validate:"min=0"`
	StarterEnergy    int64 `mapstructure:"starter_energy" validate:"min=0"`
}
