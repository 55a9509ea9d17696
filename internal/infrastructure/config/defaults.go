package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "galaxycolony"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "galaxycolony"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Simulation defaults
	if cfg.Simulation.Timezone == "" {
		cfg.Simulation.Timezone = "UTC"
	}
	if len(cfg.Simulation.Slots) == 0 {
		cfg.Simulation.Slots = []string{"00:00", "12:00", "15:00", "18:00", "21:00"}
	}
	if cfg.Simulation.LockTimeout == 0 {
		cfg.Simulation.LockTimeout = 5 * time.Second
	}
	if cfg.Simulation.Workers == 0 {
		cfg.Simulation.Workers = 4
	}
	if cfg.Simulation.TriggerInterval == 0 {
		cfg.Simulation.TriggerInterval = 10 * time.Second
	}
	if cfg.Simulation.Colony.FieldCount == 0 {
		cfg.Simulation.Colony.FieldCount = 20
	}
	if cfg.Simulation.Colony.StorageCapacity == 0 {
		cfg.Simulation.Colony.StorageCapacity = 10000
	}
	if cfg.Simulation.Colony.EnergyCapacity == 0 {
		cfg.Simulation.Colony.EnergyCapacity = 1000
	}
	if cfg.Simulation.Colony.StarterCredits == 0 {
		cfg.Simulation.Colony.StarterCredits = 3000
	}
	if cfg.Simulation.Colony.StarterDurastahl == 0 {
		cfg.Simulation.Colony.StarterDurastahl = 2000
	}
	if cfg.Simulation.Colony.StarterCrystal == 0 {
		cfg.Simulation.Colony.StarterCrystal = 500
	}
	if cfg.Simulation.Colony.StarterEnergy == 0 {
		cfg.Simulation.Colony.StarterEnergy = 200
	}

	// Metrics defaults
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Daemon defaults
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/galaxycolony-daemon.pid"
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 30 * time.Second
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
	if cfg.Logging.Rotation.MaxSize == 0 {
		cfg.Logging.Rotation.MaxSize = 100 // MB
	}
	if cfg.Logging.Rotation.MaxBackups == 0 {
		cfg.Logging.Rotation.MaxBackups = 3
	}
	if cfg.Logging.Rotation.MaxAge == 0 {
		cfg.Logging.Rotation.MaxAge = 28 // days
	}
}
