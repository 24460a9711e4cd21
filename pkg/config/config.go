// Package config provides the unified configuration system for the object
// pool library. It defines a single Settings structure covering the tunable
// behavior of a pool: capacity bounds, idle eviction, and observability.
//
// The structure is organized into logical sections:
//   - Capacity: maximum pool size
//   - Eviction: idle timeout and sweep interval for timed pools
//   - Observability: diagnostics counters, Prometheus metrics, logging
//
// Example usage:
//
//	settings := config.DefaultSettings("buffer-pool")
//	settings.MaxSize = 64
//	settings.Eviction.IdleTimeout = 5 * time.Minute
//
//	if err := settings.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"time"

	"github.com/ajitpratap0/objectpool/pkg/errors"
)

// Settings is the configuration structure for a single pool instance.
// Factories and lifecycle hooks are code, not configuration, and are supplied
// separately when the pool is constructed.
type Settings struct {
	// Name identifies the pool in logs and metric labels
	Name string `yaml:"name" json:"name"`

	// MaxSize bounds the number of idle objects retained by the pool.
	// Must be positive.
	MaxSize int `yaml:"max_size" json:"max_size"`

	// Eviction settings apply to timed pools only
	Eviction EvictionSettings `yaml:"eviction" json:"eviction"`

	// Observability settings for monitoring and debugging
	Observability ObservabilitySettings `yaml:"observability" json:"observability"`
}

// EvictionSettings controls background removal of idle pooled objects.
type EvictionSettings struct {
	// IdleTimeout is how long an object may sit unused before a sweep
	// destroys it. Zero disables idle eviction.
	IdleTimeout time.Duration `yaml:"idle_timeout" json:"idle_timeout"`
	// SweepInterval is the period between eviction sweeps. Zero derives
	// the interval from IdleTimeout.
	SweepInterval time.Duration `yaml:"sweep_interval" json:"sweep_interval"`
}

// ObservabilitySettings toggles the observability surfaces of a pool.
type ObservabilitySettings struct {
	// EnableDiagnostics turns on the pool's atomic diagnostic counters
	EnableDiagnostics bool `yaml:"enable_diagnostics" json:"enable_diagnostics"`
	// EnableMetrics publishes pool activity to Prometheus
	EnableMetrics bool `yaml:"enable_metrics" json:"enable_metrics"`
	// LogLevel sets the logger level for pool events
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// DefaultSettings returns settings with sensible defaults for the named pool.
func DefaultSettings(name string) *Settings {
	return &Settings{
		Name:    name,
		MaxSize: 32,
		Eviction: EvictionSettings{
			IdleTimeout:   5 * time.Minute,
			SweepInterval: 30 * time.Second,
		},
		Observability: ObservabilitySettings{
			EnableDiagnostics: false,
			EnableMetrics:     false,
			LogLevel:          "info",
		},
	}
}

// Validate checks the settings for consistency. It is called by pool
// constructors before any pool state is created.
func (s *Settings) Validate() error {
	if s.Name == "" {
		return errors.New(errors.ErrorTypeConfig, "pool name must not be empty")
	}
	if s.MaxSize <= 0 {
		return errors.Newf(errors.ErrorTypeConfig,
			"maximum pool size must be positive, got %d", s.MaxSize).
			WithDetail("pool", s.Name)
	}
	if s.Eviction.IdleTimeout < 0 {
		return errors.New(errors.ErrorTypeConfig, "idle timeout must not be negative").
			WithDetail("pool", s.Name)
	}
	if s.Eviction.SweepInterval < 0 {
		return errors.New(errors.ErrorTypeConfig, "sweep interval must not be negative").
			WithDetail("pool", s.Name)
	}
	return nil
}
