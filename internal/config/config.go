// Package config defines the facility configuration. The recognized
// options are enumerated as typed fields; there is no free-form parameter
// map and no process-wide mutable state. A loaded Config is passed by
// value into the model constructors, which validate it before any tick
// executes.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ecoatom/internal/facility"
)

type Config struct {
	Simulation  SimulationConfig  `yaml:"simulation"`
	Centrifugal CentrifugalConfig `yaml:"centrifugal"`
	Vacuum      VacuumConfig      `yaml:"vacuum"`
	Beam        BeamConfig        `yaml:"beam"`
	Detector    DetectorConfig    `yaml:"detector"`
	Output      OutputConfig      `yaml:"output"`
}

type SimulationConfig struct {
	Steps              int     `yaml:"steps"`
	TimeStep           float64 `yaml:"time_step"`
	EventIntervalSteps int     `yaml:"event_interval_steps"`
	RealtimeDelay      float64 `yaml:"realtime_delay"`
	Seed               int64   `yaml:"seed"`
}

type CentrifugalConfig struct {
	RadiusM                 float64 `yaml:"radius_m"`
	InitialRPM              float64 `yaml:"initial_rpm"`
	MaxRPM                  float64 `yaml:"max_rpm"`
	AccelerationRPMPerS     float64 `yaml:"acceleration_rpm_per_s"`
	BeamMassNumber          int     `yaml:"beam_mass_number"`
	InstabilityThresholdRPM float64 `yaml:"instability_threshold_rpm"`
}

type VacuumConfig struct {
	InitialPressurePa float64 `yaml:"initial_pressure_pa"`
	BasePressurePa    float64 `yaml:"base_pressure_pa"`
	PumpSpeed         float64 `yaml:"pump_speed"`
	OutgassingRate    float64 `yaml:"outgassing_rate"`
}

type BeamConfig struct {
	ElementAtomicNumber int    `yaml:"element_atomic_number"`
	PeriodicTablePath   string `yaml:"periodic_table_path"`
}

type DetectorConfig struct {
	Enabled              bool    `yaml:"enabled"`
	Efficiency           float64 `yaml:"efficiency"`
	AngularResolutionDeg float64 `yaml:"angular_resolution_deg"`
}

type OutputConfig struct {
	DataDir string `yaml:"data_dir"`
}

// Default mirrors the stock facility configuration.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Steps:              200,
			TimeStep:           0.1,
			EventIntervalSteps: 10,
			RealtimeDelay:      0,
			Seed:               0,
		},
		Centrifugal: CentrifugalConfig{
			RadiusM:                 10.0,
			InitialRPM:              0,
			MaxRPM:                  20000,
			AccelerationRPMPerS:     200,
			BeamMassNumber:          56,
			InstabilityThresholdRPM: 15000,
		},
		Vacuum: VacuumConfig{
			InitialPressurePa: 0.001,
			BasePressurePa:    1e-9,
			PumpSpeed:         0.5,
			OutgassingRate:    0.02,
		},
		Beam: BeamConfig{
			ElementAtomicNumber: 10,
		},
		Detector: DetectorConfig{
			Enabled:              false,
			Efficiency:           0.8,
			AngularResolutionDeg: 5.0,
		},
		Output: OutputConfig{
			DataDir: ".ecoatom",
		},
	}
}

// Load reads a yaml config file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the loop-level options. Model parameters are validated
// by the facility constructors.
func (c *Config) Validate() error {
	if c.Simulation.Steps <= 0 {
		return fmt.Errorf("config: steps must be positive, got %d", c.Simulation.Steps)
	}
	if c.Simulation.TimeStep <= 0 {
		return fmt.Errorf("config: time_step must be positive, got %f", c.Simulation.TimeStep)
	}
	if c.Simulation.EventIntervalSteps <= 0 {
		return fmt.Errorf("config: event_interval_steps must be positive, got %d", c.Simulation.EventIntervalSteps)
	}
	if c.Simulation.RealtimeDelay < 0 {
		return fmt.Errorf("config: realtime_delay must be non-negative, got %f", c.Simulation.RealtimeDelay)
	}
	return nil
}

// CoreConfig converts to the facility constructor parameters.
func (c *Config) CoreConfig() facility.CentrifugalConfig {
	return facility.CentrifugalConfig{
		RadiusM:                 c.Centrifugal.RadiusM,
		InitialRPM:              c.Centrifugal.InitialRPM,
		MaxRPM:                  c.Centrifugal.MaxRPM,
		AccelerationRPMPerS:     c.Centrifugal.AccelerationRPMPerS,
		BeamMassNumber:          c.Centrifugal.BeamMassNumber,
		InstabilityThresholdRPM: c.Centrifugal.InstabilityThresholdRPM,
	}
}

// VacuumConfig converts to the facility constructor parameters.
func (c *Config) VacuumConfig() facility.VacuumConfig {
	return facility.VacuumConfig{
		InitialPressurePa: c.Vacuum.InitialPressurePa,
		BasePressurePa:    c.Vacuum.BasePressurePa,
		PumpSpeed:         c.Vacuum.PumpSpeed,
		OutgassingRate:    c.Vacuum.OutgassingRate,
	}
}
