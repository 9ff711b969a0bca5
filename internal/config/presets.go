package config

// Presets are named full configurations for common facility scenarios.

var presets = map[string]func() *Config{
	"commissioning": func() *Config {
		cfg := Default()
		cfg.Simulation.Steps = 600
		cfg.Centrifugal.AccelerationRPMPerS = 50
		cfg.Centrifugal.MaxRPM = 8000
		return cfg
	},
	// Ramps past the instability threshold, so event generation shifts to
	// fragment-rich outcomes in the second half of the run.
	"full_power": func() *Config {
		cfg := Default()
		cfg.Simulation.Steps = 400
		cfg.Centrifugal.AccelerationRPMPerS = 500
		cfg.Centrifugal.MaxRPM = 20000
		cfg.Centrifugal.InstabilityThresholdRPM = 15000
		return cfg
	},
	"dirty_chamber": func() *Config {
		cfg := Default()
		cfg.Vacuum.InitialPressurePa = 10.0
		cfg.Vacuum.OutgassingRate = 0.2
		cfg.Detector.Enabled = true
		return cfg
	},
	"light_beam": func() *Config {
		cfg := Default()
		cfg.Beam.ElementAtomicNumber = 2
		cfg.Centrifugal.BeamMassNumber = 4
		return cfg
	},
}

// GetPreset returns a copy of the named preset, or nil if unknown.
func GetPreset(name string) *Config {
	fn, ok := presets[name]
	if !ok {
		return nil
	}
	return fn()
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
