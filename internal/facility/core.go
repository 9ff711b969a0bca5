package facility

import "math"

// nucleonMass is the approximate rest mass of a nucleon in kg. The energy
// estimate only needs consistent scaling, not physical precision.
const nucleonMass = 1.67e-27

// CentrifugalConfig holds the construction parameters of the core.
type CentrifugalConfig struct {
	RadiusM                 float64
	InitialRPM              float64
	MaxRPM                  float64
	AccelerationRPMPerS     float64
	BeamMassNumber          int
	InstabilityThresholdRPM float64
}

// CentrifugalCore is the rotational accelerator model. RPM is the driving
// variable; it is mutated only by Advance and never decreases.
type CentrifugalCore struct {
	radiusM      float64
	rpm          float64
	maxRPM       float64
	rampRPMPerS  float64
	massNumber   int
	thresholdRPM float64
}

// NewCentrifugalCore validates cfg and constructs the model. Validation
// errors wrap ErrInvalidParameter; callers must halt the run before any
// tick executes.
func NewCentrifugalCore(cfg CentrifugalConfig) (*CentrifugalCore, error) {
	if cfg.RadiusM <= 0 {
		return nil, invalidParam("radius_m", cfg.RadiusM, "must be positive")
	}
	if cfg.InitialRPM < 0 {
		return nil, invalidParam("initial_rpm", cfg.InitialRPM, "must be non-negative")
	}
	if cfg.BeamMassNumber <= 0 {
		return nil, invalidParam("beam_mass_number", float64(cfg.BeamMassNumber), "must be positive")
	}
	if cfg.InstabilityThresholdRPM <= 0 {
		return nil, invalidParam("instability_threshold_rpm", cfg.InstabilityThresholdRPM, "must be positive")
	}
	if cfg.MaxRPM < cfg.InitialRPM {
		return nil, invalidParam("max_rpm", cfg.MaxRPM, "must be >= initial_rpm")
	}
	if cfg.AccelerationRPMPerS < 0 {
		return nil, invalidParam("acceleration_rpm_per_s", cfg.AccelerationRPMPerS, "must be non-negative")
	}

	return &CentrifugalCore{
		radiusM:      cfg.RadiusM,
		rpm:          cfg.InitialRPM,
		maxRPM:       cfg.MaxRPM,
		rampRPMPerS:  cfg.AccelerationRPMPerS,
		massNumber:   cfg.BeamMassNumber,
		thresholdRPM: cfg.InstabilityThresholdRPM,
	}, nil
}

// Advance ramps RPM linearly over dt, saturating at max RPM. A non-positive
// dt is a no-op: upstream scheduling should never produce one, but the
// model stays idempotent if it does.
func (c *CentrifugalCore) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	if c.rpm < c.maxRPM {
		c.rpm += c.rampRPMPerS * dt
		if c.rpm > c.maxRPM {
			c.rpm = c.maxRPM
		}
	}
}

// RPM returns the current rotations per minute.
func (c *CentrifugalCore) RPM() float64 {
	return c.rpm
}

// Radius returns the core radius in meters.
func (c *CentrifugalCore) Radius() float64 {
	return c.radiusM
}

// MassNumber returns the beam mass number A.
func (c *CentrifugalCore) MassNumber() int {
	return c.massNumber
}

func (c *CentrifugalCore) angularVelocity() float64 {
	return c.rpm / 60.0 * 2.0 * math.Pi
}

// Kinematics derives the rotational state from the current RPM.
func (c *CentrifugalCore) Kinematics() Kinematics {
	omega := c.angularVelocity()
	return Kinematics{
		AngularVelocity:         omega,
		TangentialVelocity:      omega * c.radiusM,
		CentrifugalAcceleration: omega * omega * c.radiusM,
	}
}

// Stable reports whether the beam is below or at the instability
// threshold. RPM equal to the threshold still counts as stable.
func (c *CentrifugalCore) Stable() bool {
	return c.rpm <= c.thresholdRPM
}

// KineticEnergyPerNucleon returns the non-relativistic kinetic energy of
// one nucleon at the current tangential velocity, in joules.
//
// This is deliberately not relativistically corrected even at high
// tangential velocity: the value only provides a consistent scaling input
// to the event generator.
func (c *CentrifugalCore) KineticEnergyPerNucleon() float64 {
	v := c.angularVelocity() * c.radiusM
	return 0.5 * nucleonMass * v * v
}

// KineticEnergyEstimate scales the per-nucleon energy by the beam mass
// number A. Same non-relativistic caveat as KineticEnergyPerNucleon.
func (c *CentrifugalCore) KineticEnergyEstimate() float64 {
	return float64(c.massNumber) * c.KineticEnergyPerNucleon()
}
