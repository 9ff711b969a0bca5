package facility

// minPressurePa is a floor guarding against non-physical zero or negative
// pressure when tick sizes are large.
const minPressurePa = 1e-12

// VacuumConfig holds the construction parameters of the chamber.
type VacuumConfig struct {
	InitialPressurePa float64
	BasePressurePa    float64
	PumpSpeed         float64 // tuning coefficient, 1/s
	OutgassingRate    float64 // tuning coefficient, 1/s
}

// VacuumChamber models chamber pressure pumped toward a base pressure.
// The only state beyond the construction parameters is the previous
// pressure value.
type VacuumChamber struct {
	pressurePa     float64
	basePressurePa float64
	pumpSpeed      float64
	outgassingRate float64
}

// NewVacuumChamber validates cfg and constructs the model.
func NewVacuumChamber(cfg VacuumConfig) (*VacuumChamber, error) {
	if cfg.InitialPressurePa <= 0 {
		return nil, invalidParam("initial_pressure_pa", cfg.InitialPressurePa, "must be positive")
	}
	if cfg.BasePressurePa <= 0 {
		return nil, invalidParam("base_pressure_pa", cfg.BasePressurePa, "must be positive")
	}
	if cfg.BasePressurePa > cfg.InitialPressurePa {
		return nil, invalidParam("base_pressure_pa", cfg.BasePressurePa, "must be <= initial_pressure_pa")
	}
	if cfg.PumpSpeed < 0 {
		return nil, invalidParam("pump_speed", cfg.PumpSpeed, "must be non-negative")
	}
	if cfg.OutgassingRate < 0 {
		return nil, invalidParam("outgassing_rate", cfg.OutgassingRate, "must be non-negative")
	}

	return &VacuumChamber{
		pressurePa:     cfg.InitialPressurePa,
		basePressurePa: cfg.BasePressurePa,
		pumpSpeed:      cfg.PumpSpeed,
		outgassingRate: cfg.OutgassingRate,
	}, nil
}

// Advance updates pressure over dt. Pumping pulls the pressure toward the
// base pressure while outgassing pushes it up, more strongly at higher
// pressure:
//
//	P' = P - pump*(P - base)*dt + outgas*P*dt
//
// The result is clamped so pressure never falls below the base pressure.
// A non-positive dt is a no-op.
func (v *VacuumChamber) Advance(dt float64) {
	if dt <= 0 {
		return
	}

	pumpTerm := -v.pumpSpeed * (v.pressurePa - v.basePressurePa)
	outgasTerm := v.outgassingRate * v.pressurePa

	v.pressurePa += (pumpTerm + outgasTerm) * dt

	if v.pressurePa < v.basePressurePa {
		v.pressurePa = v.basePressurePa
	}
	if v.pressurePa < minPressurePa {
		v.pressurePa = minPressurePa
	}
}

// Pressure returns the current chamber pressure in pascals. Always > 0.
func (v *VacuumChamber) Pressure() float64 {
	return v.pressurePa
}

// BasePressure returns the theoretical floor pressure in pascals.
func (v *VacuumChamber) BasePressure() float64 {
	return v.basePressurePa
}
