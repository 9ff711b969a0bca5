// Package metrics provides per-tick run metrics for the beamline loop.
package metrics

import "github.com/san-kum/ecoatom/internal/facility"

// Metric observes every tick record and reduces it to a single value
// reported at the end of a run.
type Metric interface {
	Name() string
	Observe(rec facility.TickRecord)
	Value() float64
	Reset()
}

// StableFraction reports the fraction of ticks the beam was stable.
type StableFraction struct {
	stable  int
	samples int
}

func NewStableFraction() *StableFraction {
	return &StableFraction{}
}

func (s *StableFraction) Name() string { return "stable_fraction" }

func (s *StableFraction) Observe(rec facility.TickRecord) {
	s.samples++
	if rec.Stable {
		s.stable++
	}
}

func (s *StableFraction) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return float64(s.stable) / float64(s.samples)
}

func (s *StableFraction) Reset() {
	s.stable = 0
	s.samples = 0
}

// PumpdownTime reports the first simulated time at which chamber pressure
// reached the target, or -1 if it never did.
type PumpdownTime struct {
	targetPa float64
	reached  bool
	time     float64
}

func NewPumpdownTime(targetPa float64) *PumpdownTime {
	return &PumpdownTime{targetPa: targetPa}
}

func (p *PumpdownTime) Name() string { return "pumpdown_time_s" }

func (p *PumpdownTime) Observe(rec facility.TickRecord) {
	if p.reached {
		return
	}
	if rec.Pressure <= p.targetPa {
		p.reached = true
		p.time = rec.Elapsed
	}
}

func (p *PumpdownTime) Value() float64 {
	if !p.reached {
		return -1
	}
	return p.time
}

func (p *PumpdownTime) Reset() {
	p.reached = false
	p.time = 0
}

// PeakAcceleration reports the maximum centrifugal acceleration seen.
type PeakAcceleration struct {
	peak float64
}

func NewPeakAcceleration() *PeakAcceleration {
	return &PeakAcceleration{}
}

func (p *PeakAcceleration) Name() string { return "peak_acceleration" }

func (p *PeakAcceleration) Observe(rec facility.TickRecord) {
	if rec.CentrifugalAcceleration > p.peak {
		p.peak = rec.CentrifugalAcceleration
	}
}

func (p *PeakAcceleration) Value() float64 { return p.peak }

func (p *PeakAcceleration) Reset() { p.peak = 0 }
