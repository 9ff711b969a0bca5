// Package detector post-processes collision events to simulate detection
// efficiency and angular resolution. The original facility left this stage
// unwired; here it runs as an optional pass over generated events.
package detector

import (
	"math"
	"math/rand"

	"github.com/san-kum/ecoatom/internal/events"
	"github.com/san-kum/ecoatom/internal/facility"
)

// Config tunes the detector response.
type Config struct {
	Efficiency           float64 // probability a fragment is detected, [0,1]
	AngularResolutionDeg float64 // angle bin width, > 0
}

// Detector applies an efficiency cut and angular binning to event
// fragments. It owns a seeded random source independent from the event
// generator's, so toggling the detector does not perturb event content.
type Detector struct {
	efficiency    float64
	resolutionDeg float64
	rng           *rand.Rand
}

// New validates cfg and constructs a detector.
func New(cfg Config, seed int64) (*Detector, error) {
	if cfg.Efficiency < 0 || cfg.Efficiency > 1 {
		return nil, &facility.ParameterError{Name: "efficiency", Value: cfg.Efficiency, Reason: "must be in [0,1]"}
	}
	if cfg.AngularResolutionDeg <= 0 {
		return nil, &facility.ParameterError{Name: "angular_resolution_deg", Value: cfg.AngularResolutionDeg, Reason: "must be positive"}
	}
	return &Detector{
		efficiency:    cfg.Efficiency,
		resolutionDeg: cfg.AngularResolutionDeg,
		rng:           rand.New(rand.NewSource(seed)),
	}, nil
}

// Detect returns the fragments that pass the efficiency cut, with angles
// snapped to the detector's resolution. The input event is not modified.
func (d *Detector) Detect(ev events.Event) []events.Fragment {
	detected := make([]events.Fragment, 0, len(ev.Fragments))
	for _, frag := range ev.Fragments {
		if d.rng.Float64() > d.efficiency {
			continue
		}
		frag.AngleDeg = d.binAngle(frag.AngleDeg)
		detected = append(detected, frag)
	}
	return detected
}

func (d *Detector) binAngle(angleDeg float64) float64 {
	return math.Round(angleDeg/d.resolutionDeg) * d.resolutionDeg
}
