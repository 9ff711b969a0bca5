// Package events generates synthetic collision events from the per-tick
// beamline state. Event properties are biased, not derived: an unstable
// beam yields fragment-rich events and a poor vacuum adds background
// fragments, matching what a reader of the control panel would expect to
// see rather than any physical process.
package events

import (
	"math/rand"
	"time"

	"github.com/san-kum/ecoatom/internal/elements"
	"github.com/san-kum/ecoatom/internal/facility"
)

// poorVacuumPa is the pressure above which background fragments start to
// contaminate events.
const poorVacuumPa = 1e-3

// Fragment is one outgoing particle of a collision event.
type Fragment struct {
	ID         int     `json:"id"`
	EnergyJ    float64 `json:"energy_j"`
	AngleDeg   float64 `json:"angle_deg"`
	Background bool    `json:"background,omitempty"`
}

// BeamElement is the event-local snapshot of the beam species.
type BeamElement struct {
	AtomicNumber int     `json:"atomic_number"`
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	AtomicMass   float64 `json:"atomic_mass"`
}

// Event is one synthetic collision record.
type Event struct {
	Timestamp   time.Time           `json:"timestamp"`
	Step        int                 `json:"step"`
	Elapsed     float64             `json:"elapsed_s"`
	BeamElement BeamElement         `json:"beam_element"`
	Core        facility.TickRecord `json:"centrifugal_state"`
	Fragments   []Fragment          `json:"fragments"`
	// Detected is filled by the optional detector stage: the fragments
	// that passed the efficiency cut, with binned angles.
	Detected []Fragment `json:"detected,omitempty"`
}

// Generator produces events from tick records. It owns a seeded random
// source so runs with the same seed replay identically.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator returns a generator seeded for reproducible output.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// Generate builds one event from the tick record, the beam element and the
// current per-nucleon kinetic energy estimate.
func (g *Generator) Generate(rec facility.TickRecord, beam elements.Element, kePerNucleonJ float64) Event {
	// Total kinetic energy, scaled down so fragment energies stay in a
	// readable range for the control panel.
	totalEnergyJ := kePerNucleonJ * beam.AtomicMass * 1e-9

	n := g.fragmentCount(rec, beam.AtomicNumber)

	fragments := make([]Fragment, 0, n)
	remaining := totalEnergyJ
	for i := 0; i < n; i++ {
		var e float64
		if i == n-1 {
			e = remaining
			if e < 0 {
				e = 0
			}
		} else {
			fraction := 0.05 + g.rng.Float64()*0.25
			e = totalEnergyJ * fraction
			remaining -= e
		}
		fragments = append(fragments, Fragment{
			ID:       i,
			EnergyJ:  e,
			AngleDeg: g.rng.Float64() * 360.0,
		})
	}

	// Poor vacuum contaminates the event with low-energy background hits.
	if rec.Pressure > poorVacuumPa {
		for i := 0; i < 1+g.rng.Intn(2); i++ {
			fragments = append(fragments, Fragment{
				ID:         len(fragments),
				EnergyJ:    totalEnergyJ * 0.01 * g.rng.Float64(),
				AngleDeg:   g.rng.Float64() * 360.0,
				Background: true,
			})
		}
	}

	return Event{
		Timestamp: g.now().UTC(),
		Step:      rec.Step,
		Elapsed:   rec.Elapsed,
		BeamElement: BeamElement{
			AtomicNumber: beam.AtomicNumber,
			Symbol:       beam.Symbol,
			Name:         beam.Name,
			AtomicMass:   beam.AtomicMass,
		},
		Core:      rec,
		Fragments: fragments,
	}
}

// fragmentCount scales the multiplicity with the beam atomic number and
// biases it upward past the instability threshold.
func (g *Generator) fragmentCount(rec facility.TickRecord, atomicNumber int) int {
	avg := atomicNumber / 3
	if avg < 2 {
		avg = 2
	}
	if avg > 10 {
		avg = 10
	}

	lo := avg - 2
	if lo < 2 {
		lo = 2
	}
	n := lo + g.rng.Intn(avg+2-lo+1)

	if !rec.Stable {
		// Fragment-rich outcome for an unstable beam.
		n += 2 + g.rng.Intn(3)
	}
	return n
}
