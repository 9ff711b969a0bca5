// Package beamline drives the facility models through simulated time.
//
// The loop is single-threaded and cooperative: each tick advances the
// centrifugal core, then the vacuum chamber, builds the tick record, and
// hands it to metrics, observers and (on event ticks) the event generator.
// Nothing overlaps and nothing blocks mid-tick; cancellation simply stops
// the loop between ticks.
package beamline

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/ecoatom/internal/config"
	"github.com/san-kum/ecoatom/internal/detector"
	"github.com/san-kum/ecoatom/internal/elements"
	"github.com/san-kum/ecoatom/internal/events"
	"github.com/san-kum/ecoatom/internal/facility"
	"github.com/san-kum/ecoatom/internal/metrics"
)

// Observer is notified once per tick with the completed record.
type Observer interface {
	OnTick(rec facility.TickRecord)
}

// RunConfig controls one run of the loop.
type RunConfig struct {
	Steps              int
	TimeStep           float64
	EventIntervalSteps int
	RealtimeDelay      float64
}

// RunResult collects everything a run produced.
type RunResult struct {
	Ticks   []facility.TickRecord
	Events  []events.Event
	Metrics map[string]float64
}

// Beamline owns one core, one chamber and the downstream event stages.
type Beamline struct {
	core      *facility.CentrifugalCore
	chamber   *facility.VacuumChamber
	generator *events.Generator
	detector  *detector.Detector
	beam      elements.Element
	metrics   []metrics.Metric
	observers []Observer
}

// New assembles a beamline from already-constructed models.
func New(core *facility.CentrifugalCore, chamber *facility.VacuumChamber, gen *events.Generator, beam elements.Element) *Beamline {
	return &Beamline{
		core:      core,
		chamber:   chamber,
		generator: gen,
		beam:      beam,
	}
}

// NewFromConfig builds the full beamline, selecting the beam element from
// the table. Configuration errors surface here, before any tick executes.
func NewFromConfig(cfg *config.Config, table elements.Table) (*Beamline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	core, err := facility.NewCentrifugalCore(cfg.CoreConfig())
	if err != nil {
		return nil, err
	}
	chamber, err := facility.NewVacuumChamber(cfg.VacuumConfig())
	if err != nil {
		return nil, err
	}
	beam, err := table.ByAtomicNumber(cfg.Beam.ElementAtomicNumber)
	if err != nil {
		return nil, err
	}

	b := New(core, chamber, events.NewGenerator(cfg.Simulation.Seed), beam)

	if cfg.Detector.Enabled {
		det, err := detector.New(detector.Config{
			Efficiency:           cfg.Detector.Efficiency,
			AngularResolutionDeg: cfg.Detector.AngularResolutionDeg,
		}, cfg.Simulation.Seed+1)
		if err != nil {
			return nil, err
		}
		b.detector = det
	}

	return b, nil
}

func (b *Beamline) AddMetric(m metrics.Metric)       { b.metrics = append(b.metrics, m) }
func (b *Beamline) AddObserver(o Observer)           { b.observers = append(b.observers, o) }
func (b *Beamline) Beam() elements.Element           { return b.beam }
func (b *Beamline) Core() *facility.CentrifugalCore  { return b.core }
func (b *Beamline) Chamber() *facility.VacuumChamber { return b.chamber }

// Tick advances both models by dt and returns the tick record for the
// given step number. Exposed for callers that drive their own loop, like
// the live control-room view.
func (b *Beamline) Tick(step int, dt float64) facility.TickRecord {
	b.core.Advance(dt)
	b.chamber.Advance(dt)

	kin := b.core.Kinematics()
	return facility.TickRecord{
		Step:                    step,
		Elapsed:                 float64(step+1) * dt,
		RPM:                     b.core.RPM(),
		AngularVelocity:         kin.AngularVelocity,
		TangentialVelocity:      kin.TangentialVelocity,
		CentrifugalAcceleration: kin.CentrifugalAcceleration,
		Stable:                  b.core.Stable(),
		Pressure:                b.chamber.Pressure(),
	}
}

// Emit generates one collision event from the tick record, running the
// detector stage when configured. Callers driving their own loop (the
// live view) use this together with Tick.
func (b *Beamline) Emit(rec facility.TickRecord) events.Event {
	ev := b.generator.Generate(rec, b.beam, b.core.KineticEnergyPerNucleon())
	if b.detector != nil {
		ev.Detected = b.detector.Detect(ev)
	}
	return ev
}

// Run executes the full tick loop.
func (b *Beamline) Run(ctx context.Context, cfg RunConfig) (*RunResult, error) {
	if err := b.validate(cfg); err != nil {
		return nil, err
	}

	for _, m := range b.metrics {
		m.Reset()
	}

	result := &RunResult{
		Ticks:   make([]facility.TickRecord, 0, cfg.Steps),
		Events:  make([]events.Event, 0, cfg.Steps/cfg.EventIntervalSteps),
		Metrics: make(map[string]float64),
	}

	logrus.Infof("beamline: beam %s (Z=%d), steps=%d dt=%g event_interval=%d",
		b.beam.Symbol, b.beam.AtomicNumber, cfg.Steps, cfg.TimeStep, cfg.EventIntervalSteps)

	for step := 0; step < cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		rec := b.Tick(step, cfg.TimeStep)
		result.Ticks = append(result.Ticks, rec)

		for _, m := range b.metrics {
			m.Observe(rec)
		}
		for _, o := range b.observers {
			o.OnTick(rec)
		}

		if b.generator != nil && step != 0 && step%cfg.EventIntervalSteps == 0 {
			ev := b.Emit(rec)
			result.Events = append(result.Events, ev)
			logrus.Infof("[event] step=%04d rpm=%8.1f P=%.3e Pa frags=%d",
				step, rec.RPM, rec.Pressure, len(ev.Fragments))
		}

		if cfg.RealtimeDelay > 0 {
			time.Sleep(time.Duration(cfg.RealtimeDelay * float64(time.Second)))
		}
	}

	for _, m := range b.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	logrus.Infof("beamline: run complete, %d ticks, %d events", len(result.Ticks), len(result.Events))
	return result, nil
}

func (b *Beamline) validate(cfg RunConfig) error {
	if cfg.TimeStep <= 0 {
		return fmt.Errorf("beamline: time step must be positive, got %f", cfg.TimeStep)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("beamline: steps must be positive, got %d", cfg.Steps)
	}
	if cfg.EventIntervalSteps <= 0 {
		return fmt.Errorf("beamline: event interval must be positive, got %d", cfg.EventIntervalSteps)
	}
	return nil
}
