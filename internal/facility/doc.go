// Package facility provides the two beamline models of the ecoatom
// simulator:
//
//   - [CentrifugalCore]: simplified rotational accelerator driven by an
//     RPM ramp, with derived kinematics and a beam stability flag
//   - [VacuumChamber]: chamber pressure pumped toward a base pressure
//     against an outgassing counter-term
//
// Both models are deliberately simplified so the code remains readable:
// each is a handful of closed-form equations over scalar parameters,
// advanced once per simulated tick by the beamline loop. Neither model is
// a physical accuracy claim; they exist to feed plausible, tunable state
// into the synthetic event generator.
//
// All derived quantities are recomputed on every query. There is no
// cached kinematic state that can go stale between ticks.
package facility
