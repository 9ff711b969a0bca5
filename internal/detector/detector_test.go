package detector

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/ecoatom/internal/events"
	"github.com/san-kum/ecoatom/internal/facility"
)

func makeEvent(n int) events.Event {
	frags := make([]events.Fragment, n)
	for i := range frags {
		frags[i] = events.Fragment{ID: i, EnergyJ: 1e-20, AngleDeg: float64(i) * 17.3}
	}
	return events.Event{Fragments: frags}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative efficiency", Config{Efficiency: -0.1, AngularResolutionDeg: 5}},
		{"efficiency above one", Config{Efficiency: 1.5, AngularResolutionDeg: 5}},
		{"zero resolution", Config{Efficiency: 0.8, AngularResolutionDeg: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, 1)
			if !errors.Is(err, facility.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestPerfectEfficiencyKeepsAllFragments(t *testing.T) {
	d, err := New(Config{Efficiency: 1.0, AngularResolutionDeg: 5.0}, 1)
	if err != nil {
		t.Fatal(err)
	}

	detected := d.Detect(makeEvent(12))
	if len(detected) != 12 {
		t.Errorf("expected all 12 fragments, got %d", len(detected))
	}
}

func TestZeroEfficiencyDropsAllFragments(t *testing.T) {
	d, err := New(Config{Efficiency: 0.0, AngularResolutionDeg: 5.0}, 1)
	if err != nil {
		t.Fatal(err)
	}

	if detected := d.Detect(makeEvent(12)); len(detected) != 0 {
		t.Errorf("expected no fragments, got %d", len(detected))
	}
}

func TestAngularBinning(t *testing.T) {
	d, err := New(Config{Efficiency: 1.0, AngularResolutionDeg: 5.0}, 1)
	if err != nil {
		t.Fatal(err)
	}

	detected := d.Detect(makeEvent(20))
	for _, frag := range detected {
		bins := frag.AngleDeg / 5.0
		if math.Abs(bins-math.Round(bins)) > 1e-9 {
			t.Errorf("angle %f not on a 5 degree bin", frag.AngleDeg)
		}
	}
}

func TestDetectDoesNotMutateEvent(t *testing.T) {
	d, err := New(Config{Efficiency: 1.0, AngularResolutionDeg: 90.0}, 1)
	if err != nil {
		t.Fatal(err)
	}

	ev := makeEvent(4)
	original := make([]float64, len(ev.Fragments))
	for i, f := range ev.Fragments {
		original[i] = f.AngleDeg
	}

	d.Detect(ev)

	for i, f := range ev.Fragments {
		if f.AngleDeg != original[i] {
			t.Errorf("fragment %d angle mutated: %f -> %f", i, original[i], f.AngleDeg)
		}
	}
}
