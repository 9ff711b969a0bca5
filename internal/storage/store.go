// Package storage persists facility runs. Each run gets its own directory
// under the data dir: metadata.json with the run parameters and metrics,
// ticks.csv with the full tick series, and one JSON file per generated
// event under events/.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/ecoatom/internal/beamline"
	"github.com/san-kum/ecoatom/internal/events"
	"github.com/san-kum/ecoatom/internal/facility"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata summarizes one stored run.
type RunMetadata struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	BeamSymbol string             `json:"beam_symbol"`
	BeamZ      int                `json:"beam_atomic_number"`
	Seed       int64              `json:"seed"`
	TimeStep   float64            `json:"time_step"`
	Steps      int                `json:"steps"`
	EventCount int                `json:"event_count"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes the run to a new directory and returns its ID.
func (s *Store) Save(beamSymbol string, beamZ int, seed int64, timeStep float64, result *beamline.RunResult) (string, error) {
	runID := fmt.Sprintf("%s_%d", strings.ToLower(beamSymbol), time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  time.Now(),
		BeamSymbol: beamSymbol,
		BeamZ:      beamZ,
		Seed:       seed,
		TimeStep:   timeStep,
		Steps:      len(result.Ticks),
		EventCount: len(result.Events),
		Metrics:    result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	if err := s.writeTicks(filepath.Join(runDir, "ticks.csv"), result.Ticks); err != nil {
		return "", err
	}

	eventsDir := filepath.Join(runDir, "events")
	if err := os.MkdirAll(eventsDir, 0755); err != nil {
		return "", err
	}
	for _, ev := range result.Events {
		if _, err := SaveEvent(ev, eventsDir); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// SaveEvent writes one event as an indented JSON file named by its step
// and timestamp, and returns the file path.
func SaveEvent(ev events.Event, dir string) (string, error) {
	ts := ev.Timestamp.UTC().Format("20060102T150405.000000000")
	ts = strings.ReplaceAll(ts, ".", "")
	path := filepath.Join(dir, fmt.Sprintf("event_%06d_%s.json", ev.Step, ts))
	if err := writeJSON(path, ev); err != nil {
		return "", err
	}
	return path, nil
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var tickHeader = []string{
	"step", "elapsed_s", "rpm", "angular_velocity", "tangential_velocity",
	"centrifugal_acceleration", "stable", "pressure_pa",
}

func (s *Store) writeTicks(path string, ticks []facility.TickRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write(tickHeader); err != nil {
		return err
	}

	for _, rec := range ticks {
		row := []string{
			strconv.Itoa(rec.Step),
			strconv.FormatFloat(rec.Elapsed, 'f', 6, 64),
			strconv.FormatFloat(rec.RPM, 'f', 6, 64),
			strconv.FormatFloat(rec.AngularVelocity, 'f', 6, 64),
			strconv.FormatFloat(rec.TangentialVelocity, 'f', 6, 64),
			strconv.FormatFloat(rec.CentrifugalAcceleration, 'f', 6, 64),
			strconv.FormatBool(rec.Stable),
			strconv.FormatFloat(rec.Pressure, 'e', 9, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// List returns metadata for all stored runs.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

// Load reads the metadata of one run.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTicks reads back the tick series of one run.
func (s *Store) LoadTicks(runID string) ([]facility.TickRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "ticks.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []facility.TickRecord{}, nil
	}

	ticks := make([]facility.TickRecord, 0, len(records)-1)
	for _, row := range records[1:] {
		if len(row) != len(tickHeader) {
			continue
		}

		step, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		stable, err := strconv.ParseBool(row[6])
		if err != nil {
			continue
		}

		vals := make([]float64, 0, 6)
		ok := true
		for _, col := range []string{row[1], row[2], row[3], row[4], row[5], row[7]} {
			v, err := strconv.ParseFloat(col, 64)
			if err != nil {
				ok = false
				break
			}
			vals = append(vals, v)
		}
		if !ok {
			continue
		}

		ticks = append(ticks, facility.TickRecord{
			Step:                    step,
			Elapsed:                 vals[0],
			RPM:                     vals[1],
			AngularVelocity:         vals[2],
			TangentialVelocity:      vals[3],
			CentrifugalAcceleration: vals[4],
			Stable:                  stable,
			Pressure:                vals[5],
		})
	}

	return ticks, nil
}
