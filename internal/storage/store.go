// Package storage persists measurement runs: metadata plus the raw
// per-step latency samples.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/sim"
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

// RunMetadata describes one persisted measurement run.
type RunMetadata struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Particles int       `json:"particles"`
	Boundary  float32   `json:"boundary"`
	Speed     float32   `json:"speed"`
	Dt        float32   `json:"dt"`
	Seed      int64     `json:"seed"`
	Steps     int       `json:"steps"`
	// Latency figures in microseconds.
	Metrics map[string]float64 `json:"metrics"`
}

// Save writes one run directory: metadata.json and samples.csv with one row
// per step. It returns the generated run id.
func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Particles: cfg.Particles,
		Boundary:  cfg.Boundary,
		Speed:     cfg.Speed,
		Dt:        cfg.Dt,
		Seed:      cfg.Seed,
		Steps:     result.Steps,
		Metrics: map[string]float64{
			"instant_us":    float64(result.Latency.Last.Microseconds()),
			"average_us":    float64(result.Latency.Average.Microseconds()),
			"max_us":        float64(result.Latency.Max.Microseconds()),
			"steps_per_sec": result.Latency.StepsPerSecond(),
		},
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"step", "latency_us"}); err != nil {
		return "", err
	}
	for i, d := range result.Samples {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatInt(d.Microseconds(), 10),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// Load reads the metadata of one run.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, fmt.Errorf("unknown run %s: %w", runID, err)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSamples reads the per-step latency samples of one run, in
// microseconds, ordered by step.
func (s *Store) LoadSamples(runID string) ([]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, fmt.Errorf("unknown run %s: %w", runID, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("run %s has no samples", runID)
	}

	samples := make([]float64, 0, len(rows)-1)
	for _, row := range rows[1:] { // skip header
		if len(row) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, err
		}
		samples = append(samples, v)
	}
	return samples, nil
}

// List returns the metadata of every saved run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue // skip corrupt run dirs
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}
