// Package storage keeps headless trace runs on disk: a metadata.json and a
// per-frame trace.csv under one directory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
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

type RunMetadata struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Seed        int64     `json:"seed"`
	Frames      int       `json:"frames"`
	Rate        float64   `json:"rate"`
	Perturbs    int       `json:"perturbations"`
	Palette     string    `json:"palette"`
	TrailSlider float64   `json:"trail_slider"`
	FinalEnergy float64   `json:"final_energy"`
}

// Sample is one frame of a trace.
type Sample struct {
	T        time.Duration
	Angles   [3]float64
	Velocity [3]float64
	Energy   float64
	TrailLen int
}

var header = []string{"time", "theta1", "theta2", "theta3", "omega1", "omega2", "omega3", "energy", "trail"}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// Save writes meta and samples under a new run directory and returns its ID.
func (s *Store) Save(meta RunMetadata, samples []Sample) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("trace_%d", meta.Timestamp.UnixNano())
	}
	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
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

	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, sm := range samples {
		row := []string{formatFloat(sm.T.Seconds())}
		for _, v := range sm.Angles {
			row = append(row, formatFloat(v))
		}
		for _, v := range sm.Velocity {
			row = append(row, formatFloat(v))
		}
		row = append(row, formatFloat(sm.Energy), strconv.Itoa(sm.TrailLen))
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// List returns every readable run, oldest first.
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
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

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

func (s *Store) LoadSamples(runID string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(header)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		vals := make([]float64, len(header)-1)
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", i+1, header[j], err)
			}
			vals[j] = v
		}
		trail, err := strconv.Atoi(record[len(header)-1])
		if err != nil {
			return nil, fmt.Errorf("row %d column trail: %w", i+1, err)
		}
		samples = append(samples, Sample{
			T:        time.Duration(math.Round(vals[0] * float64(time.Second))),
			Angles:   [3]float64{vals[1], vals[2], vals[3]},
			Velocity: [3]float64{vals[4], vals[5], vals[6]},
			Energy:   vals[7],
			TrailLen: trail,
		})
	}
	return samples, nil
}
