package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/standwave/internal/logging"
	"github.com/san-kum/standwave/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	tracesFile   = "traces.csv"
)

// Store keeps finished runs as one directory each. Runs are written once and
// never reopened for simulation.
type Store struct {
	baseDir string
	log     *slog.Logger
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, log: logging.Discard()}
}

// WithLogger sets the logger used for save diagnostics.
func (s *Store) WithLogger(l *slog.Logger) *Store {
	if l != nil {
		s.log = l
	}
	return s
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Length     float64            `json:"length"`
	Reflection float64            `json:"reflection"`
	Velocity   float64            `json:"velocity"`
	Frequency  float64            `json:"frequency"`
	Resolution int                `json:"resolution"`
	Tracing    bool               `json:"tracing"`
	Dt         float64            `json:"dt"`
	Frames     int                `json:"frames"`
	Recorded   bool               `json:"recorded"`
	Traces     int                `json:"traces"`
	Grid       []float64          `json:"grid"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes result under a fresh run id built from name.
func (s *Store) Save(name string, tracing bool, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Name:       name,
		Timestamp:  now,
		Length:     result.Params.Length,
		Reflection: result.Params.Reflection,
		Velocity:   result.Params.Velocity,
		Frequency:  result.Params.Frequency,
		Resolution: len(result.Grid),
		Tracing:    tracing,
		Dt:         result.Dt,
		Frames:     result.Frames,
		Recorded:   len(result.Combined) > 0,
		Traces:     len(result.Traces),
		Grid:       result.Grid,
		Metrics:    result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	columns := make([]string, len(result.Grid))
	for i := range result.Grid {
		columns[i] = fmt.Sprintf("c%d", i)
	}
	header := []string{"time"}

	rows := make([][]float64, len(result.Times))
	for i, t := range result.Times {
		row := []float64{t}
		if i < len(result.Combined) {
			row = append(row, result.Combined[i]...)
		}
		rows[i] = row
	}
	if len(result.Combined) > 0 {
		header = append(header, columns...)
	}
	if err := writeCSV(filepath.Join(runDir, framesFile), header, rows); err != nil {
		return "", err
	}

	if err := writeCSV(filepath.Join(runDir, tracesFile), columns, result.Traces); err != nil {
		return "", err
	}

	s.log.Info("run saved", "id", runID, "frames", result.Frames, "traces", len(result.Traces))
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, header []string, rows [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the metadata of every readable run, newest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFrames returns the recorded combined curves and their times. Runs saved
// without recording yield times and empty curves.
func (s *Store) LoadFrames(runID string) ([][]float64, []float64, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, nil, err
	}

	times := make([]float64, 0, len(records))
	frames := make([][]float64, 0, len(records))
	for _, record := range records {
		if len(record) == 0 {
			continue
		}
		times = append(times, record[0])
		frames = append(frames, record[1:])
	}

	return frames, times, nil
}

func (s *Store) LoadTraces(runID string) ([][]float64, error) {
	return readCSV(filepath.Join(s.baseDir, runID, tracesFile))
}

// readCSV parses every row after the header. Unparseable cells are skipped.
func readCSV(path string) ([][]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return [][]float64{}, nil
	}

	rows := make([][]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]float64, 0, len(record))
		for _, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}

	return rows, nil
}
