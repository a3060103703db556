package storage

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
)

type ExportData struct {
	Metadata *RunMetadata `json:"metadata"`
	Times    []float64    `json:"times"`
	Combined [][]float64  `json:"combined,omitempty"`
	Traces   [][]float64  `json:"traces"`
}

// ExportJSON writes a run's metadata, frames and traces as one document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, times, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}
	traces, err := s.LoadTraces(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Metadata: meta,
		Times:    times,
		Traces:   traces,
	}
	if meta.Recorded {
		data.Combined = frames
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV copies the run's frames.csv to w unchanged.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	f, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
