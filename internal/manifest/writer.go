package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// FileName is the manifest's name inside a batch output directory.
const FileName = "bmpfx.manifest.json"

// New creates an empty manifest for a chain.
func New(chain string) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Chain:       chain,
		Files:       make(map[string]Entry),
	}
}

// ComputeStats recalculates aggregate statistics from entries.
func (m *Manifest) ComputeStats() {
	var s Stats
	s.TotalFiles = len(m.Files)
	for _, e := range m.Files {
		s.TotalInputBytes += e.InputSize
		if e.Failed() {
			s.Failed++
			continue
		}
		s.Processed++
		s.TotalOutputBytes += e.OutputSize
		switch e.Kind {
		case "grayscale":
			s.Grayscale++
		case "color":
			s.Color++
		}
	}
	m.Stats = s
}

// WriteJSON serializes the manifest to a JSON file. Map keys are emitted
// in sorted order by encoding/json.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a manifest written by WriteJSON.
func ReadJSON(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
