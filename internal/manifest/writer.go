package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

// CompressedSuffix marks manifests stored as zstd-compressed JSON.
const CompressedSuffix = ".zst"

// New creates an empty manifest with defaults.
func New(profileName, basePath string) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Profile:     profileName,
		BasePath:    basePath,
		Assets:      make(map[string]Asset),
	}
}

// ComputeStats recalculates aggregate statistics from assets.
// Failed is carried over; it cannot be derived from the assets.
func (m *Manifest) ComputeStats() {
	s := Stats{Failed: m.Stats.Failed}
	s.TotalAssets = len(m.Assets)
	for _, a := range m.Assets {
		s.TotalInputBytes += a.Original.Size
	}
	m.Stats = s
}

// Marshal serializes the manifest as indented JSON. Map keys are sorted
// by encoding/json, so output is stable for identical input.
func Marshal(m *Manifest) ([]byte, error) {
	m.ComputeStats()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteFile writes the manifest to path, zstd-compressed when path ends
// in CompressedSuffix.
func WriteFile(m *Manifest, path string) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}
	if strings.HasSuffix(path, CompressedSuffix) {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return fmt.Errorf("zstd writer: %w", err)
		}
		data = enc.EncodeAll(data, nil)
		enc.Close()
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile loads a manifest written by WriteFile.
func ReadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, CompressedSuffix) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer dec.Close()
		if data, err = dec.DecodeAll(data, nil); err != nil {
			return nil, fmt.Errorf("decompress: %w", err)
		}
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return &m, nil
}
