// Package plans defines the export plan produced by a library scan and its
// JSON persistence under ~/.config/karacopy/plans.
package plans

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Nomadcxx/karacopy/internal/paths"
)

// Entry represents a single file to copy
type Entry struct {
	SourcePath string `json:"source_path"`
	RelPath    string `json:"rel_path"`
	Size       int64  `json:"size"`
	IsMedia    bool   `json:"is_media"`
}

// Summary contains aggregate stats for a plan
type Summary struct {
	TotalFiles int   `json:"total_files"`
	MediaFiles int   `json:"media_files"`
	TotalBytes int64 `json:"total_bytes"`
}

// CopyPlan is the full ordered set of files selected for export.
// Entry order is the deterministic scan order; Execute copies in this order.
type CopyPlan struct {
	CreatedAt  time.Time `json:"created_at"`
	Command    string    `json:"command"`
	SourceRoot string    `json:"source_root"`
	MinYear    int       `json:"min_year,omitempty"`
	MaxYear    int       `json:"max_year,omitempty"`
	Summary    Summary   `json:"summary"`
	Entries    []Entry   `json:"entries"`
}

// GetPlansDir returns the directory for plan files. Resolution goes through
// paths so plans land next to config and logs when running under sudo.
func GetPlansDir() (string, error) {
	return paths.PlansDir()
}

// DefaultPath returns the path of the last saved export plan
func DefaultPath() (string, error) {
	dir, err := GetPlansDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "export.json"), nil
}

// Write saves the plan as JSON at path, creating parent directories
func (p *CopyPlan) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create plans directory: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}
	return nil
}

// Load reads a plan previously saved with Write
func Load(path string) (*CopyPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}

	var p CopyPlan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}
	return &p, nil
}
