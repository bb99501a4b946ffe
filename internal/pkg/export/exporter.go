// Package export writes collected events to timestamped JSON snapshots and
// rotates old snapshots into an archive directory.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oddsdesk/marketfeed/internal/pkg/models"
)

// Snapshot is the on-disk export format.
type Snapshot struct {
	Timestamp   string                   `json:"timestamp"`
	Sport       string                   `json:"sport"`
	TotalEvents int                      `json:"total_events"`
	Events      []models.MarketEventJSON `json:"events"`
}

// Exporter writes snapshots under a data directory.
type Exporter struct {
	dir        string
	archiveDir string
}

func NewExporter(dir, archiveDir string) *Exporter {
	return &Exporter{dir: dir, archiveDir: archiveDir}
}

// SaveJSON writes one snapshot named <sport>_<timestamp>.json and refreshes
// the stable <sport>_latest.json alongside it. Returns the snapshot path.
func (e *Exporter) SaveJSON(sport string, events []models.MarketEvent, at time.Time) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	snap := Snapshot{
		Timestamp:   at.UTC().Format(time.RFC3339),
		Sport:       sport,
		TotalEvents: len(events),
		Events:      models.SerializeAll(events),
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	path := filepath.Join(e.dir, fmt.Sprintf("%s_%s.json", sport, at.UTC().Format("20060102_150405")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	latest := filepath.Join(e.dir, sport+"_latest.json")
	if err := os.WriteFile(latest, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write latest snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot back from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	return &snap, nil
}

// ArchiveFiles moves timestamped snapshots older than maxAge into the
// archive directory. The _latest.json files always stay in place. Returns
// how many files moved.
func (e *Exporter) ArchiveFiles(maxAge time.Duration, now time.Time) (int, error) {
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read export directory: %w", err)
	}

	moved := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasSuffix(name, "_latest.json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) < maxAge {
			continue
		}
		if moved == 0 {
			if err := os.MkdirAll(e.archiveDir, 0o755); err != nil {
				return 0, fmt.Errorf("failed to create archive directory: %w", err)
			}
		}
		if err := os.Rename(filepath.Join(e.dir, name), filepath.Join(e.archiveDir, name)); err != nil {
			return moved, fmt.Errorf("failed to archive %s: %w", name, err)
		}
		moved++
	}
	return moved, nil
}
