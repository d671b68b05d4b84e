package batch

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/filebatch/bgs/version"
)

// ManifestName is the name of the run summary written next to the group
// descriptor files.
const ManifestName = "manifest.json"

// Manifest summarizes a saved run of the grouping engine.
type Manifest struct {
	BGSVersion        string    `json:"bgs_version"`
	GroupCount        int       `json:"group_count"`
	FileCount         int       `json:"file_count"`
	TotalSizeBytes    int64     `json:"total_size_bytes"`
	LargestGroupBytes int64     `json:"largest_group_bytes"`
	MaxGroupSizeBytes int64     `json:"max_group_size_bytes"`
	WrittenAt         time.Time `json:"written_at"`
}

// NewManifest builds a manifest for the given groups and size limit.
func NewManifest(groups []*Group, maxGroupSizeBytes int64) Manifest {
	m := Manifest{
		BGSVersion:        version.GetVersion(),
		GroupCount:        len(groups),
		MaxGroupSizeBytes: maxGroupSizeBytes,
		WrittenAt:         time.Now().UTC(),
	}
	for _, g := range groups {
		m.FileCount += g.Len()
		m.TotalSizeBytes += g.TotalSizeBytes()
		if g.TotalSizeBytes() > m.LargestGroupBytes {
			m.LargestGroupBytes = g.TotalSizeBytes()
		}
	}
	return m
}

// GroupFileName returns the descriptor file name for a 1-based group index,
// e.g. GroupFileName(1) == "group_001.json".
func GroupFileName(index int) string {
	return fmt.Sprintf("group_%03d.json", index)
}

// WriteJSONFile writes any value as indented JSON to the specified file path.
func WriteJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}

// SaveGroups persists each group as a JSON array of its file records inside
// outputDir, one file per group, named with a 1-based zero-padded index. A
// pre-existing directory at outputDir is deleted first. Any write failure
// aborts the whole save; nothing is retried.
func SaveGroups(groups []*Group, outputDir string, maxGroupSizeBytes int64, logger *slog.Logger) error {
	if len(groups) == 0 {
		return ErrNoGroups
	}
	if outputDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	if logger == nil {
		return ErrNilLogger
	}

	if _, err := os.Stat(outputDir); err == nil {
		logger.Warn("deleting existing output directory", "path", outputDir)
		if err := os.RemoveAll(outputDir); err != nil {
			return fmt.Errorf("removing output directory %s: %w", outputDir, err)
		}
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	for i, group := range groups {
		path := filepath.Join(outputDir, GroupFileName(i+1))
		logger.Info("saving group", "path", path, "files", group.Len(), "size_bytes", group.TotalSizeBytes())
		if err := WriteJSONFile(path, group); err != nil {
			return fmt.Errorf("writing group file %s: %w", path, err)
		}
	}

	manifestPath := filepath.Join(outputDir, ManifestName)
	if err := WriteJSONFile(manifestPath, NewManifest(groups, maxGroupSizeBytes)); err != nil {
		return fmt.Errorf("writing manifest %s: %w", manifestPath, err)
	}

	return nil
}

// LoadGroups reads every group descriptor in dir back into memory, in index
// order. It is the inverse of SaveGroups and ignores the manifest.
func LoadGroups(dir string) ([]*Group, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "group_*.json"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no group descriptors in %s", ErrNoGroups, dir)
	}

	groups := make([]*Group, 0, len(matches))
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading group file %s: %w", path, err)
		}
		var g Group
		if err := json.Unmarshal(data, &g); err != nil {
			return nil, fmt.Errorf("parsing group file %s: %w", path, err)
		}
		groups = append(groups, &g)
	}
	return groups, nil
}
