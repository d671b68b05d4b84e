package batch

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func sampleGroups() []*Group {
	return []*Group{
		NewGroup(
			FileRecord{Name: "a.txt", SizeBytes: 100, LastModified: "2024-01-01T00:00:00Z"},
			FileRecord{Name: "b.txt", SizeBytes: 300, LastModified: "2024-01-02T00:00:00Z"},
		),
		NewGroup(
			FileRecord{Name: "c.txt", SizeBytes: 900, LastModified: "2024-01-03T00:00:00Z"},
		),
	}
}

func TestSaveGroups(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "groups")

	if err := SaveGroups(sampleGroups(), outputDir, 1000, testLogger()); err != nil {
		t.Fatalf("SaveGroups failed: %v", err)
	}

	// Descriptor names are 1-based and zero-padded.
	for _, name := range []string{"group_001.json", "group_002.json"} {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err != nil {
			t.Errorf("missing descriptor %s: %v", name, err)
		}
	}

	// Each descriptor is a JSON array of file records.
	data, err := os.ReadFile(filepath.Join(outputDir, "group_001.json"))
	if err != nil {
		t.Fatal(err)
	}
	var files []FileRecord
	if err := json.Unmarshal(data, &files); err != nil {
		t.Fatalf("descriptor is not a record array: %v", err)
	}
	if len(files) != 2 || files[0].Name != "a.txt" || files[1].Name != "b.txt" {
		t.Errorf("unexpected descriptor contents: %v", files)
	}
}

func TestSaveGroups_WritesManifest(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "groups")

	if err := SaveGroups(sampleGroups(), outputDir, 1000, testLogger()); err != nil {
		t.Fatalf("SaveGroups failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outputDir, ManifestName))
	if err != nil {
		t.Fatalf("missing manifest: %v", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("parsing manifest: %v", err)
	}
	if m.GroupCount != 2 {
		t.Errorf("GroupCount = %d, want 2", m.GroupCount)
	}
	if m.FileCount != 3 {
		t.Errorf("FileCount = %d, want 3", m.FileCount)
	}
	if m.TotalSizeBytes != 1300 {
		t.Errorf("TotalSizeBytes = %d, want 1300", m.TotalSizeBytes)
	}
	if m.LargestGroupBytes != 900 {
		t.Errorf("LargestGroupBytes = %d, want 900", m.LargestGroupBytes)
	}
	if m.MaxGroupSizeBytes != 1000 {
		t.Errorf("MaxGroupSizeBytes = %d, want 1000", m.MaxGroupSizeBytes)
	}
}

func TestSaveGroups_ReplacesExistingDirectory(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "groups")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(outputDir, "group_999.json")
	if err := os.WriteFile(stale, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := SaveGroups(sampleGroups(), outputDir, 1000, testLogger()); err != nil {
		t.Fatalf("SaveGroups failed: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("pre-existing descriptor survived the save")
	}
}

func TestSaveGroups_NoGroups(t *testing.T) {
	err := SaveGroups(nil, filepath.Join(t.TempDir(), "groups"), 1000, testLogger())
	if !errors.Is(err, ErrNoGroups) {
		t.Errorf("error = %v, want ErrNoGroups", err)
	}
}

func TestLoadGroups_RoundTrip(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "groups")
	saved := sampleGroups()

	if err := SaveGroups(saved, outputDir, 1000, testLogger()); err != nil {
		t.Fatalf("SaveGroups failed: %v", err)
	}

	loaded, err := LoadGroups(outputDir)
	if err != nil {
		t.Fatalf("LoadGroups failed: %v", err)
	}

	if len(loaded) != len(saved) {
		t.Fatalf("loaded %d groups, want %d", len(loaded), len(saved))
	}
	for i := range saved {
		if !reflect.DeepEqual(loaded[i].Files(), saved[i].Files()) {
			t.Errorf("group %d mismatch: got %v, want %v", i, loaded[i].Files(), saved[i].Files())
		}
		if loaded[i].TotalSizeBytes() != saved[i].TotalSizeBytes() {
			t.Errorf("group %d total = %d, want %d", i, loaded[i].TotalSizeBytes(), saved[i].TotalSizeBytes())
		}
	}
}

func TestLoadGroups_EmptyDirectory(t *testing.T) {
	if _, err := LoadGroups(t.TempDir()); !errors.Is(err, ErrNoGroups) {
		t.Errorf("error = %v, want ErrNoGroups", err)
	}
}

func TestGroupFileName(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{1, "group_001.json"},
		{42, "group_042.json"},
		{999, "group_999.json"},
		{1000, "group_1000.json"},
	}
	for _, tt := range tests {
		if got := GroupFileName(tt.index); got != tt.want {
			t.Errorf("GroupFileName(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}
