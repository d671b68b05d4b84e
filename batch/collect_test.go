package batch

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"
)

func writeFiles(t *testing.T, dir string, sizes map[string]int) {
	t.Helper()
	for name, size := range sizes {
		data := make([]byte, size)
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]int{"a.txt": 1, "b.txt": 2})

	// Subdirectories and their contents must not be listed.
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFiles(t, sub, map[string]int{"c.txt": 3})

	names, err := ListFiles(dir)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	sort.Strings(names)

	want := []string{"a.txt", "b.txt"}
	if len(names) != len(want) || names[0] != want[0] || names[1] != want[1] {
		t.Errorf("ListFiles = %v, want %v", names, want)
	}
}

func TestListFiles_FailsFast(t *testing.T) {
	if _, err := ListFiles(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrNotDirectory) {
		t.Errorf("missing dir: error = %v, want ErrNotDirectory", err)
	}
	if _, err := ListFiles(""); !errors.Is(err, ErrNotDirectory) {
		t.Errorf("empty path: error = %v, want ErrNotDirectory", err)
	}

	file := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ListFiles(file); !errors.Is(err, ErrNotDirectory) {
		t.Errorf("plain file: error = %v, want ErrNotDirectory", err)
	}
}

func TestCollectAttributes(t *testing.T) {
	dir := t.TempDir()
	sizes := map[string]int{
		"alpha.bin": 10,
		"bravo.bin": 200,
		"delta.bin": 3000,
		"echo.bin":  0,
	}
	writeFiles(t, dir, sizes)

	records, err := CollectAttributes(dir, 4, testLogger())
	if err != nil {
		t.Fatalf("CollectAttributes failed: %v", err)
	}

	// Completion order is unordered; every file must still be present once.
	if len(records) != len(sizes) {
		t.Fatalf("collected %d records, want %d", len(records), len(sizes))
	}
	for _, r := range records {
		want, ok := sizes[r.Name]
		if !ok {
			t.Errorf("unexpected record %q", r.Name)
			continue
		}
		if r.SizeBytes != int64(want) {
			t.Errorf("%s: size = %d, want %d", r.Name, r.SizeBytes, want)
		}
		if _, err := time.Parse(time.RFC3339, r.LastModified); err != nil {
			t.Errorf("%s: last modified %q is not RFC 3339: %v", r.Name, r.LastModified, err)
		}
	}
}

func TestCollectAttributes_SingleWorker(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]int{"a": 1, "b": 2, "c": 3})

	records, err := CollectAttributes(dir, 1, testLogger())
	if err != nil {
		t.Fatalf("CollectAttributes failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("collected %d records, want 3", len(records))
	}
}

func TestCollectAttributes_MissingDirectory(t *testing.T) {
	_, err := CollectAttributes(filepath.Join(t.TempDir(), "nope"), 4, testLogger())
	if !errors.Is(err, ErrNotDirectory) {
		t.Errorf("error = %v, want ErrNotDirectory", err)
	}
}

func TestCollectAttributes_NilLogger(t *testing.T) {
	if _, err := CollectAttributes(t.TempDir(), 4, nil); !errors.Is(err, ErrNilLogger) {
		t.Errorf("error = %v, want ErrNilLogger", err)
	}
}

func TestSortRecords(t *testing.T) {
	records := []FileRecord{
		{Name: "charlie", SizeBytes: 3},
		{Name: "alpha", SizeBytes: 5},
		{Name: "bravo", SizeBytes: 1},
		{Name: "alpha", SizeBytes: 2},
	}

	SortRecords(records)

	wantNames := []string{"alpha", "alpha", "bravo", "charlie"}
	for i, want := range wantNames {
		if records[i].Name != want {
			t.Fatalf("records[%d].Name = %q, want %q (order: %v)", i, records[i].Name, want, records)
		}
	}
	// Equal names order by size.
	if records[0].SizeBytes != 2 || records[1].SizeBytes != 5 {
		t.Errorf("equal names not ordered by size: %v", records[:2])
	}
}

func TestCollectThenSortIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]int{"x": 7, "y": 11, "z": 13, "w": 17})

	first, err := CollectAttributes(dir, 4, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	second, err := CollectAttributes(dir, 4, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	SortRecords(first)
	SortRecords(second)

	if len(first) != len(second) {
		t.Fatalf("runs collected %d vs %d records", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("records[%d] differ: %v vs %v", i, first[i], second[i])
		}
	}
}
