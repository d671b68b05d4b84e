package batch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/taigrr/colorhash"
)

// DefaultCollectWorkers is the stat worker pool size used when the caller
// does not ask for a specific one.
const DefaultCollectWorkers = 4

// ListFiles returns the names of the regular files directly inside dir,
// without recursing. It fails fast when dir does not exist or is not a
// directory.
func ListFiles(dir string) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrNotDirectory)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

func statWorker(paths <-chan string, results chan<- FileRecord, logger *slog.Logger, wg *sync.WaitGroup) {
	defer wg.Done()

	for path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			logger.Warn("failed to stat file, skipped", "path", path, "error", err)
			continue
		}
		results <- FileRecord{
			Name:         filepath.Base(path),
			SizeBytes:    info.Size(),
			LastModified: info.ModTime().Format(time.RFC3339),
		}
	}
}

// CollectAttributes stats every regular file directly inside dir across a
// bounded worker pool and returns one FileRecord per file. Records arrive in
// completion order, not directory order; callers that need a stable grouping
// input must sort them first (see SortRecords).
//
// Files are sharded across workers by a hash of their name, so repeated runs
// assign the same file to the same worker. Per-file stat failures are logged
// and skipped; an enumeration failure aborts collection and is returned
// along with whatever was already collected.
func CollectAttributes(dir string, workers int, logger *slog.Logger) ([]FileRecord, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}
	if workers <= 0 {
		workers = DefaultCollectWorkers
	}

	names, err := ListFiles(dir)
	if err != nil {
		return nil, err
	}

	shards := make([]chan string, workers)
	results := make(chan FileRecord, workers)
	var wg sync.WaitGroup

	wg.Add(workers)
	for i := range shards {
		shards[i] = make(chan string, workers)
		go statWorker(shards[i], results, logger, &wg)
	}

	go func() {
		for _, name := range names {
			shard := colorhash.HashString(name) % workers
			shards[shard] <- filepath.Join(dir, name)
		}
		for _, shard := range shards {
			close(shard)
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	records := make([]FileRecord, 0, len(names))
	for record := range results {
		records = append(records, record)
	}
	return records, nil
}

// SortRecords orders records by name, breaking ties by size. Grouping a
// sorted slice makes the output independent of stat completion order.
func SortRecords(records []FileRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Name != records[j].Name {
			return records[i].Name < records[j].Name
		}
		return records[i].SizeBytes < records[j].SizeBytes
	})
}
