package batch

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// BytesInMB is the number of bytes in one mebibyte.
const BytesInMB = 1024 * 1024

// SeedOptions controls test-file generation.
type SeedOptions struct {
	MinFiles         int
	MaxFiles         int
	MinFileSizeBytes int64
	MaxFileSizeBytes int64
}

// DefaultSeedOptions returns the generation bounds used when the caller does
// not override them.
func DefaultSeedOptions() SeedOptions {
	return SeedOptions{
		MinFiles:         5,
		MaxFiles:         15,
		MinFileSizeBytes: 5 * BytesInMB,
		MaxFileSizeBytes: 15 * BytesInMB,
	}
}

func (o SeedOptions) validate() error {
	if o.MinFiles <= 0 || o.MaxFiles <= 0 || o.MinFileSizeBytes <= 0 || o.MaxFileSizeBytes <= 0 {
		return fmt.Errorf("seed bounds must be positive: %+v", o)
	}
	if o.MinFiles > o.MaxFiles {
		return fmt.Errorf("min files %d exceeds max files %d", o.MinFiles, o.MaxFiles)
	}
	if o.MinFileSizeBytes > o.MaxFileSizeBytes {
		return fmt.Errorf("min file size %d exceeds max file size %d", o.MinFileSizeBytes, o.MaxFileSizeBytes)
	}
	return nil
}

// randInRange returns a uniform random value in [low, high].
func randInRange(low, high int64) (int64, error) {
	if high <= low {
		return low, nil
	}
	n, err := rand.Int(rand.Reader, big.NewInt(high-low+1))
	if err != nil {
		return 0, err
	}
	return low + n.Int64(), nil
}

// SeedFiles fills dir with a random number of test files whose sizes fall
// inside the configured bounds. File content is a repeating pattern drawn
// from a pool of UUIDs, written in 1 MiB chunks so large files do not buffer
// fully in memory. Returns the number of files created.
func SeedFiles(dir string, opts SeedOptions, logger *slog.Logger) (int, error) {
	if logger == nil {
		return 0, ErrNilLogger
	}
	if err := opts.validate(); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating seed directory %s: %w", dir, err)
	}

	count, err := randInRange(int64(opts.MinFiles), int64(opts.MaxFiles))
	if err != nil {
		return 0, err
	}

	// Pattern pool keeps content varied without being compressible to nothing.
	pool := make([]string, 8)
	for i := range pool {
		pool[i] = uuid.New().String()
	}

	logger.Debug("seeding test files",
		"dir", dir,
		"count", count,
		"min_file_size_bytes", opts.MinFileSizeBytes,
		"max_file_size_bytes", opts.MaxFileSizeBytes)

	for i := int64(0); i < count; i++ {
		size, err := randInRange(opts.MinFileSizeBytes, opts.MaxFileSizeBytes)
		if err != nil {
			return int(i), err
		}

		poolIndex, err := randInRange(0, int64(len(pool)-1))
		if err != nil {
			return int(i), err
		}
		pattern := []byte(pool[poolIndex])
		chunk := bytes.Repeat(pattern, BytesInMB/len(pattern)+1)[:BytesInMB]

		path := filepath.Join(dir, fmt.Sprintf("file_%03d.txt", i))
		if err := writePatternFile(path, chunk, size); err != nil {
			return int(i), fmt.Errorf("writing seed file %s: %w", path, err)
		}
		logger.Debug("created seed file", "path", path, "size_bytes", size)
	}

	return int(count), nil
}

func writePatternFile(path string, chunk []byte, size int64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	remaining := size
	for remaining > 0 {
		n := int64(len(chunk))
		if remaining < n {
			n = remaining
		}
		if _, err := f.Write(chunk[:n]); err != nil {
			return err
		}
		remaining -= n
	}
	return nil
}
