package batch

import (
	"fmt"
	"log/slog"
)

// ValidateGroups recomputes each group's size from its members and counts
// how many stay within maxGroupSizeBytes. It is a read-only diagnostic: the
// input is never mutated or filtered for downstream use. The valid subset is
// returned as a convenience, alongside the total number of groups checked.
func ValidateGroups(groups []*Group, maxGroupSizeBytes int64, logger *slog.Logger) ([]*Group, int, error) {
	if maxGroupSizeBytes <= 0 {
		return nil, 0, fmt.Errorf("%w: got %d", ErrInvalidMaxGroupSize, maxGroupSizeBytes)
	}
	if logger == nil {
		return nil, 0, ErrNilLogger
	}

	valid := make([]*Group, 0, len(groups))
	for i, g := range groups {
		size := g.RecomputeSize()
		if size <= maxGroupSizeBytes {
			valid = append(valid, g)
			continue
		}
		logger.Warn("group exceeds max size",
			"group", i+1,
			"size_bytes", size,
			"max_group_size_bytes", maxGroupSizeBytes)
	}

	logger.Info("group validation complete", "valid", len(valid), "total", len(groups))
	return valid, len(groups), nil
}
