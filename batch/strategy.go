package batch

import (
	"fmt"
	"log/slog"
)

// Strategy selects which bin-packing heuristic assigns records to groups.
type Strategy string

const (
	// StrategySequential is an order-preserving first-fit packer. It fills
	// one group at a time in input order and never revisits a closed group.
	StrategySequential Strategy = "sequential"

	// StrategyCompact is a best-fit packer. Each record goes into the open
	// group that would be left with the least remaining capacity.
	StrategyCompact Strategy = "compact"
)

// Strategies lists the recognized strategy names.
func Strategies() []string {
	return []string{string(StrategySequential), string(StrategyCompact)}
}

// GroupFiles assigns the given records to size-capped groups using the named
// strategy. It validates configuration up front and returns the groups in
// strategy-specific order. Records larger than maxGroupSizeBytes are logged
// at warning level and excluded from every group; they are not an error.
func GroupFiles(records []FileRecord, maxGroupSizeBytes int64, strategy Strategy, logger *slog.Logger) ([]*Group, error) {
	switch strategy {
	case StrategySequential:
		return GroupFilesSequential(records, maxGroupSizeBytes, logger)
	case StrategyCompact:
		return GroupFilesCompact(records, maxGroupSizeBytes, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

func checkGroupingArgs(records []FileRecord, maxGroupSizeBytes int64, logger *slog.Logger) error {
	if maxGroupSizeBytes <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxGroupSize, maxGroupSizeBytes)
	}
	if logger == nil {
		return ErrNilLogger
	}
	if len(records) == 0 {
		return ErrEmptyInput
	}
	return nil
}

// GroupFilesSequential packs records with a single forward pass. Each record
// lands in the current group if it fits; otherwise the current group is
// closed and a new one is started with that record. Relative input order is
// preserved within and across groups.
func GroupFilesSequential(records []FileRecord, maxGroupSizeBytes int64, logger *slog.Logger) ([]*Group, error) {
	if err := checkGroupingArgs(records, maxGroupSizeBytes, logger); err != nil {
		return nil, err
	}

	var groups []*Group
	current := NewGroup()
	remaining := maxGroupSizeBytes

	for _, record := range records {
		logger.Debug("processing file", "name", record.Name, "size_bytes", record.SizeBytes)

		if record.SizeBytes > maxGroupSizeBytes {
			logger.Warn("file exceeds max group size, skipped", "name", record.Name, "size_bytes", record.SizeBytes)
			continue
		}

		if record.SizeBytes <= remaining {
			remaining -= record.SizeBytes
			current.Add(record)
		} else {
			groups = append(groups, current)
			current = NewGroup(record)
			remaining = maxGroupSizeBytes - record.SizeBytes
		}
	}

	if current.Len() > 0 {
		groups = append(groups, current)
	}

	return groups, nil
}

// GroupFilesCompact packs records best-fit. Every record is offered to each
// open group; the group left with the smallest remaining capacity wins, and
// on equal leftovers the earliest-created group keeps the record. A group
// whose capacity hits exactly zero is retired from further consideration but
// stays in the output. Group output order is creation order.
//
// Cost is O(n*g) over open groups per record. Any faster index over
// capacities has to keep the strict-less-than, first-created-wins tie-break.
func GroupFilesCompact(records []FileRecord, maxGroupSizeBytes int64, logger *slog.Logger) ([]*Group, error) {
	if err := checkGroupingArgs(records, maxGroupSizeBytes, logger); err != nil {
		return nil, err
	}

	var groups []*Group
	var open []*Group

	for _, record := range records {
		logger.Debug("processing file", "name", record.Name, "size_bytes", record.SizeBytes)

		if record.SizeBytes > maxGroupSizeBytes {
			logger.Warn("file exceeds max group size, skipped", "name", record.Name, "size_bytes", record.SizeBytes)
			continue
		}

		tightestIndex := -1
		tightestLeftover := maxGroupSizeBytes + 1

		for i, g := range open {
			leftover := g.Remaining(maxGroupSizeBytes) - record.SizeBytes
			if leftover >= 0 && leftover < tightestLeftover {
				tightestIndex = i
				tightestLeftover = leftover
			}
		}

		if tightestIndex == -1 {
			g := NewGroup(record)
			groups = append(groups, g)
			if g.Remaining(maxGroupSizeBytes) > 0 {
				open = append(open, g)
			}
			continue
		}

		chosen := open[tightestIndex]
		chosen.Add(record)
		if chosen.Remaining(maxGroupSizeBytes) == 0 {
			open = append(open[:tightestIndex], open[tightestIndex+1:]...)
		}
	}

	return groups, nil
}
