// Package batch implements the grouping engine behind the bgs tool.
//
// The engine partitions a set of file records into capacity-bounded groups
// so that no group's total byte size exceeds a configured limit, and
// persists each group as a JSON descriptor.
//
// Key Components:
//
// Data Model:
//   - FileRecord: name, byte size, and an opaque last-modified timestamp
//   - Group: an ordered run of records with a derived byte total
//
// Grouping Strategies:
//   - Sequential: order-preserving first-fit over a single forward pass
//   - Compact: best-fit packing that minimizes leftover capacity, with
//     first-created groups winning capacity ties
//
// Both strategies drop records that are individually larger than the group
// limit, with a warning diagnostic; an oversized record is never an error.
//
// Attribute Collection:
//   - CollectAttributes stats files across a bounded worker pool and
//     delivers records in completion order, which is explicitly unordered
//   - SortRecords stabilizes a collected slice for deterministic grouping
//
// Persistence:
//   - SaveGroups writes group_NNN.json descriptors plus a run manifest
//   - LoadGroups reads descriptors back for post-hoc validation
//
// Validation:
//   - ValidateGroups recounts group sizes from their members and reports
//     how many respect the limit; it never filters the caller's groups
//
// Every operation takes an injected *slog.Logger rather than touching any
// global logger state.
package batch
