// Package batch provides the grouping engine for the bgs tool.
package batch

import "errors"

// Sentinel errors for package batch.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Configuration errors
	ErrInvalidMaxGroupSize = errors.New("max group size must be a positive number of bytes")
	ErrUnknownStrategy     = errors.New("unknown grouping strategy")
	ErrNilLogger           = errors.New("logger must not be nil")

	// Input errors
	ErrEmptyInput = errors.New("no file records to group")

	// Collection errors
	ErrNotDirectory = errors.New("source path is not a directory")

	// Sink errors
	ErrNoGroups = errors.New("no groups to save")
)
