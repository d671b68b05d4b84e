// Package cmd provides the command-line interface implementation for bgs.
//
// This package contains all the subcommand implementations for the bgs CLI
// tool. It uses the Cobra library for command structure and Fang for
// execution and styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator and entry point
//   - group: File attribute collection, grouping and descriptor output
//   - validate: Post-hoc size checking of saved group descriptors
//   - seed: Test file generation
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. Configuration defaults come from
// the config package (config file plus BGS_* environment variables) and are
// overridden by flags. Diagnostics go through an injected slog.Logger built
// by newLogger; fatal CLI errors use log.Fatalf.
//
// The package leverages the batch package for all grouping operations.
package cmd
