package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/filebatch/bgs/batch"
	"github.com/filebatch/bgs/internal/config"
)

// NewValidateCmd creates and returns the validate subcommand for the bgs CLI.
// It re-checks saved group descriptors against a size limit.
func NewValidateCmd() *cobra.Command {
	var (
		path         string
		maxBytes     int64
		maxMegabytes int64
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Re-check saved group descriptors against a size limit",
		Long: `Load every group_NNN.json descriptor in a directory, recompute each
group's total size from its file records, and report how many groups
respect the limit.

Validation is a diagnostic only: descriptors are never modified, and an
oversized group does not stop the check. The command exits non-zero if
any group exceeds the limit.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				log.Fatalf("Invalid configuration: %v", err)
			}
			applyLoggingFlags(cmd.Flags(), &cfg.Logging)

			maxGroupSizeBytes := maxBytes
			if cmd.Flags().Changed("max-group-size-megabytes") {
				maxGroupSizeBytes = maxMegabytes * batch.BytesInMB
			}

			runValidate(path, maxGroupSizeBytes, cfg.Logging)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "groups", "Directory containing group descriptors")
	cmd.Flags().Int64Var(&maxBytes, "max-group-size-bytes", 0, "Max group size in bytes")
	cmd.Flags().Int64Var(&maxMegabytes, "max-group-size-megabytes", 0, "Max group size in MiB")
	addLoggingFlags(cmd)

	cmd.MarkFlagsOneRequired("max-group-size-bytes", "max-group-size-megabytes")
	cmd.MarkFlagsMutuallyExclusive("max-group-size-bytes", "max-group-size-megabytes")

	return cmd
}

func runValidate(path string, maxGroupSizeBytes int64, logCfg config.LoggingConfig) {
	logger, closeLogger, err := newLogger(logCfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLogger()

	groups, err := batch.LoadGroups(path)
	if err != nil {
		log.Fatalf("Failed to load group descriptors: %v", err)
	}

	valid, total, err := batch.ValidateGroups(groups, maxGroupSizeBytes, logger)
	if err != nil {
		log.Fatalf("Failed to validate groups: %v", err)
	}

	fmt.Printf("%d valid groups out of %d\n", len(valid), total)
	if len(valid) != total {
		os.Exit(1)
	}
}
