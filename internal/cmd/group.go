package cmd

import (
	"errors"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/filebatch/bgs/batch"
	"github.com/filebatch/bgs/internal/config"
)

// NewGroupCmd creates and returns the group subcommand for the bgs CLI.
// It collects file attributes from a source directory, packs them into
// size-capped groups, and saves one JSON descriptor per group.
func NewGroupCmd() *cobra.Command {
	var (
		sourceDir     string
		outputDir     string
		maxBytes      int64
		maxMegabytes  int64
		method        string
		workers       int
		unordered     bool
		validateAfter bool
	)

	cmd := &cobra.Command{
		Use:   "group",
		Short: "Group files in a directory into size-capped batches",
		Long: `Group the files directly inside a source directory into batches whose
total size stays under the configured limit, then save each batch as a
JSON array of file records named group_001.json, group_002.json, and so on.

Exactly one of --max-group-size-bytes or --max-group-size-megabytes is
required. Files larger than the limit are skipped with a warning.

Records are sorted by name before grouping so repeated runs produce the
same batches; pass --unordered to group in stat completion order instead.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				log.Fatalf("Invalid configuration: %v", err)
			}

			// Flags win over config file and environment.
			flags := cmd.Flags()
			if !flags.Changed("method") {
				method = cfg.Grouping.Method
			}
			if !flags.Changed("output-dir") {
				outputDir = cfg.Grouping.OutputDir
			}
			if !flags.Changed("workers") {
				workers = cfg.Grouping.Workers
			}
			if !flags.Changed("unordered") {
				unordered = cfg.Grouping.Unordered
			}
			if !flags.Changed("validate") {
				validateAfter = cfg.Grouping.Validate
			}
			applyLoggingFlags(flags, &cfg.Logging)

			maxGroupSizeBytes := maxBytes
			if flags.Changed("max-group-size-megabytes") {
				maxGroupSizeBytes = maxMegabytes * batch.BytesInMB
			}

			runGroup(sourceDir, outputDir, maxGroupSizeBytes, batch.Strategy(method), workers, unordered, validateAfter, cfg.Logging)
		},
	}

	defaults := config.Default()
	cwd, _ := os.Getwd()

	cmd.Flags().StringVarP(&sourceDir, "source-dir", "s", cwd, "Path to the source directory to scan for files")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", defaults.Grouping.OutputDir, "Output directory for group descriptors")
	cmd.Flags().Int64Var(&maxBytes, "max-group-size-bytes", 0, "Max group size in bytes")
	cmd.Flags().Int64Var(&maxMegabytes, "max-group-size-megabytes", 0, "Max group size in MiB")
	cmd.Flags().StringVarP(&method, "method", "m", defaults.Grouping.Method, "Grouping strategy: sequential or compact")
	cmd.Flags().IntVarP(&workers, "workers", "w", defaults.Grouping.Workers, "Stat worker pool size")
	cmd.Flags().BoolVar(&unordered, "unordered", defaults.Grouping.Unordered, "Group in stat completion order (nondeterministic)")
	cmd.Flags().BoolVar(&validateAfter, "validate", defaults.Grouping.Validate, "Re-check group sizes after saving")
	addLoggingFlags(cmd)

	cmd.MarkFlagsOneRequired("max-group-size-bytes", "max-group-size-megabytes")
	cmd.MarkFlagsMutuallyExclusive("max-group-size-bytes", "max-group-size-megabytes")

	return cmd
}

func runGroup(sourceDir, outputDir string, maxGroupSizeBytes int64, strategy batch.Strategy, workers int, unordered, validateAfter bool, logCfg config.LoggingConfig) {
	logger, closeLogger, err := newLogger(logCfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLogger()

	records, err := batch.CollectAttributes(sourceDir, workers, logger)
	if err != nil {
		log.Fatalf("Failed to collect file attributes: %v", err)
	}
	if !unordered {
		batch.SortRecords(records)
	}

	logger.Info("grouping files",
		"method", strategy,
		"files", len(records),
		"max_group_size_bytes", maxGroupSizeBytes)

	groups, err := batch.GroupFiles(records, maxGroupSizeBytes, strategy, logger)
	if err != nil {
		log.Fatalf("Failed to group files: %v", err)
	}

	placed := 0
	for _, g := range groups {
		placed += g.Len()
	}
	logger.Info("grouping complete", "files", placed, "groups", len(groups), "skipped", len(records)-placed)

	err = batch.SaveGroups(groups, outputDir, maxGroupSizeBytes, logger)
	if errors.Is(err, batch.ErrNoGroups) {
		logger.Warn("no groups to save")
		return
	}
	if err != nil {
		log.Fatalf("Failed to save groups: %v", err)
	}

	if validateAfter {
		if _, _, err := batch.ValidateGroups(groups, maxGroupSizeBytes, logger); err != nil {
			log.Fatalf("Failed to validate groups: %v", err)
		}
	}

	logger.Info("saved groups", "groups", len(groups), "output_dir", outputDir)
}
