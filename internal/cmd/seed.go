package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/filebatch/bgs/batch"
	"github.com/filebatch/bgs/internal/config"
)

// NewSeedCmd creates and returns the seed subcommand for the bgs CLI.
// It generates test files of randomized sizes for exercising the grouper.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		opts       = batch.DefaultSeedOptions()
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate test files of randomized sizes",
		Long: `Generate a randomized number of test files for exercising the grouping
engine. File count and sizes are drawn uniformly from the configured
bounds; content is a repeating UUID pattern written in 1 MiB chunks.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				log.Fatalf("Invalid configuration: %v", err)
			}
			applyLoggingFlags(cmd.Flags(), &cfg.Logging)

			runSeed(outputPath, opts, cfg.Logging)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVar(&opts.MinFiles, "min-files", opts.MinFiles, "Min files to generate")
	cmd.Flags().IntVar(&opts.MaxFiles, "max-files", opts.MaxFiles, "Max files to generate")
	cmd.Flags().Int64Var(&opts.MinFileSizeBytes, "min-file-size-bytes", opts.MinFileSizeBytes, "Min file size in bytes")
	cmd.Flags().Int64Var(&opts.MaxFileSizeBytes, "max-file-size-bytes", opts.MaxFileSizeBytes, "Max file size in bytes")
	addLoggingFlags(cmd)

	cmd.MarkFlagRequired("output")

	return cmd
}

func runSeed(outputPath string, opts batch.SeedOptions, logCfg config.LoggingConfig) {
	logger, closeLogger, err := newLogger(logCfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLogger()

	created, err := batch.SeedFiles(outputPath, opts, logger)
	if err != nil {
		log.Fatalf("Failed to seed test files: %v", err)
	}

	fmt.Printf("Created %d files in %s\n", created, outputPath)
}
