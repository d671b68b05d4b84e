package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/filebatch/bgs/internal/config"
	"github.com/filebatch/bgs/version"
)

// NewRootCmd creates and returns the root cobra command for the bgs CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bgs",
		Short: "bgs - Split a directory of files into size-capped batch groups",
		Long: `bgs groups the files in a directory into batches whose total byte size
never exceeds a configured limit, and saves each batch as a JSON descriptor.

Use subcommands to perform different operations:
  - group: Collect file sizes and write group descriptors
  - validate: Re-check saved group descriptors against a size limit
  - seed: Generate test files of randomized sizes`,
		Version: version.GetFullVersion(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := config.Init(); err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
		},
	}

	groupGrouping := "grouping"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupGrouping,
		Title: "Grouping Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	groupCmd := NewGroupCmd()
	validateCmd := NewValidateCmd()
	seedCmd := NewSeedCmd()

	groupCmd.GroupID = groupGrouping
	validateCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities

	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(seedCmd)

	return rootCmd
}
