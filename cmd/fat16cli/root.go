package fat16cli

import (
	"github.com/spf13/cobra"
)

const AppName = "fat16cli"

// Execute builds and runs the command tree.
func Execute() error {
	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: AppName + " - read-only FAT16 volume inspector",
	}

	rootCmd.PersistentFlags().String("log-level", "INFO", "DEBUG, INFO, WARN, or ERROR")
	rootCmd.PersistentFlags().Int64("partition-offset", 0, "byte offset of the FAT16 volume within the image, if not at offset 0")
	rootCmd.PersistentFlags().StringSlice("span", nil, "additional image chunks following <image_path>, in order, treating the sequence as one volume")
	rootCmd.PersistentFlags().Bool("mmap", false, "memory-map the image instead of using buffered file I/O (ignored with --span)")

	rootCmd.AddCommand(
		defineLsCommand(),
		defineCatCommand(),
		defineExtractCommand(),
		defineMountCommand(),
		defineScanCommand(),
	)

	return rootCmd.Execute()
}
