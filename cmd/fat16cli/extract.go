package fat16cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fat16fs/fat16/internal/extract"
)

func defineExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "extract <image_path> <dest_dir>",
		Short:        "Recursively extract every file in the volume to dest_dir",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         runExtract,
	}
	cmd.Flags().String("path", "/", "directory within the volume to extract, instead of the whole tree")
	cmd.Flags().Bool("progress", true, "show a progress bar while extracting")
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	img, closer, err := openImage(cmd, args[0])
	if err != nil {
		return err
	}
	defer closer.Close()

	subPath, _ := cmd.Flags().GetString("path")
	showProgress, _ := cmd.Flags().GetBool("progress")

	root, isDir, err := resolvePath(img, subPath)
	if err != nil {
		return err
	}
	if !isDir {
		return fmt.Errorf("%s: not a directory", subPath)
	}

	log := loggerFromFlags(cmd)
	stats, err := extract.Tree(img, &root, args[1], extract.Options{ShowProgress: showProgress})
	if err != nil {
		return err
	}
	log.Infof("extracted %d files (%d dirs, %d bytes) into %s", stats.FilesWritten, stats.DirsCreated, stats.BytesWritten, args[1])
	return nil
}
