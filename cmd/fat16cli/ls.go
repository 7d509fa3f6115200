package fat16cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fat16fs/fat16/pkg/fat16"
)

func defineLsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "ls <image_path> [path]",
		Short:        "List a directory's contents, or show one entry",
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE:         runLs,
	}
	return cmd
}

func runLs(cmd *cobra.Command, args []string) error {
	path := "/"
	if len(args) == 2 {
		path = args[1]
	}

	img, closer, err := openImage(cmd, args[0])
	if err != nil {
		return err
	}
	defer closer.Close()

	cursor, isDir, err := resolvePath(img, path)
	if err != nil {
		return err
	}

	if !isDir {
		printEntry(cmd, cursor)
		return nil
	}

	for img.Next(&cursor) {
		printEntry(cmd, cursor)
	}
	return nil
}

func printEntry(cmd *cobra.Command, e fat16.Entry) {
	kind := "-"
	if e.IsDirectory() {
		kind = "d"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %10d  %s\n", kind, e.Size(), e.Name())
}
