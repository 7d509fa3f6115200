package fat16cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func defineCatCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "cat <image_path> <path>",
		Short:        "Stream a file's contents to stdout",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         runCat,
	}
}

func runCat(cmd *cobra.Command, args []string) error {
	img, closer, err := openImage(cmd, args[0])
	if err != nil {
		return err
	}
	defer closer.Close()

	cursor, isDir, err := resolvePath(img, args[1])
	if err != nil {
		return err
	}
	if isDir {
		return fmt.Errorf("%s: is a directory", args[1])
	}

	_, err = io.Copy(cmd.OutOrStdout(), img.OpenFile(&cursor))
	return err
}
