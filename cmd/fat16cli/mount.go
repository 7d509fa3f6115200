package fat16cli

import (
	"github.com/spf13/cobra"

	"github.com/fat16fs/fat16/internal/fatfs"
)

func defineMountCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "mount <image_path> <mountpoint>",
		Short:        "Mount the volume read-only via FUSE (Linux only)",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         runMount,
	}
}

func runMount(cmd *cobra.Command, args []string) error {
	img, closer, err := openImage(cmd, args[0])
	if err != nil {
		return err
	}
	defer closer.Close()

	return fatfs.Mount(args[1], img)
}
