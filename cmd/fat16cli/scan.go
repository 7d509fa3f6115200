package fat16cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fat16fs/fat16/internal/extract"
	"github.com/fat16fs/fat16/internal/srcfile"
	"github.com/fat16fs/fat16/internal/volscan"
	"github.com/fat16fs/fat16/pkg/fat16"
	"github.com/fat16fs/fat16/pkg/reader"
)

func defineScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "scan <device_or_image>",
		Short:        "Locate FAT16 volumes on a device or image via its MBR or a boot-sector sweep",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runScan,
	}
	cmd.Flags().String("dump", "", "extract every discovered volume's files under this directory")
	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	log := loggerFromFlags(cmd)

	f, err := srcfile.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", args[0], err)
	}

	volumes, err := volscan.DiscoverVolumes(f, info.Size())
	if err != nil {
		return err
	}
	if len(volumes) == 0 {
		log.Warn("no FAT16 volumes found")
		return nil
	}

	dumpDir, _ := cmd.Flags().GetString("dump")

	for i, v := range volumes {
		log.Infof("volume %d: offset=%d label=%q knownOEMID=%v", i, v.Offset, string(v.Boot.VolumeLabel[:]), v.KnownOEMID)

		if dumpDir == "" {
			continue
		}

		section := io.NewSectionReader(f, v.Offset, info.Size()-v.Offset)
		img, err := fat16.Open(reader.NewBufferedReadSeeker(section, readBufferSize))
		if err != nil {
			log.Errorf("volume %d: %v", i, err)
			continue
		}

		root := *img.RootDirEntry()
		dest := filepath.Join(dumpDir, fmt.Sprintf("volume-%d", i))
		stats, err := extract.Tree(img, &root, dest, extract.Options{ShowProgress: false})
		if err != nil {
			log.Errorf("volume %d: extracting: %v", i, err)
			continue
		}
		log.Infof("volume %d: extracted %d files into %s", i, stats.FilesWritten, dest)
	}
	return nil
}
