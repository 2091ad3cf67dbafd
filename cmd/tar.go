package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/haldis-labs/archivehdr/blockfile"
	"github.com/haldis-labs/archivehdr/identity"
	"github.com/haldis-labs/archivehdr/internal/config"
	"github.com/haldis-labs/archivehdr/tarhdr"
)

var tarCmd = &cobra.Command{
	Use:   "tar",
	Short: "Inspect or verify Tar (V7/USTAR/GNU) headers",
}

var tarInspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Decode every header in a tar stream and print it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		return walkTar(args[0], decodeOptions(cfg), cfg.Strict, func(h *tarhdr.Header) error {
			printHeader(h)
			return nil
		})
	},
}

var tarVerifyCmd = &cobra.Command{
	Use:   "verify <path>",
	Short: "Verify checksums of every header in a tar file, or every tar file in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		fi, err := os.Stat(args[0])
		if err != nil {
			return errors.Wrap(err, "cmd: stat target")
		}
		if !fi.IsDir() {
			return verifyOne(args[0], cfg)
		}
		return verifyDir(args[0], cfg)
	},
}

func init() {
	tarCmd.AddCommand(tarInspectCmd, tarVerifyCmd)
	rootCmd.AddCommand(tarCmd)
}

func decodeOptions(cfg config.Config) tarhdr.DecodeOptions {
	superuser := cfg.Superuser || os.Geteuid() == 0
	return tarhdr.DecodeOptions{Resolver: identity.OS{}, Superuser: superuser}
}

// walkTar drives the Tar codec over path block by block: sniff format
// depth, decode, hand the header to onHeader, then skip the data blocks
// that follow before advancing to the next header (§5's "block reads
// strictly follow archive order").
func walkTar(path string, opts tarhdr.DecodeOptions, strict bool, onHeader func(*tarhdr.Header) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "cmd: open %s", path)
	}
	defer f.Close()

	bf := blockfile.NewDiskBlocks(f)
	for {
		block, err := bf.Current()
		if err != nil {
			// clean EOF at a block boundary: no more headers.
			return nil
		}
		if tarhdr.IsZeroBlock(block) {
			return nil
		}

		h, err := tarhdr.DecodeAuto(bf, opts)
		if err != nil {
			if !strict {
				if kind, ok := tarhdr.KindOf(err); ok && kind == tarhdr.KindChecksumMismatch {
					fmt.Fprintf(os.Stderr, "warning: %s: %v\n", path, err)
					return nil
				}
			}
			return errors.Wrapf(err, "cmd: decode header in %s", path)
		}
		if err := onHeader(h); err != nil {
			return err
		}

		blocks := tarhdr.DataBlocks(h.Common.FileSize)
		for i := int64(0); i < blocks; i++ {
			if _, err := bf.Next(); err != nil {
				return errors.Wrapf(err, "cmd: skip data blocks in %s", path)
			}
		}
		if _, err := bf.Next(); err != nil {
			return nil
		}
	}
}

func verifyOne(path string, cfg config.Config) error {
	return walkTar(path, decodeOptions(cfg), cfg.Strict, func(h *tarhdr.Header) error {
		return nil
	})
}

// verifyDir fans a bounded worker pool (golang.org/x/sync/errgroup) over
// every entry in dir, verifying each independently. This concurrency
// sits entirely outside the synchronous codec core (§5): each goroutine
// owns its own *os.File and tarhdr.Header values, never sharing one
// across goroutines.
func verifyDir(dir string, cfg config.Config) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, "cmd: read dir %s", dir)
	}

	g := new(errgroup.Group)
	g.SetLimit(viper.GetInt("verify-workers"))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := dir + string(os.PathSeparator) + e.Name()
		g.Go(func() error {
			return verifyOne(path, cfg)
		})
	}
	return g.Wait()
}

func printHeader(h *tarhdr.Header) {
	fmt.Printf("%-6s %-8s %6d %6d %10d %s\n",
		formatName(h.Format), h.Common.Type, h.Common.UserID, h.Common.GroupID,
		h.Common.FileSize, h.Path())
}

func formatName(f tarhdr.Format) string {
	switch f {
	case tarhdr.FormatV7:
		return "v7"
	case tarhdr.FormatUSTAR:
		return "ustar"
	case tarhdr.FormatGNU:
		return "gnu"
	default:
		return "?"
	}
}
