package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/haldis-labs/archivehdr/ziphdr"
)

var zipCmd = &cobra.Command{
	Use:   "zip",
	Short: "Locate, decode, and mutate the ZIP end-of-central-directory record",
}

var zipEOCDCmd = &cobra.Command{
	Use:   "eocd <file>",
	Short: "Locate and print the EOCD record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, offset, err := locateEOCD(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("offset:                %d\n", offset)
		fmt.Printf("diskNumber:            %d\n", rec.DiskNumber())
		fmt.Printf("centralDirectoryDisk:  %d\n", rec.CentralDirectoryDisk())
		fmt.Printf("entriesOnDisk:         %d\n", rec.TotalCentralDirectoryEntriesOnDisk())
		fmt.Printf("totalEntries:          %d\n", rec.TotalCentralDirectoryEntries())
		fmt.Printf("centralDirectorySize:  %d\n", rec.CentralDirectorySize())
		fmt.Printf("centralDirectoryStart: %d\n", rec.CentralDirectoryStart())
		fmt.Printf("commentLength:         %d\n", rec.CommentLength())
		fmt.Printf("comment:               %q\n", rec.Comment())
		return nil
	},
}

var zipSetCommentCmd = &cobra.Command{
	Use:   "set-comment <file> <text>",
	Short: "Rewrite the EOCD comment in place",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, text := args[0], args[1]
		rec, offset, err := locateEOCD(path)
		if err != nil {
			return err
		}
		if err := rec.SetComment(text); err != nil {
			return errors.Wrap(err, "cmd: set comment")
		}

		f, err := os.OpenFile(path, os.O_RDWR, 0)
		if err != nil {
			return errors.Wrapf(err, "cmd: open %s", path)
		}
		defer f.Close()

		if err := f.Truncate(offset); err != nil {
			return errors.Wrapf(err, "cmd: truncate %s", path)
		}
		if _, err := f.WriteAt(ziphdr.Encode(rec), offset); err != nil {
			return errors.Wrapf(err, "cmd: write %s", path)
		}
		return nil
	},
}

func init() {
	zipCmd.AddCommand(zipEOCDCmd, zipSetCommentCmd)
	rootCmd.AddCommand(zipCmd)
}

func locateEOCD(path string) (*ziphdr.Record, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "cmd: open %s", path)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, 0, errors.Wrapf(err, "cmd: stat %s", path)
	}
	rec, offset, err := ziphdr.LocateAndDecode(f, fi.Size())
	if err != nil {
		return nil, 0, errors.Wrapf(err, "cmd: locate EOCD in %s", path)
	}
	return rec, offset, nil
}
