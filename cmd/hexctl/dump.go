package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/hexkit/internal/hexfmt"
)

var (
	dumpOffset   int64
	dumpLength   int64
	dumpWidth    int
	dumpEncoding string
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().Int64Var(&dumpOffset, "offset", 0, "Start offset")
	cmd.Flags().Int64Var(&dumpLength, "length", 256, "Bytes to dump (0 = to end of file)")
	cmd.Flags().IntVar(&dumpWidth, "width", hexfmt.DefaultBytesPerLine, "Bytes per row")
	cmd.Flags().StringVar(&dumpEncoding, "encoding", "ascii", "Text column encoding")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Hex dump a range of a file",
		Long: `The dump command prints offset, hex and text columns for a byte range.
Ranges past the end of file are clamped.

Example:
  hexctl dump disk.img
  hexctl dump disk.img --offset 0x1BE --length 64 --width 16
  hexctl dump dump.bin --encoding cp866
  hexctl dump disk.img --length 32 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

type dumpRow struct {
	Offset string `json:"offset"`
	Hex    string `json:"hex"`
	Text   string `json:"text"`
}

func runDump(args []string) error {
	path := args[0]
	if dumpOffset < 0 {
		return fmt.Errorf("offset %d is negative", dumpOffset)
	}

	printVerbose("Opening file: %s\n", path)
	r, size, err := openReader(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer r.Close()

	layout := cfg.Layout(size)
	length := clampRange(dumpOffset, dumpLength, size)
	printVerbose("Dumping %d bytes at %#x of %d\n", length, dumpOffset, size)

	if !jsonOut {
		if quiet {
			return nil
		}
		if err := layout.Dump(os.Stdout, r, dumpOffset, length); err != nil {
			return fmt.Errorf("failed to dump: %w", err)
		}
		return nil
	}

	rows := []dumpRow{}
	buf := make([]byte, layout.BytesPerLine*256)
	for done := int64(0); done < length; {
		chunk := buf[:min(int64(len(buf)), length-done)]
		n, err := r.ReadRangeInto(chunk, dumpOffset+done)
		if err != nil {
			return fmt.Errorf("failed to read: %w", err)
		}
		if n == 0 {
			break
		}
		page := layout.Format(dumpOffset+done, chunk[:n])
		for i := range page.Rows() {
			rows = append(rows, dumpRow{Offset: page.Offsets[i], Hex: page.Hex[i], Text: page.Text[i]})
		}
		done += int64(n)
	}
	return printJSON(map[string]any{
		"file":   path,
		"size":   size,
		"offset": dumpOffset,
		"length": length,
		"rows":   rows,
	})
}
