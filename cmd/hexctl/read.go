package main

import (
	"encoding/hex"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"
)

var (
	readOffset int64
	readLength int64
	readRaw    bool
)

func init() {
	cmd := newReadCmd()
	cmd.Flags().Int64Var(&readOffset, "offset", 0, "Start offset")
	cmd.Flags().Int64Var(&readLength, "length", 16, "Bytes to read")
	cmd.Flags().BoolVar(&readRaw, "raw", false, "Write the bytes unchanged to stdout")
	rootCmd.AddCommand(cmd)
}

func newReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <file>",
		Short: "Extract a byte range",
		Long: `The read command reads one range through the window reader and prints it
as hex, or writes it unchanged with --raw. The length is clamped to the end
of file.

Example:
  hexctl read disk.img --offset 510 --length 2
  hexctl read disk.img --offset 0x100000 --length 4096 --raw > block.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(args)
		},
	}
	return cmd
}

func runRead(args []string) error {
	path := args[0]
	if readLength < 0 || readLength > math.MaxInt32 {
		return fmt.Errorf("length %d not in [0,%d]", readLength, math.MaxInt32)
	}

	printVerbose("Opening file: %s\n", path)
	r, size, err := openReader(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer r.Close()

	data, err := r.ReadRange(readOffset, int32(readLength))
	if err != nil {
		return fmt.Errorf("failed to read: %w", err)
	}
	printVerbose("Read %d of %d requested bytes at %#x (file is %d bytes)\n",
		len(data), readLength, readOffset, size)

	switch {
	case readRaw:
		_, err := os.Stdout.Write(data)
		return err
	case jsonOut:
		return printJSON(map[string]any{
			"file":   path,
			"offset": readOffset,
			"length": len(data),
			"hex":    hex.EncodeToString(data),
		})
	default:
		printInfo("%s\n", hex.EncodeToString(data))
		return nil
	}
}
