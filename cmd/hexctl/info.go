package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/joshuapare/hexkit/internal/scroll"
)

var infoLines int

func init() {
	cmd := newInfoCmd()
	cmd.Flags().IntVar(&infoLines, "lines", 32, "Visible rows used for the scroll geometry")
	rootCmd.AddCommand(cmd)
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Report file length, window layout and scroll geometry",
		Long: `The info command opens a file, maps its first window(s) and reports the
length, window capacity, how many windows the file spans, the offset column
width and the scrollbar geometry a viewer would use.

Example:
  hexctl info disk.img
  hexctl info disk.img --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

// fileInfo is the info report.
type fileInfo struct {
	File           string `json:"file"`
	Size           int64  `json:"size"`
	WindowCapacity int64  `json:"window_capacity"`
	Blocks         int64  `json:"blocks"`
	State          string `json:"state"`
	Windows        []span `json:"windows"`
	OffsetWidth    int    `json:"offset_width"`
	BytesPerLine   int    `json:"bytes_per_line"`
	Lines          int64  `json:"lines"`
	LinesPerIndex  int64  `json:"lines_per_index"`
	MaxIndex       int32  `json:"max_index"`
}

type span struct {
	Base int64 `json:"base"`
	End  int64 `json:"end"`
}

func runInfo(args []string) error {
	path := args[0]

	printVerbose("Opening file: %s\n", path)
	r, size, err := openReader(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer r.Close()

	// Touch the first byte so the initial windows exist.
	if _, err := r.ReadRange(0, 1); err != nil {
		return fmt.Errorf("failed to map file: %w", err)
	}
	snap := r.Snapshot()
	layout := cfg.Layout(size)
	sc := scroll.Compute(scroll.Geometry{
		FileLength:   size,
		BytesPerLine: layout.BytesPerLine,
		VisibleLines: infoLines,
	})

	info := fileInfo{
		File:           path,
		Size:           size,
		WindowCapacity: r.Capacity(),
		Blocks:         (size + r.Capacity() - 1) / r.Capacity(),
		State:          snap.State.String(),
		Windows:        []span{},
		OffsetWidth:    layout.OffsetWidth,
		BytesPerLine:   layout.BytesPerLine,
		Lines:          sc.Lines,
		LinesPerIndex:  sc.LinesPerIndex,
		MaxIndex:       sc.MaxIndex,
	}
	for _, w := range snap.Windows {
		info.Windows = append(info.Windows, span{Base: w.Base, End: w.End()})
	}

	// Output as JSON if requested
	if jsonOut {
		return printJSON(info)
	}

	data := [][]string{
		{"File:", path},
		{"Size:", fmt.Sprintf("%d (%s)", size, humanBytes(size))},
		{"Window capacity:", humanBytes(info.WindowCapacity)},
		{"Blocks:", strconv.FormatInt(info.Blocks, 10)},
		{"State:", info.State},
	}
	for i, w := range info.Windows {
		name := "Primary:"
		if i == 1 {
			name = "Secondary:"
		}
		data = append(data, []string{name, fmt.Sprintf("[%#x, %#x)", w.Base, w.End)})
	}
	data = append(data,
		[]string{"Offset width:", strconv.Itoa(info.OffsetWidth)},
		[]string{"Rows:", fmt.Sprintf("%d at %d bytes", info.Lines, info.BytesPerLine)},
		[]string{"Rows per index:", strconv.FormatInt(info.LinesPerIndex, 10)},
		[]string{"Max index:", strconv.FormatInt(int64(info.MaxIndex), 10)},
	)

	if quiet {
		return nil
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding(" ")
	table.AppendBulk(data)
	table.Render()
	return nil
}
