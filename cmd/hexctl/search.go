package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/hexkit/internal/logger"
	"github.com/joshuapare/hexkit/internal/search"
)

var (
	searchHex   bool
	searchLimit int
	searchJobs  int
)

func init() {
	cmd := newSearchCmd()
	cmd.Flags().BoolVar(&searchHex, "hex", false, "Pattern is hex digits")
	cmd.Flags().IntVar(&searchLimit, "limit", 0, "Stop after this many matches (0 = all)")
	cmd.Flags().IntVar(&searchJobs, "jobs", 0, "Parallel shards (0 = one per CPU)")
	rootCmd.AddCommand(cmd)
}

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <file> <pattern>",
		Short: "Find every offset of a byte pattern",
		Long: `The search command scans the file in parallel shards, each through its own
window reader, and prints the offset of every match in ascending order.

Example:
  hexctl search disk.img "EFI PART"
  hexctl search disk.img "55 AA" --hex --limit 10`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), args)
		},
	}
	return cmd
}

func runSearch(ctx context.Context, args []string) error {
	path := args[0]
	pattern, err := search.ParsePattern(args[1], searchHex)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	printVerbose("Searching %s for %d byte pattern\n", path, len(pattern))
	logger.Debug("search", "path", path, "pattern_len", len(pattern), "jobs", searchJobs)

	matches, err := search.Find(ctx, path, pattern, search.Options{
		Jobs:   searchJobs,
		Limit:  searchLimit,
		Reader: cfg.ReaderOptions(logger.L),
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOut {
		if matches == nil {
			matches = []int64{}
		}
		return printJSON(map[string]any{
			"file":    path,
			"pattern": fmt.Sprintf("%X", pattern),
			"matches": matches,
		})
	}

	for _, off := range matches {
		printInfo("0x%08x  %d\n", off, off)
	}
	printVerbose("%d match(es)\n", len(matches))
	return nil
}
