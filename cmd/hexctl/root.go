package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/joshuapare/hexkit/internal/config"
	"github.com/joshuapare/hexkit/internal/logger"
	"github.com/joshuapare/hexkit/window"
)

var (
	// Global flags
	verbose        bool
	quiet          bool
	jsonOut        bool
	cfgFile        string
	windowCapacity int
	debugLog       bool

	// cfg is resolved before any command runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "hexctl",
	Short: "Inspect large binary files through sliding memory-mapped windows",
	Long: `hexctl reads arbitrary byte ranges of files of any size through at most
two memory-mapped windows. It can dump, extract and search file contents and
shows how the windows move as ranges are read.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd.Flags())
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "Config file (default $HOME/.hexkit/config.yaml)")
	rootCmd.PersistentFlags().
		IntVar(&windowCapacity, "window-capacity", window.DefaultCapacity, "Bytes per mapped window (multiple of 64 KiB)")
	rootCmd.PersistentFlags().
		BoolVar(&debugLog, "debug", false, "Write debug logs to ~/.hexkit/logs")
}

// setup resolves configuration and starts the file logger.
func setup(fs *pflag.FlagSet) error {
	c, err := config.Load(cfgFile, fs)
	if err != nil {
		return err
	}
	if err := logger.Init(c.LoggerOptions("hexctl-")); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	cfg = c
	if c.File != "" {
		printVerbose("Using config: %s\n", c.File)
	}
	return nil
}

func execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError("%v\n", err)
		return 1
	}
	return 0
}

// openReader opens path with the configured window reader.
func openReader(path string) (*window.Reader, int64, error) {
	r := window.New(cfg.ReaderOptions(logger.L))
	size, err := r.Open(path)
	if err != nil {
		return nil, 0, err
	}
	logger.Debug("opened", "path", path, "size", size, "capacity", r.Capacity())
	return r, size, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// humanBytes formats n with a binary unit.
func humanBytes(n int64) string {
	switch {
	case n < 1<<10:
		return fmt.Sprintf("%d B", n)
	case n < 1<<20:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	case n < 1<<30:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	default:
		return fmt.Sprintf("%.1f GiB", float64(n)/(1<<30))
	}
}

// clampRange limits [offset, offset+length) to a file of size bytes. A
// non-positive length means to the end of file.
func clampRange(offset, length, size int64) int64 {
	if offset >= size {
		return 0
	}
	if length <= 0 || length > size-offset {
		return size - offset
	}
	return length
}
