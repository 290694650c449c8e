package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/hexkit/internal/config"
	"github.com/joshuapare/hexkit/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Parse flags first (before positional args)
	args := os.Args[1:]
	debugMode := false
	cfgFile := ""

	// Extract --debug/-d and --config flags
	filteredArgs := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "--debug" || arg == "-d":
			debugMode = true
		case arg == "--config" && i+1 < len(args):
			cfgFile = args[i+1]
			i++
		default:
			filteredArgs = append(filteredArgs, arg)
		}
	}

	cfg, err := config.Load(cfgFile, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger (must be before any logging calls)
	logOpts := cfg.LoggerOptions("hexexplorer-")
	logOpts.Enabled = logOpts.Enabled || debugMode
	if err := logger.Init(logOpts); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	if len(filteredArgs) < 1 {
		printUsage()
		os.Exit(1)
	}

	if filteredArgs[0] == "--help" || filteredArgs[0] == "-h" {
		printHelp()
		os.Exit(0)
	}

	if filteredArgs[0] == "--version" || filteredArgs[0] == "-v" {
		fmt.Printf("hexexplorer %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		os.Exit(0)
	}

	path := filteredArgs[0]
	logger.Info("starting hexexplorer", "path", path, "debug", debugMode, "capacity", cfg.WindowCapacity)

	// Check if file exists
	if fi, err := os.Stat(path); err != nil || fi.IsDir() {
		logger.Error("file not readable", "path", path, "error", err)
		fmt.Fprintf(os.Stderr, "Error: not a readable file: %s\n", path)
		os.Exit(1)
	}

	m := NewModel(path, cfg)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse wheel scrolling
	)

	finalModel, err := p.Run()
	if err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	// Clean up resources
	if model, ok := finalModel.(Model); ok {
		if err := model.Close(); err != nil {
			// Log error but don't fail - cleanup is best effort
			logger.Warn("error closing resources", "error", err)
		}
	}

	logger.Info("hexexplorer exited normally")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: hexexplorer [options] <file>\n")
	fmt.Fprintf(os.Stderr, "Try 'hexexplorer --help' for more information.\n")
}

func printHelp() {
	fmt.Println("hexexplorer - Interactive hex viewer for files of any size")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  hexexplorer [options] <file>")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Shows offset, hex and text columns of a file read through two sliding")
	fmt.Println("  memory-mapped windows, so multi-gigabyte files open instantly.")
	fmt.Println()
	fmt.Println("  Navigation:")
	fmt.Println("    ↑/k, ↓/j    Scroll one row")
	fmt.Println("    PgUp, PgDn  Scroll one page")
	fmt.Println("    g, G        Go to start / end")
	fmt.Println("    Ctrl+G, :   Go to offset")
	fmt.Println("    c           Copy visible page as hex")
	fmt.Println("    r           Reopen file")
	fmt.Println("    ?           Show help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -d, --debug        Enable debug logging to ~/.hexkit/logs/")
	fmt.Println("      --config FILE  Config file (default ~/.hexkit/config.yaml)")
	fmt.Println("  -h, --help         Show this help message")
	fmt.Println("  -v, --version      Show version information")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  hexexplorer disk.img")
	fmt.Println("  HEXKIT_BYTES_PER_LINE=16 hexexplorer firmware.bin")
	fmt.Println()
	fmt.Println("For non-interactive operations, use the 'hexctl' command instead.")
}
