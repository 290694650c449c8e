package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/hexkit/internal/testutil"
)

func TestRootAppliesConfigFile(t *testing.T) {
	resetGlobals(t)
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "hexkit.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("bytes_per_line: 4\nwindow_capacity: 131072\n"), 0o644))
	path := testutil.WriteFile(t, "root.bin", testutil.PatternData(64))
	dumpOffset = 0

	rootCmd.SetArgs([]string{"--config", cfgPath, "dump", path, "--length", "8"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	output, err := captureOutput(t, func() error {
		return rootCmd.Execute()
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"00: 00 01 02 03  |....|", "04: 04 05 06 07  |....|"})
	assert.Equal(t, 131072, cfg.WindowCapacity)
	assert.Equal(t, cfgPath, cfg.File)
}

func TestRootRejectsBadConfig(t *testing.T) {
	resetGlobals(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("HEXKIT_WINDOW_CAPACITY", "1000")
	path := testutil.WriteFile(t, "root.bin", testutil.PatternData(64))

	rootCmd.SetArgs([]string{"info", path})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	_, err := captureOutput(t, func() error {
		return rootCmd.Execute()
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window_capacity")
}

func TestVersionCommand(t *testing.T) {
	resetGlobals(t)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	output, err := captureOutput(t, func() error {
		return rootCmd.Execute()
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"hexctl dev", "commit:", "built:"})
}

func TestClampRange(t *testing.T) {
	assert.Equal(t, int64(10), clampRange(0, 10, 100))
	assert.Equal(t, int64(100), clampRange(0, 0, 100))
	assert.Equal(t, int64(5), clampRange(95, 10, 100))
	assert.Equal(t, int64(0), clampRange(100, 10, 100))
}

func TestHumanBytes(t *testing.T) {
	assert.Equal(t, "512 B", humanBytes(512))
	assert.Equal(t, "1.5 KiB", humanBytes(1536))
	assert.Equal(t, "16.0 MiB", humanBytes(16<<20))
	assert.Equal(t, "2.0 GiB", humanBytes(2<<30))
}
