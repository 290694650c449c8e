package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/joshuapare/hexkit/internal/config"
	"github.com/joshuapare/hexkit/internal/mmfile"
)

// resetGlobals restores global flags and installs a config with small windows
func resetGlobals(t *testing.T) {
	t.Helper()
	verbose = false
	quiet = false
	jsonOut = false
	cfgFile = ""
	cfg = &config.Config{
		WindowCapacity: mmfile.Granularity,
		BytesPerLine:   8,
		Encoding:       "ascii",
	}
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Drain concurrently so large outputs don't fill the pipe
	var buf bytes.Buffer
	done := make(chan error, 1)
	go func() {
		_, err := buf.ReadFrom(r)
		done <- err
	}()

	// Redirect stdout to pipe
	os.Stdout = w

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout

	if err := <-done; err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	r.Close()

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON and decodes it into v if non-nil
func assertJSON(t *testing.T, output string, v any) {
	t.Helper()
	if v == nil {
		var result any
		v = &result
	}
	if err := json.Unmarshal([]byte(output), v); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
