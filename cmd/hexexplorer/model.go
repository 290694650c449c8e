package main

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/hexkit/internal/config"
	"github.com/joshuapare/hexkit/internal/hexfmt"
	"github.com/joshuapare/hexkit/internal/logger"
	"github.com/joshuapare/hexkit/internal/scroll"
	"github.com/joshuapare/hexkit/window"
)

// Rows taken by everything except the pane contents: header, pane borders,
// pane title, and status line.
const chromeHeight = 6

// Model is the main TUI model
type Model struct {
	path   string
	cfg    *config.Config
	opts   window.Options
	reader *window.Reader

	// File state
	size   int64
	layout hexfmt.Layout
	scroll scroll.Scroll
	index  int32

	// Current page. page is empty while readErr is set.
	page    hexfmt.Page
	readErr error

	// UI state
	keys          KeyMap
	width         int
	height        int
	showHelp      bool
	gotoMode      bool
	gotoInput     textinput.Model
	statusMessage string

	// copyToClipboard is swapped out by tests
	copyToClipboard func(string) error
}

// clearStatusMsg clears the transient status message
type clearStatusMsg struct{}

// NewModel creates the model and opens path with the configured reader
func NewModel(path string, cfg *config.Config) Model {
	return newModel(path, cfg, cfg.ReaderOptions(logger.L))
}

func newModel(path string, cfg *config.Config, opts window.Options) Model {
	ti := textinput.New()
	ti.Placeholder = "0x1000 or 4096"
	ti.CharLimit = 24
	ti.Prompt = "Go to offset: "
	ti.PromptStyle = promptStyle

	m := Model{
		path:            path,
		cfg:             cfg,
		opts:            opts,
		reader:          window.New(opts),
		keys:            DefaultKeyMap(),
		gotoInput:       ti,
		copyToClipboard: clipboard.WriteAll,
		// Sensible geometry until the first WindowSizeMsg arrives
		width:  100,
		height: 24,
	}
	m.open()
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Close releases the reader's windows and mapping
func (m Model) Close() error {
	return m.reader.Close()
}

// open (re)opens the file, which also clears a failed reader
func (m *Model) open() {
	size, err := m.reader.Open(m.path)
	if err != nil {
		logger.Error("open failed", "path", m.path, "error", err)
		m.size = 0
		m.fail(err)
		return
	}
	logger.Info("file opened", "path", m.path, "size", size)
	m.size = size
	m.readErr = nil
	m.recompute()
	m.refresh()
}

// visibleLines is the number of rows the panes can show
func (m Model) visibleLines() int {
	return max(m.height-chromeHeight, 1)
}

// recompute derives layout and scroll geometry from the file size and the
// terminal height, keeping the current index in range.
func (m *Model) recompute() {
	m.layout = m.cfg.Layout(m.size)
	m.scroll = scroll.Compute(scroll.Geometry{
		FileLength:   m.size,
		BytesPerLine: m.layout.BytesPerLine,
		VisibleLines: m.visibleLines(),
	})
	m.index = m.scroll.Clamp(int64(m.index))
}

// refresh reads the page at the current index. The reader stats the file on
// every read, so a size change is picked up here.
func (m *Model) refresh() {
	if m.readErr != nil {
		return
	}
	off := m.scroll.Offset(m.index)
	data, err := m.reader.ReadRange(off, m.scroll.ReadLength())
	if err != nil {
		logger.Error("read failed", "offset", off, "error", err)
		m.fail(err)
		return
	}
	if size := m.reader.Size(); size != m.size {
		logger.Info("file size changed", "old", m.size, "new", size)
		m.size = size
		prev := m.index
		m.recompute()
		if m.index != prev {
			m.refresh()
			return
		}
	}
	m.page = m.layout.Format(off, data)
}

// fail switches the panes to the error indicator
func (m *Model) fail(err error) {
	m.readErr = err
	m.page = hexfmt.Page{}
}

// scrollTo moves to index and reads the new page
func (m *Model) scrollTo(index int64) {
	if m.readErr != nil {
		return
	}
	next := m.scroll.Clamp(index)
	if next == m.index && len(m.page.Offsets) > 0 {
		return
	}
	m.index = next
	m.refresh()
}

// offset is the file offset of the first visible byte
func (m Model) offset() int64 {
	return m.scroll.Offset(m.index)
}
