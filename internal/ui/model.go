package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/conscroll/internal/config"
	"github.com/andyrewlee/conscroll/internal/console"
	"github.com/andyrewlee/conscroll/internal/keymap"
	"github.com/andyrewlee/conscroll/internal/logging"
	"github.com/andyrewlee/conscroll/internal/pty"
	"github.com/andyrewlee/conscroll/internal/safego"
)

// terminal is the slice of pty.Terminal the model needs. Tests swap
// newTerminalFn to avoid spawning real processes.
type terminal interface {
	io.ReadWriter
	SetSize(rows, cols uint16) error
	Close() error
	Running() bool
}

var newTerminalFn = func(command, dir string, env []string) (terminal, error) {
	return pty.New(command, dir, env)
}

const (
	tabBarHeight    = 1
	statusBarHeight = 1
)

// Model is the top-level bubbletea model. It owns the surface manager,
// one PTY per surface, and the shared output channel the read loops
// deliver into.
type Model struct {
	cfg    *config.Config
	styles Styles
	keys   keymap.KeyMap
	zone   *zone.Manager

	manager   *console.Manager
	terminals map[string]terminal
	cancels   map[string]chan struct{}
	stopped   map[string]bool

	msgCh     chan tea.Msg
	readerCfg ReaderConfig

	width  int
	height int
	ready  bool

	status   string
	quitting bool
}

// New creates the model. Surfaces start at the configured shape and are
// resized to the window once the first WindowSizeMsg arrives.
func New(cfg *config.Config) *Model {
	return &Model{
		cfg:       cfg,
		styles:    DefaultStyles(),
		keys:      keymap.New(cfg.KeyMap),
		zone:      zone.New(),
		manager:   console.NewManager(cfg.Columns, cfg.Rows),
		terminals: make(map[string]terminal),
		cancels:   make(map[string]chan struct{}),
		stopped:   make(map[string]bool),
		msgCh:     make(chan tea.Msg, 256),
		readerCfg: DefaultReaderConfig(),
	}
}

// Init opens the first surface and starts waiting for PTY output.
func (m *Model) Init() tea.Cmd {
	if err := m.openSurface(); err != nil {
		m.status = fmt.Sprintf("error: %v", err)
		logging.WithError(err, "opening initial surface")
	}
	return m.waitForOutput()
}

// Shutdown tears down every surface and its PTY. Called after the
// program loop exits.
func (m *Model) Shutdown() {
	for id := range m.terminals {
		m.stopSurface(id)
	}
	m.manager.CloseAll()
}

// waitForOutput relays one message from the shared PTY channel into the
// program loop. Update re-issues it after every relayed message.
func (m *Model) waitForOutput() tea.Cmd {
	return func() tea.Msg {
		return <-m.msgCh
	}
}

// openSurface creates a surface, spawns its command on a PTY, and starts
// the read loop.
func (m *Model) openSurface() error {
	title := commandTitle(m.cfg.Command)
	s, err := m.manager.Open(title)
	if err != nil {
		return err
	}

	if m.ready {
		cols, rows := m.contentSize()
		if err := s.Resize(cols, rows); err != nil {
			m.manager.Close(s.ID)
			return err
		}
	}

	term, err := newTerminalFn(m.cfg.Command, "", nil)
	if err != nil {
		m.manager.Close(s.ID)
		return err
	}
	cols, rows := s.Size()
	if err := term.SetSize(uint16(rows), uint16(cols)); err != nil {
		logging.Warn("initial resize of %s failed: %v", s.ID, err)
	}

	cancel := make(chan struct{})
	m.terminals[s.ID] = term
	m.cancels[s.ID] = cancel
	m.manager.SetActive(s.ID)

	id := s.ID
	safego.Go("pty-pump-"+id, func() {
		RunReader(id, term, m.msgCh, cancel, m.readerCfg)
	})
	return nil
}

// closeSurface tears down one surface and its PTY.
func (m *Model) closeSurface(id string) {
	m.stopSurface(id)
	m.manager.Close(id)
	delete(m.stopped, id)
}

// stopSurface kills the PTY and read loop but leaves the surface (and
// its scrollback) in place.
func (m *Model) stopSurface(id string) {
	if cancel, ok := m.cancels[id]; ok {
		close(cancel)
		delete(m.cancels, id)
	}
	if term, ok := m.terminals[id]; ok {
		term.Close()
		delete(m.terminals, id)
	}
}

// contentSize returns the shape available to surfaces under the current
// window, never below 1x1 once a window size is known.
func (m *Model) contentSize() (cols, rows int) {
	cols = m.width
	rows = m.height - tabBarHeight - statusBarHeight
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// resizeAll propagates the current window shape to every surface and PTY.
func (m *Model) resizeAll() {
	cols, rows := m.contentSize()
	for _, s := range m.manager.List() {
		if err := s.Resize(cols, rows); err != nil {
			m.status = fmt.Sprintf("resize failed: %v", err)
			logging.WithError(err, "resizing "+s.ID)
			continue
		}
		if term, ok := m.terminals[s.ID]; ok {
			if err := term.SetSize(uint16(rows), uint16(cols)); err != nil {
				logging.Warn("pty resize of %s failed: %v", s.ID, err)
			}
		}
	}
}

// applyConfig swaps in a freshly loaded config. Existing surfaces keep
// their shape; the keymap and log level take effect immediately.
func (m *Model) applyConfig(cfg *config.Config) {
	m.cfg = cfg
	m.keys = keymap.New(cfg.KeyMap)
	logging.SetLevel(logging.ParseLevel(cfg.LogLevel))
	m.status = "config reloaded"
}

func commandTitle(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "shell"
	}
	return filepath.Base(fields[0])
}
