package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/conscroll/internal/logging"
	"github.com/andyrewlee/conscroll/internal/messages"
)

// Update handles all incoming messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeAll()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)

	case messages.SurfaceOutput:
		if s := m.manager.Get(msg.SurfaceID); s != nil {
			s.Feed(msg.Data)
		}
		return m, m.waitForOutput()

	case messages.SurfaceStopped:
		m.stopSurface(msg.SurfaceID)
		m.stopped[msg.SurfaceID] = true
		if s := m.manager.Get(msg.SurfaceID); s != nil {
			m.status = fmt.Sprintf("%s exited", s.Title)
		}
		logging.Debug("surface %s stopped: %v", msg.SurfaceID, msg.Err)
		return m, m.waitForOutput()

	case messages.ConfigReloaded:
		cfg, err := m.cfg.Reload()
		if err != nil {
			m.status = fmt.Sprintf("config reload failed: %v", err)
			logging.WithError(err, "reloading config")
			return m, nil
		}
		m.applyConfig(cfg)
		return m, nil

	case messages.CopiedToClipboard:
		if msg.Err != nil {
			m.status = fmt.Sprintf("copy failed: %v", msg.Err)
		} else {
			m.status = fmt.Sprintf("copied %d lines", msg.Lines)
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.SurfaceNext):
		m.manager.Cycle(1)
		return m, nil

	case key.Matches(msg, m.keys.SurfacePrev):
		m.manager.Cycle(-1)
		return m, nil

	case key.Matches(msg, m.keys.SurfaceNew):
		if err := m.openSurface(); err != nil {
			m.status = fmt.Sprintf("open failed: %v", err)
			logging.WithError(err, "opening surface")
		}
		return m, nil

	case key.Matches(msg, m.keys.SurfaceClose):
		if s := m.manager.Active(); s != nil {
			m.closeSurface(s.ID)
		}
		if m.manager.Active() == nil {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyVisible()
	}

	// Everything else goes to the active surface's PTY.
	s := m.manager.Active()
	if s == nil {
		return m, nil
	}
	term, ok := m.terminals[s.ID]
	if !ok {
		return m, nil
	}
	if b := KeyToBytes(msg); len(b) > 0 {
		if _, err := term.Write(b); err != nil {
			logging.Warn("pty write to %s failed: %v", s.ID, err)
		}
	}
	return m, nil
}

func (m *Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseLeft {
		return m, nil
	}
	for _, s := range m.manager.List() {
		if inZone(m.zone.Get(tabZoneID(s.ID)), msg.X, msg.Y) {
			m.manager.SetActive(s.ID)
			return m, nil
		}
	}
	if inZone(m.zone.Get(tabZoneID("new")), msg.X, msg.Y) {
		if err := m.openSurface(); err != nil {
			m.status = fmt.Sprintf("open failed: %v", err)
			logging.WithError(err, "opening surface")
		}
	}
	return m, nil
}

// inZone reports whether a cell lies inside a scanned zone. The zone
// package's own InBounds only accepts its native mouse message type, so
// hit testing goes through the zone's recorded bounds instead.
func inZone(z *zone.ZoneInfo, x, y int) bool {
	if z.IsZero() {
		return false
	}
	return x >= z.StartX && x <= z.EndX && y >= z.StartY && y <= z.EndY
}

// copyVisible copies the active surface's visible lines to the clipboard.
func (m *Model) copyVisible() tea.Cmd {
	s := m.manager.Active()
	if s == nil {
		return nil
	}
	lines := s.Snapshot()
	text := strings.Join(lines, "\n")
	return func() tea.Msg {
		err := CopyToClipboard(text)
		return messages.CopiedToClipboard{Lines: len(lines), Err: err}
	}
}
