package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

func tabZoneID(id string) string {
	return "tab:" + id
}

// View renders the tab bar, the active surface's scrollback, and the
// status bar.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.BackgroundColor = ColorBackground
	view.ForegroundColor = ColorForeground

	if m.quitting {
		view.SetContent("")
		return view
	}
	if !m.ready {
		view.SetContent("Loading...")
		return view
	}

	sections := []string{
		m.viewTabBar(),
		m.viewContent(),
		m.viewStatusBar(),
	}
	// Scan strips the zone markers and records tab positions for click
	// hit testing.
	view.SetContent(m.zone.Scan(strings.Join(sections, "\n")))
	return view
}

func (m *Model) viewTabBar() string {
	active := m.manager.Active()

	var tabs []string
	for _, s := range m.manager.List() {
		style := m.styles.Tab
		switch {
		case active != nil && s.ID == active.ID:
			style = m.styles.ActiveTab
		case m.stopped[s.ID]:
			style = m.styles.StoppedTab
		}
		label := runewidth.Truncate(s.Title, 20, "…")
		tabs = append(tabs, m.zone.Mark(tabZoneID(s.ID), style.Render(label)))
	}
	tabs = append(tabs, m.zone.Mark(tabZoneID("new"), m.styles.TabPlus.Render("+")))

	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	return padLine(m.styles.TabBar, bar, m.width)
}

func (m *Model) viewContent() string {
	_, rows := m.contentSize()

	var lines []string
	if s := m.manager.Active(); s != nil {
		lines = s.Snapshot()
	}

	out := make([]string, rows)
	for i := 0; i < rows; i++ {
		if i < len(lines) {
			out[i] = runewidth.Truncate(lines[i], m.width, "")
		}
	}
	return strings.Join(out, "\n")
}

func (m *Model) viewStatusBar() string {
	var left string
	if s := m.manager.Active(); s != nil {
		cols, rows := s.Size()
		left = fmt.Sprintf(" %s %dx%d ", s.Title, cols, rows)
	} else {
		left = " no surfaces "
	}

	right := m.status
	if right == "" {
		hints := []string{
			m.helpHint(m.keys.SurfaceNew),
			m.helpHint(m.keys.SurfaceNext),
			m.helpHint(m.keys.Copy),
			m.helpHint(m.keys.Quit),
		}
		right = strings.Join(hints, "  ") + " "
	}

	bar := m.styles.Title.Render(left) + m.styles.StatusMessage.Render(right)
	return padLine(m.styles.Status, bar, m.width)
}

func (m *Model) helpHint(b key.Binding) string {
	h := b.Help()
	return m.styles.StatusKey.Render(h.Key) + m.styles.StatusDesc.Render(" "+h.Desc)
}

// padLine fills s with styled spaces out to width and truncates anything
// longer.
func padLine(style lipgloss.Style, s string, width int) string {
	w := lipgloss.Width(s)
	if w < width {
		s += style.Render(strings.Repeat(" ", width-w))
	}
	return s
}
