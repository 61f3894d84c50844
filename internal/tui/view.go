package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"catlog/internal/domain"
)

// chromeHeight is the number of rows taken by the header, status bar, and
// hint line around the log viewport.
const chromeHeight = 3

func newLogViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.MouseWheelEnabled = true
	return vp
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}

	var body string
	switch m.mode {
	case ModeJSON:
		body = m.renderOverlay(m.jsonText)
	case ModeHelp:
		body = m.renderOverlay(helpText)
	default:
		body = m.viewport.View()
	}

	return strings.Join([]string{
		m.renderHeader(),
		body,
		m.renderStatus(),
		m.renderFooter(),
	}, "\n")
}

func (m Model) renderHeader() string {
	device := m.source.Device()
	if device == "" {
		device = "no device"
	}

	var state string
	switch m.state {
	case domain.ConnStreaming:
		state = streamingStyle.Render(m.state.String())
	case domain.ConnDisconnected:
		state = disconnectedStyle.Render(m.state.String())
	case domain.ConnStarting:
		state = startingStyle.Render(m.state.String())
	default:
		state = idleStyle.Render(m.state.String())
	}

	title := fmt.Sprintf("catlog  %s  %s", device, state)
	return headerStyle.Width(m.width).Render(title)
}

func (m Model) renderStatus() string {
	parts := []string{
		fmt.Sprintf("%d/%d entries", m.stats.Filtered, m.stats.Total),
		fmt.Sprintf("level≥%s", m.minLevel),
	}

	if filter := m.store.Filter(); filter.Search != "" {
		mode := "text"
		if filter.IsRegex {
			mode = "regex"
		}
		parts = append(parts, fmt.Sprintf("search[%s]=%q", mode, filter.Search))
	}

	if m.stats.Paused {
		parts = append(parts, pausedStyle.Render(
			fmt.Sprintf(" PAUSED +%d pending, %d dropped ", m.stats.Pending, m.stats.Dropped)))
	}

	if m.lastErr != "" {
		parts = append(parts, errorStyle.Render(" "+m.lastErr+" "))
	}

	return statusStyle.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderFooter() string {
	if m.mode == ModeSearch {
		return m.search.View()
	}
	return dimStyle.Render("space pause  / search  f level  p json  c clear  ? help  q quit")
}

func (m Model) renderOverlay(text string) string {
	overlay := overlayStyle.Render(text)
	return lipgloss.Place(m.width, m.viewport.Height, lipgloss.Center, lipgloss.Center, overlay)
}

// renderEntries formats the filtered view for the viewport.
func (m Model) renderEntries() string {
	if len(m.entries) == 0 {
		return dimStyle.Render("no entries")
	}

	var b strings.Builder
	for _, e := range m.entries {
		b.WriteString(m.renderEntry(e))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) renderEntry(e domain.Entry) string {
	style := levelStyles[0]
	if int(e.Level) < len(levelStyles) {
		style = levelStyles[e.Level]
	}

	ts := dimStyle.Render(e.Timestamp.Format("15:04:05.000"))
	head := style.Render(fmt.Sprintf("%c/%s(%d)", e.Level.Char(), e.Tag, e.PID))

	line := fmt.Sprintf("%s %s: %s", ts, head, e.Message)
	if e.IsJSON {
		line += dimStyle.Render(" {json}")
	}
	return line
}

const helpText = `catlog keys

  space      pause / resume the stream
  /          search (prefix the term with / for regex, esc clears)
  f          cycle the minimum severity
  p          pretty-print the latest JSON payload
  c          clear the buffer
  ↑/↓ j/k    scroll (end or G resumes following)
  q          quit

any key closes this help`
