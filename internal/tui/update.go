package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"catlog/internal/domain"
	"catlog/internal/jsonfrag"
)

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		bodyHeight := msg.Height - chromeHeight
		if bodyHeight < 1 {
			bodyHeight = 1
		}
		if !m.ready {
			m.viewport = newLogViewport(msg.Width, bodyHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = bodyHeight
		}
		m.refresh()
		return m, nil

	case StoreEventMsg:
		m.refresh()
		return m, nil

	case TickMsg:
		m.stats = m.store.Stats()
		m.state = m.source.State()
		m.lastErr = m.source.LastError()
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeJSON, ModeHelp:
		// Any key dismisses an overlay.
		m.mode = ModeNormal
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case " ":
		if m.store.Paused() {
			m.store.Resume()
		} else {
			m.store.Pause()
		}
		m.refresh()

	case "c":
		m.store.Clear()
		m.refresh()

	case "/":
		m.mode = ModeSearch
		m.search.SetValue("")
		m.search.Focus()
		return m, textinput.Blink

	case "f":
		m.cycleMinLevel()

	case "p":
		m.showJSON()

	case "?":
		m.mode = ModeHelp

	case "end", "G":
		m.follow = true
		m.viewport.GotoBottom()

	case "up", "k", "down", "j", "pgup", "pgdown", "home", "g":
		m.follow = false
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = ModeNormal
		m.search.Blur()
		m.applySearch(m.search.Value())
		return m, nil
	case "esc":
		m.mode = ModeNormal
		m.search.Blur()
		m.applySearch("")
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// applySearch updates the store filter's search term. A leading slash
// switches to regex matching.
func (m *Model) applySearch(term string) {
	filter := m.store.Filter()
	if regex, ok := strings.CutPrefix(term, "/"); ok {
		filter.Search = regex
		filter.IsRegex = true
	} else {
		filter.Search = term
		filter.IsRegex = false
	}
	if err := m.store.SetFilter(filter); err != nil {
		m.lastErr = err.Error()
		return
	}
	m.refresh()
}

// cycleMinLevel steps the filter's minimum severity through the enum.
func (m *Model) cycleMinLevel() {
	next := m.minLevel + 1
	if next > domain.LevelFatal {
		next = domain.LevelVerbose
	}
	filter := m.store.Filter()
	filter.MinLevel = next
	if err := m.store.SetFilter(filter); err != nil {
		m.lastErr = err.Error()
		return
	}
	m.minLevel = next
	m.refresh()
}

// showJSON pretty-prints the most recent entry that carries a JSON
// fragment.
func (m *Model) showJSON() {
	for i := len(m.entries) - 1; i >= 0; i-- {
		if !m.entries[i].IsJSON {
			continue
		}
		frag, ok := jsonfrag.Extract(m.entries[i].Message)
		if !ok {
			continue
		}
		if pretty, ok := jsonfrag.Pretty(frag); ok {
			m.jsonText = pretty
			m.mode = ModeJSON
			return
		}
	}
}

// refresh re-snapshots the filtered view into the viewport.
func (m *Model) refresh() {
	m.entries = m.store.Filtered()
	m.stats = m.store.Stats()
	m.state = m.source.State()
	m.lastErr = m.source.LastError()

	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderEntries())
	if m.follow {
		m.viewport.GotoBottom()
	}
}
