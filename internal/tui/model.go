package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"catlog/internal/domain"
	"catlog/internal/logs"
	"catlog/internal/stream"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeJSON
	ModeHelp
)

// Model is the bubbletea model for the TUI
type Model struct {
	store  *logs.Store
	source *stream.Source

	viewport viewport.Model
	search   textinput.Model

	entries  []domain.Entry
	stats    domain.Stats
	state    domain.ConnState
	lastErr  string
	mode     Mode
	follow   bool
	jsonText string

	minLevel domain.Level

	width  int
	height int
	ready  bool
}

// NewModel creates a new TUI model
func NewModel(store *logs.Store, source *stream.Source) Model {
	search := textinput.New()
	search.Placeholder = "search (prefix with / for regex)"
	search.CharLimit = 200

	return Model{
		store:    store,
		source:   source,
		search:   search,
		follow:   true,
		minLevel: store.Filter().MinLevel,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// StoreEventMsg is sent when the store broadcasts an event
type StoreEventMsg logs.Event

// TickMsg is sent periodically to refresh connection state and counters
type TickMsg time.Time

// tickCmd returns a command that ticks periodically
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
