package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"catlog/internal/logs"
	"catlog/internal/stream"
)

// Run starts the TUI application
func Run(store *logs.Store, source *stream.Source) error {
	model := NewModel(store, source)
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())

	// Subscribe to the store before starting the forwarder
	subID, ch := store.Subscribe()
	go forwardEvents(ctx, p, ch)

	_, runErr := p.Run()

	// Cleanup: cancel context and unsubscribe
	cancel()
	store.Unsubscribe(subID)

	return runErr
}

// forwardEvents forwards store events to the TUI program. It exits when the
// context is cancelled or the channel is closed.
func forwardEvents(ctx context.Context, p *tea.Program, ch <-chan logs.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			p.Send(StoreEventMsg(ev))
		}
	}
}
