package cli

import (
	"fmt"
	"io"

	"catlog/internal/constants"
	"catlog/internal/domain"
)

// EntryPrinter handles consistent log line formatting with level colors
type EntryPrinter struct {
	w     io.Writer
	color bool
}

// NewEntryPrinter creates a printer writing to w
func NewEntryPrinter(w io.Writer, color bool) *EntryPrinter {
	return &EntryPrinter{w: w, color: color}
}

// PrintEntry prints one entry in logcat-like brief form
func (p *EntryPrinter) PrintEntry(e domain.Entry) {
	ts := e.Timestamp.Format("15:04:05.000")
	if !p.color {
		fmt.Fprintf(p.w, "%s %c/%s(%d): %s\n", ts, e.Level.Char(), e.Tag, e.PID, e.Message)
		return
	}
	color := levelColor(e.Level)
	fmt.Fprintf(p.w, "%s %s%c/%s(%d)%s: %s\n",
		ts, color, e.Level.Char(), e.Tag, e.PID, constants.ColorReset, e.Message)
}

func levelColor(l domain.Level) string {
	if int(l) < 0 || int(l) >= len(constants.LevelColors) {
		return constants.ColorReset
	}
	return constants.LevelColors[l]
}
