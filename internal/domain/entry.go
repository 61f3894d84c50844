package domain

import (
	"sync/atomic"
	"time"
)

// Level is a logcat severity. Levels are totally ordered; LevelSilent is
// the ceiling used by filters to mean "nothing above this".
type Level int

const (
	LevelVerbose Level = iota
	LevelDebug
	LevelInfo
	LevelWarning
	LevelError
	LevelFatal
	LevelSilent
)

var levelChars = [...]byte{'V', 'D', 'I', 'W', 'E', 'F', 'S'}

var levelNames = [...]string{
	"verbose", "debug", "info", "warning", "error", "fatal", "silent",
}

// ParseLevel maps a one-character logcat level code to a Level.
func ParseLevel(c byte) (Level, bool) {
	for i, lc := range levelChars {
		if c == lc || c == lc+('a'-'A') {
			return Level(i), true
		}
	}
	return LevelVerbose, false
}

// ParseLevelName maps a full level name ("warning") or a one-character
// code to a Level.
func ParseLevelName(s string) (Level, bool) {
	if len(s) == 1 {
		return ParseLevel(s[0])
	}
	for i, name := range levelNames {
		if s == name {
			return Level(i), true
		}
	}
	return LevelVerbose, false
}

// Char returns the one-character logcat code for the level.
func (l Level) Char() byte {
	if l < LevelVerbose || l > LevelSilent {
		return '?'
	}
	return levelChars[l]
}

// String returns the full lowercase name of the level.
func (l Level) String() string {
	if l < LevelVerbose || l > LevelSilent {
		return "unknown"
	}
	return levelNames[l]
}

// Entry is one structured log record. Entries are immutable once created;
// ID is unique for the lifetime of the process.
type Entry struct {
	ID        uint64    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Tag       string    `json:"tag"`
	PID       int       `json:"pid"`
	TID       int       `json:"tid"`
	Device    string    `json:"device,omitempty"`
	Message   string    `json:"message"`
	Raw       string    `json:"raw"`
	IsJSON    bool      `json:"is_json"`
}

var entryIDCounter uint64

// NextEntryID returns a fresh unique entry ID.
func NextEntryID() uint64 {
	return atomic.AddUint64(&entryIDCounter, 1)
}

// Stats is a snapshot of the log store counters exposed to consumers.
type Stats struct {
	Total    int  // entries currently stored
	Filtered int  // entries matching the current filter
	Capacity int  // store capacity
	Paused   bool // whether ingestion into the views is paused
	Pending  int  // records queued while paused
	Dropped  int  // records dropped while paused over the pending cap
}
