package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		c    byte
		want Level
		ok   bool
	}{
		{"verbose", 'V', LevelVerbose, true},
		{"debug", 'D', LevelDebug, true},
		{"info", 'I', LevelInfo, true},
		{"warning", 'W', LevelWarning, true},
		{"error", 'E', LevelError, true},
		{"fatal", 'F', LevelFatal, true},
		{"silent", 'S', LevelSilent, true},
		{"lowercase", 'w', LevelWarning, true},
		{"unknown", 'X', LevelVerbose, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLevel(tt.c)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseLevelName(t *testing.T) {
	l, ok := ParseLevelName("warning")
	assert.True(t, ok)
	assert.Equal(t, LevelWarning, l)

	l, ok = ParseLevelName("E")
	assert.True(t, ok)
	assert.Equal(t, LevelError, l)

	_, ok = ParseLevelName("loud")
	assert.False(t, ok)
}

func TestLevelOrdering(t *testing.T) {
	assert.True(t, LevelVerbose < LevelDebug)
	assert.True(t, LevelDebug < LevelInfo)
	assert.True(t, LevelInfo < LevelWarning)
	assert.True(t, LevelWarning < LevelError)
	assert.True(t, LevelError < LevelFatal)
	assert.True(t, LevelFatal < LevelSilent)
}

func TestLevelStringAndChar(t *testing.T) {
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, byte('W'), LevelWarning.Char())
	assert.Equal(t, "unknown", Level(42).String())
	assert.Equal(t, byte('?'), Level(42).Char())
}

func TestNextEntryID_Unique(t *testing.T) {
	seen := make(map[uint64]bool)
	for i := 0; i < 1000; i++ {
		id := NextEntryID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}
