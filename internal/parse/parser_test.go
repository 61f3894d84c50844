package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catlog/internal/domain"
)

func TestParse_StructuredLine(t *testing.T) {
	p := NewParser()

	entries := p.Parse([]byte("08-31 14:22:01.123  1234  5678 W ActivityManager: low memory\n"))
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, domain.LevelWarning, e.Level)
	assert.Equal(t, "ActivityManager", e.Tag)
	assert.Equal(t, 1234, e.PID)
	assert.Equal(t, 5678, e.TID)
	assert.Equal(t, "low memory", e.Message)
	assert.Equal(t, 8, int(e.Timestamp.Month()))
	assert.Equal(t, 31, e.Timestamp.Day())
	assert.NotZero(t, e.ID)
	assert.Empty(t, e.Device)
}

func TestParse_ExtendedModeSerial(t *testing.T) {
	p := NewParser()

	entries := p.Parse([]byte("08-31 14:22:01.123 [emulator-5554]  1234  5678 I Zygote: started\n"))
	require.Len(t, entries, 1)
	assert.Equal(t, "emulator-5554", entries[0].Device)
	assert.Equal(t, "Zygote", entries[0].Tag)
}

func TestParse_SplitAcrossChunks(t *testing.T) {
	p := NewParser()

	first := p.Parse([]byte("08-31 14:22:01.123  1  2 D Tag: Hel"))
	assert.Empty(t, first)
	assert.Equal(t, "08-31 14:22:01.123  1  2 D Tag: Hel", p.Pending())

	second := p.Parse([]byte("lo\n"))
	require.Len(t, second, 1)
	assert.Equal(t, "Hello", second[0].Message)
	assert.Equal(t, "Tag", second[0].Tag)
	assert.Empty(t, p.Pending())
}

func TestParse_ChunkEndingOnTerminator(t *testing.T) {
	p := NewParser()

	entries := p.Parse([]byte("08-31 14:22:01.123  1  2 D A: one\n08-31 14:22:01.124  1  2 D B: two\n"))
	require.Len(t, entries, 2)
	assert.Equal(t, "one", entries[0].Message)
	assert.Equal(t, "two", entries[1].Message)
	assert.Empty(t, p.Pending())
}

func TestParse_OrderPreserved(t *testing.T) {
	p := NewParser()

	entries := p.Parse([]byte("08-31 14:22:01.123  1  2 D T: a\n08-31 14:22:01.124  1  2 D T: b\n08-31 14:22:01.125  1  2 D T: c\n"))
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].Message)
	assert.Equal(t, "b", entries[1].Message)
	assert.Equal(t, "c", entries[2].Message)
	assert.Less(t, entries[0].ID, entries[1].ID)
	assert.Less(t, entries[1].ID, entries[2].ID)
}

func TestParse_EmptyChunk(t *testing.T) {
	p := NewParser()
	assert.Empty(t, p.Parse(nil))
	assert.Empty(t, p.Parse([]byte{}))
}

func TestParse_MarkerLine(t *testing.T) {
	p := NewParser()

	entries := p.Parse([]byte("--------- beginning of main\n"))
	require.Len(t, entries, 1)
	assert.Equal(t, MarkerTag, entries[0].Tag)
	assert.Equal(t, "--------- beginning of main", entries[0].Message)
}

func TestParse_FallbackMalformed(t *testing.T) {
	p := NewParser()

	entries := p.Parse([]byte("this is not a logcat line\n"))
	require.Len(t, entries, 1)
	assert.Equal(t, FallbackTag, entries[0].Tag)
	assert.Equal(t, "this is not a logcat line", entries[0].Message)
	assert.Equal(t, "this is not a logcat line", entries[0].Raw)
}

func TestParse_FallbackInvalidDate(t *testing.T) {
	p := NewParser()

	// Shape matches but month 13 cannot parse; the whole line survives
	// and the level is carried over best-effort.
	line := "13-45 14:22:01.123  1234  5678 E Tag: boom"
	entries := p.Parse([]byte(line + "\n"))
	require.Len(t, entries, 1)
	assert.Equal(t, FallbackTag, entries[0].Tag)
	assert.Equal(t, line, entries[0].Message)
	assert.Equal(t, domain.LevelError, entries[0].Level)
}

func TestParse_CarriageReturn(t *testing.T) {
	p := NewParser()

	entries := p.Parse([]byte("08-31 14:22:01.123  1  2 I T: windows line\r\n"))
	require.Len(t, entries, 1)
	assert.Equal(t, "windows line", entries[0].Message)
}

func TestParse_JSONDetection(t *testing.T) {
	p := NewParser()

	entries := p.Parse([]byte("08-31 14:22:01.123  1  2 I Net: Response: {\"ok\":true}\n08-31 14:22:01.124  1  2 I Net: plain\n"))
	require.Len(t, entries, 2)
	assert.True(t, entries[0].IsJSON)
	assert.False(t, entries[1].IsJSON)
}

func TestParse_BlankLinesSkipped(t *testing.T) {
	p := NewParser()

	entries := p.Parse([]byte("\n\n08-31 14:22:01.123  1  2 I T: hi\n\n"))
	require.Len(t, entries, 1)
	assert.Equal(t, "hi", entries[0].Message)
}

func TestParse_Reset(t *testing.T) {
	p := NewParser()

	p.Parse([]byte("partial line without terminator"))
	require.NotEmpty(t, p.Pending())

	p.Reset()
	assert.Empty(t, p.Pending())

	entries := p.Parse([]byte("08-31 14:22:01.123  1  2 I T: fresh\n"))
	require.Len(t, entries, 1)
	assert.Equal(t, "fresh", entries[0].Message)
}
