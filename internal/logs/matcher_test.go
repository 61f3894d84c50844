package logs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catlog/internal/domain"
)

func matcherEntry(level domain.Level, tag, msg string) domain.Entry {
	return domain.Entry{
		ID:      domain.NextEntryID(),
		Level:   level,
		Tag:     tag,
		Message: msg,
	}
}

func mustMatcher(t *testing.T, f domain.Filter) *Matcher {
	t.Helper()
	m, err := NewMatcher(f)
	require.NoError(t, err)
	return m
}

func TestMatcher_LevelRange(t *testing.T) {
	m := mustMatcher(t, domain.Filter{MinLevel: domain.LevelInfo, MaxLevel: domain.LevelError})

	assert.False(t, m.Matches(matcherEntry(domain.LevelVerbose, "T", "m")))
	assert.False(t, m.Matches(matcherEntry(domain.LevelDebug, "T", "m")))
	assert.True(t, m.Matches(matcherEntry(domain.LevelInfo, "T", "m")))
	assert.True(t, m.Matches(matcherEntry(domain.LevelWarning, "T", "m")))
	assert.True(t, m.Matches(matcherEntry(domain.LevelError, "T", "m")))
	assert.False(t, m.Matches(matcherEntry(domain.LevelFatal, "T", "m")))
}

func TestMatcher_EmptyAllowSetIsUnrestricted(t *testing.T) {
	m := mustMatcher(t, domain.DefaultFilter())
	assert.True(t, m.Matches(matcherEntry(domain.LevelDebug, "Anything", "m")))
}

func TestMatcher_AllowSet(t *testing.T) {
	f := domain.DefaultFilter()
	f.Tags = []string{"ActivityManager", "Zygote"}
	m := mustMatcher(t, f)

	assert.True(t, m.Matches(matcherEntry(domain.LevelInfo, "ActivityManager", "m")))
	assert.True(t, m.Matches(matcherEntry(domain.LevelInfo, "Zygote", "m")))
	assert.False(t, m.Matches(matcherEntry(domain.LevelInfo, "chatty", "m")))
}

func TestMatcher_DenyWinsOverAllow(t *testing.T) {
	f := domain.DefaultFilter()
	f.Tags = []string{"ActivityManager"}
	f.ExcludeTags = []string{"ActivityManager"}
	m := mustMatcher(t, f)

	assert.False(t, m.Matches(matcherEntry(domain.LevelInfo, "ActivityManager", "m")))
}

func TestMatcher_DenySet(t *testing.T) {
	f := domain.DefaultFilter()
	f.ExcludeTags = []string{"chatty"}
	m := mustMatcher(t, f)

	assert.False(t, m.Matches(matcherEntry(domain.LevelInfo, "chatty", "m")))
	assert.True(t, m.Matches(matcherEntry(domain.LevelInfo, "other", "m")))
}

func TestMatcher_SearchLiteral(t *testing.T) {
	f := domain.DefaultFilter()
	f.Search = "Crash"
	m := mustMatcher(t, f)

	// Case-insensitive by default, matches message or tag.
	assert.True(t, m.Matches(matcherEntry(domain.LevelInfo, "T", "app crash detected")))
	assert.True(t, m.Matches(matcherEntry(domain.LevelInfo, "CrashReporter", "m")))
	assert.False(t, m.Matches(matcherEntry(domain.LevelInfo, "T", "all fine")))
}

func TestMatcher_SearchCaseSensitive(t *testing.T) {
	f := domain.DefaultFilter()
	f.Search = "Crash"
	f.CaseSensitive = true
	m := mustMatcher(t, f)

	assert.False(t, m.Matches(matcherEntry(domain.LevelInfo, "T", "app crash detected")))
	assert.True(t, m.Matches(matcherEntry(domain.LevelInfo, "T", "app Crash detected")))
}

func TestMatcher_SearchRegex(t *testing.T) {
	f := domain.DefaultFilter()
	f.Search = `fail(ed|ure)`
	f.IsRegex = true
	m := mustMatcher(t, f)

	assert.True(t, m.Matches(matcherEntry(domain.LevelInfo, "T", "request failed")))
	assert.True(t, m.Matches(matcherEntry(domain.LevelInfo, "T", "total failure")))
	assert.False(t, m.Matches(matcherEntry(domain.LevelInfo, "T", "fails")))
}

func TestMatcher_SearchRegexCaseInsensitive(t *testing.T) {
	f := domain.DefaultFilter()
	f.Search = `error`
	f.IsRegex = true
	m := mustMatcher(t, f)

	assert.True(t, m.Matches(matcherEntry(domain.LevelInfo, "T", "ERROR: nope")))
}

func TestMatcher_DeviceRestriction(t *testing.T) {
	f := domain.DefaultFilter()
	f.Device = "emulator-5554"
	m := mustMatcher(t, f)

	e := matcherEntry(domain.LevelInfo, "T", "m")
	e.Device = "emulator-5554"
	assert.True(t, m.Matches(e))

	e.Device = "emulator-5556"
	assert.False(t, m.Matches(e))

	e.Device = ""
	assert.False(t, m.Matches(e))
}

func TestNewMatcher_InvalidRegex(t *testing.T) {
	f := domain.DefaultFilter()
	f.Search = `[unclosed`
	f.IsRegex = true

	_, err := NewMatcher(f)
	assert.ErrorIs(t, err, domain.ErrInvalidPattern)
}

func TestNewMatcher_PatternTooLong(t *testing.T) {
	f := domain.DefaultFilter()
	f.Search = strings.Repeat("a", 300)

	_, err := NewMatcher(f)
	assert.ErrorIs(t, err, domain.ErrInvalidPattern)
}

func TestFilterEntries(t *testing.T) {
	entries := []domain.Entry{
		matcherEntry(domain.LevelDebug, "A", "one"),
		matcherEntry(domain.LevelError, "B", "two"),
		matcherEntry(domain.LevelInfo, "A", "three"),
	}

	f := domain.DefaultFilter()
	f.Tags = []string{"A"}
	got, err := FilterEntries(entries, f)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0].Message)
	assert.Equal(t, "three", got[1].Message)
}
