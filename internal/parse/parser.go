// Package parse converts raw logcat byte chunks into structured entries.
// Chunks arrive on arbitrary boundaries, so the parser carries the
// unterminated trailing fragment of one call into the next.
package parse

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"time"

	"catlog/internal/domain"
	"catlog/internal/jsonfrag"
)

const (
	// FallbackTag marks entries synthesized from lines that failed the
	// threadtime grammar
	FallbackTag = "unparsed"

	// MarkerTag marks logcat session-boundary marker lines
	MarkerTag = "logcat"

	// markerPrefix is the reserved prefix logcat uses for buffer markers,
	// e.g. "--------- beginning of main"
	markerPrefix = "--------- "

	timestampLayout = "01-02 15:04:05.000"
)

// threadtimeRe matches `MM-DD HH:MM:SS.mmm [SERIAL] PID TID L Tag: msg`.
// The bracketed serial is only present in extended multi-device mode.
var threadtimeRe = regexp.MustCompile(
	`^(\d{2}-\d{2}) (\d{2}:\d{2}:\d{2}\.\d{3})\s+(?:\[([^\]\s]+)\]\s+)?(\d+)\s+(\d+)\s+([A-Za-z])\s+(.*?)\s*:\s?(.*)$`)

// Parser is a streaming line parser. It is not safe for concurrent use;
// one session must feed it sequentially or partial-line reconstruction
// breaks.
type Parser struct {
	remainder []byte
	now       func() time.Time
}

// NewParser creates a parser with an empty remainder.
func NewParser() *Parser {
	return &Parser{now: time.Now}
}

// Parse splits a chunk into complete lines and returns one entry per
// line. An unterminated final line is held back and prepended to the next
// chunk. Malformed lines degrade to fallback entries; Parse never fails.
func (p *Parser) Parse(chunk []byte) []domain.Entry {
	if len(chunk) == 0 {
		return nil
	}

	data := chunk
	if len(p.remainder) > 0 {
		data = append(p.remainder, chunk...)
		p.remainder = nil
	}

	var entries []domain.Entry
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimSuffix(string(data[:i]), "\r")
		data = data[i+1:]
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, p.parseLine(line))
	}

	if len(data) > 0 {
		p.remainder = append([]byte(nil), data...)
	}

	return entries
}

// Pending returns the unterminated fragment carried over from the last
// chunk, if any.
func (p *Parser) Pending() string {
	return string(p.remainder)
}

// Reset discards any carried-over fragment. Called between sessions.
func (p *Parser) Reset() {
	p.remainder = nil
}

func (p *Parser) parseLine(line string) domain.Entry {
	if strings.HasPrefix(line, markerPrefix) {
		return domain.Entry{
			ID:        domain.NextEntryID(),
			Timestamp: p.now(),
			Level:     domain.LevelInfo,
			Tag:       MarkerTag,
			Message:   line,
			Raw:       line,
		}
	}

	m := threadtimeRe.FindStringSubmatch(line)
	if m == nil {
		return p.fallback(line, domain.LevelVerbose)
	}

	level, ok := domain.ParseLevel(m[6][0])
	if !ok {
		level = domain.LevelVerbose
	}

	ts, err := time.ParseInLocation(timestampLayout, m[1]+" "+m[2], time.Local)
	if err != nil {
		// Right shape, bad date: keep the whole line, best-effort level.
		return p.fallback(line, level)
	}
	ts = ts.AddDate(p.now().Year(), 0, 0)

	pid, _ := strconv.Atoi(m[4])
	tid, _ := strconv.Atoi(m[5])
	msg := m[8]

	return domain.Entry{
		ID:        domain.NextEntryID(),
		Timestamp: ts,
		Level:     level,
		Tag:       m[7],
		PID:       pid,
		TID:       tid,
		Device:    m[3],
		Message:   msg,
		Raw:       line,
		IsJSON:    jsonfrag.Contains(msg),
	}
}

func (p *Parser) fallback(line string, level domain.Level) domain.Entry {
	return domain.Entry{
		ID:        domain.NextEntryID(),
		Timestamp: p.now(),
		Level:     level,
		Tag:       FallbackTag,
		Message:   line,
		Raw:       line,
		IsJSON:    jsonfrag.Contains(line),
	}
}
