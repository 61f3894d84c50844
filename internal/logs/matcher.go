package logs

import (
	"fmt"
	"regexp"
	"strings"

	"catlog/internal/constants"
	"catlog/internal/domain"
)

// Matcher evaluates a filter descriptor against entries. The search term
// is compiled once at construction; evaluation is pure and side-effect
// free.
type Matcher struct {
	filter domain.Filter
	regex  *regexp.Regexp
	search string // pre-folded for case-insensitive literal search
	allow  map[string]struct{}
	deny   map[string]struct{}
}

// NewMatcher compiles a filter descriptor. An invalid or oversized search
// pattern returns ErrInvalidPattern.
func NewMatcher(filter domain.Filter) (*Matcher, error) {
	if len(filter.Search) > constants.MaxPatternLength {
		return nil, fmt.Errorf("%w: pattern exceeds maximum length of %d characters",
			domain.ErrInvalidPattern, constants.MaxPatternLength)
	}

	m := &Matcher{filter: filter}

	if filter.Search != "" {
		if filter.IsRegex {
			pattern := filter.Search
			if !filter.CaseSensitive {
				pattern = "(?i)" + pattern
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPattern, err)
			}
			m.regex = re
		} else if filter.CaseSensitive {
			m.search = filter.Search
		} else {
			m.search = strings.ToLower(filter.Search)
		}
	}

	if len(filter.Tags) > 0 {
		m.allow = make(map[string]struct{}, len(filter.Tags))
		for _, tag := range filter.Tags {
			m.allow[tag] = struct{}{}
		}
	}
	if len(filter.ExcludeTags) > 0 {
		m.deny = make(map[string]struct{}, len(filter.ExcludeTags))
		for _, tag := range filter.ExcludeTags {
			m.deny[tag] = struct{}{}
		}
	}

	return m, nil
}

// Filter returns the descriptor this matcher was built from.
func (m *Matcher) Filter() domain.Filter {
	return m.filter
}

// Matches returns true if the entry satisfies every filter criterion.
func (m *Matcher) Matches(e domain.Entry) bool {
	if e.Level < m.filter.MinLevel || e.Level > m.filter.MaxLevel {
		return false
	}

	if m.allow != nil {
		if _, ok := m.allow[e.Tag]; !ok {
			return false
		}
	}
	// Deny wins even over an explicit allow.
	if m.deny != nil {
		if _, ok := m.deny[e.Tag]; ok {
			return false
		}
	}

	if m.regex != nil {
		if !m.regex.MatchString(e.Message) && !m.regex.MatchString(e.Tag) {
			return false
		}
	} else if m.search != "" {
		msg, tag := e.Message, e.Tag
		if !m.filter.CaseSensitive {
			msg = strings.ToLower(msg)
			tag = strings.ToLower(tag)
		}
		if !strings.Contains(msg, m.search) && !strings.Contains(tag, m.search) {
			return false
		}
	}

	if m.filter.Device != "" && e.Device != m.filter.Device {
		return false
	}

	return true
}

// FilterEntries returns the subset of entries matching the descriptor.
func FilterEntries(entries []domain.Entry, filter domain.Filter) ([]domain.Entry, error) {
	m, err := NewMatcher(filter)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		if m.Matches(e) {
			result = append(result, e)
		}
	}
	return result, nil
}
