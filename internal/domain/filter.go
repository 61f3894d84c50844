package domain

// Filter defines criteria for selecting log entries. A Filter value is an
// immutable snapshot: the store swaps the whole descriptor on change and
// never mutates one that evaluation may be reading.
type Filter struct {
	MinLevel      Level    // inclusive lower severity bound
	MaxLevel      Level    // inclusive upper severity bound
	Tags          []string // allow-set; empty means unrestricted
	ExcludeTags   []string // deny-set; checked after the allow-set, always wins
	Search        string   // search term matched against message or tag
	CaseSensitive bool     // case-sensitive search when true
	IsRegex       bool     // Search is a regex; otherwise substring match
	Device        string   // restrict to a single origin serial; empty means any
}

// DefaultFilter returns a filter that matches every entry.
func DefaultFilter() Filter {
	return Filter{MinLevel: LevelVerbose, MaxLevel: LevelSilent}
}

// IsEmpty returns true if the filter imposes no restrictions.
func (f Filter) IsEmpty() bool {
	return f.MinLevel <= LevelVerbose && f.MaxLevel >= LevelSilent &&
		len(f.Tags) == 0 && len(f.ExcludeTags) == 0 &&
		f.Search == "" && f.Device == ""
}
