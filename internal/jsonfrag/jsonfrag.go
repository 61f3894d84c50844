// Package jsonfrag locates and pretty-prints a JSON object or array
// embedded in free-form log text.
package jsonfrag

import (
	"bytes"
	"encoding/json"
)

// Contains reports whether text holds a valid embedded JSON object or array.
func Contains(text string) bool {
	_, ok := Extract(text)
	return ok
}

// Extract returns the first embedded fragment that both balances and
// parses as valid JSON. The scan starts at each `{` or `[` in order of
// appearance; an opener whose run never balances or fails validation is
// skipped, never an error.
func Extract(text string) (string, bool) {
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '{' && c != '[' {
			continue
		}
		end, ok := scanBalanced(text, i)
		if !ok {
			continue
		}
		frag := text[i:end]
		if json.Valid([]byte(frag)) {
			return frag, true
		}
	}
	return "", false
}

// Pretty re-serializes a JSON fragment with indentation and deterministic
// key ordering. Invalid input yields no result.
func Pretty(fragment string) (string, bool) {
	var v interface{}
	if err := json.Unmarshal([]byte(fragment), &v); err != nil {
		return "", false
	}
	// encoding/json sorts map keys on marshal, which gives the
	// deterministic ordering.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", false
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), true
}

// scanBalanced walks text from the opener at start, tracking nesting depth
// while honoring string literals: a quote toggles in-string state and a
// backslash escapes the character after it. Returns the index one past the
// closer of the balanced run.
func scanBalanced(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i + 1, true
			}
			if depth < 0 {
				return 0, false
			}
		}
	}
	return 0, false
}
