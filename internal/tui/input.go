package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// maxInputLen is the maximum number of runes allowed in inline text inputs.
const maxInputLen = 200

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	default:
		if utf8.RuneCountInString(key) == 1 {
			if utf8.RuneCountInString(text) >= maxInputLen {
				return text
			}
			return text + key
		}
		return text
	}
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// dateInputLayouts are the accepted formats for typed date options.
var dateInputLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15",
	"2006-01-02",
}

// parseDateInput parses a typed date option value in local time. A date with
// no time of day lands at 18:00, a sensible default for a party.
func parseDateInput(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateInputLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			if layout == "2006-01-02" {
				t = t.Add(18 * time.Hour)
			}
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (try 2006-01-02 15:04)", s)
}
