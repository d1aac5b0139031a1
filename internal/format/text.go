package format

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultTruncateLength is the length Truncate callers use for table cells.
const DefaultTruncateLength = 120

// Initials returns the upper-cased first letters of first and last name.
// An empty part contributes nothing.
func Initials(firstName, lastName string) string {
	var b strings.Builder
	for _, s := range []string{firstName, lastName} {
		if r, size := utf8.DecodeRuneInString(s); size > 0 {
			b.WriteString(strings.ToUpper(string(r)))
		}
	}
	return b.String()
}

// FormatDuration renders minutes as "1h 5m"; zero renders as "0m".
func FormatDuration(minutes int) string {
	hrs, mins := minutes/60, minutes%60
	parts := make([]string, 0, 2)
	if hrs != 0 {
		parts = append(parts, fmt.Sprintf("%dh", hrs))
	}
	if mins != 0 {
		parts = append(parts, fmt.Sprintf("%dm", mins))
	}
	if len(parts) == 0 {
		return "0m"
	}
	return strings.Join(parts, " ")
}

// Truncate shortens s to at most max runes, ending with an ellipsis.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}
