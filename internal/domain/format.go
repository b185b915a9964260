package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FormatMinutes renders a duration as "1h 30m", "2h" or "45m".
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	hours, mins := minutes/60, minutes%60
	switch {
	case hours > 0 && mins > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}

// Initials returns up to two upper-cased initials from a space-separated name.
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, part := range strings.Split(name, " ") {
		if n == 2 {
			break
		}
		n++
		if r, _ := utf8.DecodeRuneInString(part); r != utf8.RuneError {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// TruncateRunes caps s at limit runes.
func TruncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
