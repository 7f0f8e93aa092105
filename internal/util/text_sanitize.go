package util

import "strings"

// SanitizeText prepares model or user text for a postgres text column: invalid
// UTF-8 and control characters other than tab, CR and LF are dropped.
func SanitizeText(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\n', r == '\r', r == '\t':
			return r
		case r < 0x20, r == 0x7f:
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
