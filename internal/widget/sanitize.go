package widget

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// plainText makes untrusted text safe to insert into a terminal log.
// Escape sequences are removed and remaining control characters other than
// newline and tab are dropped; the text is never interpreted.
func plainText(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")

	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
