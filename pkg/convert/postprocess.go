package convert

import (
	"regexp"
	"strings"
)

var (
	// Runs of three or more newlines collapse to one blank line.
	newlineRunRegex = regexp.MustCompile(`\n{3,}`)

	// A heading marker preceded by any newlines gets a full blank line.
	headingPadRegex = regexp.MustCompile(`\n+(#{1,6} )`)
)

// Normalize applies whitespace normalization to an assembled document:
// trailing horizontal whitespace is stripped from every line, blank-line
// runs collapse to a single blank line, headings are padded with a blank
// line above, and the document ends with exactly one trailing newline and
// no leading blank lines. Normalize is idempotent.
func Normalize(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	s = strings.Join(lines, "\n")

	s = newlineRunRegex.ReplaceAllString(s, "\n\n")
	s = headingPadRegex.ReplaceAllString(s, "\n\n$1")

	return strings.TrimSpace(s) + "\n"
}
