package extractor

import (
	"regexp"
	"strings"
)

var (
	multiNewline = regexp.MustCompile(`\n{3,}`)
	multiSpace   = regexp.MustCompile(`[ \t]{2,}`)
)

// Normalize unifies line endings, collapses excess whitespace and trims
// the text. Parsers depend on this shape: single spaces inside lines,
// at most one blank line between blocks.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\u00A0", " ") // non-breaking space
	text = strings.ReplaceAll(text, "\u200B", "") // zero-width space
	text = multiNewline.ReplaceAllString(text, "\n\n")
	text = multiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
