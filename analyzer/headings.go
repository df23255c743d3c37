package analyzer

import (
	"strings"

	"github.com/pagelens/backend/htmldoc"
)

// ExtractHeadings returns the visible h1..h6 elements in document order.
// Headings with empty text are kept so the content rules can see them.
func ExtractHeadings(v htmldoc.View) []Heading {
	headings := []Heading{}
	for _, node := range v.QueryAll("h1, h2, h3, h4, h5, h6") {
		if !node.Visible() {
			continue
		}
		tag := node.TagName()
		if len(tag) != 2 || tag[0] != 'h' {
			continue
		}
		level := int(tag[1] - '0')
		if level < 1 || level > 6 {
			continue
		}
		text := strings.TrimSpace(node.Text())
		headings = append(headings, Heading{
			Level:     level,
			Text:      text,
			WordCount: len(strings.Fields(text)),
		})
	}
	return headings
}

// HasSkippedLevel reports whether any heading jumps more than one level
// deeper than the visible heading before it, e.g. an h2 followed by an h4.
func HasSkippedLevel(headings []Heading) bool {
	for i := 1; i < len(headings); i++ {
		if headings[i].Level > headings[i-1].Level+1 {
			return true
		}
	}
	return false
}
