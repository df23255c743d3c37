package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHeadingsOrderAndLevels(t *testing.T) {
	v := view(t, `<html><body>
		<h1>Main Topic</h1>
		<h2>Sub topic one</h2>
		<h3 hidden>invisible</h3>
		<h2 aria-hidden="true">also invisible</h2>
		<h2>Sub topic two</h2>
	</body></html>`)

	headings := ExtractHeadings(v)
	require.Len(t, headings, 3)
	assert.Equal(t, Heading{Level: 1, Text: "Main Topic", WordCount: 2}, headings[0])
	assert.Equal(t, Heading{Level: 2, Text: "Sub topic one", WordCount: 3}, headings[1])
	assert.Equal(t, Heading{Level: 2, Text: "Sub topic two", WordCount: 3}, headings[2])

	for _, h := range headings {
		assert.GreaterOrEqual(t, h.Level, 1)
		assert.LessOrEqual(t, h.Level, 6)
	}
}

func TestExtractHeadingsKeepsEmptyText(t *testing.T) {
	v := view(t, `<html><body><h1>Title</h1><h2>   </h2></body></html>`)

	headings := ExtractHeadings(v)
	require.Len(t, headings, 2)
	assert.Equal(t, "", headings[1].Text)
	assert.Equal(t, 0, headings[1].WordCount)
}

func TestHasSkippedLevel(t *testing.T) {
	assert.False(t, HasSkippedLevel(nil))
	assert.False(t, HasSkippedLevel([]Heading{{Level: 1}, {Level: 2}, {Level: 3}}))
	assert.False(t, HasSkippedLevel([]Heading{{Level: 1}, {Level: 2}, {Level: 2}, {Level: 1}}))
	assert.True(t, HasSkippedLevel([]Heading{{Level: 1}, {Level: 3}}))
	assert.True(t, HasSkippedLevel([]Heading{{Level: 2}, {Level: 2}, {Level: 4}}))
}

func TestSkippedLevelIgnoresHiddenHeadings(t *testing.T) {
	// The h2 between h1 and h3 is hidden, so visible headings jump 1 -> 3.
	v := view(t, `<html><body>
		<h1>Top</h1>
		<h2 style="display:none">hidden bridge</h2>
		<h3>Deep</h3>
	</body></html>`)

	assert.True(t, HasSkippedLevel(ExtractHeadings(v)))
}
