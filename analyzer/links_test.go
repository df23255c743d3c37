package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const linkBase = "https://example.com/page"

func TestExtractLinksClassification(t *testing.T) {
	v := view(t, `<html><body>
		<a href="/about">About us</a>
		<a href="contact.html">Contact</a>
		<a href="https://example.com/pricing">Pricing</a>
		<a href="https://other.com/article">An article</a>
		<a href="#section">Jump to section</a>
		<a href="//cdn.other.com/asset">Asset</a>
	</body></html>`)

	links := ExtractLinks(v, linkBase)
	require.Len(t, links, 6)

	byText := map[string]LinkInfo{}
	for _, l := range links {
		byText[l.AnchorText] = l
	}

	assert.Equal(t, LinkInternal, byText["About us"].Type)
	assert.Equal(t, "https://example.com/about", byText["About us"].Href)
	assert.Equal(t, LinkInternal, byText["Contact"].Type)
	assert.Equal(t, "https://example.com/contact.html", byText["Contact"].Href)
	assert.Equal(t, LinkInternal, byText["Pricing"].Type)
	assert.Equal(t, LinkExternal, byText["An article"].Type)
	assert.Equal(t, LinkAnchor, byText["Jump to section"].Type)
	assert.Equal(t, "#section", byText["Jump to section"].Href)
	assert.Equal(t, LinkExternal, byText["Asset"].Type)
}

func TestExtractLinksSkipsUnusable(t *testing.T) {
	v := view(t, `<html><body>
		<a href="javascript:void(0)">JS</a>
		<a href="MAILTO:a@b.com">Mail</a>
		<a href="tel:+123456">Call</a>
		<a href="/no-text"><img src="/x.png"></a>
		<a href="">Empty href</a>
		<a href="/hidden" style="display:none">Hidden</a>
		<a href="/ok">Visible text</a>
	</body></html>`)

	links := ExtractLinks(v, linkBase)
	require.Len(t, links, 1)
	assert.Equal(t, "Visible text", links[0].AnchorText)
}

func TestExtractLinksRelAndNofollow(t *testing.T) {
	v := view(t, `<html><body>
		<a href="https://other.com/a" rel="NoFollow sponsored" target="_blank">Sponsor</a>
		<a href="https://other.com/b" rel="noopener">Partner</a>
	</body></html>`)

	links := ExtractLinks(v, linkBase)
	require.Len(t, links, 2)
	assert.True(t, links[0].Nofollow)
	assert.Equal(t, "NoFollow sponsored", links[0].Rel)
	assert.Equal(t, "_blank", links[0].Target)
	assert.False(t, links[1].Nofollow)
}

func TestExtractLinksTruncatesAnchorText(t *testing.T) {
	long := strings.Repeat("word ", 100)
	v := view(t, `<html><body><a href="/long">`+long+`</a></body></html>`)

	links := ExtractLinks(v, linkBase)
	require.Len(t, links, 1)
	assert.Len(t, []rune(links[0].AnchorText), 200)
}

func TestExtractLinksCollapsesWhitespace(t *testing.T) {
	v := view(t, "<html><body><a href=\"/x\">  spread \n\t out  </a></body></html>")

	links := ExtractLinks(v, linkBase)
	require.Len(t, links, 1)
	assert.Equal(t, "spread out", links[0].AnchorText)
}
