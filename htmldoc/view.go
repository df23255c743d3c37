// Package htmldoc exposes a parsed HTML document to the analysis pipeline
// as a small read-only capability: selector queries, attribute and text
// access, a visibility test, and URL resolution. The pipeline only ever
// talks to the View interface, so tests can substitute a stub and the
// production implementation can stay a thin wrapper over goquery.
package htmldoc

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Node is a single element of the document.
type Node interface {
	// TagName returns the lowercased element name, e.g. "h1".
	TagName() string
	// Attr returns the value of an attribute and whether it is present.
	Attr(name string) (string, bool)
	// Text returns the concatenated text content of the element's subtree.
	Text() string
	// Visible reports whether the element renders. Hidden attributes,
	// aria-hidden="true" and inline display:none / visibility:hidden on the
	// element or any ancestor make it invisible.
	Visible() bool
}

// View is the document capability the analyzer consumes.
type View interface {
	// QueryAll returns all elements matching a CSS selector, in document order.
	QueryAll(selector string) []Node
	// BodyText returns the visible plain text of the document body with
	// whitespace collapsed. Script, style, noscript, iframe, object and
	// embed subtrees are excluded.
	BodyText() string
	// ResolveURL resolves a possibly relative href against the document's
	// base URL. The input is returned unchanged when it cannot be parsed.
	ResolveURL(href string) string
}

// DocumentView is the goquery-backed View used in production.
type DocumentView struct {
	doc  *goquery.Document
	base *url.URL
}

// Parse reads an HTML document and binds it to a base URL.
func Parse(r io.Reader, baseURL string) (*DocumentView, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		base = nil
	}
	return &DocumentView{doc: doc, base: base}, nil
}

// ParseString is Parse over an in-memory document.
func ParseString(htmlText, baseURL string) (*DocumentView, error) {
	return Parse(strings.NewReader(htmlText), baseURL)
}

func (v *DocumentView) QueryAll(selector string) []Node {
	sel := v.doc.Find(selector)
	nodes := make([]Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &element{sel: s})
	})
	return nodes
}

func (v *DocumentView) ResolveURL(href string) string {
	href = strings.TrimSpace(href)
	if v.base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return v.base.ResolveReference(ref).String()
}

// BodyText walks the body subtree collecting text nodes, skipping the
// non-content containers, and collapses all whitespace runs to single
// spaces.
func (v *DocumentView) BodyText() string {
	body := v.doc.Find("body")
	if body.Length() == 0 {
		return ""
	}
	var b strings.Builder
	for _, n := range body.Nodes {
		collectText(&b, n)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

var skippedTextContainers = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"iframe":   {},
	"object":   {},
	"embed":    {},
}

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		if _, skip := skippedTextContainers[strings.ToLower(n.Data)]; skip {
			return
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteString(" ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
}

// element adapts a single-node goquery selection to Node.
type element struct {
	sel *goquery.Selection
}

func (e *element) TagName() string {
	if len(e.sel.Nodes) == 0 {
		return ""
	}
	return strings.ToLower(e.sel.Nodes[0].Data)
}

func (e *element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e *element) Text() string {
	return e.sel.Text()
}

func (e *element) Visible() bool {
	if len(e.sel.Nodes) == 0 {
		return false
	}
	for n := e.sel.Nodes[0]; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		if nodeHidden(n) {
			return false
		}
	}
	return true
}

// nodeHidden checks the attribute-level visibility signals available without
// a rendering engine: the hidden attribute, aria-hidden="true" and inline
// display:none / visibility:hidden styles.
func nodeHidden(n *html.Node) bool {
	for _, a := range n.Attr {
		switch strings.ToLower(a.Key) {
		case "hidden":
			return true
		case "aria-hidden":
			if strings.EqualFold(strings.TrimSpace(a.Val), "true") {
				return true
			}
		case "style":
			style := strings.ToLower(strings.ReplaceAll(a.Val, " ", ""))
			if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
				return true
			}
		}
	}
	return false
}
