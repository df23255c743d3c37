package analyzer

import (
	"net/url"
	"strings"

	"github.com/pagelens/backend/htmldoc"
)

const maxAnchorTextLength = 200

var skippedLinkSchemes = []string{"javascript:", "mailto:", "tel:"}

// ExtractLinks collects the visible anchors that have both an href and
// anchor text. Script, mail and phone pseudo-links are skipped. Internal
// and external hrefs are resolved to absolute form against the base URL;
// in-page anchors keep their raw href.
func ExtractLinks(v htmldoc.View, baseURL string) []LinkInfo {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		base = nil
	}

	links := []LinkInfo{}
	for _, node := range v.QueryAll("a") {
		href, ok := node.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			continue
		}
		if !node.Visible() {
			continue
		}
		if hasSkippedScheme(href) {
			continue
		}
		text := collapseWhitespace(node.Text())
		if text == "" {
			continue
		}
		if runes := []rune(text); len(runes) > maxAnchorTextLength {
			text = string(runes[:maxAnchorTextLength])
		}

		link := LinkInfo{AnchorText: text}
		if strings.HasPrefix(href, "#") {
			link.Href = href
			link.Type = LinkAnchor
		} else {
			link.Href = v.ResolveURL(href)
			link.Type = classifyLink(href, link.Href, base)
		}
		if rel, ok := node.Attr("rel"); ok {
			link.Rel = rel
			link.Nofollow = strings.Contains(strings.ToLower(rel), "nofollow")
		}
		if target, ok := node.Attr("target"); ok {
			link.Target = target
		}
		links = append(links, link)
	}
	return links
}

func hasSkippedScheme(href string) bool {
	lower := strings.ToLower(href)
	for _, scheme := range skippedLinkSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}

// classifyLink marks a non-anchor href as internal or external. Relative
// hrefs (no scheme and not protocol-relative) are internal by definition;
// everything else is compared by hostname against the base URL.
func classifyLink(rawHref, absHref string, base *url.URL) string {
	raw, err := url.Parse(rawHref)
	if err == nil && raw.Scheme == "" && !strings.HasPrefix(rawHref, "//") {
		return LinkInternal
	}
	if base == nil {
		return LinkExternal
	}
	abs, err := url.Parse(absHref)
	if err != nil {
		return LinkExternal
	}
	if abs.Hostname() != "" && abs.Hostname() == base.Hostname() {
		return LinkInternal
	}
	return LinkExternal
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
