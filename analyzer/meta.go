package analyzer

import (
	"regexp"
	"strings"

	"github.com/pagelens/backend/htmldoc"
)

var charsetPattern = regexp.MustCompile(`(?i)charset=([a-zA-Z0-9_\-]+)`)

// capturedMetaNames are the named tags pulled into dedicated MetaData fields.
var capturedMetaNames = map[string]struct{}{
	"description": {},
	"keywords":    {},
	"robots":      {},
	"viewport":    {},
}

// ExtractMeta collects the document's head-level metadata. Named tags are
// looked up by their name attribute first, falling back to a property
// attribute match so that Open-Graph-style property tags can satisfy a name
// lookup.
func ExtractMeta(v htmldoc.View) MetaData {
	meta := MetaData{
		OpenGraph:    []MetaTag{},
		TwitterCards: []MetaTag{},
		OtherTags:    []MetaTag{},
	}

	if titles := v.QueryAll("title"); len(titles) > 0 {
		meta.Title = strings.TrimSpace(titles[0].Text())
	}
	if htmls := v.QueryAll("html"); len(htmls) > 0 {
		if lang, ok := htmls[0].Attr("lang"); ok {
			meta.Language = strings.TrimSpace(lang)
		}
	}
	if canonicals := v.QueryAll("link[rel='canonical']"); len(canonicals) > 0 {
		if href, ok := canonicals[0].Attr("href"); ok {
			meta.CanonicalURL = strings.TrimSpace(href)
		}
	}
	meta.Favicon = findFavicon(v)

	byName := map[string]string{}
	byProperty := map[string]string{}

	// The charset attribute wins over a content-type http-equiv wherever
	// each appears in the document.
	var equivCharset string

	for _, tag := range v.QueryAll("meta") {
		if charset, ok := tag.Attr("charset"); ok {
			if meta.Charset == "" {
				meta.Charset = strings.TrimSpace(charset)
			}
			continue
		}
		if equiv, ok := tag.Attr("http-equiv"); ok {
			if strings.EqualFold(strings.TrimSpace(equiv), "content-type") && equivCharset == "" {
				content, _ := tag.Attr("content")
				if m := charsetPattern.FindStringSubmatch(content); m != nil {
					equivCharset = m[1]
				}
			}
			continue
		}

		name, hasName := tag.Attr("name")
		property, hasProperty := tag.Attr("property")
		content, _ := tag.Attr("content")
		name = strings.TrimSpace(name)
		property = strings.TrimSpace(property)

		if hasName && name != "" {
			if _, seen := byName[strings.ToLower(name)]; !seen {
				byName[strings.ToLower(name)] = content
			}
		}
		if hasProperty && property != "" {
			if _, seen := byProperty[strings.ToLower(property)]; !seen {
				byProperty[strings.ToLower(property)] = content
			}
		}

		key := name
		if key == "" {
			key = property
		}
		if key == "" {
			continue
		}
		lower := strings.ToLower(key)
		switch {
		case strings.HasPrefix(lower, "og:"):
			meta.OpenGraph = append(meta.OpenGraph, MetaTag{Name: key, Content: content})
		case strings.HasPrefix(lower, "twitter:"):
			meta.TwitterCards = append(meta.TwitterCards, MetaTag{Name: key, Content: content})
		default:
			if _, captured := capturedMetaNames[lower]; !captured {
				meta.OtherTags = append(meta.OtherTags, MetaTag{Name: key, Content: content})
			}
		}
	}

	lookup := func(name string) string {
		if val, ok := byName[name]; ok {
			return val
		}
		return byProperty[name]
	}
	meta.Description = lookup("description")
	meta.Keywords = lookup("keywords")
	meta.Robots = lookup("robots")
	meta.Viewport = lookup("viewport")

	if meta.Charset == "" {
		meta.Charset = equivCharset
	}

	return meta
}

// findFavicon tries the rel values in preference order; first match wins.
func findFavicon(v htmldoc.View) string {
	for _, rel := range []string{"icon", "shortcut icon", "apple-touch-icon"} {
		for _, link := range v.QueryAll("link[rel='" + rel + "']") {
			if href, ok := link.Attr("href"); ok && strings.TrimSpace(href) != "" {
				return v.ResolveURL(href)
			}
		}
	}
	return ""
}
