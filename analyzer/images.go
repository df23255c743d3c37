package analyzer

import (
	"strconv"
	"strings"

	"github.com/pagelens/backend/htmldoc"
)

// ExtractImages collects the visible images that have a non-empty src.
// A missing alt attribute stays nil; alt="" is recorded as an empty string.
func ExtractImages(v htmldoc.View) []ImageInfo {
	images := []ImageInfo{}
	for _, node := range v.QueryAll("img") {
		src, ok := node.Attr("src")
		src = strings.TrimSpace(src)
		if !ok || src == "" {
			continue
		}
		if !node.Visible() {
			continue
		}

		img := ImageInfo{Src: src}
		if alt, ok := node.Attr("alt"); ok {
			img.Alt = &alt
		}
		if title, ok := node.Attr("title"); ok {
			img.Title = title
		}
		img.Width = parseDimension(node, "width")
		img.Height = parseDimension(node, "height")
		if loading, ok := node.Attr("loading"); ok {
			loading = strings.ToLower(strings.TrimSpace(loading))
			if loading == "lazy" || loading == "eager" {
				img.Loading = loading
			}
		}
		images = append(images, img)
	}
	return images
}

func parseDimension(node htmldoc.Node, attr string) *int {
	raw, ok := node.Attr(attr)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &n
}
