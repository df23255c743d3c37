package analyzer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Title and description length bounds in characters.
const (
	minTitleLength       = 30
	maxTitleLength       = 60
	minDescriptionLength = 120
	maxDescriptionLength = 160

	// External links above this count without nofollow trigger a
	// recommendation.
	maxDofollowExternalLinks = 20
)

// genericAnchorPhrases are anchor texts that carry no ranking signal.
// Matching is exact after lowercasing and whitespace normalization.
var genericAnchorPhrases = map[string]struct{}{
	"click here": {},
	"here":       {},
	"read more":  {},
	"learn more": {},
	"more":       {},
	"link":       {},
	"this":       {},
	"click":      {},
}

// Each category is a table of independent rules. A rule inspects one
// extracted structure and returns zero or more issues; rules never look at
// each other's output, so categories can be tested and extended in
// isolation.
type (
	metaRule    func(MetaData) []SEOIssue
	headingRule func([]Heading) []SEOIssue
	imageRule   func([]ImageInfo) []SEOIssue
	linkRule    func([]LinkInfo) []SEOIssue
	schemaRule  func([]SchemaRecord) []SEOIssue
)

var metaRules = []metaRule{checkTitle, checkDescription, checkCanonical, checkViewport, checkLanguage, checkOpenGraph}

var headingRules = []headingRule{checkH1Count, checkHeadingHierarchy, checkEmptyHeadings}

var imageRules = []imageRule{checkMissingAlt, checkEmptyAlt}

var linkRules = []linkRule{checkGenericAnchors, checkInPageAnchors, checkDofollowExternal}

var schemaRules = []schemaRule{checkInvalidSchemas, checkMissingSchema}

// DetectIssues runs every rule group over the extracted features.
func DetectIssues(meta MetaData, headings []Heading, images []ImageInfo, links []LinkInfo, schemas []SchemaRecord) []SEOIssue {
	issues := []SEOIssue{}
	for _, rule := range metaRules {
		issues = append(issues, rule(meta)...)
	}
	for _, rule := range headingRules {
		issues = append(issues, rule(headings)...)
	}
	for _, rule := range imageRules {
		issues = append(issues, rule(images)...)
	}
	for _, rule := range linkRules {
		issues = append(issues, rule(links)...)
	}
	for _, rule := range schemaRules {
		issues = append(issues, rule(schemas)...)
	}
	return issues
}

func checkTitle(meta MetaData) []SEOIssue {
	if meta.Title == "" {
		return []SEOIssue{{
			Severity:   SeverityCritical,
			Category:   CategoryMeta,
			Message:    "Missing page title",
			Suggestion: "Add a <title> tag with a concise page summary (30-60 characters)",
		}}
	}
	length := utf8.RuneCountInString(meta.Title)
	if length < minTitleLength {
		return []SEOIssue{{
			Severity:   SeverityWarning,
			Category:   CategoryMeta,
			Message:    fmt.Sprintf("Page title is too short (%d characters)", length),
			Suggestion: fmt.Sprintf("Aim for %d-%d characters", minTitleLength, maxTitleLength),
		}}
	}
	if length > maxTitleLength {
		return []SEOIssue{{
			Severity:   SeverityWarning,
			Category:   CategoryMeta,
			Message:    fmt.Sprintf("Page title is too long (%d characters)", length),
			Suggestion: fmt.Sprintf("Aim for %d-%d characters; search engines truncate longer titles", minTitleLength, maxTitleLength),
		}}
	}
	return nil
}

func checkDescription(meta MetaData) []SEOIssue {
	if meta.Description == "" {
		return []SEOIssue{{
			Severity:   SeverityWarning,
			Category:   CategoryMeta,
			Message:    "Missing meta description",
			Suggestion: fmt.Sprintf("Add a meta description of %d-%d characters", minDescriptionLength, maxDescriptionLength),
		}}
	}
	length := utf8.RuneCountInString(meta.Description)
	if length < minDescriptionLength {
		return []SEOIssue{{
			Severity:   SeverityWarning,
			Category:   CategoryMeta,
			Message:    fmt.Sprintf("Meta description is too short (%d characters)", length),
			Suggestion: fmt.Sprintf("Aim for %d-%d characters", minDescriptionLength, maxDescriptionLength),
		}}
	}
	if length > maxDescriptionLength {
		return []SEOIssue{{
			Severity:   SeverityRecommendation,
			Category:   CategoryMeta,
			Message:    fmt.Sprintf("Meta description is too long (%d characters)", length),
			Suggestion: "Search engines truncate descriptions past 160 characters",
		}}
	}
	return nil
}

func checkCanonical(meta MetaData) []SEOIssue {
	if meta.CanonicalURL != "" {
		return nil
	}
	return []SEOIssue{{
		Severity:   SeverityRecommendation,
		Category:   CategoryMeta,
		Message:    "Missing canonical URL",
		Suggestion: "Add a <link rel=\"canonical\"> tag to consolidate duplicate-content signals",
	}}
}

func checkViewport(meta MetaData) []SEOIssue {
	if meta.Viewport != "" {
		return nil
	}
	return []SEOIssue{{
		Severity:   SeverityWarning,
		Category:   CategoryMeta,
		Message:    "Missing viewport meta tag",
		Suggestion: "Add <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"> for mobile rendering",
	}}
}

func checkLanguage(meta MetaData) []SEOIssue {
	if meta.Language != "" {
		return nil
	}
	return []SEOIssue{{
		Severity:   SeverityRecommendation,
		Category:   CategoryMeta,
		Message:    "Missing language attribute",
		Suggestion: "Declare the document language on the <html> tag, e.g. <html lang=\"en\">",
	}}
}

func checkOpenGraph(meta MetaData) []SEOIssue {
	if len(meta.OpenGraph) > 0 {
		return nil
	}
	return []SEOIssue{{
		Severity:   SeverityRecommendation,
		Category:   CategoryMeta,
		Message:    "No Open Graph tags found",
		Suggestion: "Add og:title, og:description and og:image tags for social sharing previews",
	}}
}

func checkH1Count(headings []Heading) []SEOIssue {
	count := 0
	for _, h := range headings {
		if h.Level == 1 {
			count++
		}
	}
	switch {
	case count == 0:
		return []SEOIssue{{
			Severity:   SeverityCritical,
			Category:   CategoryStructure,
			Message:    "No H1 heading found",
			Suggestion: "Add exactly one H1 describing the page's main topic",
		}}
	case count > 1:
		return []SEOIssue{{
			Severity:   SeverityCritical,
			Category:   CategoryStructure,
			Message:    fmt.Sprintf("Found %d H1 headings", count),
			Suggestion: "Use exactly one H1 per page and demote the rest",
		}}
	}
	return nil
}

func checkHeadingHierarchy(headings []Heading) []SEOIssue {
	if !HasSkippedLevel(headings) {
		return nil
	}
	return []SEOIssue{{
		Severity:   SeverityWarning,
		Category:   CategoryStructure,
		Message:    "Heading levels are skipped",
		Suggestion: "Keep the heading hierarchy sequential; do not jump from H2 to H4",
	}}
}

func checkEmptyHeadings(headings []Heading) []SEOIssue {
	empty := 0
	for _, h := range headings {
		if h.Text == "" {
			empty++
		}
	}
	if empty == 0 {
		return nil
	}
	return []SEOIssue{{
		Severity:   SeverityWarning,
		Category:   CategoryContent,
		Message:    fmt.Sprintf("Found %d empty heading(s)", empty),
		Suggestion: "Remove empty heading tags or give them text",
	}}
}

func checkMissingAlt(images []ImageInfo) []SEOIssue {
	if len(images) == 0 {
		return nil
	}
	missing := 0
	for _, img := range images {
		if img.Alt == nil {
			missing++
		}
	}
	if missing == 0 {
		return nil
	}
	severity := SeverityWarning
	if missing*2 > len(images) {
		severity = SeverityCritical
	}
	return []SEOIssue{{
		Severity:   severity,
		Category:   CategoryImages,
		Message:    fmt.Sprintf("%d of %d images are missing alt text", missing, len(images)),
		Suggestion: "Describe each image's content in its alt attribute",
	}}
}

func checkEmptyAlt(images []ImageInfo) []SEOIssue {
	empty := 0
	for _, img := range images {
		if img.Alt != nil && *img.Alt == "" {
			empty++
		}
	}
	if empty == 0 {
		return nil
	}
	return []SEOIssue{{
		Severity:   SeverityRecommendation,
		Category:   CategoryImages,
		Message:    fmt.Sprintf("%d image(s) have an empty alt attribute", empty),
		Suggestion: "Empty alt is fine for decorative images; add text for content images",
	}}
}

func checkGenericAnchors(links []LinkInfo) []SEOIssue {
	generic := 0
	for _, link := range links {
		normalized := strings.ToLower(collapseWhitespace(link.AnchorText))
		if _, ok := genericAnchorPhrases[normalized]; ok {
			generic++
		}
	}
	if generic == 0 {
		return nil
	}
	return []SEOIssue{{
		Severity:   SeverityRecommendation,
		Category:   CategoryLinks,
		Message:    fmt.Sprintf("%d link(s) use generic anchor text", generic),
		Suggestion: "Replace phrases like \"click here\" with descriptive anchor text",
	}}
}

func checkInPageAnchors(links []LinkInfo) []SEOIssue {
	anchors := 0
	for _, link := range links {
		if link.Type == LinkAnchor {
			anchors++
		}
	}
	if anchors == 0 {
		return nil
	}
	return []SEOIssue{{
		Severity:   SeverityRecommendation,
		Category:   CategoryLinks,
		Message:    fmt.Sprintf("Page contains %d in-page anchor link(s)", anchors),
		Suggestion: "In-page anchors are fine; make sure their targets exist",
	}}
}

func checkDofollowExternal(links []LinkInfo) []SEOIssue {
	dofollow := 0
	for _, link := range links {
		if link.Type == LinkExternal && !link.Nofollow {
			dofollow++
		}
	}
	if dofollow <= maxDofollowExternalLinks {
		return nil
	}
	return []SEOIssue{{
		Severity:   SeverityRecommendation,
		Category:   CategoryLinks,
		Message:    fmt.Sprintf("%d external links without nofollow", dofollow),
		Suggestion: "Consider rel=\"nofollow\" for untrusted or paid external links",
	}}
}

func checkInvalidSchemas(schemas []SchemaRecord) []SEOIssue {
	invalid := 0
	for _, schema := range schemas {
		if !schema.IsValid {
			invalid++
		}
	}
	if invalid == 0 {
		return nil
	}
	return []SEOIssue{{
		Severity:   SeverityWarning,
		Category:   CategorySchema,
		Message:    fmt.Sprintf("%d invalid JSON-LD block(s)", invalid),
		Suggestion: "Fix the JSON syntax so search engines can read the structured data",
	}}
}

func checkMissingSchema(schemas []SchemaRecord) []SEOIssue {
	if len(schemas) > 0 {
		return nil
	}
	return []SEOIssue{{
		Severity:   SeverityRecommendation,
		Category:   CategorySchema,
		Message:    "No structured data found",
		Suggestion: "Add JSON-LD structured data to enable rich search results",
	}}
}
