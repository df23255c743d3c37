package analyzer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findIssues(issues []SEOIssue, category Category, severity Severity) []SEOIssue {
	var out []SEOIssue
	for _, issue := range issues {
		if issue.Category == category && issue.Severity == severity {
			out = append(out, issue)
		}
	}
	return out
}

func TestTitleRules(t *testing.T) {
	assert.Equal(t, SeverityCritical, checkTitle(MetaData{})[0].Severity)
	assert.Contains(t, checkTitle(MetaData{})[0].Message, "Missing page title")

	short := checkTitle(MetaData{Title: "Too short"})
	require.Len(t, short, 1)
	assert.Equal(t, SeverityWarning, short[0].Severity)

	long := checkTitle(MetaData{Title: strings.Repeat("x", 61)})
	require.Len(t, long, 1)
	assert.Equal(t, SeverityWarning, long[0].Severity)

	assert.Empty(t, checkTitle(MetaData{Title: strings.Repeat("x", 45)}))
}

func TestTitleRulesCountRunesNotBytes(t *testing.T) {
	// 40 characters, 120 bytes. In range by character count.
	assert.Empty(t, checkTitle(MetaData{Title: strings.Repeat("日", 40)}))

	long := checkTitle(MetaData{Title: strings.Repeat("日", 61)})
	require.Len(t, long, 1)
	assert.Contains(t, long[0].Message, "61 characters")

	short := checkTitle(MetaData{Title: strings.Repeat("é", 25)})
	require.Len(t, short, 1)
	assert.Contains(t, short[0].Message, "25 characters")
}

func TestDescriptionRules(t *testing.T) {
	missing := checkDescription(MetaData{})
	require.Len(t, missing, 1)
	assert.Equal(t, SeverityWarning, missing[0].Severity)
	assert.Contains(t, missing[0].Message, "description")

	short := checkDescription(MetaData{Description: "brief"})
	require.Len(t, short, 1)
	assert.Equal(t, SeverityWarning, short[0].Severity)

	long := checkDescription(MetaData{Description: strings.Repeat("d", 161)})
	require.Len(t, long, 1)
	assert.Equal(t, SeverityRecommendation, long[0].Severity)

	assert.Empty(t, checkDescription(MetaData{Description: strings.Repeat("d", 140)}))
	assert.Empty(t, checkDescription(MetaData{Description: strings.Repeat("ü", 140)}))
}

func TestMetaPresenceRules(t *testing.T) {
	meta := MetaData{}
	assert.Equal(t, SeverityRecommendation, checkCanonical(meta)[0].Severity)
	assert.Equal(t, SeverityWarning, checkViewport(meta)[0].Severity)
	assert.Equal(t, SeverityRecommendation, checkLanguage(meta)[0].Severity)
	assert.Equal(t, SeverityRecommendation, checkOpenGraph(meta)[0].Severity)

	full := MetaData{
		CanonicalURL: "https://example.com",
		Viewport:     "width=device-width",
		Language:     "en",
		OpenGraph:    []MetaTag{{Name: "og:title", Content: "x"}},
	}
	assert.Empty(t, checkCanonical(full))
	assert.Empty(t, checkViewport(full))
	assert.Empty(t, checkLanguage(full))
	assert.Empty(t, checkOpenGraph(full))
}

func TestH1Rules(t *testing.T) {
	none := checkH1Count(nil)
	require.Len(t, none, 1)
	assert.Equal(t, SeverityCritical, none[0].Severity)

	two := checkH1Count([]Heading{{Level: 1, Text: "a"}, {Level: 1, Text: "b"}})
	require.Len(t, two, 1)
	assert.Equal(t, SeverityCritical, two[0].Severity)
	assert.Contains(t, two[0].Message, "2")

	assert.Empty(t, checkH1Count([]Heading{{Level: 1, Text: "only"}}))
}

func TestImageAltRules(t *testing.T) {
	alt := "described"
	empty := ""

	// 2 of 3 missing alt: over half, critical.
	mostlyMissing := []ImageInfo{{Src: "a"}, {Src: "b"}, {Src: "c", Alt: &alt}}
	issues := checkMissingAlt(mostlyMissing)
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityCritical, issues[0].Severity)

	// 1 of 3 missing: warning.
	someMissing := []ImageInfo{{Src: "a"}, {Src: "b", Alt: &alt}, {Src: "c", Alt: &alt}}
	issues = checkMissingAlt(someMissing)
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityWarning, issues[0].Severity)

	assert.Empty(t, checkMissingAlt([]ImageInfo{{Src: "a", Alt: &alt}}))
	assert.Empty(t, checkMissingAlt(nil))

	emptyAlt := checkEmptyAlt([]ImageInfo{{Src: "a", Alt: &empty}})
	require.Len(t, emptyAlt, 1)
	assert.Equal(t, SeverityRecommendation, emptyAlt[0].Severity)
}

func TestLinkRules(t *testing.T) {
	generic := checkGenericAnchors([]LinkInfo{
		{AnchorText: "Click  Here", Type: LinkInternal},
		{AnchorText: "Pricing details", Type: LinkInternal},
	})
	require.Len(t, generic, 1)
	assert.Equal(t, SeverityRecommendation, generic[0].Severity)
	assert.Contains(t, generic[0].Message, "1")

	anchors := checkInPageAnchors([]LinkInfo{{AnchorText: "Top", Type: LinkAnchor}})
	require.Len(t, anchors, 1)
	assert.Equal(t, SeverityRecommendation, anchors[0].Severity)

	var many []LinkInfo
	for i := 0; i < 21; i++ {
		many = append(many, LinkInfo{AnchorText: fmt.Sprintf("ext %d", i), Type: LinkExternal})
	}
	dofollow := checkDofollowExternal(many)
	require.Len(t, dofollow, 1)
	assert.Equal(t, SeverityRecommendation, dofollow[0].Severity)

	for i := range many {
		many[i].Nofollow = true
	}
	assert.Empty(t, checkDofollowExternal(many))
}

func TestSchemaRules(t *testing.T) {
	invalid := checkInvalidSchemas([]SchemaRecord{{IsValid: false}, {IsValid: true}})
	require.Len(t, invalid, 1)
	assert.Equal(t, SeverityWarning, invalid[0].Severity)
	assert.Contains(t, invalid[0].Message, "1 invalid")

	missing := checkMissingSchema(nil)
	require.Len(t, missing, 1)
	assert.Equal(t, SeverityRecommendation, missing[0].Severity)

	assert.Empty(t, checkMissingSchema([]SchemaRecord{{IsValid: true}}))
}

func TestDetectIssuesCoversAllCategories(t *testing.T) {
	issues := DetectIssues(MetaData{}, nil, []ImageInfo{{Src: "x"}}, []LinkInfo{{AnchorText: "here", Type: LinkInternal}}, nil)

	assert.NotEmpty(t, findIssues(issues, CategoryMeta, SeverityCritical))
	assert.NotEmpty(t, findIssues(issues, CategoryStructure, SeverityCritical))
	assert.NotEmpty(t, findIssues(issues, CategoryImages, SeverityCritical))
	assert.NotEmpty(t, findIssues(issues, CategoryLinks, SeverityRecommendation))
	assert.NotEmpty(t, findIssues(issues, CategorySchema, SeverityRecommendation))
}
