package analyzer

import "time"

// AnalysisResult is the complete audit of a single document. It is built
// once per invocation and never mutated afterwards; FetchedAt is the only
// field that is not a pure function of the document and base URL.
type AnalysisResult struct {
	URL         string           `json:"url"`
	FetchedAt   time.Time        `json:"fetchedAt"`
	Meta        MetaData         `json:"meta"`
	Headings    []Heading        `json:"headings"`
	Images      []ImageInfo      `json:"images"`
	Links       []LinkInfo       `json:"links"`
	Schemas     []SchemaRecord   `json:"schemas"`
	Readability ReadabilityScore `json:"readability"`
	Keywords    []KeywordDensity `json:"keywords"`
	Issues      []SEOIssue       `json:"issues"`
	Statistics  Statistics       `json:"statistics"`
	Score       int              `json:"score"`
	Rating      Rating           `json:"rating"`
}

// MetaTag is one metadata pair keyed by either a name or property attribute.
type MetaTag struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// MetaData holds the document's head-level metadata. Empty string means the
// tag was absent.
type MetaData struct {
	Title        string    `json:"title,omitempty"`
	Description  string    `json:"description,omitempty"`
	Keywords     string    `json:"keywords,omitempty"`
	Robots       string    `json:"robots,omitempty"`
	Viewport     string    `json:"viewport,omitempty"`
	Charset      string    `json:"charset,omitempty"`
	Language     string    `json:"language,omitempty"`
	CanonicalURL string    `json:"canonicalUrl,omitempty"`
	Favicon      string    `json:"favicon,omitempty"`
	OpenGraph    []MetaTag `json:"openGraph"`
	TwitterCards []MetaTag `json:"twitterCards"`
	OtherTags    []MetaTag `json:"otherTags"`
}

// Heading is one visible h1..h6 element, in document order.
type Heading struct {
	Level     int    `json:"level"`
	Text      string `json:"text"`
	WordCount int    `json:"wordCount"`
}

// ImageInfo describes one visible image with a non-empty src. Alt is nil
// when the attribute is absent, which is distinct from an explicit alt="".
type ImageInfo struct {
	Src     string  `json:"src"`
	Alt     *string `json:"alt,omitempty"`
	Title   string  `json:"title,omitempty"`
	Width   *int    `json:"width,omitempty"`
	Height  *int    `json:"height,omitempty"`
	Loading string  `json:"loading,omitempty"`
}

// Link classification values.
const (
	LinkInternal = "internal"
	LinkExternal = "external"
	LinkAnchor   = "anchor"
)

// LinkInfo describes one visible anchor with a usable href. Internal and
// external hrefs are absolute; in-page anchors keep their raw form.
type LinkInfo struct {
	Href       string `json:"href"`
	AnchorText string `json:"anchorText"`
	Type       string `json:"type"`
	Rel        string `json:"rel,omitempty"`
	Target     string `json:"target,omitempty"`
	Nofollow   bool   `json:"nofollow"`
}

// SchemaRecord is one JSON-LD script block. Parsed is nil whenever IsValid
// is false; RawJSON keeps the script body verbatim either way.
type SchemaRecord struct {
	Type    string `json:"type"`
	RawJSON string `json:"rawJson"`
	Parsed  any    `json:"parsed"`
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty"`
}

// TextStatistics are the raw counts behind the readability score.
type TextStatistics struct {
	Sentences           int     `json:"sentences"`
	Words               int     `json:"words"`
	Syllables           int     `json:"syllables"`
	AvgWordsPerSentence float64 `json:"avgWordsPerSentence"`
	AvgSyllablesPerWord float64 `json:"avgSyllablesPerWord"`
}

// ReadabilityScore is the Flesch Reading Ease result with its bucketed
// grade level and interpretation.
type ReadabilityScore struct {
	FleschScore    float64        `json:"fleschScore"`
	GradeLevel     string         `json:"gradeLevel"`
	Interpretation string         `json:"interpretation"`
	Statistics     TextStatistics `json:"statistics"`
}

// KeywordDensity is one reported n-gram phrase.
type KeywordDensity struct {
	Phrase     string  `json:"phrase"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	NGram      int     `json:"nGram"`
}

// Severity grades how urgent an issue is.
type Severity string

const (
	SeverityCritical       Severity = "critical"
	SeverityWarning        Severity = "warning"
	SeverityRecommendation Severity = "recommendation"
)

// Category names the feature area an issue belongs to.
type Category string

const (
	CategoryMeta        Category = "meta"
	CategoryContent     Category = "content"
	CategoryImages      Category = "images"
	CategoryLinks       Category = "links"
	CategorySchema      Category = "schema"
	CategoryStructure   Category = "structure"
	CategoryPerformance Category = "performance"
)

// SEOIssue is one graded finding. Findings are not errors; the pipeline
// records them and keeps going.
type SEOIssue struct {
	Severity   Severity `json:"severity"`
	Category   Category `json:"category"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// Statistics are the aggregate counts over the extracted features.
type Statistics struct {
	TotalWords       int `json:"totalWords"`
	TotalImages      int `json:"totalImages"`
	ImagesWithAlt    int `json:"imagesWithAlt"`
	ImagesWithoutAlt int `json:"imagesWithoutAlt"`
	TotalLinks       int `json:"totalLinks"`
	InternalLinks    int `json:"internalLinks"`
	ExternalLinks    int `json:"externalLinks"`
	AnchorLinks      int `json:"anchorLinks"`
	H1Count          int `json:"h1Count"`
	SchemaCount      int `json:"schemaCount"`
	UniqueKeywords   int `json:"uniqueKeywords"`
}

// Rating buckets the overall score into a label and description.
type Rating struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}
