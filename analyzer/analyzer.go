// Package analyzer is the SEO audit pipeline: feature extraction, text
// analytics, issue detection and scoring over an already-parsed document
// view. Every stage is a pure function of its inputs; the package holds no
// state, performs no I/O and never retries.
package analyzer

import (
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/pagelens/backend/htmldoc"
)

// Analyze runs the full pipeline over a document view and returns one
// immutable result. The five extractors and the text analytics have no data
// dependency on each other and run concurrently; issue detection and
// aggregation join on all of them. Domain anomalies (missing tags, invalid
// JSON-LD, broken hierarchy) become issues, never errors.
func Analyze(v htmldoc.View, baseURL string, fetchedAt time.Time) *AnalysisResult {
	var (
		meta        MetaData
		headings    []Heading
		images      []ImageInfo
		links       []LinkInfo
		schemas     []SchemaRecord
		readability ReadabilityScore
		keywords    []KeywordDensity
	)

	p := pool.New()
	p.Go(func() { meta = ExtractMeta(v) })
	p.Go(func() { headings = ExtractHeadings(v) })
	p.Go(func() { images = ExtractImages(v) })
	p.Go(func() { links = ExtractLinks(v, baseURL) })
	p.Go(func() { schemas = ExtractSchemas(v) })
	p.Go(func() {
		text := v.BodyText()
		readability = Readability(text)
		keywords = KeywordDensities(text)
	})
	p.Wait()

	issues := DetectIssues(meta, headings, images, links, schemas)
	score := ComputeScore(issues, readability, schemas)

	return &AnalysisResult{
		URL:         baseURL,
		FetchedAt:   fetchedAt,
		Meta:        meta,
		Headings:    headings,
		Images:      images,
		Links:       links,
		Schemas:     schemas,
		Readability: readability,
		Keywords:    keywords,
		Issues:      issues,
		Statistics:  ComputeStatistics(headings, images, links, schemas, readability, keywords),
		Score:       score,
		Rating:      RateScore(score),
	}
}
