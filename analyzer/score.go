package analyzer

// Score deductions per issue severity and the flat bonuses.
const (
	baseScore               = 100
	criticalPenalty         = 15
	warningPenalty          = 5
	recommendationPenalty   = 2
	readabilityBonus        = 5
	readabilityBonusMinimum = 60
	schemaBonus             = 5
)

var ratings = []struct {
	minScore int
	rating   Rating
}{
	{90, Rating{Label: "Excellent", Description: "The page follows SEO best practices with only minor room for improvement"}},
	{75, Rating{Label: "Good", Description: "The page is in good shape; addressing the remaining findings will help"}},
	{50, Rating{Label: "Fair", Description: "The page has notable gaps that are likely costing search visibility"}},
	{0, Rating{Label: "Poor", Description: "The page has fundamental SEO problems that need attention"}},
}

// ComputeStatistics derives the aggregate counts from the extractor outputs.
func ComputeStatistics(headings []Heading, images []ImageInfo, links []LinkInfo, schemas []SchemaRecord, readability ReadabilityScore, keywords []KeywordDensity) Statistics {
	stats := Statistics{
		TotalWords:     readability.Statistics.Words,
		TotalImages:    len(images),
		TotalLinks:     len(links),
		UniqueKeywords: len(keywords),
	}
	for _, img := range images {
		if img.Alt != nil {
			stats.ImagesWithAlt++
		} else {
			stats.ImagesWithoutAlt++
		}
	}
	for _, link := range links {
		switch link.Type {
		case LinkInternal:
			stats.InternalLinks++
		case LinkExternal:
			stats.ExternalLinks++
		case LinkAnchor:
			stats.AnchorLinks++
		}
	}
	for _, h := range headings {
		if h.Level == 1 {
			stats.H1Count++
		}
	}
	for _, schema := range schemas {
		if schema.IsValid {
			stats.SchemaCount++
		}
	}
	return stats
}

// ComputeScore starts at 100, subtracts per issue severity, adds the
// readability and structured-data bonuses, and clamps into [0,100].
func ComputeScore(issues []SEOIssue, readability ReadabilityScore, schemas []SchemaRecord) int {
	score := baseScore
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityCritical:
			score -= criticalPenalty
		case SeverityWarning:
			score -= warningPenalty
		case SeverityRecommendation:
			score -= recommendationPenalty
		}
	}
	if readability.FleschScore >= readabilityBonusMinimum {
		score += readabilityBonus
	}
	for _, schema := range schemas {
		if schema.IsValid {
			score += schemaBonus
			break
		}
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// RateScore buckets a score into its rating; first match wins.
func RateScore(score int) Rating {
	for _, r := range ratings {
		if score >= r.minScore {
			return r.rating
		}
	}
	return ratings[len(ratings)-1].rating
}
