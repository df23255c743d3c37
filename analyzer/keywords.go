package analyzer

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

const (
	minTokenLength = 3
	minOccurrences = 2
	maxKeywords    = 20
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Tokenize lowercases the text, splits on runs of non-alphanumerics and
// drops tokens shorter than the minimum length.
func Tokenize(text string) []string {
	tokens := []string{}
	for _, token := range nonAlphanumeric.Split(strings.ToLower(text), -1) {
		if len(token) >= minTokenLength {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func filterStopWords(tokens []string) []string {
	filtered := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, stop := stopWords[token]; !stop {
			filtered = append(filtered, token)
		}
	}
	return filtered
}

// KeywordDensities reports the most frequent 1-, 2- and 3-gram phrases in
// the text. Stop words are removed before the windows are built, so a
// reported multi-word phrase may not have been textually adjacent in the
// source: a stop word could have sat between its words before filtering.
// Downstream consumers depend on these counts, so this stays as is.
func KeywordDensities(text string) []KeywordDensity {
	tokens := filterStopWords(Tokenize(text))
	results := []KeywordDensity{}
	for n := 1; n <= 3; n++ {
		results = append(results, ngramDensities(tokens, n)...)
	}
	return results
}

func ngramDensities(tokens []string, n int) []KeywordDensity {
	total := len(tokens) - n + 1
	if total <= 0 {
		return nil
	}

	counts := map[string]int{}
	for i := 0; i < total; i++ {
		phrase := strings.Join(tokens[i:i+n], " ")
		counts[phrase]++
	}

	// Percentage base: the filtered token count for unigrams, the window
	// count for longer phrases.
	base := total
	if n == 1 {
		base = len(tokens)
	}

	densities := []KeywordDensity{}
	for phrase, count := range counts {
		if count < minOccurrences {
			continue
		}
		densities = append(densities, KeywordDensity{
			Phrase:     phrase,
			Count:      count,
			Percentage: roundPercentage(float64(count) / float64(base) * 100),
			NGram:      n,
		})
	}

	// Equal counts sort by phrase so the output is stable run to run.
	sort.Slice(densities, func(i, j int) bool {
		if densities[i].Count != densities[j].Count {
			return densities[i].Count > densities[j].Count
		}
		return densities[i].Phrase < densities[j].Phrase
	})
	if len(densities) > maxKeywords {
		densities = densities[:maxKeywords]
	}
	return densities
}

func roundPercentage(v float64) float64 {
	return math.Round(clampFloat(v, 0, 100)*100) / 100
}
