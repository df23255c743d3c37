package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize("Hello, World! It's 2024 -- SEO-ready.")
	assert.Equal(t, []string{"hello", "world", "2024", "seo", "ready"}, tokens)
}

func TestTokenizeDropsShortTokens(t *testing.T) {
	tokens := Tokenize("go is ok but golang wins")
	assert.Equal(t, []string{"but", "golang", "wins"}, tokens)
}

func TestKeywordDensitiesUnigram(t *testing.T) {
	// "shoes" appears 3 times among 6 filtered tokens.
	text := "shoes and shoes and shoes boots sandals slippers"
	densities := KeywordDensities(text)

	var shoes *KeywordDensity
	for i := range densities {
		if densities[i].Phrase == "shoes" && densities[i].NGram == 1 {
			shoes = &densities[i]
		}
	}
	require.NotNil(t, shoes)
	assert.Equal(t, 3, shoes.Count)
	assert.InDelta(t, 50.0, shoes.Percentage, 0.001)
}

func TestKeywordDensitiesThreshold(t *testing.T) {
	densities := KeywordDensities("unique words appearing once each time")
	assert.Empty(t, densities, "singletons fall below the occurrence threshold")
}

func TestKeywordDensitiesTrigramAcrossStopWords(t *testing.T) {
	// Stop words are filtered before windows are built, so the phrase counts
	// even when its occurrences are separated by stop words in the source.
	text := "You should buy shoes online because they buy shoes online and will buy shoes online."
	densities := KeywordDensities(text)

	var target *KeywordDensity
	totalTrigrams := 0
	for i := range densities {
		if densities[i].NGram != 3 {
			continue
		}
		if densities[i].Phrase == "buy shoes online" {
			target = &densities[i]
		}
	}
	require.NotNil(t, target)
	assert.Equal(t, 3, target.Count)

	// Filtered tokens: buy shoes online x3 -> 9 tokens, 7 trigram windows.
	totalTrigrams = 9 - 3 + 1
	assert.InDelta(t, float64(3)/float64(totalTrigrams)*100, target.Percentage, 0.01)
}

func TestKeywordDensitiesSortedAndCapped(t *testing.T) {
	text := ""
	for i := 0; i < 30; i++ {
		word := string(rune('a'+i%26)) + "word"
		text += word + " " + word + " "
	}
	densities := KeywordDensities(text)

	var unigrams []KeywordDensity
	for _, d := range densities {
		if d.NGram == 1 {
			unigrams = append(unigrams, d)
		}
	}
	assert.LessOrEqual(t, len(unigrams), 20)
	for i := 1; i < len(unigrams); i++ {
		if unigrams[i-1].Count == unigrams[i].Count {
			assert.Less(t, unigrams[i-1].Phrase, unigrams[i].Phrase)
		} else {
			assert.Greater(t, unigrams[i-1].Count, unigrams[i].Count)
		}
	}
}

func TestKeywordPercentagesWithinBounds(t *testing.T) {
	densities := KeywordDensities("alpha beta alpha beta alpha beta gamma gamma")
	require.NotEmpty(t, densities)
	for _, d := range densities {
		assert.GreaterOrEqual(t, d.Percentage, 0.0)
		assert.LessOrEqual(t, d.Percentage, 100.0)
		assert.GreaterOrEqual(t, d.Count, 2)
	}
}
