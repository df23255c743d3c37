package analyzer

import (
	"math"
	"regexp"
	"strings"
)

var (
	sentenceEnds = regexp.MustCompile(`[.!?]+`)
	// The trailing-e family is only stripped after a consonant other than l,
	// which keeps words like "able" at two syllables.
	syllableSuffix = regexp.MustCompile(`(?:[^laeiouy]es|[^laeiouy]ed|[^laeiouy]e)$`)
	vowelGroups    = regexp.MustCompile(`[aeiouy]{1,2}`)
)

// readabilityBuckets map a minimum Flesch score to its grade level and
// interpretation; first match wins.
var readabilityBuckets = []struct {
	minScore       float64
	gradeLevel     string
	interpretation string
}{
	{90, "5th grade", "Very Easy: easily understood by an average 11-year-old student"},
	{80, "6th grade", "Easy: conversational English for consumers"},
	{70, "7th grade", "Fairly Easy: easily understood by 13- to 15-year-old students"},
	{60, "8th-9th grade", "Plain English: easily understood by most readers"},
	{50, "10th-12th grade", "Fairly Difficult: moderately hard to read"},
	{30, "College level", "Difficult: best understood by college students"},
	{math.Inf(-1), "College graduate", "Very Difficult: best understood by university graduates"},
}

// CountSentences counts terminal punctuation runs. Non-empty text with no
// terminator still counts as one sentence.
func CountSentences(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	n := len(sentenceEnds.FindAllString(text, -1))
	if n == 0 {
		return 1
	}
	return n
}

// CountWords counts whitespace-separated tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountSyllables estimates the syllables in a single word. Short words get
// one syllable; longer words count vowel-group runs after a silent-suffix
// strip and a leading-y strip.
func CountSyllables(word string) int {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return 0
	}
	if len(word) <= 3 {
		return 1
	}
	word = syllableSuffix.ReplaceAllString(word, "")
	word = strings.TrimPrefix(word, "y")
	n := len(vowelGroups.FindAllString(word, -1))
	if n == 0 {
		return 1
	}
	return n
}

// Readability computes the Flesch Reading Ease score for the given plain
// text with the score clamped into [0,100].
func Readability(text string) ReadabilityScore {
	if strings.TrimSpace(text) == "" {
		return ReadabilityScore{
			GradeLevel:     "N/A",
			Interpretation: "No text content found",
		}
	}

	sentences := CountSentences(text)
	words := strings.Fields(text)
	syllables := 0
	for _, word := range words {
		syllables += CountSyllables(word)
	}

	stats := TextStatistics{
		Sentences: sentences,
		Words:     len(words),
		Syllables: syllables,
	}
	if sentences == 0 || len(words) == 0 {
		return ReadabilityScore{
			GradeLevel:     "N/A",
			Interpretation: "Insufficient text for analysis",
			Statistics:     stats,
		}
	}

	stats.AvgWordsPerSentence = float64(len(words)) / float64(sentences)
	stats.AvgSyllablesPerWord = float64(syllables) / float64(len(words))

	score := 206.835 - 1.015*stats.AvgWordsPerSentence - 84.6*stats.AvgSyllablesPerWord
	score = clampFloat(score, 0, 100)

	grade, interpretation := bucketReadability(score)
	return ReadabilityScore{
		FleschScore:    score,
		GradeLevel:     grade,
		Interpretation: interpretation,
		Statistics:     stats,
	}
}

func bucketReadability(score float64) (string, string) {
	for _, bucket := range readabilityBuckets {
		if score >= bucket.minScore {
			return bucket.gradeLevel, bucket.interpretation
		}
	}
	last := readabilityBuckets[len(readabilityBuckets)-1]
	return last.gradeLevel, last.interpretation
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
