package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSentences(t *testing.T) {
	sentences := SplitSentences("First one. Second one! Third one? trailing fragment")
	require.Len(t, sentences, 4)
	assert.Equal(t, "First one.", sentences[0])
	assert.Equal(t, "Second one!", sentences[1])
	assert.Equal(t, "Third one?", sentences[2])
	assert.Equal(t, "trailing fragment", sentences[3])
}

func TestSplitSentencesEmpty(t *testing.T) {
	assert.Empty(t, SplitSentences(""))
	assert.Empty(t, SplitSentences("   "))
}

func TestExtractiveSummarize(t *testing.T) {
	content := "Go compiles quickly. Go has garbage collection. Goroutines are cheap. This sentence should not appear. Neither should this."

	result := ExtractiveSummarize(content)

	assert.Equal(t, "Go compiles quickly. Go has garbage collection. Goroutines are cheap.", result.Summary)
	assert.NotEmpty(t, result.Tags)
	assert.LessOrEqual(t, len(result.Tags), 8)
}

func TestExtractiveSummarizeWordCap(t *testing.T) {
	// One giant sentence with no terminal punctuation until the end
	words := make([]string, 400)
	for i := range words {
		words[i] = "word"
	}
	content := strings.Join(words, " ") + "."

	result := ExtractiveSummarize(content)
	assert.Len(t, strings.Fields(result.Summary), 180)
}

func TestKeyInsights(t *testing.T) {
	content := "The most important thing is to write tests. " +
		"Cats are fluffy. " +
		"A key point is that reviews catch what tests miss. " +
		"It is essential to keep functions small and names honest."

	insights := KeyInsights(content, 3)
	require.Len(t, insights, 3)
	assert.Contains(t, insights[0], "important")
	assert.Contains(t, insights[1], "key")
	assert.Contains(t, insights[2], "essential")
}

func TestKeyInsightsLengthBounds(t *testing.T) {
	// Indicator word present but sentence too short
	insights := KeyInsights("Key point here.", 3)
	assert.Empty(t, insights)
}

func TestExtractiveSummarizerInterface(t *testing.T) {
	s := NewExtractiveSummarizer()
	assert.False(t, s.Available())

	result, err := s.SummarizeAndTag(context.Background(), "Short note. About summarizers.")
	require.NoError(t, err)
	assert.Equal(t, "Short note. About summarizers.", result.Summary)
}
