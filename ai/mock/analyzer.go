package mock

import (
	"context"

	"github.com/lorekeep/lorekeep/ai"
	"github.com/lorekeep/lorekeep/core"
)

// ContentAnalyzer is a test double for ai.ContentAnalyzer.
// It allows custom behavior injection via function fields.
type ContentAnalyzer struct {
	// AnalyzeFunc is called by Analyze if set.
	// If nil, uses default extraction-based behavior.
	AnalyzeFunc func(ctx context.Context, titleHint, excerpt string) (*ai.ContentAnalysis, error)

	callCount int
}

// NewContentAnalyzer creates a mock analyzer with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewContentAnalyzer() *ContentAnalyzer {
	return &ContentAnalyzer{}
}

// Analyze produces metadata by plain extraction: a truncated title,
// extractive summary, and frequency-based tags.
func (m *ContentAnalyzer) Analyze(ctx context.Context, titleHint, excerpt string) (*ai.ContentAnalysis, error) {
	m.callCount++

	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, titleHint, excerpt)
	}

	title := titleHint
	if title == "" {
		runes := []rune(excerpt)
		if len(runes) > 80 {
			runes = runes[:80]
		}
		title = string(runes)
	}

	extracted := ai.ExtractiveSummarize(excerpt)

	return &ai.ContentAnalysis{
		Title:       title,
		Summary:     extracted.Summary,
		Tags:        core.ExtractKeywords(excerpt, 5),
		ContentType: "text",
		KeyInsights: ai.KeyInsights(excerpt, 3),
	}, nil
}

// CallCount returns the number of times Analyze was called.
func (m *ContentAnalyzer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *ContentAnalyzer) Reset() {
	m.callCount = 0
	m.AnalyzeFunc = nil
}
