package mock

import (
	"context"

	"github.com/lorekeep/lorekeep/ai"
)

// Summarizer is a test double for ai.Summarizer.
// It allows custom behavior injection via function fields.
type Summarizer struct {
	// SummarizeAndTagFunc is called by SummarizeAndTag if set.
	// If nil, uses the extractive summarizer.
	SummarizeAndTagFunc func(ctx context.Context, content string) (*ai.SummaryResult, error)

	// AvailableValue is returned by Available. Defaults to true so
	// handlers exercise their primary path in tests.
	AvailableValue bool

	callCount int
}

// NewSummarizer creates a mock summarizer with default extractive behavior.
// Note: Returns concrete type to allow test assertions.
func NewSummarizer() *Summarizer {
	return &Summarizer{AvailableValue: true}
}

// SummarizeAndTag produces an extractive summary unless a custom function is set.
func (m *Summarizer) SummarizeAndTag(ctx context.Context, content string) (*ai.SummaryResult, error) {
	m.callCount++

	if m.SummarizeAndTagFunc != nil {
		return m.SummarizeAndTagFunc(ctx, content)
	}

	return ai.ExtractiveSummarize(content), nil
}

// Available reports the configured availability.
func (m *Summarizer) Available() bool {
	return m.AvailableValue
}

// CallCount returns the number of times SummarizeAndTag was called.
func (m *Summarizer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *Summarizer) Reset() {
	m.callCount = 0
	m.SummarizeAndTagFunc = nil
	m.AvailableValue = true
}
