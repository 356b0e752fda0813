package mock

import (
	"context"
	"strings"

	"github.com/lorekeep/lorekeep/ai"
)

// IntentClassifier is a test double for ai.IntentClassifier.
// It allows custom behavior injection via function fields.
type IntentClassifier struct {
	// ClassifyFunc is called by Classify if set.
	// If nil, uses default keyword-based behavior.
	ClassifyFunc func(ctx context.Context, req ai.IntentRequest) (*ai.IntentDecision, error)

	callCount int
}

// NewIntentClassifier creates a mock classifier with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{}
}

// Classify returns a deterministic decision mirroring the fallback rules,
// so pipelines behave sensibly in tests without a model.
func (m *IntentClassifier) Classify(ctx context.Context, req ai.IntentRequest) (*ai.IntentDecision, error) {
	m.callCount++

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, req)
	}

	lower := strings.ToLower(req.Text)
	switch {
	case req.InputType == "url":
		return ai.NewIntentDecision("ingestion", "ingest_url", 0.99, "mock: url input")
	case strings.Contains(lower, "summarize") || strings.Contains(lower, "summary"):
		return ai.NewIntentDecision("summarization", "summarize_existing", 0.9, "mock: summary keyword")
	case strings.HasPrefix(lower, "what") || strings.HasPrefix(lower, "how") ||
		strings.HasPrefix(lower, "find") || strings.HasPrefix(lower, "search"):
		return ai.NewIntentDecision("query", "search", 0.9, "mock: question phrasing")
	default:
		return ai.NewIntentDecision("ingestion", "ingest_text", 0.8, "mock: default text")
	}
}

// CallCount returns the number of times Classify was called.
func (m *IntentClassifier) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *IntentClassifier) Reset() {
	m.callCount = 0
	m.ClassifyFunc = nil
}
