package router

import (
	"context"
	"errors"
	"testing"

	"github.com/lorekeep/lorekeep/ai"
	"github.com/lorekeep/lorekeep/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingClassifier forces every Route call onto the fallback path.
func failingClassifier() *mock.IntentClassifier {
	c := mock.NewIntentClassifier()
	c.ClassifyFunc = func(ctx context.Context, req ai.IntentRequest) (*ai.IntentDecision, error) {
		return nil, errors.New("model unreachable")
	}
	return c
}

func TestRouteEmptyInput(t *testing.T) {
	r := NewRouter(nil)

	for _, input := range []string{"", "   ", "\n\t"} {
		d := r.Route(context.Background(), input)
		assert.Equal(t, AgentQuery, d.AgentType)
		assert.Equal(t, ActionEmptyInput, d.Action)
		assert.Equal(t, 1.0, d.Confidence)
	}
}

func TestRoutePrimaryClassifier(t *testing.T) {
	classifier := mock.NewIntentClassifier()
	classifier.ClassifyFunc = func(ctx context.Context, req ai.IntentRequest) (*ai.IntentDecision, error) {
		return ai.NewIntentDecision(AgentQuery, ActionSearch, 0.97, "looks like a question")
	}
	r := NewRouter(classifier)

	d := r.Route(context.Background(), "where are my gardening notes")
	assert.Equal(t, AgentQuery, d.AgentType)
	assert.Equal(t, ActionSearch, d.Action)
	assert.Equal(t, 0.97, d.Confidence)
	assert.Equal(t, "where are my gardening notes", d.InputData["query"])
	assert.Equal(t, "semantic", d.InputData["search_type"])
	assert.Equal(t, 1, classifier.CallCount())
}

func TestRouteFallbackURL(t *testing.T) {
	r := NewRouter(failingClassifier())

	d := r.Route(context.Background(), "https://x.com")
	assert.Equal(t, AgentIngestion, d.AgentType)
	assert.Equal(t, ActionIngestURL, d.Action)
	assert.Equal(t, 0.95, d.Confidence)
	assert.Equal(t, "https://x.com", d.InputData["url"])
}

func TestRouteFallbackSummarization(t *testing.T) {
	r := NewRouter(failingClassifier())

	d := r.Route(context.Background(), "please Summarize my notes on baking")
	assert.Equal(t, AgentSummarization, d.AgentType)
	assert.Equal(t, ActionSummarizeExisting, d.Action)
	assert.Equal(t, 0.8, d.Confidence)
	assert.Equal(t, "please Summarize my notes on baking", d.InputData["content"])
}

func TestRouteFallbackQuestion(t *testing.T) {
	r := NewRouter(failingClassifier())

	d := r.Route(context.Background(), "where did I put the sourdough recipe")
	assert.Equal(t, AgentQuery, d.AgentType)
	assert.Equal(t, ActionSearch, d.Action)
	assert.Equal(t, 0.9, d.Confidence)
}

func TestRouteFallbackDefaultText(t *testing.T) {
	r := NewRouter(failingClassifier())

	d := r.Route(context.Background(), "Baked a rye loaf today, crumb turned out dense.")
	assert.Equal(t, AgentIngestion, d.AgentType)
	assert.Equal(t, ActionIngestText, d.Action)
	assert.Equal(t, 0.85, d.Confidence)
	assert.Equal(t, "Baked a rye loaf today, crumb turned out dense.", d.InputData["content"])
}

func TestRouteFallbackOrder(t *testing.T) {
	// Summarization rule fires before the question rule
	r := NewRouter(failingClassifier())

	d := r.Route(context.Background(), "what is a good summary of my notes")
	assert.Equal(t, AgentSummarization, d.AgentType)
}

func TestRouteNilClassifierUsesFallback(t *testing.T) {
	r := NewRouter(nil)

	d := r.Route(context.Background(), "https://example.com/post")
	assert.Equal(t, ActionIngestURL, d.Action)
	assert.Equal(t, 0.95, d.Confidence)
}

func TestValidateDecision(t *testing.T) {
	valid := &Decision{
		AgentType:  AgentQuery,
		Action:     ActionSearch,
		InputData:  map[string]any{"query": "q"},
		Confidence: 0.9,
	}
	require.NoError(t, ValidateDecision(valid))

	tests := []struct {
		name   string
		modify func(*Decision)
	}{
		{"unknown agent type", func(d *Decision) { d.AgentType = "archivist" }},
		{"missing action", func(d *Decision) { d.Action = "" }},
		{"missing input data", func(d *Decision) { d.InputData = nil }},
		{"confidence too high", func(d *Decision) { d.Confidence = 1.5 }},
		{"confidence negative", func(d *Decision) { d.Confidence = -0.2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := *valid
			d.InputData = map[string]any{"query": "q"}
			tt.modify(&d)
			assert.Error(t, ValidateDecision(&d))
		})
	}

	assert.Error(t, ValidateDecision(nil))
}

func TestBuildPayloadShapes(t *testing.T) {
	p := buildPayload(AgentIngestion, ActionIngestURL, "https://a.dev", InputTypeURL)
	assert.Equal(t, "https://a.dev", p["url"])
	assert.Contains(t, p, "title")
	assert.Contains(t, p, "content")

	p = buildPayload(AgentQuery, ActionEmptyInput, "", InputTypeText)
	assert.Equal(t, map[string]any{"input_type": InputTypeText}, p)

	p = buildPayload(AgentSummarization, ActionSummarizeExisting, "some text", InputTypeText)
	assert.Equal(t, "some text", p["content"])

	// Unrecognized combination falls back to base metadata
	p = buildPayload(AgentQuery, "unknown_action", "x", InputTypeText)
	assert.Equal(t, map[string]any{"input_type": InputTypeText}, p)
}
