package ai

import "fmt"

// IntentRequest carries the raw input handed to the intent classifier.
type IntentRequest struct {
	// Text is the raw user input, already trimmed.
	Text string

	// InputType is the detected shape of the input: "url", "text", or
	// "question". It is a hint derived before classification.
	InputType string
}

// IntentDecision is the classifier's verdict on where an input should go.
type IntentDecision struct {
	AgentType  string
	Action     string
	Confidence float64
	Reasoning  string
}

// NewIntentDecision constructs an IntentDecision, rejecting confidence
// values outside [0, 1] at the boundary.
func NewIntentDecision(agentType, action string, confidence float64, reasoning string) (*IntentDecision, error) {
	if confidence < 0 || confidence > 1 {
		return nil, fmt.Errorf("intent decision: confidence %v out of range [0,1]", confidence)
	}
	return &IntentDecision{
		AgentType:  agentType,
		Action:     action,
		Confidence: confidence,
		Reasoning:  reasoning,
	}, nil
}

// ContentAnalysis is the structured metadata produced for ingested content.
type ContentAnalysis struct {
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Tags        []string `json:"tags"`
	ContentType string   `json:"content_type"`
	KeyInsights []string `json:"key_insights"`
}

// SummaryResult is the output of the summarize-and-tag service.
type SummaryResult struct {
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}
