// Copyright 2026 Lorekeep Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package router

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lorekeep/lorekeep/ai"
)

// Agent types a decision can target.
const (
	AgentIngestion     = "ingestion"
	AgentQuery         = "query"
	AgentSummarization = "summarization"
)

// Actions the router emits.
const (
	ActionIngestURL         = "ingest_url"
	ActionIngestText        = "ingest_text"
	ActionSearch            = "search"
	ActionEmptyInput        = "empty_input"
	ActionSummarizeExisting = "summarize_existing"
)

// Input types detected before classification.
const (
	InputTypeURL  = "url"
	InputTypeText = "text"
)

// summarizationKeywords trigger the summarization fallback rule.
var summarizationKeywords = []string{"summarize", "summary", "brief", "overview"}

// questionKeywords trigger the query fallback rule.
var questionKeywords = []string{"what", "how", "where", "when", "who", "find", "search"}

// Decision is the router's output: which handler gets the input, with
// what action and payload. Transient; consumed immediately by the
// dispatcher, never stored.
type Decision struct {
	AgentType  string         `json:"agent_type"`
	Action     string         `json:"action"`
	InputData  map[string]any `json:"input_data"`
	Confidence float64        `json:"confidence"`
	Reasoning  string         `json:"reasoning"`
}

// Router classifies raw input into a Decision, using an external
// classifier as the primary path and a deterministic rule tree as
// fallback. A nil classifier routes everything through the fallback.
type Router struct {
	classifier ai.IntentClassifier
	logger     *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// NewRouter creates a router. The classifier may be nil, in which case
// only the deterministic fallback rules are used.
func NewRouter(classifier ai.IntentClassifier, opts ...Option) *Router {
	r := &Router{
		classifier: classifier,
		logger:     slog.Default().With("component", "router"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Route produces a Decision for the given raw input.
//
// Empty or whitespace-only input short-circuits to query/empty_input
// with confidence 1.0. Otherwise the input is typed (url vs text) and
// handed to the primary classifier; if that fails for any reason, the
// deterministic rule tree decides.
func (r *Router) Route(ctx context.Context, input string) *Decision {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &Decision{
			AgentType:  AgentQuery,
			Action:     ActionEmptyInput,
			InputData:  buildPayload(AgentQuery, ActionEmptyInput, "", InputTypeText),
			Confidence: 1.0,
			Reasoning:  "Empty input",
		}
	}

	inputType := detectInputType(trimmed)

	if r.classifier != nil {
		decision, err := r.classifier.Classify(ctx, ai.IntentRequest{
			Text:      trimmed,
			InputType: inputType,
		})
		if err == nil {
			r.logger.Debug("classifier routed input",
				"agent_type", decision.AgentType,
				"action", decision.Action,
				"confidence", decision.Confidence)
			return &Decision{
				AgentType:  decision.AgentType,
				Action:     decision.Action,
				InputData:  buildPayload(decision.AgentType, decision.Action, trimmed, inputType),
				Confidence: decision.Confidence,
				Reasoning:  decision.Reasoning,
			}
		}
		r.logger.Warn("classifier failed, using fallback rules", "err", err)
	}

	return r.fallback(trimmed, inputType)
}

// fallback applies the deterministic rule tree.
func (r *Router) fallback(input, inputType string) *Decision {
	lower := strings.ToLower(input)

	switch inputType {
	case InputTypeURL:
		return r.decide(AgentIngestion, ActionIngestURL, input, inputType, 0.95,
			"Input is a URL")
	case InputTypeText:
		if containsAny(lower, summarizationKeywords) {
			return r.decide(AgentSummarization, ActionSummarizeExisting, input, inputType, 0.8,
				"Summarization keyword present")
		}
		if containsAny(lower, questionKeywords) {
			return r.decide(AgentQuery, ActionSearch, input, inputType, 0.9,
				"Question keyword present")
		}
		return r.decide(AgentIngestion, ActionIngestText, input, inputType, 0.85,
			"Default: treat text as content to store")
	}

	// Unknown input type: final catch-all
	return r.decide(AgentQuery, ActionSearch, input, inputType, 0.5,
		"Fallback of last resort")
}

func (r *Router) decide(agentType, action, input, inputType string, confidence float64, reasoning string) *Decision {
	r.logger.Debug("fallback routed input",
		"agent_type", agentType,
		"action", action,
		"confidence", confidence)
	return &Decision{
		AgentType:  agentType,
		Action:     action,
		InputData:  buildPayload(agentType, action, input, inputType),
		Confidence: confidence,
		Reasoning:  reasoning,
	}
}

// detectInputType classifies trimmed input as a URL or plain text.
func detectInputType(input string) string {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return InputTypeURL
	}
	return InputTypeText
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// ValidateDecision checks a decision before dispatch: all fields
// present, a known agent type, and confidence within [0, 1].
func ValidateDecision(d *Decision) error {
	if d == nil {
		return fmt.Errorf("routing decision is nil")
	}
	switch d.AgentType {
	case AgentIngestion, AgentQuery, AgentSummarization:
	default:
		return fmt.Errorf("unknown agent type: %q", d.AgentType)
	}
	if d.Action == "" {
		return fmt.Errorf("routing decision missing action")
	}
	if d.InputData == nil {
		return fmt.Errorf("routing decision missing input data")
	}
	if d.Confidence < 0 || d.Confidence > 1 {
		return fmt.Errorf("confidence %v out of range [0,1]", d.Confidence)
	}
	return nil
}
