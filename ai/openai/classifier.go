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


package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lorekeep/lorekeep/ai"
	"github.com/tmc/langchaingo/llms"
)

// IntentClassifier implements ai.IntentClassifier using OpenAI-compatible chat APIs.
type IntentClassifier struct {
	client llms.Model
	logger *slog.Logger
}

// intentResponse is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type intentResponse struct {
	AgentType  string  `json:"agent_type"`
	Action     string  `json:"action"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// newIntentClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newIntentClassifier(config *ai.Config) (*IntentClassifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := newChatClient(config)
	if err != nil {
		return nil, err
	}

	return &IntentClassifier{
		client: client,
		logger: slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewIntentClassifier creates a new intent classifier using the provided configuration.
//
// Returns ai.IntentClassifier interface to enforce abstraction.
func NewIntentClassifier(config *ai.Config) (ai.IntentClassifier, error) {
	return newIntentClassifier(config)
}

// Classify routes a raw input string using the LLM. Confidence values
// outside [0,1] are rejected at the boundary, which callers treat as a
// classifier failure.
func (c *IntentClassifier) Classify(ctx context.Context, req ai.IntentRequest) (*ai.IntentDecision, error) {
	systemPrompt := fmt.Sprintf(intentPromptTemplate, intentResponseSchema)
	userText := fmt.Sprintf("Input type: %s\nInput: %s", req.InputType, req.Text)

	var response intentResponse
	if err := generateJSON(ctx, c.client, systemPrompt, userText, &response, c.logger); err != nil {
		return nil, err
	}

	decision, err := ai.NewIntentDecision(response.AgentType, response.Action, response.Confidence, response.Reasoning)
	if err != nil {
		c.logger.Warn("classifier returned invalid decision",
			"agent_type", response.AgentType,
			"confidence", response.Confidence,
			"err", err)
		return nil, err
	}

	c.logger.Debug("classified input",
		"agent_type", decision.AgentType,
		"action", decision.Action,
		"confidence", decision.Confidence)

	return decision, nil
}
