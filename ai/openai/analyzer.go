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
	"github.com/lorekeep/lorekeep/core"
	"github.com/tmc/langchaingo/llms"
)

// ContentAnalyzer implements ai.ContentAnalyzer using OpenAI-compatible chat APIs.
type ContentAnalyzer struct {
	client llms.Model
	logger *slog.Logger
}

// analysisResponse is an internal type used for JSON unmarshaling.
// Tags is deliberately loose: small models return tag lists in several
// shapes, and the normalizer accepts them all.
type analysisResponse struct {
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Tags        any      `json:"tags"`
	ContentType string   `json:"content_type"`
	KeyInsights []string `json:"key_insights"`
}

// newContentAnalyzer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newContentAnalyzer(config *ai.Config) (*ContentAnalyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := newChatClient(config)
	if err != nil {
		return nil, err
	}

	return &ContentAnalyzer{
		client: client,
		logger: slog.Default().With("component", "openai-analyzer"),
	}, nil
}

// NewContentAnalyzer creates a new content analyzer using the provided configuration.
//
// Returns ai.ContentAnalyzer interface to enforce abstraction.
func NewContentAnalyzer(config *ai.Config) (ai.ContentAnalyzer, error) {
	return newContentAnalyzer(config)
}

// Analyze generates structured metadata for content using the LLM.
// The returned tags are already canonical.
func (a *ContentAnalyzer) Analyze(ctx context.Context, titleHint, excerpt string) (*ai.ContentAnalysis, error) {
	systemPrompt := fmt.Sprintf(analysisPromptTemplate, analysisResponseSchema)

	userText := excerpt
	if titleHint != "" {
		userText = fmt.Sprintf("Title hint: %s\n\n%s", titleHint, excerpt)
	}

	var response analysisResponse
	if err := generateJSON(ctx, a.client, systemPrompt, userText, &response, a.logger); err != nil {
		return nil, err
	}

	analysis := &ai.ContentAnalysis{
		Title:       response.Title,
		Summary:     response.Summary,
		Tags:        core.NormalizeTags(response.Tags),
		ContentType: response.ContentType,
		KeyInsights: response.KeyInsights,
	}

	a.logger.Debug("analyzed content",
		"title", analysis.Title,
		"tags", len(analysis.Tags),
		"insights", len(analysis.KeyInsights))

	return analysis, nil
}
