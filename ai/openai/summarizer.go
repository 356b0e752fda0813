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

// Summarizer implements ai.Summarizer using OpenAI-compatible chat APIs.
// When the LLM call fails, it degrades to the extractive summarizer so
// that summarization never hard-fails on a model outage.
type Summarizer struct {
	client llms.Model
	logger *slog.Logger
}

// summaryResponse is an internal type used for JSON unmarshaling.
type summaryResponse struct {
	Summary string `json:"summary"`
	Tags    any    `json:"tags"`
}

// newSummarizer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSummarizer(config *ai.Config) (*Summarizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := newChatClient(config)
	if err != nil {
		return nil, err
	}

	return &Summarizer{
		client: client,
		logger: slog.Default().With("component", "openai-summarizer"),
	}, nil
}

// NewSummarizer creates a new summarizer using the provided configuration.
//
// Returns ai.Summarizer interface to enforce abstraction.
func NewSummarizer(config *ai.Config) (ai.Summarizer, error) {
	return newSummarizer(config)
}

// SummarizeAndTag produces a summary and tags via the LLM, falling back
// to extractive summarization if generation or parsing fails.
func (s *Summarizer) SummarizeAndTag(ctx context.Context, content string) (*ai.SummaryResult, error) {
	systemPrompt := fmt.Sprintf(summaryPromptTemplate, summaryResponseSchema)

	var response summaryResponse
	if err := generateJSON(ctx, s.client, systemPrompt, content, &response, s.logger); err != nil {
		s.logger.Warn("falling back to extractive summary", "err", err)
		return ai.ExtractiveSummarize(content), nil
	}

	return &ai.SummaryResult{
		Summary: response.Summary,
		Tags:    core.NormalizeTags(response.Tags),
	}, nil
}

// Available reports that a generation backend is configured.
func (s *Summarizer) Available() bool {
	return true
}
