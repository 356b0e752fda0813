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


package ai

import (
	"context"
	"strings"

	"github.com/lorekeep/lorekeep/core"
)

const (
	extractiveSentenceCount = 3
	extractiveWordCap       = 180
	extractiveTagCount      = 8

	insightSentenceWindow = 10
	insightMinLength      = 20
	insightMaxLength      = 200
)

// insightIndicators mark sentences likely to carry the point of a text.
var insightIndicators = []string{
	"important", "key", "main", "primary", "significant", "crucial", "essential",
}

// SplitSentences splits text into sentences on terminal punctuation.
// Empty fragments are dropped.
func SplitSentences(text string) []string {
	var sentences []string
	var sb strings.Builder
	for _, r := range text {
		sb.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			s := strings.TrimSpace(sb.String())
			if s != "" {
				sentences = append(sentences, s)
			}
			sb.Reset()
		}
	}
	if s := strings.TrimSpace(sb.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// ExtractiveSummarize builds a summary and tags without a generation
// backend: the first few sentences capped at a word budget, plus the
// most frequent content words as tags.
func ExtractiveSummarize(content string) *SummaryResult {
	sentences := SplitSentences(content)
	if len(sentences) > extractiveSentenceCount {
		sentences = sentences[:extractiveSentenceCount]
	}

	summary := strings.Join(sentences, " ")
	words := strings.Fields(summary)
	if len(words) > extractiveWordCap {
		summary = strings.Join(words[:extractiveWordCap], " ")
	}

	return &SummaryResult{
		Summary: summary,
		Tags:    core.ExtractKeywords(content, extractiveTagCount),
	}
}

// KeyInsights scans the leading sentences of content for indicator words
// and returns up to max sentences of reasonable length.
func KeyInsights(content string, max int) []string {
	sentences := SplitSentences(content)
	if len(sentences) > insightSentenceWindow {
		sentences = sentences[:insightSentenceWindow]
	}

	var insights []string
	for _, sentence := range sentences {
		if len(insights) >= max {
			break
		}
		if len(sentence) <= insightMinLength || len(sentence) >= insightMaxLength {
			continue
		}
		lower := strings.ToLower(sentence)
		for _, indicator := range insightIndicators {
			if strings.Contains(lower, indicator) {
				insights = append(insights, sentence)
				break
			}
		}
	}
	return insights
}

// ExtractiveSummarizer implements Summarizer with no generation backend.
// Used when no chat service is configured.
type ExtractiveSummarizer struct{}

var _ Summarizer = (*ExtractiveSummarizer)(nil)

// NewExtractiveSummarizer creates a summarizer backed only by extraction.
func NewExtractiveSummarizer() *ExtractiveSummarizer {
	return &ExtractiveSummarizer{}
}

// SummarizeAndTag produces an extractive summary and frequency-based tags.
func (s *ExtractiveSummarizer) SummarizeAndTag(ctx context.Context, content string) (*SummaryResult, error) {
	return ExtractiveSummarize(content), nil
}

// Available reports that no generation backend is configured.
func (s *ExtractiveSummarizer) Available() bool {
	return false
}
