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


package agents

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/lorekeep/lorekeep/ai"
	"github.com/lorekeep/lorekeep/core"
	"github.com/lorekeep/lorekeep/search"
	"github.com/lorekeep/lorekeep/storage"
)

const (
	relatedNotesLimit = 3
	keyInsightsLimit  = 3
	trendNotesLimit   = 20
	trendTopTags      = 10
)

// themeBuckets map coarse themes to indicator keywords for trend analysis.
var themeBuckets = map[string][]string{
	"technology":   {"software", "code", "programming", "computer", "data", "api", "model"},
	"learning":     {"learn", "study", "course", "tutorial", "education", "practice"},
	"productivity": {"productivity", "workflow", "habit", "organize", "plan", "schedule"},
	"research":     {"research", "science", "experiment", "paper", "analysis"},
}

// SummarizationHandler condenses content and relates it to the corpus.
type SummarizationHandler struct {
	summarizer ai.Summarizer
	engine     *search.Engine
	notes      storage.NoteRepository
	logger     *slog.Logger
}

var _ Handler = (*SummarizationHandler)(nil)

// NewSummarizationHandler creates a summarization handler.
func NewSummarizationHandler(summarizer ai.Summarizer, engine *search.Engine, notes storage.NoteRepository) *SummarizationHandler {
	return &SummarizationHandler{
		summarizer: summarizer,
		engine:     engine,
		notes:      notes,
		logger:     slog.Default().With("component", "summarization-handler"),
	}
}

// Capabilities lists the supported actions.
func (h *SummarizationHandler) Capabilities() []string {
	return []string{"summarize_existing", "generate_summary", "analyze_trends"}
}

// Validate reports whether the input carries the fields the action requires.
func (h *SummarizationHandler) Validate(action string, input map[string]any) bool {
	switch action {
	case "summarize_existing":
		return strings.TrimSpace(stringField(input, "content")) != ""
	case "generate_summary":
		if strings.TrimSpace(stringField(input, "content")) != "" {
			return true
		}
		_, ok := idField(input, "note_id")
		return ok
	case "analyze_trends":
		return true
	default:
		return false
	}
}

// Process executes a summarization action.
func (h *SummarizationHandler) Process(ctx context.Context, action string, input map[string]any) *Result {
	switch action {
	case "summarize_existing":
		return h.summarizeExisting(ctx, input)
	case "generate_summary":
		return h.generateSummary(ctx, input)
	case "analyze_trends":
		return h.analyzeTrends(ctx, input)
	default:
		return unknownAction("summarization", action)
	}
}

func (h *SummarizationHandler) summarizeExisting(ctx context.Context, input map[string]any) *Result {
	content := strings.TrimSpace(stringField(input, "content"))
	if content == "" {
		return failMsg("summarize_existing requires content")
	}

	summary, err := h.summarizer.SummarizeAndTag(ctx, content)
	if err != nil {
		return fail("summarization", err)
	}

	// Relate the content to the corpus: semantic candidates, scored by
	// lexical word overlap rather than cosine.
	related, err := h.engine.Semantic(ctx, content, relatedNotesLimit)
	if err != nil {
		return fail("related lookup", err)
	}

	relatedViews := make([]map[string]any, 0, len(related))
	for _, r := range related {
		relevance := search.WordOverlap(content, r.Note.Content)
		relatedViews = append(relatedViews, scoredNoteView(r.Note, relevance))
	}

	return succeed(map[string]any{
		"summary":       summary.Summary,
		"tags":          core.NormalizeTags(summary.Tags),
		"related_notes": relatedViews,
	}, "")
}

func (h *SummarizationHandler) generateSummary(ctx context.Context, input map[string]any) *Result {
	content := strings.TrimSpace(stringField(input, "content"))

	if content == "" {
		id, ok := idField(input, "note_id")
		if !ok {
			return failMsg("generate_summary requires content or note_id")
		}
		note, err := h.notes.GetNote(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return failMsg("note not found")
			}
			return fail("note lookup", err)
		}
		content = note.Content
	}

	summary, err := h.summarizer.SummarizeAndTag(ctx, content)
	if err != nil {
		return fail("summarization", err)
	}

	return succeed(map[string]any{
		"summary":      summary.Summary,
		"tags":         core.NormalizeTags(summary.Tags),
		"key_insights": ai.KeyInsights(content, keyInsightsLimit),
	}, "")
}

// analyzeTrends computes tag frequency and naive theme scores over the
// most recent notes.
func (h *SummarizationHandler) analyzeTrends(ctx context.Context, input map[string]any) *Result {
	limit := intField(input, "limit", trendNotesLimit)

	notes, err := h.engine.Recent(ctx, limit)
	if err != nil {
		return fail("recent lookup", err)
	}

	tagCounts := make(map[string]int)
	themeScores := make(map[string]int)
	for _, note := range notes {
		for _, tag := range note.Tags {
			tagCounts[tag]++
		}
		lower := strings.ToLower(note.Content)
		for theme, keywords := range themeBuckets {
			for _, keyword := range keywords {
				if strings.Contains(lower, keyword) {
					themeScores[theme]++
					break
				}
			}
		}
	}

	type tagCount struct {
		Tag   string `json:"tag"`
		Count int    `json:"count"`
	}
	topTags := make([]tagCount, 0, len(tagCounts))
	for tag, count := range tagCounts {
		topTags = append(topTags, tagCount{Tag: tag, Count: count})
	}
	sort.Slice(topTags, func(i, j int) bool {
		if topTags[i].Count != topTags[j].Count {
			return topTags[i].Count > topTags[j].Count
		}
		return topTags[i].Tag < topTags[j].Tag
	})
	if len(topTags) > trendTopTags {
		topTags = topTags[:trendTopTags]
	}

	return succeed(map[string]any{
		"notes_analyzed": len(notes),
		"top_tags":       topTags,
		"theme_scores":   themeScores,
	}, "")
}
