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
	"log/slog"
	"strings"

	"github.com/lorekeep/lorekeep/ai"
	"github.com/lorekeep/lorekeep/core"
	"github.com/lorekeep/lorekeep/fetch"
	"github.com/lorekeep/lorekeep/search"
	"github.com/lorekeep/lorekeep/storage"
)

const (
	// Analysis sees at most this much of the content. The embedding is
	// always generated over the full content.
	analysisExcerptLimit = 4000

	fallbackTitleLimit   = 80
	fallbackSummaryLimit = 200

	similarNotesLimit = 3
)

// IngestionHandler stores new content: fetch (for URLs), analyze, embed,
// persist, and surface related notes.
type IngestionHandler struct {
	analyzer ai.ContentAnalyzer
	embedder ai.Embedder
	notes    storage.NoteRepository
	engine   *search.Engine
	fetcher  fetch.Fetcher
	logger   *slog.Logger
}

var _ Handler = (*IngestionHandler)(nil)

// NewIngestionHandler creates an ingestion handler.
func NewIngestionHandler(
	analyzer ai.ContentAnalyzer,
	embedder ai.Embedder,
	notes storage.NoteRepository,
	engine *search.Engine,
	fetcher fetch.Fetcher,
) *IngestionHandler {
	return &IngestionHandler{
		analyzer: analyzer,
		embedder: embedder,
		notes:    notes,
		engine:   engine,
		fetcher:  fetcher,
		logger:   slog.Default().With("component", "ingestion-handler"),
	}
}

// Capabilities lists the supported actions.
func (h *IngestionHandler) Capabilities() []string {
	return []string{"ingest_url", "ingest_text"}
}

// Validate reports whether the input carries the fields the action requires.
func (h *IngestionHandler) Validate(action string, input map[string]any) bool {
	switch action {
	case "ingest_url":
		return strings.TrimSpace(stringField(input, "url")) != ""
	case "ingest_text":
		return strings.TrimSpace(stringField(input, "content")) != ""
	default:
		return false
	}
}

// Process executes an ingestion action.
func (h *IngestionHandler) Process(ctx context.Context, action string, input map[string]any) *Result {
	switch action {
	case "ingest_url":
		return h.ingestURL(ctx, input)
	case "ingest_text":
		return h.ingestText(ctx, input)
	default:
		return unknownAction("ingestion", action)
	}
}

func (h *IngestionHandler) ingestURL(ctx context.Context, input map[string]any) *Result {
	url := strings.TrimSpace(stringField(input, "url"))
	if url == "" {
		return failMsg("ingest_url requires a url")
	}

	title, content, err := h.fetcher.Fetch(ctx, url)
	if err != nil {
		return fail("fetch", err)
	}
	if strings.TrimSpace(content) == "" {
		return failMsg("no content could be extracted from " + url)
	}

	// The router payload may carry a user-supplied title
	if given := strings.TrimSpace(stringField(input, "title")); given != "" {
		title = given
	}

	return h.ingest(ctx, title, content, "url", url)
}

func (h *IngestionHandler) ingestText(ctx context.Context, input map[string]any) *Result {
	content := strings.TrimSpace(stringField(input, "content"))
	if content == "" {
		return failMsg("ingest_text requires content")
	}

	title := strings.TrimSpace(stringField(input, "title"))

	return h.ingest(ctx, title, content, "text", "")
}

// ingest is the shared pipeline: analyze, normalize tags, embed the full
// content, persist, then look up related notes.
func (h *IngestionHandler) ingest(ctx context.Context, givenTitle, content, sourceType, sourceURL string) *Result {
	analysis := h.analyze(ctx, givenTitle, content)

	tags := core.NormalizeTags(analysis.Tags)

	embedding, err := h.embedder.EmbedText(ctx, content)
	if err != nil {
		return fail("embedding", err)
	}

	note := &core.Note{
		Title:      analysis.Title,
		Content:    content,
		Summary:    analysis.Summary,
		Tags:       tags,
		Embedding:  embedding,
		SourceType: sourceType,
		SourceURL:  sourceURL,
	}

	if err := core.ValidateNote(note); err != nil {
		return fail("validation", err)
	}

	stored, err := h.notes.Insert(ctx, note)
	if err != nil {
		return fail("storage", err)
	}

	similar, err := h.engine.FindSimilar(ctx, stored.Id, similarNotesLimit)
	if err != nil {
		return fail("similar lookup", err)
	}

	similarViews := make([]map[string]any, 0, len(similar))
	for _, r := range similar {
		similarViews = append(similarViews, scoredNoteView(r.Note, r.Score))
	}

	h.logger.Info("ingested note",
		"id", stored.Id,
		"source_type", sourceType,
		"tags", len(tags),
		"similar", len(similarViews))

	return succeed(map[string]any{
		"note": noteView(stored),
		"analysis": map[string]any{
			"content_type": analysis.ContentType,
			"key_insights": analysis.KeyInsights,
		},
		"similar_notes": similarViews,
	}, "Note stored")
}

// analyze runs the content analyzer over a bounded excerpt, degrading to
// truncation-based metadata when the analyzer fails.
func (h *IngestionHandler) analyze(ctx context.Context, givenTitle, content string) *ai.ContentAnalysis {
	excerpt := truncateRunes(content, analysisExcerptLimit)

	analysis, err := h.analyzer.Analyze(ctx, givenTitle, excerpt)
	if err == nil && analysis != nil {
		if analysis.Title == "" {
			analysis.Title = fallbackTitle(givenTitle, content)
		}
		return analysis
	}

	h.logger.Warn("content analysis failed, using truncation fallback", "err", err)

	summary := truncateRunes(content, fallbackSummaryLimit)

	return &ai.ContentAnalysis{
		Title:       fallbackTitle(givenTitle, content),
		Summary:     summary,
		Tags:        []string{},
		ContentType: "text",
		KeyInsights: []string{},
	}
}

func fallbackTitle(givenTitle, content string) string {
	if givenTitle != "" {
		return givenTitle
	}
	return truncateRunes(content, fallbackTitleLimit)
}
