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
	"strings"

	"github.com/lorekeep/lorekeep/core"
	"github.com/lorekeep/lorekeep/search"
	"github.com/lorekeep/lorekeep/storage"
)

const (
	defaultSearchLimit  = 10
	defaultSimilarLimit = 5
	emptyInputRecents   = 5

	// Weight of the semantic component in hybrid searches.
	hybridSemanticWeight = 0.7

	emptyInputSuggestion = "Try a question, a URL to save, or text to remember."
)

// QueryHandler serves search, similarity, and recency requests over the
// note corpus.
type QueryHandler struct {
	engine *search.Engine
	notes  storage.NoteRepository
	logger *slog.Logger
}

var _ Handler = (*QueryHandler)(nil)

// NewQueryHandler creates a query handler.
func NewQueryHandler(engine *search.Engine, notes storage.NoteRepository) *QueryHandler {
	return &QueryHandler{
		engine: engine,
		notes:  notes,
		logger: slog.Default().With("component", "query-handler"),
	}
}

// Capabilities lists the supported actions.
func (h *QueryHandler) Capabilities() []string {
	return []string{"search", "find_similar", "get_recent", "empty_input"}
}

// Validate reports whether the input carries the fields the action requires.
func (h *QueryHandler) Validate(action string, input map[string]any) bool {
	switch action {
	case "search":
		return strings.TrimSpace(stringField(input, "query")) != ""
	case "find_similar":
		_, ok := idField(input, "note_id")
		return ok
	case "get_recent", "empty_input":
		return true
	default:
		return false
	}
}

// Process executes a query action.
func (h *QueryHandler) Process(ctx context.Context, action string, input map[string]any) *Result {
	switch action {
	case "search":
		return h.search(ctx, input)
	case "find_similar":
		return h.findSimilar(ctx, input)
	case "get_recent":
		return h.getRecent(ctx, input)
	case "empty_input":
		return h.emptyInput(ctx)
	default:
		return unknownAction("query", action)
	}
}

func (h *QueryHandler) search(ctx context.Context, input map[string]any) *Result {
	query := strings.TrimSpace(stringField(input, "query"))
	if query == "" {
		return failMsg("search requires a non-empty query")
	}

	searchType := stringField(input, "search_type")
	if searchType == "" {
		searchType = "semantic"
	}
	limit := intField(input, "limit", defaultSearchLimit)

	var views []map[string]any

	switch searchType {
	case "semantic":
		results, err := h.engine.Semantic(ctx, query, limit)
		if err != nil {
			return fail("semantic search", err)
		}
		for _, r := range results {
			views = append(views, scoredNoteView(r.Note, r.Score))
		}
	case "text":
		notes, err := h.engine.Lexical(ctx, query, limit)
		if err != nil {
			return fail("text search", err)
		}
		for _, n := range notes {
			views = append(views, noteView(n))
		}
	case "hybrid":
		results, err := h.engine.Hybrid(ctx, query, hybridSemanticWeight, limit)
		if err != nil {
			return fail("hybrid search", err)
		}
		for _, r := range results {
			views = append(views, scoredNoteView(r.Note, r.Score))
		}
	case "tags":
		// The query string is a comma-separated tag list
		tags := core.NormalizeTags(query)
		notes, err := h.engine.ByTags(ctx, tags, limit)
		if err != nil {
			return fail("tag search", err)
		}
		for _, n := range notes {
			views = append(views, noteView(n))
		}
	default:
		return failMsg("Unknown search type: " + searchType)
	}

	return succeed(map[string]any{
		"query":       query,
		"search_type": searchType,
		"results":     views,
		"count":       len(views),
	}, "")
}

func (h *QueryHandler) findSimilar(ctx context.Context, input map[string]any) *Result {
	id, ok := idField(input, "note_id")
	if !ok {
		return failMsg("find_similar requires note_id")
	}

	// Existence check so a missing note is reported, not silently empty
	origin, err := h.notes.GetNote(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return failMsg("note not found")
		}
		return fail("note lookup", err)
	}

	limit := intField(input, "limit", defaultSimilarLimit)
	results, err := h.engine.FindSimilar(ctx, id, limit)
	if err != nil {
		return fail("similarity search", err)
	}

	views := make([]map[string]any, 0, len(results))
	for _, r := range results {
		score := core.CosineSimilarity(origin.Embedding, r.Note.Embedding)
		views = append(views, scoredNoteView(r.Note, score))
	}

	return succeed(map[string]any{
		"note_id":       id,
		"similar_notes": views,
		"count":         len(views),
	}, "")
}

func (h *QueryHandler) getRecent(ctx context.Context, input map[string]any) *Result {
	limit := intField(input, "limit", defaultSearchLimit)

	notes, err := h.engine.Recent(ctx, limit)
	if err != nil {
		return fail("recent lookup", err)
	}

	views := make([]map[string]any, 0, len(notes))
	for _, n := range notes {
		views = append(views, noteView(n))
	}

	return succeed(map[string]any{
		"results": views,
		"count":   len(views),
	}, "")
}

func (h *QueryHandler) emptyInput(ctx context.Context) *Result {
	notes, err := h.engine.Recent(ctx, emptyInputRecents)
	if err != nil {
		return fail("recent lookup", err)
	}

	views := make([]map[string]any, 0, len(notes))
	for _, n := range notes {
		views = append(views, noteView(n))
	}

	stats, err := h.corpusStats(ctx)
	if err != nil {
		return fail("statistics", err)
	}

	return succeed(map[string]any{
		"recent_notes": views,
		"stats":        stats,
		"suggestion":   emptyInputSuggestion,
	}, "")
}

// corpusStats computes total notes, distinct tag count, and total tag uses.
func (h *QueryHandler) corpusStats(ctx context.Context) (*core.NoteStats, error) {
	total, err := h.notes.CountNotes(ctx)
	if err != nil {
		return nil, err
	}

	tagSets, err := h.notes.ListTagSets(ctx)
	if err != nil {
		return nil, err
	}

	distinct := make(map[string]bool)
	uses := 0
	for _, tags := range tagSets {
		for _, tag := range tags {
			distinct[tag] = true
			uses++
		}
	}

	return &core.NoteStats{
		TotalNotes:   total,
		UniqueTags:   len(distinct),
		TotalTagUses: uses,
	}, nil
}
