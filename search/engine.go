package search

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lorekeep/lorekeep/ai"
	"github.com/lorekeep/lorekeep/core"
	"github.com/lorekeep/lorekeep/storage"
)

// Engine provides retrieval over the note corpus: semantic, lexical,
// tag-based, and hybrid search, plus similar-note lookup and recency.
// The engine holds no state of its own; it operates over the store's
// query interface and an embedding capability.
type Engine struct {
	notes    storage.NoteRepository
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a new retrieval engine.
func NewEngine(notes storage.NoteRepository, embedder ai.Embedder, opts ...Option) (*Engine, error) {
	if notes == nil {
		return nil, ErrNoteRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	e := &Engine{
		notes:    notes,
		embedder: embedder,
		logger:   slog.Default().With("component", "search-engine"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Semantic embeds the query text and returns the topK nearest notes by
// cosine similarity, nearest first.
func (e *Engine) Semantic(ctx context.Context, query string, topK int) ([]*core.SearchResult, error) {
	embedding, err := e.embedder.EmbedText(ctx, query)
	if err != nil {
		e.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	results, err := e.notes.NearestByVector(ctx, embedding, topK)
	if err != nil {
		e.logger.Error("error querying for similar notes", "err", err)
		return nil, err
	}

	return results, nil
}

// Lexical returns up to topK notes whose title, content, or summary
// contains the query text, matched case-insensitively.
func (e *Engine) Lexical(ctx context.Context, query string, topK int) ([]*core.Note, error) {
	notes, err := e.notes.SearchText(ctx, query, topK)
	if err != nil {
		e.logger.Error("error in lexical search", "query", query, "err", err)
		return nil, err
	}
	return notes, nil
}

// ByTags returns up to topK notes whose tag set intersects the given
// tags (any match).
func (e *Engine) ByTags(ctx context.Context, tags []string, topK int) ([]*core.Note, error) {
	notes, err := e.notes.GetByTagOverlap(ctx, tags)
	if err != nil {
		e.logger.Error("error in tag search", "tags", tags, "err", err)
		return nil, err
	}
	if topK > 0 && len(notes) > topK {
		notes = notes[:topK]
	}
	return notes, nil
}

// FindSimilar returns up to topK notes nearest to the given note's own
// embedding, excluding the note itself. A missing note yields an empty
// result, not an error; callers that need to distinguish absence do a
// separate existence check.
func (e *Engine) FindSimilar(ctx context.Context, id core.ID, topK int) ([]*core.SearchResult, error) {
	note, err := e.notes.GetNote(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []*core.SearchResult{}, nil
		}
		return nil, err
	}

	matches, err := e.notes.NearestByVector(ctx, note.Embedding, topK+1)
	if err != nil {
		e.logger.Error("error querying for similar notes", "id", id, "err", err)
		return nil, err
	}

	results := make([]*core.SearchResult, 0, topK)
	for _, match := range matches {
		if match.Note.Id == id {
			continue
		}
		results = append(results, match)
		if len(results) == topK {
			break
		}
	}

	return results, nil
}

// Recent returns up to limit notes ordered by creation time descending.
func (e *Engine) Recent(ctx context.Context, limit int) ([]*core.Note, error) {
	return e.notes.GetRecent(ctx, limit)
}
