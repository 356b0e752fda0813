package storage

import (
	"context"
	"time"

	"github.com/lorekeep/lorekeep/core"
)

// Repository provides common storage operations shared by all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// NoteRepository provides operations for managing and querying notes.
// It is the sole persistence surface the retrieval engine and the
// capability handlers depend on.
type NoteRepository interface {
	Repository

	// Insert persists a note, assigning a new ID from the store sequence
	// and setting CreatedAt if unset. Returns the note with ID and
	// timestamp populated.
	Insert(ctx context.Context, note *core.Note) (*core.Note, error)

	// GetNote retrieves a single note by ID.
	// Returns ErrNotFound if the note doesn't exist.
	GetNote(ctx context.Context, id core.ID) (*core.Note, error)

	// GetNotes retrieves multiple notes by their IDs.
	// Returns only the notes that exist (no error for missing notes).
	GetNotes(ctx context.Context, ids ...core.ID) ([]*core.Note, error)

	// UpdateNotes updates existing notes in place.
	// Returns ErrNotFound if any note doesn't exist.
	UpdateNotes(ctx context.Context, notes ...*core.Note) ([]*core.Note, error)

	// DeleteNotes removes notes by their IDs, including index entries.
	// Returns ErrNotFound if any note doesn't exist.
	DeleteNotes(ctx context.Context, ids ...core.ID) error

	// GetByTagOverlap returns notes whose tag set intersects the given
	// tags (any match). Order is implementation-defined.
	GetByTagOverlap(ctx context.Context, tags []string) ([]*core.Note, error)

	// GetRecent returns up to limit notes ordered by CreatedAt descending.
	GetRecent(ctx context.Context, limit int) ([]*core.Note, error)

	// GetNotesByDateRange returns notes where start <= CreatedAt < end,
	// ordered by creation time ascending.
	GetNotesByDateRange(ctx context.Context, start, end time.Time) ([]*core.Note, error)

	// SearchText returns up to limit notes whose title, content, or
	// summary contains the pattern, matched case-insensitively.
	SearchText(ctx context.Context, pattern string, limit int) ([]*core.Note, error)

	// NearestByVector returns the k notes whose embeddings are nearest to
	// the query vector by cosine similarity, nearest first, with scores.
	NearestByVector(ctx context.Context, vector []float32, k int) ([]*core.SearchResult, error)

	// CountNotes returns the total number of persisted notes.
	CountNotes(ctx context.Context) (int, error)

	// ListTagSets returns the tag list of every persisted note.
	// Used for corpus statistics.
	ListTagSets(ctx context.Context) ([][]string, error)
}
