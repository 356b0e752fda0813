package core

import (
	"time"
)

// ID is a unique identifier for persisted notes.
// IDs are assigned by the storage backend from a sequence on insert.
type ID uint64

// Note is the sole persisted entity: a unit of curated content with a
// generated summary, normalized tags, and a content embedding.
type Note struct {
	Id         ID
	Title      string
	Content    string    // authoritative body, written once at ingestion
	Summary    string    // generated or supplied; may be regenerated
	Tags       []string  // always NormalizeTags output, never raw
	Embedding  []float32 // fixed corpus-wide dimension, embedded from full Content
	SourceType string    // "url" or "text"
	SourceURL  string    // set for URL ingestion, empty otherwise
	CreatedAt  time.Time // set on insert, never mutated; ordering key for recency
}

// SearchResult pairs a note with a relevance score.
type SearchResult struct {
	Note  *Note
	Score float64
}

// NoteStats summarizes the corpus for the empty-input view.
type NoteStats struct {
	TotalNotes   int `json:"total_notes"`
	UniqueTags   int `json:"unique_tags"`
	TotalTagUses int `json:"total_tag_uses"`
}
