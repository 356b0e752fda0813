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


package badger

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/lorekeep/lorekeep/core"
	"github.com/lorekeep/lorekeep/storage"
)

// NoteRepository implements storage.NoteRepository for BadgerDB.
type NoteRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.NoteRepository = (*NoteRepository)(nil)

// NewNoteRepository creates a new NoteRepository.
func NewNoteRepository(backend *Backend) (*NoteRepository, error) {
	idSeq, err := backend.GetSequence(noteIDSeq)
	if err != nil {
		return nil, err
	}

	return &NoteRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *NoteRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *NoteRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// Insert persists a note, assigning a new ID from the sequence.
func (r *NoteRepository) Insert(ctx context.Context, note *core.Note) (*core.Note, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Always generate new ID from sequence
		nextID, err := r.idSeq.Next()
		if err != nil {
			return err
		}
		// BadgerDB sequences can return 0 on first call, so we skip it
		if nextID == 0 {
			nextID, err = r.idSeq.Next()
			if err != nil {
				return err
			}
		}
		note.Id = core.ID(nextID)

		if note.CreatedAt.IsZero() {
			note.CreatedAt = time.Now().UTC()
		}

		// Store primary record
		key := makeNoteKey(note.Id)
		value := storage.MarshalNote(note)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		// Update date index
		dateKey := makeNoteDateKey(note.CreatedAt, note.Id)
		if err := tx.Set(dateKey, storage.MarshalID(note.Id)); err != nil {
			return err
		}

		// Update tag index
		if err := r.updateTagIndex(tx, note); err != nil {
			return err
		}

		return tx.Commit()
	}, true)

	return note, err
}

// GetNote retrieves a single note by ID.
func (r *NoteRepository) GetNote(ctx context.Context, id core.ID) (*core.Note, error) {
	var result *core.Note
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeNoteKey(id)
		var err error
		result, err = r.readNote(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetNotes retrieves multiple notes by their IDs.
func (r *NoteRepository) GetNotes(ctx context.Context, ids ...core.ID) ([]*core.Note, error) {
	var result []*core.Note
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeNoteKey(id)
			note, err := r.readNote(tx, key)
			if err != nil {
				return err
			}
			if note != nil {
				result = append(result, note)
			}
		}
		return nil
	}, false)
	return result, err
}

// UpdateNotes updates existing notes.
func (r *NoteRepository) UpdateNotes(ctx context.Context, notes ...*core.Note) ([]*core.Note, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, note := range notes {
			key := makeNoteKey(note.Id)

			// Read old note to detect index changes
			old, err := r.readNote(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			// Store updated note
			value := storage.MarshalNote(note)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update date index if timestamp changed
			if !old.CreatedAt.Equal(note.CreatedAt) {
				oldDateKey := makeNoteDateKey(old.CreatedAt, old.Id)
				if err := tx.Delete(oldDateKey); err != nil {
					return err
				}
				newDateKey := makeNoteDateKey(note.CreatedAt, note.Id)
				if err := tx.Set(newDateKey, storage.MarshalID(note.Id)); err != nil {
					return err
				}
			}

			// Update tag index if tags changed
			if !slices.Equal(old.Tags, note.Tags) {
				if err := r.deleteTagIndex(tx, old); err != nil {
					return err
				}
				if err := r.updateTagIndex(tx, note); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return notes, err
}

// DeleteNotes removes notes by their IDs.
func (r *NoteRepository) DeleteNotes(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeNoteKey(id)

			// Read note to get metadata for index cleanup
			note, err := r.readNote(tx, key)
			if err != nil {
				return err
			}
			if note == nil {
				return storage.ErrNotFound
			}

			// Delete from date index
			dateKey := makeNoteDateKey(note.CreatedAt, note.Id)
			if err := tx.Delete(dateKey); err != nil {
				return err
			}

			// Delete from tag index
			if err := r.deleteTagIndex(tx, note); err != nil {
				return err
			}

			// Delete primary record
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetByTagOverlap returns notes whose tag set intersects the given tags.
func (r *NoteRepository) GetByTagOverlap(ctx context.Context, tags []string) ([]*core.Note, error) {
	seen := make(map[core.ID]bool)
	var results []*core.Note

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, tag := range tags {
			startKey := makePartialNoteTagKey(tag)
			iter := tx.NewIterator(badger.DefaultIteratorOptions)

			for iter.Seek(startKey); iter.Valid(); iter.Next() {
				key := iter.Item().Key()
				if !bytes.HasPrefix(key, startKey) {
					break
				}

				var noteID core.ID
				if err := iter.Item().Value(func(val []byte) error {
					var err error
					noteID, err = storage.UnmarshalID(val)
					return err
				}); err != nil {
					iter.Close()
					return err
				}

				if seen[noteID] {
					continue
				}
				seen[noteID] = true

				note, err := r.readNote(tx, makeNoteKey(noteID))
				if err != nil {
					iter.Close()
					return err
				}
				if note != nil {
					results = append(results, note)
				}
			}
			iter.Close()
		}
		return nil
	}, false)

	return results, err
}

// GetRecent retrieves the N most recent notes, ordered by creation time descending.
func (r *NoteRepository) GetRecent(ctx context.Context, limit int) ([]*core.Note, error) {
	var results []*core.Note
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Use reverse iterator to get most recent notes first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key in the date index
		startKey := makePartialNoteDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))

		prefix := []byte(noteDatePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()

			// Check if we're still in the date index
			if !bytes.HasPrefix(key, prefix) {
				break
			}

			var noteID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				noteID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			note, err := r.readNote(tx, makeNoteKey(noteID))
			if err != nil {
				return err
			}
			if note != nil {
				results = append(results, note)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// GetNotesByDateRange retrieves notes within a time range.
func (r *NoteRepository) GetNotesByDateRange(ctx context.Context, start, end time.Time) ([]*core.Note, error) {
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	var results []*core.Note
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialNoteDateKey(start)
		endKey := makePartialNoteDateKey(end)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if slices.Compare(key, endKey) > 0 {
				break
			}

			var noteID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				noteID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			note, err := r.readNote(tx, makeNoteKey(noteID))
			if err != nil {
				return err
			}
			if note != nil {
				results = append(results, note)
			}
		}
		return nil
	}, false)

	return results, err
}

// SearchText returns up to limit notes matching the pattern in their
// title, content, or summary, case-insensitively. Full scan of the
// primary records; fine for a personal corpus.
func (r *NoteRepository) SearchText(ctx context.Context, pattern string, limit int) ([]*core.Note, error) {
	needle := strings.ToLower(pattern)
	var results []*core.Note

	err := r.scanNotes(func(note *core.Note) bool {
		if strings.Contains(strings.ToLower(note.Title), needle) ||
			strings.Contains(strings.ToLower(note.Content), needle) ||
			strings.Contains(strings.ToLower(note.Summary), needle) {
			results = append(results, note)
		}
		return limit <= 0 || len(results) < limit
	})

	return results, err
}

// NearestByVector returns the k notes nearest to the query vector by
// cosine similarity, nearest first. Notes without embeddings are skipped.
func (r *NoteRepository) NearestByVector(ctx context.Context, vector []float32, k int) ([]*core.SearchResult, error) {
	var results []*core.SearchResult

	err := r.scanNotes(func(note *core.Note) bool {
		if len(note.Embedding) == 0 {
			return true
		}
		score := core.CosineSimilarity(vector, note.Embedding)
		results = append(results, &core.SearchResult{
			Note:  note,
			Score: score,
		})
		return true
	})
	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortFunc(results, func(a, b *core.SearchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if k > 0 && len(results) > k {
		results = results[:k]
	}

	return results, nil
}

// CountNotes returns the total number of persisted notes.
func (r *NoteRepository) CountNotes(ctx context.Context) (int, error) {
	count := 0
	err := r.scanNotes(func(note *core.Note) bool {
		count++
		return true
	})
	return count, err
}

// ListTagSets returns the tag list of every persisted note.
func (r *NoteRepository) ListTagSets(ctx context.Context) ([][]string, error) {
	var tagSets [][]string
	err := r.scanNotes(func(note *core.Note) bool {
		tagSets = append(tagSets, note.Tags)
		return true
	})
	return tagSets, err
}

// Helper methods

// scanNotes iterates every primary note record, calling visit for each.
// Iteration stops when visit returns false.
func (r *NoteRepository) scanNotes(visit func(note *core.Note) bool) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(notePrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			key := item.Key()

			// Skip index keys and the sequence key
			if bytes.Equal(key, []byte(noteIDSeq)) ||
				bytes.HasPrefix(key, []byte(noteDatePrefix)) ||
				bytes.HasPrefix(key, []byte(noteTagPrefix)) {
				continue
			}

			var note *core.Note
			err := item.Value(func(val []byte) error {
				var err error
				note, err = storage.UnmarshalNote(val)
				return err
			})
			if err != nil {
				return err
			}
			if note == nil {
				continue
			}

			if !visit(note) {
				break
			}
		}
		return nil
	}, false)
}

// readNote reads a note from the transaction. Returns nil, nil if absent.
func (r *NoteRepository) readNote(tx *badger.Txn, key []byte) (*core.Note, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var note *core.Note
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		note, unmarshalErr = storage.UnmarshalNote(val)
		return unmarshalErr
	})
	return note, err
}

// updateTagIndex adds tag index entries for a note.
func (r *NoteRepository) updateTagIndex(tx *badger.Txn, note *core.Note) error {
	for _, tag := range note.Tags {
		key := makeNoteTagKey(tag, note.Id)
		if err := tx.Set(key, storage.MarshalID(note.Id)); err != nil {
			return err
		}
	}
	return nil
}

// deleteTagIndex removes tag index entries for a note.
func (r *NoteRepository) deleteTagIndex(tx *badger.Txn, note *core.Note) error {
	for _, tag := range note.Tags {
		key := makeNoteTagKey(tag, note.Id)
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
