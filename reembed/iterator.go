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


package reembed

import (
	"context"
	"time"

	"github.com/lorekeep/lorekeep/core"
	"github.com/lorekeep/lorekeep/storage"
)

const (
	// DefaultBatchSize is the default number of notes to fetch in each batch
	DefaultBatchSize = 100
)

// NoteIterator iterates over all notes in batches.
type NoteIterator struct {
	repo      storage.NoteRepository
	batchSize int
}

// NewNoteIterator creates a new note iterator.
// batchSize: number of notes in each batch (must be > 0)
func NewNoteIterator(repo storage.NoteRepository, batchSize int) *NoteIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &NoteIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach iterates over all notes, calling fn for each batch.
// Iteration stops on the first error from fn or when all notes are
// processed. Context cancellation is checked between batches.
func (it *NoteIterator) ForEach(ctx context.Context, fn func([]*core.Note) error) error {
	// Wide date range covers every note in the store
	startTime := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	endTime := time.Date(2100, 12, 31, 23, 59, 59, 0, time.UTC)

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	notes, err := it.repo.GetNotesByDateRange(ctx, startTime, endTime)
	if err != nil {
		return err
	}

	if len(notes) == 0 {
		return nil
	}

	for i := 0; i < len(notes); i += it.batchSize {
		end := i + it.batchSize
		if end > len(notes) {
			end = len(notes)
		}

		if err := fn(notes[i:end]); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
