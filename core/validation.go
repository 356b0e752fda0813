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


package core

import (
	"fmt"
	"time"
)

// ValidateNote validates a Note according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Content must not be empty
//   - CreatedAt must not be in the future
//
// NOT validated (populated by the store or the ingestion pipeline):
//   - ID (0 is valid before insert)
//   - Embedding (checked by the store at insert time for search paths)
//   - Tags (already canonical by construction via NormalizeTags)
func ValidateNote(note *Note) error {
	if note == nil {
		return fmt.Errorf("%w: note is nil", ErrInvalidNote)
	}

	if note.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNote, ErrEmptyTitle)
	}

	if note.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNote, ErrEmptyContent)
	}

	if !IsValidTimestamp(note.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidNote, ErrInvalidTimestamp)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (zero or not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return ts.IsZero() || !ts.After(time.Now())
}
