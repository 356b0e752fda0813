package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateNote(t *testing.T) {
	validTime := time.Now().Add(-1 * time.Hour)
	futureTime := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name    string
		note    *Note
		wantErr error
	}{
		{
			name: "valid note",
			note: &Note{
				Id:        1,
				Title:     "Garden log",
				Content:   "Planted garlic.",
				CreatedAt: validTime,
			},
			wantErr: nil,
		},
		{
			name: "valid note with ID 0",
			note: &Note{
				Title:     "Pending insert",
				Content:   "Not yet stored.",
				CreatedAt: validTime,
			},
			wantErr: nil,
		},
		{
			name: "valid note with zero timestamp",
			note: &Note{
				Title:   "Fresh",
				Content: "Store assigns the time.",
			},
			wantErr: nil,
		},
		{
			name: "valid note with empty embedding",
			note: &Note{
				Title:     "No vector yet",
				Content:   "Embedding comes later.",
				CreatedAt: validTime,
				Embedding: nil,
			},
			wantErr: nil,
		},
		{
			name:    "nil note",
			note:    nil,
			wantErr: ErrInvalidNote,
		},
		{
			name: "empty title",
			note: &Note{
				Content:   "Body without a title.",
				CreatedAt: validTime,
			},
			wantErr: ErrEmptyTitle,
		},
		{
			name: "empty content",
			note: &Note{
				Title:     "Title without a body",
				CreatedAt: validTime,
			},
			wantErr: ErrEmptyContent,
		},
		{
			name: "future timestamp",
			note: &Note{
				Title:     "Time traveler",
				Content:   "From next week.",
				CreatedAt: futureTime,
			},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNote(tt.note)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if !errors.Is(err, ErrInvalidNote) {
				t.Fatalf("expected error to wrap ErrInvalidNote, got %v", err)
			}
		})
	}
}

func TestIsValidTimestamp(t *testing.T) {
	if !IsValidTimestamp(time.Time{}) {
		t.Fatal("zero timestamp should be valid")
	}
	if !IsValidTimestamp(time.Now().Add(-time.Minute)) {
		t.Fatal("past timestamp should be valid")
	}
	if IsValidTimestamp(time.Now().Add(time.Hour)) {
		t.Fatal("future timestamp should be invalid")
	}
}
