package storage

import (
	"testing"
	"time"

	"github.com/lorekeep/lorekeep/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalNote(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name string
		note *core.Note
	}{
		{
			name: "minimal note",
			note: &core.Note{
				Id:        core.ID(1),
				Title:     "First note",
				Content:   "Some content",
				CreatedAt: now,
			},
		},
		{
			name: "full note",
			note: &core.Note{
				Id:         core.ID(2),
				Title:      "Machine Learning Basics",
				Content:    "Neural networks learn representations from data.",
				Summary:    "Intro to neural nets.",
				Tags:       []string{"machine-learning", "ai"},
				Embedding:  []float32{0.1, -0.2, 0.3, 0.99},
				SourceType: "url",
				SourceURL:  "https://example.com/ml",
				CreatedAt:  now,
			},
		},
		{
			name: "unicode content",
			note: &core.Note{
				Id:        core.ID(3),
				Title:     "日本語のメモ",
				Content:   "Ünïcödé content — emoji too 🎉",
				CreatedAt: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalNote(tt.note)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalNote(data)
			require.NoError(t, err)

			assert.Equal(t, tt.note.Id, decoded.Id)
			assert.Equal(t, tt.note.Title, decoded.Title)
			assert.Equal(t, tt.note.Content, decoded.Content)
			assert.Equal(t, tt.note.Summary, decoded.Summary)
			assert.Equal(t, tt.note.Tags, decoded.Tags)
			assert.Equal(t, tt.note.Embedding, decoded.Embedding)
			assert.Equal(t, tt.note.SourceType, decoded.SourceType)
			assert.Equal(t, tt.note.SourceURL, decoded.SourceURL)
			assert.True(t, tt.note.CreatedAt.Equal(decoded.CreatedAt),
				"expected %v, got %v", tt.note.CreatedAt, decoded.CreatedAt)
		})
	}
}

func TestUnmarshalNote_Corrupt(t *testing.T) {
	_, err := UnmarshalNote([]byte{0xff})
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
