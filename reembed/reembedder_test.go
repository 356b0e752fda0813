package reembed

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lorekeep/lorekeep/ai/mock"
	"github.com/lorekeep/lorekeep/core"
	"github.com/lorekeep/lorekeep/storage"
	"github.com/lorekeep/lorekeep/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) storage.NoteRepository {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func seedNotes(t *testing.T, repo storage.NoteRepository, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		_, err := repo.Insert(context.Background(), &core.Note{
			Title:     "note",
			Content:   "some content",
			Embedding: []float32{1, 0, 0},
		})
		require.NoError(t, err)
	}
}

func TestReembedderRun(t *testing.T) {
	repo := newTestRepo(t)
	seedNotes(t, repo, 7)

	var calls atomic.Int64
	embedder := &mock.Embedder{
		EmbedTextsFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
			calls.Add(1)
			out := make([][]float32, len(texts))
			for i := range texts {
				out[i] = []float32{0, 2, 0}
			}
			return out, nil
		},
	}

	var buf bytes.Buffer
	config := &Config{BatchSize: 3, Concurrency: 2, ReportInterval: 1, MaxRetries: 2, RetryDelay: time.Millisecond}
	r := NewReembedder(repo, embedder, config, &buf)

	err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), calls.Load(), "7 notes at batch size 3 means 3 batches")

	// Vectors were replaced and normalized
	notes, err := repo.GetRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, notes, 7)
	for _, note := range notes {
		assert.InDelta(t, 1.0, note.Embedding[1], 1e-6)
	}

	assert.Contains(t, buf.String(), "Reembedding complete")
}

func TestReembedderRunEmptyStore(t *testing.T) {
	repo := newTestRepo(t)

	var buf bytes.Buffer
	r := NewReembedder(repo, &mock.Embedder{}, nil, &buf)

	err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No notes found")
}

func TestReembedderEmbeddingFailure(t *testing.T) {
	repo := newTestRepo(t)
	seedNotes(t, repo, 2)

	embedder := &mock.Embedder{
		EmbedTextsFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, errors.New("embedder offline")
		},
	}

	var buf bytes.Buffer
	config := &Config{BatchSize: 10, Concurrency: 1, ReportInterval: 1, MaxRetries: 2, RetryDelay: time.Millisecond}
	r := NewReembedder(repo, embedder, config, &buf)

	err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedder offline")
}

func TestBatchProcessorCountMismatch(t *testing.T) {
	repo := newTestRepo(t)
	seedNotes(t, repo, 2)

	embedder := &mock.Embedder{
		EmbedTextsFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
			return [][]float32{{1, 0, 0}}, nil
		},
	}

	notes, err := repo.GetRecent(context.Background(), 10)
	require.NoError(t, err)

	bp := NewBatchProcessor(repo, embedder, 1, time.Millisecond)
	err = bp.Process(context.Background(), notes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mismatch")
}
