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
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/lorekeep/lorekeep/ai"
	"github.com/lorekeep/lorekeep/core"
	"github.com/lorekeep/lorekeep/storage"
	"github.com/panjf2000/ants/v2"
)

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of notes to process in each batch
	BatchSize int

	// Concurrency is the number of batches embedded in parallel
	Concurrency int

	// ReportInterval is how often to report progress (number of notes)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		Concurrency:    4,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reembedder regenerates the embedding of every note in a store,
// typically after switching embedding models.
type Reembedder struct {
	repo      storage.NoteRepository
	embedder  ai.Embedder
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *NoteIterator
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(repo storage.NoteRepository, embedder ai.Embedder, config *Config, progress io.Writer) *Reembedder {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}

	processor := NewBatchProcessor(repo, embedder, config.MaxRetries, config.RetryDelay)
	iterator := NewNoteIterator(repo, config.BatchSize)

	return &Reembedder{
		repo:      repo,
		embedder:  embedder,
		config:    config,
		progress:  progress,
		processor: processor,
		iterator:  iterator,
	}
}

// Run executes the reembedding operation. Batches are embedded
// concurrently on a worker pool; the first batch error cancels the rest.
func (r *Reembedder) Run(ctx context.Context) error {
	totalNotes, err := r.repo.CountNotes(ctx)
	if err != nil {
		return fmt.Errorf("failed to count notes: %w", err)
	}

	if totalNotes == 0 {
		fmt.Fprintf(r.progress, "No notes found in store (0 notes)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d notes (batch size: %d, workers: %d)\n",
		totalNotes, r.config.BatchSize, r.config.Concurrency)

	tracker := NewProgressTracker(r.progress, totalNotes, r.config.ReportInterval)
	tracker.Start()

	pool, err := ants.NewPool(r.config.Concurrency)
	if err != nil {
		return fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	err = r.iterator.ForEach(runCtx, func(batch []*core.Note) error {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := r.processor.Process(runCtx, batch); err != nil {
				fail(fmt.Errorf("failed to process batch: %w", err))
				return
			}
			tracker.Increment(len(batch))
		})
		if submitErr != nil {
			wg.Done()
			return fmt.Errorf("failed to submit batch: %w", submitErr)
		}
		return nil
	})

	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	if err != nil {
		return err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d notes in %v (%.1f notes/sec)\n",
		totalNotes, elapsed.Round(time.Second), float64(totalNotes)/elapsed.Seconds())

	return nil
}
