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


package lorekeep

import (
	"context"
	"io"
	"log/slog"

	"github.com/lorekeep/lorekeep/agents"
	"github.com/lorekeep/lorekeep/ai"
	"github.com/lorekeep/lorekeep/ai/openai"
	"github.com/lorekeep/lorekeep/fetch"
	"github.com/lorekeep/lorekeep/reembed"
	"github.com/lorekeep/lorekeep/router"
	"github.com/lorekeep/lorekeep/search"
	"github.com/lorekeep/lorekeep/storage"
	"github.com/lorekeep/lorekeep/storage/badger"
)

// Assistant is the assembled application: storage, AI services, search,
// routing, and the capability handlers behind a single Process call.
type Assistant struct {
	backend    *badger.Backend
	notes      storage.NoteRepository
	provider   ai.Provider
	engine     *search.Engine
	dispatcher *agents.Dispatcher
	logger     *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	fetcher  fetch.Fetcher
	inMemory bool
}

// WithAIConfig sets the AI service configuration.
func WithAIConfig(config *ai.Config) AssistantOption {
	return func(o *assistantOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies a prebuilt AI provider instead of constructing
// one from config. Used mainly for testing with mocks.
func WithProvider(provider ai.Provider) AssistantOption {
	return func(o *assistantOptions) {
		o.provider = provider
	}
}

// WithFetcher supplies a custom web content fetcher.
func WithFetcher(fetcher fetch.Fetcher) AssistantOption {
	return func(o *assistantOptions) {
		o.fetcher = fetcher
	}
}

// WithInMemoryStore uses an in-memory store instead of an on-disk one.
func WithInMemoryStore() AssistantOption {
	return func(o *assistantOptions) {
		o.inMemory = true
	}
}

// NewAssistant opens the store at filePath and wires up the full
// processing pipeline.
func NewAssistant(filePath string, opts ...AssistantOption) (*Assistant, error) {
	options := &assistantOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	notes, err := badger.NewNoteRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			notes.Close()
			backend.Close()
			return nil, err
		}
	}

	engine, err := search.NewEngine(notes, provider.Embedder())
	if err != nil {
		provider.Close()
		notes.Close()
		backend.Close()
		return nil, err
	}

	fetcher := options.fetcher
	if fetcher == nil {
		fetcher = fetch.NewHTTPFetcher()
	}

	query := agents.NewQueryHandler(engine, notes)
	ingestion := agents.NewIngestionHandler(provider.ContentAnalyzer(), provider.Embedder(), notes, engine, fetcher)
	summarization := agents.NewSummarizationHandler(provider.Summarizer(), engine, notes)

	r := router.NewRouter(provider.IntentClassifier())
	dispatcher := agents.NewDispatcher(r, query, ingestion, summarization)

	return &Assistant{
		backend:    backend,
		notes:      notes,
		provider:   provider,
		engine:     engine,
		dispatcher: dispatcher,
		logger:     slog.Default(),
	}, nil
}

// Process routes free-form input to the right capability handler and
// returns its result envelope.
func (a *Assistant) Process(ctx context.Context, input string) *agents.Result {
	return a.dispatcher.Process(ctx, input)
}

// Close releases the AI provider and storage resources.
func (a *Assistant) Close() error {
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}

	if err := a.notes.Close(); err != nil {
		a.logger.Error("error closing note repository", "err", err)
		return err
	}

	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// NoteRepository returns the note store.
func (a *Assistant) NoteRepository() storage.NoteRepository {
	return a.notes
}

// SearchEngine returns the retrieval engine.
func (a *Assistant) SearchEngine() *search.Engine {
	return a.engine
}

// Dispatcher returns the capability dispatcher.
func (a *Assistant) Dispatcher() *agents.Dispatcher {
	return a.dispatcher
}

// Reembed regenerates every stored note embedding with the current
// embedder, reporting progress to the given writer.
func (a *Assistant) Reembed(ctx context.Context, config *reembed.Config, progress io.Writer) error {
	reembedder := reembed.NewReembedder(a.notes, a.provider.Embedder(), config, progress)
	return reembedder.Run(ctx)
}
