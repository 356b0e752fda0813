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


// Package ai provides abstractions for AI services used in Lorekeep.
//
// This package defines interfaces for AI operations including text
// embeddings, intent classification, content analysis, and summarization.
// It follows the dependency inversion principle, allowing the core domain
// and business logic to depend on abstractions rather than concrete
// implementations.
//
// # Design Principles
//
// The package is designed around these key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - IntentClassifier: Classifies raw input into routing decisions
//   - ContentAnalyzer: Produces structured metadata for ingested content
//   - Summarizer: Generates summaries and tags
//   - Provider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Every LLM-backed service has a deterministic degradation path: the
// router falls back to rule-based classification, the analyzer to
// truncation-based metadata, and the summarizer to the extractive
// implementation in this package. Handlers rely on those fallbacks to
// stay total even when no model service is reachable.
//
// # Usage Example
//
//	// Production usage with OpenAI provider
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "Hello world")
//	decision, err := provider.IntentClassifier().Classify(ctx, ai.IntentRequest{Text: "find my go notes"})
//
//	// Testing usage with mocks
//	mockProvider := mock.NewProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "test text")
package ai
