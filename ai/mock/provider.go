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


package mock

import "github.com/lorekeep/lorekeep/ai"

// Provider is a test double for ai.Provider.
// It aggregates mock service instances.
type Provider struct {
	embedder   *Embedder
	classifier *IntentClassifier
	analyzer   *ContentAnalyzer
	summarizer *Summarizer
}

// NewProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production
// constructors. Use the Mock* accessors for concrete types when tests
// need call counts or behavior injection.
func NewProvider() ai.Provider {
	return &Provider{
		embedder:   NewEmbedder(),
		classifier: NewIntentClassifier(),
		analyzer:   NewContentAnalyzer(),
		summarizer: NewSummarizer(),
	}
}

// Embedder returns the mock embedder.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// IntentClassifier returns the mock classifier.
func (p *Provider) IntentClassifier() ai.IntentClassifier {
	return p.classifier
}

// ContentAnalyzer returns the mock analyzer.
func (p *Provider) ContentAnalyzer() ai.ContentAnalyzer {
	return p.analyzer
}

// Summarizer returns the mock summarizer.
func (p *Provider) Summarizer() ai.Summarizer {
	return p.summarizer
}

// Close is a no-op for the mock provider.
func (p *Provider) Close() error {
	return nil
}

// MockEmbedder returns the underlying mock embedder for test assertions.
func (p *Provider) MockEmbedder() *Embedder {
	return p.embedder
}

// MockClassifier returns the underlying mock classifier for test assertions.
func (p *Provider) MockClassifier() *IntentClassifier {
	return p.classifier
}

// MockAnalyzer returns the underlying mock analyzer for test assertions.
func (p *Provider) MockAnalyzer() *ContentAnalyzer {
	return p.analyzer
}

// MockSummarizer returns the underlying mock summarizer for test assertions.
func (p *Provider) MockSummarizer() *Summarizer {
	return p.summarizer
}
