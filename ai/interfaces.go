package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// IntentClassifier classifies a raw user input into a routing decision.
// Implementations must be thread-safe for concurrent use.
type IntentClassifier interface {
	// Classify analyzes the input and decides which capability should
	// handle it. Returns an error if classification fails; callers are
	// expected to fall back to deterministic routing in that case.
	Classify(ctx context.Context, req IntentRequest) (*IntentDecision, error)
}

// ContentAnalyzer produces structured metadata for a piece of content.
// Implementations must be thread-safe for concurrent use.
type ContentAnalyzer interface {
	// Analyze generates a title, summary, tags, content type, and key
	// insights for the given content excerpt. The title hint may be
	// empty. Returns an error if analysis fails; callers are expected
	// to fall back to truncation-based metadata in that case.
	Analyze(ctx context.Context, titleHint, excerpt string) (*ContentAnalysis, error)
}

// Summarizer generates a summary and tags for a piece of content.
// Implementations must be thread-safe for concurrent use.
type Summarizer interface {
	// SummarizeAndTag produces a descriptive summary and a tag list for
	// the content.
	SummarizeAndTag(ctx context.Context, content string) (*SummaryResult, error)

	// Available reports whether a generation backend is configured.
	// When false, callers should expect extractive-quality output.
	Available() bool
}

// Provider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages the embedder, classifier, analyzer, and
// summarizer instances, ensuring they share configuration appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// IntentClassifier returns the intent classification service.
	IntentClassifier() IntentClassifier

	// ContentAnalyzer returns the content analysis service.
	ContentAnalyzer() ContentAnalyzer

	// Summarizer returns the summarization service.
	Summarizer() Summarizer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
