package agents

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/lorekeep/lorekeep/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestTextHappyPath(t *testing.T) {
	env := newTestEnv(t)

	result := env.ingestion.Process(context.Background(), "ingest_text", map[string]any{
		"content": "Go workspaces let one checkout hold several modules. Handy for local development.",
	})
	require.True(t, result.Success, "error: %s", result.Error)

	note := result.Data["note"].(map[string]any)
	assert.NotEmpty(t, note["title"])
	assert.NotEmpty(t, note["summary"])
	assert.Contains(t, result.Data, "analysis")
	assert.Contains(t, result.Data, "similar_notes")
}

func TestIngestTextFailingAnalyzerFallback(t *testing.T) {
	env := newTestEnv(t)
	env.provider.MockAnalyzer().AnalyzeFunc = func(ctx context.Context, titleHint, excerpt string) (*ai.ContentAnalysis, error) {
		return nil, errors.New("analyzer offline")
	}

	result := env.ingestion.Process(context.Background(), "ingest_text", map[string]any{
		"content": "Short note about cats and dogs.",
	})
	require.True(t, result.Success, "error: %s", result.Error)

	note := result.Data["note"].(map[string]any)
	// Short content: title is the whole input, summary likewise
	assert.Equal(t, "Short note about cats and dogs.", note["title"])
	assert.Equal(t, "Short note about cats and dogs.", note["summary"])
	assert.Empty(t, note["tags"])
}

func TestIngestTextFallbackTruncation(t *testing.T) {
	env := newTestEnv(t)
	env.provider.MockAnalyzer().AnalyzeFunc = func(ctx context.Context, titleHint, excerpt string) (*ai.ContentAnalysis, error) {
		return nil, errors.New("analyzer offline")
	}

	content := strings.Repeat("a", 500)
	result := env.ingestion.Process(context.Background(), "ingest_text", map[string]any{
		"content": content,
	})
	require.True(t, result.Success, "error: %s", result.Error)

	note := result.Data["note"].(map[string]any)
	assert.Len(t, note["title"].(string), 80)
	assert.Len(t, note["summary"].(string), 200)
	assert.Empty(t, note["tags"])
}

func TestIngestTextFallbackMultibyteTruncation(t *testing.T) {
	env := newTestEnv(t)
	env.provider.MockAnalyzer().AnalyzeFunc = func(ctx context.Context, titleHint, excerpt string) (*ai.ContentAnalysis, error) {
		return nil, errors.New("analyzer offline")
	}

	// Two-byte runes make byte-indexed cuts land mid-character
	content := strings.Repeat("ü", 500)
	result := env.ingestion.Process(context.Background(), "ingest_text", map[string]any{
		"content": content,
	})
	require.True(t, result.Success, "error: %s", result.Error)

	note := result.Data["note"].(map[string]any)
	title := note["title"].(string)
	summary := note["summary"].(string)

	require.True(t, utf8.ValidString(title))
	require.True(t, utf8.ValidString(summary))
	assert.Equal(t, 80, utf8.RuneCountInString(title))
	assert.Equal(t, 200, utf8.RuneCountInString(summary))
}

func TestIngestTextMissingContent(t *testing.T) {
	env := newTestEnv(t)

	result := env.ingestion.Process(context.Background(), "ingest_text", map[string]any{})
	assert.False(t, result.Success)
}

func TestIngestURL(t *testing.T) {
	env := newTestEnv(t)
	env.fetcher.content = "Extracted article text about fermentation."

	result := env.ingestion.Process(context.Background(), "ingest_url", map[string]any{
		"url": "https://example.com/fermentation",
	})
	require.True(t, result.Success, "error: %s", result.Error)

	note := result.Data["note"].(map[string]any)
	assert.NotEmpty(t, note["title"])
}

func TestIngestURLNoContent(t *testing.T) {
	env := newTestEnv(t)
	env.fetcher.content = "   "

	result := env.ingestion.Process(context.Background(), "ingest_url", map[string]any{
		"url": "https://example.com/empty",
	})
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "no content")
}

func TestIngestURLFetchError(t *testing.T) {
	env := newTestEnv(t)
	env.fetcher.err = errors.New("connection refused")

	result := env.ingestion.Process(context.Background(), "ingest_url", map[string]any{
		"url": "https://example.com/down",
	})
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "fetch failed")
}

func TestIngestEmbeddingFailure(t *testing.T) {
	env := newTestEnv(t)
	env.provider.MockEmbedder().EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedder offline")
	}

	result := env.ingestion.Process(context.Background(), "ingest_text", map[string]any{
		"content": "Some content worth keeping.",
	})
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "embedding failed")
}

func TestIngestionUnknownAction(t *testing.T) {
	env := newTestEnv(t)

	result := env.ingestion.Process(context.Background(), "ingest_dreams", map[string]any{})
	assert.False(t, result.Success)
	assert.Equal(t, "Unknown ingestion action: ingest_dreams", result.Error)
}

func TestIngestionValidate(t *testing.T) {
	env := newTestEnv(t)

	assert.True(t, env.ingestion.Validate("ingest_url", map[string]any{"url": "https://a.dev"}))
	assert.False(t, env.ingestion.Validate("ingest_url", map[string]any{}))
	assert.True(t, env.ingestion.Validate("ingest_text", map[string]any{"content": "x"}))
	assert.False(t, env.ingestion.Validate("ingest_text", map[string]any{"content": " "}))
	assert.False(t, env.ingestion.Validate("other", map[string]any{}))
}
