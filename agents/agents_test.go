package agents

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/lorekeep/lorekeep/ai/mock"
	"github.com/lorekeep/lorekeep/core"
	"github.com/lorekeep/lorekeep/router"
	"github.com/lorekeep/lorekeep/search"
	"github.com/lorekeep/lorekeep/storage"
	"github.com/lorekeep/lorekeep/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher is a canned fetch.Fetcher for tests.
type stubFetcher struct {
	title   string
	content string
	err     error
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) (string, string, error) {
	return f.title, f.content, f.err
}

// testEnv wires an in-memory store, mock AI services, and all three
// handlers behind a dispatcher.
type testEnv struct {
	repo       storage.NoteRepository
	provider   *mock.Provider
	engine     *search.Engine
	fetcher    *stubFetcher
	dispatcher *Dispatcher

	query         *QueryHandler
	ingestion     *IngestionHandler
	summarization *SummarizationHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	provider := mock.NewProvider().(*mock.Provider)

	engine, err := search.NewEngine(repo, provider.Embedder())
	require.NoError(t, err)

	fetcher := &stubFetcher{}

	query := NewQueryHandler(engine, repo)
	ingestion := NewIngestionHandler(provider.ContentAnalyzer(), provider.Embedder(), repo, engine, fetcher)
	summarization := NewSummarizationHandler(provider.Summarizer(), engine, repo)

	r := router.NewRouter(nil)
	dispatcher := NewDispatcher(r, query, ingestion, summarization)

	return &testEnv{
		repo:          repo,
		provider:      provider,
		engine:        engine,
		fetcher:       fetcher,
		dispatcher:    dispatcher,
		query:         query,
		ingestion:     ingestion,
		summarization: summarization,
	}
}

func TestDispatcherEmptyInput(t *testing.T) {
	env := newTestEnv(t)

	result := env.dispatcher.Process(context.Background(), "   ")
	require.True(t, result.Success, "error: %s", result.Error)
	require.NotNil(t, result.Routing)
	assert.Equal(t, router.AgentQuery, result.Routing.AgentType)
	assert.Equal(t, router.ActionEmptyInput, result.Routing.Action)
	assert.Equal(t, 1.0, result.Routing.Confidence)
	assert.Contains(t, result.Data, "suggestion")
}

func TestDispatcherRoutesTextToIngestion(t *testing.T) {
	env := newTestEnv(t)

	result := env.dispatcher.Process(context.Background(), "Planted garlic along the back fence today.")
	require.True(t, result.Success, "error: %s", result.Error)
	assert.Equal(t, router.AgentIngestion, result.Routing.AgentType)
	assert.Equal(t, router.ActionIngestText, result.Routing.Action)
	assert.Contains(t, result.Data, "note")
}

func TestDispatcherURLInputUsesFetcher(t *testing.T) {
	env := newTestEnv(t)
	env.fetcher.content = "Long-form article text about compost ratios."

	result := env.dispatcher.Process(context.Background(), "https://example.com/compost")
	require.True(t, result.Success, "error: %s", result.Error)
	assert.Equal(t, router.ActionIngestURL, result.Routing.Action)
}

func TestDispatcherHandlerAccessors(t *testing.T) {
	env := newTestEnv(t)

	assert.NotNil(t, env.dispatcher.Handler(router.AgentQuery))
	assert.Nil(t, env.dispatcher.Handler("archivist"))
	assert.Len(t, env.dispatcher.AgentTypes(), 3)
}

func TestEnvelopeHelpers(t *testing.T) {
	r := fail("embedding", errors.New("connection refused"))
	assert.False(t, r.Success)
	assert.Equal(t, "embedding failed: connection refused", r.Error)

	r = unknownAction("query", "teleport")
	assert.False(t, r.Success)
	assert.Equal(t, "Unknown query action: teleport", r.Error)

	r = succeed(map[string]any{"k": 1}, "ok")
	assert.True(t, r.Success)
	assert.Equal(t, "ok", r.Message)
}

func TestNoteViewPreviewTruncation(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}

	view := noteView(&core.Note{Title: "t", Content: string(long)})
	preview := view["content_preview"].(string)
	assert.Len(t, preview, 203) // 200 chars + "..."
}

func TestNoteViewPreviewMultibyteContent(t *testing.T) {
	// Two-byte runes: a byte-indexed cut at 200 would land mid-rune
	content := strings.Repeat("né", 300)

	view := noteView(&core.Note{Title: "t", Content: content})
	preview := view["content_preview"].(string)

	require.True(t, utf8.ValidString(preview))
	assert.True(t, strings.HasSuffix(preview, "..."))
	assert.Equal(t, previewLimit+3, utf8.RuneCountInString(preview))
}
