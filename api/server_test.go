package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorekeep/lorekeep/agents"
	"github.com/lorekeep/lorekeep/ai/mock"
	"github.com/lorekeep/lorekeep/router"
	"github.com/lorekeep/lorekeep/search"
	"github.com/lorekeep/lorekeep/storage/badger"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	provider := mock.NewProvider().(*mock.Provider)

	engine, err := search.NewEngine(repo, provider.Embedder())
	require.NoError(t, err)

	query := agents.NewQueryHandler(engine, repo)
	ingestion := agents.NewIngestionHandler(provider.ContentAnalyzer(), provider.Embedder(), repo, engine, nil)
	summarization := agents.NewSummarizationHandler(provider.Summarizer(), engine, repo)

	dispatcher := agents.NewDispatcher(router.NewRouter(nil), query, ingestion, summarization)
	return NewServer(dispatcher)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestProcessEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/process", map[string]any{
		"input": "Planted garlic along the back fence today.",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result agents.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	require.NotNil(t, result.Routing)
	assert.Equal(t, router.AgentIngestion, result.Routing.AgentType)
}

func TestProcessEndpointEmptyInput(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/process", map[string]any{
		"input": "",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result agents.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	require.NotNil(t, result.Routing)
	assert.Equal(t, router.AgentQuery, result.Routing.AgentType)
	assert.Equal(t, router.ActionEmptyInput, result.Routing.Action)
	assert.Contains(t, result.Data, "recent_notes")
	assert.Contains(t, result.Data, "stats")
}

func TestProcessEndpointInvalidBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/process", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAgentsInfo(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/agents/info", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Agents map[string][]string `json:"agents"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Agents, 3)
	assert.Contains(t, body.Agents[router.AgentQuery], "search")
}

func TestAgentCapabilities(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/agents/query/capabilities", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "find_similar")

	w = doJSON(t, s, http.MethodGet, "/api/agents/archivist/capabilities", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAgentValidate(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/agents/query/validate", map[string]any{
		"action": "search",
		"input":  map[string]any{"query": "sourdough"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":true`)

	w = doJSON(t, s, http.MethodPost, "/api/agents/query/validate", map[string]any{
		"action": "search",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":false`)
}
