package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchExtractsText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><head><title>T</title></head><body><p>Tomatoes need full sun.</p></body></html>"))
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher()
	_, content, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, content, "Tomatoes need full sun.")
}

func TestFetchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher()
	_, _, err := fetcher.Fetch(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestFetchConnectionRefused(t *testing.T) {
	fetcher := NewHTTPFetcher()
	_, _, err := fetcher.Fetch(context.Background(), "http://127.0.0.1:1/none")
	assert.Error(t, err)
}
