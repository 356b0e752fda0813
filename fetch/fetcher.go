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


// Package fetch retrieves web pages and extracts their text content for
// ingestion.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/documentloaders"
)

const defaultTimeout = 30 * time.Second

// Fetcher retrieves a URL and extracts plain text from it.
// Implementations must be thread-safe for concurrent use.
type Fetcher interface {
	// Fetch downloads the URL and returns extracted title and text
	// content. Either may be empty when extraction finds nothing.
	Fetch(ctx context.Context, url string) (title, content string, err error)
}

// HTTPFetcher implements Fetcher over net/http with HTML text extraction.
type HTTPFetcher struct {
	client *http.Client
	logger *slog.Logger
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher creates a fetcher with a default timeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: defaultTimeout},
		logger: slog.Default().With("component", "fetcher"),
	}
}

// NewHTTPFetcherWithClient creates a fetcher using the given client.
// Useful for tests and custom transport settings.
func NewHTTPFetcherWithClient(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{
		client: client,
		logger: slog.Default().With("component", "fetcher"),
	}
}

// Fetch downloads the URL and extracts text from the HTML body.
// The extractor yields plain text only, so the returned title is empty;
// callers derive a title from the content during analysis.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("User-Agent", "lorekeep/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warn("fetch failed", "url", url, "err", err)
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	loader := documentloaders.NewHTML(resp.Body)
	docs, err := loader.Load(ctx)
	if err != nil {
		f.logger.Warn("html extraction failed", "url", url, "err", err)
		return "", "", err
	}

	var parts []string
	for _, doc := range docs {
		if text := strings.TrimSpace(doc.PageContent); text != "" {
			parts = append(parts, text)
		}
	}
	content := strings.Join(parts, "\n\n")

	f.logger.Debug("fetched url", "url", url, "content_length", len(content))

	return "", content, nil
}
