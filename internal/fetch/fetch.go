// Package fetch enriches items whose feeds ship no body text by pulling
// the article page and extracting readable content. Some sources (G1
// among them) publish title-only feed items; without a body the
// classifier has almost nothing to score.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

// Text shorter than this is boilerplate, not article content.
const minUsableLength = 100

// ContentFetcher fetches full article text via HTTP + readability
// extraction.
type ContentFetcher struct {
	client *http.Client
}

// NewContentFetcher creates a content fetcher with the given per-article
// timeout.
func NewContentFetcher(timeout time.Duration) *ContentFetcher {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &ContentFetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
}

// FetchContent retrieves the article page and returns its readable text.
// An empty string with a nil error means the page yielded no usable
// content; callers keep whatever the feed gave them.
func (f *ContentFetcher) FetchContent(ctx context.Context, articleURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "boas-noticias/1.0 (news aggregator)")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("fetching %s: %s", articleURL, http.StatusText(resp.StatusCode))
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	parsedURL, _ := url.Parse(articleURL)
	article, err := readability.FromReader(strings.NewReader(string(bodyBytes)), parsedURL)
	if err != nil {
		return "", nil
	}

	text := strings.TrimSpace(article.TextContent)
	if len(text) >= minUsableLength {
		return text, nil
	}
	return "", nil
}
