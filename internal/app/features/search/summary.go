// internal/app/features/search/summary.go
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultSummaryURL is the Wikipedia REST page-summary endpoint.
const DefaultSummaryURL = "https://en.wikipedia.org/api/rest_v1/page/summary/"

var errNoSummary = errors.New("no summary")

// Summary is the encyclopedia answer for a query.
type Summary struct {
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	URL       string `json:"url,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// SummaryClient fetches page summaries from a Wikipedia-compatible API.
type SummaryClient struct {
	BaseURL string
	Client  *http.Client
}

type pageSummary struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
}

// Lookup returns the summary for query. A missing page, a disambiguation
// page, or an empty extract is errNoSummary.
func (c *SummaryClient) Lookup(ctx context.Context, query string) (Summary, error) {
	title := strings.ReplaceAll(strings.TrimSpace(query), " ", "_")
	endpoint := strings.TrimRight(c.BaseURL, "/") + "/" + url.PathEscape(title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Summary{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "clubhub/1.0")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Summary{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Summary{}, errNoSummary
	case resp.StatusCode != http.StatusOK:
		return Summary{}, fmt.Errorf("summary lookup returned %d", resp.StatusCode)
	}

	var ps pageSummary
	if err := json.NewDecoder(io.LimitReader(resp.Body, 256<<10)).Decode(&ps); err != nil {
		return Summary{}, fmt.Errorf("decode summary: %w", err)
	}
	if ps.Type == "disambiguation" || strings.TrimSpace(ps.Extract) == "" {
		return Summary{}, errNoSummary
	}
	return Summary{
		Title:     ps.Title,
		Extract:   ps.Extract,
		URL:       ps.ContentURLs.Desktop.Page,
		Thumbnail: ps.Thumbnail.Source,
	}, nil
}
