// Package websearch provides clients for finding articles related to a
// book: general web search via Serper and scholarly search via Crossref.
package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Retailer and reference sites whose results are dropped; searches
// should surface real blog and essay content.
var blockedDomains = []string{
	"amazon.com",
	"goodreads.com",
	"wikipedia.org",
	"youtube.com",
}

// Result is one web search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Domain  string `json:"domain"`
	Favicon string `json:"favicon"`
}

// ArticleQuery describes a search for articles about a book. When
// ConceptQuery is empty the search targets the book's key ideas overall.
type ArticleQuery struct {
	BookTitle    string
	Author       string
	ConceptQuery string
	Count        int
}

// SerperClient searches the web through the Serper API.
type SerperClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewSerperClient creates a Serper search client.
func NewSerperClient(apiKey, baseURL string) *SerperClient {
	return &SerperClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

// IsConfigured checks if the API key is set.
func (c *SerperClient) IsConfigured() bool {
	return c.apiKey != ""
}

// FindArticles searches for blog articles about a book and returns at
// most q.Count results, with retailer and reference sites filtered out.
func (c *SerperClient) FindArticles(ctx context.Context, q ArticleQuery) ([]Result, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("Serper API key not configured")
	}

	count := q.Count
	if count <= 0 {
		count = 6
	}

	query := q.BookTitle + " " + q.Author + " key ideas summary analysis blog"
	if q.ConceptQuery != "" {
		query = q.ConceptQuery + " " + q.BookTitle + " insights analysis"
	}

	body := map[string]any{
		"q": query,
		// Fetch a few extra; the domain filter below discards some.
		"num": count + 2,
		"gl":  "us",
		"hl":  "en",
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serper API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("serper API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Organic []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"organic"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	results := make([]Result, 0, count)
	for _, r := range result.Organic {
		if isBlocked(r.Link) {
			continue
		}
		results = append(results, Result{
			Title:   r.Title,
			URL:     r.Link,
			Snippet: r.Snippet,
			Domain:  hostOf(r.Link),
			Favicon: "https://www.google.com/s2/favicons?domain=" + r.Link + "&sz=32",
		})
		if len(results) == count {
			break
		}
	}

	return results, nil
}

// isBlocked reports whether the link belongs to a filtered domain.
func isBlocked(link string) bool {
	for _, d := range blockedDomains {
		if strings.Contains(link, d) {
			return true
		}
	}
	return false
}

// hostOf extracts the hostname without a www. prefix.
func hostOf(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
