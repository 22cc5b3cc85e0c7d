package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Paper is one scholarly search hit from Crossref.
type Paper struct {
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Year      int      `json:"year"`
	DOI       string   `json:"doi"`
	URL       string   `json:"url"`
	Container string   `json:"container"` // Journal or proceedings name
	Abstract  string   `json:"abstract,omitempty"`
}

// abstractSnippetLen caps the abstract length returned to clients.
const abstractSnippetLen = 300

// CrossrefClient searches scholarly works through the Crossref works API.
// No API key is needed; a mailto address opts into the polite pool.
type CrossrefClient struct {
	baseURL string
	mailTo  string
	client  *http.Client
}

// NewCrossrefClient creates a Crossref search client.
func NewCrossrefClient(baseURL, mailTo string) *CrossrefClient {
	return &CrossrefClient{
		baseURL: baseURL,
		mailTo:  mailTo,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

// SearchWorks finds scholarly works matching the query, most relevant first.
func (c *CrossrefClient) SearchWorks(ctx context.Context, query string, rows int) ([]Paper, error) {
	if rows <= 0 {
		rows = 5
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("rows", fmt.Sprintf("%d", rows))
	params.Set("select", "title,author,published,DOI,URL,container-title,abstract")
	if c.mailTo != "" {
		params.Set("mailto", c.mailTo)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/works?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("crossref API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("crossref API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Message struct {
			Items []struct {
				Title  []string `json:"title"`
				Author []struct {
					Given  string `json:"given"`
					Family string `json:"family"`
				} `json:"author"`
				Published struct {
					DateParts [][]int `json:"date-parts"`
				} `json:"published"`
				DOI            string   `json:"DOI"`
				URL            string   `json:"URL"`
				ContainerTitle []string `json:"container-title"`
				Abstract       string   `json:"abstract"`
			} `json:"items"`
		} `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	papers := make([]Paper, 0, len(result.Message.Items))
	for _, item := range result.Message.Items {
		p := Paper{
			DOI: item.DOI,
			URL: item.URL,
		}
		if len(item.Title) > 0 {
			p.Title = item.Title[0]
		}
		if p.Title == "" {
			continue
		}
		for _, a := range item.Author {
			name := strings.TrimSpace(a.Given + " " + a.Family)
			if name != "" {
				p.Authors = append(p.Authors, name)
			}
		}
		if parts := item.Published.DateParts; len(parts) > 0 && len(parts[0]) > 0 {
			p.Year = parts[0][0]
		}
		if len(item.ContainerTitle) > 0 {
			p.Container = item.ContainerTitle[0]
		}
		p.Abstract = abstractSnippet(item.Abstract)
		papers = append(papers, p)
	}

	return papers, nil
}

// abstractSnippet strips the JATS markup Crossref abstracts arrive in
// and truncates the text to a display-sized snippet.
func abstractSnippet(raw string) string {
	if raw == "" {
		return ""
	}
	var b strings.Builder
	inTag := false
	for _, r := range raw {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	text := strings.Join(strings.Fields(b.String()), " ")
	if runes := []rune(text); len(runes) > abstractSnippetLen {
		text = strings.TrimSpace(string(runes[:abstractSnippetLen])) + "…"
	}
	return text
}
