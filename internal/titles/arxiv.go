package titles

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultArxivBaseURL = "http://export.arxiv.org/api"

	// Minimum delay between successive calls to third-party metadata APIs,
	// per their usage policies.
	lookupMinDelay = 500 * time.Millisecond
	lookupTimeout  = 5 * time.Second
)

// ArxivClient queries the arXiv Atom API for paper metadata.
type ArxivClient struct {
	BaseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewArxivClient creates an arXiv API client with a per-call timeout and a
// minimum delay between successive requests.
func NewArxivClient(baseURL string) *ArxivClient {
	if baseURL == "" {
		baseURL = defaultArxivBaseURL
	}
	return &ArxivClient{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: lookupTimeout},
		limiter: rate.NewLimiter(rate.Every(lookupMinDelay), 1),
	}
}

// atomFeed is the subset of the arXiv Atom response we care about.
type atomFeed struct {
	Entries []struct {
		Title string `xml:"title"`
	} `xml:"entry"`
}

// TitleByID looks up a paper title by its arXiv identifier (e.g. "1706.03762").
// Returns an error when the id is unknown or the API is unreachable.
func (c *ArxivClient) TitleByID(ctx context.Context, id string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	reqURL := fmt.Sprintf("%s/query?id_list=%s&max_results=1", c.BaseURL, url.QueryEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return "", fmt.Errorf("failed to decode feed: %w", err)
	}
	if len(feed.Entries) == 0 {
		return "", fmt.Errorf("no entry for arXiv id %s", id)
	}

	// Feed titles wrap across lines; collapse all whitespace runs.
	title := strings.Join(strings.Fields(feed.Entries[0].Title), " ")
	if title == "" || strings.EqualFold(title, "error") {
		return "", fmt.Errorf("no title for arXiv id %s", id)
	}
	return title, nil
}
