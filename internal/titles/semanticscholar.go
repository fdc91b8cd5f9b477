package titles

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"
)

const defaultSemanticScholarBaseURL = "https://api.semanticscholar.org/graph/v1"

// SemanticScholarClient searches the Semantic Scholar graph API for papers.
type SemanticScholarClient struct {
	BaseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewSemanticScholarClient creates a Semantic Scholar client with a per-call
// timeout and a minimum delay between successive requests.
func NewSemanticScholarClient(baseURL string) *SemanticScholarClient {
	if baseURL == "" {
		baseURL = defaultSemanticScholarBaseURL
	}
	return &SemanticScholarClient{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: lookupTimeout},
		limiter: rate.NewLimiter(rate.Every(lookupMinDelay), 1),
	}
}

// paperSearchResponse is the subset of the search response we care about.
type paperSearchResponse struct {
	Data []struct {
		Title string `json:"title"`
	} `json:"data"`
}

// SearchTitle returns the title of the single best match for the query.
// Any outcome other than HTTP 200 with at least one result is an error.
func (c *SemanticScholarClient) SearchTitle(ctx context.Context, query string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", "1")
	params.Set("fields", "title")
	reqURL := fmt.Sprintf("%s/paper/search?%s", c.BaseURL, params.Encode())

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

	var searchResp paperSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(searchResp.Data) == 0 {
		return "", fmt.Errorf("no results for query %q", query)
	}

	title := strings.TrimSpace(searchResp.Data[0].Title)
	if title == "" {
		return "", fmt.Errorf("empty title for query %q", query)
	}
	return title, nil
}
