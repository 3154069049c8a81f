// Package factcheck queries a structured fact-check aggregation service for
// prior published reviews of a claim.
package factcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/veristream/veristream/internal/cache"
	"github.com/veristream/veristream/internal/model"
)

// Publishers indexed by the aggregation service are vetted fact-checking
// organizations, so matched reviews carry a fixed high reputability.
const (
	matchedSourceScore      = 90
	matchedSourceReputation = "High"
)

// Client queries the claims:search endpoint of the Google Fact Check Tools
// API with a claim as a free-text query.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cache      cache.Cache
	cacheTTL   time.Duration
}

// NewClient creates a fact-check lookup client. cache may be nil to disable
// caching.
func NewClient(baseURL, apiKey string, timeout time.Duration, c cache.Cache, cacheTTL time.Duration) *Client {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		cache:      c,
		cacheTTL:   cacheTTL,
	}
}

// claimsSearchResponse mirrors the service's wire format.
type claimsSearchResponse struct {
	Claims []struct {
		Text        string `json:"text"`
		Claimant    string `json:"claimant"`
		ClaimReview []struct {
			Publisher struct {
				Name string `json:"name"`
				Site string `json:"site"`
			} `json:"publisher"`
			URL           string `json:"url"`
			Title         string `json:"title"`
			TextualRating string `json:"textualRating"`
		} `json:"claimReview"`
	} `json:"claims"`
}

// cacheEntry stores a lookup outcome, including negative results, so repeated
// claims skip the external call either way.
type cacheEntry struct {
	Found  bool               `json:"found"`
	Result *model.ClaimResult `json:"result,omitempty"`
}

// Lookup searches for a published fact-check of the claim. The second return
// value distinguishes "service answered, no match" (fall back to generative
// corroboration) from a found review. Transport and decode failures are
// returned as errors; the caller decides how to degrade.
func (c *Client) Lookup(ctx context.Context, claimText string) (*model.ClaimResult, bool, error) {
	key := cache.Key("factcheck", claimText)
	if c.cache != nil {
		if data, ok := c.cache.Get(key); ok {
			var entry cacheEntry
			if err := json.Unmarshal(data, &entry); err == nil {
				return entry.Result, entry.Found, nil
			}
		}
	}

	result, found, err := c.search(ctx, claimText)
	if err != nil {
		return nil, false, err
	}

	if c.cache != nil {
		if data, err := json.Marshal(cacheEntry{Found: found, Result: result}); err == nil {
			_ = c.cache.Set(key, data, c.cacheTTL)
		}
	}

	return result, found, nil
}

func (c *Client) search(ctx context.Context, claimText string) (*model.ClaimResult, bool, error) {
	endpoint := fmt.Sprintf("%s/claims:search?%s", c.baseURL, url.Values{
		"query": {claimText},
		"key":   {c.apiKey},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build fact-check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("fact-check request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, false, fmt.Errorf("fact-check service returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed claimsSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, false, fmt.Errorf("decode fact-check response: %w", err)
	}

	// First result, first review. The service ranks by relevance and the
	// pipeline only needs one published review per claim.
	if len(parsed.Claims) == 0 || len(parsed.Claims[0].ClaimReview) == 0 {
		return nil, false, nil
	}

	review := parsed.Claims[0].ClaimReview[0]
	return &model.ClaimResult{
		Claim:            claimText,
		Status:           MapRating(review.TextualRating),
		Source:           review.Publisher.Name,
		SourceURL:        review.URL,
		Explanation:      fmt.Sprintf("Rating: %s", review.TextualRating),
		SourceScore:      matchedSourceScore,
		SourceReputation: matchedSourceReputation,
	}, true, nil
}
