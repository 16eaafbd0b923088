// Package spoonacular is the HTTP client for the Spoonacular recipe API. It
// covers the two endpoints the lookup flow needs: ingredient search and the
// bulk detail fetch. Network and non-200 failures come back as outcomes, not
// errors, so callers can degrade instead of aborting.
package spoonacular

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pantrychef/pantrychef/internal/core"
)

const (
	// DefaultBaseURL is the production Spoonacular endpoint.
	DefaultBaseURL = "https://api.spoonacular.com"

	// DefaultSearchTimeout bounds the ingredient search call.
	DefaultSearchTimeout = 10 * time.Second

	// DefaultBulkTimeout bounds the bulk detail call, which returns much
	// larger payloads than the search.
	DefaultBulkTimeout = 15 * time.Second
)

// Outcome describes how a remote call went without escalating to an error.
type Outcome struct {
	OK         bool
	StatusCode int
	Message    string
}

// SearchResponse is the result of an ingredient search call.
type SearchResponse struct {
	Outcome
	Summaries []core.RecipeSummary
}

// BulkResponse is the result of a bulk detail call.
type BulkResponse struct {
	Outcome
	Details []core.RecipeDetail
}

// Client calls the Spoonacular API. Zero-value fields fall back to defaults;
// APIKey is required.
type Client struct {
	HTTPClient    *http.Client
	BaseURL       string
	APIKey        string
	SearchTimeout time.Duration
	BulkTimeout   time.Duration
}

// FindByIngredients searches recipes maximizing use of the given ingredients.
// Results are ranked by used-ingredient count first. An error is returned only
// for unusable input or configuration; remote failures land in the outcome.
func (c *Client) FindByIngredients(ctx context.Context, ingredients []string, number int, diet []string) (*SearchResponse, error) {
	if c == nil || strings.TrimSpace(c.APIKey) == "" {
		return nil, errors.New("spoonacular client is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	joined := joinClean(ingredients)
	if joined == "" {
		return nil, errors.New("at least one ingredient is required")
	}
	if number <= 0 {
		number = 1
	}

	query := url.Values{}
	query.Set("apiKey", c.APIKey)
	query.Set("ingredients", joined)
	query.Set("number", strconv.Itoa(number))
	query.Set("ranking", "1")
	query.Set("ignorePantry", "true")
	if filters := joinClean(diet); filters != "" {
		query.Set("diet", filters)
	}

	ctx, cancel := context.WithTimeout(ctx, c.searchTimeout())
	defer cancel()

	resp := &SearchResponse{}
	body, outcome := c.get(ctx, "/recipes/findByIngredients", query)
	resp.Outcome = outcome
	if !outcome.OK {
		return resp, nil
	}

	var items []searchItem
	if err := json.Unmarshal(body, &items); err != nil {
		resp.OK = false
		resp.Message = "malformed search response"
		return resp, nil
	}

	for _, item := range items {
		resp.Summaries = append(resp.Summaries, item.toSummary())
	}
	return resp, nil
}

// InformationBulk fetches full details for the given recipe IDs in a single
// call, nutrition included.
func (c *Client) InformationBulk(ctx context.Context, ids []int) (*BulkResponse, error) {
	if c == nil || strings.TrimSpace(c.APIKey) == "" {
		return nil, errors.New("spoonacular client is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if len(ids) == 0 {
		return nil, errors.New("at least one recipe id is required")
	}

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}

	query := url.Values{}
	query.Set("apiKey", c.APIKey)
	query.Set("ids", strings.Join(parts, ","))
	query.Set("includeNutrition", "true")

	ctx, cancel := context.WithTimeout(ctx, c.bulkTimeout())
	defer cancel()

	resp := &BulkResponse{}
	body, outcome := c.get(ctx, "/recipes/informationBulk", query)
	resp.Outcome = outcome
	if !outcome.OK {
		return resp, nil
	}

	var items []bulkItem
	if err := json.Unmarshal(body, &items); err != nil {
		resp.OK = false
		resp.Message = "malformed bulk response"
		return resp, nil
	}

	for _, item := range items {
		resp.Details = append(resp.Details, item.toDetail())
	}
	return resp, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, Outcome) {
	base := c.baseURL()
	target := base.ResolveReference(&url.URL{Path: path})
	target.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, Outcome{Message: err.Error()}
	}
	req.Header.Set("Accept", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, Outcome{Message: err.Error()}
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup on HTTP response body

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, Outcome{StatusCode: resp.StatusCode, Message: err.Error()}
		}
		return body, Outcome{OK: true, StatusCode: resp.StatusCode}
	case http.StatusUnauthorized:
		return nil, Outcome{StatusCode: resp.StatusCode, Message: "invalid api key"}
	case http.StatusPaymentRequired, http.StatusTooManyRequests:
		return nil, Outcome{StatusCode: resp.StatusCode, Message: "remote quota exhausted"}
	default:
		return nil, Outcome{StatusCode: resp.StatusCode, Message: "unexpected spoonacular response"}
	}
}

func (c *Client) baseURL() *url.URL {
	if c != nil && c.BaseURL != "" {
		if parsed, err := url.Parse(c.BaseURL); err == nil {
			return parsed
		}
	}
	parsed, _ := url.Parse(DefaultBaseURL)
	return parsed
}

func (c *Client) searchTimeout() time.Duration {
	if c != nil && c.SearchTimeout > 0 {
		return c.SearchTimeout
	}
	return DefaultSearchTimeout
}

func (c *Client) bulkTimeout() time.Duration {
	if c != nil && c.BulkTimeout > 0 {
		return c.BulkTimeout
	}
	return DefaultBulkTimeout
}

func joinClean(values []string) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		if item := strings.TrimSpace(value); item != "" {
			parts = append(parts, item)
		}
	}
	return strings.Join(parts, ",")
}
