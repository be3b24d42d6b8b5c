package clerk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"bodylog/internal/logging"
)

// APIError is a non-2xx response from the Clerk API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("clerk api error: %d - %s", e.StatusCode, e.Body)
}

// Client calls the Clerk backend API. Requests pass through a local
// token-bucket limiter so bursts of account events stay within the
// provider's documented 100 req/min budget.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        logging.Logger
}

// NewClient creates a Client for the given base URL and bearer API key.
func NewClient(baseURL, apiKey string, log logging.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(100.0/60.0), 20),
		log:        log.With("component", "clerk-client"),
	}
}

// MergeUserMetadata patches the provider user's public metadata, merging the
// given keys into whatever is already stored. Failures are logged and
// returned to the caller; there is no retry.
func (c *Client) MergeUserMetadata(ctx context.Context, providerID string, metadata map[string]any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(map[string]any{"public_metadata": metadata})
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	endpoint := c.baseURL + "/v1/users/" + url.PathEscape(providerID) + "/metadata"
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error(ctx, "metadata merge failed", "providerId", providerID, "error", err)
		return fmt.Errorf("clerk request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(snippet)}
		c.log.Error(ctx, "metadata merge rejected", "providerId", providerID, "status", resp.StatusCode)
		return apiErr
	}

	c.log.Info(ctx, "metadata merged", "providerId", providerID)
	return nil
}
