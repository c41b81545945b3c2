// Package oddsfeed pulls live win odds from the tote feed provider.
package oddsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/yourusername/trackside/internal/config"
)

// OddsTick is one observed price from the provider, keyed by track and
// race number. The ingestion service resolves these to race IDs.
type OddsTick struct {
	TrackCode     string    `json:"track_code"`
	RaceNumber    int       `json:"race_number"`
	ProgramNumber int       `json:"program_number"`
	DecimalOdds   float64   `json:"decimal_odds"`
	TakenAt       time.Time `json:"taken_at"`
}

type oddsResponse struct {
	Odds []OddsTick `json:"odds"`
}

// Client polls the odds provider's REST API with rate limiting and
// retry on transient failures
type Client struct {
	client  *retryablehttp.Client
	limiter *rate.Limiter
	baseURL string
	apiKey  string
	logger  *log.Logger
}

// NewClient creates an odds feed client from configuration
func NewClient(cfg *config.OddsFeedConfig, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	retryClient.RetryMax = cfg.RetryAttempts
	retryClient.RetryWaitMin = 100 * time.Millisecond
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.CheckRetry = retryPolicy()
	retryClient.Logger = logger

	return &Client{
		client:  retryClient,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
		baseURL: cfg.APIURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

// FetchOdds retrieves the current win odds for one track's card date
func (c *Client) FetchOdds(ctx context.Context, trackCode string, date time.Time) ([]OddsTick, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	endpoint := fmt.Sprintf("%s/odds?track=%s&date=%s",
		c.baseURL, url.QueryEscape(trackCode), date.Format("2006-01-02"))

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build odds request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("odds request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("odds request returned %d: %s", resp.StatusCode, string(body))
	}

	var payload oddsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode odds response: %w", err)
	}

	c.logger.Printf("Fetched %d odds ticks for %s", len(payload.Odds), trackCode)
	return payload.Odds, nil
}

// Close closes any resources held by the client
func (c *Client) Close() error {
	c.client.HTTPClient.CloseIdleConnections()
	return nil
}

// retryPolicy defines which HTTP responses should trigger a retry
func retryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			return true, err
		}

		if resp.StatusCode == 429 || resp.StatusCode == 500 || resp.StatusCode == 502 || resp.StatusCode == 503 || resp.StatusCode == 504 {
			return true, nil
		}

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return false, nil
		}

		return false, nil
	}
}
