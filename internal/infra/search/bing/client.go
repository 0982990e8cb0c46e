// Package bing implements search.Provider against the Bing Web Search v7 API.
package bing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/bryanwahyu/content-analyzer/internal/domain/search"
	"github.com/bryanwahyu/content-analyzer/internal/logging"
	"github.com/bryanwahyu/content-analyzer/internal/resilience/circuitbreaker"
)

const (
	// DefaultEndpoint is the Bing Web Search v7 endpoint.
	DefaultEndpoint = "https://api.bing.microsoft.com/v7.0/search"

	// SubscriptionKeyHeader carries the API credential.
	SubscriptionKeyHeader = "Ocp-Apim-Subscription-Key"

	maxErrorBody = 4 << 10
)

// Config configures a Client. Zero values fall back to defaults.
type Config struct {
	APIKey     string
	Endpoint   string
	SafeSearch string
	HTTPClient *http.Client
}

// Client performs one web search per call.
type Client struct {
	cfg     Config
	breaker *circuitbreaker.CircuitBreaker
	logger  logrus.FieldLogger
}

// NewClient builds a Client. breaker and logger may be nil.
func NewClient(cfg Config, breaker *circuitbreaker.CircuitBreaker, logger logrus.FieldLogger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.SafeSearch == "" {
		cfg.SafeSearch = "Strict"
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{cfg: cfg, breaker: breaker, logger: logger}
}

type webSearchResponse struct {
	WebPages *struct {
		Value []webPage `json:"value"`
	} `json:"webPages"`
}

type webPage struct {
	Name    *string `json:"name"`
	URL     *string `json:"url"`
	Snippet *string `json:"snippet"`
}

// Search returns results in provider order, without deduplication.
// Network and status failures are *search.TransportError; an unexpected body
// is *search.SearchError.
func (c *Client) Search(ctx context.Context, query string, count int) ([]search.Result, error) {
	if c.cfg.APIKey == "" {
		return nil, search.ErrDisabled
	}
	if c.breaker == nil {
		return c.doSearch(ctx, query, count)
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doSearch(ctx, query, count)
	})
	if err != nil {
		if circuitbreaker.IsRejection(err) {
			return nil, &search.TransportError{Err: fmt.Errorf("%s rejected request: %w", c.breaker.Name(), err)}
		}
		return nil, err
	}
	return out.([]search.Result), nil
}

func (c *Client) doSearch(ctx context.Context, query string, count int) ([]search.Result, error) {
	reqURL, err := url.Parse(c.cfg.Endpoint)
	if err != nil {
		return nil, &search.TransportError{Err: fmt.Errorf("parse endpoint: %w", err)}
	}
	params := reqURL.Query()
	params.Set("q", query)
	params.Set("count", strconv.Itoa(count))
	params.Set("safeSearch", c.cfg.SafeSearch)
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, &search.TransportError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set(SubscriptionKeyHeader, c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	log := logging.WithRequestID(ctx, c.logger)
	log.WithField("count", count).Debug("sending bing web search request")

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, &search.TransportError{Err: err}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("failed to close search response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &search.TransportError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("bing api returned %s: %s", resp.Status, string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &search.TransportError{Err: fmt.Errorf("read response body: %w", err)}
	}

	var parsed webSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &search.SearchError{Err: fmt.Errorf("decode web search response: %w", err)}
	}
	if parsed.WebPages == nil {
		return []search.Result{}, nil
	}

	results := make([]search.Result, 0, len(parsed.WebPages.Value))
	for _, p := range parsed.WebPages.Value {
		results = append(results, search.Result{Title: p.Name, URL: p.URL, Snippet: p.Snippet})
	}
	log.WithField("results", len(results)).Debug("bing web search completed")
	return results, nil
}
