package eurlex

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"eurlexscraper/pkg/config"
	errs "eurlexscraper/pkg/errors"
	"eurlexscraper/pkg/logger"
)

// Client fetches and parses EUR-Lex search result pages
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	baseURL    string
	origin     string
	logger     logger.Logger
}

// NewClient creates a client from the search configuration
func NewClient(cfg *config.SearchConfig, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = BaseURL
	}
	origin := cfg.Origin
	if origin == "" {
		origin = Origin
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		headers: map[string]string{
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.9",
		},
		baseURL: baseURL,
		origin:  origin,
		logger:  log,
	}
	if cfg.UserAgent != "" {
		c.headers["User-Agent"] = cfg.UserAgent
	}
	return c
}

// ParamsFromConfig returns the search parameters configured in cfg
func ParamsFromConfig(cfg *config.SearchConfig) SearchParams {
	return SearchParams{
		Query:    cfg.Query,
		DateFrom: cfg.DateFrom,
		DateTo:   cfg.DateTo,
	}
}

// SetHeader sets a custom header sent with every request
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// SetHTTPClient replaces the underlying HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// FetchPage requests result page number page and parses it. Failures are
// returned as *errors.Error; nothing is retried.
func (c *Client) FetchPage(ctx context.Context, page int, params SearchParams) (*Page, error) {
	url := GetSearchURL(c.baseURL, page, params)

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	result, err := ParsePage(bytes.NewReader(body), c.origin)
	if err != nil {
		return nil, err
	}
	result.Number = page

	return result, nil
}

// get performs a GET with the configured headers and returns the body of
// a 2xx response
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, errs.New(errs.ErrorTypeUnknown, err, "failed to create request: %v", err)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    url,
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errs.New(errs.ErrorTypeCancelled, ctx.Err(), "request cancelled: %v", ctx.Err())
		}
		return nil, errs.New(errs.ErrorTypeNetwork, err, "network error: %v", err)
	}
	defer resp.Body.Close()

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"url":      url,
		"status":   resp.StatusCode,
		"duration": duration,
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, errs.NewHTTPStatus(resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.New(errs.ErrorTypeNetwork, err, "failed to read response body: %v", err)
	}

	return body, nil
}

