package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/http2"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries a per-request correlation id to the backend
const RequestIDHeader = "X-Request-ID"

// ClientConfig holds configuration for the HTTP client
type ClientConfig struct {
	Timeout            time.Duration
	InsecureSkipVerify bool
	EnableHTTP2        bool
	// RateLimit caps outbound requests per second; zero disables pacing
	RateLimit float64
	// RateBurst is the limiter bucket size
	RateBurst int
}

// DefaultClientConfig returns the default HTTP client configuration
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:            30 * time.Second,
		InsecureSkipVerify: false, // Only set to true in development
		EnableHTTP2:        true,
		RateLimit:          0,
		RateBurst:          1,
	}
}

// Client provides a wrapper around http.Client with improved error handling
type Client struct {
	client  *http.Client
	config  ClientConfig
	limiter *rate.Limiter
	metrics *Metrics
}

// ClientOption customizes a Client
type ClientOption func(*Client)

// WithMetrics records every request in the given metrics
func WithMetrics(metrics *Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.client = httpClient
	}
}

// NewClient creates a new HTTP client
func NewClient(config ClientConfig, options ...ClientOption) (*Client, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: config.InsecureSkipVerify,
		},
	}

	if config.EnableHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			return nil, fmt.Errorf("failed to configure HTTP/2 transport: %w", err)
		}
	}

	c := &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
		config: config,
	}

	if config.RateLimit > 0 {
		burst := config.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(config.RateLimit), burst)
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

// Request makes an HTTP request and returns the response
func (c *Client) Request(ctx context.Context, method, url string, body []byte, headers map[string]string) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("request rate limiter: %w", err)
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	// Set default Content-Type if not provided
	if _, exists := headers["Content-Type"]; !exists {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	// Set headers
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.observe(method, "error", time.Since(start))
		return nil, fmt.Errorf("failed to send HTTP request: %w", err)
	}
	c.metrics.observe(method, strconv.Itoa(resp.StatusCode), time.Since(start))

	return resp, nil
}

// ReadResponseBody reads and closes the response body
func (c *Client) ReadResponseBody(resp *http.Response) ([]byte, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}
	if resp.Body == nil {
		return []byte{}, nil
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}
