package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/studiowebux/voidrunner/internal/types"
)

// DefaultEndpoint is the public execution service
const DefaultEndpoint = "https://voidrunner.vercel.app/api"

// ErrTransport marks a call to the execution service that did not complete
var ErrTransport = errors.New("execution service unreachable")

// Runner sends one execution request to the remote service
type Runner interface {
	Execute(ctx context.Context, req types.ExecutionRequest) (*types.ExecutionResponse, error)
}

// Client is the HTTP Runner
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds each call. Zero means no timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a client posting to endpoint
func NewClient(endpoint string, opts ...ClientOption) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the service URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Execute posts req as JSON and decodes the service reply. Every failure to
// obtain a decodable reply wraps ErrTransport. The HTTP status is not
// consulted once the body decodes.
func (c *Client) Execute(ctx context.Context, req types.ExecutionRequest) (*types.ExecutionResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrTransport, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrTransport, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrTransport, err)
	}

	var out types.ExecutionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: malformed response (status %d): %v", ErrTransport, resp.StatusCode, err)
	}
	return &out, nil
}
