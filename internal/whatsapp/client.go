package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/smate-hq/whatsapp-mcp/internal/config"
)

// TransportError indicates the call never produced a usable JSON document:
// the connection failed or the response body was not JSON. Remote rejections
// arrive as regular JSON documents and are NOT transport errors; detecting
// them is the caller's job.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("whatsapp: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client issues authenticated requests against the Meta Graph API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Shared HTTP client with connection pooling
var sharedHTTPClient = &http.Client{
	Timeout: config.DefaultTimeout,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DisableKeepAlives:   false,
	},
}

// NewClient creates an authenticated Graph API client
func NewClient(cfg config.Config) *Client {
	// Use a dedicated client if a specific timeout is requested,
	// otherwise use the shared one.
	client := sharedHTTPClient
	if cfg.Timeout > 0 && cfg.Timeout != sharedHTTPClient.Timeout {
		client = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: sharedHTTPClient.Transport,
		}
	}

	return &Client{
		baseURL:    cfg.BaseURL(),
		token:      cfg.AccessToken,
		httpClient: client,
	}
}

// Request performs one authenticated call and returns the parsed JSON body.
// GET and DELETE encode data as query parameters; POST sends it as a JSON
// body. The body is returned for every HTTP status: the Graph API signals
// errors inside the JSON payload, so error detection belongs to the caller.
// Exactly one attempt is made per invocation.
func (c *Client) Request(ctx context.Context, method, endpoint string, data map[string]interface{}) (map[string]interface{}, error) {
	u := fmt.Sprintf("%s/%s", c.baseURL, endpoint)

	var body io.Reader
	switch method {
	case http.MethodGet, http.MethodDelete:
		if len(data) > 0 {
			u += "?" + encodeQuery(data)
		}
	case http.MethodPost:
		payload, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(payload)
	default:
		return nil, fmt.Errorf("unsupported method: %s", method)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: fmt.Sprintf("%s %s", method, endpoint), Err: err}
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &TransportError{Op: fmt.Sprintf("decoding %s %s response", method, endpoint), Err: err}
	}

	return result, nil
}

// Post issues a POST with a typed payload. The payload is marshaled through
// an intermediate map so Request keeps a single signature.
func (c *Client) Post(ctx context.Context, endpoint string, payload interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	return c.Request(ctx, http.MethodPost, endpoint, data)
}

func encodeQuery(data map[string]interface{}) string {
	values := url.Values{}
	for key, val := range data {
		values.Set(key, fmt.Sprint(val))
	}
	return values.Encode()
}
