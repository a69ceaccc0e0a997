// Package rest is the JSON-over-HTTP plumbing shared by the auth and chat
// clients. It never interprets tokens: callers sign requests explicitly.
package rest

import (
	"bytes"
	"chat-session/errors"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	log        *slog.Logger
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client rooted at baseURL.
// Idempotent requests are retried according to policy.
func NewClient(log *slog.Logger, baseURL string, timeout time.Duration, policy RetryPolicy) *Client {
	return &Client{
		log:     log,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: newRetryTransport(log, http.DefaultTransport, policy),
		},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// NewRequest builds a request for path, JSON-encoding body when it is not nil.
func (c *Client) NewRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Sign arms req with a bearer token. An empty token leaves req untouched.
func Sign(req *http.Request, token string) {
	if token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

// Do executes req and buffers the whole response body.
func (c *Client) Do(req *http.Request) (*Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("REST call", "method", req.Method, "path", req.URL.Path, "status", resp.StatusCode)
	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
		Headers:    resp.Header,
	}, nil
}

// Send is NewRequest + Sign + Do.
func (c *Client) Send(ctx context.Context, method, path, token string, body any) (*Response, error) {
	req, err := c.NewRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	Sign(req, token)
	return c.Do(req)
}

type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON unmarshals the response body into v.
func (r *Response) JSON(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Err returns an *errors.APIError for non-2xx responses.
// The server message is read from "message", then "error".
func (r *Response) Err() error {
	if r.OK() {
		return nil
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(r.Body, &payload)
	message := payload.Message
	if message == "" {
		message = payload.Error
	}
	return errors.NewAPIError(r.StatusCode, message)
}

// Decode fails with Err on non-2xx responses, otherwise unmarshals into v.
func (r *Response) Decode(v any) error {
	if err := r.Err(); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return r.JSON(v)
}
