package clientcli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pspdfkit/nudocs"
)

// DocumentsPath is the collection endpoint of the public API.
const DocumentsPath = "/api/public/documents"

// DefaultUserAgent is sent when no other user agent is configured.
const DefaultUserAgent = "nudocs-cli"

// Client performs operations against the Nudocs API.
type Client struct {
	config     *Config
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a new Client with the given config and options.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config:     cfg.WithDefaults(),
		httpClient: &http.Client{},
		userAgent:  DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the normalized service URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Do sends an authenticated request to path, relative to the base URL.
// Headers in header are applied after Authorization and may override it.
// A non-2xx response is returned as *APIError; the caller owns the body
// of a successful response.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, header http.Header) (*http.Response, error) {
	apiKey, err := c.config.Credentials.APIKey()
	if err != nil {
		return nil, err
	}

	if body == nil {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	for k, vs := range header {
		req.Header[k] = vs
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	slog.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, parseServerError(resp.StatusCode, respBody)
	}

	return resp, nil
}

// Create uploads data as a new document and returns its ULID and title.
// The owner is not part of the create response and is left empty.
func (c *Client) Create(ctx context.Context, filename, contentType string, data []byte) (*nudocs.Document, error) {
	form, err := BuildMultipart("file", filename, contentType, data)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set("Content-Type", form.ContentType)

	resp, err := c.Do(ctx, http.MethodPost, DocumentsPath, bytes.NewReader(form.Bytes), header)
	if err != nil {
		return nil, err
	}

	var created createResponse
	if err := decodeJSON(resp, &created); err != nil {
		return nil, err
	}

	return &nudocs.Document{ULID: created.ULID, Title: created.Title}, nil
}

// List returns every document visible to the API key.
func (c *Client) List(ctx context.Context) ([]nudocs.Document, error) {
	resp, err := c.Do(ctx, http.MethodGet, DocumentsPath, nil, nil)
	if err != nil {
		return nil, err
	}

	var docs []nudocs.Document
	if err := decodeJSON(resp, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Link returns the shareable edit URL of a document.
func (c *Client) Link(ctx context.Context, ulid string) (string, error) {
	if ulid == "" {
		return "", ErrEmptyULID
	}

	resp, err := c.Do(ctx, http.MethodGet, documentPath(ulid), nil, nil)
	if err != nil {
		return "", err
	}

	var link nudocs.DocumentLink
	if err := decodeJSON(resp, &link); err != nil {
		return "", err
	}
	return link.URL, nil
}

// Export converts a document to mimeType. The returned body must be closed
// by the caller.
func (c *Client) Export(ctx context.Context, ulid, mimeType string) (io.ReadCloser, error) {
	if ulid == "" {
		return nil, ErrEmptyULID
	}

	payload, err := json.Marshal(exportRequest{MIMEType: mimeType})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")

	resp, err := c.Do(ctx, http.MethodPost, documentPath(ulid), bytes.NewReader(payload), header)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Delete removes a document.
func (c *Client) Delete(ctx context.Context, ulid string) error {
	if ulid == "" {
		return ErrEmptyULID
	}

	resp, err := c.Do(ctx, http.MethodDelete, documentPath(ulid), nil, nil)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

func documentPath(ulid string) string {
	return DocumentsPath + "/" + url.PathEscape(ulid)
}

// decodeJSON decodes and closes a response body.
func decodeJSON(resp *http.Response, v any) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// parseServerError extracts the error message from a failed response.
// The JSON "error" field wins, then "message"; otherwise the raw body is
// used as is.
func parseServerError(statusCode int, body []byte) error {
	msg := string(body)

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		if s, ok := payload["error"].(string); ok && s != "" {
			msg = s
		} else if s, ok := payload["message"].(string); ok && s != "" {
			msg = s
		}
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    msg,
	}
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

// Error returns the server's message. An empty response body yields a
// generic message naming the status.
func (e *APIError) Error() string {
	if e.Message == "" {
		return "API error (" + strconv.Itoa(e.StatusCode) + ")"
	}
	return e.Message
}

// Is reports whether target matches this error.
// It matches if target is an *APIError with the same StatusCode.
func (e *APIError) Is(target error) bool {
	var t *APIError
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// Sentinel errors for common API error conditions.
// Use errors.Is() to check for these conditions.
var (
	// ErrNotFound is returned when the requested document does not exist (404).
	ErrNotFound = &APIError{StatusCode: http.StatusNotFound}

	// ErrUnauthorized is returned when the API key is missing or invalid (401).
	ErrUnauthorized = &APIError{StatusCode: http.StatusUnauthorized}

	// ErrForbidden is returned when the key may not access the document (403).
	ErrForbidden = &APIError{StatusCode: http.StatusForbidden}
)
