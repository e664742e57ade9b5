// Package aiclient talks to the Python AI service over HTTP. Calls are never
// retried; every failure is reported as common.ErrUpstream.
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/aitutor/internal/common"
)

// maxResponseBytes caps how much of an upstream reply is read.
const maxResponseBytes = 4 << 20

// Request describes one call to the AI service.
type Request struct {
	Method  string
	Path    string
	Subject string
	UserID  string
	Body    any
}

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New builds a client for baseURL with a per-request timeout.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse ai service url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("ai service url %q must be absolute", baseURL)
	}
	return &Client{baseURL: u, httpClient: &http.Client{Timeout: timeout}}, nil
}

func (c *Client) endpoint(path, subject string) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if subject != "" {
		u.RawQuery = url.Values{"subject": []string{subject}}.Encode()
	}
	return u.String()
}

// Call performs the request and returns the decoded JSON object.
func (c *Client) Call(ctx context.Context, r Request) (map[string]any, error) {
	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, c.endpoint(r.Path, r.Subject), body)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", common.ErrUpstream, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, r.UserID)
}

// UploadPDF forwards a document as multipart field "file" to /pdf/upload.
func (c *Client) UploadPDF(ctx context.Context, userID, filename string, content []byte) (map[string]any, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/pdf/upload", ""), &buf)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", common.ErrUpstream, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(req, userID)
}

// Health queries the AI service /health endpoint.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	return c.Call(ctx, Request{Method: http.MethodGet, Path: "/health"})
}

func (c *Client) do(req *http.Request, userID string) (map[string]any, error) {
	req.Header.Set("Accept", "application/json")
	if userID != "" {
		req.Header.Set(common.UserIDHeaderName, userID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", common.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s %s returned %d", common.ErrUpstream, req.Method, req.URL.Path, resp.StatusCode)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", common.ErrUpstream, err)
	}
	switch body := v.(type) {
	case map[string]any:
		return body, nil
	case nil:
		return map[string]any{}, nil
	default:
		// arrays and scalars are kept under "data" so callers can still annotate the reply
		return map[string]any{"data": body}, nil
	}
}
