package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
	session *Session
}

func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q", baseURL)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// mapStatus turns a non-2xx answer into one of the package errors.
func mapStatus(code int, body []byte) error {
	var e struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(body, &e)

	switch {
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusTooManyRequests:
		return ErrLimitReached
	case code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrUnavailable, e.Error)
	default:
		if e.Error == "" {
			e.Error = http.StatusText(code)
		}
		return &APIError{Status: code, Message: e.Error}
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, auth bool, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		if c.session == nil {
			return ErrNotLoggedIn
		}
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatus(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", false, nil, nil)
}

type credentials struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

func (c *HTTPClient) SignUp(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/signup", false, credentials{username, password}, nil)
}

// SignIn authenticates and keeps the session for later calls.
func (c *HTTPClient) SignIn(ctx context.Context, username, password string) (*Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/signin", false, credentials{username, password}, &s); err != nil {
		return nil, err
	}
	c.session = &s
	return &s, nil
}

func (c *HTTPClient) Logout() {
	c.session = nil
}

// userBody is the {userId} body the per-user endpoints accept.
func (c *HTTPClient) userBody(extra map[string]any) map[string]any {
	b := map[string]any{}
	if c.session != nil {
		b["userId"] = c.session.UserID
	}
	for k, v := range extra {
		b[k] = v
	}
	return b
}

func (c *HTTPClient) Usage(ctx context.Context) (int, error) {
	var out struct {
		Usage int `json:"usage"`
	}
	err := c.do(ctx, http.MethodPost, "/api/usage", true, c.userBody(nil), &out)
	return out.Usage, err
}

// CheckUsage spends one request of today's quota.
func (c *HTTPClient) CheckUsage(ctx context.Context) (bool, error) {
	var out struct {
		Allowed bool `json:"allowed"`
	}
	err := c.do(ctx, http.MethodPost, "/api/usage/check", true, c.userBody(nil), &out)
	return out.Allowed, err
}

func (c *HTTPClient) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	if err := c.do(ctx, http.MethodPost, "/api/stats", true, c.userBody(nil), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// RecordLogin returns a human-readable outcome.
func (c *HTTPClient) RecordLogin(ctx context.Context) (string, error) {
	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/stats/login", true, c.userBody(nil), &out); err != nil {
		return "", err
	}
	if out.Message != "" {
		return out.Message, nil
	}
	return "Login recorded", nil
}

func (c *HTTPClient) RecordTopic(ctx context.Context, topic string) (bool, error) {
	var out struct {
		Updated bool `json:"updated"`
	}
	err := c.do(ctx, http.MethodPost, "/api/stats/topic", true, c.userBody(map[string]any{"topic": topic}), &out)
	return out.Updated, err
}

func (c *HTTPClient) Badges(ctx context.Context) ([]Badge, error) {
	var list []Badge
	if err := c.do(ctx, http.MethodPost, "/api/badges", true, c.userBody(nil), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Award runs a badge pass. grade is optional.
func (c *HTTPClient) Award(ctx context.Context, grade *float64) ([]string, error) {
	extra := map[string]any{}
	if grade != nil {
		extra["extra"] = map[string]any{"grade": *grade}
	}
	var out struct {
		Awarded []string `json:"awarded"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/badges/update", true, c.userBody(extra), &out); err != nil {
		return nil, err
	}
	return out.Awarded, nil
}
