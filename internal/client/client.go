// Package client talks to the results file server: it lists result files,
// passes the password gate and fetches one result file.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/auth"
	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/catalog"
	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/results"
	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/storage"
)

type Client struct {
	base  string
	http  *http.Client
	log   *zap.Logger
	token string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }
func WithLogger(l *zap.Logger) Option      { return func(c *Client) { c.log = l } }

// New returns a client for the server at base, e.g. "http://localhost:3000".
func New(base string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimSuffix(base, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
		log:  zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c
}

// Token is the viewer token from the last successful VerifyPassword.
func (c *Client) Token() string { return c.token }

// ListResults returns the result file names the server offers.
func (c *Client) ListResults(ctx context.Context) ([]string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/results-list", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, statusError("list results", resp)
	}
	var names []string
	if err := json.NewDecoder(resp.Body).Decode(&names); err != nil {
		return nil, fmt.Errorf("decode results list: %w", err)
	}
	return names, nil
}

// VerifyPassword runs the gate check. A rejected password is reported as
// auth.ErrGateRejected.
func (c *Client) VerifyPassword(ctx context.Context, password string) error {
	body, _ := json.Marshal(map[string]string{"password": password})
	resp, err := c.do(ctx, http.MethodPost, "/verify-password", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return statusError("verify password", resp)
	}
	var out struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode gate response: %w", err)
	}
	if !out.Success {
		return auth.ErrGateRejected
	}
	c.token = out.Token
	return nil
}

// FetchResults downloads one result file by identifier and normalizes it.
// There is exactly one attempt; any failure is returned as is.
func (c *Client) FetchResults(ctx context.Context, id string) (*results.Dataset, error) {
	name := catalog.FileName(id)
	resp, err := c.do(ctx, http.MethodGet, "/results-file/"+url.PathEscape(name), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, name)
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("fetch %s: %w", name, auth.ErrGateRejected)
	default:
		return nil, statusError("fetch "+name, resp)
	}
	ds, err := results.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	c.log.Debug("results fetched", zap.String("file", name), zap.Int("records", len(ds.Order)), zap.Strings("subjects", ds.Subjects))
	return ds, nil
}

// Open runs the selector flow: check the password, build the file name
// from the selection, make sure the server lists it, then fetch it.
func (c *Client) Open(ctx context.Context, sel catalog.Selection, password string) (*results.Dataset, string, error) {
	name, err := sel.FileName()
	if err != nil {
		return nil, "", err
	}
	names, err := c.ListResults(ctx)
	if err != nil {
		return nil, "", err
	}
	if err := c.VerifyPassword(ctx, password); err != nil {
		return nil, "", err
	}
	if !catalog.Contains(names, name) {
		return nil, "", fmt.Errorf("%w: %s", storage.ErrNotFound, name)
	}
	id := catalog.ID(name)
	ds, err := c.FetchResults(ctx, id)
	return ds, id, err
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.log.Debug("request", zap.String("method", method), zap.String("path", path))
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func statusError(op string, resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%s: server returned %s: %s", op, resp.Status, strings.TrimSpace(string(b)))
}
