package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// apiRequest describes one call to the Web API. An empty token uses the
// application credentials.
type apiRequest struct {
	method string
	path   string
	query  url.Values
	body   any
	token  string
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.call(ctx, apiRequest{method: http.MethodGet, path: path, query: query}, out)
}

func (c *Client) call(ctx context.Context, r apiRequest, out any) error {
	if r.token != "" {
		return c.execute(ctx, c.userClient(ctx, r.token), r, out)
	}
	return c.guard(func() error {
		return c.execute(ctx, c.httpClient, r, out)
	})
}

func (c *Client) execute(ctx context.Context, hc *http.Client, r apiRequest, out any) error {
	endpoint := c.baseURL + "/" + strings.TrimLeft(r.path, "/")
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var payload *bytes.Reader
	if r.body != nil {
		raw, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("spotify adapter: marshal %s body: %w", r.path, err)
		}
		payload = bytes.NewReader(raw)
	}

	var req *http.Request
	var err error
	if payload != nil {
		req, err = http.NewRequestWithContext(ctx, r.method, endpoint, payload)
	} else {
		req, err = http.NewRequestWithContext(ctx, r.method, endpoint, nil)
	}
	if err != nil {
		return fmt.Errorf("spotify adapter: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.doWithRetry(hc, req)
	if err != nil {
		return fmt.Errorf("spotify adapter: %s %s: %w", r.method, r.path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("spotify adapter: decode %s: %w", r.path, err)
	}
	return nil
}
