package main

// client.go – the HTTP client routerctl's commands share, grounded on
// core/adapters/client.go's shared httpClient shape (base URL + *http.Client
// + getJSON/postJSON helpers) but pointed at routerd's own /v1 API (spec
// §6.1) rather than an external provider.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// routerClient talks to one routerd instance over HTTP.
type routerClient struct {
	baseURL string
	http    *http.Client
}

func newRouterClient(baseURL string) *routerClient {
	return &routerClient{baseURL: baseURL, http: &http.Client{Timeout: 15 * time.Second}}
}

func (c *routerClient) postJSON(ctx context.Context, path string, body, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *routerClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	full := c.baseURL + path
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *routerClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var wireErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&wireErr)
		if wireErr.Error == "" {
			wireErr.Error = resp.Status
		}
		return fmt.Errorf("routerd: %s", wireErr.Error)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
