// Package adapters implements core.RouterAdapter for each external router
// named in spec §4.4: LiFi, Jupiter, Relay, Squid, a Uniswap-v3-style same
// chain router, and a PancakeSwap-style same-chain router, plus the two
// bridge adapters (Stargate, Socket) spec §9 names.
//
// Each adapter follows the shape of the teacher's
// cmd/xchainserver/server/handlers.go JSON request/response plumbing
// (encode request, POST, decode response, map into domain types) but
// threads context.Context through the HTTP call the way the teacher's
// handlers never do — required here so a canceled or expired request
// aborts the in-flight call (spec §4.4, §5).
package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/synnergy-labs/swaprouter/core"
)

// httpClient is the minimal JSON-over-HTTP helper every adapter in this
// package shares, grounded on the teacher's writeJSON/decode pattern.
type httpClient struct {
	base *http.Client
	log  *logrus.Entry
}

func newHTTPClient(log *logrus.Entry) *httpClient {
	return &httpClient{base: &http.Client{Timeout: 10 * time.Second}, log: log}
}

func (c *httpClient) getJSON(ctx context.Context, url string, headers map[string]string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(req, out)
}

func (c *httpClient) postJSON(ctx context.Context, url string, headers map[string]string, body, out interface{}) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(req, out)
}

func (c *httpClient) do(req *http.Request, out interface{}) error {
	resp, err := c.base.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return &httpStatusError{status: resp.StatusCode, body: string(data)}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

type httpStatusError struct {
	status int
	body   string
}

func (e *httpStatusError) Error() string {
	return "adapter http error"
}

func (e *httpStatusError) StatusCode() int { return e.status }

// classifyHTTPErr maps a transport/HTTP-level error into the AdapterError
// taxonomy of spec §4.4.
func classifyHTTPErr(adapter string, err error) *core.AdapterError {
	if err == context.DeadlineExceeded || errIsDeadline(err) {
		return core.NewAdapterError(adapter, core.AdapterTimeout, "request deadline exceeded", err)
	}
	if se, ok := err.(*httpStatusError); ok {
		if se.status == http.StatusTooManyRequests {
			return core.NewAdapterError(adapter, core.AdapterRateLimited, "rate limited", err)
		}
		return core.NewAdapterError(adapter, core.AdapterTransport, "provider returned an error status", err)
	}
	return core.NewAdapterError(adapter, core.AdapterTransport, err.Error(), err)
}

func errIsDeadline(err error) bool {
	type deadliner interface{ Timeout() bool }
	d, ok := err.(deadliner)
	return ok && d.Timeout()
}
