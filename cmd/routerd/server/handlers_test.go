package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/synnergy-labs/swaprouter/core"
)

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func testServer(t *testing.T) *Server {
	t.Helper()
	reg := core.NewRegistry()
	reg.RegisterChain(core.Chain{ID: 1, Name: "one", Kind: core.ChainKindEVM})
	reg.RegisterChain(core.Chain{ID: 2, Name: "two", Kind: core.ChainKindEVM})
	reg.Freeze()
	c := core.NewCore(reg, nil, nil, core.DefaultConfig(), discardLogger())
	return NewServer(c)
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListChainsReturnsRegisteredChains(t *testing.T) {
	s := testServer(t)
	router := NewRouter(s)

	rec := doRequest(t, router, http.MethodGet, "/v1/chains", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 chains, got %d", len(out))
	}
}

func TestHealthReturnsReport(t *testing.T) {
	s := testServer(t)
	router := NewRouter(s)

	rec := doRequest(t, router, http.MethodGet, "/v1/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := out["ChainsLoaded"]; !ok {
		t.Fatalf("expected ChainsLoaded in health report, got %v", out)
	}
}

func TestPostRouteRejectsMalformedAmount(t *testing.T) {
	s := testServer(t)
	router := NewRouter(s)

	body := routeRequestWire{
		From:     tokenRefWire{Chain: 1, Address: core.NativeSentinel},
		To:       tokenRefWire{Chain: 1, Address: core.NativeSentinel},
		AmountIn: "not-a-number",
	}
	rec := doRequest(t, router, http.MethodPost, "/v1/route", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a malformed amount, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPostRouteRejectsUnregisteredChain(t *testing.T) {
	s := testServer(t)
	router := NewRouter(s)

	body := routeRequestWire{
		From:     tokenRefWire{Chain: 99, Address: core.NativeSentinel},
		To:       tokenRefWire{Chain: 1, Address: core.NativeSentinel},
		AmountIn: "1000",
	}
	rec := doRequest(t, router, http.MethodPost, "/v1/route", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unregistered chain, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPostRouteRejectsUnrecognizedSlippageKind(t *testing.T) {
	s := testServer(t)
	router := NewRouter(s)

	body := routeRequestWire{
		From: tokenRefWire{Chain: 1, Address: core.NativeSentinel}, To: tokenRefWire{Chain: 1, Address: core.NativeSentinel},
		AmountIn: "1000", SlippageKind: "bogus",
	}
	rec := doRequest(t, router, http.MethodPost, "/v1/route", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unrecognized slippage kind, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPostRouteSameChainNoAdaptersReturnsOKWithNoBestRoute(t *testing.T) {
	s := testServer(t)
	router := NewRouter(s)

	body := routeRequestWire{
		From: tokenRefWire{Chain: 1, Address: core.NativeSentinel}, To: tokenRefWire{Chain: 1, Address: core.NativeSentinel},
		AmountIn: "1000", SlippageBps: 50,
	}
	rec := doRequest(t, router, http.MethodPost, "/v1/route", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["best"] != nil {
		t.Fatalf("expected no best route with no adapters registered, got %v", out["best"])
	}
}

func TestRefreshGraphRejectsMissingChainParam(t *testing.T) {
	s := testServer(t)
	router := NewRouter(s)

	rec := doRequest(t, router, http.MethodPost, "/v1/graph/refresh", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a missing chain param, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRefreshGraphAcceptsValidChain(t *testing.T) {
	s := testServer(t)
	router := NewRouter(s)

	rec := doRequest(t, router, http.MethodPost, "/v1/graph/refresh?chain=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
