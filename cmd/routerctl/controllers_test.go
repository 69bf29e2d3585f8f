package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestChainsControllerListChains(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chains" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]map[string]any{{"id": 1, "name": "one"}})
	}))
	defer srv.Close()

	ctrl := &ChainsController{client: newRouterClient(srv.URL)}
	out, err := ctrl.ListChains(context.Background())
	if err != nil {
		t.Fatalf("ListChains: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 chain, got %d", len(out))
	}
}

func TestHealthControllerHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"ChainsLoaded": 3})
	}))
	defer srv.Close()

	ctrl := &HealthController{client: newRouterClient(srv.URL)}
	out, err := ctrl.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if out["ChainsLoaded"].(float64) != 3 {
		t.Fatalf("expected ChainsLoaded=3, got %v", out["ChainsLoaded"])
	}
}

func TestGraphControllerRefreshSendsChainQueryParam(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("chain")
		json.NewEncoder(w).Encode(map[string]any{"Chain": 7})
	}))
	defer srv.Close()

	ctrl := &GraphController{client: newRouterClient(srv.URL)}
	out, err := ctrl.Refresh(context.Background(), 7)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if gotQuery != "7" {
		t.Fatalf("expected chain=7 in the query string, got %q", gotQuery)
	}
	if out["Chain"].(float64) != 7 {
		t.Fatalf("expected Chain=7 in response, got %v", out["Chain"])
	}
}

func TestRouteControllerGetRoutePropagatesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "amountIn: not a valid integer amount"})
	}))
	defer srv.Close()

	ctrl := &RouteController{client: newRouterClient(srv.URL)}
	_, err := ctrl.GetRoute(context.Background(), routeRequestWire{AmountIn: "bogus"})
	if err == nil {
		t.Fatal("expected the 400 response to surface as an error")
	}
}

func TestRouteControllerGetRouteDecodesSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body routeRequestWire
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if body.AmountIn != "1000" {
			t.Fatalf("expected amountIn=1000, got %s", body.AmountIn)
		}
		json.NewEncoder(w).Encode(map[string]any{"best": nil, "alternatives": []any{}, "diagnostics": []any{}})
	}))
	defer srv.Close()

	ctrl := &RouteController{client: newRouterClient(srv.URL)}
	out, err := ctrl.GetRoute(context.Background(), routeRequestWire{
		From: tokenRefWire{Chain: 1, Address: "NATIVE"}, To: tokenRefWire{Chain: 1, Address: "NATIVE"},
		AmountIn: "1000",
	})
	if err != nil {
		t.Fatalf("GetRoute: %v", err)
	}
	if _, ok := out["best"]; !ok {
		t.Fatalf("expected a best key in the decoded response, got %v", out)
	}
}
