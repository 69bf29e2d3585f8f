package core

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecordRequestIncrementsOutcomeAndDerivedCounters(t *testing.T) {
	m := NewMetrics(discardLogger())
	m.RecordRequest("ok")
	m.RecordRequest("no_route")
	m.RecordRequest("timeout")
	m.RecordRequest("no_route")

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("no_route")); got != 2 {
		t.Fatalf("expected 2 no_route requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.noRouteTotal); got != 2 {
		t.Fatalf("expected noRouteTotal=2, got %v", got)
	}
	if got := testutil.ToFloat64(m.timeoutTotal); got != 1 {
		t.Fatalf("expected timeoutTotal=1, got %v", got)
	}
}

func TestMetricsRecordAdapterError(t *testing.T) {
	m := NewMetrics(discardLogger())
	m.RecordAdapterError("lifi", AdapterTransport)
	m.RecordAdapterError("lifi", AdapterTransport)
	m.RecordAdapterError("relay", AdapterTimeout)

	if got := testutil.ToFloat64(m.adapterErrorsTotal.WithLabelValues("lifi", string(AdapterTransport))); got != 2 {
		t.Fatalf("expected 2 lifi transport errors, got %v", got)
	}
	if got := testutil.ToFloat64(m.adapterErrorsTotal.WithLabelValues("relay", string(AdapterTimeout))); got != 1 {
		t.Fatalf("expected 1 relay timeout error, got %v", got)
	}
}

func TestMetricsSetGraphEdgesAndRefreshCounter(t *testing.T) {
	m := NewMetrics(discardLogger())
	m.SetGraphEdges(1, 42)
	if got := testutil.ToFloat64(m.graphEdgesGauge.WithLabelValues(chainLabel(1))); got != 42 {
		t.Fatalf("expected 42 edges recorded for chain 1, got %v", got)
	}

	m.RecordGraphRefresh(1, "hot")
	m.RecordGraphRefresh(1, "hot")
	if got := testutil.ToFloat64(m.graphRefreshTotal.WithLabelValues(chainLabel(1), "hot")); got != 2 {
		t.Fatalf("expected 2 hot-tier refreshes for chain 1, got %v", got)
	}
}

func TestMetricsHandlerServesRegisteredSeries(t *testing.T) {
	m := NewMetrics(discardLogger())
	m.RecordRequest("ok")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "swaprouter_requests_total") {
		t.Fatal("expected the requests_total series in the scraped output")
	}
}
