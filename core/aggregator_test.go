package core

import (
	"context"
	"testing"
	"time"
)

// fakeAdapter is a RouterAdapter test double: it returns a fixed Route, a
// fixed AdapterError, or blocks until ctx is canceled, whichever its fields
// request — grounded on core/adapters package real adapters' shape but with
// no network call.
type fakeAdapter struct {
	name      string
	crossChain bool
	supports  bool
	route     *Route
	err       *AdapterError
	block     bool
}

func (f *fakeAdapter) Name() string { return f.name }
func (f *fakeAdapter) Supports(reg *Registry, from, to TokenRef) bool { return f.supports }
func (f *fakeAdapter) Capabilities() Capabilities { return Capabilities{CrossChain: f.crossChain, Priority: 1} }
func (f *fakeAdapter) Quote(ctx context.Context, reg *Registry, req RouteRequest) (*Route, *AdapterError) {
	if f.block {
		<-ctx.Done()
		return nil, NewAdapterError(f.name, AdapterTimeout, "deadline exceeded", ctx.Err())
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.route, nil
}

func simpleRoute(amountOut uint64) *Route {
	return &Route{
		ID: "r1", Source: "fake",
		Steps: []RouteStep{{
			Kind: StepSwap, AmountIn: AmountFromUint64(1000), AmountOutQuoted: AmountFromUint64(amountOut),
		}},
		AmountIn: AmountFromUint64(1000), AmountOutQuoted: AmountFromUint64(amountOut),
	}
}

func testCore(t *testing.T) (*Registry, *Graph) {
	t.Helper()
	reg := NewRegistry()
	reg.RegisterChain(Chain{ID: 1, Name: "one"})
	reg.RegisterChain(Chain{ID: 2, Name: "two"})
	reg.Freeze()
	g := NewGraph(DefaultGraphConfig(), []CanonicalChainId{1, 2})
	return reg, g
}

func TestAggregatorGetRouteRejectsUnregisteredChain(t *testing.T) {
	reg, g := testCore(t)
	pf := NewPathfinder(reg)
	agg := NewAggregator(reg, g, pf, nil, AggregatorConfig{})

	a := testTokenRef(1, "aaa")
	unknown := testTokenRef(99, "zzz")
	_, err := agg.GetRoute(context.Background(), RouteRequest{From: a, To: unknown, AmountIn: AmountFromUint64(1), Deadline: time.Second, Slippage: FixedSlippage(50)})
	if err == nil {
		t.Fatal("expected an error for an unregistered chain")
	}
}

func TestAggregatorGetRoutePicksHighestScoringCandidate(t *testing.T) {
	reg, g := testCore(t)
	pf := NewPathfinder(reg)
	good := &fakeAdapter{name: "good", supports: true, route: simpleRoute(950)}
	bad := &fakeAdapter{name: "bad", supports: true, route: simpleRoute(100)}
	agg := NewAggregator(reg, g, pf, []RouterAdapter{good, bad}, AggregatorConfig{})

	a, b := testTokenRef(1, "aaa"), testTokenRef(1, "bbb")
	resp, err := agg.GetRoute(context.Background(), RouteRequest{From: a, To: b, AmountIn: AmountFromUint64(1000), Deadline: time.Second, Slippage: FixedSlippage(50)})
	if err != nil {
		t.Fatalf("GetRoute: %v", err)
	}
	if resp.Best == nil {
		t.Fatal("expected a best route")
	}
	if resp.Best.AmountOutQuoted.Cmp(AmountFromUint64(950)) != 0 {
		t.Fatalf("expected the higher-output candidate to win, got %s", resp.Best.AmountOutQuoted.String())
	}
}

func TestAggregatorGetRouteCollectsDiagnosticsOnAdapterFailure(t *testing.T) {
	reg, g := testCore(t)
	pf := NewPathfinder(reg)
	failing := &fakeAdapter{name: "failing", supports: true, err: NewAdapterError("failing", AdapterTransport, "boom", nil)}
	agg := NewAggregator(reg, g, pf, []RouterAdapter{failing}, AggregatorConfig{})

	a, b := testTokenRef(1, "aaa"), testTokenRef(1, "bbb")
	resp, err := agg.GetRoute(context.Background(), RouteRequest{From: a, To: b, AmountIn: AmountFromUint64(1000), Deadline: time.Second, Slippage: FixedSlippage(50)})
	if err != nil {
		t.Fatalf("GetRoute: %v", err)
	}
	if resp.Best != nil {
		t.Fatal("expected no best route when every source failed")
	}
	found := false
	for _, d := range resp.Diagnostics {
		if d.Adapter == "failing" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the failing adapter's error in diagnostics")
	}
}

func TestAggregatorGetRouteHonorsDeadline(t *testing.T) {
	reg, g := testCore(t)
	pf := NewPathfinder(reg)
	slow := &fakeAdapter{name: "slow", supports: true, block: true}
	agg := NewAggregator(reg, g, pf, []RouterAdapter{slow}, AggregatorConfig{})

	a, b := testTokenRef(1, "aaa"), testTokenRef(1, "bbb")
	start := time.Now()
	_, err := agg.GetRoute(context.Background(), RouteRequest{From: a, To: b, AmountIn: AmountFromUint64(1000), Deadline: 200 * time.Millisecond, Slippage: FixedSlippage(50)})
	if err != nil {
		t.Fatalf("GetRoute: %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("expected GetRoute to return promptly once its deadline elapsed")
	}
}

func TestAggregatorSkipsUnsupportedAdapterSameChain(t *testing.T) {
	reg, g := testCore(t)
	pf := NewPathfinder(reg)
	unsupported := &fakeAdapter{name: "unsupported", supports: false, route: simpleRoute(999)}
	agg := NewAggregator(reg, g, pf, []RouterAdapter{unsupported}, AggregatorConfig{})

	a, b := testTokenRef(1, "aaa"), testTokenRef(1, "bbb")
	resp, err := agg.GetRoute(context.Background(), RouteRequest{From: a, To: b, AmountIn: AmountFromUint64(1000), Deadline: time.Second, Slippage: FixedSlippage(50)})
	if err != nil {
		t.Fatalf("GetRoute: %v", err)
	}
	if resp.Best != nil {
		t.Fatal("expected the unsupported adapter to be skipped on a same-chain request")
	}
}

func TestDropBelowThreshold(t *testing.T) {
	candidates := []Route{
		{AmountOutQuoted: AmountFromUint64(1000)},
		{AmountOutQuoted: AmountFromUint64(960)}, // within 95% of top
		{AmountOutQuoted: AmountFromUint64(800)}, // below 95% of top
	}
	out := dropBelowThreshold(candidates, candidateDropThreshold)
	if len(out) != 2 {
		t.Fatalf("expected 2 candidates to survive the threshold, got %d", len(out))
	}
}
