package core

import (
	"context"
	"testing"
)

func seedChainGraph(t *testing.T, cfg GraphConfig, edges ...PoolEdge) (*Graph, GraphSnapshot) {
	t.Helper()
	g := NewGraph(cfg, []CanonicalChainId{1})
	for _, e := range edges {
		if err := g.upsertEdge(e); err != nil {
			t.Fatalf("seeding edge %s: %v", e.ID, err)
		}
	}
	return g, g.Snapshot(1)
}

func TestPathfinderFindPathsRejectsZeroAmount(t *testing.T) {
	pf := NewPathfinder(NewSeedRegistry())
	a, b := testTokenRef(1, "aaa"), testTokenRef(1, "bbb")
	_, snap := seedChainGraph(t, DefaultGraphConfig(), orientedEdge(1, "p1", a, b, 1000, 1000))
	_, err := pf.FindPaths(context.Background(), snap, a, b, ZeroAmount, DefaultPathLimits())
	if err == nil {
		t.Fatal("expected an error for a zero amountIn")
	}
}

func TestPathfinderFindPathsRejectsSameFromTo(t *testing.T) {
	pf := NewPathfinder(NewSeedRegistry())
	a, b := testTokenRef(1, "aaa"), testTokenRef(1, "bbb")
	_, snap := seedChainGraph(t, DefaultGraphConfig(), orientedEdge(1, "p1", a, b, 1000, 1000))
	_, err := pf.FindPaths(context.Background(), snap, a, a, AmountFromUint64(10), DefaultPathLimits())
	if err == nil {
		t.Fatal("expected an error when from equals to")
	}
}

func TestPathfinderDirectEdge(t *testing.T) {
	pf := NewPathfinder(NewSeedRegistry())
	a, b := testTokenRef(1, "aaa"), testTokenRef(1, "bbb")
	_, snap := seedChainGraph(t, DefaultGraphConfig(), orientedEdge(1, "p1", a, b, 1_000_000, 1_000_000))
	candidates, err := pf.FindPaths(context.Background(), snap, a, b, AmountFromUint64(1_000), PathLimits{MaxHops: 1, TopK: 3})
	if err != nil {
		t.Fatalf("FindPaths: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected exactly one direct candidate, got %d", len(candidates))
	}
	if candidates[0].Hops != 1 || candidates[0].AmountOutQuoted.IsZero() {
		t.Fatalf("unexpected direct candidate: %+v", candidates[0])
	}
}

func TestPathfinderNoPathReturnsEmptyNotError(t *testing.T) {
	pf := NewPathfinder(NewSeedRegistry())
	a, b := testTokenRef(1, "aaa"), testTokenRef(1, "bbb")
	g := NewGraph(DefaultGraphConfig(), []CanonicalChainId{1})
	candidates, err := pf.FindPaths(context.Background(), g.Snapshot(1), a, b, AmountFromUint64(100), DefaultPathLimits())
	if err != nil {
		t.Fatalf("expected no error for an empty graph, got %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("expected no candidates, got %+v", candidates)
	}
}

func TestPathfinderTwoHopRouteThroughIntermediary(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterChain(Chain{ID: 1, Name: "test"})
	pf := NewPathfinder(reg)

	a := testTokenRef(1, "aaa")
	mid := testTokenRef(1, "mmm")
	b := testTokenRef(1, "bbb")
	_, snap := seedChainGraph(t, DefaultGraphConfig(),
		orientedEdge(1, "p1", a, mid, 1_000_000, 1_000_000),
		orientedEdge(1, "p2", mid, b, 1_000_000, 1_000_000),
	)

	// restrictedIntermediaries only allows neighbors of both from and to
	// plus native/stable/bluechip categories (spec §4.3.1); mid is a
	// neighbor of from here, so it is reachable at maxHops=2.
	candidates, err := pf.FindPaths(context.Background(), snap, a, b, AmountFromUint64(1_000), PathLimits{MaxHops: 2, TopK: 3})
	if err != nil {
		t.Fatalf("FindPaths: %v", err)
	}
	if len(candidates) == 0 {
		t.Fatal("expected at least one 2-hop candidate")
	}
	if candidates[0].Hops != 2 {
		t.Fatalf("expected a 2-hop path, got %d hops", candidates[0].Hops)
	}
}

func TestSimulateEdgeRejectsExcessiveDrain(t *testing.T) {
	a, b := testTokenRef(1, "aaa"), testTokenRef(1, "bbb")
	e := orientedEdge(1, "p1", a, b, 1000, 1000)
	// draining more than maxReservesDrainRatio of the reserve must fail.
	_, ok := simulateEdge(e, a, AmountFromUint64(900))
	if ok {
		t.Fatal("expected simulateEdge to reject an amount draining >30% of the reserve")
	}
}

func TestSimulateEdgeConstantProduct(t *testing.T) {
	a, b := testTokenRef(1, "aaa"), testTokenRef(1, "bbb")
	e := orientedEdge(1, "p1", a, b, 1_000_000, 1_000_000)
	sim, ok := simulateEdge(e, a, AmountFromUint64(1_000))
	if !ok {
		t.Fatal("expected a valid simulation")
	}
	if sim.amountOut.IsZero() || sim.amountOut.Cmp(AmountFromUint64(1_000)) >= 0 {
		t.Fatalf("expected output less than input after fees/slippage, got %s", sim.amountOut.String())
	}
}

func TestFinalizeTopKTieBreaksOnHopsThenLiquidity(t *testing.T) {
	results := []PathCandidate{
		{Edges: []PoolID{"z"}, Hops: 2, AmountOutQuoted: AmountFromUint64(100), MinEdgeLiquidityUSD: 10},
		{Edges: []PoolID{"a"}, Hops: 1, AmountOutQuoted: AmountFromUint64(100), MinEdgeLiquidityUSD: 5},
	}
	out := finalizeTopK(results, 3)
	if out[0].Hops != 1 {
		t.Fatalf("expected fewer-hops candidate to rank first on an output tie, got %+v", out[0])
	}
}

func TestFinalizeTopKTruncatesToTopK(t *testing.T) {
	results := make([]PathCandidate, 5)
	for i := range results {
		results[i] = PathCandidate{Edges: []PoolID{PoolID(string(rune('a' + i)))}, AmountOutQuoted: AmountFromUint64(uint64(i))}
	}
	out := finalizeTopK(results, 2)
	if len(out) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(out))
	}
}
