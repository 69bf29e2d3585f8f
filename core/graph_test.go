package core

import "testing"

func testTokenRef(chain CanonicalChainId, addr string) TokenRef {
	return TokenRef{Chain: chain, Address: OpaqueAddress(addr, ChainKindOther)}
}

func orientedEdge(chain CanonicalChainId, id PoolID, a, b TokenRef, reserveA, reserveB uint64) PoolEdge {
	if !a.Address.Less(b.Address) {
		a, b = b, a
		reserveA, reserveB = reserveB, reserveA
	}
	return PoolEdge{
		ID: id, Chain: chain, TokenA: a, TokenB: b,
		ReserveA: AmountFromUint64(reserveA), ReserveB: AmountFromUint64(reserveB),
		FeeBps: 30, LiquidityUSD: 500_000,
	}
}

func TestGraphUpsertEdgeThenSnapshot(t *testing.T) {
	a, b := testTokenRef(1, "aaa"), testTokenRef(1, "bbb")
	g := NewGraph(DefaultGraphConfig(), []CanonicalChainId{1})
	e := orientedEdge(1, "pool-1", a, b, 1000, 2000)
	if err := g.upsertEdge(e); err != nil {
		t.Fatalf("upsertEdge: %v", err)
	}

	snap := g.Snapshot(1)
	if len(snap.Edges) != 1 {
		t.Fatalf("expected 1 edge in snapshot, got %d", len(snap.Edges))
	}
	if len(snap.Neighbors(a)) != 1 {
		t.Fatalf("expected token a to have 1 neighbor edge")
	}
}

func TestGraphUpsertEdgeRejectsUnknownChain(t *testing.T) {
	g := NewGraph(DefaultGraphConfig(), []CanonicalChainId{1})
	a, b := testTokenRef(2, "aaa"), testTokenRef(2, "bbb")
	e := orientedEdge(2, "pool-1", a, b, 1000, 2000)
	if err := g.upsertEdge(e); err == nil {
		t.Fatal("expected an error for a chain the graph was not built with")
	}
}

func TestGraphUpsertEdgeRejectsNonCanonicalOrientation(t *testing.T) {
	g := NewGraph(DefaultGraphConfig(), []CanonicalChainId{1})
	a, b := testTokenRef(1, "aaa"), testTokenRef(1, "bbb")
	e := PoolEdge{
		ID: "pool-1", Chain: 1, TokenA: b, TokenB: a, // deliberately reversed
		ReserveA: AmountFromUint64(1000), ReserveB: AmountFromUint64(2000), FeeBps: 30,
	}
	if err := g.upsertEdge(e); err == nil {
		t.Fatal("expected an error for a non-canonically-oriented edge")
	}
}

func TestGraphUpsertEdgeRejectsZeroReserve(t *testing.T) {
	g := NewGraph(DefaultGraphConfig(), []CanonicalChainId{1})
	a, b := testTokenRef(1, "aaa"), testTokenRef(1, "bbb")
	e := orientedEdge(1, "pool-1", a, b, 0, 2000)
	if err := g.upsertEdge(e); err == nil {
		t.Fatal("expected an error for a zero reserve")
	}
}

func TestGraphUpsertEdgeRejectsLastUpdatedGoingBackwards(t *testing.T) {
	g := NewGraph(DefaultGraphConfig(), []CanonicalChainId{1})
	a, b := testTokenRef(1, "aaa"), testTokenRef(1, "bbb")
	later := orientedEdge(1, "pool-1", a, b, 1000, 2000)
	later.LastUpdated = later.LastUpdated.Add(1)
	if err := g.upsertEdge(later); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	earlier := orientedEdge(1, "pool-1", a, b, 1100, 2100)
	if err := g.upsertEdge(earlier); err == nil {
		t.Fatal("expected an error when LastUpdated goes backwards for the same edge id")
	}
}

func TestGraphRemoveEdge(t *testing.T) {
	g := NewGraph(DefaultGraphConfig(), []CanonicalChainId{1})
	a, b := testTokenRef(1, "aaa"), testTokenRef(1, "bbb")
	e := orientedEdge(1, "pool-1", a, b, 1000, 2000)
	if err := g.upsertEdge(e); err != nil {
		t.Fatalf("upsertEdge: %v", err)
	}
	g.removeEdge(1, "pool-1")
	snap := g.Snapshot(1)
	if len(snap.Edges) != 0 {
		t.Fatalf("expected edge to be gone after removeEdge, got %d", len(snap.Edges))
	}
	if len(snap.Neighbors(a)) != 0 {
		t.Fatal("expected adjacency to be cleaned up after removeEdge")
	}
}

func TestGraphSnapshotOfUnknownChain(t *testing.T) {
	g := NewGraph(DefaultGraphConfig(), []CanonicalChainId{1})
	snap := g.Snapshot(42)
	if snap.Edges == nil || snap.Nodes == nil || len(snap.Edges) != 0 {
		t.Fatal("expected a non-nil, empty snapshot for an unknown chain")
	}
}

func TestTierOf(t *testing.T) {
	cfg := DefaultGraphConfig()
	if TierOf(cfg.HotTierMinLiquidityUsd, cfg) != TierHot {
		t.Fatal("expected hot tier at the hot threshold")
	}
	if TierOf(cfg.WarmTierMinLiquidityUsd, cfg) != TierWarm {
		t.Fatal("expected warm tier at the warm threshold")
	}
	if TierOf(1, cfg) != TierCold {
		t.Fatal("expected cold tier below the warm threshold")
	}
}
