package core

// graph.go – C2 Liquidity Graph: types, tiering policy, and the
// concurrency-safe snapshot interface (spec §4.2).
//
// Grounded on core/amm.go's package-level `graph map[TokenID][]edge`
// adjacency and core/liquidity_pools.go's reserves bookkeeping, generalized
// from one implicit chain to one chainGraph per CanonicalChainId and from a
// single eager map to the three-tier hot/warm/cold policy below. The cold
// tier's on-demand 5-minute cache is github.com/hashicorp/golang-lru/v2's
// expirable.LRU — the pack has no direct precedent for tiered TTL caching
// (see DESIGN.md), so this one dependency is adopted from the wider
// ecosystem rather than grounded on the teacher itself.

import (
	"sort"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// Tier classifies a PoolEdge by liquidityUSD (spec §4.2).
type Tier int

const (
	TierHot Tier = iota
	TierWarm
	TierCold
)

// TierOf classifies liquidityUSD against the three thresholds (spec §4.2
// defaults; operator-tunable via GraphConfig).
func TierOf(liquidityUSD float64, cfg GraphConfig) Tier {
	switch {
	case liquidityUSD >= cfg.HotTierMinLiquidityUsd:
		return TierHot
	case liquidityUSD >= cfg.WarmTierMinLiquidityUsd:
		return TierWarm
	default:
		return TierCold
	}
}

// GraphConfig carries the tiering and refresh knobs of spec §6.4.
type GraphConfig struct {
	HotTierMinLiquidityUsd  float64
	WarmTierMinLiquidityUsd float64
	EvictThresholdUsd       float64
	RefreshIntervalHot      time.Duration
	RefreshIntervalWarm     time.Duration
	ColdCacheTTL            time.Duration
	ColdCacheSize           int
}

// DefaultGraphConfig matches spec §4.2's stated defaults.
func DefaultGraphConfig() GraphConfig {
	return GraphConfig{
		HotTierMinLiquidityUsd:  1_000_000,
		WarmTierMinLiquidityUsd: 100_000,
		EvictThresholdUsd:       10_000,
		RefreshIntervalHot:      5 * time.Minute,
		RefreshIntervalWarm:     15 * time.Minute,
		ColdCacheTTL:            5 * time.Minute,
		ColdCacheSize:           4096,
	}
}

// edgeHealth tracks the consecutive-failure counter spec §4.2 uses to drop
// an edge a tier ("three consecutive failures drops one tier").
type edgeHealth struct {
	consecutiveFailures int
	demotedFrom         Tier
}

// chainGraph is the mutable per-chain adjacency structure. Every mutation
// holds mu for the whole operation: Graph.upsertEdge/removeEdge, and
// GraphBuilder's health bookkeeping, whose recordFailure also rewrites an
// edge's LiquidityUSD in place (spec §5: "mutation on a chain's graph is
// serialized").
type chainGraph struct {
	mu    sync.RWMutex
	chain CanonicalChainId

	nodes map[TokenRef]TokenNode
	// adj[token] lists every edge incident to token, in both orientations.
	adj map[TokenRef][]PoolID
	// edgesByID is the authoritative store for edge data.
	edgesByID map[PoolID]PoolEdge
	health    map[PoolID]*edgeHealth

	// version increments on every successful mutation; snapshots compare
	// it only for diagnostics/testing, never for correctness (copies are
	// already consistent by construction).
	version uint64
}

func newChainGraph(chain CanonicalChainId) *chainGraph {
	return &chainGraph{
		chain:     chain,
		nodes:     make(map[TokenRef]TokenNode),
		adj:       make(map[TokenRef][]PoolID),
		edgesByID: make(map[PoolID]PoolEdge),
		health:    make(map[PoolID]*edgeHealth),
	}
}

// GraphSnapshot is the immutable, point-in-time view the pathfinder reads
// (spec §4.2 snapshot, §5 "a reader that acquires a snapshot at time t sees
// a graph that corresponds to some consistent point-in-time <= t", §8.1
// property 6). snapshot() copies the node, edge and adjacency maps (and
// each adjacency slice) under a read lock on every call, so it is O(edges)
// but allocation-only — no lock is held for the snapshot's lifetime.
type GraphSnapshot struct {
	Chain     CanonicalChainId
	Nodes     map[TokenRef]TokenNode
	Edges     map[PoolID]PoolEdge
	AdjByEdge map[TokenRef][]PoolID
	TakenAt   time.Time
	Version   uint64
}

// Neighbors returns every edge incident to token in the snapshot (spec
// §4.2 neighbors operation).
func (s GraphSnapshot) Neighbors(token TokenRef) []PoolEdge {
	ids := s.AdjByEdge[token]
	out := make([]PoolEdge, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.Edges[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Edge looks up one edge by id.
func (s GraphSnapshot) Edge(id PoolID) (PoolEdge, bool) {
	e, ok := s.Edges[id]
	return e, ok
}

// snapshot takes the copied view described on GraphSnapshot.
func (g *chainGraph) snapshot() GraphSnapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	nodes := make(map[TokenRef]TokenNode, len(g.nodes))
	for k, v := range g.nodes {
		nodes[k] = v
	}
	edges := make(map[PoolID]PoolEdge, len(g.edgesByID))
	for k, v := range g.edgesByID {
		edges[k] = v
	}
	adj := make(map[TokenRef][]PoolID, len(g.adj))
	for k, v := range g.adj {
		cp := make([]PoolID, len(v))
		copy(cp, v)
		adj[k] = cp
	}
	return GraphSnapshot{
		Chain: g.chain, Nodes: nodes, Edges: edges, AdjByEdge: adj,
		TakenAt: nowFunc(), Version: g.version,
	}
}

// UpdateReport is refreshChain's return value (spec §4.2).
type UpdateReport struct {
	Chain         CanonicalChainId
	PairsScanned  int
	PairsUpdated  int
	PairsEvicted  int
	Errors        []error
}

// Graph owns every chain's liquidity data (spec §3.5: "The graph is
// exclusively owned by a single graph-builder component"). Graph itself is
// safe for concurrent use: each chain's chainGraph has its own lock, and
// the top-level map of chains is fixed at construction (seeded chains are
// known upfront from the registry; see NewGraph).
type Graph struct {
	cfg    GraphConfig
	chains map[CanonicalChainId]*chainGraph
	cold   *lru.LRU[PoolID, PoolEdge]
	reg    *Registry
}

// NewGraph builds an empty Graph for the given chains, ready for the
// builder to populate via refreshChain or upsertEdge.
func NewGraph(cfg GraphConfig, chains []CanonicalChainId) *Graph {
	g := &Graph{
		cfg:    cfg,
		chains: make(map[CanonicalChainId]*chainGraph, len(chains)),
		cold:   lru.NewLRU[PoolID, PoolEdge](cfg.ColdCacheSize, nil, cfg.ColdCacheTTL),
	}
	for _, c := range chains {
		g.chains[c] = newChainGraph(c)
	}
	return g
}

// Snapshot returns an immutable view of chain's graph (spec §4.2). The
// zero value's Edges/Nodes are non-nil but empty if chain is unknown.
func (g *Graph) Snapshot(chain CanonicalChainId) GraphSnapshot {
	cg, ok := g.chains[chain]
	if !ok {
		return GraphSnapshot{Chain: chain, Nodes: map[TokenRef]TokenNode{}, Edges: map[PoolID]PoolEdge{}, AdjByEdge: map[TokenRef][]PoolID{}}
	}
	return cg.snapshot()
}

// Config returns the tiering/refresh knobs this Graph was built with.
func (g *Graph) Config() GraphConfig { return g.cfg }

// SetRegistry attaches reg so upsertEdge can populate TokenNode.Category
// (spec §3.3) from its stablecoin/bluechip/native whitelists. NewCore calls
// this once before the builder's first refresh; a Graph with no registry
// attached (e.g. in tests that only exercise tiering/eviction) leaves every
// node's Category at its zero value, same as before this was wired in.
func (g *Graph) SetRegistry(reg *Registry) { g.reg = reg }

// categoryOf classifies ref via the attached registry, or CategoryAlt's
// zero-valued sibling ("") if none is attached.
func (g *Graph) categoryOf(ref TokenRef) TokenCategory {
	if g.reg == nil {
		return ""
	}
	return g.reg.CategoryOf(ref)
}

// Chains lists every chain this Graph tracks.
func (g *Graph) Chains() []CanonicalChainId {
	out := make([]CanonicalChainId, 0, len(g.chains))
	for c := range g.chains {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// upsertEdge inserts or updates one edge (spec §4.2: "only the builder
// component invokes these"). Validates invariants 1-4 of spec §3.3;
// callers that violate them have a bug, so this returns *CoreError
// CodeInternal rather than silently normalizing.
func (g *Graph) upsertEdge(e PoolEdge) error {
	cg, ok := g.chains[e.Chain]
	if !ok {
		return wrapErr(CodeInternal, "upsertEdge: unknown chain", nil)
	}
	if e.TokenA.Chain != e.Chain || e.TokenB.Chain != e.Chain {
		return wrapErr(CodeInternal, "upsertEdge: token chain mismatch", nil)
	}
	if !e.TokenA.Address.Less(e.TokenB.Address) {
		return wrapErr(CodeInternal, "upsertEdge: tokenA/tokenB not canonically oriented", nil)
	}
	if e.ReserveA.IsZero() || e.ReserveB.IsZero() {
		return wrapErr(CodeInternal, "upsertEdge: zero reserve", nil)
	}
	if e.FeeBps > 10_000 {
		return wrapErr(CodeInternal, "upsertEdge: feeBps out of range", nil)
	}

	cg.mu.Lock()
	defer cg.mu.Unlock()

	if prev, exists := cg.edgesByID[e.ID]; exists && e.LastUpdated.Before(prev.LastUpdated) {
		return wrapErr(CodeInternal, "upsertEdge: lastUpdated went backwards", nil)
	}
	if _, exists := cg.edgesByID[e.ID]; !exists {
		cg.adj[e.TokenA] = append(cg.adj[e.TokenA], e.ID)
		cg.adj[e.TokenB] = append(cg.adj[e.TokenB], e.ID)
	}
	cg.edgesByID[e.ID] = e
	if _, ok := cg.nodes[e.TokenA]; !ok {
		cg.nodes[e.TokenA] = TokenNode{Ref: e.TokenA, Category: g.categoryOf(e.TokenA)}
	}
	if _, ok := cg.nodes[e.TokenB]; !ok {
		cg.nodes[e.TokenB] = TokenNode{Ref: e.TokenB, Category: g.categoryOf(e.TokenB)}
	}
	cg.version++
	return nil
}

// removeEdge deletes an edge (spec §4.2).
func (g *Graph) removeEdge(chain CanonicalChainId, id PoolID) {
	cg, ok := g.chains[chain]
	if !ok {
		return
	}
	cg.mu.Lock()
	defer cg.mu.Unlock()
	e, ok := cg.edgesByID[id]
	if !ok {
		return
	}
	delete(cg.edgesByID, id)
	delete(cg.health, id)
	cg.adj[e.TokenA] = removePoolID(cg.adj[e.TokenA], id)
	cg.adj[e.TokenB] = removePoolID(cg.adj[e.TokenB], id)
	cg.version++
}

func removePoolID(ids []PoolID, target PoolID) []PoolID {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

// nowFunc is a package-level indirection so tests can observe monotonic
// TakenAt values without depending on wall-clock granularity; overridden
// only in tests.
var nowFunc = time.Now
