package core

// graph_builder.go – the single writer that mutates a Graph (spec §4.2,
// §3.5 "exclusively owned by a single graph-builder component"). Tries
// sources in order and merges; an edge is valid if any source confirms
// non-empty reserves. Never removes edges on a source failure — only skips
// the update and records it in UpdateReport.Errors.

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// GraphBuilder is the explicit value that owns mutation of a Graph — no
// package-level builder singleton (spec §9 rationale on Core being an
// explicit value, applied here to the graph's writer too).
type GraphBuilder struct {
	graph   *Graph
	sources []PairSource
	log     *logrus.Entry
}

// NewGraphBuilder constructs a builder over graph, trying sources in the
// given priority order.
func NewGraphBuilder(graph *Graph, sources []PairSource, log *logrus.Entry) *GraphBuilder {
	return &GraphBuilder{graph: graph, sources: sources, log: log}
}

// RefreshChain re-fetches every pool on chain from each source in order,
// merging results, and returns a report (spec §4.2 refreshChain operation).
// minLiquidityUsd bounds which tier this refresh cycle cares about (hot vs
// warm callers pass different thresholds; cold lookups go through
// RefreshColdPool instead).
func (b *GraphBuilder) RefreshChain(ctx context.Context, chain CanonicalChainId, minLiquidityUsd float64) UpdateReport {
	report := UpdateReport{Chain: chain}
	seen := make(map[PoolID]bool)

	for _, src := range b.sources {
		edges, err := src.FetchPairs(ctx, chain, minLiquidityUsd)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Errorf("%s: %w", src.Name(), err))
			b.log.WithFields(logrus.Fields{"chain": chain, "source": src.Name(), "err": err}).
				Warn("pair source refresh failed, keeping existing edges")
			continue
		}
		report.PairsScanned += len(edges)
		for _, e := range edges {
			if seen[e.ID] {
				continue // an earlier, higher-priority source already confirmed this edge
			}
			if e.ReserveA.IsZero() || e.ReserveB.IsZero() {
				report.Errors = append(report.Errors, fmt.Errorf("edge %s: zero reserves, skipped", e.ID))
				continue
			}
			if err := b.graph.upsertEdge(e); err != nil {
				report.Errors = append(report.Errors, fmt.Errorf("edge %s: %w", e.ID, err))
				continue
			}
			seen[e.ID] = true
			report.PairsUpdated++
			b.resetHealth(chain, e.ID)
		}
	}

	report.PairsEvicted = b.evictBelowThreshold(chain)
	return report
}

// RefreshPoolsReserves refreshes only reserves (no new-pair discovery) for
// a known pool set. GraphScheduler's hot/warm tier tickers do not call it;
// they call RefreshChain.
func (b *GraphBuilder) RefreshPoolsReserves(ctx context.Context, chain CanonicalChainId, poolIDs []PoolID) UpdateReport {
	report := UpdateReport{Chain: chain, PairsScanned: len(poolIDs)}
	cg, ok := b.graph.chains[chain]
	if !ok {
		return report
	}

	for _, src := range b.sources {
		reserves, err := src.FetchReserves(ctx, chain, poolIDs)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		for id, rs := range reserves {
			cg.mu.RLock()
			existing, exists := cg.edgesByID[id]
			cg.mu.RUnlock()
			if !exists {
				continue
			}
			if rs.ReserveA.IsZero() || rs.ReserveB.IsZero() {
				b.recordFailure(chain, id)
				continue
			}
			updated := existing
			updated.ReserveA, updated.ReserveB = rs.ReserveA, rs.ReserveB
			updated.LastUpdated = rs.LastUpdated
			if err := b.graph.upsertEdge(updated); err != nil {
				report.Errors = append(report.Errors, err)
				continue
			}
			report.PairsUpdated++
			b.resetHealth(chain, id)
		}
	}
	report.PairsEvicted += b.evictBelowThreshold(chain)
	return report
}

// RefreshColdPool services an on-demand lookup during pathfinding for an
// edge too small to be on a tier's eager refresh cycle (spec §4.2: "Cold:
// fetched on demand during pathfinding and cached for 5 minutes").
func (b *GraphBuilder) RefreshColdPool(ctx context.Context, chain CanonicalChainId, poolID PoolID) (PoolEdge, bool) {
	if e, ok := b.graph.cold.Get(poolID); ok {
		return e, true
	}
	for _, src := range b.sources {
		reserves, err := src.FetchReserves(ctx, chain, []PoolID{poolID})
		if err != nil {
			continue
		}
		if rs, ok := reserves[poolID]; ok && !rs.ReserveA.IsZero() && !rs.ReserveB.IsZero() {
			cg, ok := b.graph.chains[chain]
			if !ok {
				continue
			}
			cg.mu.RLock()
			e, exists := cg.edgesByID[poolID]
			cg.mu.RUnlock()
			if !exists {
				continue
			}
			e.ReserveA, e.ReserveB, e.LastUpdated = rs.ReserveA, rs.ReserveB, rs.LastUpdated
			b.graph.cold.Add(poolID, e)
			return e, true
		}
	}
	return PoolEdge{}, false
}

// recordFailure increments an edge's consecutive-failure counter; at three
// it demotes the edge one tier (spec §4.2) by dividing the stored edge's
// LiquidityUSD by ten (the ratio between the default hot and warm
// thresholds TierOf reads) and resets the counter; edgeHealth.demotedFrom
// is not set. The next RefreshChain upsert of the edge restores the
// liquidity its source reports.
func (b *GraphBuilder) recordFailure(chain CanonicalChainId, id PoolID) {
	cg, ok := b.graph.chains[chain]
	if !ok {
		return
	}
	cg.mu.Lock()
	defer cg.mu.Unlock()
	h, ok := cg.health[id]
	if !ok {
		h = &edgeHealth{}
		cg.health[id] = h
	}
	h.consecutiveFailures++
	if h.consecutiveFailures >= 3 {
		if e, exists := cg.edgesByID[id]; exists && e.LiquidityUSD > 0 {
			e.LiquidityUSD = e.LiquidityUSD / 10 // demote a tier by estimate, not by count
			cg.edgesByID[id] = e
		}
		h.consecutiveFailures = 0
	}
}

func (b *GraphBuilder) resetHealth(chain CanonicalChainId, id PoolID) {
	cg, ok := b.graph.chains[chain]
	if !ok {
		return
	}
	cg.mu.Lock()
	defer cg.mu.Unlock()
	delete(cg.health, id)
}

// evictBelowThreshold removes every edge whose liquidityUSD has fallen
// below cfg.EvictThresholdUsd (spec §4.2: "an edge below $10k liquidity is
// evicted").
func (b *GraphBuilder) evictBelowThreshold(chain CanonicalChainId) int {
	cg, ok := b.graph.chains[chain]
	if !ok {
		return 0
	}
	cg.mu.RLock()
	var toEvict []PoolID
	for id, e := range cg.edgesByID {
		if e.LiquidityUSD < b.graph.cfg.EvictThresholdUsd {
			toEvict = append(toEvict, id)
		}
	}
	cg.mu.RUnlock()

	for _, id := range toEvict {
		b.graph.removeEdge(chain, id)
	}
	return len(toEvict)
}
