package core

// pathfinder.go – C3 Pathfinder (spec §4.3).
//
// Directly grounded on core/amm.go's bestPath (Dijkstra, container/heap,
// log-price edge cost) and Quote (constant-product amountOut formula),
// generalized to: operate over a GraphSnapshot instead of a package-level
// global graph; carry the full cost function of spec §4.3.2 (price impact
// and gas terms, not just -log(price)); support bounded BFS for large
// graphs (spec §4.3.1); and enumerate only the restricted intermediary set
// instead of the teacher's unrestricted full-graph Dijkstra.

import (
	"container/heap"
	"context"
	"math"
	"sort"
)

const (
	priceImpactWeight = 2.0 // γ, spec §4.3.2
	gasWeight         = 1.0 // δ, spec §4.3.2

	maxReservesDrainRatio = 0.30 // spec §4.3.4: amounts draining >30% of a reserve are skipped
	dijkstraNodeBudget    = 5000 // spec §4.3.1: graph size threshold for modified Dijkstra vs bounded BFS
)

// PathLimits bounds a pathfinding call (spec §4.3).
type PathLimits struct {
	MaxHops    int
	TopK       int
	GasUsdHint func(PoolEdge) float64 // per-edge gas cost estimate; nil means 0
}

// DefaultPathLimits matches spec §6.4's maxHops default and a conventional
// top-K of 3 (mirrors the aggregator's default candidate count, spec §4.5
// step 6).
func DefaultPathLimits() PathLimits {
	return PathLimits{MaxHops: 3, TopK: 3}
}

// ClampMaxHops enforces spec §6.4's maxHops range [1,4]; a value outside
// that range is reported as 0 so FindPaths' own default of 3 applies
// instead of a misconfigured operator value silently taking effect.
func ClampMaxHops(n int) int {
	if n < 1 || n > 4 {
		return 0
	}
	return n
}

// PathCandidate is one fully-simulated path the pathfinder produces,
// before it is wrapped into a Route by the aggregator.
type PathCandidate struct {
	Edges           []PoolID
	Hops            int
	AmountIn        AmountRaw
	AmountOutQuoted AmountRaw
	PriceImpactBps  uint32
	GasEstimateUsd  float64
	MinEdgeLiquidityUSD float64
	RequiresExactSimulation bool
}

// Pathfinder answers FindPaths over one GraphSnapshot at a time (spec §4.3:
// "given (chain, from, to, amountIn, limits)"). Stateless beyond the
// registry it needs for token categorization; safe to share across
// concurrent requests, same as the registry itself.
type Pathfinder struct {
	reg *Registry
}

// NewPathfinder builds a Pathfinder bound to reg for intermediary
// categorization (spec §3.3).
func NewPathfinder(reg *Registry) *Pathfinder {
	return &Pathfinder{reg: reg}
}

// FindPaths returns up to limits.TopK candidate paths from `from` to `to`
// in snap (spec §4.3), ranked by finalizeTopK on quoted output; each
// candidate's GasEstimateUsd is reported but not subtracted. An empty
// result is not an error (spec §4.3.4); ctx cancellation/deadline returns
// whatever has been found so far rather than failing (spec §5).
func (p *Pathfinder) FindPaths(ctx context.Context, snap GraphSnapshot, from, to TokenRef, amountIn AmountRaw, limits PathLimits) ([]PathCandidate, error) {
	if amountIn.IsZero() {
		return nil, Invalid("amountIn", "must be greater than zero")
	}
	if from.Equal(to) {
		return nil, Invalid("to", "must differ from from")
	}
	if limits.MaxHops <= 0 {
		limits.MaxHops = 3
	}
	if limits.TopK <= 0 {
		limits.TopK = 3
	}

	intermediaries := p.restrictedIntermediaries(snap, from, to)

	// Direct edge, maxHops<=1: return it without touching the search
	// machinery at all (spec §4.3.1 first bullet).
	if limits.MaxHops <= 1 {
		if direct, ok := p.directCandidate(snap, from, to, amountIn, limits); ok {
			return []PathCandidate{direct}, nil
		}
		return nil, nil
	}

	if limits.MaxHops <= 3 && len(snap.Edges) <= dijkstraNodeBudget {
		return p.dijkstraSearch(ctx, snap, from, to, amountIn, limits, intermediaries)
	}
	return p.boundedBFS(ctx, snap, from, to, amountIn, limits, intermediaries)
}

// restrictedIntermediaries computes {from,to} ∪ natives ∪ stables ∪
// bluechips ∪ neighbors-of-both (spec §4.3.1).
func (p *Pathfinder) restrictedIntermediaries(snap GraphSnapshot, from, to TokenRef) map[TokenRef]bool {
	allowed := map[TokenRef]bool{from: true, to: true}
	neighborsOfFrom := map[TokenRef]bool{}
	for _, e := range snap.Neighbors(from) {
		neighborsOfFrom[other(e, from)] = true
	}
	for token, node := range snap.Nodes {
		switch node.Category {
		case CategoryNative, CategoryStable, CategoryBluechip:
			allowed[token] = true
		}
	}
	for _, e := range snap.Neighbors(to) {
		n := other(e, to)
		if neighborsOfFrom[n] {
			allowed[n] = true
		}
	}
	return allowed
}

func other(e PoolEdge, token TokenRef) TokenRef {
	if e.TokenA.Equal(token) {
		return e.TokenB
	}
	return e.TokenA
}

// directCandidate evaluates a single edge between from and to, if any.
func (p *Pathfinder) directCandidate(snap GraphSnapshot, from, to TokenRef, amountIn AmountRaw, limits PathLimits) (PathCandidate, bool) {
	for _, e := range snap.Neighbors(from) {
		if !other(e, from).Equal(to) {
			continue
		}
		sim, ok := simulateEdge(e, from, amountIn)
		if !ok {
			continue
		}
		return PathCandidate{
			Edges: []PoolID{e.ID}, Hops: 1,
			AmountIn: amountIn, AmountOutQuoted: sim.amountOut,
			PriceImpactBps: bpsOf(sim.priceImpact), GasEstimateUsd: gasOf(limits, e),
			MinEdgeLiquidityUSD: e.LiquidityUSD,
		}, true
	}
	return PathCandidate{}, false
}

// edgeSim is one edge's simulated output (spec §4.3.2).
type edgeSim struct {
	amountOut   AmountRaw
	priceImpact float64 // ratio, not bps
}

// simulateEdge applies the constant-product formula of spec §4.3.2.
// Returns ok=false for the edge-case policies of §4.3.4: zero/stale
// reserves or an amount draining more than 30% of a reserve.
func simulateEdge(e PoolEdge, fromToken TokenRef, amountIn AmountRaw) (edgeSim, bool) {
	var reserveIn, reserveOut AmountRaw
	if e.TokenA.Equal(fromToken) {
		reserveIn, reserveOut = e.ReserveA, e.ReserveB
	} else {
		reserveIn, reserveOut = e.ReserveB, e.ReserveA
	}
	if reserveIn.IsZero() || reserveOut.IsZero() {
		return edgeSim{}, false
	}

	reserveInF, amountInF := reserveIn.Float64(), amountIn.Float64()
	if reserveInF == 0 || amountInF/reserveInF > maxReservesDrainRatio {
		return edgeSim{}, false
	}

	// amountOut = amountInWithFee * Ry / (Rx + amountInWithFee); the fee is
	// applied to amountIn first (amountInWithFee already nets it out), so
	// the 10000 denominator term of spec §4.3.2's literal formula is folded
	// into MulDivBpsFloor below rather than appearing a second time here.
	amountInWithFee := amountIn.MulDivBpsFloor(10_000 - uint32(e.FeeBps))
	denom := reserveIn.Add(amountInWithFee)
	if denom.IsZero() {
		return edgeSim{}, false
	}
	amountOut := amountInWithFee.MulDivAmountFloor(reserveOut, denom)
	if amountOut.IsZero() || amountOut.Cmp(reserveOut) >= 0 {
		return edgeSim{}, false
	}

	priceImpact := amountInF / reserveInF
	return edgeSim{amountOut: amountOut, priceImpact: priceImpact}, true
}

func bpsOf(ratio float64) uint32 {
	bps := ratio * 10_000
	if bps < 0 {
		return 0
	}
	if bps > 10_000 {
		return 10_000
	}
	return uint32(bps)
}

func gasOf(limits PathLimits, e PoolEdge) float64 {
	if limits.GasUsdHint == nil {
		return 0
	}
	return limits.GasUsdHint(e)
}

// dijkstraNode is one entry in the priority queue: grounded directly on
// teacher's `node{token, cost, path}` / `pq` heap in core/amm.go.
type dijkstraNode struct {
	token TokenRef
	cost  float64
	amount   AmountRaw
	edges    []PoolID
	hops     int
	visited  map[TokenRef]bool
	gasUsd   float64
	minLiq   float64
	exactSim bool
	// impactFactor is Π(1-edgePriceImpact_i) accumulated along the path so
	// far; path price impact is 1-impactFactor (spec §4.3.2).
	impactFactor float64
}

type dijkstraQueue []*dijkstraNode

func (q dijkstraQueue) Len() int            { return len(q) }
func (q dijkstraQueue) Less(i, j int) bool  { return q[i].cost < q[j].cost }
func (q dijkstraQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *dijkstraQueue) Push(x interface{}) { *q = append(*q, x.(*dijkstraNode)) }
func (q *dijkstraQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// dijkstraSearch is the modified Dijkstra of spec §4.3.1/§4.3.2, generalized
// from teacher's bestPath: cost also includes price-impact and gas terms,
// search is restricted to the allowed intermediary set, and amountOut is
// simulated per edge rather than computed purely in log-price space.
func (p *Pathfinder) dijkstraSearch(ctx context.Context, snap GraphSnapshot, from, to TokenRef, amountIn AmountRaw, limits PathLimits, allowed map[TokenRef]bool) ([]PathCandidate, error) {
	best := map[TokenRef]float64{from: 0}
	var results []PathCandidate

	q := &dijkstraQueue{{token: from, cost: 0, amount: amountIn, visited: map[TokenRef]bool{from: true}, impactFactor: 1}}
	heap.Init(q)

	for q.Len() > 0 {
		select {
		case <-ctx.Done():
			return finalizeTopK(results, limits.TopK), nil
		default:
		}

		n := heap.Pop(q).(*dijkstraNode)
		if n.hops > limits.MaxHops {
			continue
		}
		if n.token.Equal(to) && n.hops > 0 {
			results = append(results, PathCandidate{
				Edges: n.edges, Hops: n.hops, AmountIn: amountIn, AmountOutQuoted: n.amount,
				PriceImpactBps: bpsOf(1 - n.impactFactor), GasEstimateUsd: n.gasUsd,
				MinEdgeLiquidityUSD: n.minLiq, RequiresExactSimulation: n.exactSim,
			})
			if len(results) >= limits.TopK*3 { // collect extra, finalize picks the true top-K
				break
			}
			continue
		}
		if n.hops >= limits.MaxHops {
			continue
		}
		for _, e := range snap.Neighbors(n.token) {
			nextToken := other(e, n.token)
			if n.visited[nextToken] || !allowed[nextToken] {
				continue
			}
			sim, ok := simulateEdge(e, n.token, n.amount)
			if !ok {
				continue
			}
			cost := n.cost + edgeCost(sim, amountIn, e, limits)
			if d, seen := best[nextToken]; seen && cost >= d {
				continue
			}
			best[nextToken] = cost

			visited := make(map[TokenRef]bool, len(n.visited)+1)
			for k := range n.visited {
				visited[k] = true
			}
			visited[nextToken] = true

			edges := make([]PoolID, len(n.edges)+1)
			copy(edges, n.edges)
			edges[len(n.edges)] = e.ID

			minLiq := n.minLiq
			if n.hops == 0 || e.LiquidityUSD < minLiq {
				minLiq = e.LiquidityUSD
			}
			heap.Push(q, &dijkstraNode{
				token: nextToken, cost: cost, amount: sim.amountOut, edges: edges,
				hops: n.hops + 1, visited: visited, gasUsd: n.gasUsd + gasOf(limits, e),
				minLiq: minLiq, exactSim: n.exactSim, impactFactor: n.impactFactor * (1 - sim.priceImpact),
			})
		}
	}
	return finalizeTopK(results, limits.TopK), nil
}

// edgeCost is spec §4.3.2's Dijkstra priority: -log(amountOut/amountIn) +
// γ·edgePriceImpact + δ·gasEdgeUsd/inputUsd.
func edgeCost(sim edgeSim, amountIn AmountRaw, e PoolEdge, limits PathLimits) float64 {
	out, in := sim.amountOut.Float64(), amountIn.Float64()
	if out <= 0 || in <= 0 {
		return 1e18 // effectively unreachable, never selected over a valid edge
	}
	ratio := out / in
	gasUsd := gasOf(limits, e)
	inputUsd := in // caller supplies USD-denominated gas hints; amountIn here is the per-edge leg input in the token's own units, adequate for relative ranking
	return -math.Log(ratio) + priceImpactWeight*sim.priceImpact + gasWeight*safeDiv(gasUsd, inputUsd)
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// boundedBFS implements spec §4.3.1's fallback for large graphs: explore up
// to MaxHops, stop early once TopK paths with output >= best*0.95 are found.
func (p *Pathfinder) boundedBFS(ctx context.Context, snap GraphSnapshot, from, to TokenRef, amountIn AmountRaw, limits PathLimits, allowed map[TokenRef]bool) ([]PathCandidate, error) {
	type frame struct {
		token   TokenRef
		amount  AmountRaw
		edges   []PoolID
		visited map[TokenRef]bool
		gasUsd  float64
		minLiq  float64
		// impactFactor is Π(1-edgePriceImpact_i) accumulated so far, mirroring
		// dijkstraNode.impactFactor; path price impact is 1-impactFactor
		// (spec §4.3.2).
		impactFactor float64
	}
	frontier := []frame{{token: from, amount: amountIn, visited: map[TokenRef]bool{from: true}, impactFactor: 1}}
	var results []PathCandidate
	bestOut := 0.0

	for hop := 0; hop < limits.MaxHops; hop++ {
		select {
		case <-ctx.Done():
			return finalizeTopK(results, limits.TopK), nil
		default:
		}
		var next []frame
		for _, f := range frontier {
			for _, e := range snap.Neighbors(f.token) {
				nextToken := other(e, f.token)
				if f.visited[nextToken] || !allowed[nextToken] {
					continue
				}
				sim, ok := simulateEdge(e, f.token, f.amount)
				if !ok {
					continue
				}
				edges := make([]PoolID, len(f.edges)+1)
				copy(edges, f.edges)
				edges[len(f.edges)] = e.ID
				visited := make(map[TokenRef]bool, len(f.visited)+1)
				for k := range f.visited {
					visited[k] = true
				}
				visited[nextToken] = true
				minLiq := f.minLiq
				if hop == 0 || e.LiquidityUSD < minLiq {
					minLiq = e.LiquidityUSD
				}
				impactFactor := f.impactFactor * (1 - sim.priceImpact)
				nf := frame{token: nextToken, amount: sim.amountOut, edges: edges, visited: visited, gasUsd: f.gasUsd + gasOf(limits, e), minLiq: minLiq, impactFactor: impactFactor}
				if nextToken.Equal(to) {
					out := sim.amountOut.Float64()
					if out > bestOut {
						bestOut = out
					}
					results = append(results, PathCandidate{
						Edges: edges, Hops: hop + 1, AmountIn: amountIn, AmountOutQuoted: sim.amountOut,
						PriceImpactBps: bpsOf(1 - impactFactor), GasEstimateUsd: nf.gasUsd, MinEdgeLiquidityUSD: minLiq,
					})
					continue
				}
				next = append(next, nf)
			}
		}
		frontier = next
		if len(results) >= limits.TopK && bestOut > 0 {
			qualifying := 0
			for _, r := range results {
				if r.AmountOutQuoted.Float64() >= bestOut*0.95 {
					qualifying++
				}
			}
			if qualifying >= limits.TopK {
				break
			}
		}
		if len(frontier) == 0 {
			break
		}
	}
	return finalizeTopK(results, limits.TopK), nil
}

// finalizeTopK applies spec §4.3.3's tie-break rules (fewer hops, higher
// minimum edge liquidity, lexicographically smaller path) and truncates to
// topK.
func finalizeTopK(results []PathCandidate, topK int) []PathCandidate {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		ao, bo := a.AmountOutQuoted.Float64(), b.AmountOutQuoted.Float64()
		if ao != bo {
			return ao > bo
		}
		if a.Hops != b.Hops {
			return a.Hops < b.Hops
		}
		if a.MinEdgeLiquidityUSD != b.MinEdgeLiquidityUSD {
			return a.MinEdgeLiquidityUSD > b.MinEdgeLiquidityUSD
		}
		return pathKey(a.Edges) < pathKey(b.Edges)
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

func pathKey(edges []PoolID) string {
	s := ""
	for _, e := range edges {
		s += string(e) + "|"
	}
	return s
}

