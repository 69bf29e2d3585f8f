package core

// aggregator.go – C5 Quote Aggregator (spec §4.5).
//
// Shaped after yetaxyz-oracle's oracle/sources/crypto/aggregator.go
// ("gather from N sources, handle partial failure, pick one") but that
// file fetches sequentially with no cancellation — exactly the anti-pattern
// spec §9 calls out ("Catching 'any error' at the top... is explicitly
// wrong"). Here every eligible source runs in its own goroutine under
// golang.org/x/sync/errgroup.WithContext, each guarded by a
// golang.org/x/sync/semaphore.Weighted per adapter name (spec §5
// back-pressure, default 32 concurrent calls per adapter) so one slow
// adapter's queue cannot starve another's.

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	maxAggregatorDeadline  = 5 * time.Second  // spec §4.5 step 3: D = min(request.deadline, 5s)
	maxQuoteExpiry         = 45 * time.Second // spec §9 open question: caps the teacher's ambiguous 60s TTL
	candidateDropThreshold = 0.95             // spec §4.5 step 6: drop candidates >5% below the top
	defaultMaxCandidates   = 3
)

// Aggregator composes Pathfinder + RouterAdapters into ranked candidates
// (spec §4.5). An explicit value built once at startup and shared across
// requests — no package-level aggregator singleton (spec §9).
type Aggregator struct {
	reg        *Registry
	graph      *Graph
	pathfinder *Pathfinder
	adapters   []RouterAdapter
	sems       map[string]*semaphore.Weighted
	maxCandidates int
	limits     PathLimits
	metrics    *Metrics
}

// SetMetrics attaches a Metrics sink; subsequent adapter calls report
// latency and error counts.
func (a *Aggregator) SetMetrics(m *Metrics) { a.metrics = m }

// AggregatorConfig carries the knobs spec §6.4 exposes that the aggregator
// reads directly (the rest live on GraphConfig/PathLimits).
type AggregatorConfig struct {
	AdapterConcurrencyPerHost int
	MaxCandidates             int
	EnabledAdapters           map[string]bool // nil/empty means all enabled
	// MaxHops is spec §6.4's per-deployment hop cap (valid range [1,4]); a
	// value outside that range is ignored and the pathfinder's own default
	// of 3 applies instead.
	MaxHops int
}

// NewAggregator builds an Aggregator. Only adapters present in
// cfg.EnabledAdapters (or all of them, if that set is empty) are wired in —
// spec §6.4's enabledAdapters knob.
func NewAggregator(reg *Registry, graph *Graph, pf *Pathfinder, adapters []RouterAdapter, cfg AggregatorConfig) *Aggregator {
	if cfg.AdapterConcurrencyPerHost <= 0 {
		cfg.AdapterConcurrencyPerHost = 32
	}
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = defaultMaxCandidates
	}
	var enabled []RouterAdapter
	sems := make(map[string]*semaphore.Weighted)
	for _, a := range adapters {
		if len(cfg.EnabledAdapters) > 0 && !cfg.EnabledAdapters[a.Name()] {
			continue
		}
		enabled = append(enabled, a)
		sems[a.Name()] = semaphore.NewWeighted(int64(cfg.AdapterConcurrencyPerHost))
	}
	return &Aggregator{
		reg: reg, graph: graph, pathfinder: pf, adapters: enabled, sems: sems,
		maxCandidates: cfg.MaxCandidates, limits: PathLimits{MaxHops: ClampMaxHops(cfg.MaxHops), TopK: 3},
	}
}

// GetRoute runs the protocol of spec §4.5 for one request (spec §6.1).
func (a *Aggregator) GetRoute(ctx context.Context, req RouteRequest) (*RouteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if a.reg.GetChain(req.From.Chain) == nil {
		return nil, wrapErr(CodeUnsupportedChain, "from chain not registered", nil)
	}
	if a.reg.GetChain(req.To.Chain) == nil {
		return nil, wrapErr(CodeUnsupportedChain, "to chain not registered", nil)
	}

	deadline := req.Deadline
	if deadline > maxAggregatorDeadline {
		deadline = maxAggregatorDeadline
	}
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	started := nowFunc()
	var (
		mu         sync.Mutex
		candidates []Route
		diagnostics []AdapterError
	)
	record := func(r *Route) {
		mu.Lock()
		defer mu.Unlock()
		candidates = append(candidates, *r)
	}
	recordErr := func(e AdapterError) {
		mu.Lock()
		defer mu.Unlock()
		diagnostics = append(diagnostics, e)
	}

	g, gctx := errgroup.WithContext(ctx)
	sameChain := req.From.Chain == req.To.Chain

	if sameChain {
		g.Go(func() error {
			a.runPathfinder(gctx, req, record, recordErr)
			return nil
		})
	}
	for _, ad := range a.adapters {
		ad := ad
		if sameChain && !ad.Supports(a.reg, req.From, req.To) {
			continue
		}
		if !sameChain && !ad.Capabilities().CrossChain {
			continue
		}
		g.Go(func() error {
			a.runAdapter(gctx, ad, req, record, recordErr)
			return nil
		})
	}
	_ = g.Wait() // every source already isolates its own errors; nothing here can fail the group itself

	fastest := nowFunc().Sub(started)
	expiry := maxQuoteExpiry
	if fastest < expiry {
		expiry = fastest
		if expiry < time.Second {
			expiry = time.Second
		}
	}

	if len(candidates) == 0 {
		return &RouteResponse{Diagnostics: diagnostics}, nil
	}

	applySlippage(candidates, req.Slippage)
	for i := range candidates {
		candidates[i].Score = scoreRoute(candidates[i])
		candidates[i].ExpiresAt = started.Add(expiry)
	}
	sortCandidates(candidates)
	candidates = dropBelowThreshold(candidates, candidateDropThreshold)
	if len(candidates) > a.maxCandidates {
		candidates = candidates[:a.maxCandidates]
	}

	best := candidates[0]
	return &RouteResponse{Best: &best, Alternatives: candidates[1:], Diagnostics: diagnostics}, nil
}

func (a *Aggregator) runPathfinder(ctx context.Context, req RouteRequest, record func(*Route), recordErr func(AdapterError)) {
	snap := a.graph.Snapshot(req.From.Chain)
	paths, err := a.pathfinder.FindPaths(ctx, snap, req.From, req.To, req.AmountIn, a.limits)
	if err != nil {
		recordErr(AdapterError{Adapter: "pathfinder", Kind: AdapterInternal, Detail: err.Error(), Err: err})
		return
	}
	if len(paths) == 0 {
		recordErr(AdapterError{Adapter: "pathfinder", Kind: AdapterNoRoute, Detail: "no path found"})
		return
	}
	for _, p := range paths {
		record(pathToRoute(req, p, snap))
	}
}

func (a *Aggregator) runAdapter(ctx context.Context, ad RouterAdapter, req RouteRequest, record func(*Route), recordErr func(AdapterError)) {
	defer func() {
		if r := recover(); r != nil {
			recordErr(AdapterError{Adapter: ad.Name(), Kind: AdapterInternal, Detail: "adapter panicked"})
		}
	}()

	sem := a.sems[ad.Name()]
	if sem != nil {
		if err := sem.Acquire(ctx, 1); err != nil {
			recordErr(AdapterError{Adapter: ad.Name(), Kind: AdapterTimeout, Detail: "concurrency queue timed out"})
			return
		}
		defer sem.Release(1)
	}

	callStart := nowFunc()
	route, adapterErr := ad.Quote(ctx, a.reg, req)
	if adapterErr != nil && adapterErr.Retryable {
		route, adapterErr = ad.Quote(ctx, a.reg, req) // spec §4.4: retryable kinds get at most one retry
	}
	if a.metrics != nil {
		a.metrics.RecordAdapterLatency(ad.Name(), float64(nowFunc().Sub(callStart).Milliseconds()))
	}
	if adapterErr != nil {
		if a.metrics != nil {
			a.metrics.RecordAdapterError(ad.Name(), adapterErr.Kind)
		}
		recordErr(*adapterErr)
		return
	}
	if route == nil {
		recordErr(AdapterError{Adapter: ad.Name(), Kind: AdapterNoRoute, Detail: "adapter returned no route"})
		return
	}
	record(route)
}

// pathToRoute wraps a pathfinder PathCandidate into a Route (spec §3.4),
// materializing RouteStep.Swap entries from the snapshot's edge data.
func pathToRoute(req RouteRequest, p PathCandidate, snap GraphSnapshot) *Route {
	steps := make([]RouteStep, 0, len(p.Edges))
	cur := req.From
	amountIn := req.AmountIn
	for i, id := range p.Edges {
		e, _ := snap.Edge(id)
		out := amountIn
		if i == len(p.Edges)-1 {
			out = p.AmountOutQuoted
		} else {
			sim, _ := simulateEdge(e, cur, amountIn)
			out = sim.amountOut
		}
		nextToken := other(e, cur)
		steps = append(steps, RouteStep{
			Kind: StepSwap, Chain: e.Chain, InputToken: cur, OutputToken: nextToken,
			Dex: e.Dex, PoolPath: []PoolID{id}, AmountIn: amountIn, AmountOutQuoted: out,
		})
		cur = nextToken
		amountIn = out
	}
	return &Route{
		ID: newRouteID(), Source: SourcePathfinder, Steps: steps,
		AmountIn: req.AmountIn, AmountOutQuoted: p.AmountOutQuoted,
		PriceImpactBps: p.PriceImpactBps, GasEstimateUsd: p.GasEstimateUsd,
		RequiresExactSimulation: p.RequiresExactSimulation,
	}
}

// applySlippage fills AmountOutMin for every candidate per spec §3.4 rule
// 3 and §4.5's slippage handling: Fixed propagates unchanged, Auto clamps
// each source's own slippage at maxBps.
func applySlippage(candidates []Route, policy SlippagePolicy) {
	for i := range candidates {
		effective := policy.Bps
		if policy.Kind == SlippageAuto && candidates[i].SlippageClampedAt == 0 {
			// Stamped at the policy cap unconditionally: adapters never
			// surface the slippage they actually chose, so this cannot
			// distinguish "clamped down to the cap" from "already under it".
			candidates[i].SlippageClampedAt = policy.Bps
		}
		candidates[i].AmountOutMin = AmountOutMinFor(candidates[i].AmountOutQuoted, effective)
	}
}

// scoreRoute implements spec §4.3.3's final score. gasEstimateUsd and
// totalFeesUsd are already USD-denominated by construction; outputAmountUsd
// and inputAmountUsd use the raw float approximation of AmountRaw (spec
// §4.3.2 rationale: scoring tolerates float imprecision, route math does
// not).
func scoreRoute(r Route) float64 {
	priceImpactRatio := float64(r.PriceImpactBps) / 10_000
	outputUsd := r.AmountOutQuoted.Float64()
	inputUsd := r.AmountIn.Float64()
	return outputUsd - r.GasEstimateUsd - priceImpactRatio*inputUsd - r.TotalFeesUsd
}

// sortCandidates orders by score descending, then spec §4.3.3's tie-breaks.
func sortCandidates(candidates []Route) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if len(a.Steps) != len(b.Steps) {
			return len(a.Steps) < len(b.Steps)
		}
		return a.ID < b.ID
	})
}

// dropBelowThreshold removes candidates whose amountOutQuoted falls more
// than (1-threshold) below the top candidate (spec §4.5 step 6).
func dropBelowThreshold(candidates []Route, threshold float64) []Route {
	if len(candidates) == 0 {
		return candidates
	}
	top := candidates[0].AmountOutQuoted.Float64()
	if top <= 0 {
		return candidates
	}
	out := candidates[:0]
	for _, c := range candidates {
		if c.AmountOutQuoted.Float64() >= top*threshold {
			out = append(out, c)
		}
	}
	return out
}
