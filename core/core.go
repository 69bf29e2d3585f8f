package core

// core.go – the top-level explicit Core value (spec §9: replace singleton
// getX() factories with a value constructed once at startup and passed to
// handlers). Core wires C1-C6 together and is the type cmd/routerd's HTTP
// handlers hold; cmd/routerctl reaches it only over HTTP.

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"
)

// Core is the Universal Swap Routing Core's public entry point (spec §6.1).
type Core struct {
	Registry   *Registry
	Graph      *Graph
	Builder    *GraphBuilder
	Scheduler  *GraphScheduler
	Pathfinder *Pathfinder
	Aggregator *Aggregator
	Composer   *BridgeComposer
	Metrics    *Metrics
	adapters   []RouterAdapter
	cfg        Config
	log        *logrus.Entry

	probesMu sync.RWMutex
	probes   map[string]AdapterHealth
}

// Config is the full configuration surface of spec §6.4.
type Config struct {
	MaxHops                int
	PerRequestDeadlineMs    int
	Graph                  GraphConfig
	AdapterConcurrencyPerHost int
	EnabledAdapters        map[string]bool
	DefaultSlippageBps     uint32
}

// DefaultConfig matches the defaults spec §6.4 enumerates.
func DefaultConfig() Config {
	return Config{
		MaxHops: 3, PerRequestDeadlineMs: 5000,
		Graph: DefaultGraphConfig(), AdapterConcurrencyPerHost: 32,
		DefaultSlippageBps: 50,
	}
}

// NewCore wires a Registry, a Graph over that registry's chains, adapters,
// and the C3-C6 components into one Core. Call Start to launch the graph
// refresh scheduler, and GetRoute/ListSupportedChains/HealthCheck to serve
// requests.
func NewCore(reg *Registry, sources []PairSource, adapters []RouterAdapter, cfg Config, log *logrus.Entry) *Core {
	chains := make([]CanonicalChainId, 0)
	for _, c := range reg.ListChains() {
		chains = append(chains, c.ID)
	}
	graph := NewGraph(cfg.Graph, chains)
	graph.SetRegistry(reg)
	builder := NewGraphBuilder(graph, sources, log)
	pf := NewPathfinder(reg)

	var bridgeAdapters []BridgeAdapter
	for _, a := range adapters {
		if ba, ok := a.(BridgeAdapter); ok {
			bridgeAdapters = append(bridgeAdapters, ba)
		}
	}
	composer := NewBridgeComposer(reg, graph, pf, bridgeAdapters)
	composer.SetLimits(PathLimits{MaxHops: ClampMaxHops(cfg.MaxHops), TopK: 3})
	agg := NewAggregator(reg, graph, pf, adapters, AggregatorConfig{
		AdapterConcurrencyPerHost: cfg.AdapterConcurrencyPerHost,
		EnabledAdapters:           cfg.EnabledAdapters,
		MaxHops:                   cfg.MaxHops,
	})
	metrics := NewMetrics(log)
	agg.SetMetrics(metrics)

	return &Core{
		Registry: reg, Graph: graph, Builder: builder, Pathfinder: pf,
		Aggregator: agg, Composer: composer, Metrics: metrics,
		adapters: adapters, cfg: cfg, log: log,
	}
}

// GetRoute is the caller interface's main operation (spec §6.1). For a
// cross-chain request it first asks every cross-chain-capable adapter
// (inside Aggregator.GetRoute); if none produced a usable route, it falls
// back to the Cross-Chain Route Builder (spec §4.5 step 2, §4.6).
func (c *Core) GetRoute(ctx context.Context, req RouteRequest) (*RouteResponse, error) {
	// A caller that leaves Deadline/Slippage at their zero value gets this
	// core's configured defaults (spec §6.4 perRequestDeadlineMs,
	// defaultSlippageBps) rather than failing RouteRequest.Validate.
	if req.Deadline <= 0 {
		req.Deadline = time.Duration(c.cfg.PerRequestDeadlineMs) * time.Millisecond
	}
	if req.Slippage.Kind == "" {
		req.Slippage = AutoSlippage(c.cfg.DefaultSlippageBps)
	}

	resp, err := c.Aggregator.GetRoute(ctx, req)
	if err != nil {
		c.recordRouteOutcome(err)
		return nil, err
	}
	if req.From.Chain == req.To.Chain || resp.Best != nil {
		c.Metrics.RecordRequest("ok")
		return resp, nil
	}

	composed, composerDiagnostics := c.Composer.Compose(ctx, req)
	resp.Diagnostics = append(resp.Diagnostics, composerDiagnostics...)
	if composed == nil {
		c.Metrics.RecordRequest("no_route")
		return resp, nil
	}
	composed.Score = scoreRoute(*composed)
	resp.Best = composed
	c.Metrics.RecordRequest("ok")
	return resp, nil
}

func (c *Core) recordRouteOutcome(err error) {
	if ce, ok := AsCoreError(err); ok {
		switch ce.Code {
		case CodeNoRoute:
			c.Metrics.RecordRequest("no_route")
		case CodeTimeout:
			c.Metrics.RecordRequest("timeout")
		default:
			c.Metrics.RecordRequest("error")
		}
		return
	}
	c.Metrics.RecordRequest("error")
}

// ListSupportedChains returns every registered chain (spec §6.1).
func (c *Core) ListSupportedChains() []Chain {
	return c.Registry.ListChains()
}

// HealthCheck reports readiness (spec §6.1). Adapter reachability is
// reported from the last probe a caller fed in via RecordAdapterProbe; this
// method never itself issues network calls, to keep health checks cheap.
func (c *Core) HealthCheck() HealthReport {
	graphsReady := make(map[CanonicalChainId]bool)
	for _, chain := range c.Graph.Chains() {
		snap := c.Graph.Snapshot(chain)
		graphsReady[chain] = len(snap.Edges) > 0
	}
	adapterHealth := make(map[string]AdapterHealth, len(c.adapters))
	for _, a := range c.adapters {
		h, ok := c.lastProbe(a.Name())
		if !ok {
			h = AdapterHealth{Reachable: true}
		}
		adapterHealth[a.Name()] = h
	}
	return HealthReport{
		ChainsLoaded: len(c.Registry.ListChains()),
		GraphsReady:  graphsReady,
		Adapters:     adapterHealth,
	}
}

func (c *Core) lastProbe(name string) (AdapterHealth, bool) {
	c.probesMu.RLock()
	defer c.probesMu.RUnlock()
	h, ok := c.probes[name]
	return h, ok
}

// RecordAdapterProbe lets a background health-checker (outside this core,
// per spec §1's scope) feed in the last observed reachability/latency for
// an adapter.
func (c *Core) RecordAdapterProbe(name string, reachable bool, latencyMs int64) {
	c.probesMu.Lock()
	defer c.probesMu.Unlock()
	if c.probes == nil {
		c.probes = make(map[string]AdapterHealth)
	}
	c.probes[name] = AdapterHealth{Reachable: reachable, LastLatencyMs: latencyMs}
}

// Start launches the graph refresh scheduler (spec §4.2). Pass clock.New()
// in production, clock.NewMock() in tests. Call Stop on shutdown.
func (c *Core) Start(ctx context.Context, cl clock.Clock) {
	c.Scheduler = NewGraphScheduler(c.Builder, c.Graph.cfg, cl, c.log)
	c.Scheduler.SetMetrics(c.Metrics)
	c.Scheduler.Start(ctx, c.Graph.Chains())
}

// Stop halts the graph refresh scheduler.
func (c *Core) Stop() {
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
}
