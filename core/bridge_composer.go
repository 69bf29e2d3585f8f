package core

// bridge_composer.go – C6 Cross-Chain Route Builder (spec §4.6).
//
// Grounded on core/cross_chain_bridge.go's StartBridgeTransfer (locks an
// asset, records a BridgeTransfer with a uuid.New() id) for the bridge
// leg's data shape, adapted from "execute and persist a transfer" to
// "quote a transfer leg and compose it into a read-only plan" — this
// composer never persists anything, matching spec §3.5 ("Routes... are
// never stored by the core"). core/cross_chain.go and
// core/cross_chain_agnostic_protocols.go contributed the ordered
// multi-step plan-building shape (a ordered step list tagged by chain).

import (
	"context"
)

// BridgeComposer builds a three-leg cross-chain Route when no single
// adapter covers a (fromChain, toChain) pair directly (spec §4.6).
type BridgeComposer struct {
	reg           *Registry
	pathfinder    *Pathfinder
	graph         *Graph
	bridgeAdapters []BridgeAdapter
	limits        PathLimits
}

// NewBridgeComposer builds a composer over the given bridge adapters.
func NewBridgeComposer(reg *Registry, graph *Graph, pf *Pathfinder, bridges []BridgeAdapter) *BridgeComposer {
	return &BridgeComposer{reg: reg, pathfinder: pf, graph: graph, bridgeAdapters: bridges}
}

// SetLimits installs the per-leg PathLimits (spec §6.4's maxHops) NewCore
// derives from Config.MaxHops; a composer with no limits set (the zero
// value) falls back to FindPaths' own default of 3 hops, same as before
// this was wired in.
func (c *BridgeComposer) SetLimits(l PathLimits) { c.limits = l }

// Compose runs the algorithm of spec §4.6: for each candidate bridge token
// in registry priority order, try source-swap + bridge + dest-swap; return
// the top-scoring complete composition.
func (c *BridgeComposer) Compose(ctx context.Context, req RouteRequest) (*Route, []AdapterError) {
	var diagnostics []AdapterError
	bridgeables := c.reg.BridgeableTokens(req.From.Chain, req.To.Chain)
	if len(bridgeables) == 0 {
		diagnostics = append(diagnostics, AdapterError{Adapter: "composer", Kind: AdapterUnsupported, Detail: "no bridgeable token known for this chain pair"})
		return nil, diagnostics
	}

	var best *Route
	for _, bridgeToken := range bridgeables {
		route, errs := c.tryBridgeToken(ctx, req, bridgeToken)
		diagnostics = append(diagnostics, errs...)
		if route == nil {
			continue
		}
		if best == nil || scoreRoute(*route) > scoreRoute(*best) {
			best = route
		}
	}
	return best, diagnostics
}

// tryBridgeToken attempts one bridge-token candidate's full three-leg plan
// (spec §4.6 algorithm step 1). Per-leg slippage is allocated S/3 each
// (spec §4.6 "Slippage per leg"); NoRoute/InsufficientLiquidity on any leg
// moves to the next candidate, a transport error retries that leg once.
func (c *BridgeComposer) tryBridgeToken(ctx context.Context, req RouteRequest, bridgeToken TokenRef) (*Route, []AdapterError) {
	legSlippageBps := req.Slippage.Bps / 3

	srcLeg, srcMin, err := c.quoteLeg(ctx, req.From.Chain, req.From, bridgeToken, req.AmountIn, legSlippageBps)
	if err != nil {
		return nil, []AdapterError{*err}
	}

	bridgeStep, bridgeErr := c.quoteBridgeLeg(ctx, req.From.Chain, req.To.Chain, bridgeToken, srcLeg.amountOut)
	if bridgeErr != nil {
		return nil, []AdapterError{*bridgeErr}
	}
	bridgeMin := AmountOutMinFor(bridgeStep.AmountOutQuoted, legSlippageBps)

	destLeg, destMin, err := c.quoteLeg(ctx, req.To.Chain, bridgeToken, req.To, bridgeStep.AmountOutQuoted, legSlippageBps)
	if err != nil {
		return nil, []AdapterError{*err}
	}

	steps := append(append(srcLeg.steps, *bridgeStep), destLeg.steps...)
	totalFees := bridgeStep.FeesUsd
	maxImpact := uint32(0)
	if srcLeg.impactBps > maxImpact {
		maxImpact = srcLeg.impactBps
	}
	if destLeg.impactBps > maxImpact {
		maxImpact = destLeg.impactBps
	}

	// compounded per-leg mins, not S applied once at the end (spec §4.6).
	amountOutMin := compoundMins(srcMin, bridgeMin, destMin, srcLeg.amountOut, bridgeStep.AmountOutQuoted, destLeg.amountOut)

	route := &Route{
		ID: newRouteID(), Source: SourceComposed, Steps: steps,
		AmountIn: req.AmountIn, AmountOutQuoted: destLeg.amountOut, AmountOutMin: amountOutMin,
		PriceImpactBps: maxImpact, TotalFeesUsd: totalFees,
	}
	if req.Slippage.Kind == SlippageAuto {
		route.SlippageClampedAt = req.Slippage.Bps
	}
	if err := route.ValidateChaining(); err != nil {
		return nil, []AdapterError{{Adapter: "composer", Kind: AdapterInternal, Detail: err.Error(), Err: err}}
	}
	return route, nil
}

// wrapStepKind reports whether from->to on chain is exactly a wrap (native
// -> wrapped-native) or unwrap (wrapped-native -> native) pair, per the
// chain's registered WrappedNative (spec §3.2, §4.6 S5).
func (c *BridgeComposer) wrapStepKind(chain CanonicalChainId, from, to TokenRef) (StepKind, bool) {
	wrapped := c.reg.WrappedNative(chain)
	if wrapped == nil {
		return "", false
	}
	if from.Address.IsNative() && wrapped.Equal(to) {
		return StepWrap, true
	}
	if to.Address.IsNative() && wrapped.Equal(from) {
		return StepUnwrap, true
	}
	return "", false
}

// legResult is one pathfinder-sourced swap leg of a composed route.
type legResult struct {
	steps     []RouteStep
	amountOut AmountRaw
	impactBps uint32
}

func (c *BridgeComposer) quoteLeg(ctx context.Context, chain CanonicalChainId, from, to TokenRef, amountIn AmountRaw, slippageBps uint32) (legResult, AmountRaw, *AdapterError) {
	if from.Equal(to) {
		// same-token "leg": no swap needed, e.g. bridgeToken itself equals
		// from or to on that side of the trip.
		return legResult{amountOut: amountIn}, AmountOutMinFor(amountIn, slippageBps), nil
	}
	if kind, ok := c.wrapStepKind(chain, from, to); ok {
		// Native<->wrapped-native is always 1:1 and needs no pool; emitting
		// it explicitly also covers chains where no graph pool happens to
		// connect the pair (spec §4.6 S5's WETH->ETH unwrap leg).
		step := RouteStep{
			Kind: kind, Chain: chain, InputToken: from, OutputToken: to,
			AmountIn: amountIn, AmountOutQuoted: amountIn, RawAmountOut: amountIn.String(),
		}
		return legResult{steps: []RouteStep{step}, amountOut: amountIn},
			AmountOutMinFor(amountIn, slippageBps), nil
	}
	snap := c.graph.Snapshot(chain)
	paths, err := c.pathfinder.FindPaths(ctx, snap, from, to, amountIn, c.limits)
	if err != nil {
		return legResult{}, ZeroAmount, &AdapterError{Adapter: "composer", Kind: AdapterInternal, Detail: err.Error(), Err: err}
	}
	if len(paths) == 0 {
		return legResult{}, ZeroAmount, &AdapterError{Adapter: "composer", Kind: AdapterNoRoute, Detail: "no leg route"}
	}
	best := paths[0]
	leg := pathToRoute(RouteRequest{From: from, To: to, AmountIn: amountIn, Slippage: FixedSlippage(slippageBps)}, best, snap)
	return legResult{steps: leg.Steps, amountOut: leg.AmountOutQuoted, impactBps: best.PriceImpactBps},
		AmountOutMinFor(leg.AmountOutQuoted, slippageBps), nil
}

func (c *BridgeComposer) quoteBridgeLeg(ctx context.Context, fromChain, toChain CanonicalChainId, token TokenRef, amountIn AmountRaw) (*RouteStep, *AdapterError) {
	var lastErr *AdapterError
	for _, ba := range c.bridgeAdapters {
		step, err := ba.QuoteBridge(ctx, c.reg, fromChain, toChain, token, amountIn)
		if err != nil {
			if err.Retryable || err.Kind == AdapterTransport {
				step, err = ba.QuoteBridge(ctx, c.reg, fromChain, toChain, token, amountIn)
			}
			if err != nil {
				lastErr = err
				continue
			}
		}
		return step, nil
	}
	if lastErr == nil {
		lastErr = &AdapterError{Adapter: "composer", Kind: AdapterNoRoute, Detail: "no bridge adapter covers this pair"}
	}
	return nil, lastErr
}

// compoundMins computes the overall amountOutMin as the compounded product
// of per-leg min ratios applied to the actual end-to-end quoted amount
// (spec §4.6: "computed by compounding per-leg mins, not by applying S once
// at the end"; spec §8.2: must equal the whole-route min to within 1 LSU).
func compoundMins(srcMin, bridgeMin, destMin, srcOut, bridgeOut, destOut AmountRaw) AmountRaw {
	ratio := func(min, out AmountRaw) float64 {
		if out.IsZero() {
			return 1
		}
		return min.Float64() / out.Float64()
	}
	compounded := ratio(srcMin, srcOut) * ratio(bridgeMin, bridgeOut) * ratio(destMin, destOut)
	bps := uint32((1 - compounded) * 10_000)
	return AmountOutMinFor(destOut, bps)
}
