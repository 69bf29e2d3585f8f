package adapters

// squid.go – Squid Router adapter (spec §2, §4.4): cross-chain, spans EVM
// and Cosmos chains (registry seed §4.1 gives Squid a providerId for both
// kinds), so Supports does not assume an EVM-only pair the way Jupiter's
// does for Solana.

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/synnergy-labs/swaprouter/core"
)

const squidBaseURL = "https://api.squidrouter.com/v2"

type Squid struct {
	client *httpClient
}

func NewSquid(log *logrus.Entry) *Squid {
	return &Squid{client: newHTTPClient(log.WithField("adapter", "squid"))}
}

func (a *Squid) Name() string { return "squid" }

func (a *Squid) Supports(reg *core.Registry, from, to core.TokenRef) bool {
	return reg.ToProviderChainID(from.Chain, a.Name()) != nil && reg.ToProviderChainID(to.Chain, a.Name()) != nil
}

func (a *Squid) Capabilities() core.Capabilities {
	return core.Capabilities{CrossChain: true, MaxSlippageBps: 3000, SupportsExactOut: false, Priority: 70}
}

type squidRouteRequest struct {
	FromChain  string `json:"fromChain"`
	ToChain    string `json:"toChain"`
	FromToken  string `json:"fromToken"`
	ToToken    string `json:"toToken"`
	FromAmount string `json:"fromAmount"`
	Slippage   float64 `json:"slippage"`
}

type squidRouteResponse struct {
	Route struct {
		Estimate struct {
			ToAmount         string `json:"toAmount"`
			EstimatedRouteDuration int `json:"estimatedRouteDuration"`
			FeeCosts []struct{ AmountUsd string `json:"amountUsd"` } `json:"feeCosts"`
		} `json:"estimate"`
	} `json:"route"`
}

func (a *Squid) Quote(ctx context.Context, reg *core.Registry, req core.RouteRequest) (*core.Route, *core.AdapterError) {
	if !a.Supports(reg, req.From, req.To) {
		return nil, core.NewAdapterError(a.Name(), core.AdapterUnsupported, "chain not supported", nil)
	}
	fromChain := reg.ToProviderChainID(req.From.Chain, a.Name())
	toChain := reg.ToProviderChainID(req.To.Chain, a.Name())
	fromAddr, _ := reg.ToProviderTokenAddress(req.From, a.Name())
	toAddr, _ := reg.ToProviderTokenAddress(req.To, a.Name())

	body := squidRouteRequest{
		FromChain: *fromChain, ToChain: *toChain, FromToken: fromAddr, ToToken: toAddr,
		FromAmount: req.AmountIn.String(), Slippage: float64(req.Slippage.Bps) / 100,
	}
	var resp squidRouteResponse
	if err := a.client.postJSON(ctx, squidBaseURL+"/route", nil, body, &resp); err != nil {
		return nil, classifyHTTPErr(a.Name(), err)
	}
	amountOut, ok := core.AmountFromDecimalString(resp.Route.Estimate.ToAmount)
	if !ok {
		return nil, core.NewAdapterError(a.Name(), core.AdapterInvalid, "unparseable toAmount", nil)
	}

	step := core.RouteStep{
		Kind: core.StepBridge, Chain: req.From.Chain, InputToken: req.From, OutputToken: req.To,
		FromChain: req.From.Chain, ToChain: req.To.Chain, BridgeID: "squid",
		AmountIn: req.AmountIn, AmountOutQuoted: amountOut, RawAmountOut: resp.Route.Estimate.ToAmount,
		EstimatedSeconds: resp.Route.Estimate.EstimatedRouteDuration,
	}
	route := &core.Route{
		Source: core.RouteSource(a.Name()), Steps: []core.RouteStep{step},
		AmountIn: req.AmountIn, AmountOutQuoted: amountOut,
		AmountOutMin: core.AmountOutMinFor(amountOut, req.Slippage.Bps),
	}
	return route, nil
}

func (a *Squid) QuoteBridge(ctx context.Context, reg *core.Registry, fromChain, toChain core.CanonicalChainId, token core.TokenRef, amountIn core.AmountRaw) (*core.RouteStep, *core.AdapterError) {
	req := core.RouteRequest{
		From: token, To: core.TokenRef{Chain: toChain, Address: token.Address}, AmountIn: amountIn,
		Slippage: core.FixedSlippage(50), Deadline: 5_000_000_000,
	}
	route, err := a.Quote(ctx, reg, req)
	if err != nil {
		return nil, err
	}
	return &route.Steps[0], nil
}
