package adapters

// jupiter.go – Jupiter adapter (spec §2, §4.4): Solana-only same-chain
// aggregator. Its step's plan is a NonEVMPlan (spec §6.3) with only
// PreflightRequired set: the quote response read here carries no calldata
// and no serialized transaction, so SerializedTransaction stays empty.

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/synnergy-labs/swaprouter/core"
)

const jupiterBaseURL = "https://quote-api.jup.ag/v6"

// Jupiter implements core.RouterAdapter.
type Jupiter struct {
	client *httpClient
}

func NewJupiter(log *logrus.Entry) *Jupiter {
	return &Jupiter{client: newHTTPClient(log.WithField("adapter", "jupiter"))}
}

func (a *Jupiter) Name() string { return "jupiter" }

func (a *Jupiter) Supports(reg *core.Registry, from, to core.TokenRef) bool {
	if from.Chain != to.Chain {
		return false
	}
	chain := reg.GetChain(from.Chain)
	return chain != nil && chain.Kind == core.ChainKindSolana && reg.ToProviderChainID(from.Chain, a.Name()) != nil
}

func (a *Jupiter) Capabilities() core.Capabilities {
	return core.Capabilities{CrossChain: false, MaxSlippageBps: 5000, SupportsExactOut: false, Priority: 70}
}

type jupiterQuoteResponse struct {
	OutAmount  string `json:"outAmount"`
	PriceImpactPct string `json:"priceImpactPct"`
	RoutePlan  []struct {
		SwapInfo struct{ AmmKey string `json:"ammKey"` } `json:"swapInfo"`
	} `json:"routePlan"`
}

func (a *Jupiter) Quote(ctx context.Context, reg *core.Registry, req core.RouteRequest) (*core.Route, *core.AdapterError) {
	if !a.Supports(reg, req.From, req.To) {
		return nil, core.NewAdapterError(a.Name(), core.AdapterUnsupported, "not a Solana pair", nil)
	}
	fromAddr, _ := reg.ToProviderTokenAddress(req.From, a.Name())
	toAddr, _ := reg.ToProviderTokenAddress(req.To, a.Name())

	url := fmt.Sprintf("%s/quote?inputMint=%s&outputMint=%s&amount=%s&slippageBps=%d",
		jupiterBaseURL, fromAddr, toAddr, req.AmountIn.String(), req.Slippage.Bps)

	var resp jupiterQuoteResponse
	if err := a.client.getJSON(ctx, url, nil, &resp); err != nil {
		return nil, classifyHTTPErr(a.Name(), err)
	}
	amountOut, ok := core.AmountFromDecimalString(resp.OutAmount)
	if !ok {
		return nil, core.NewAdapterError(a.Name(), core.AdapterInvalid, "unparseable outAmount", nil)
	}

	step := core.RouteStep{
		Kind: core.StepSwap, Chain: req.From.Chain, InputToken: req.From, OutputToken: req.To,
		AmountIn: req.AmountIn, AmountOutQuoted: amountOut, RawAmountOut: resp.OutAmount,
		Plan: &core.ExecutionPlan{NonEVM: &core.NonEVMPlan{PreflightRequired: true}},
	}
	route := &core.Route{
		Source: core.RouteSource(a.Name()), Steps: []core.RouteStep{step},
		AmountIn: req.AmountIn, AmountOutQuoted: amountOut,
		AmountOutMin: core.AmountOutMinFor(amountOut, req.Slippage.Bps),
	}
	return route, nil
}
