package adapters

// lifi.go – LiFi adapter (spec §2, §4.4). LiFi quotes both same-chain and
// cross-chain swaps through one /quote endpoint, so this adapter reports
// CrossChain: true in its Capabilities.

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/synnergy-labs/swaprouter/core"
)

const lifiBaseURL = "https://li.quest/v1"

// LiFi implements core.RouterAdapter and core.BridgeAdapter.
type LiFi struct {
	client *httpClient
}

// NewLiFi builds a LiFi adapter.
func NewLiFi(log *logrus.Entry) *LiFi {
	return &LiFi{client: newHTTPClient(log.WithField("adapter", "lifi"))}
}

func (a *LiFi) Name() string { return "lifi" }

func (a *LiFi) Supports(reg *core.Registry, from, to core.TokenRef) bool {
	return reg.ToProviderChainID(from.Chain, a.Name()) != nil && reg.ToProviderChainID(to.Chain, a.Name()) != nil
}

func (a *LiFi) Capabilities() core.Capabilities {
	return core.Capabilities{CrossChain: true, MaxSlippageBps: 3000, SupportsExactOut: false, Priority: 80}
}

type lifiQuoteResponse struct {
	Action struct {
		FromToken struct{ Address string } `json:"fromToken"`
		ToToken   struct{ Address string } `json:"toToken"`
	} `json:"action"`
	Estimate struct {
		ToAmount     string  `json:"toAmount"`
		GasCosts     []struct{ AmountUSD string `json:"amountUSD"` } `json:"gasCosts"`
		FeeCosts     []struct{ AmountUSD string `json:"amountUSD"` } `json:"feeCosts"`
		ExecutionDuration int `json:"executionDuration"`
	} `json:"estimate"`
	TransactionRequest struct {
		To   string `json:"to"`
		Data string `json:"data"`
	} `json:"transactionRequest"`
}

func (a *LiFi) Quote(ctx context.Context, reg *core.Registry, req core.RouteRequest) (*core.Route, *core.AdapterError) {
	if !a.Supports(reg, req.From, req.To) {
		return nil, core.NewAdapterError(a.Name(), core.AdapterUnsupported, "chain not supported", nil)
	}
	fromChainID := reg.ToProviderChainID(req.From.Chain, a.Name())
	toChainID := reg.ToProviderChainID(req.To.Chain, a.Name())
	fromAddr, _ := reg.ToProviderTokenAddress(req.From, a.Name())
	toAddr, _ := reg.ToProviderTokenAddress(req.To, a.Name())

	url := fmt.Sprintf("%s/quote?fromChain=%s&toChain=%s&fromToken=%s&toToken=%s&fromAmount=%s&slippage=%s",
		lifiBaseURL, *fromChainID, *toChainID, fromAddr, toAddr, req.AmountIn.String(), slippageFraction(req.Slippage))

	var resp lifiQuoteResponse
	if err := a.client.getJSON(ctx, url, nil, &resp); err != nil {
		return nil, classifyHTTPErr(a.Name(), err)
	}

	amountOut, ok := core.AmountFromDecimalString(resp.Estimate.ToAmount)
	if !ok {
		return nil, core.NewAdapterError(a.Name(), core.AdapterInvalid, "unparseable toAmount", nil)
	}

	step := core.RouteStep{
		Kind: core.StepSwap, Chain: req.From.Chain, InputToken: req.From, OutputToken: req.To,
		AmountIn: req.AmountIn, AmountOutQuoted: amountOut, RawAmountOut: resp.Estimate.ToAmount,
		Plan: &core.ExecutionPlan{EVMSwap: &core.EVMSwapPlan{
			AmountIn: req.AmountIn, AmountOutMin: core.AmountOutMinFor(amountOut, effectiveBps(req.Slippage)),
		}},
	}
	if req.From.Chain != req.To.Chain {
		step.Kind = core.StepBridge
		step.FromChain, step.ToChain = req.From.Chain, req.To.Chain
		step.BridgeID = "lifi"
		step.EstimatedSeconds = resp.Estimate.ExecutionDuration
	}

	route := &core.Route{
		Source: core.RouteSource(a.Name()), Steps: []core.RouteStep{step},
		AmountIn: req.AmountIn, AmountOutQuoted: amountOut,
		AmountOutMin: core.AmountOutMinFor(amountOut, effectiveBps(req.Slippage)),
		TotalFeesUsd: sumUsd(resp.Estimate.FeeCosts), GasEstimateUsd: sumUsd(resp.Estimate.GasCosts),
	}
	return route, nil
}

// QuoteBridge satisfies core.BridgeAdapter: LiFi's same /quote endpoint
// covers a same-asset cross-chain transfer when fromToken==toToken.
func (a *LiFi) QuoteBridge(ctx context.Context, reg *core.Registry, fromChain, toChain core.CanonicalChainId, token core.TokenRef, amountIn core.AmountRaw) (*core.RouteStep, *core.AdapterError) {
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

func slippageFraction(p core.SlippagePolicy) string {
	return fmt.Sprintf("%.4f", float64(p.Bps)/10_000)
}

func effectiveBps(p core.SlippagePolicy) uint32 { return p.Bps }

func sumUsd(items []struct {
	AmountUSD string `json:"amountUSD"`
}) float64 {
	var total float64
	for _, it := range items {
		if f, err := strconv.ParseFloat(it.AmountUSD, 64); err == nil {
			total += f
		}
	}
	return total
}
