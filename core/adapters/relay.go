package adapters

// relay.go – Relay Protocol adapter (spec §2, §4.4): cross-chain, EVM
// focused, quotes via a single POST /quote call.

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/synnergy-labs/swaprouter/core"
)

const relayBaseURL = "https://api.relay.link"

type Relay struct {
	client *httpClient
}

func NewRelay(log *logrus.Entry) *Relay {
	return &Relay{client: newHTTPClient(log.WithField("adapter", "relay"))}
}

func (a *Relay) Name() string { return "relay" }

func (a *Relay) Supports(reg *core.Registry, from, to core.TokenRef) bool {
	return reg.ToProviderChainID(from.Chain, a.Name()) != nil && reg.ToProviderChainID(to.Chain, a.Name()) != nil
}

func (a *Relay) Capabilities() core.Capabilities {
	return core.Capabilities{CrossChain: true, MaxSlippageBps: 2000, SupportsExactOut: false, Priority: 75}
}

type relayQuoteRequest struct {
	OriginChainID string `json:"originChainId"`
	DestChainID   string `json:"destinationChainId"`
	OriginCurrency string `json:"originCurrency"`
	DestCurrency   string `json:"destinationCurrency"`
	Amount         string `json:"amount"`
}

type relayQuoteResponse struct {
	Details struct {
		CurrencyOut struct{ Amount string `json:"amount"` } `json:"currencyOut"`
		TimeEstimate int `json:"timeEstimate"`
	} `json:"details"`
	Fees struct {
		Relayer struct{ AmountUsd string `json:"amountUsd"` } `json:"relayer"`
	} `json:"fees"`
}

func (a *Relay) Quote(ctx context.Context, reg *core.Registry, req core.RouteRequest) (*core.Route, *core.AdapterError) {
	if !a.Supports(reg, req.From, req.To) {
		return nil, core.NewAdapterError(a.Name(), core.AdapterUnsupported, "chain not supported", nil)
	}
	originChain := reg.ToProviderChainID(req.From.Chain, a.Name())
	destChain := reg.ToProviderChainID(req.To.Chain, a.Name())
	originAddr, _ := reg.ToProviderTokenAddress(req.From, a.Name())
	destAddr, _ := reg.ToProviderTokenAddress(req.To, a.Name())

	body := relayQuoteRequest{
		OriginChainID: *originChain, DestChainID: *destChain,
		OriginCurrency: originAddr, DestCurrency: destAddr, Amount: req.AmountIn.String(),
	}
	var resp relayQuoteResponse
	if err := a.client.postJSON(ctx, relayBaseURL+"/quote", nil, body, &resp); err != nil {
		return nil, classifyHTTPErr(a.Name(), err)
	}
	amountOut, ok := core.AmountFromDecimalString(resp.Details.CurrencyOut.Amount)
	if !ok {
		return nil, core.NewAdapterError(a.Name(), core.AdapterInvalid, "unparseable amount", nil)
	}

	step := core.RouteStep{
		Kind: core.StepBridge, Chain: req.From.Chain, InputToken: req.From, OutputToken: req.To,
		FromChain: req.From.Chain, ToChain: req.To.Chain, BridgeID: "relay",
		AmountIn: req.AmountIn, AmountOutQuoted: amountOut, RawAmountOut: resp.Details.CurrencyOut.Amount,
		EstimatedSeconds: resp.Details.TimeEstimate,
	}
	route := &core.Route{
		Source: core.RouteSource(a.Name()), Steps: []core.RouteStep{step},
		AmountIn: req.AmountIn, AmountOutQuoted: amountOut,
		AmountOutMin: core.AmountOutMinFor(amountOut, req.Slippage.Bps),
	}
	return route, nil
}

// QuoteBridge satisfies core.BridgeAdapter for the composer (spec §4.6).
func (a *Relay) QuoteBridge(ctx context.Context, reg *core.Registry, fromChain, toChain core.CanonicalChainId, token core.TokenRef, amountIn core.AmountRaw) (*core.RouteStep, *core.AdapterError) {
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
