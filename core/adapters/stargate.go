package adapters

// stargate.go – Stargate adapter (spec §4.4 "NEW — bridge adapters"):
// unlike lifi/relay/squid, Stargate only moves an asset between chains, it
// never swaps, so Quote rejects any same-chain request and QuoteBridge is
// the adapter's real entry point. Grounded on relay.go/squid.go's
// POST-quote shape.

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/synnergy-labs/swaprouter/core"
)

const stargateBaseURL = "https://stargate.finance/api/v1"

// Stargate implements core.BridgeAdapter only; same-chain Quote always
// fails with AdapterUnsupported.
type Stargate struct {
	client *httpClient
}

func NewStargate(log *logrus.Entry) *Stargate {
	return &Stargate{client: newHTTPClient(log.WithField("adapter", "stargate"))}
}

func (a *Stargate) Name() string { return "stargate" }

func (a *Stargate) Supports(reg *core.Registry, from, to core.TokenRef) bool {
	if from.Chain == to.Chain {
		return false
	}
	return reg.ToProviderChainID(from.Chain, a.Name()) != nil && reg.ToProviderChainID(to.Chain, a.Name()) != nil
}

func (a *Stargate) Capabilities() core.Capabilities {
	return core.Capabilities{CrossChain: true, MaxSlippageBps: 1500, SupportsExactOut: false, Priority: 65}
}

type stargateQuoteRequest struct {
	SrcChainKey string `json:"srcChainKey"`
	DstChainKey string `json:"dstChainKey"`
	SrcToken    string `json:"srcToken"`
	DstToken    string `json:"dstToken"`
	SrcAmount   string `json:"srcAmount"`
}

type stargateQuoteResponse struct {
	Quotes []struct {
		DstAmount string `json:"dstAmount"`
		Duration  struct {
			Estimated int `json:"estimated"`
		} `json:"duration"`
		Fees []struct {
			AmountUSD string `json:"amountUSD"`
		} `json:"fees"`
	} `json:"quotes"`
}

// Quote rejects a same-chain request with AdapterUnsupported (Stargate never
// swaps within a chain, spec §4.4); a cross-chain request is quoted through
// QuoteBridge and returned as a one-step route.
func (a *Stargate) Quote(ctx context.Context, reg *core.Registry, req core.RouteRequest) (*core.Route, *core.AdapterError) {
	if req.From.Chain == req.To.Chain {
		return nil, core.NewAdapterError(a.Name(), core.AdapterUnsupported, "stargate only bridges, it does not swap", nil)
	}
	step, err := a.QuoteBridge(ctx, reg, req.From.Chain, req.To.Chain, req.From, req.AmountIn)
	if err != nil {
		return nil, err
	}
	route := &core.Route{
		Source: core.RouteSource(a.Name()), Steps: []core.RouteStep{*step},
		AmountIn: req.AmountIn, AmountOutQuoted: step.AmountOutQuoted,
		AmountOutMin: core.AmountOutMinFor(step.AmountOutQuoted, req.Slippage.Bps),
	}
	return route, nil
}

func (a *Stargate) QuoteBridge(ctx context.Context, reg *core.Registry, fromChain, toChain core.CanonicalChainId, token core.TokenRef, amountIn core.AmountRaw) (*core.RouteStep, *core.AdapterError) {
	srcChain := reg.ToProviderChainID(fromChain, a.Name())
	dstChain := reg.ToProviderChainID(toChain, a.Name())
	if srcChain == nil || dstChain == nil {
		return nil, core.NewAdapterError(a.Name(), core.AdapterUnsupported, "chain not supported", nil)
	}
	srcAddr, _ := reg.ToProviderTokenAddress(token, a.Name())
	dstToken := core.TokenRef{Chain: toChain, Address: token.Address}
	dstAddr, _ := reg.ToProviderTokenAddress(dstToken, a.Name())

	body := stargateQuoteRequest{
		SrcChainKey: *srcChain, DstChainKey: *dstChain,
		SrcToken: srcAddr, DstToken: dstAddr, SrcAmount: amountIn.String(),
	}
	var resp stargateQuoteResponse
	if err := a.client.postJSON(ctx, stargateBaseURL+"/quotes", nil, body, &resp); err != nil {
		return nil, classifyHTTPErr(a.Name(), err)
	}
	if len(resp.Quotes) == 0 {
		return nil, core.NewAdapterError(a.Name(), core.AdapterNoRoute, "no stargate route for this pair", nil)
	}
	best := resp.Quotes[0]
	amountOut, ok := core.AmountFromDecimalString(best.DstAmount)
	if !ok {
		return nil, core.NewAdapterError(a.Name(), core.AdapterInvalid, "unparseable dstAmount", nil)
	}
	return &core.RouteStep{
		Kind: core.StepBridge, Chain: fromChain, InputToken: token, OutputToken: dstToken,
		FromChain: fromChain, ToChain: toChain, BridgeID: "stargate",
		AmountIn: amountIn, AmountOutQuoted: amountOut, RawAmountOut: best.DstAmount,
		EstimatedSeconds: best.Duration.Estimated,
	}, nil
}
