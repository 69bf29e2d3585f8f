package adapters

// socket.go – Socket (Bungee) adapter (spec §4.4 "NEW — bridge adapters"):
// a bridge/bridge-aggregator like Stargate, same bridge-only shape. Kept as
// a separate adapter rather than folded into Stargate because its request
// and response wire shapes differ and spec §9's open question names both
// as options to wire, not one standing in for the other.

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/synnergy-labs/swaprouter/core"
)

const socketBaseURL = "https://api.socket.tech/v2"

// Socket implements core.BridgeAdapter only.
type Socket struct {
	client *httpClient
	apiKey string
}

func NewSocket(log *logrus.Entry, apiKey string) *Socket {
	return &Socket{client: newHTTPClient(log.WithField("adapter", "socket")), apiKey: apiKey}
}

func (a *Socket) Name() string { return "socket" }

func (a *Socket) Supports(reg *core.Registry, from, to core.TokenRef) bool {
	if from.Chain == to.Chain {
		return false
	}
	return reg.ToProviderChainID(from.Chain, a.Name()) != nil && reg.ToProviderChainID(to.Chain, a.Name()) != nil
}

func (a *Socket) Capabilities() core.Capabilities {
	return core.Capabilities{CrossChain: true, MaxSlippageBps: 1500, SupportsExactOut: false, Priority: 65}
}

type socketQuoteResponse struct {
	Result struct {
		Routes []struct {
			ToAmount    string `json:"toAmount"`
			ServiceTime int    `json:"serviceTime"`
			TotalUserTx int    `json:"totalUserTx"`
		} `json:"routes"`
	} `json:"result"`
}

// Quote rejects a same-chain request with AdapterUnsupported (Socket, like
// Stargate, only bridges, spec §4.4); a cross-chain request is quoted
// through QuoteBridge and returned as a one-step route.
func (a *Socket) Quote(ctx context.Context, reg *core.Registry, req core.RouteRequest) (*core.Route, *core.AdapterError) {
	if req.From.Chain == req.To.Chain {
		return nil, core.NewAdapterError(a.Name(), core.AdapterUnsupported, "socket only bridges, it does not swap", nil)
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

func (a *Socket) QuoteBridge(ctx context.Context, reg *core.Registry, fromChain, toChain core.CanonicalChainId, token core.TokenRef, amountIn core.AmountRaw) (*core.RouteStep, *core.AdapterError) {
	srcChain := reg.ToProviderChainID(fromChain, a.Name())
	dstChain := reg.ToProviderChainID(toChain, a.Name())
	if srcChain == nil || dstChain == nil {
		return nil, core.NewAdapterError(a.Name(), core.AdapterUnsupported, "chain not supported", nil)
	}
	srcAddr, _ := reg.ToProviderTokenAddress(token, a.Name())
	dstToken := core.TokenRef{Chain: toChain, Address: token.Address}
	dstAddr, _ := reg.ToProviderTokenAddress(dstToken, a.Name())

	url := socketBaseURL + "/quote" +
		"?fromChainId=" + *srcChain + "&toChainId=" + *dstChain +
		"&fromTokenAddress=" + srcAddr + "&toTokenAddress=" + dstAddr +
		"&fromAmount=" + amountIn.String() + "&sort=output"

	headers := map[string]string{}
	if a.apiKey != "" {
		headers["API-KEY"] = a.apiKey
	}
	var resp socketQuoteResponse
	if err := a.client.getJSON(ctx, url, headers, &resp); err != nil {
		return nil, classifyHTTPErr(a.Name(), err)
	}
	if len(resp.Result.Routes) == 0 {
		return nil, core.NewAdapterError(a.Name(), core.AdapterNoRoute, "no socket route for this pair", nil)
	}
	best := resp.Result.Routes[0]
	amountOut, ok := core.AmountFromDecimalString(best.ToAmount)
	if !ok {
		return nil, core.NewAdapterError(a.Name(), core.AdapterInvalid, "unparseable toAmount", nil)
	}
	return &core.RouteStep{
		Kind: core.StepBridge, Chain: fromChain, InputToken: token, OutputToken: dstToken,
		FromChain: fromChain, ToChain: toChain, BridgeID: "socket",
		AmountIn: amountIn, AmountOutQuoted: amountOut, RawAmountOut: best.ToAmount,
		EstimatedSeconds: best.ServiceTime,
	}, nil
}
