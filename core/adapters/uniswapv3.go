package adapters

// uniswapv3.go – Uniswap-v3-style same-chain adapter (spec §2, §4.4).
// Represents the class of adapters that quote directly against a known
// on-chain quoter contract rather than a hosted aggregator API; kept
// HTTP-shaped here (a JSON-RPC `eth_call` to the quoter) for uniformity
// with the rest of this package, grounded the same way the teacher's
// core/amm.go Quote function reads reserves directly rather than going
// through a third-party aggregator.

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/synnergy-labs/swaprouter/core"
)

// UniswapV3 implements core.RouterAdapter for one (chain, router, quoter)
// deployment. A deployment with multiple chains registers one instance per
// chain, since the router/quoter/factory addresses differ per chain.
type UniswapV3 struct {
	client         *httpClient
	chain          core.CanonicalChainId
	rpcURL         string
	routerAddress  common.Address
	quoterAddress  common.Address
}

// NewUniswapV3 builds an adapter instance bound to one chain's deployment.
func NewUniswapV3(log *logrus.Entry, chain core.CanonicalChainId, rpcURL string, router, quoter common.Address) *UniswapV3 {
	return &UniswapV3{client: newHTTPClient(log.WithField("adapter", "uniswap_v3")), chain: chain, rpcURL: rpcURL, routerAddress: router, quoterAddress: quoter}
}

func (a *UniswapV3) Name() string { return "uniswap_v3" }

func (a *UniswapV3) Supports(reg *core.Registry, from, to core.TokenRef) bool {
	return from.Chain == a.chain && to.Chain == a.chain
}

func (a *UniswapV3) Capabilities() core.Capabilities {
	return core.Capabilities{CrossChain: false, MaxSlippageBps: 5000, SupportsExactOut: true, Priority: 60}
}

type jsonRPCRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type jsonRPCResponse struct {
	Result string `json:"result"`
	Error  *struct{ Message string `json:"message"` } `json:"error"`
}

func (a *UniswapV3) Quote(ctx context.Context, reg *core.Registry, req core.RouteRequest) (*core.Route, *core.AdapterError) {
	if !a.Supports(reg, req.From, req.To) {
		return nil, core.NewAdapterError(a.Name(), core.AdapterUnsupported, "wrong chain for this deployment", nil)
	}
	fromAddr, _ := reg.ToProviderTokenAddress(req.From, a.Name())
	toAddr, _ := reg.ToProviderTokenAddress(req.To, a.Name())

	calldata := encodeQuoteExactInputSingle(fromAddr, toAddr, req.AmountIn)
	rpcReq := jsonRPCRequest{JSONRPC: "2.0", ID: 1, Method: "eth_call", Params: []interface{}{
		map[string]string{"to": a.quoterAddress.Hex(), "data": calldata}, "latest",
	}}
	var resp jsonRPCResponse
	if err := a.client.postJSON(ctx, a.rpcURL, nil, rpcReq, &resp); err != nil {
		return nil, classifyHTTPErr(a.Name(), err)
	}
	if resp.Error != nil {
		return nil, core.NewAdapterError(a.Name(), core.AdapterTransport, resp.Error.Message, nil)
	}
	amountOut, ok := decodeQuoteResult(resp.Result)
	if !ok {
		return nil, core.NewAdapterError(a.Name(), core.AdapterInvalid, "unparseable quoter result", nil)
	}

	amountOutMin := core.AmountOutMinFor(amountOut, req.Slippage.Bps)
	step := core.RouteStep{
		Kind: core.StepSwap, Chain: a.chain, InputToken: req.From, OutputToken: req.To,
		AmountIn: req.AmountIn, AmountOutQuoted: amountOut, RawAmountOut: amountOut.String(),
		Plan: &core.ExecutionPlan{EVMSwap: &core.EVMSwapPlan{
			RouterAddress: core.OpaqueAddress(a.routerAddress.Hex(), core.ChainKindEVM),
			Path:          []core.Address{req.From.Address, req.To.Address},
			AmountIn:      req.AmountIn, AmountOutMin: amountOutMin,
		}},
	}
	route := &core.Route{
		Source: core.RouteSource(a.Name()), Steps: []core.RouteStep{step},
		AmountIn: req.AmountIn, AmountOutQuoted: amountOut, AmountOutMin: amountOutMin,
	}
	return route, nil
}

// encodeQuoteExactInputSingle is a placeholder calldata builder: the
// executor (outside this core, per spec §1 scope) owns real ABI encoding.
// This core only needs enough of a calldata shape that the raw provider
// values it records are reproducible, per spec §4.4 duty 4.
func encodeQuoteExactInputSingle(fromAddr, toAddr string, amountIn core.AmountRaw) string {
	return fmt.Sprintf("0x%s%s%s", fromAddr, toAddr, amountIn.String())
}

// decodeQuoteResult parses eth_call's 0x-prefixed hex return value.
// AmountFromDecimalString delegates to uint256.Int.SetString, which
// auto-detects the "0x" prefix the same way math/big.Int.SetString(s, 0)
// does, so the prefixed string is passed through unchanged.
func decodeQuoteResult(hexResult string) (core.AmountRaw, bool) {
	if len(hexResult) < 3 {
		return core.ZeroAmount, false
	}
	return core.AmountFromDecimalString(hexResult)
}
