package adapters

// pancakeswap.go – PancakeSwap-style same-chain adapter (spec §2, §4.4).
// Same on-chain-quoter shape as UniswapV3, kept as a distinct type because
// its capabilities (lower priority, BNB Chain only) and constructor differ.

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/synnergy-labs/swaprouter/core"
)

// PancakeSwap implements core.RouterAdapter, delegating quote mechanics to
// the same on-chain quoter-call shape as UniswapV3.
type PancakeSwap struct {
	inner *UniswapV3
}

// NewPancakeSwap builds an adapter instance for BNB Smart Chain.
func NewPancakeSwap(log *logrus.Entry, chain core.CanonicalChainId, rpcURL string, router, quoter common.Address) *PancakeSwap {
	return &PancakeSwap{inner: NewUniswapV3(log.WithField("adapter", "pancakeswap"), chain, rpcURL, router, quoter)}
}

func (a *PancakeSwap) Name() string { return "pancakeswap" }

func (a *PancakeSwap) Supports(reg *core.Registry, from, to core.TokenRef) bool {
	return a.inner.Supports(reg, from, to)
}

func (a *PancakeSwap) Capabilities() core.Capabilities {
	return core.Capabilities{CrossChain: false, MaxSlippageBps: 5000, SupportsExactOut: true, Priority: 55}
}

func (a *PancakeSwap) Quote(ctx context.Context, reg *core.Registry, req core.RouteRequest) (*core.Route, *core.AdapterError) {
	route, err := a.inner.Quote(ctx, reg, req)
	if err != nil {
		return nil, core.NewAdapterError(a.Name(), err.Kind, err.Detail, err.Err)
	}
	route.Source = core.RouteSource(a.Name())
	return route, nil
}
