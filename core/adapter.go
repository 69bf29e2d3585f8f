package core

// adapter.go – C4 external router adapter contract (spec §4.4).
//
// Grounded on the teacher's cmd/xchainserver/server/handlers.go JSON
// request/response plumbing, generalized behind an interface instead of
// being hand-rolled per handler, and upgraded to thread context.Context
// through every call the way the teacher's handlers never do.

import "context"

// AdapterErrorKind classifies an AdapterError (spec §4.4).
type AdapterErrorKind string

const (
	AdapterNoRoute               AdapterErrorKind = "no_route"
	AdapterInsufficientLiquidity AdapterErrorKind = "insufficient_liquidity"
	AdapterTimeout               AdapterErrorKind = "timeout"
	AdapterRateLimited           AdapterErrorKind = "rate_limited"
	AdapterUnsupported           AdapterErrorKind = "unsupported"
	AdapterTransport             AdapterErrorKind = "transport"
	AdapterInvalid               AdapterErrorKind = "invalid"
	AdapterInternal              AdapterErrorKind = "internal"
)

// AdapterError is the per-source error the aggregator accumulates into
// RouteResponse.Diagnostics rather than failing the request (spec §4.4,
// §9 "Catching 'any error' at the top... is explicitly wrong").
type AdapterError struct {
	Adapter string
	Kind    AdapterErrorKind
	// Retryable mirrors spec §4.4: only Timeout and RateLimited are ever
	// true, and the aggregator retries at most once.
	Retryable bool
	Detail    string
	Err       error
}

func (e *AdapterError) Error() string {
	if e.Adapter != "" {
		return e.Adapter + ": " + string(e.Kind) + ": " + e.Detail
	}
	return string(e.Kind) + ": " + e.Detail
}

func (e *AdapterError) Unwrap() error { return e.Err }

func retryableKind(k AdapterErrorKind) bool {
	return k == AdapterTimeout || k == AdapterRateLimited
}

// NewAdapterError builds an AdapterError, deriving Retryable from kind.
func NewAdapterError(adapter string, kind AdapterErrorKind, detail string, err error) *AdapterError {
	return &AdapterError{Adapter: adapter, Kind: kind, Retryable: retryableKind(kind), Detail: detail, Err: err}
}

// Capabilities describes what an adapter can do (spec §4.4).
type Capabilities struct {
	CrossChain       bool
	MaxSlippageBps   uint32
	SupportsExactOut bool
	Priority         int
}

// RouterAdapter is the uniform external-router interface (spec §4.4).
// Implementations live in package core/adapters, one file per provider.
type RouterAdapter interface {
	// Name is the adapter's stable identifier, used in diagnostics, config
	// (enabledAdapters), and tie-break priority bookkeeping.
	Name() string
	// Supports reports, with no network call, whether the adapter can
	// route from->to given the registry's provider capability data.
	Supports(reg *Registry, from, to TokenRef) bool
	// Quote issues the one external call this adapter needs to answer
	// request, honoring ctx's deadline and cancellation.
	Quote(ctx context.Context, reg *Registry, request RouteRequest) (*Route, *AdapterError)
	Capabilities() Capabilities
}

// BridgeAdapter is the cross-chain-transfer sub-interface the composer
// (C6, spec §4.6) consumes: quote moving the same asset from one chain to
// another, without any swap.
type BridgeAdapter interface {
	RouterAdapter
	// QuoteBridge quotes transferring amountIn of token (present on
	// fromChain) to its equivalent on toChain.
	QuoteBridge(ctx context.Context, reg *Registry, fromChain, toChain CanonicalChainId, token TokenRef, amountIn AmountRaw) (*RouteStep, *AdapterError)
}
