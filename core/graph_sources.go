package core

// graph_sources.go – C2's data-source interface (spec §6.2), consumed by
// the graph builder. Pluggable: any subgraph-GraphQL, DEX-aggregator REST or
// direct on-chain reserve reader plugs in by implementing PairSource; the
// one implementation shipped here is adapters.DexScreenerSource.

import (
	"context"
	"time"
)

// ReserveSnapshot is one pool's reserves as reported by a source, paired
// with the timestamp the source attached to the read.
type ReserveSnapshot struct {
	ReserveA    AmountRaw
	ReserveB    AmountRaw
	LastUpdated time.Time
}

// PairSource is a pluggable pair/reserve fetcher (spec §6.2).
type PairSource interface {
	// Name identifies the source in UpdateReport errors and logs.
	Name() string
	// FetchPairs lists pools on chain with at least sinceMinLiquidityUsd of
	// liquidity. Returning an error here never removes existing edges
	// (spec §4.2 failure semantics) — the builder only skips the update.
	FetchPairs(ctx context.Context, chain CanonicalChainId, sinceMinLiquidityUsd float64) ([]PoolEdge, error)
	// FetchReserves refreshes a known set of pools without a full pair
	// listing (GraphBuilder.RefreshPoolsReserves and RefreshColdPool); the
	// hot/warm tier refresh cycles use FetchPairs through RefreshChain.
	FetchReserves(ctx context.Context, chain CanonicalChainId, poolIDs []PoolID) (map[PoolID]ReserveSnapshot, error)
}

// OnChainReader is the additional capability direct RPC reserve readers
// expose (spec §6.2); a PairSource need not implement it.
type OnChainReader interface {
	GetFactoryPair(ctx context.Context, factory Address, tokenA, tokenB Address) (*Address, error)
	GetPairReserves(ctx context.Context, pairAddress Address) (reserve0, reserve1 AmountRaw, updatedAt time.Time, err error)
}
