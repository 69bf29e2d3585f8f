package adapters

// dexscreener.go – a core.PairSource backed by the DexScreener pairs API
// (spec §6.2, registry_seed.go's "dexscreener" providerId on every EVM and
// Solana chain). Grounded on client.go's shared HTTP plumbing; this is the
// GraphBuilder's reference pair-listing source until a chain-specific
// on-chain reader is wired in its place.

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/synnergy-labs/swaprouter/core"
)

const dexscreenerBaseURL = "https://api.dexscreener.com/latest/dex"

// DexScreenerSource implements core.PairSource, resolving each chain's
// DexScreener slug from the registry it was built with.
type DexScreenerSource struct {
	client *httpClient
	reg    *core.Registry
}

func NewDexScreenerSource(log *logrus.Entry, reg *core.Registry) *DexScreenerSource {
	return &DexScreenerSource{client: newHTTPClient(log.WithField("source", "dexscreener")), reg: reg}
}

func (s *DexScreenerSource) Name() string { return "dexscreener" }

type dexscreenerPairsResponse struct {
	Pairs []struct {
		PairAddress string `json:"pairAddress"`
		DexID       string `json:"dexId"`
		BaseToken   struct {
			Address string `json:"address"`
		} `json:"baseToken"`
		QuoteToken struct {
			Address string `json:"address"`
		} `json:"quoteToken"`
		LiquidityUsd float64 `json:"liquidityUsd"`
	} `json:"pairs"`
}

// FetchPairs lists pools for chain at or above sinceMinLiquidityUsd of
// reported liquidity. DexScreener reports USD liquidity directly but not
// raw on-chain reserves, so ReserveA/ReserveB are left zero here.
// GraphBuilder.RefreshChain skips zero-reserve edges, so the pairs this
// source lists add no edges to the graph on their own.
func (s *DexScreenerSource) FetchPairs(ctx context.Context, chain core.CanonicalChainId, sinceMinLiquidityUsd float64) ([]core.PoolEdge, error) {
	ch := s.reg.GetChain(chain)
	if ch == nil {
		return nil, core.Invalid("chain", "not registered")
	}
	slug := ch.ProviderIDs["dexscreener"]
	if slug == nil {
		return nil, nil
	}
	url := dexscreenerBaseURL + "/pairs/" + *slug

	var resp dexscreenerPairsResponse
	if err := s.client.getJSON(ctx, url, nil, &resp); err != nil {
		return nil, err
	}

	edges := make([]core.PoolEdge, 0, len(resp.Pairs))
	for _, p := range resp.Pairs {
		if p.LiquidityUsd < sinceMinLiquidityUsd {
			continue
		}
		baseAddr := core.OpaqueAddress(p.BaseToken.Address, ch.Kind)
		quoteAddr := core.OpaqueAddress(p.QuoteToken.Address, ch.Kind)
		pairAddr := core.OpaqueAddress(p.PairAddress, ch.Kind)
		tokenA, tokenB := core.TokenRef{Chain: chain, Address: baseAddr}, core.TokenRef{Chain: chain, Address: quoteAddr}
		if quoteAddr.Less(baseAddr) {
			tokenA, tokenB = tokenB, tokenA
		}
		edges = append(edges, core.PoolEdge{
			ID: core.PoolID(p.PairAddress), Chain: chain, TokenA: tokenA, TokenB: tokenB,
			Dex: core.DEX(p.DexID), PairAddress: pairAddr, LiquidityUSD: p.LiquidityUsd,
		})
	}
	return edges, nil
}

// FetchReserves is a no-op for this source: DexScreener's pairs API does not
// report raw on-chain reserves, only USD liquidity, which FetchPairs already
// captures. A chain-specific core.OnChainReader is what supplies the
// ReserveA/ReserveB the pathfinder's constant-product simulation needs.
func (s *DexScreenerSource) FetchReserves(ctx context.Context, chain core.CanonicalChainId, poolIDs []core.PoolID) (map[core.PoolID]core.ReserveSnapshot, error) {
	return map[core.PoolID]core.ReserveSnapshot{}, nil
}
