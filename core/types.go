package core

// types.go – canonical identifiers and registry entities (spec §3.1–§3.2).

import "time"

// CanonicalChainId is the core's process-wide stable positive integer for a
// chain. Never derived by hashing (spec §9 forbids hashStringToNumber-style
// synthesis) — every chain gets an explicit ID assigned in the registry
// seed data.
type CanonicalChainId uint32

// ChainKind classifies a chain's execution/address model.
type ChainKind string

const (
	ChainKindEVM     ChainKind = "evm"
	ChainKindSolana  ChainKind = "solana"
	ChainKindCosmos  ChainKind = "cosmos"
	ChainKindSui     ChainKind = "sui"
	ChainKindTON     ChainKind = "ton"
	ChainKindBitcoin ChainKind = "bitcoin"
	ChainKindOther   ChainKind = "other"
)

// NativeCurrency describes a chain's gas/native asset.
type NativeCurrency struct {
	Symbol   string
	Decimals uint8
}

// ProviderIds maps an external provider's name to that provider's own
// identifier for a chain. A nil entry means the provider cannot route on
// that chain at all — a deliberate absence, not an error (spec §4.1).
type ProviderIds map[string]*string

// Chain is a registry entry (spec §3.2).
type Chain struct {
	ID             CanonicalChainId
	Name           string
	Kind           ChainKind
	Native         NativeCurrency
	WrappedNative  *Address
	Metadata       map[string]string
	ProviderIDs    ProviderIds
}

// TokenRef uniquely identifies a token inside the core: a canonical chain id
// plus a chain-appropriate address (spec §3.1).
type TokenRef struct {
	Chain   CanonicalChainId
	Address Address
}

// Equal compares two TokenRef values using Address's per-kind equality rule.
func (t TokenRef) Equal(o TokenRef) bool {
	return t.Chain == o.Chain && t.Address.Equal(o.Address)
}

// TokenCategory is the deterministic classification spec §3.3 assigns to
// every registered token, used by the pathfinder's intermediary ranker.
type TokenCategory string

const (
	CategoryNative   TokenCategory = "native"
	CategoryStable   TokenCategory = "stable"
	CategoryBluechip TokenCategory = "bluechip"
	CategoryAlt      TokenCategory = "alt"
)

// TokenNode is a node in the liquidity graph (spec §3.3).
type TokenNode struct {
	Ref          TokenRef
	Decimals     uint8
	Symbol       string
	Category     TokenCategory
	LiquidityUSD float64
}

// PoolID identifies a liquidity pool edge within its chain.
type PoolID string

// DEX identifies the exchange/protocol that owns a pool edge.
type DEX string

// PoolEdge is an edge in the liquidity graph (spec §3.3). Reserves are
// stored in canonical tokenA/tokenB order (invariant 1).
type PoolEdge struct {
	ID          PoolID
	Chain       CanonicalChainId
	TokenA      TokenRef
	TokenB      TokenRef
	Dex         DEX
	Factory     *Address
	PairAddress Address
	ReserveA    AmountRaw
	ReserveB    AmountRaw
	FeeBps      uint16
	LiquidityUSD float64
	LastUpdated time.Time
}
