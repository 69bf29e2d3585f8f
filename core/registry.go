package core

// registry.go – Chain & Provider Registry (C1, spec §4.1).
//
// Grounded on the teacher's Design Notes §9 rejection of singleton
// `getX()` factories: Registry is an explicit value built once at startup
// by NewRegistry and handed to Core, not a package-level global reached
// through a getter. After Freeze(), RegisterChain panics; the other
// Register* methods do not check the flag. The read path (GetChain,
// ToProviderChainID, ...) takes no lock at all — the same "immutable after
// init" contract spec §3.5 assigns to registry entries.

import "strings"

// Registry translates between canonical chain ids and every external
// provider's identifiers (spec §4.1).
type Registry struct {
	chains            map[CanonicalChainId]*Chain
	byProviderID      map[string]map[string]CanonicalChainId // provider -> lower(providerId) -> chain
	tokenTransformers map[string]TokenAddressTransformer
	bridgeables       map[chainPair][]TokenRef
	stablecoins       map[CanonicalChainId]map[Address]bool
	bluechips         map[CanonicalChainId]map[Address]bool
	frozen            bool
}

// NewRegistry builds an empty, mutable Registry. Call RegisterChain for
// each chain, then Freeze before sharing it across goroutines.
func NewRegistry() *Registry {
	return &Registry{
		chains:       make(map[CanonicalChainId]*Chain),
		byProviderID: make(map[string]map[string]CanonicalChainId),
	}
}

// RegisterChain adds a chain to the registry. Panics if called after
// Freeze — a programmer error, not a runtime condition.
func (r *Registry) RegisterChain(c Chain) {
	if r.frozen {
		panic("core: RegisterChain called on a frozen Registry")
	}
	cc := c
	r.chains[c.ID] = &cc
	for provider, id := range c.ProviderIDs {
		if id == nil {
			continue
		}
		if r.byProviderID[provider] == nil {
			r.byProviderID[provider] = make(map[string]CanonicalChainId)
		}
		r.byProviderID[provider][strings.ToLower(*id)] = c.ID
	}
}

// Freeze marks the registry immutable. Safe to call multiple times.
func (r *Registry) Freeze() *Registry {
	r.frozen = true
	return r
}

// GetChain returns the chain registered under id, or nil (spec §4.1: total
// on registered inputs, nil on unregistered ones, never panics).
func (r *Registry) GetChain(id CanonicalChainId) *Chain {
	return r.chains[id]
}

// GetChainByProviderID resolves a provider's own chain identifier back to
// a Chain. Case-insensitive, per spec §4.1.
func (r *Registry) GetChainByProviderID(provider, providerID string) *Chain {
	ids, ok := r.byProviderID[provider]
	if !ok {
		return nil
	}
	id, ok := ids[strings.ToLower(providerID)]
	if !ok {
		return nil
	}
	return r.chains[id]
}

// ToProviderChainID returns the given chain's identifier for provider, or
// nil if that provider does not support the chain.
func (r *Registry) ToProviderChainID(chain CanonicalChainId, provider string) *string {
	c := r.chains[chain]
	if c == nil {
		return nil
	}
	return c.ProviderIDs[provider]
}

// TokenAddressTransformer adapts a canonical TokenRef's address into the
// bytes a specific provider expects (spec §4.1: "Solana mint format,
// Cosmos denoms are declared in the registry as transformer functions
// declared once per provider").
type TokenAddressTransformer func(ref TokenRef) (string, bool)

// defaultTokenAddressTransformer returns the address verbatim: correct for
// every EVM-style provider, which is the common case spec §4.1 describes.
func defaultTokenAddressTransformer(ref TokenRef) (string, bool) {
	return ref.Address.String(), true
}

// ToProviderTokenAddress translates ref into provider's address shape. Most
// providers use the identity transform; exceptions are registered once via
// RegisterTokenAddressTransformer.
func (r *Registry) ToProviderTokenAddress(ref TokenRef, provider string) (string, bool) {
	if r.ToProviderChainID(ref.Chain, provider) == nil {
		return "", false
	}
	if t, ok := r.tokenTransformers[provider]; ok {
		return t(ref)
	}
	return defaultTokenAddressTransformer(ref)
}

// RegisterTokenAddressTransformer installs a non-default address transform
// for a provider (e.g. a provider that expects Solana mints re-encoded, or
// Cosmos IBC denoms rewritten).
func (r *Registry) RegisterTokenAddressTransformer(provider string, t TokenAddressTransformer) {
	if r.tokenTransformers == nil {
		r.tokenTransformers = make(map[string]TokenAddressTransformer)
	}
	r.tokenTransformers[provider] = t
}

// IsWrappedNative reports whether ref is the chain's wrapped-native token.
func (r *Registry) IsWrappedNative(ref TokenRef) bool {
	c := r.chains[ref.Chain]
	if c == nil || c.WrappedNative == nil {
		return false
	}
	return c.WrappedNative.Equal(ref.Address)
}

// WrappedNative returns the wrapped-native TokenRef for chain, or nil if
// the chain has none registered.
func (r *Registry) WrappedNative(chain CanonicalChainId) *TokenRef {
	c := r.chains[chain]
	if c == nil || c.WrappedNative == nil {
		return nil
	}
	return &TokenRef{Chain: chain, Address: *c.WrappedNative}
}

// ListChains returns every registered chain (spec §6.1 ListSupportedChains).
func (r *Registry) ListChains() []Chain {
	out := make([]Chain, 0, len(r.chains))
	for _, c := range r.chains {
		out = append(out, *c)
	}
	return out
}

// BridgeableTokens returns the ordered list of canonical bridge tokens the
// cross-chain composer (C6, spec §4.6) should try, in priority order, for
// a given chain pair. Empty if the pair has no known bridgeable asset.
func (r *Registry) BridgeableTokens(from, to CanonicalChainId) []TokenRef {
	return r.bridgeables[chainPair{from, to}]
}

// RegisterBridgeableTokens installs the ordered bridge-token list for a
// chain pair (registry-seed concern; see registry_seed.go).
func (r *Registry) RegisterBridgeableTokens(from, to CanonicalChainId, tokens []TokenRef) {
	if r.bridgeables == nil {
		r.bridgeables = make(map[chainPair][]TokenRef)
	}
	r.bridgeables[chainPair{from, to}] = tokens
}

type chainPair struct {
	from, to CanonicalChainId
}

// RegisterStablecoins installs chain's canonical stablecoin addresses
// (registry-seed concern; see registry_seed.go), consulted by CategoryOf.
func (r *Registry) RegisterStablecoins(chain CanonicalChainId, addrs ...Address) {
	if r.stablecoins == nil {
		r.stablecoins = make(map[CanonicalChainId]map[Address]bool)
	}
	set := r.stablecoins[chain]
	if set == nil {
		set = make(map[Address]bool, len(addrs))
		r.stablecoins[chain] = set
	}
	for _, a := range addrs {
		set[a] = true
	}
}

// RegisterBluechips installs chain's canonical bluechip addresses
// (registry-seed concern; see registry_seed.go), consulted by CategoryOf.
func (r *Registry) RegisterBluechips(chain CanonicalChainId, addrs ...Address) {
	if r.bluechips == nil {
		r.bluechips = make(map[CanonicalChainId]map[Address]bool)
	}
	set := r.bluechips[chain]
	if set == nil {
		set = make(map[Address]bool, len(addrs))
		r.bluechips[chain] = set
	}
	for _, a := range addrs {
		set[a] = true
	}
}

// CategoryOf deterministically classifies ref for the pathfinder's
// restricted-intermediary ranking (spec §3.3, §4.3.1): the chain's native
// asset and its wrapped-native counterpart are native, addresses on the
// chain's stablecoin/bluechip whitelists are stable/bluechip, everything
// else is alt.
func (r *Registry) CategoryOf(ref TokenRef) TokenCategory {
	if ref.Address.IsNative() || r.IsWrappedNative(ref) {
		return CategoryNative
	}
	if set, ok := r.stablecoins[ref.Chain]; ok && set[ref.Address] {
		return CategoryStable
	}
	if set, ok := r.bluechips[ref.Chain]; ok && set[ref.Address] {
		return CategoryBluechip
	}
	return CategoryAlt
}
