package core

import "testing"

func TestRegistryRegisterChainPanicsAfterFreeze(t *testing.T) {
	r := NewRegistry()
	r.Freeze()
	defer func() {
		if recover() == nil {
			t.Fatal("expected RegisterChain to panic on a frozen registry")
		}
	}()
	r.RegisterChain(Chain{ID: 999, Name: "late"})
}

func TestRegistryGetChainUnregisteredReturnsNil(t *testing.T) {
	r := NewSeedRegistry()
	if c := r.GetChain(CanonicalChainId(99999)); c != nil {
		t.Fatalf("expected nil for an unregistered chain, got %+v", c)
	}
}

func TestRegistryGetChainByProviderIDCaseInsensitive(t *testing.T) {
	r := NewSeedRegistry()
	c := r.GetChainByProviderID("squid", "ethereum")
	if c == nil || c.ID != ChainEthereum {
		t.Fatalf("expected case-insensitive lookup to resolve Ethereum, got %+v", c)
	}
}

func TestRegistryToProviderChainIDUnsupportedProvider(t *testing.T) {
	r := NewSeedRegistry()
	if id := r.ToProviderChainID(ChainEthereum, "not-a-real-provider"); id != nil {
		t.Fatalf("expected nil for an unsupported provider, got %v", *id)
	}
}

func TestRegistryToProviderTokenAddressDefaultTransform(t *testing.T) {
	r := NewSeedRegistry()
	weth := *r.WrappedNative(ChainEthereum)
	addr, ok := r.ToProviderTokenAddress(weth, "uniswap_v3")
	if !ok || addr != weth.Address.String() {
		t.Fatalf("expected identity transform, got %q ok=%v", addr, ok)
	}
	if _, ok := r.ToProviderTokenAddress(weth, "not-a-real-provider"); ok {
		t.Fatal("expected ok=false for a provider that does not support the chain")
	}
}

func TestRegistryCustomTokenAddressTransformer(t *testing.T) {
	r := NewSeedRegistry()
	r.RegisterTokenAddressTransformer("lifi", func(ref TokenRef) (string, bool) {
		return "rewritten:" + ref.Address.String(), true
	})
	weth := *r.WrappedNative(ChainEthereum)
	addr, ok := r.ToProviderTokenAddress(weth, "lifi")
	if !ok || addr != "rewritten:"+weth.Address.String() {
		t.Fatalf("custom transformer not applied, got %q", addr)
	}
}

func TestRegistryIsWrappedNative(t *testing.T) {
	r := NewSeedRegistry()
	weth := *r.WrappedNative(ChainEthereum)
	if !r.IsWrappedNative(weth) {
		t.Fatal("expected WETH to be reported as wrapped native")
	}
	other := TokenRef{Chain: ChainEthereum, Address: NativeAddress(ChainKindEVM)}
	if r.IsWrappedNative(other) {
		t.Fatal("native sentinel must not be reported as wrapped native")
	}
}

func TestRegistryBridgeableTokensRoundTrip(t *testing.T) {
	r := NewRegistry()
	r.RegisterChain(Chain{ID: 1, Name: "a"})
	r.RegisterChain(Chain{ID: 2, Name: "b"})
	usdc := TokenRef{Chain: 1, Address: OpaqueAddress("usdc", ChainKindOther)}
	r.RegisterBridgeableTokens(1, 2, []TokenRef{usdc})
	got := r.BridgeableTokens(1, 2)
	if len(got) != 1 || !got[0].Equal(usdc) {
		t.Fatalf("expected [usdc], got %+v", got)
	}
	if got := r.BridgeableTokens(2, 1); len(got) != 0 {
		t.Fatalf("expected no bridgeables for the reverse pair, got %+v", got)
	}
}

func TestSeedRegistryListChainsNonEmpty(t *testing.T) {
	r := NewSeedRegistry()
	chains := r.ListChains()
	if len(chains) == 0 {
		t.Fatal("expected NewSeedRegistry to register at least one chain")
	}
	seen := make(map[CanonicalChainId]bool)
	for _, c := range chains {
		if seen[c.ID] {
			t.Fatalf("duplicate chain id %d in ListChains", c.ID)
		}
		seen[c.ID] = true
	}
}
