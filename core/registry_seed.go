package core

// registry_seed.go – compiled-in registry entries. This is the unit of
// extension spec §4.1's rationale paragraph describes ("adding a provider
// is a registry change plus an adapter implementation"): chain IDs, native
// currencies, wrapped-native addresses, and per-provider chain-id mappings
// for the adapter set named in spec §2 and §4.4.

func strp(s string) *string { return &s }

func mustEVM(hexAddr string) Address {
	a, err := EVMAddress(hexAddr)
	if err != nil {
		panic(err)
	}
	return a
}

// Canonical chain IDs. Stable for the lifetime of a deployment; never
// reassigned, never derived by hashing (spec §9).
const (
	ChainEthereum CanonicalChainId = 1
	ChainBSC      CanonicalChainId = 2
	ChainPolygon  CanonicalChainId = 3
	ChainArbitrum CanonicalChainId = 4
	ChainOptimism CanonicalChainId = 5
	ChainBase     CanonicalChainId = 6
	ChainAvalanche CanonicalChainId = 7
	ChainSolana   CanonicalChainId = 8
	ChainCosmosHub CanonicalChainId = 9
	ChainOsmosis  CanonicalChainId = 10
	ChainSui      CanonicalChainId = 11
	ChainTON      CanonicalChainId = 12
)

// NewSeedRegistry builds the default, frozen Registry shipped with this
// core: twelve chains of the EVM, Solana, Cosmos, Sui and TON kinds (none of
// kind bitcoin or other). The EVM chains and Solana carry a wrapped-native
// address; Cosmos Hub, Osmosis, Sui and TON carry none. Provider ids are
// registered for lifi, relay, squid, uniswap_v3, pancakeswap, jupiter and
// dexscreener; stargate and socket have none, so those two adapters
// support no seeded chain.
func NewSeedRegistry() *Registry {
	r := NewRegistry()

	r.RegisterChain(Chain{
		ID: ChainEthereum, Name: "Ethereum", Kind: ChainKindEVM,
		Native:        NativeCurrency{Symbol: "ETH", Decimals: 18},
		WrappedNative: ptrAddr(mustEVM("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")),
		ProviderIDs: ProviderIds{
			"lifi": strp("1"), "relay": strp("1"), "squid": strp("Ethereum"),
			"uniswap_v3": strp("1"), "dexscreener": strp("ethereum"),
		},
	})
	r.RegisterChain(Chain{
		ID: ChainBSC, Name: "BNB Smart Chain", Kind: ChainKindEVM,
		Native:        NativeCurrency{Symbol: "BNB", Decimals: 18},
		WrappedNative: ptrAddr(mustEVM("0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c")),
		ProviderIDs: ProviderIds{
			"lifi": strp("56"), "relay": strp("56"), "squid": strp("binance"),
			"pancakeswap": strp("56"), "dexscreener": strp("bsc"),
		},
	})
	r.RegisterChain(Chain{
		ID: ChainPolygon, Name: "Polygon", Kind: ChainKindEVM,
		Native:        NativeCurrency{Symbol: "POL", Decimals: 18},
		WrappedNative: ptrAddr(mustEVM("0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270")),
		ProviderIDs: ProviderIds{
			"lifi": strp("137"), "relay": strp("137"), "squid": strp("polygon"),
			"uniswap_v3": strp("137"), "dexscreener": strp("polygon"),
		},
	})
	r.RegisterChain(Chain{
		ID: ChainArbitrum, Name: "Arbitrum One", Kind: ChainKindEVM,
		Native:        NativeCurrency{Symbol: "ETH", Decimals: 18},
		WrappedNative: ptrAddr(mustEVM("0x82aF49447D8a07e3bd95BD0d56f35241523fBab1")),
		ProviderIDs: ProviderIds{
			"lifi": strp("42161"), "relay": strp("42161"), "squid": strp("arbitrum"),
			"uniswap_v3": strp("42161"), "dexscreener": strp("arbitrum"),
		},
	})
	r.RegisterChain(Chain{
		ID: ChainOptimism, Name: "OP Mainnet", Kind: ChainKindEVM,
		Native:        NativeCurrency{Symbol: "ETH", Decimals: 18},
		WrappedNative: ptrAddr(mustEVM("0x4200000000000000000000000000000000000006")),
		ProviderIDs: ProviderIds{
			"lifi": strp("10"), "relay": strp("10"), "squid": strp("optimism"),
			"uniswap_v3": strp("10"), "dexscreener": strp("optimism"),
		},
	})
	r.RegisterChain(Chain{
		ID: ChainBase, Name: "Base", Kind: ChainKindEVM,
		Native:        NativeCurrency{Symbol: "ETH", Decimals: 18},
		WrappedNative: ptrAddr(mustEVM("0x4200000000000000000000000000000000000006")),
		ProviderIDs: ProviderIds{
			"lifi": strp("8453"), "relay": strp("8453"), "squid": strp("base"),
			"uniswap_v3": strp("8453"), "dexscreener": strp("base"),
		},
	})
	r.RegisterChain(Chain{
		ID: ChainAvalanche, Name: "Avalanche C-Chain", Kind: ChainKindEVM,
		Native:        NativeCurrency{Symbol: "AVAX", Decimals: 18},
		WrappedNative: ptrAddr(mustEVM("0xB31f66AA3C1e785363F0875A1B74E27b85FD66c7")),
		ProviderIDs: ProviderIds{
			"lifi": strp("43114"), "relay": strp("43114"), "squid": strp("avalanche"),
			"dexscreener": strp("avalanche"),
		},
	})
	r.RegisterChain(Chain{
		ID: ChainSolana, Name: "Solana", Kind: ChainKindSolana,
		Native:        NativeCurrency{Symbol: "SOL", Decimals: 9},
		WrappedNative: ptrAddr(mustSolana("So11111111111111111111111111111111111111112")),
		ProviderIDs: ProviderIds{
			"lifi": strp("1151111081099710"), "jupiter": strp("solana-mainnet"),
			"dexscreener": strp("solana"),
		},
		Metadata: map[string]string{"native_id": "mainnet-beta"},
	})
	r.RegisterChain(Chain{
		ID: ChainCosmosHub, Name: "Cosmos Hub", Kind: ChainKindCosmos,
		Native: NativeCurrency{Symbol: "ATOM", Decimals: 6},
		ProviderIDs: ProviderIds{
			"squid": strp("cosmoshub-4"),
		},
		Metadata: map[string]string{"native_id": "cosmoshub-4"},
	})
	r.RegisterChain(Chain{
		ID: ChainOsmosis, Name: "Osmosis", Kind: ChainKindCosmos,
		Native: NativeCurrency{Symbol: "OSMO", Decimals: 6},
		ProviderIDs: ProviderIds{
			"squid": strp("osmosis-1"),
		},
		Metadata: map[string]string{"native_id": "osmosis-1"},
	})
	r.RegisterChain(Chain{
		ID: ChainSui, Name: "Sui", Kind: ChainKindSui,
		Native: NativeCurrency{Symbol: "SUI", Decimals: 9},
		ProviderIDs: ProviderIds{
			"lifi": strp("9270000000000000"),
		},
		Metadata: map[string]string{"native_id": "sui:mainnet"},
	})
	r.RegisterChain(Chain{
		ID: ChainTON, Name: "TON", Kind: ChainKindTON,
		Native: NativeCurrency{Symbol: "TON", Decimals: 9},
		ProviderIDs: ProviderIds{
			"lifi": strp("1360095883558914"),
		},
		Metadata: map[string]string{"native_id": "-239"},
	})

	seedBridgeables(r)
	seedCategories(r)
	return r.Freeze()
}

func ptrAddr(a Address) *Address { return &a }

func mustSolana(b58 string) Address {
	a, err := SolanaAddress(b58)
	if err != nil {
		panic(err)
	}
	return a
}

// seedBridgeables registers the ordered bridge-token preference for the
// chain pairs this core ships adapters for (spec §4.6: "native-equivalents,
// USDC, USDT, WETH, tried in order").
func seedBridgeables(r *Registry) {
	weth := func(chain CanonicalChainId, addr string) TokenRef {
		return TokenRef{Chain: chain, Address: mustEVM(addr)}
	}
	usdc := func(chain CanonicalChainId, addr string) TokenRef {
		return TokenRef{Chain: chain, Address: mustEVM(addr)}
	}

	pairs := []struct {
		from, to CanonicalChainId
		tokens   []TokenRef
	}{
		{ChainEthereum, ChainArbitrum, []TokenRef{
			usdc(ChainEthereum, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"),
			weth(ChainEthereum, "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
		}},
		{ChainEthereum, ChainOptimism, []TokenRef{
			usdc(ChainEthereum, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"),
			weth(ChainEthereum, "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
		}},
		{ChainEthereum, ChainBSC, []TokenRef{
			usdc(ChainEthereum, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"),
		}},
		{ChainEthereum, ChainBase, []TokenRef{
			usdc(ChainEthereum, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"),
			weth(ChainEthereum, "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
		}},
		{ChainEthereum, ChainPolygon, []TokenRef{
			usdc(ChainEthereum, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"),
		}},
	}
	for _, p := range pairs {
		r.RegisterBridgeableTokens(p.from, p.to, p.tokens)
		// bridges are bidirectional: register the reverse preference too.
		r.RegisterBridgeableTokens(p.to, p.from, p.tokens)
	}
}

// seedCategories installs the stablecoin/bluechip whitelists CategoryOf
// consults (spec §3.3). Native and wrapped-native are handled generically
// by CategoryOf itself from each chain's registered WrappedNative, so only
// the alt-vs-stable-vs-bluechip distinction needs per-chain data here.
func seedCategories(r *Registry) {
	r.RegisterStablecoins(ChainEthereum,
		mustEVM("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), // USDC
		mustEVM("0xdAC17F958D2ee523a2206206994597C13D831ec7"), // USDT
		mustEVM("0x6B175474E89094C44Da98b954EedeAC495271d0F"), // DAI
	)
	r.RegisterBluechips(ChainEthereum,
		mustEVM("0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599"), // WBTC
	)

	r.RegisterStablecoins(ChainBSC,
		mustEVM("0x55d398326f99059fF775485246999027B3197955"), // USDT
		mustEVM("0x8AC76a51cc950d9822D68b83fE1Ad97B32Cd580d"), // USDC
	)
	r.RegisterBluechips(ChainBSC,
		mustEVM("0x7130d2A12B9BCbFAe4f2634d864A1Ee1Ce3Ead9c"), // BTCB
	)

	r.RegisterStablecoins(ChainPolygon,
		mustEVM("0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174"), // USDC.e
		mustEVM("0xc2132D05D31c914a87C6611C10748AEb04B58e8F"), // USDT
	)
	r.RegisterBluechips(ChainPolygon,
		mustEVM("0x1BFD67037B42Cf73acF2047067bd4F2C47D9BfD6"), // WBTC
	)

	r.RegisterStablecoins(ChainArbitrum,
		mustEVM("0xaf88d065e77c8cC2239327C5EDb3A432268e5831"), // USDC
		mustEVM("0xFd086bC7CD5C481DCC9C85ebE478A1C0b69FCbb9"), // USDT
	)
	r.RegisterBluechips(ChainArbitrum,
		mustEVM("0x2f2a2543B76A4166549F7aaB2e75Bef0aefC5B0f"), // WBTC
	)

	r.RegisterStablecoins(ChainOptimism,
		mustEVM("0x0b2C639c533813f4Aa9D7837CAf62653d097Ff85"), // USDC
		mustEVM("0x94b008aA00579c1307B0EF2c499aD98a8ce58e58"), // USDT
	)
	r.RegisterBluechips(ChainOptimism,
		mustEVM("0x68f180fcCe6836688e9084f035309E29Bf0A2095"), // WBTC
	)

	r.RegisterStablecoins(ChainBase,
		mustEVM("0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"), // USDC
	)
	r.RegisterBluechips(ChainBase,
		mustEVM("0xcbB7C0000aB88B473b1f5aFd9ef808440eed33Bf"), // cbBTC
	)

	r.RegisterStablecoins(ChainAvalanche,
		mustEVM("0xB97EF9Ef8734C71904D8002F8b6Bc66Dd9c48a6E"), // USDC
		mustEVM("0x9702230A8Ea53601f5cD2dc00fDBc13d4dF4A8c7"), // USDT
	)

	r.RegisterStablecoins(ChainSolana,
		mustSolana("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"), // USDC
	)
}
