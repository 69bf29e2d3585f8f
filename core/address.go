package core

// address.go – chain-appropriate address encoding for TokenRef (spec §3.1).
//
// EVM addresses round-trip through go-ethereum's common.Address so the 20
// bytes are always canonicalized the same way a wallet or router adapter
// would produce them. Solana addresses round-trip through mr-tron/base58,
// the same library the wider pack depends on (parsdao-pars/graph's
// indirect requirement) for 32-byte mint addresses. Cosmos denoms are
// stored and compared as the raw bech32/IBC denom string.

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"
)

// NativeSentinel is the address value that denotes a chain's native
// currency inside a TokenRef, per spec §3.1.
const NativeSentinel = "NATIVE"

// Address is an opaque, chain-appropriate token address.
type Address struct {
	raw  string // canonical form: lower-hex for EVM, base58 for Solana, verbatim otherwise
	kind ChainKind
}

// EVMAddress builds an Address from a 20-byte hex string (with or without
// the 0x prefix), canonicalizing case.
func EVMAddress(hexAddr string) (Address, error) {
	if !common.IsHexAddress(hexAddr) {
		return Address{}, newErr(CodeInvalidRequest, "not a valid EVM address: "+hexAddr)
	}
	return Address{raw: strings.ToLower(common.HexToAddress(hexAddr).Hex()), kind: ChainKindEVM}, nil
}

// SolanaAddress builds an Address from a base58-encoded 32-byte mint.
func SolanaAddress(b58 string) (Address, error) {
	decoded, err := base58.Decode(b58)
	if err != nil || len(decoded) != 32 {
		return Address{}, newErr(CodeInvalidRequest, "not a valid Solana mint address: "+b58)
	}
	return Address{raw: b58, kind: ChainKindSolana}, nil
}

// CosmosDenom builds an Address from a raw, case-sensitive bech32/IBC denom.
func CosmosDenom(denom string) Address {
	return Address{raw: denom, kind: ChainKindCosmos}
}

// OpaqueAddress builds an Address for chain kinds (Sui, TON, Bitcoin, Other)
// whose native representation this core does not further validate.
func OpaqueAddress(raw string, kind ChainKind) Address {
	return Address{raw: raw, kind: kind}
}

// NativeAddress returns the sentinel address for a chain kind's native coin.
func NativeAddress(kind ChainKind) Address {
	return Address{raw: NativeSentinel, kind: kind}
}

// IsNative reports whether a is the native-currency sentinel.
func (a Address) IsNative() bool { return a.raw == NativeSentinel }

// String returns the canonical textual form.
func (a Address) String() string { return a.raw }

// Equal implements the equality rule of spec §3.1: case-insensitive for
// EVM, case-sensitive otherwise. Two EVM addresses are compared with
// strings.EqualFold; any other pair is compared byte for byte.
func (a Address) Equal(b Address) bool {
	if a.kind == ChainKindEVM && b.kind == ChainKindEVM {
		return strings.EqualFold(a.raw, b.raw)
	}
	return a.raw == b.raw
}

// Less provides the total order on addresses spec §3.3 requires for
// canonical pool-edge orientation (tokenA < tokenB).
func (a Address) Less(b Address) bool {
	if a.kind == ChainKindEVM {
		return strings.ToLower(a.raw) < strings.ToLower(b.raw)
	}
	return a.raw < b.raw
}
