package core

// amount.go – AmountRaw, the core's unsigned big-integer type for amounts
// in a token's smallest unit (spec §3.1). Backed by github.com/holiman/uint256
// instead of math/big: every quantity in this core fits in 256 bits and
// uint256.Int avoids big.Int's heap allocation on every operation, which
// matters on the quote hot path (§9 "latency is dominated by fan-out", not
// by arithmetic, but there is no reason to pay an allocator tax per hop).

import (
	"math/big"

	"github.com/holiman/uint256"
)

// AmountRaw is an unsigned integer in a token's smallest unit. The zero
// value is zero. AmountRaw is never formatted for display inside the core
// (spec §3.1) — String() exists only for logs and test failure messages.
type AmountRaw struct{ v uint256.Int }

// ZeroAmount is the additive identity.
var ZeroAmount = AmountRaw{}

// AmountFromUint64 builds an AmountRaw from a plain uint64.
func AmountFromUint64(n uint64) AmountRaw {
	var a AmountRaw
	a.v.SetUint64(n)
	return a
}

// AmountFromBigInt builds an AmountRaw from a math/big.Int, used at the
// boundary with adapters that decode provider JSON into big.Int. Returns
// false if b is negative or overflows 256 bits.
func AmountFromBigInt(b *big.Int) (AmountRaw, bool) {
	var a AmountRaw
	if b.Sign() < 0 {
		return AmountRaw{}, false
	}
	overflow := a.v.SetFromBig(b)
	return a, !overflow
}

// AmountFromDecimalString parses a base-10 integer string (no sign, no
// fraction) as produced by most providers' JSON "amount" fields.
func AmountFromDecimalString(s string) (AmountRaw, bool) {
	var a AmountRaw
	_, ok := a.v.SetString(s)
	return a, ok == nil
}

// BigInt converts to math/big.Int for the adapter/executor boundary.
func (a AmountRaw) BigInt() *big.Int { return a.v.ToBig() }

// String renders the decimal form. Logging/debugging only — see the type
// doc comment; nothing in the quote/route path may depend on this value.
func (a AmountRaw) String() string { return a.v.Dec() }

// IsZero reports whether the amount is zero.
func (a AmountRaw) IsZero() bool { return a.v.IsZero() }

// Cmp compares two amounts: -1, 0, or 1.
func (a AmountRaw) Cmp(b AmountRaw) int { return a.v.Cmp(&b.v) }

// GreaterThan reports a > b.
func (a AmountRaw) GreaterThan(b AmountRaw) bool { return a.Cmp(b) > 0 }

// LessThan reports a < b.
func (a AmountRaw) LessThan(b AmountRaw) bool { return a.Cmp(b) < 0 }

// Add returns a + b.
func (a AmountRaw) Add(b AmountRaw) AmountRaw {
	var out AmountRaw
	out.v.Add(&a.v, &b.v)
	return out
}

// Sub returns a - b, saturating at zero rather than wrapping. Callers on
// the quote path always subtract a bounded fraction, never an arbitrary
// amount, so saturation only ever hides a rounding error of a few units.
func (a AmountRaw) Sub(b AmountRaw) AmountRaw {
	var out AmountRaw
	if a.v.Lt(&b.v) {
		return ZeroAmount
	}
	out.v.Sub(&a.v, &b.v)
	return out
}

// MulDivFloor computes floor(a * num / den), the rounding rule spec §3.4
// invariant 3 and the AMM formulas of §4.3.2 both require. den must be
// nonzero.
func (a AmountRaw) MulDivFloor(num, den uint64) AmountRaw {
	var n, d, prod, out uint256.Int
	n.SetUint64(num)
	d.SetUint64(den)
	prod.Mul(&a.v, &n)
	out.Div(&prod, &d)
	return AmountRaw{v: out}
}

// MulDivBpsFloor computes floor(a * bps / 10000), used throughout for fee
// and slippage arithmetic expressed in basis points.
func (a AmountRaw) MulDivBpsFloor(bps uint32) AmountRaw {
	return a.MulDivFloor(uint64(bps), 10_000)
}

// MulDivAmountFloor computes floor(a * num / den) where num and den are
// themselves AmountRaw values, the shape the constant-product formula of
// spec §4.3.2 needs (reserveOut and reserveIn+amountInWithFee can each
// exceed a uint64).
func (a AmountRaw) MulDivAmountFloor(num, den AmountRaw) AmountRaw {
	var prod, out uint256.Int
	prod.Mul(&a.v, &num.v)
	out.Div(&prod, &den.v)
	return AmountRaw{v: out}
}

// Float64 approximates the amount as a float64, used only for scoring and
// USD-valued heuristics (spec §4.3.3) where exactness is not required.
func (a AmountRaw) Float64() float64 {
	f := new(big.Float).SetInt(a.v.ToBig())
	out, _ := f.Float64()
	return out
}
