package core

import (
	"math/big"
	"testing"
)

func TestAmountFromDecimalString(t *testing.T) {
	a, ok := AmountFromDecimalString("123456789012345678901234567890")
	if !ok {
		t.Fatal("expected ok")
	}
	if a.String() != "123456789012345678901234567890" {
		t.Fatalf("round trip mismatch: got %s", a.String())
	}
	if _, ok := AmountFromDecimalString("-1"); ok {
		t.Fatal("expected negative string to be rejected")
	}
	if _, ok := AmountFromDecimalString("not a number"); ok {
		t.Fatal("expected garbage string to be rejected")
	}
}

func TestAmountFromBigIntRejectsNegative(t *testing.T) {
	if _, ok := AmountFromBigInt(big.NewInt(-5)); ok {
		t.Fatal("expected negative big.Int to be rejected")
	}
	a, ok := AmountFromBigInt(big.NewInt(42))
	if !ok || a.String() != "42" {
		t.Fatalf("got %s, ok=%v", a.String(), ok)
	}
}

func TestAmountArithmetic(t *testing.T) {
	a, b := AmountFromUint64(100), AmountFromUint64(30)
	if got := a.Add(b).String(); got != "130" {
		t.Fatalf("Add: got %s", got)
	}
	if got := a.Sub(b).String(); got != "70" {
		t.Fatalf("Sub: got %s", got)
	}
	// Sub saturates at zero rather than wrapping.
	if got := b.Sub(a).String(); got != "0" {
		t.Fatalf("Sub underflow should saturate at zero, got %s", got)
	}
	if !a.GreaterThan(b) || b.GreaterThan(a) {
		t.Fatal("GreaterThan disagreement")
	}
	if !b.LessThan(a) {
		t.Fatal("LessThan disagreement")
	}
}

func TestMulDivFloor(t *testing.T) {
	a := AmountFromUint64(1000)
	// floor(1000 * 1 / 3) = 333
	if got := a.MulDivFloor(1, 3).String(); got != "333" {
		t.Fatalf("got %s", got)
	}
}

func TestMulDivBpsFloor(t *testing.T) {
	a := AmountFromUint64(10_000)
	// 30 bps of 10000 = 30
	if got := a.MulDivBpsFloor(30).String(); got != "30" {
		t.Fatalf("got %s", got)
	}
}

func TestMulDivAmountFloor(t *testing.T) {
	a := AmountFromUint64(100)
	num := AmountFromUint64(3)
	den := AmountFromUint64(2)
	// floor(100 * 3 / 2) = 150
	if got := a.MulDivAmountFloor(num, den).String(); got != "150" {
		t.Fatalf("got %s", got)
	}
}

func TestIsZero(t *testing.T) {
	if !ZeroAmount.IsZero() {
		t.Fatal("ZeroAmount must report IsZero")
	}
	if AmountFromUint64(1).IsZero() {
		t.Fatal("non-zero amount reported as zero")
	}
}
