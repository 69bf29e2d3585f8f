package core

import (
	"testing"
	"time"
)

func TestRouteRequestValidate(t *testing.T) {
	base := RouteRequest{AmountIn: AmountFromUint64(1), Deadline: time500ms(), Slippage: FixedSlippage(50)}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected a valid request, got %v", err)
	}

	zeroAmount := base
	zeroAmount.AmountIn = ZeroAmount
	if err := zeroAmount.Validate(); err == nil {
		t.Fatal("expected zero amountIn to be rejected")
	}

	shortDeadline := base
	shortDeadline.Deadline = 0
	if err := shortDeadline.Validate(); err == nil {
		t.Fatal("expected a too-short deadline to be rejected")
	}

	badSlippage := base
	badSlippage.Slippage = SlippagePolicy{Kind: "bogus"}
	if err := badSlippage.Validate(); err == nil {
		t.Fatal("expected an unrecognized slippage kind to be rejected")
	}
}

func time500ms() time.Duration { return 500 * time.Millisecond }

func TestAmountOutMinFor(t *testing.T) {
	out := AmountOutMinFor(AmountFromUint64(10_000), 50) // 0.5%
	if out.String() != "9950" {
		t.Fatalf("got %s", out.String())
	}
	// a slippage bps over 10000 clamps to 10000 (i.e. amountOutMin = 0).
	clamped := AmountOutMinFor(AmountFromUint64(10_000), 20_000)
	if !clamped.IsZero() {
		t.Fatalf("expected clamp to zero min out, got %s", clamped.String())
	}
}

func TestRouteValidateChainingRejectsEmptySteps(t *testing.T) {
	r := Route{}
	if err := r.ValidateChaining(); err == nil {
		t.Fatal("expected an error for a route with no steps")
	}
}

func TestRouteValidateChainingRejectsTokenMismatch(t *testing.T) {
	a, b, c := testTokenRef(1, "aaa"), testTokenRef(1, "bbb"), testTokenRef(1, "ccc")
	r := Route{Steps: []RouteStep{
		{InputToken: a, OutputToken: b, AmountIn: AmountFromUint64(100), AmountOutQuoted: AmountFromUint64(90)},
		{InputToken: c, OutputToken: a, AmountIn: AmountFromUint64(90), AmountOutQuoted: AmountFromUint64(80)}, // should chain from b, not c
	}}
	if err := r.ValidateChaining(); err == nil {
		t.Fatal("expected a token-mismatch chaining error")
	}
}

func TestRouteValidateChainingRejectsAmountMismatch(t *testing.T) {
	a, b := testTokenRef(1, "aaa"), testTokenRef(1, "bbb")
	r := Route{Steps: []RouteStep{
		{InputToken: a, OutputToken: b, AmountIn: AmountFromUint64(100), AmountOutQuoted: AmountFromUint64(90)},
		{InputToken: b, OutputToken: a, AmountIn: AmountFromUint64(999), AmountOutQuoted: AmountFromUint64(80)}, // should chain 90, not 999
	}}
	if err := r.ValidateChaining(); err == nil {
		t.Fatal("expected an amount-mismatch chaining error")
	}
}

func TestRouteValidateChainingAcceptsWellFormedRoute(t *testing.T) {
	a, b, c := testTokenRef(1, "aaa"), testTokenRef(1, "bbb"), testTokenRef(1, "ccc")
	r := Route{Steps: []RouteStep{
		{InputToken: a, OutputToken: b, AmountIn: AmountFromUint64(100), AmountOutQuoted: AmountFromUint64(90)},
		{InputToken: b, OutputToken: c, AmountIn: AmountFromUint64(90), AmountOutQuoted: AmountFromUint64(80)},
	}}
	if err := r.ValidateChaining(); err != nil {
		t.Fatalf("expected a well-formed route to validate, got %v", err)
	}
}
