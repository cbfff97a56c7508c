package domain

import (
	"fmt"
	"math/big"

	"github.com/gaze-network/uint128"
)

// Amount is the quantity type used for supplies and balances.
type Amount = uint128.Uint128

var (
	ZeroAmount = uint128.Zero
	MaxAmount  = uint128.Max
)

func NewAmount(v uint64) Amount {
	return uint128.From64(v)
}

// SaturatingAdd returns a+b, clamped to MaxAmount on overflow.
func SaturatingAdd(a, b Amount) Amount {
	if a.Cmp(MaxAmount.Sub(b)) > 0 {
		return MaxAmount
	}
	return a.Add(b)
}

// SaturatingSub returns a-b, clamped to zero on underflow.
func SaturatingSub(a, b Amount) Amount {
	if a.Cmp(b) < 0 {
		return ZeroAmount
	}
	return a.Sub(b)
}

// CheckedAdd returns a+b, or ok=false when the sum does not fit in 128
// bits. Nothing is clamped: the caller decides how to surface the
// overflow.
func CheckedAdd(a, b Amount) (sum Amount, ok bool) {
	if a.Cmp(MaxAmount.Sub(b)) > 0 {
		return ZeroAmount, false
	}
	return a.Add(b), true
}

// ParseAmount parses a base-10 amount string.
func ParseAmount(s string) (Amount, error) {
	i, ok := new(big.Int).SetString(s, 10)
	if !ok || i.Sign() < 0 {
		return ZeroAmount, fmt.Errorf("invalid amount: %s", s)
	}
	if i.BitLen() > 128 {
		return ZeroAmount, fmt.Errorf("amount out of range: %s", s)
	}
	return uint128.FromBig(i)
}
