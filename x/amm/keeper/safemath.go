package keeper

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/Mustafa6066/Osool-sub002/x/amm/types"
)

// Overflow-safe arithmetic for pool accounting. Intermediate products go
// through big.Int so a*b can never wrap before the division.

var maxInt256 = new(big.Int).Exp(big.NewInt(2), big.NewInt(256), nil)

// SafeAdd adds two math.Int values with overflow checking.
func SafeAdd(a, b math.Int) (math.Int, error) {
	result := new(big.Int).Add(a.BigInt(), b.BigInt())
	if result.CmpAbs(maxInt256) >= 0 {
		return math.Int{}, types.ErrOverflow.Wrap("addition result exceeds maximum value")
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeSub subtracts b from a with underflow checking.
func SafeSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, types.ErrOverflow.Wrapf("underflow: cannot subtract %s from %s", b.String(), a.String())
	}
	return math.NewIntFromBigInt(new(big.Int).Sub(a.BigInt(), b.BigInt())), nil
}

// SafeMul multiplies two math.Int values with overflow checking.
func SafeMul(a, b math.Int) (math.Int, error) {
	if a.IsZero() || b.IsZero() {
		return math.ZeroInt(), nil
	}
	result := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if result.CmpAbs(maxInt256) >= 0 {
		return math.Int{}, types.ErrOverflow.Wrap("multiplication result exceeds maximum value")
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeMulDiv computes floor((a * b) / c) without the intermediate product
// overflowing. Used for share minting and pro-rata payouts.
func SafeMulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, types.ErrOverflow.Wrap("division by zero")
	}
	intermediate := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if intermediate.CmpAbs(maxInt256) >= 0 {
		return math.Int{}, types.ErrOverflow.Wrap("overflow in multiplication step")
	}
	return math.NewIntFromBigInt(new(big.Int).Quo(intermediate, c.BigInt())), nil
}

// IntSqrt returns floor(sqrt(a*b)). Exact integer square root: seed-share
// accounting cannot tolerate the drift of a decimal approximation.
func IntSqrt(a, b math.Int) (math.Int, error) {
	product, err := SafeMul(a, b)
	if err != nil {
		return math.Int{}, err
	}
	if product.IsNegative() {
		return math.Int{}, types.ErrOverflow.Wrap("square root of negative product")
	}
	return math.NewIntFromBigInt(new(big.Int).Sqrt(product.BigInt())), nil
}
