package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/Mustafa6066/Osool-sub002/x/amm/keeper"
)

// FuzzIntSqrt checks the exact integer square root stays within its
// defining bounds: sqrt^2 <= a*b < (sqrt+1)^2.
func FuzzIntSqrt(f *testing.F) {
	f.Add(int64(1_000_000), int64(100_000))
	f.Add(int64(1), int64(1))
	f.Add(int64(999_999_999), int64(999_999_999))

	f.Fuzz(func(t *testing.T, a, b int64) {
		if a <= 0 || b <= 0 {
			t.Skip()
		}
		ia, ib := math.NewInt(a), math.NewInt(b)
		root, err := keeper.IntSqrt(ia, ib)
		require.NoError(t, err)

		product := ia.Mul(ib)
		require.True(t, root.Mul(root).LTE(product))
		next := root.Add(math.OneInt())
		require.True(t, next.Mul(next).GT(product))
	})
}

// FuzzSafeMulDiv checks floor semantics and that the guarded path never
// panics on large operands.
func FuzzSafeMulDiv(f *testing.F) {
	f.Add(int64(1_000_000), int64(316_227), int64(100_000))
	f.Add(int64(1), int64(1), int64(1))

	f.Fuzz(func(t *testing.T, a, b, c int64) {
		if a < 0 || b < 0 || c < 0 {
			t.Skip()
		}
		ia, ib, ic := math.NewInt(a), math.NewInt(b), math.NewInt(c)
		res, err := keeper.SafeMulDiv(ia, ib, ic)
		if c == 0 {
			require.Error(t, err)
			return
		}
		require.NoError(t, err)

		// res*c <= a*b < res*c + c
		product := ia.Mul(ib)
		require.True(t, res.Mul(ic).LTE(product))
		require.True(t, res.Mul(ic).Add(ic).GT(product))
	})
}
