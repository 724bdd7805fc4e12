package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	testkeeper "github.com/Mustafa6066/Osool-sub002/testutil/keeper"
	"github.com/Mustafa6066/Osool-sub002/x/amm/types"
	guardtypes "github.com/Mustafa6066/Osool-sub002/x/guard/types"
)

func TestSwapTokenToSettlement(t *testing.T) {
	f := testkeeper.NewFixture(t)
	seedPool(t, f, "prop-001")

	// 10,000 tokens in against 1,000,000/100,000 reserves. Total fee is
	// 30 (0.30%), so pricing sees 9,970:
	//   out = 9,970 * 100,000 / (1,000,000 + 9,970) = 987
	// The platform keeps 5 (0.05%); the reserves gain 10,000 - 5.
	out, err := f.AMM.Swap(alice, "prop-001", types.DirectionTokenToSettlement, math.NewInt(10_000), math.NewInt(980))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(987), out)

	pool, err := f.AMM.GetPool("prop-001")
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_009_995), pool.TokenReserve)
	require.Equal(t, math.NewInt(99_013), pool.SettlementReserve)
	require.Equal(t, math.NewInt(5), pool.PlatformFeeToken)

	// The LP fee stays in the reserves: k strictly grows.
	require.True(t, pool.K().GT(math.NewInt(1_000_000).Mul(math.NewInt(100_000))))

	// Trader balances moved accordingly.
	require.Equal(t, math.NewInt(1_000_000-10_000), f.Assets.Balance("prop-001", alice))
	require.Equal(t, math.NewInt(400_000+987), f.Settlement.Balance(alice))

	msg, broken := f.AMM.CheckPoolInvariants("prop-001")
	require.False(t, broken, msg)
}

func TestSwapSettlementToToken(t *testing.T) {
	f := testkeeper.NewFixture(t)
	seedPool(t, f, "prop-001")
	f.FundSettlement(t, bob, math.NewInt(50_000))

	// 10,000 settlement in: effective 9,970 against 100,000/1,000,000.
	//   out = 9,970 * 1,000,000 / (100,000 + 9,970) = 90,661
	out, err := f.AMM.Swap(bob, "prop-001", types.DirectionSettlementToToken, math.NewInt(10_000), math.ZeroInt())
	require.NoError(t, err)
	require.Equal(t, math.NewInt(90_661), out)

	pool, err := f.AMM.GetPool("prop-001")
	require.NoError(t, err)
	require.Equal(t, math.NewInt(100_000+10_000-5), pool.SettlementReserve)
	require.Equal(t, math.NewInt(1_000_000-90_661), pool.TokenReserve)
	require.Equal(t, math.NewInt(5), pool.PlatformFeeSettlement)
	require.Equal(t, math.NewInt(90_661), f.Assets.Balance("prop-001", bob))

	msg, broken := f.AMM.CheckPoolInvariants("prop-001")
	require.False(t, broken, msg)
}

func TestSwapRoundTripLosesFees(t *testing.T) {
	f := testkeeper.NewFixture(t)
	seedPool(t, f, "prop-001")
	f.FundSettlement(t, bob, math.NewInt(10_000))

	// Buying and immediately selling back cannot profit: fees and
	// truncation both favor the pool.
	tokensOut, err := f.AMM.Swap(bob, "prop-001", types.DirectionSettlementToToken, math.NewInt(10_000), math.ZeroInt())
	require.NoError(t, err)
	settlementBack, err := f.AMM.Swap(bob, "prop-001", types.DirectionTokenToSettlement, tokensOut, math.ZeroInt())
	require.NoError(t, err)
	require.True(t, settlementBack.LT(math.NewInt(10_000)))
}

func TestSwapValidation(t *testing.T) {
	f := testkeeper.NewFixture(t)
	seedPool(t, f, "prop-001")

	tests := []struct {
		name      string
		trader    string
		assetID   string
		direction types.Direction
		amountIn  math.Int
		minOut    math.Int
		wantErr   error
	}{
		{
			name:      "zero amount",
			trader:    alice,
			assetID:   "prop-001",
			direction: types.DirectionTokenToSettlement,
			amountIn:  math.ZeroInt(),
			minOut:    math.ZeroInt(),
			wantErr:   types.ErrInvalidInput,
		},
		{
			name:      "negative amount",
			trader:    alice,
			assetID:   "prop-001",
			direction: types.DirectionTokenToSettlement,
			amountIn:  math.NewInt(-5),
			minOut:    math.ZeroInt(),
			wantErr:   types.ErrInvalidInput,
		},
		{
			name:      "unknown direction",
			trader:    alice,
			assetID:   "prop-001",
			direction: types.Direction("sideways"),
			amountIn:  math.NewInt(1000),
			minOut:    math.ZeroInt(),
			wantErr:   types.ErrInvalidDirection,
		},
		{
			name:      "unknown pool",
			trader:    alice,
			assetID:   "prop-404",
			direction: types.DirectionTokenToSettlement,
			amountIn:  math.NewInt(1000),
			minOut:    math.ZeroInt(),
			wantErr:   types.ErrPoolNotFound,
		},
		{
			name:      "amount too small after fees",
			trader:    alice,
			assetID:   "prop-001",
			direction: types.DirectionTokenToSettlement,
			amountIn:  math.NewInt(1),
			minOut:    math.ZeroInt(),
			wantErr:   types.ErrInvalidInput,
		},
		{
			name:      "empty trader",
			trader:    "",
			assetID:   "prop-001",
			direction: types.DirectionTokenToSettlement,
			amountIn:  math.NewInt(1000),
			minOut:    math.ZeroInt(),
			wantErr:   types.ErrInvalidInput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.AMM.Swap(tc.trader, tc.assetID, tc.direction, tc.amountIn, tc.minOut)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestSwapSlippageProtection(t *testing.T) {
	f := testkeeper.NewFixture(t)
	seedPool(t, f, "prop-001")

	// Output would be 987; demanding 988 fails and leaves the pool
	// untouched.
	_, err := f.AMM.Swap(alice, "prop-001", types.DirectionTokenToSettlement, math.NewInt(10_000), math.NewInt(988))
	require.ErrorIs(t, err, types.ErrSlippageExceeded)

	pool, err := f.AMM.GetPool("prop-001")
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_000_000), pool.TokenReserve)
	require.Equal(t, math.NewInt(100_000), pool.SettlementReserve)
	require.Equal(t, math.NewInt(1_000_000), f.Assets.Balance("prop-001", alice))
}

func TestSwapQuoteMatchesExecution(t *testing.T) {
	f := testkeeper.NewFixture(t)
	seedPool(t, f, "prop-001")

	quoted, err := f.AMM.Quote("prop-001", types.DirectionTokenToSettlement, math.NewInt(10_000))
	require.NoError(t, err)

	// The quote does not move the pool.
	pool, err := f.AMM.GetPool("prop-001")
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_000_000), pool.TokenReserve)

	out, err := f.AMM.Swap(alice, "prop-001", types.DirectionTokenToSettlement, math.NewInt(10_000), quoted)
	require.NoError(t, err)
	require.Equal(t, quoted, out)
}

func TestSwapInsufficientTraderBalance(t *testing.T) {
	f := testkeeper.NewFixture(t)
	seedPool(t, f, "prop-001")

	// bob holds no settlement tokens; the input leg fails and the pool
	// is untouched.
	_, err := f.AMM.Swap(bob, "prop-001", types.DirectionSettlementToToken, math.NewInt(10_000), math.ZeroInt())
	require.Error(t, err)

	pool, err := f.AMM.GetPool("prop-001")
	require.NoError(t, err)
	require.Equal(t, math.NewInt(100_000), pool.SettlementReserve)
}

func TestSwapBlacklistedTrader(t *testing.T) {
	f := testkeeper.NewFixture(t)
	seedPool(t, f, "prop-001")

	// Blacklisting blocks the settlement output leg; the token input leg
	// must be reverted.
	require.NoError(t, f.Settlement.SetBlacklisted(testkeeper.Admin, alice, true))

	_, err := f.AMM.Swap(alice, "prop-001", types.DirectionTokenToSettlement, math.NewInt(10_000), math.ZeroInt())
	require.Error(t, err)
	require.Equal(t, math.NewInt(1_000_000), f.Assets.Balance("prop-001", alice))

	pool, err := f.AMM.GetPool("prop-001")
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_000_000), pool.TokenReserve)
	require.Equal(t, math.NewInt(100_000), pool.SettlementReserve)
}

func TestSwapGlobalPause(t *testing.T) {
	f := testkeeper.NewFixture(t)
	seedPool(t, f, "prop-001")

	require.NoError(t, f.Guard.Pause(testkeeper.Pauser))
	_, err := f.AMM.Swap(alice, "prop-001", types.DirectionTokenToSettlement, math.NewInt(10_000), math.ZeroInt())
	require.ErrorIs(t, err, guardtypes.ErrPaused)

	require.NoError(t, f.Guard.Unpause(testkeeper.Pauser))
	_, err = f.AMM.Swap(alice, "prop-001", types.DirectionTokenToSettlement, math.NewInt(10_000), math.ZeroInt())
	require.NoError(t, err)
}

func TestSwapEventEmitted(t *testing.T) {
	f := testkeeper.NewFixture(t)
	seedPool(t, f, "prop-001")

	sub, cancel := f.Bus.Subscribe(64)
	defer cancel()

	_, err := f.AMM.Swap(alice, "prop-001", types.DirectionTokenToSettlement, math.NewInt(10_000), math.ZeroInt())
	require.NoError(t, err)

	for env := range sub {
		swap, ok := env.Event.(types.EventSwap)
		if !ok {
			continue
		}
		require.Equal(t, "prop-001", swap.AssetID)
		require.Equal(t, alice, swap.Trader)
		require.Equal(t, math.NewInt(10_000), swap.AmountIn)
		require.Equal(t, math.NewInt(987), swap.AmountOut)
		require.Equal(t, math.NewInt(30), swap.FeePaid)
		require.Equal(t, math.NewInt(5), swap.PlatformFee)
		require.Equal(t, math.NewInt(1_009_995), swap.TokenReserve)
		require.Equal(t, math.NewInt(99_013), swap.SettlementReserve)
		return
	}
	t.Fatal("swap event not observed")
}
