package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/helix-chain/helix/x/clamm/types"
)

// RegisterInvariants registers all clamm invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "pool-reserves", PoolReservesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "pool-shares", PoolSharesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "profit-bounds", ProfitBoundsInvariant(k))
	ir.RegisterRoute(types.ModuleName, "locked-liquidity", LockedLiquidityInvariant(k))
}

// AllInvariants runs all invariants of the clamm module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := PoolReservesInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		res, stop = PoolSharesInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		res, stop = ProfitBoundsInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		return LockedLiquidityInvariant(k)(ctx)
	}
}

// PoolReservesInvariant checks that the module account can back every
// pool's recorded reserves
func PoolReservesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)
		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "pool-reserves", err.Error()), true
		}

		moduleAddr := k.GetModuleAddress()
		required := make(map[string]math.Int)
		for _, pool := range pools {
			for i := 0; i < types.NCoins; i++ {
				denom := pool.Denom(i)
				if _, ok := required[denom]; !ok {
					required[denom] = math.ZeroInt()
				}
				required[denom] = required[denom].Add(pool.Reserve(i))
			}
		}
		for denom, amount := range required {
			balance := k.bankKeeper.GetBalance(ctx, moduleAddr, denom)
			if balance.Amount.LT(amount) {
				count++
				msg += fmt.Sprintf("module balance for %s (%s) < recorded reserves (%s)\n",
					denom, balance.Amount, amount)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pool-reserves",
			fmt.Sprintf("found %d unbacked reserves\n%s", count, msg),
		), broken
	}
}

// PoolSharesInvariant checks that each pool's recorded share count matches
// the bank supply of its LP denom
func PoolSharesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)
		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "pool-shares", err.Error()), true
		}
		for _, pool := range pools {
			supply := k.bankKeeper.GetSupply(ctx, pool.LpDenom())
			if !supply.Amount.Equal(pool.TotalShares) {
				count++
				msg += fmt.Sprintf("pool %d: lp supply %s != recorded shares %s\n",
					pool.Id, supply.Amount, pool.TotalShares)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pool-shares",
			fmt.Sprintf("found %d share mismatches\n%s", count, msg),
		), broken
	}
}

// ProfitBoundsInvariant checks the profit accumulator ordering on every
// active pool
func ProfitBoundsInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)
		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "profit-bounds", err.Error()), true
		}
		one := math.LegacyOneDec()
		for _, pool := range pools {
			if pool.TotalShares.IsZero() {
				continue
			}
			if pool.XcpProfitReal.GT(pool.XcpProfit) {
				count++
				msg += fmt.Sprintf("pool %d: xcp_profit_real %s > xcp_profit %s\n",
					pool.Id, pool.XcpProfitReal, pool.XcpProfit)
			}
			if pool.XcpProfit.LT(one) || pool.XcpProfitReal.LT(one) {
				count++
				msg += fmt.Sprintf("pool %d: profit accumulators below one (%s, %s)\n",
					pool.Id, pool.XcpProfit, pool.XcpProfitReal)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "profit-bounds",
			fmt.Sprintf("found %d profit bound violations\n%s", count, msg),
		), broken
	}
}

// LockedLiquidityInvariant checks that the module account still holds the
// permanently locked minimum shares of every active pool
func LockedLiquidityInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)
		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "locked-liquidity", err.Error()), true
		}
		moduleAddr := k.GetModuleAddress()
		minimum := math.NewInt(types.MinimumLiquidity)
		for _, pool := range pools {
			if pool.TotalShares.IsZero() {
				continue
			}
			balance := k.bankKeeper.GetBalance(ctx, moduleAddr, pool.LpDenom())
			if balance.Amount.LT(minimum) {
				count++
				msg += fmt.Sprintf("pool %d: module holds %s lp shares, minimum lock is %s\n",
					pool.Id, balance.Amount, minimum)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "locked-liquidity",
			fmt.Sprintf("found %d broken minimum locks\n%s", count, msg),
		), broken
	}
}
