package cli

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/helix-chain/helix/x/clamm/types"
)

// GetQueryCmd returns the cli query commands for the clamm module
func GetQueryCmd() *cobra.Command {
	clammQueryCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for the clamm module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	clammQueryCmd.AddCommand(
		GetCmdQueryParams(),
		GetCmdQueryOwner(),
		GetCmdQueryPair(),
		GetCmdQueryPool(),
		GetCmdQueryShare(),
		GetCmdQuerySimulation(),
		GetCmdQueryReverseSimulation(),
		GetCmdQueryCumulativePrices(),
		GetCmdQueryComputeD(),
		GetCmdQueryLpPrice(),
		GetCmdQueryObserve(),
	)

	return clammQueryCmd
}

// runQuery sends an amino JSON query over the module's custom route and
// prints the raw JSON response
func runQuery(cmd *cobra.Command, path string, request any) error {
	clientCtx, err := client.GetClientQueryContext(cmd)
	if err != nil {
		return err
	}
	var data []byte
	if request != nil {
		data, err = types.ModuleCdc.MarshalJSON(request)
		if err != nil {
			return err
		}
	}
	route := fmt.Sprintf("custom/%s/%s", types.QuerierRoute, path)
	res, _, err := clientCtx.QueryWithData(route, data)
	if err != nil {
		return err
	}
	return clientCtx.PrintString(string(res) + "\n")
}

// GetCmdQueryParams returns the command to query module parameters
func GetCmdQueryParams() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Query the current clamm module parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, types.QueryPathParams, nil)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryOwner returns the command to query the module owner
func GetCmdQueryOwner() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owner",
		Short: "Query the module owner and any pending ownership proposal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, types.QueryPathOwner, nil)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryPair returns the command to query static pair metadata
func GetCmdQueryPair() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pair [pool-id]",
		Short: "Query a pool's pair metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			poolID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			return runQuery(cmd, types.QueryPathPair, &types.QueryPairRequest{PoolId: poolID})
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryPool returns the command to query reserves and share supply
func GetCmdQueryPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool [pool-id]",
		Short: "Query a pool's reserves and LP share supply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			poolID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			return runQuery(cmd, types.QueryPathPool, &types.QueryPoolRequest{PoolId: poolID})
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryShare returns the command to query a share redemption
func GetCmdQueryShare() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share [pool-id] [amount]",
		Short: "Query what an LP amount would redeem",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			poolID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			amount, ok := math.NewIntFromString(args[1])
			if !ok {
				return fmt.Errorf("invalid amount: %s", args[1])
			}
			return runQuery(cmd, types.QueryPathShare,
				&types.QueryShareRequest{PoolId: poolID, Amount: amount})
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQuerySimulation returns the command to simulate a swap
func GetCmdQuerySimulation() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [pool-id] [offer-coin]",
		Short: "Simulate a swap without executing it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			poolID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			offer, err := sdk.ParseCoinNormalized(args[1])
			if err != nil {
				return fmt.Errorf("invalid offer coin: %w", err)
			}
			return runQuery(cmd, types.QueryPathSimulation, &types.QuerySimulationRequest{
				PoolId:     poolID,
				OfferAsset: types.NewAsset(offer.Denom, offer.Amount),
			})
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryReverseSimulation returns the command to reverse-simulate a
// swap
func GetCmdQueryReverseSimulation() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reverse-simulate [pool-id] [ask-coin]",
		Short: "Solve for the offer amount that buys the ask coin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			poolID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			ask, err := sdk.ParseCoinNormalized(args[1])
			if err != nil {
				return fmt.Errorf("invalid ask coin: %w", err)
			}
			return runQuery(cmd, types.QueryPathReverseSimulation, &types.QueryReverseSimulationRequest{
				PoolId:   poolID,
				AskAsset: types.NewAsset(ask.Denom, ask.Amount),
			})
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryCumulativePrices returns the command to query the TWAP
// accumulators
func GetCmdQueryCumulativePrices() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cumulative-prices [pool-id]",
		Short: "Query a pool's cumulative price accumulators",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			poolID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			return runQuery(cmd, types.QueryPathCumulativePrices,
				&types.QueryCumulativePricesRequest{PoolId: poolID})
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryComputeD returns the command to query the current invariant
func GetCmdQueryComputeD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute-d [pool-id]",
		Short: "Query a pool's current invariant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			poolID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			return runQuery(cmd, types.QueryPathComputeD,
				&types.QueryComputeDRequest{PoolId: poolID})
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryLpPrice returns the command to query the virtual LP price
func GetCmdQueryLpPrice() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lp-price [pool-id]",
		Short: "Query the virtual price of one LP share in base units",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			poolID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			return runQuery(cmd, types.QueryPathLpPrice,
				&types.QueryLpPriceRequest{PoolId: poolID})
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryObserve returns the command to query the TWAP oracle
func GetCmdQueryObserve() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "observe [pool-id] [seconds-ago]",
		Short: "Query the interpolated oracle price at now minus seconds-ago",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			poolID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			secondsAgo, err := cast.ToUint64E(args[1])
			if err != nil {
				return fmt.Errorf("invalid seconds-ago: %w", err)
			}
			return runQuery(cmd, types.QueryPathObserve,
				&types.QueryObserveRequest{PoolId: poolID, SecondsAgo: secondsAgo})
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
