package cli

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/helix-chain/helix/x/clamm/types"
)

const (
	flagMidFee               = "mid-fee"
	flagOutFee               = "out-fee"
	flagFeeGamma             = "fee-gamma"
	flagRepegProfitThreshold = "repeg-profit-threshold"
	flagMinPriceScaleDelta   = "min-price-scale-delta"
	flagMaHalfTime           = "ma-half-time"
	flagSlippageTolerance    = "slippage-tolerance"
	flagAutoStake            = "auto-stake"
	flagReceiver             = "receiver"
	flagMinLpToReceive       = "min-lp-to-receive"
	flagMinAssetsToReceive   = "min-assets-to-receive"
	flagBeliefPrice          = "belief-price"
	flagMaxSpread            = "max-spread"
	flagTo                   = "to"
)

// GetTxCmd returns the transaction commands for the clamm module
func GetTxCmd() *cobra.Command {
	clammTxCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Concentrated liquidity transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	clammTxCmd.AddCommand(
		CmdCreatePool(),
		CmdProvideLiquidity(),
		CmdWithdrawLiquidity(),
		CmdSwap(),
		CmdUpdateFees(),
		CmdPromoteAmpGamma(),
		CmdStopAmpGammaChange(),
		CmdEnableFeeShare(),
		CmdDisableFeeShare(),
		CmdProposeNewOwner(),
		CmdDropOwnershipProposal(),
		CmdClaimOwnership(),
	)

	return clammTxCmd
}

// CmdCreatePool returns a CLI command handler for creating a pool
func CmdCreatePool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-pool [base-denom] [quote-denom] [amp] [gamma] [price-scale]",
		Short: "Create a new concentrated liquidity pool",
		Long: `Create a new concentrated liquidity pool. The base denom comes first;
the order is canonical for the life of the pool. Fee parameters default to
conservative values and can be overridden by flags.

Example:
  $ helixd tx clamm create-pool uatom uusdc 40 0.000145 12.5 --from mykey`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			amp, err := math.LegacyNewDecFromStr(args[2])
			if err != nil {
				return fmt.Errorf("invalid amp: %w", err)
			}
			gamma, err := math.LegacyNewDecFromStr(args[3])
			if err != nil {
				return fmt.Errorf("invalid gamma: %w", err)
			}
			priceScale, err := math.LegacyNewDecFromStr(args[4])
			if err != nil {
				return fmt.Errorf("invalid price scale: %w", err)
			}

			poolParams, err := poolParamsFromFlags(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgCreatePool{
				Creator:    clientCtx.GetFromAddress().String(),
				BaseDenom:  args[0],
				QuoteDenom: args[1],
				Amp:        amp,
				Gamma:      gamma,
				PoolParams: poolParams,
				PriceScale: priceScale,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(flagMidFee, "0.0026", "fee rate for a balanced pool")
	cmd.Flags().String(flagOutFee, "0.0045", "fee rate for an imbalanced pool")
	cmd.Flags().String(flagFeeGamma, "0.00023", "fee interpolation sharpness")
	cmd.Flags().String(flagRepegProfitThreshold, "0.000002", "minimum profit before a re-peg")
	cmd.Flags().String(flagMinPriceScaleDelta, "0.000146", "relative re-peg step bound")
	cmd.Flags().Int64(flagMaHalfTime, 600, "oracle EMA half life in seconds")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

func poolParamsFromFlags(cmd *cobra.Command) (types.PoolParams, error) {
	var (
		params types.PoolParams
		err    error
	)
	for _, field := range []struct {
		flag string
		dst  *math.LegacyDec
	}{
		{flagMidFee, &params.MidFee},
		{flagOutFee, &params.OutFee},
		{flagFeeGamma, &params.FeeGamma},
		{flagRepegProfitThreshold, &params.RepegProfitThreshold},
		{flagMinPriceScaleDelta, &params.MinPriceScaleDelta},
	} {
		raw, flagErr := cmd.Flags().GetString(field.flag)
		if flagErr != nil {
			return params, flagErr
		}
		*field.dst, err = math.LegacyNewDecFromStr(raw)
		if err != nil {
			return params, fmt.Errorf("invalid %s: %w", field.flag, err)
		}
	}
	params.MaHalfTime, err = cmd.Flags().GetInt64(flagMaHalfTime)
	return params, err
}

// CmdProvideLiquidity returns a CLI command handler for providing liquidity
func CmdProvideLiquidity() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provide [pool-id] [assets]",
		Short: "Provide liquidity to a pool",
		Long: `Deposit one or both pool assets. Assets are a comma separated coin
list. An imbalanced deposit pays a provide fee on its swap-like portion.

Example:
  $ helixd tx clamm provide 1 1000000uatom,12500000uusdc --from mykey
  $ helixd tx clamm provide 1 1000000uatom --slippage-tolerance 0.01 --from mykey`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			poolID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			coins, err := sdk.ParseCoinsNormalized(args[1])
			if err != nil {
				return fmt.Errorf("invalid assets: %w", err)
			}
			assets := make([]types.Asset, 0, len(coins))
			for _, coin := range coins {
				assets = append(assets, types.NewAsset(coin.Denom, coin.Amount))
			}

			msg := &types.MsgProvideLiquidity{
				Sender: clientCtx.GetFromAddress().String(),
				PoolId: poolID,
				Assets: assets,
			}
			if raw, _ := cmd.Flags().GetString(flagSlippageTolerance); raw != "" {
				tolerance, err := math.LegacyNewDecFromStr(raw)
				if err != nil {
					return fmt.Errorf("invalid slippage tolerance: %w", err)
				}
				msg.SlippageTolerance = &tolerance
			}
			msg.AutoStake, _ = cmd.Flags().GetBool(flagAutoStake)
			msg.Receiver, _ = cmd.Flags().GetString(flagReceiver)
			if raw, _ := cmd.Flags().GetString(flagMinLpToReceive); raw != "" {
				minLp, ok := math.NewIntFromString(raw)
				if !ok {
					return fmt.Errorf("invalid min-lp-to-receive: %s", raw)
				}
				msg.MinLpToReceive = &minLp
			}

			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(flagSlippageTolerance, "", "maximum accepted share slippage")
	cmd.Flags().Bool(flagAutoStake, false, "stake minted shares with the incentives module")
	cmd.Flags().String(flagReceiver, "", "receiver of the minted shares")
	cmd.Flags().String(flagMinLpToReceive, "", "minimum micro shares to mint")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdWithdrawLiquidity returns a CLI command handler for withdrawing
// liquidity
func CmdWithdrawLiquidity() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw [pool-id] [shares]",
		Short: "Withdraw liquidity from a pool",
		Long: `Burn LP shares for a pro-rata slice of both reserves.

Example:
  $ helixd tx clamm withdraw 1 500000 --min-assets-to-receive 990000uatom,12300000uusdc --from mykey`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			poolID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			amount, ok := math.NewIntFromString(args[1])
			if !ok {
				return fmt.Errorf("invalid share amount: %s", args[1])
			}

			msg := &types.MsgWithdrawLiquidity{
				Sender: clientCtx.GetFromAddress().String(),
				PoolId: poolID,
				Amount: amount,
			}
			if raw, _ := cmd.Flags().GetString(flagMinAssetsToReceive); raw != "" {
				coins, err := sdk.ParseCoinsNormalized(raw)
				if err != nil {
					return fmt.Errorf("invalid minimum assets: %w", err)
				}
				for _, coin := range coins {
					msg.MinAssetsToReceive = append(msg.MinAssetsToReceive,
						types.NewAsset(coin.Denom, coin.Amount))
				}
			}

			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(flagMinAssetsToReceive, "", "comma separated minimum refund coins")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSwap returns a CLI command handler for swapping
func CmdSwap() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap [pool-id] [offer-coin]",
		Short: "Swap the offer coin against a pool",
		Long: `Swap the offer coin for the other pair member.

Example:
  $ helixd tx clamm swap 1 1000000uatom --max-spread 0.01 --from mykey`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			poolID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			offer, err := sdk.ParseCoinNormalized(args[1])
			if err != nil {
				return fmt.Errorf("invalid offer coin: %w", err)
			}

			msg := &types.MsgSwap{
				Sender:     clientCtx.GetFromAddress().String(),
				PoolId:     poolID,
				OfferAsset: types.NewAsset(offer.Denom, offer.Amount),
			}
			if raw, _ := cmd.Flags().GetString(flagBeliefPrice); raw != "" {
				belief, err := math.LegacyNewDecFromStr(raw)
				if err != nil {
					return fmt.Errorf("invalid belief price: %w", err)
				}
				msg.BeliefPrice = &belief
			}
			if raw, _ := cmd.Flags().GetString(flagMaxSpread); raw != "" {
				spread, err := math.LegacyNewDecFromStr(raw)
				if err != nil {
					return fmt.Errorf("invalid max spread: %w", err)
				}
				msg.MaxSpread = &spread
			}
			msg.To, _ = cmd.Flags().GetString(flagTo)

			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(flagBeliefPrice, "", "expected offer per ask price")
	cmd.Flags().String(flagMaxSpread, "", "maximum accepted spread ratio")
	cmd.Flags().String(flagTo, "", "recipient of the swap return")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdUpdateFees returns a CLI command handler for updating pool fee
// parameters
func CmdUpdateFees() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-fees [pool-id]",
		Short: "Update a pool's fee and re-peg parameters (owner only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			poolID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}

			update := types.ConfigUpdate{}
			set := false
			for _, field := range []struct {
				flag string
				dst  **math.LegacyDec
			}{
				{flagMidFee, &update.MidFee},
				{flagOutFee, &update.OutFee},
				{flagFeeGamma, &update.FeeGamma},
				{flagRepegProfitThreshold, &update.RepegProfitThreshold},
				{flagMinPriceScaleDelta, &update.MinPriceScaleDelta},
			} {
				raw, _ := cmd.Flags().GetString(field.flag)
				if raw == "" {
					continue
				}
				value, err := math.LegacyNewDecFromStr(raw)
				if err != nil {
					return fmt.Errorf("invalid %s: %w", field.flag, err)
				}
				*field.dst = &value
				set = true
			}
			if cmd.Flags().Changed(flagMaHalfTime) {
				halfTime, _ := cmd.Flags().GetInt64(flagMaHalfTime)
				update.MaHalfTime = &halfTime
				set = true
			}
			if !set {
				return fmt.Errorf("no parameters to update")
			}

			msg := &types.MsgUpdateConfig{
				Sender: clientCtx.GetFromAddress().String(),
				PoolId: poolID,
				Update: &update,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(flagMidFee, "", "fee rate for a balanced pool")
	cmd.Flags().String(flagOutFee, "", "fee rate for an imbalanced pool")
	cmd.Flags().String(flagFeeGamma, "", "fee interpolation sharpness")
	cmd.Flags().String(flagRepegProfitThreshold, "", "minimum profit before a re-peg")
	cmd.Flags().String(flagMinPriceScaleDelta, "", "relative re-peg step bound")
	cmd.Flags().Int64(flagMaHalfTime, 0, "oracle EMA half life in seconds")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdPromoteAmpGamma returns a CLI command handler for ramping amp/gamma
func CmdPromoteAmpGamma() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promote-amp-gamma [pool-id] [future-amp] [future-gamma] [future-time]",
		Short: "Ramp a pool's amp and gamma toward new values (owner only)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			poolID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			futureAmp, err := math.LegacyNewDecFromStr(args[1])
			if err != nil {
				return fmt.Errorf("invalid future amp: %w", err)
			}
			futureGamma, err := math.LegacyNewDecFromStr(args[2])
			if err != nil {
				return fmt.Errorf("invalid future gamma: %w", err)
			}
			futureTime, err := cast.ToInt64E(args[3])
			if err != nil {
				return fmt.Errorf("invalid future time: %w", err)
			}

			msg := &types.MsgUpdateConfig{
				Sender: clientCtx.GetFromAddress().String(),
				PoolId: poolID,
				Promote: &types.ConfigPromote{
					FutureAmp:   futureAmp,
					FutureGamma: futureGamma,
					FutureTime:  futureTime,
				},
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdStopAmpGammaChange returns a CLI command handler for freezing a ramp
func CmdStopAmpGammaChange() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop-amp-gamma [pool-id]",
		Short: "Freeze a pool's amp and gamma at their current values (owner only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			poolID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}

			msg := &types.MsgUpdateConfig{
				Sender:               clientCtx.GetFromAddress().String(),
				PoolId:               poolID,
				StopChangingAmpGamma: true,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdEnableFeeShare returns a CLI command handler for enabling a fee share
func CmdEnableFeeShare() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enable-fee-share [pool-id] [bps] [recipient]",
		Short: "Route a share of swap fees to an external recipient (owner only)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			poolID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			bps, err := cast.ToUint64E(args[1])
			if err != nil {
				return fmt.Errorf("invalid bps: %w", err)
			}

			msg := &types.MsgUpdateConfig{
				Sender: clientCtx.GetFromAddress().String(),
				PoolId: poolID,
				EnableFeeShare: &types.FeeShareConfig{
					Bps:       bps,
					Recipient: strings.TrimSpace(args[2]),
				},
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdDisableFeeShare returns a CLI command handler for disabling a fee
// share
func CmdDisableFeeShare() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disable-fee-share [pool-id]",
		Short: "Stop routing swap fees externally (owner only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			poolID, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}

			msg := &types.MsgUpdateConfig{
				Sender:          clientCtx.GetFromAddress().String(),
				PoolId:          poolID,
				DisableFeeShare: true,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdProposeNewOwner returns a CLI command handler for proposing a new
// owner
func CmdProposeNewOwner() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "propose-owner [new-owner] [expires-in-seconds]",
		Short: "Propose a new module owner (owner only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			expiresIn, err := cast.ToInt64E(args[1])
			if err != nil {
				return fmt.Errorf("invalid expiry: %w", err)
			}

			msg := &types.MsgProposeNewOwner{
				Sender:    clientCtx.GetFromAddress().String(),
				NewOwner:  args[0],
				ExpiresIn: expiresIn,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdDropOwnershipProposal returns a CLI command handler for cancelling an
// ownership proposal
func CmdDropOwnershipProposal() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drop-owner-proposal",
		Short: "Cancel the pending ownership proposal (owner only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			msg := &types.MsgDropOwnershipProposal{
				Sender: clientCtx.GetFromAddress().String(),
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdClaimOwnership returns a CLI command handler for claiming ownership
func CmdClaimOwnership() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim-ownership",
		Short: "Claim a proposed ownership transfer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			msg := &types.MsgClaimOwnership{
				Sender: clientCtx.GetFromAddress().String(),
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
