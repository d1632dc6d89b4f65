package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"solana-token-tracker/internal/models"
	"solana-token-tracker/internal/validation"
	"solana-token-tracker/internal/wallet"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func CmdTrending(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "trending",
		Short: "List trending tokens. Falls back to a fixed list when the API is unavailable.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := a.dataSource.FetchTrendingTokens(cmd.Context())
			out := cmd.OutOrStdout()

			if a.jsonOutput {
				return printJSON(out, models.TrendingTokensResponse{
					Tokens:         result.Data,
					Source:         result.Source,
					FallbackReason: result.FallbackReason,
				})
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SYMBOL\tNAME\tPRICE\t24H\tVOLUME\tMARKET CAP")
			for _, token := range result.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s%%\t%s\t%s\n",
					token.Symbol,
					token.Name,
					decimal.NewFromFloat(token.Price).String(),
					decimal.NewFromFloat(token.PriceChange24h).StringFixed(2),
					decimal.NewFromFloat(token.Volume24h).StringFixed(0),
					decimal.NewFromFloat(token.MarketCap).StringFixed(0),
				)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			printSource(out, result.Source, result.FallbackReason)
			return nil
		},
	}
}

func CmdWallet(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet <address>",
		Short: "Show SOL and token balances of a wallet.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address := strings.TrimSpace(args[0])
			if !validation.IsValidAddress(address) {
				return models.NewInvalidWalletError(address)
			}

			showRaw, _ := cmd.Flags().GetBool("raw")
			result := a.dataSource.FetchWalletInfo(cmd.Context(), address)
			out := cmd.OutOrStdout()

			if a.jsonOutput {
				return printJSON(out, models.WalletInfoResponse{
					Wallet:         result.Data,
					Source:         result.Source,
					FallbackReason: result.FallbackReason,
				})
			}

			info := result.Data
			fmt.Fprintf(out, "Address: %s\n", info.Address)
			fmt.Fprintf(out, "SOL:     %s\n\n", decimal.NewFromFloat(info.SolBalance).String())

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			if showRaw {
				fmt.Fprintln(w, "SYMBOL\tMINT\tAMOUNT\tDECIMALS\tRAW")
			} else {
				fmt.Fprintln(w, "SYMBOL\tMINT\tAMOUNT")
			}
			for _, balance := range info.TokenBalances {
				symbol := balance.Symbol
				if symbol == "" {
					symbol = wallet.ShortenAddress(balance.Mint)
				}
				amount := decimal.NewFromFloat(balance.UIAmount).String()
				if showRaw {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", symbol, balance.Mint, amount, balance.Decimals, balance.RawAmount().String())
				} else {
					fmt.Fprintf(w, "%s\t%s\t%s\n", symbol, balance.Mint, amount)
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}
			printSource(out, result.Source, result.FallbackReason)
			return nil
		},
	}
	cmd.Flags().Bool("raw", false, "Also print decimals and the unscaled integer amount")
	return cmd
}

func CmdValidate(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <address>",
		Short: "Check that an address is well-formed base58 of 32 to 44 characters.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address := args[0]
			valid := validation.IsValidAddress(address)
			out := cmd.OutOrStdout()

			if a.jsonOutput {
				if err := printJSON(out, map[string]interface{}{
					"address": address,
					"valid":   valid,
				}); err != nil {
					return err
				}
			} else if valid {
				fmt.Fprintf(out, "%s is a valid Solana address\n", address)
			}

			if !valid {
				return models.NewInvalidWalletError(address)
			}
			return nil
		},
	}
}

func CmdConnect(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Connect to the local wallet provider and print its public key.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			session := wallet.NewSession(wallet.Detect(&a.config.Wallet), a.config.Wallet.InstallURL)
			state, err := session.Connect(cmd.Context())
			out := cmd.OutOrStdout()

			if a.jsonOutput {
				if jsonErr := printJSON(out, state); jsonErr != nil {
					return jsonErr
				}
			} else if state.Connected {
				fmt.Fprintf(out, "Connected to %s wallet: %s\n", state.Provider, state.PublicKey)
			} else if !state.Installed {
				fmt.Fprintf(out, "No wallet found. Install one from %s\n", state.InstallURL)
			}

			if err != nil {
				if !state.Installed {
					return models.NewAppErrorWithCause(models.ErrorCodeWalletNotInstalled, state.Error, err)
				}
				return models.NewAppErrorWithCause(models.ErrorCodeWalletConnectFailed, state.Error, err)
			}
			return nil
		},
	}
}

func printJSON(out io.Writer, v interface{}) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(bz))
	return err
}

func printSource(out io.Writer, source models.Source, reason models.FallbackReason) {
	if source == models.SourceFallback {
		fmt.Fprintf(out, "\nsource: %s (%s)\n", source, reason)
		return
	}
	fmt.Fprintf(out, "\nsource: %s\n", source)
}
