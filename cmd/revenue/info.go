package main

import (
	"fmt"
	"strings"

	"github.com/cansu12-ui/video-platformu-yonetimi/internal/domain"
	"github.com/spf13/cobra"
)

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Describe the store engine and payout currencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			info := a.store.Info()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Engine: %s v%s\n", info.Engine, info.Version)
			fmt.Fprintf(out, "Capacity: %d records\n", info.MaxCapacity)
			fmt.Fprintf(out, "Transactions: %t, thread-safe: %t\n", info.SupportsTransactions, info.ThreadSafe)
			fmt.Fprintf(out, "Payout currencies: %s\n", strings.Join(domain.SupportedCurrencies(), ", "))
			return nil
		},
	}
}

func currencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currency <code>",
		Short: "Check whether a currency code is supported for payouts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.store.ValidateCurrencyCode(args[0]) {
				fmt.Fprintf(out, "%s is supported for payouts\n", strings.ToUpper(strings.TrimSpace(args[0])))
				return nil
			}
			fmt.Fprintf(out, "%s is not supported; payouts settle in: %s\n",
				args[0], strings.Join(domain.SupportedCurrencies(), ", "))
			return nil
		},
	}
}
