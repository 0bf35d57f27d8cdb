package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "revenue",
		Short: "Creator revenue tracking sandbox",
		Long: `Tracks ad, membership and sponsorship income for creator channels in an
in-memory store and simulates payout processing against it.

Each run starts from an empty store, generates demo records (see --records)
and then executes the requested operation. Set REVENUE_PROCESSING__SEED to
make runs reproducible.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().Int("records", 30, "demo records to generate before running")

	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(simulateCmd())
	rootCmd.AddCommand(screenCmd())
	rootCmd.AddCommand(holdCmd())
	rootCmd.AddCommand(healthCmd())
	rootCmd.AddCommand(topCmd())
	rootCmd.AddCommand(infoCmd())
	rootCmd.AddCommand(currencyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
