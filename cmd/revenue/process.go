package main

import (
	"fmt"
	"strconv"

	"github.com/cansu12-ui/video-platformu-yonetimi/internal/domain"
	"github.com/spf13/cobra"
)

func simulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate",
		Short: "Run payout processing over every pending record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := seededApp(cmd)
			if err != nil {
				return err
			}

			pending := a.store.FindByStatus(domain.StatusPending)
			for _, rec := range pending {
				a.revenue.SimulatePaymentProcessing(rec.ID())
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Processed %d pending payouts\n", len(pending))
			dist := a.store.StatusDistribution()
			for _, status := range domain.ValidStatuses() {
				fmt.Fprintf(out, "  %-12s %d\n", status, dist[status])
			}
			return nil
		},
	}
}

func screenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "screen",
		Short: "Run fraud screening over every ad revenue record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := seededApp(cmd)
			if err != nil {
				return err
			}

			ads := a.store.FilterByKind(domain.KindAdRevenue)
			flagged := 0
			for _, rec := range ads {
				if !a.revenue.ScreenAdTraffic(rec.ID()).Success {
					flagged++
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Screened %d ad revenue records, %d flagged for review\n",
				len(ads), flagged)
			return nil
		},
	}
}

func holdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hold [threshold]",
		Short: "Put pending payments at or below the threshold on hold",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := seededApp(cmd)
			if err != nil {
				return err
			}

			threshold := a.cfg.Processing.LowPaymentThreshold
			if len(args) > 0 {
				threshold, err = strconv.ParseFloat(args[0], 64)
				if err != nil {
					return fmt.Errorf("invalid threshold %q: %w", args[0], err)
				}
			}

			held := a.revenue.HoldLowPayments(threshold)
			fmt.Fprintf(cmd.OutOrStdout(), "Held %d payments at or below %.2f\n", held, threshold)
			return nil
		},
	}
}
