package main

import (
	"fmt"
	"io"

	"github.com/cansu12-ui/video-platformu-yonetimi/internal/domain"
	"github.com/cansu12-ui/video-platformu-yonetimi/internal/services"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report [channel] [period]",
		Short: "Generate a channel's revenue report for one period",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := seededApp(cmd)
			if err != nil {
				return err
			}

			channel := demoChannels[0]
			_, period := demoPeriods()
			if len(args) > 0 {
				channel = args[0]
			}
			if len(args) > 1 {
				period = args[1]
			}

			printReport(cmd.OutOrStdout(), a.revenue.GeneratePeriodicReport(channel, period))
			return nil
		},
	}
}

func compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare [channel]",
		Short: "Compare a channel's current period against the previous one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := seededApp(cmd)
			if err != nil {
				return err
			}

			channel := demoChannels[0]
			if len(args) > 0 {
				channel = args[0]
			}
			previousPeriod, currentPeriod := demoPeriods()
			previous := a.revenue.GeneratePeriodicReport(channel, previousPeriod)
			current := a.revenue.GeneratePeriodicReport(channel, currentPeriod)
			comparison := a.analytics.ComparePeriods(previous, current)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Channel %s\n", channel)
			fmt.Fprintf(out, "  %s gross: %.2f\n", previous.Period, comparison.PreviousGross)
			fmt.Fprintf(out, "  %s gross: %.2f\n", current.Period, comparison.CurrentGross)
			if comparison.HasBaseline {
				fmt.Fprintf(out, "  growth: %+.2f%%\n", comparison.GrowthPercent)
			} else {
				fmt.Fprintln(out, "  growth: n/a (no baseline income)")
			}
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <channel> [status]",
		Short: "List a channel's records, optionally filtered by status",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := seededApp(cmd)
			if err != nil {
				return err
			}

			var records []domain.Record
			if len(args) > 1 {
				status := domain.Status(args[1])
				if !status.Valid() {
					return fmt.Errorf("unknown status %q", args[1])
				}
				records = a.revenue.FilterPaymentsByStatus(args[0], status)
			} else {
				records = a.store.FindAllByChannel(args[0])
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintf(out, "No records for channel %s\n", args[0])
				return nil
			}
			for _, rec := range records {
				fmt.Fprintf(out, "%s  %-12s %-10s %s  %s\n",
					rec.ID(), rec.Kind(), rec.Status(), rec.Period(),
					domain.FormatMoney(rec.Amount(), rec.Currency()))
			}
			return nil
		},
	}
}

func printReport(out io.Writer, r services.Report) {
	fmt.Fprintf(out, "Report for %s, period %s\n", r.ChannelID, r.Period)
	fmt.Fprintf(out, "  transactions:   %d\n", r.TransactionCount)
	fmt.Fprintf(out, "  gross income:   %.2f\n", r.GrossIncome)
	fmt.Fprintf(out, "  estimated tax:  %.2f\n", r.EstimatedTax)
	fmt.Fprintf(out, "  net projection: %.2f\n", r.NetProjection)
	for _, k := range domain.Kinds() {
		fmt.Fprintf(out, "  %-14s  %.2f\n", k, r.Breakdown[k])
	}
}
