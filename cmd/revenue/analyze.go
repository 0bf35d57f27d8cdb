package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cansu12-ui/video-platformu-yonetimi/internal/domain"
	"github.com/spf13/cobra"
)

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Process payouts, then report system health",
		Long: `Generates demo records, runs payout processing over them and then
analyzes the failure share and recent store activity.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := seededApp(cmd)
			if err != nil {
				return err
			}

			for _, rec := range a.store.FindByStatus(domain.StatusPending) {
				a.revenue.SimulatePaymentProcessing(rec.ID())
			}
			health := a.analytics.AnalyzeSystemHealth()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Status: %s\n", health.Status)
			fmt.Fprintf(out, "Failure rate: %.2f%%\n", health.FailureRate)
			fmt.Fprintf(out, "Records: %d, total volume %.2f\n", health.TotalRecords, health.TotalVolume)
			fmt.Fprintln(out, "Recent store activity:")
			for _, entry := range health.RecentLogs {
				fmt.Fprintf(out, "  [%s] %-6s %s\n", entry.Time.Format(time.TimeOnly), entry.Op, entry.Detail)
			}
			return nil
		},
	}
}

func topCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "top [n]",
		Short: "Show the highest-value payments",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := seededApp(cmd)
			if err != nil {
				return err
			}

			limit := 5
			if len(args) > 0 {
				limit, err = strconv.Atoi(args[0])
				if err != nil || limit <= 0 {
					return fmt.Errorf("invalid count %q", args[0])
				}
			}

			out := cmd.OutOrStdout()
			for i, p := range a.analytics.TopPerformers(limit) {
				fmt.Fprintf(out, "%2d. %-20s %16s  %s\n",
					i+1, p.ChannelID, domain.FormatMoney(p.Amount, p.Currency), p.Kind)
			}
			return nil
		},
	}
}
