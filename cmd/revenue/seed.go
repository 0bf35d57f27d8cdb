package main

import (
	"fmt"

	"github.com/cansu12-ui/video-platformu-yonetimi/internal/domain"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Generate demo records and summarize the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := seededApp(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Store holds %d records, total volume %.2f\n", a.store.Len(), a.store.TotalVolume())
			for _, k := range domain.Kinds() {
				fmt.Fprintf(out, "  %-12s %d\n", k, len(a.store.FilterByKind(k)))
			}
			return nil
		},
	}
}
