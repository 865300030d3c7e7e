package cmd

import (
	"encoding/json"

	"bid-reconciler/services/tracking/helpers"

	"github.com/spf13/cobra"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <bid-id>",
		Short: "Reconcile one bid now and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			d, err := buildDeps(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer d.Close()

			bid, checkErr := d.service.CheckBid(cmd.Context(), args[0])
			if bid.ID != "" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(helpers.NewBidResponse(bid)); err != nil {
					return err
				}
			}
			return checkErr
		},
	}
}
