package main

import (
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <ticker>",
		Short: "Show NAV history and returns for a ticker",
		Long:  `Fetch the NAV time series for an already-resolved ticker and print its latest NAV and 1Y/3Y/5Y returns.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printHistory(cmd.Context(), args[0])
			return nil
		},
	}
}
