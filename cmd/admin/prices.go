package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refreshPricesCmd = &cobra.Command{
	Use:   "refresh-prices",
	Short: "Move every stock price once and revalue the portfolios holding it",
	Args:  cobra.NoArgs,
	RunE:  runRefreshPrices,
}

func init() {
	rootCmd.AddCommand(refreshPricesCmd)
}

func runRefreshPrices(cmd *cobra.Command, _ []string) error {
	e, closeEnv, err := openEnv()
	if err != nil {
		return err
	}
	defer closeEnv()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	n, err := e.svc.RefreshPrices(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Updated %d stocks\n", n)
	return nil
}
