package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create any missing tables",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	e, closeEnv, err := openEnv()
	if err != nil {
		return err
	}
	defer closeEnv()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	if err := e.repo.Migrate(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Schema up to date (%s)\n", e.cfg.DBDriver)
	return nil
}
