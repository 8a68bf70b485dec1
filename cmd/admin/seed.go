package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Dan9191/openbanqr/internal/seed"
	"github.com/spf13/cobra"
)

var flagCatalog string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the career, stock and event catalog",
	Long:  "Insert catalog records that are not already present. Careers and events match by title, stocks by symbol.",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&flagCatalog, "catalog", "c", "", "YAML catalog to load instead of the built-in one")
	rootCmd.AddCommand(seedCmd)
}

func loadCatalog() (*seed.Catalog, error) {
	if flagCatalog == "" {
		return seed.Default()
	}
	data, err := os.ReadFile(flagCatalog)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return seed.Parse(data)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

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
	res, err := seed.Apply(ctx, e.repo, catalog, time.Now().UTC())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Careers added: %d\n", res.Careers)
	fmt.Fprintf(out, "  Stocks added:  %d\n", res.Stocks)
	fmt.Fprintf(out, "  Events added:  %d\n", res.Events)
	return nil
}
