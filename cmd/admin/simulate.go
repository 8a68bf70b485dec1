package main

import (
	"errors"
	"fmt"

	"github.com/Dan9191/openbanqr/internal/apperr"
	"github.com/spf13/cobra"
)

var flagProfile int64

var simulateWeekCmd = &cobra.Command{
	Use:   "simulate-week",
	Short: "Advance one simulated week",
	Long:  "Advance one week for a single financial profile, or for every profile when --profile is omitted.",
	Args:  cobra.NoArgs,
	RunE:  runSimulateWeek,
}

func init() {
	simulateWeekCmd.Flags().Int64VarP(&flagProfile, "profile", "p", 0, "Financial profile id (0 = all profiles)")
	rootCmd.AddCommand(simulateWeekCmd)
}

func runSimulateWeek(cmd *cobra.Command, _ []string) error {
	if flagProfile < 0 {
		return errors.New("--profile must not be negative")
	}

	e, closeEnv, err := openEnv()
	if err != nil {
		return err
	}
	defer closeEnv()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	ids := []int64{flagProfile}
	if flagProfile == 0 {
		ids, err = e.repo.Queries().ListProfileIDs(ctx)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	var failed int
	for _, id := range ids {
		res, err := e.svc.AdvanceWeek(ctx, id)
		if err != nil {
			if flagProfile != 0 || errors.Is(err, ctx.Err()) {
				return err
			}
			// Teachers and deleted users keep their profiles but cannot play.
			if errors.Is(err, apperr.ErrForbidden) || errors.Is(err, apperr.ErrNotFound) {
				e.log.Debugf("Skipping profile %d: %v", id, err)
				continue
			}
			failed++
			e.log.Errorf("Week simulation failed for profile %d: %v", id, err)
			continue
		}
		fmt.Fprintf(out, "  Profile %d: week %d, net %s, remaining %s, savings %s\n",
			id, res.WeeksPlayed, res.NetIncome.StringFixed(2), res.Remaining.StringFixed(2), res.NewSavingsBalance.StringFixed(2))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d profiles failed", failed, len(ids))
	}
	return nil
}
