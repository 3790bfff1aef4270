package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dailyCmd = &cobra.Command{
	Use:   "daily [date]",
	Short: "Compute and store one date's results",
	Long: `Evaluates every agent's pick against stored prices for the given date and
writes the daily summary. The command fails when the week has no picks; a
non-trading date is reported and nothing is written.

Example:
  battle daily
  battle daily 2025-01-10`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDailyCmd,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
}

func runDailyCmd(cmd *cobra.Command, args []string) error {
	date, err := dateArg(args)
	if err != nil {
		return err
	}

	svc, _, _, err := initService()
	if err != nil {
		return err
	}

	printHeader(fmt.Sprintf("Results for %s", date))

	summary, ok, err := svc.BuildDaily(cmd.Context(), date)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Printf("  %s is not a trading day, nothing computed\n", date)
		return nil
	}

	for _, agentID := range summary.AgentIDs() {
		result := summary.Agents[agentID]
		fmt.Printf("  %-8s avg %-10s", agentID, formatPct(result.AvgReturnPct))
		for _, rec := range result.PerSymbol {
			fmt.Printf("  %s %s", rec.Symbol, formatPct(rec.ReturnPct))
		}
		fmt.Println()
	}
	if len(summary.Agents) == 0 {
		fmt.Println("  no agent had usable prices")
	}
	printSuccess(fmt.Sprintf("Daily summary stored for %s", date))
	return nil
}
