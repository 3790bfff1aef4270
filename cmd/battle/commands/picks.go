package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var picksForce bool

var picksCmd = &cobra.Command{
	Use:   "picks [week]",
	Short: "Collect every agent's picks for a week",
	Long: `Asks every configured agent for its two tickers and stores the picks.

The week argument is the Monday of the week as YYYY-MM-DD; without it the
current week is used. Picks already on disk are kept unless --force is set.

Example:
  battle picks
  battle picks 2025-01-06
  battle picks --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPicks,
}

func init() {
	rootCmd.AddCommand(picksCmd)
	picksCmd.Flags().BoolVar(&picksForce, "force", false, "regenerate even when picks exist")
}

func runPicks(cmd *cobra.Command, args []string) error {
	week, err := weekArg(args)
	if err != nil {
		return err
	}

	svc, _, _, err := initService()
	if err != nil {
		return err
	}

	printHeader(fmt.Sprintf("Picks for week %s", week))

	picks, err := svc.GeneratePicks(cmd.Context(), week, picksForce)
	if err != nil {
		return err
	}

	for _, pick := range picks {
		fmt.Printf("  %-8s %s\n", pick.AgentID, strings.Join(pick.Symbols, ", "))
	}
	printSuccess(fmt.Sprintf("%d picks stored", len(picks)))
	return nil
}
