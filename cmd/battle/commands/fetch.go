package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [date]",
	Short: "Fetch open/close prices for the active picks",
	Long: `Fetches daily open and close prices for every symbol picked in the week
containing the given date and stores them as that date's price file.

Without an argument today's prices are fetched.

Example:
  battle fetch
  battle fetch 2025-01-10`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	date, err := dateArg(args)
	if err != nil {
		return err
	}

	svc, _, _, err := initService()
	if err != nil {
		return err
	}

	printHeader(fmt.Sprintf("Prices for %s", date))

	samples, err := svc.FetchPrices(cmd.Context(), date)
	if err != nil {
		return err
	}

	symbols := make([]string, 0, len(samples))
	for sym := range samples {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	for _, sym := range symbols {
		s := samples[sym]
		open, close := "N/A", "N/A"
		if s.HasOpen() {
			open = s.Open.Decimal.StringFixed(2)
		}
		if s.HasClose() {
			close = s.Close.Decimal.StringFixed(2)
		}
		fmt.Printf("  %-10s open %-10s close %-10s\n", sym, open, close)
	}
	printSuccess(fmt.Sprintf("%d symbols sampled", len(samples)))
	return nil
}
