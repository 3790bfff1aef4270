package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harunoguchi/trader-battle/internal/calendar"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write markdown reports",
	Long: `Writes markdown reports from stored results.

Subcommands:
  week   - one week's result table
  month  - the day-by-agent matrix for a month

Example:
  battle report week
  battle report week 2025-01-06
  battle report month 2025-01`,
}

var reportWeekCmd = &cobra.Command{
	Use:   "week [week]",
	Short: "Write one week's result table",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReportWeek,
}

var reportMonthCmd = &cobra.Command{
	Use:   "month [YYYY-MM]",
	Short: "Write a month's summary matrix",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReportMonth,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportWeekCmd)
	reportCmd.AddCommand(reportMonthCmd)
}

func runReportWeek(cmd *cobra.Command, args []string) error {
	week, err := weekArg(args)
	if err != nil {
		return err
	}

	svc, _, _, err := initService()
	if err != nil {
		return err
	}

	path, err := svc.WeekReport(cmd.Context(), week)
	if err != nil {
		return err
	}
	printSuccess(fmt.Sprintf("Week report written to %s", path))
	return nil
}

func runReportMonth(cmd *cobra.Command, args []string) error {
	year, month := currentMonth()
	if len(args) == 1 {
		parsed, err := time.ParseInLocation("2006-01", args[0], calendar.JST)
		if err != nil {
			return fmt.Errorf("invalid month %q (expected YYYY-MM)", args[0])
		}
		year, month = parsed.Year(), parsed.Month()
	}

	svc, _, _, err := initService()
	if err != nil {
		return err
	}

	path, err := svc.MonthlyReport(year, month)
	if err != nil {
		return err
	}
	printSuccess(fmt.Sprintf("Monthly report written to %s", path))
	return nil
}

func currentMonth() (int, time.Month) {
	now := time.Now().In(calendar.JST)
	return now.Year(), now.Month()
}
