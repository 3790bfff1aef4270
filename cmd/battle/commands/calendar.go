package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harunoguchi/trader-battle/internal/calendar"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar [date]",
	Short: "Classify a date on the trading calendar",
	Long: `Shows how the trading calendar treats a date: weekday, holiday and manual
closure status, and the resolved open and close dates of its week.

Example:
  battle calendar
  battle calendar 2025-01-10`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCalendar,
}

func init() {
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(cmd *cobra.Command, args []string) error {
	date, err := dateArg(args)
	if err != nil {
		return err
	}

	svc, _, _, err := initService()
	if err != nil {
		return err
	}
	cal, err := svc.Calendar()
	if err != nil {
		return err
	}

	week := calendar.WeekOf(date)

	printHeader(fmt.Sprintf("Calendar for %s (%s)", date, date.Weekday()))
	fmt.Printf("  Week:        %s\n", week)
	if cal.IsTradingDay(date) {
		fmt.Println("  Trading day: yes")
	} else {
		fmt.Println("  Trading day: no")
	}

	if open, err := cal.ResolveOpenDate(week); err == nil {
		fmt.Printf("  Week open:   %s\n", open)
	} else {
		fmt.Printf("  Week open:   unresolvable (%v)\n", err)
	}
	if close, err := cal.ResolveCloseDate(week); err == nil {
		fmt.Printf("  Week close:  %s\n", close)
	} else {
		fmt.Printf("  Week close:  unresolvable (%v)\n", err)
	}
	return nil
}
