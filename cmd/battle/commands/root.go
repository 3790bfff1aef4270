// Package commands implements the battle CLI.
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harunoguchi/trader-battle/internal/battle"
	"github.com/harunoguchi/trader-battle/internal/calendar"
	"github.com/harunoguchi/trader-battle/pkg/config"
	"github.com/harunoguchi/trader-battle/pkg/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "battle",
	Short: "LLM trader battle - weekly stock picking contest between LLM agents",
	Long: `LLM trader battle

Each week every configured LLM agent picks two Tokyo Stock Exchange tickers.
The engine tracks open and close prices on the Japanese trading calendar and
scores the agents by average return, daily and monthly.

Examples:
  battle picks                  collect this week's picks
  battle fetch                  fetch today's prices for the active picks
  battle daily                  compute today's result
  battle report week            write the current week's report
  battle report month 2025-01   write a monthly summary
  battle calendar 2025-01-10    classify a date
  battle scheduler start        run everything on schedule
  battle api                    serve results over HTTP`,
}

// Execute runs the CLI. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initService loads config and builds the service every command starts from.
func initService() (*battle.Service, *config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	log := logger.New(level, cfg.LogFormat, cfg.Env)

	return battle.NewService(cfg, log), cfg, log, nil
}

// today is the current civil date in Tokyo.
func today() calendar.Date {
	return calendar.DateOf(time.Now())
}

// dateArg parses an optional YYYY-MM-DD argument, defaulting to today.
func dateArg(args []string) (calendar.Date, error) {
	if len(args) == 0 {
		return today(), nil
	}
	d, err := calendar.ParseDate(args[0])
	if err != nil {
		return calendar.Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", args[0])
	}
	return d, nil
}

// weekArg parses an optional week argument (the Monday as YYYY-MM-DD),
// defaulting to the week containing today.
func weekArg(args []string) (calendar.WeekID, error) {
	if len(args) == 0 {
		return calendar.WeekOf(today()), nil
	}
	w, err := calendar.ParseWeekID(args[0])
	if err != nil {
		return calendar.WeekID{}, fmt.Errorf("invalid week %q (expected the Monday as YYYY-MM-DD)", args[0])
	}
	return w, nil
}
