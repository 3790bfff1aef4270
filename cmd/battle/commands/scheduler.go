package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harunoguchi/trader-battle/internal/scheduler"
	"github.com/harunoguchi/trader-battle/internal/scheduler/jobs"
)

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the battle on schedule",
	Long: `Manages the scheduler that runs the battle automatically.

Registered jobs (all times JST):
  weekly_picks    Monday 08:30, before the open
  daily_results   weekdays 16:30, after the close
  monthly_report  1st of the month 09:00

Subcommands:
  start   - run the scheduler until interrupted
  list    - list registered jobs
  run     - fire one job immediately

Example:
  battle scheduler start
  battle scheduler run daily_results`,
}

var schedulerStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the scheduler until interrupted",
	RunE:  runScheduler,
}

var schedulerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered jobs",
	RunE:  listJobs,
}

var schedulerRunCmd = &cobra.Command{
	Use:   "run [job_name]",
	Short: "Fire one job immediately",
	Args:  cobra.ExactArgs(1),
	RunE:  runJob,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

func initScheduler() (*scheduler.Scheduler, error) {
	svc, _, log, err := initService()
	if err != nil {
		return nil, err
	}

	sched := scheduler.New(log)
	for _, job := range []scheduler.Job{
		jobs.NewPicksJob(svc, log),
		jobs.NewDailyJob(svc, log),
		jobs.NewMonthlyJob(svc, log),
	} {
		if err := sched.AddJob(job); err != nil {
			return nil, err
		}
	}
	return sched, nil
}

func runScheduler(cmd *cobra.Command, args []string) error {
	sched, err := initScheduler()
	if err != nil {
		return err
	}

	sched.Start()

	printHeader("Scheduler running")
	for _, name := range sched.Jobs() {
		fmt.Printf("  - %s\n", name)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	sched, err := initScheduler()
	if err != nil {
		return err
	}

	fmt.Println("Registered jobs:")
	for _, name := range sched.Jobs() {
		fmt.Printf("  - %s\n", name)
	}
	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	sched, err := initScheduler()
	if err != nil {
		return err
	}

	if err := sched.RunJob(args[0]); err != nil {
		return err
	}
	printSuccess(fmt.Sprintf("Job %s completed", args[0]))
	return nil
}
