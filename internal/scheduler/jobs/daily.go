package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/harunoguchi/trader-battle/internal/battle"
	"github.com/harunoguchi/trader-battle/internal/calendar"
	"github.com/harunoguchi/trader-battle/pkg/logger"
)

// DailyJob fetches the day's prices and writes the day's summary after the
// Tokyo close. On the week's resolved close date it also writes the week
// report. Closed days are a no-op inside the service, so the job can fire on
// every weekday.
type DailyJob struct {
	svc *battle.Service
	log *logger.Logger
}

func NewDailyJob(svc *battle.Service, log *logger.Logger) *DailyJob {
	return &DailyJob{svc: svc, log: log}
}

func (j *DailyJob) Name() string {
	return "daily_results"
}

// Schedule fires weekdays at 16:30 JST, an hour after the close.
func (j *DailyJob) Schedule() string {
	return "0 30 16 * * MON-FRI"
}

func (j *DailyJob) Run(ctx context.Context) error {
	today := calendar.DateOf(time.Now())
	if err := j.svc.RunDaily(ctx, today); err != nil {
		return fmt.Errorf("daily results for %s: %w", today, err)
	}
	return nil
}
