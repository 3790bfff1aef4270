package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/harunoguchi/trader-battle/internal/battle"
	"github.com/harunoguchi/trader-battle/internal/calendar"
	"github.com/harunoguchi/trader-battle/pkg/logger"
)

// MonthlyJob writes the previous month's summary report on the first morning
// of each month, once every daily file for that month exists.
type MonthlyJob struct {
	svc *battle.Service
	log *logger.Logger
}

func NewMonthlyJob(svc *battle.Service, log *logger.Logger) *MonthlyJob {
	return &MonthlyJob{svc: svc, log: log}
}

func (j *MonthlyJob) Name() string {
	return "monthly_report"
}

// Schedule fires on the 1st of each month at 09:00 JST.
func (j *MonthlyJob) Schedule() string {
	return "0 0 9 1 * *"
}

func (j *MonthlyJob) Run(_ context.Context) error {
	now := time.Now().In(calendar.JST)
	prev := now.AddDate(0, -1, 0)

	path, err := j.svc.MonthlyReport(prev.Year(), prev.Month())
	if err != nil {
		return fmt.Errorf("monthly report: %w", err)
	}
	j.log.WithField("path", path).Info("Monthly report written")
	return nil
}
