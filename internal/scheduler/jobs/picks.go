// Package jobs holds the scheduled battle steps: weekly pick collection,
// the end-of-day evaluation, and the monthly rollup.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/harunoguchi/trader-battle/internal/battle"
	"github.com/harunoguchi/trader-battle/internal/calendar"
	"github.com/harunoguchi/trader-battle/pkg/logger"
)

// PicksJob collects every agent's pick for the current week. It fires Monday
// morning before the Tokyo open so picks exist before the first prices do.
type PicksJob struct {
	svc *battle.Service
	log *logger.Logger
}

func NewPicksJob(svc *battle.Service, log *logger.Logger) *PicksJob {
	return &PicksJob{svc: svc, log: log}
}

func (j *PicksJob) Name() string {
	return "weekly_picks"
}

// Schedule fires Mondays at 08:30 JST.
func (j *PicksJob) Schedule() string {
	return "0 30 8 * * MON"
}

func (j *PicksJob) Run(ctx context.Context) error {
	week := calendar.WeekOf(calendar.DateOf(time.Now()))

	picks, err := j.svc.GeneratePicks(ctx, week, false)
	if err != nil {
		return fmt.Errorf("weekly picks: %w", err)
	}

	j.log.WithFields(map[string]interface{}{
		"week":  week.String(),
		"picks": len(picks),
	}).Info("Weekly picks collected")
	return nil
}
