// Package battle wires the calendar, price adapter, pickers, store and
// aggregators into the operations the CLI, scheduler and API expose.
package battle

import (
	"context"
	"fmt"
	"time"

	"github.com/harunoguchi/trader-battle/internal/aggregate"
	"github.com/harunoguchi/trader-battle/internal/calendar"
	"github.com/harunoguchi/trader-battle/internal/contracts"
	"github.com/harunoguchi/trader-battle/internal/external/yahoo"
	"github.com/harunoguchi/trader-battle/internal/llm"
	"github.com/harunoguchi/trader-battle/internal/report"
	"github.com/harunoguchi/trader-battle/internal/store"
	"github.com/harunoguchi/trader-battle/pkg/config"
	"github.com/harunoguchi/trader-battle/pkg/logger"
)

// priceFetcher is the slice of the Yahoo client the service uses; tests
// substitute a canned implementation.
type priceFetcher interface {
	FetchDay(ctx context.Context, symbols []string, date calendar.Date) map[string]contracts.PriceSample
}

// Service runs the battle's operations. Each public method is a complete
// batch step: it loads what it needs from the store, does its work, and
// persists the outcome.
type Service struct {
	cfg    *config.Config
	store  *store.Store
	prices priceFetcher
	log    *logger.Logger

	// pickerFor is swapped out in tests.
	pickerFor func(agentID string) llm.Picker
}

// NewService builds the service from configuration.
func NewService(cfg *config.Config, log *logger.Logger) *Service {
	return &Service{
		cfg:    cfg,
		store:  store.New(cfg.DataDir, cfg.ReportsDir, log),
		prices: yahoo.New(cfg, log),
		log:    log,
		pickerFor: func(agentID string) llm.Picker {
			return llm.ForAgent(agentID, cfg, log)
		},
	}
}

// Store exposes the flat-file store for read-only consumers such as the API.
func (s *Service) Store() *store.Store { return s.store }

// Calendar builds the trading calendar with the manual closures currently on
// disk. It is rebuilt per operation so a closure added between scheduler
// ticks takes effect without a restart.
func (s *Service) Calendar() (*calendar.Calendar, error) {
	closures, err := s.store.LoadManualClosures()
	if err != nil {
		return nil, fmt.Errorf("load manual closures: %w", err)
	}
	return calendar.New(calendar.NewJapaneseHolidays(), closures), nil
}

// GeneratePicks asks every configured agent for its weekly pick and persists
// the collected picks. Existing picks for the week are kept unless force is
// set: a pick is immutable once the week is underway. Agents that fail are
// logged and omitted; the call errors only when no agent produced a pick.
func (s *Service) GeneratePicks(ctx context.Context, week calendar.WeekID, force bool) ([]contracts.Pick, error) {
	if !force {
		if existing, ok, err := s.store.LoadPicks(week); err != nil {
			return nil, err
		} else if ok {
			s.log.WithField("week", week.String()).Info("Picks already recorded, keeping them")
			return existing, nil
		}
	}

	picks := make([]contracts.Pick, 0, len(s.cfg.Agents))
	for _, agentID := range s.cfg.Agents {
		pick, err := s.pickerFor(agentID).Pick(ctx, week)
		if err != nil {
			s.log.WithError(err).WithField("agent", agentID).Error("Agent produced no pick")
			continue
		}
		s.log.WithFields(map[string]interface{}{
			"agent":   agentID,
			"symbols": pick.Symbols,
		}).Info("Pick recorded")
		picks = append(picks, pick)
	}

	if len(picks) == 0 {
		return nil, fmt.Errorf("generate picks for %s: no agent produced a pick", week)
	}
	if err := s.store.SavePicks(week, picks); err != nil {
		return nil, err
	}
	return picks, nil
}

// FetchPrices pulls open and close samples for every symbol traded on date,
// and persists them as that date's price file. That covers the picks of the
// week containing date plus, when date is the previous week's close rolled
// past that week's Sunday, the previous week's picks. Symbols the provider
// cannot serve are recorded as absent, never invented.
func (s *Service) FetchPrices(ctx context.Context, date calendar.Date) (map[string]contracts.PriceSample, error) {
	cal, err := s.Calendar()
	if err != nil {
		return nil, err
	}
	picks, err := s.picksTradedOn(cal, date)
	if err != nil {
		return nil, err
	}
	if len(picks) == 0 {
		return nil, fmt.Errorf("fetch prices for %s: no picks recorded for week %s", date, calendar.WeekOf(date))
	}

	symbols := contracts.SymbolSet(picks)
	samples := s.prices.FetchDay(ctx, symbols, date)
	if err := s.store.SavePrices(date, samples); err != nil {
		return nil, err
	}
	s.log.WithFields(map[string]interface{}{
		"date":    date.String(),
		"symbols": len(symbols),
		"sampled": len(samples),
	}).Info("Prices fetched")
	return samples, nil
}

// picksTradedOn collects the stored picks whose symbols need samples on
// date: the picks of date's own week and, when date settles the previous
// week's rolled close, that week's picks as well.
func (s *Service) picksTradedOn(cal *calendar.Calendar, date calendar.Date) ([]contracts.Pick, error) {
	picks, _, err := s.store.LoadPicks(calendar.WeekOf(date))
	if err != nil {
		return nil, err
	}

	if prevWeek, rolled := rolledCloseWeek(cal, date); rolled {
		prev, ok, err := s.store.LoadPicks(prevWeek)
		if err != nil {
			return nil, err
		}
		if ok {
			picks = append(picks, prev...)
		}
	}
	return picks, nil
}

// rolledCloseWeek reports the previous calendar week when date is that
// week's resolved close date, which happens only when the close rolled past
// the week's own Sunday.
func rolledCloseWeek(cal *calendar.Calendar, date calendar.Date) (calendar.WeekID, bool) {
	prev := calendar.WeekOf(date.AddDays(-7))
	closeDate, err := cal.ResolveCloseDate(prev)
	if err != nil || closeDate != date {
		return calendar.WeekID{}, false
	}
	return prev, true
}

// BuildDaily computes and persists the daily summary for date from stored
// picks and prices. ok=false means date is not a trading day and nothing was
// written. A trading day where no agent scored still yields a summary file
// with an empty agents map.
func (s *Service) BuildDaily(ctx context.Context, date calendar.Date) (contracts.DailySummary, bool, error) {
	cal, err := s.Calendar()
	if err != nil {
		return contracts.DailySummary{}, false, err
	}

	week := calendar.WeekOf(date)
	picks, ok, err := s.store.LoadPicks(week)
	if err != nil {
		return contracts.DailySummary{}, false, err
	}
	if !ok {
		return contracts.DailySummary{}, false, fmt.Errorf("build daily for %s: no picks recorded for week %s", date, week)
	}

	agg := aggregate.New(cal, s.store.PriceLookup(), s.log)
	summary, trading, err := agg.BuildDailySummary(ctx, date, picks)
	if err != nil {
		return contracts.DailySummary{}, false, err
	}
	if !trading {
		return contracts.DailySummary{}, false, nil
	}

	if err := s.store.SaveDailySummary(summary); err != nil {
		return contracts.DailySummary{}, false, err
	}
	s.log.WithFields(map[string]interface{}{
		"date":   date.String(),
		"agents": len(summary.Agents),
	}).Info("Daily summary written")
	return summary, true, nil
}

// RunDaily is the scheduler's end-of-day step: fetch prices for today, build
// today's summary, and write any week report whose resolved close date is
// today. A close that rolled past the previous week's Sunday settles here
// too. Closed days are a quiet no-op.
func (s *Service) RunDaily(ctx context.Context, date calendar.Date) error {
	cal, err := s.Calendar()
	if err != nil {
		return err
	}
	if !cal.IsTradingDay(date) {
		s.log.WithField("date", date.String()).Info("Market closed, daily run skipped")
		return nil
	}

	if _, err := s.FetchPrices(ctx, date); err != nil {
		return err
	}

	week := calendar.WeekOf(date)
	if _, ok, err := s.store.LoadPicks(week); err != nil {
		return err
	} else if ok {
		if _, _, err := s.BuildDaily(ctx, date); err != nil {
			return err
		}
		closeDate, err := cal.ResolveCloseDate(week)
		if err != nil {
			return err
		}
		if closeDate == date {
			if _, err := s.WeekReport(ctx, week); err != nil {
				return err
			}
		}
	}

	if prevWeek, rolled := rolledCloseWeek(cal, date); rolled {
		if _, ok, err := s.store.LoadPicks(prevWeek); err != nil {
			return err
		} else if ok {
			if _, err := s.WeekReport(ctx, prevWeek); err != nil {
				return err
			}
		}
	}
	return nil
}

// WeekReport renders and persists the week's result table from the summary
// of its resolved close date. It returns the path of the written report.
func (s *Service) WeekReport(ctx context.Context, week calendar.WeekID) (string, error) {
	cal, err := s.Calendar()
	if err != nil {
		return "", err
	}
	closeDate, err := cal.ResolveCloseDate(week)
	if err != nil {
		return "", fmt.Errorf("week report for %s: %w", week, err)
	}

	picks, ok, err := s.store.LoadPicks(week)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("week report for %s: no picks recorded", week)
	}

	// A stored snapshot is reusable only when the close stayed inside the
	// week: on a rolled close date the snapshot holds the following week's
	// picks. Without one, evaluate in-memory and do not persist.
	var summary contracts.DailySummary
	haveSnapshot := false
	if week.Contains(closeDate) {
		summary, haveSnapshot, err = s.store.LoadDailySummary(closeDate)
		if err != nil {
			return "", err
		}
	}
	if !haveSnapshot {
		agg := aggregate.New(cal, s.store.PriceLookup(), s.log)
		summary, err = agg.BuildWeekCloseSummary(ctx, week, closeDate, picks)
		if err != nil {
			return "", fmt.Errorf("week report for %s: %w", week, err)
		}
	}

	path, err := s.store.SaveWeekReport(week, report.WeekReport(week, picks, summary))
	if err != nil {
		return "", err
	}
	s.log.WithFields(map[string]interface{}{
		"week": week.String(),
		"path": path,
	}).Info("Week report written")
	return path, nil
}

// MonthlySummary folds the month's persisted daily summaries into the
// day-by-agent matrix. It is derived on demand and never stored as data.
func (s *Service) MonthlySummary(year int, month time.Month) (contracts.MonthlySummary, error) {
	dailies, err := s.store.LoadDailySummariesForMonth(year, month)
	if err != nil {
		return contracts.MonthlySummary{}, err
	}
	return aggregate.BuildMonthlySummary(year, month, dailies), nil
}

// MonthlyReport renders and persists the monthly markdown summary and
// returns the path of the written report.
func (s *Service) MonthlyReport(year int, month time.Month) (string, error) {
	summary, err := s.MonthlySummary(year, month)
	if err != nil {
		return "", err
	}
	path, err := s.store.SaveMonthlyReport(year, month, report.MonthlyReport(summary))
	if err != nil {
		return "", err
	}
	s.log.WithFields(map[string]interface{}{
		"month": fmt.Sprintf("%04d-%02d", year, int(month)),
		"path":  path,
	}).Info("Monthly report written")
	return path, nil
}
