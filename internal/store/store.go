// Package store is the flat-file adapter: every record the game persists is
// a dated JSON file under the data directory. There is no other persistence.
// Writes go to a temp file in the same directory and are renamed into place,
// so a partially written file is never visible under the final name.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/harunoguchi/trader-battle/internal/calendar"
	"github.com/harunoguchi/trader-battle/internal/contracts"
	"github.com/harunoguchi/trader-battle/pkg/logger"
)

// Store reads and writes the dated JSON files.
type Store struct {
	dataDir    string
	reportsDir string
	log        *logger.Logger
}

// New creates a Store rooted at dataDir, with markdown reports under
// reportsDir.
func New(dataDir, reportsDir string, log *logger.Logger) *Store {
	return &Store{dataDir: dataDir, reportsDir: reportsDir, log: log}
}

func (s *Store) picksPath(week calendar.WeekID) string {
	return filepath.Join(s.dataDir, "picks", fmt.Sprintf("picks-%s.json", week))
}

func (s *Store) pricesPath(date calendar.Date) string {
	return filepath.Join(s.dataDir, "prices", fmt.Sprintf("prices-%s.json", date))
}

func (s *Store) resultPath(date calendar.Date) string {
	return filepath.Join(s.dataDir, "result", fmt.Sprintf("result-%s.json", date))
}

func (s *Store) closuresPath() string {
	return filepath.Join(s.dataDir, "calendar", "manual_closed_dates.json")
}

// SavePicks persists the week's picks.
func (s *Store) SavePicks(week calendar.WeekID, picks []contracts.Pick) error {
	return s.writeJSON(s.picksPath(week), picks)
}

// LoadPicks loads the week's picks. ok=false when no picks file exists yet.
func (s *Store) LoadPicks(week calendar.WeekID) ([]contracts.Pick, bool, error) {
	var picks []contracts.Pick
	ok, err := s.readJSON(s.picksPath(week), &picks)
	return picks, ok, err
}

// SavePrices persists the samples fetched for one date, keyed by symbol.
func (s *Store) SavePrices(date calendar.Date, samples map[string]contracts.PriceSample) error {
	return s.writeJSON(s.pricesPath(date), samples)
}

// LoadPrices loads the samples recorded for one date.
func (s *Store) LoadPrices(date calendar.Date) (map[string]contracts.PriceSample, bool, error) {
	var samples map[string]contracts.PriceSample
	ok, err := s.readJSON(s.pricesPath(date), &samples)
	return samples, ok, err
}

// SaveDailySummary persists the daily result file. Re-running for the same
// date overwrites deterministically.
func (s *Store) SaveDailySummary(summary contracts.DailySummary) error {
	return s.writeJSON(s.resultPath(summary.Date), summary)
}

// LoadDailySummary loads one date's result file.
func (s *Store) LoadDailySummary(date calendar.Date) (contracts.DailySummary, bool, error) {
	var summary contracts.DailySummary
	ok, err := s.readJSON(s.resultPath(date), &summary)
	return summary, ok, err
}

// LoadDailySummariesForMonth loads every result file whose date falls in the
// given civil month, sorted by date.
func (s *Store) LoadDailySummariesForMonth(year int, month time.Month) ([]contracts.DailySummary, error) {
	pattern := filepath.Join(s.dataDir, "result", "result-*.json")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob result files: %w", err)
	}

	summaries := make([]contracts.DailySummary, 0, len(paths))
	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".json")
		date, err := calendar.ParseDate(strings.TrimPrefix(name, "result-"))
		if err != nil {
			s.log.WithField("file", path).Warn("Result file with unparseable date, skipped")
			continue
		}
		if date.Year != year || date.Month != month {
			continue
		}

		var summary contracts.DailySummary
		if ok, err := s.readJSON(path, &summary); err != nil {
			return nil, err
		} else if ok {
			summaries = append(summaries, summary)
		}
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Date.Before(summaries[j].Date)
	})
	return summaries, nil
}

// LoadManualClosures reads the externally maintained closure list (an array
// of ISO dates). A missing file means no manual closures.
func (s *Store) LoadManualClosures() (calendar.ClosureSet, error) {
	var raw []calendar.Date
	if _, err := s.readJSON(s.closuresPath(), &raw); err != nil {
		return nil, fmt.Errorf("load manual closures: %w", err)
	}
	return calendar.NewClosureSet(raw...), nil
}

// SaveWeekReport writes the week's markdown report.
func (s *Store) SaveWeekReport(week calendar.WeekID, content string) (string, error) {
	path := filepath.Join(s.reportsDir, fmt.Sprintf("week-%s.md", week))
	return path, s.writeFile(path, []byte(content))
}

// SaveMonthlyReport writes the month's markdown summary.
func (s *Store) SaveMonthlyReport(year int, month time.Month, content string) (string, error) {
	path := filepath.Join(s.reportsDir, fmt.Sprintf("summary-%04d-%02d.md", year, int(month)))
	return path, s.writeFile(path, []byte(content))
}

// PriceLookup returns a contracts.PriceLookup serving samples from the dated
// price files, caching each date's file after the first read.
func (s *Store) PriceLookup() contracts.PriceLookup {
	return &fileLookup{store: s, byDate: make(map[calendar.Date]map[string]contracts.PriceSample)}
}

func (s *Store) writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	return s.writeFile(path, append(data, '\n'))
}

// writeFile writes atomically: temp file in the target directory, then rename.
func (s *Store) writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// readJSON loads path into v. A missing file is ok=false, not an error.
func (s *Store) readJSON(path string, v interface{}) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}

// fileLookup adapts the dated price files to the PriceLookup collaborator.
// Reads are cached per date; the files are immutable once written.
type fileLookup struct {
	store  *Store
	byDate map[calendar.Date]map[string]contracts.PriceSample
}

func (l *fileLookup) Sample(_ context.Context, symbol string, date calendar.Date) (contracts.PriceSample, bool, error) {
	samples, cached := l.byDate[date]
	if !cached {
		loaded, ok, err := l.store.LoadPrices(date)
		if err != nil {
			return contracts.PriceSample{}, false, err
		}
		if !ok {
			loaded = map[string]contracts.PriceSample{}
		}
		l.byDate[date] = loaded
		samples = loaded
	}

	sample, ok := samples[symbol]
	return sample, ok, nil
}
