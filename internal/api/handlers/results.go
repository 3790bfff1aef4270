// Package handlers implements the read-only HTTP endpoints over the battle's
// stored results. The API never mutates data; writes happen only through the
// CLI and the scheduler.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/harunoguchi/trader-battle/internal/battle"
	"github.com/harunoguchi/trader-battle/internal/calendar"
	"github.com/harunoguchi/trader-battle/pkg/logger"
)

// ResultsHandler serves picks, daily and monthly results, and calendar
// lookups.
type ResultsHandler struct {
	svc *battle.Service
	log *logger.Logger
}

func NewResultsHandler(svc *battle.Service, log *logger.Logger) *ResultsHandler {
	return &ResultsHandler{svc: svc, log: log}
}

// GetDaily returns one date's stored summary.
// GET /api/results/daily/{date}
func (h *ResultsHandler) GetDaily(w http.ResponseWriter, r *http.Request) {
	date, err := calendar.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date (expected YYYY-MM-DD)")
		return
	}

	summary, ok, err := h.svc.Store().LoadDailySummary(date)
	if err != nil {
		h.log.WithError(err).Error("Failed to load daily summary")
		respondError(w, http.StatusInternalServerError, "Failed to load daily summary")
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "No summary for this date")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// GetMonthly returns the month's matrix, rebuilt from the daily files on
// every request.
// GET /api/results/monthly/{year}/{month}
func (h *ResultsHandler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid year")
		return
	}
	month, err := strconv.Atoi(vars["month"])
	if err != nil || month < 1 || month > 12 {
		respondError(w, http.StatusBadRequest, "Invalid month (expected 1-12)")
		return
	}

	summary, err := h.svc.MonthlySummary(year, time.Month(month))
	if err != nil {
		h.log.WithError(err).Error("Failed to build monthly summary")
		respondError(w, http.StatusInternalServerError, "Failed to build monthly summary")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// GetPicks returns the stored picks of one week.
// GET /api/picks/{week}
func (h *ResultsHandler) GetPicks(w http.ResponseWriter, r *http.Request) {
	week, err := calendar.ParseWeekID(mux.Vars(r)["week"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid week (expected the Monday as YYYY-MM-DD)")
		return
	}

	picks, ok, err := h.svc.Store().LoadPicks(week)
	if err != nil {
		h.log.WithError(err).Error("Failed to load picks")
		respondError(w, http.StatusInternalServerError, "Failed to load picks")
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "No picks for this week")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"week":  week.String(),
		"picks": picks,
	})
}

// GetCalendarDay reports how the calendar classifies one date.
// GET /api/calendar/{date}
func (h *ResultsHandler) GetCalendarDay(w http.ResponseWriter, r *http.Request) {
	date, err := calendar.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date (expected YYYY-MM-DD)")
		return
	}

	cal, err := h.svc.Calendar()
	if err != nil {
		h.log.WithError(err).Error("Failed to build calendar")
		respondError(w, http.StatusInternalServerError, "Failed to build calendar")
		return
	}

	week := calendar.WeekOf(date)
	resp := map[string]interface{}{
		"date":        date.String(),
		"week":        week.String(),
		"weekday":     date.Weekday().String(),
		"trading_day": cal.IsTradingDay(date),
	}
	if open, err := cal.ResolveOpenDate(week); err == nil {
		resp["week_open_date"] = open.String()
	}
	if close, err := cal.ResolveCloseDate(week); err == nil {
		resp["week_close_date"] = close.String()
	}

	respondJSON(w, http.StatusOK, resp)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
