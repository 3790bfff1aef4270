package contracts

import (
	"fmt"
	"strings"
	"time"

	"github.com/harunoguchi/trader-battle/internal/calendar"
)

// PickSymbols is the number of tickers every agent must pick per week.
const PickSymbols = 2

// Pick is one agent's selection for one week of the game: exactly two
// distinct exchange-qualified ticker symbols. Symbols are opaque strings and
// are not validated against any universe.
type Pick struct {
	AgentID     string          `json:"agent_id"`
	Symbols     []string        `json:"symbols"`
	Rationale   string          `json:"rationale,omitempty"`
	WeekID      calendar.WeekID `json:"week_id"`
	PickedAtUTC time.Time       `json:"picked_at_utc"`
}

// Validate enforces the pick invariants.
func (p Pick) Validate() error {
	if strings.TrimSpace(p.AgentID) == "" {
		return fmt.Errorf("pick has empty agent id")
	}
	if len(p.Symbols) != PickSymbols {
		return fmt.Errorf("pick for %s has %d symbols, want %d", p.AgentID, len(p.Symbols), PickSymbols)
	}
	seen := make(map[string]struct{}, PickSymbols)
	for _, sym := range p.Symbols {
		if strings.TrimSpace(sym) == "" {
			return fmt.Errorf("pick for %s has an empty symbol", p.AgentID)
		}
		if _, dup := seen[sym]; dup {
			return fmt.Errorf("pick for %s repeats symbol %s", p.AgentID, sym)
		}
		seen[sym] = struct{}{}
	}
	return nil
}

// SymbolSet returns the distinct symbols across picks, sorted order not
// guaranteed.
func SymbolSet(picks []Pick) []string {
	seen := make(map[string]struct{})
	symbols := make([]string, 0, len(picks)*PickSymbols)
	for _, p := range picks {
		for _, sym := range p.Symbols {
			if _, ok := seen[sym]; ok {
				continue
			}
			seen[sym] = struct{}{}
			symbols = append(symbols, sym)
		}
	}
	return symbols
}
