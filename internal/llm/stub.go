package llm

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/harunoguchi/trader-battle/internal/calendar"
	"github.com/harunoguchi/trader-battle/internal/contracts"
)

// stubCandidates are liquid TSE names the offline stub rotates through.
var stubCandidates = []string{"7203.T", "6758.T", "9984.T", "6861.T", "8035.T"}

// StubPicker produces deterministic picks without network access. The same
// agent and week always yield the same two symbols, so offline runs are
// reproducible.
type StubPicker struct {
	agentID string
}

func NewStub(agentID string) *StubPicker {
	return &StubPicker{agentID: agentID}
}

func (p *StubPicker) AgentID() string { return p.agentID }

func (p *StubPicker) Pick(_ context.Context, week calendar.WeekID) (contracts.Pick, error) {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s|%s", p.agentID, week)
	offset := int(h.Sum32() % uint32(len(stubCandidates)))

	symbols := make([]string, contracts.PickSymbols)
	for i := range symbols {
		symbols[i] = stubCandidates[(offset+i)%len(stubCandidates)]
	}

	pick := contracts.Pick{
		AgentID:     p.agentID,
		Symbols:     symbols,
		Rationale:   "offline stub pick",
		WeekID:      week,
		PickedAtUTC: time.Now().UTC(),
	}
	if err := pick.Validate(); err != nil {
		return contracts.Pick{}, fmt.Errorf("stub pick for %s: %w", p.agentID, err)
	}
	return pick, nil
}
