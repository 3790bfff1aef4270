// Package llm obtains weekly picks from language-model vendors. It is a pure
// producer of Pick records: nothing downstream of pick generation knows which
// vendor (or the offline stub) produced a pick.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harunoguchi/trader-battle/internal/calendar"
	"github.com/harunoguchi/trader-battle/internal/contracts"
	"github.com/harunoguchi/trader-battle/pkg/config"
	"github.com/harunoguchi/trader-battle/pkg/httputil"
	"github.com/harunoguchi/trader-battle/pkg/logger"
)

// Picker produces one agent's pick for a week.
type Picker interface {
	// AgentID is the stable identity the pick is recorded under.
	AgentID() string

	// Pick asks the agent for its two symbols for the given week.
	Pick(ctx context.Context, week calendar.WeekID) (contracts.Pick, error)
}

// ForAgent builds the vendor client for a known agent id. Unknown ids and
// agents without a configured API key fall back to the deterministic stub so
// a battle can run offline end to end.
func ForAgent(agentID string, cfg *config.Config, log *logger.Logger) Picker {
	client := httputil.New(cfg.LLM.Timeout, log)

	switch agentID {
	case "gpt":
		if cfg.LLM.OpenAIKey != "" {
			return newOpenAI(agentID, cfg.LLM.OpenAIURL, cfg.LLM.OpenAIKey, cfg.LLM.OpenAIModel, client)
		}
	case "claude":
		if cfg.LLM.AnthropicKey != "" {
			return newAnthropic(agentID, cfg.LLM.AnthropicKey, cfg.LLM.AnthropicModel, client)
		}
	case "gemini":
		if cfg.LLM.GeminiKey != "" {
			return newGemini(agentID, cfg.LLM.GeminiKey, cfg.LLM.GeminiModel, client)
		}
	case "grok":
		// Grok speaks the OpenAI chat-completions dialect.
		if cfg.LLM.GrokKey != "" {
			return newOpenAI(agentID, cfg.LLM.GrokURL, cfg.LLM.GrokKey, cfg.LLM.GrokModel, client)
		}
	}

	log.WithField("agent", agentID).Warn("No vendor credentials, using stub picker")
	return NewStub(agentID)
}

// assemblePick turns a parsed vendor response into a validated Pick.
func assemblePick(agentID string, week calendar.WeekID, resp PickResponse) (contracts.Pick, error) {
	pick := contracts.Pick{
		AgentID:     agentID,
		Symbols:     resp.Symbols,
		Rationale:   resp.Rationale(),
		WeekID:      week,
		PickedAtUTC: time.Now().UTC(),
	}
	if err := pick.Validate(); err != nil {
		return contracts.Pick{}, fmt.Errorf("%s returned an unusable pick: %w", agentID, err)
	}
	return pick, nil
}

// PickResponse is the parsed vendor answer: up to two symbols with their
// stated reasons and analysis methods.
type PickResponse struct {
	Symbols []string
	Reasons []string
	Methods []string
}

// Rationale flattens the per-symbol reasons into one stored string.
func (r PickResponse) Rationale() string {
	parts := make([]string, 0, len(r.Symbols))
	for i, sym := range r.Symbols {
		reason, method := "", ""
		if i < len(r.Reasons) {
			reason = r.Reasons[i]
		}
		if i < len(r.Methods) {
			method = r.Methods[i]
		}
		switch {
		case reason != "" && method != "":
			parts = append(parts, fmt.Sprintf("%s: %s (%s)", sym, reason, method))
		case reason != "":
			parts = append(parts, fmt.Sprintf("%s: %s", sym, reason))
		}
	}
	return strings.Join(parts, " / ")
}
