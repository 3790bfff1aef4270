package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harunoguchi/trader-battle/internal/calendar"
	"github.com/harunoguchi/trader-battle/internal/contracts"
)

// buildPrompt is the prompt every vendor receives. It demands strict JSON so
// parsing stays uniform across vendors.
func buildPrompt(week calendar.WeekID) string {
	return strings.TrimSpace(fmt.Sprintf(`
You are a Japanese equity picker. Choose exactly %d Tokyo Stock Exchange tickers for the week starting %s.
You may pick any listed ticker you judge attractive.
Tickers must include the exchange suffix ".T" (example: 7203.T). Do not return raw numbers.
Respond with JSON only, following schema:
{"picks":[{"symbol":"<ticker>","reason":"<short justification>","method":"<analysis method used>"}, ...]}
"method" should be a short label like "fundamental", "technical", "theme", "news", or similar.
Write "reason" and "method" in Japanese.
No extra text or commentary.`, contracts.PickSymbols, week))
}

type pickPayload struct {
	Picks []struct {
		Symbol string `json:"symbol"`
		Reason string `json:"reason"`
		Method string `json:"method"`
	} `json:"picks"`
}

// parsePicksJSON parses a vendor answer of shape
// {"picks":[{"symbol":"7203.T","reason":"...","method":"..."}, ...]},
// tolerating markdown code fences and surrounding prose.
func parsePicksJSON(text string) (PickResponse, error) {
	var payload pickPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		extracted := extractJSONPayload(text)
		if extracted == "" {
			return PickResponse{}, fmt.Errorf("parse picks: %w", err)
		}
		if err := json.Unmarshal([]byte(extracted), &payload); err != nil {
			return PickResponse{}, fmt.Errorf("parse picks: %w", err)
		}
	}

	var resp PickResponse
	for _, entry := range payload.Picks {
		if entry.Symbol == "" {
			continue
		}
		resp.Symbols = append(resp.Symbols, normalizeSymbol(entry.Symbol))
		resp.Reasons = append(resp.Reasons, entry.Reason)
		resp.Methods = append(resp.Methods, entry.Method)
		if len(resp.Symbols) >= contracts.PickSymbols {
			break
		}
	}
	if len(resp.Symbols) == 0 {
		return PickResponse{}, fmt.Errorf("no symbols parsed from vendor answer")
	}
	return resp, nil
}

// extractJSONPayload strips code fences and carves out the first JSON object
// when the model wrapped it in prose.
func extractJSONPayload(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if strings.HasPrefix(s, "```") {
		lines := strings.Split(s, "\n")
		if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[0]), "```") {
			lines = lines[1:]
		}
		if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
			lines = lines[:len(lines)-1]
		}
		s = strings.TrimSpace(strings.Join(lines, "\n"))
	}

	if !strings.HasPrefix(s, "{") {
		start := strings.Index(s, "{")
		end := strings.LastIndex(s, "}")
		if start >= 0 && start < end {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}

// normalizeSymbol appends the TSE suffix when the model returned a bare
// numeric code, which is common for Japanese tickers.
func normalizeSymbol(sym string) string {
	sym = strings.TrimSpace(sym)
	if sym != "" && isAllDigits(sym) {
		return sym + ".T"
	}
	return sym
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
