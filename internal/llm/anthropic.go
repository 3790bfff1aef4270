package llm

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/harunoguchi/trader-battle/internal/calendar"
	"github.com/harunoguchi/trader-battle/internal/contracts"
)

const anthropicVersion = "2023-06-01"

type anthropicPicker struct {
	agentID string
	model   string
	client  *resty.Client
}

func newAnthropic(agentID, apiKey, model string, client *resty.Client) *anthropicPicker {
	client.SetBaseURL("https://api.anthropic.com")
	client.SetHeader("x-api-key", apiKey)
	client.SetHeader("anthropic-version", anthropicVersion)
	return &anthropicPicker{agentID: agentID, model: model, client: client}
}

func (p *anthropicPicker) AgentID() string { return p.agentID }

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (p *anthropicPicker) Pick(ctx context.Context, week calendar.WeekID) (contracts.Pick, error) {
	req := anthropicRequest{
		Model:     p.model,
		MaxTokens: 400,
		Messages:  []anthropicMessage{{Role: "user", Content: buildPrompt(week)}},
	}

	var out anthropicResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/v1/messages")
	if err != nil {
		return contracts.Pick{}, fmt.Errorf("%s messages call: %w", p.agentID, err)
	}
	if resp.IsError() {
		return contracts.Pick{}, fmt.Errorf("%s messages call: status %d: %s", p.agentID, resp.StatusCode(), resp.String())
	}

	var text string
	for _, block := range out.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return contracts.Pick{}, fmt.Errorf("%s returned no text content", p.agentID)
	}

	parsed, err := parsePicksJSON(text)
	if err != nil {
		return contracts.Pick{}, fmt.Errorf("%s: %w", p.agentID, err)
	}
	return assemblePick(p.agentID, week, parsed)
}
