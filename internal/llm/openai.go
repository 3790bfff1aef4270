package llm

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/harunoguchi/trader-battle/internal/calendar"
	"github.com/harunoguchi/trader-battle/internal/contracts"
)

// openAIPicker speaks the OpenAI chat-completions API. Grok uses the same
// dialect with a different base URL.
type openAIPicker struct {
	agentID string
	model   string
	client  *resty.Client
}

func newOpenAI(agentID, baseURL, apiKey, model string, client *resty.Client) *openAIPicker {
	client.SetBaseURL(baseURL)
	client.SetAuthToken(apiKey)
	return &openAIPicker{agentID: agentID, model: model, client: client}
}

func (p *openAIPicker) AgentID() string { return p.agentID }

type chatCompletionRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	MaxTokens      int           `json:"max_tokens,omitempty"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (p *openAIPicker) Pick(ctx context.Context, week calendar.WeekID) (contracts.Pick, error) {
	req := chatCompletionRequest{
		Model:     p.model,
		Messages:  []chatMessage{{Role: "user", Content: buildPrompt(week)}},
		MaxTokens: 400,
		ResponseFormat: &struct {
			Type string `json:"type"`
		}{Type: "json_object"},
	}

	var out chatCompletionResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/chat/completions")
	if err != nil {
		return contracts.Pick{}, fmt.Errorf("%s chat completion: %w", p.agentID, err)
	}
	if resp.IsError() {
		return contracts.Pick{}, fmt.Errorf("%s chat completion: status %d: %s", p.agentID, resp.StatusCode(), resp.String())
	}
	if len(out.Choices) == 0 {
		return contracts.Pick{}, fmt.Errorf("%s returned no choices", p.agentID)
	}

	parsed, err := parsePicksJSON(out.Choices[0].Message.Content)
	if err != nil {
		return contracts.Pick{}, fmt.Errorf("%s: %w", p.agentID, err)
	}
	return assemblePick(p.agentID, week, parsed)
}
