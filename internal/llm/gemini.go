package llm

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/harunoguchi/trader-battle/internal/calendar"
	"github.com/harunoguchi/trader-battle/internal/contracts"
)

type geminiPicker struct {
	agentID string
	apiKey  string
	model   string
	client  *resty.Client
}

func newGemini(agentID, apiKey, model string, client *resty.Client) *geminiPicker {
	client.SetBaseURL("https://generativelanguage.googleapis.com")
	return &geminiPicker{agentID: agentID, apiKey: apiKey, model: model, client: client}
}

func (p *geminiPicker) AgentID() string { return p.agentID }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string `json:"response_mime_type"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (p *geminiPicker) Pick(ctx context.Context, week calendar.WeekID) (contracts.Pick, error) {
	var req geminiRequest
	req.Contents = []geminiContent{{Parts: []geminiPart{{Text: buildPrompt(week)}}}}
	req.GenerationConfig.ResponseMimeType = "application/json"

	var out geminiResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("key", p.apiKey).
		SetBody(req).
		SetResult(&out).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", p.model))
	if err != nil {
		return contracts.Pick{}, fmt.Errorf("%s generateContent: %w", p.agentID, err)
	}
	if resp.IsError() {
		return contracts.Pick{}, fmt.Errorf("%s generateContent: status %d: %s", p.agentID, resp.StatusCode(), resp.String())
	}

	var text string
	for _, cand := range out.Candidates {
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				text = part.Text
				break
			}
		}
		if text != "" {
			break
		}
	}
	if text == "" {
		return contracts.Pick{}, fmt.Errorf("%s returned no candidate text", p.agentID)
	}

	parsed, err := parsePicksJSON(text)
	if err != nil {
		return contracts.Pick{}, fmt.Errorf("%s: %w", p.agentID, err)
	}
	return assemblePick(p.agentID, week, parsed)
}
