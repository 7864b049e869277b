package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Gyeom/jira-automation/internal/ai"
	"github.com/Gyeom/jira-automation/internal/config"
	apperrors "github.com/Gyeom/jira-automation/internal/errors"
	"github.com/Gyeom/jira-automation/internal/httpclient"
	"github.com/Gyeom/jira-automation/internal/logger"
	"github.com/Gyeom/jira-automation/internal/models"
)

const (
	completionsURL = "https://api.openai.com/v1/chat/completions"
	defaultModel   = "gpt-4o-mini"

	systemPrompt = "You are a helpful assistant that creates Jira tickets from code changes."
)

// Generator drafts tickets through the OpenAI chat completions API.
type Generator struct {
	apiKey string
	model  string
	client httpclient.HTTPClient
}

var _ ai.TicketContentGenerator = (*Generator)(nil)

// NewGenerator builds an OpenAI-backed generator from the AI section of the
// configuration.
func NewGenerator(cfg *config.Config, client httpclient.HTTPClient) (*Generator, error) {
	if cfg.AIConfig.APIKey == "" {
		return nil, apperrors.ErrAIKeyMissing
	}

	model := cfg.AIConfig.Model
	if model == "" {
		model = defaultModel
	}

	return &Generator{
		apiKey: cfg.AIConfig.APIKey,
		model:  model,
		client: client,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateTicket generates a ticket draft from the change summary and diff.
func (g *Generator) GenerateTicket(ctx context.Context, summary, diffContent string, lang models.OutputLanguage) (*models.GeneratedTicket, error) {
	log := logger.FromContext(ctx)

	prompt := ai.BuildTicketPrompt(summary, diffContent, lang)

	payload := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   1500,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.ErrAIGeneration.WithError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, completionsURL, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.ErrAIGeneration.WithError(err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	log.Debug("calling openai API for ticket draft",
		"model", g.model,
		"prompt_length", len(prompt))

	resp, err := g.client.Do(req)
	if err != nil {
		log.Error("openai API call failed",
			"error", err,
			"model", g.model)
		return nil, apperrors.ErrAIGeneration.WithError(err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			fmt.Println("error closing response body:", err)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.ErrAIGeneration.WithError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error("openai API returned an error",
			"status", resp.StatusCode,
			"body", string(respBody))
		return nil, apperrors.ErrAIGeneration.
			WithError(fmt.Errorf("OpenAI API error: HTTP %d: %s", resp.StatusCode, string(respBody)))
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return nil, apperrors.ErrAIGeneration.WithError(err)
	}
	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		return nil, apperrors.NewAppError(apperrors.TypeAI, "empty response from AI", nil)
	}

	ticket := ai.ParseTicketResponse(chat.Choices[0].Message.Content)

	log.Info("ticket draft generated via openai",
		"title", ticket.Title,
		"description_length", len(ticket.Description))

	return ticket, nil
}
