package anthropic

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
	messagesURL  = "https://api.anthropic.com/v1/messages"
	apiVersion   = "2023-06-01"
	defaultModel = "claude-3-5-sonnet-latest"

	systemPrompt = "You are a helpful assistant that creates Jira tickets from code changes."
)

// Generator drafts tickets through the Anthropic messages API.
type Generator struct {
	apiKey string
	model  string
	client httpclient.HTTPClient
}

var _ ai.TicketContentGenerator = (*Generator)(nil)

// NewGenerator builds an Anthropic-backed generator from the AI section of
// the configuration.
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

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	System      string    `json:"system"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// GenerateTicket generates a ticket draft from the change summary and diff.
func (g *Generator) GenerateTicket(ctx context.Context, summary, diffContent string, lang models.OutputLanguage) (*models.GeneratedTicket, error) {
	log := logger.FromContext(ctx)

	prompt := ai.BuildTicketPrompt(summary, diffContent, lang)

	payload := messagesRequest{
		Model:     g.model,
		MaxTokens: 1500,
		System:    systemPrompt,
		Messages: []message{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.ErrAIGeneration.WithError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, messagesURL, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.ErrAIGeneration.WithError(err)
	}
	req.Header.Set("x-api-key", g.apiKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	log.Debug("calling anthropic API for ticket draft",
		"model", g.model,
		"prompt_length", len(prompt))

	resp, err := g.client.Do(req)
	if err != nil {
		log.Error("anthropic API call failed",
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
		log.Error("anthropic API returned an error",
			"status", resp.StatusCode,
			"body", string(respBody))
		return nil, apperrors.ErrAIGeneration.
			WithError(fmt.Errorf("Anthropic API error: HTTP %d: %s", resp.StatusCode, string(respBody)))
	}

	var msg messagesResponse
	if err := json.Unmarshal(respBody, &msg); err != nil {
		return nil, apperrors.ErrAIGeneration.WithError(err)
	}

	responseText := formatContent(msg)
	if responseText == "" {
		return nil, apperrors.NewAppError(apperrors.TypeAI, "empty response from AI", nil)
	}

	ticket := ai.ParseTicketResponse(responseText)

	log.Info("ticket draft generated via anthropic",
		"title", ticket.Title,
		"description_length", len(ticket.Description))

	return ticket, nil
}

func formatContent(msg messagesResponse) string {
	var sb bytes.Buffer
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String()
}
