package gemini

import (
	"context"
	"strings"

	"github.com/Gyeom/jira-automation/internal/ai"
	"github.com/Gyeom/jira-automation/internal/config"
	apperrors "github.com/Gyeom/jira-automation/internal/errors"
	"github.com/Gyeom/jira-automation/internal/logger"
	"github.com/Gyeom/jira-automation/internal/models"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// Generator drafts tickets through the Gemini API using structured JSON
// output.
type Generator struct {
	client *genai.Client
	model  string
}

var _ ai.TicketContentGenerator = (*Generator)(nil)

// NewGenerator builds a Gemini-backed generator from the AI section of the
// configuration.
func NewGenerator(ctx context.Context, cfg *config.Config) (*Generator, error) {
	if cfg.AIConfig.APIKey == "" {
		return nil, apperrors.ErrAIKeyMissing
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.AIConfig.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "invalid") ||
			strings.Contains(errMsg, "unauthorized") ||
			strings.Contains(errMsg, "api key") ||
			strings.Contains(errMsg, "authentication") {
			return nil, apperrors.ErrAIKeyMissing.WithError(err)
		}
		return nil, apperrors.NewAppError(apperrors.TypeAI, "error creating AI client", err)
	}

	model := cfg.AIConfig.Model
	if model == "" {
		model = defaultModel
	}

	return &Generator{client: client, model: model}, nil
}

func getTicketSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"title", "description"},
		Properties: map[string]*genai.Schema{
			"title": {
				Type:        genai.TypeString,
				Description: "Concise ticket title, max 100 characters",
			},
			"description": {
				Type:        genai.TypeString,
				Description: "Ticket description in markdown format",
			},
		},
	}
}

// GenerateTicket generates a ticket draft from the change summary and diff.
func (g *Generator) GenerateTicket(ctx context.Context, summary, diffContent string, lang models.OutputLanguage) (*models.GeneratedTicket, error) {
	log := logger.FromContext(ctx)

	prompt := ai.BuildTicketPrompt(summary, diffContent, lang)

	log.Debug("calling gemini API for ticket draft",
		"model", g.model,
		"prompt_length", len(prompt))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), generateConfig())
	if err != nil {
		log.Error("gemini API call failed",
			"error", err,
			"model", g.model)

		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "quota") ||
			strings.Contains(errMsg, "rate limit") ||
			strings.Contains(errMsg, "resource exhausted") {
			return nil, apperrors.ErrAIGeneration.WithError(err).
				WithSuggestion("Gemini quota exceeded, wait a moment and try again")
		}
		return nil, apperrors.ErrAIGeneration.WithError(err)
	}

	responseText := formatResponse(resp)
	if responseText == "" {
		log.Error("empty response from gemini", "model", g.model)
		return nil, apperrors.NewAppError(apperrors.TypeAI, "empty response from AI", nil)
	}

	ticket := ai.ParseTicketResponse(responseText)

	log.Info("ticket draft generated via gemini",
		"title", ticket.Title,
		"description_length", len(ticket.Description))

	return ticket, nil
}

func generateConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:        float32Ptr(0.3),
		MaxOutputTokens:    int32(1500),
		ResponseMIMEType: "application/json",
		ResponseSchema:   getTicketSchema(),
	}
}

func float32Ptr(f float32) *float32 {
	return &f
}

func formatResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				sb.WriteString(part.Text)
			}
		}
	}
	return sb.String()
}
