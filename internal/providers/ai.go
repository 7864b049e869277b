package providers

import (
	"context"
	"strings"
	"time"

	"github.com/Gyeom/jira-automation/internal/ai"
	"github.com/Gyeom/jira-automation/internal/ai/anthropic"
	"github.com/Gyeom/jira-automation/internal/ai/gemini"
	"github.com/Gyeom/jira-automation/internal/ai/openai"
	"github.com/Gyeom/jira-automation/internal/config"
	apperrors "github.com/Gyeom/jira-automation/internal/errors"
	"github.com/Gyeom/jira-automation/internal/httpclient"
)

// NewTicketContentGenerator creates a TicketContentGenerator based on the
// configured provider.
func NewTicketContentGenerator(ctx context.Context, cfg *config.Config) (ai.TicketContentGenerator, error) {
	provider := strings.ToLower(cfg.AIConfig.Provider)
	if provider == "" {
		return nil, apperrors.ErrAIProviderUnsupported.WithContext("provider", "(none)")
	}

	switch provider {
	case "gemini":
		return gemini.NewGenerator(ctx, cfg)
	case "openai":
		timeout := time.Duration(cfg.AIConfig.TimeoutSeconds) * time.Second
		return openai.NewGenerator(cfg, httpclient.New(timeout))
	case "anthropic":
		timeout := time.Duration(cfg.AIConfig.TimeoutSeconds) * time.Second
		return anthropic.NewGenerator(cfg, httpclient.New(timeout))
	default:
		return nil, apperrors.ErrAIProviderUnsupported.WithContext("provider", cfg.AIConfig.Provider)
	}
}
