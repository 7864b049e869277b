package ai

import (
	"context"

	"github.com/Gyeom/jira-automation/internal/models"
)

// TicketContentGenerator defines the service that drafts a ticket from a
// change summary and its diff.
type TicketContentGenerator interface {
	// GenerateTicket generates a ticket title and description in the
	// requested output language.
	GenerateTicket(ctx context.Context, summary, diffContent string, lang models.OutputLanguage) (*models.GeneratedTicket, error)
}
