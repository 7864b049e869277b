package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Gyeom/jira-automation/internal/models"
)

// maxDiffChars caps the diff handed to the model so the prompt stays within
// token limits; anything beyond it is cut and marked as truncated.
const maxDiffChars = 3000

const fallbackTitle = "Code Changes"

// BuildTicketPrompt renders the shared prompt used by every provider. The
// response contract (a JSON object with title and description) is part of the
// prompt so providers without structured output still answer parseably.
func BuildTicketPrompt(summary, diffContent string, lang models.OutputLanguage) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Given the following code changes, generate a Jira ticket in %s.\n\n", lang.DisplayName))
	sb.WriteString(summary)
	sb.WriteString("\n\nDetailed Changes:\n")
	sb.WriteString(TruncateDiff(diffContent))
	sb.WriteString("\n\nPlease generate:\n")
	sb.WriteString(fmt.Sprintf("1. A concise Jira ticket title (max 100 characters, in %s)\n", lang.DisplayName))
	sb.WriteString("   - Should clearly describe what was changed\n")
	sb.WriteString("   - Format: [Category] Brief description\n")
	sb.WriteString("   - Example: [Feature] Implement user authentication\n\n")
	sb.WriteString(fmt.Sprintf("2. A detailed description (in %s) with the following sections:\n", lang.DisplayName))
	sb.WriteString("   - **What was changed**: Specific changes made to the code\n")
	sb.WriteString("   - **Why it was changed**: Reasoning and motivation behind the changes\n")
	sb.WriteString("   - **Impact**: Potential effects on the system, dependencies, or users\n")
	sb.WriteString("   - **Technical details**: Any important implementation notes\n\n")
	sb.WriteString("Format your response EXACTLY as JSON:\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"title\": \"your title here\",\n")
	sb.WriteString("  \"description\": \"## What was changed\\n...\\n\\n## Why it was changed\\n...\\n\\n## Impact\\n...\\n\\n## Technical details\\n...\"\n")
	sb.WriteString("}\n\n")
	sb.WriteString("Important:\n")
	sb.WriteString(fmt.Sprintf("- Use %s for all text\n", lang.DisplayName))
	sb.WriteString("- Keep the title under 100 characters\n")
	sb.WriteString("- Use markdown formatting in the description\n")
	sb.WriteString("- Be specific and concise\n")

	return sb.String()
}

// TruncateDiff cuts an oversized diff at the character cap.
func TruncateDiff(diff string) string {
	if len(diff) <= maxDiffChars {
		return diff
	}
	return diff[:maxDiffChars] + "\n... (truncated)"
}

// ParseTicketResponse extracts the ticket draft out of a model response.
// Models occasionally wrap the JSON in prose or fences, so the parser scans
// for the outermost object first. It never fails: an unparseable response
// becomes a draft with the raw content as its description so the user can
// still edit it into shape.
func ParseTicketResponse(content string) *models.GeneratedTicket {
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return &models.GeneratedTicket{Title: fallbackTitle, Description: content}
	}

	var draft struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &draft); err != nil {
		return &models.GeneratedTicket{Title: fallbackTitle, Description: content}
	}

	ticket := &models.GeneratedTicket{
		Title:       strings.TrimSpace(draft.Title),
		Description: strings.TrimSpace(draft.Description),
	}
	if ticket.Title == "" {
		ticket.Title = fallbackTitle
	}
	if ticket.Description == "" {
		ticket.Description = content
	}
	return ticket
}
