package jira

import (
	"github.com/Gyeom/jira-automation/internal/config"
	"github.com/Gyeom/jira-automation/internal/models"
)

// BuildCreateRequest assembles a full issue-creation request from the
// required ticket fields plus optional metadata. Absent metadata fields are
// left out of the payload entirely. Which custom field carries the epic
// link, sprint, story points and start date is instance-specific and comes
// from configuration.
func BuildCreateRequest(ticket models.Ticket, meta models.TicketMetadata, cfg *config.JiraConfig) issueRequest {
	fields := issueFields{
		Project:   projectRef{Key: ticket.ProjectKey},
		Summary:   ticket.Summary,
		IssueType: issueTypeRef{Name: ticket.IssueType},
	}

	if ticket.Description != "" {
		fields.Description = MarkdownToADF(ticket.Description)
	}
	if meta.AssigneeAccountID != "" {
		fields.Assignee = &userRef{AccountID: meta.AssigneeAccountID}
	}
	if meta.ReporterAccountID != "" {
		fields.Reporter = &userRef{AccountID: meta.ReporterAccountID}
	}
	if meta.PriorityID != "" {
		fields.Priority = &priorityRef{ID: meta.PriorityID}
	}
	if meta.ParentKey != "" {
		fields.Parent = &parentRef{Key: meta.ParentKey}
	}
	if len(meta.Labels) > 0 {
		fields.Labels = meta.Labels
	}
	for _, id := range meta.ComponentIDs {
		fields.Components = append(fields.Components, componentRef{ID: id})
	}
	if meta.TimeTracking != nil {
		fields.TimeTrack = &timeTracking{
			OriginalEstimate:  meta.TimeTracking.OriginalEstimate,
			RemainingEstimate: meta.TimeTracking.RemainingEstimate,
		}
	}
	if meta.DueDate != "" {
		fields.DueDate = meta.DueDate
	}

	custom := make(map[string]any)
	if meta.EpicKey != "" {
		custom[cfg.EpicLinkFieldID] = meta.EpicKey
	}
	if meta.SprintID != 0 {
		custom[cfg.SprintFieldID] = meta.SprintID
	}
	if meta.HasStoryPoints {
		custom[cfg.StoryPointsFieldID] = meta.StoryPoints
	}
	if meta.StartDate != "" {
		custom[cfg.StartDateFieldID] = meta.StartDate
	}
	if len(custom) > 0 {
		fields.custom = custom
	}

	return issueRequest{Fields: fields}
}
