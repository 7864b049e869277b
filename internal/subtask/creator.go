package subtask

import (
	"context"
	"fmt"
	"math"
	"strings"

	apperrors "github.com/Gyeom/jira-automation/internal/errors"
	"github.com/Gyeom/jira-automation/internal/logger"
	"github.com/Gyeom/jira-automation/internal/models"
)

// TrackerClient is the slice of the tracker API batch creation needs.
type TrackerClient interface {
	CreateTicket(ctx context.Context, ticket models.Ticket, meta models.TicketMetadata) (*models.CreatedIssue, error)
	ValidateParentIssue(ctx context.Context, issueKey string) (*models.ParentIssue, error)
	GetIssueTypes(ctx context.Context, projectKey string) ([]models.IssueType, error)
	BrowseURL(issueKey string) string
}

// Creator files batches of subtasks under a parent issue. Items are
// submitted independently: one failure becomes a per-item error and the
// remaining items still run.
type Creator struct {
	client TrackerClient
}

func NewCreator(client TrackerClient) *Creator {
	return &Creator{client: client}
}

// CreateAll creates every spec under parentKey and reports exactly how many
// succeeded and failed. The subtask project is derived from the parent key's
// prefix, never selected independently. Only an infrastructure failure
// before any item is attempted surfaces as an overall error.
func (c *Creator) CreateAll(ctx context.Context, parentKey string, specs []models.SubtaskSpec) (*models.BatchSubtaskResult, error) {
	projectKey := projectKeyFromIssue(parentKey)

	issueType, err := c.subtaskIssueType(ctx, projectKey)
	if err != nil {
		return nil, err
	}

	result := &models.BatchSubtaskResult{
		ParentIssueKey: parentKey,
		TotalRequested: len(specs),
	}

	for _, spec := range specs {
		created, err := c.createOne(ctx, parentKey, projectKey, issueType, spec)
		if err != nil {
			logger.Warn(ctx, "subtask creation failed", "parent", parentKey, "title", spec.Title)
			result.FailedCount++
			result.Errors = append(result.Errors, models.SubtaskCreationError{
				SubtaskTitle: spec.Title,
				ErrorMessage: err.Error(),
			})
			continue
		}
		result.SuccessCount++
		result.CreatedSubtasks = append(result.CreatedSubtasks, *created)
	}

	logger.Info(ctx, "batch subtask creation finished",
		"parent", parentKey, "count", result.SuccessCount, "total", result.TotalRequested)
	return result, nil
}

func (c *Creator) createOne(ctx context.Context, parentKey, projectKey, issueType string, spec models.SubtaskSpec) (*models.CreatedSubtask, error) {
	ticket := models.Ticket{
		ProjectKey:  projectKey,
		Summary:     spec.Title,
		Description: spec.Description,
		IssueType:   issueType,
	}
	meta := models.TicketMetadata{
		ParentKey:         parentKey,
		AssigneeAccountID: spec.Assignee,
		PriorityID:        spec.Priority,
		Labels:            spec.Labels,
		ComponentIDs:      spec.Components,
	}
	if spec.EstimatedHours > 0 {
		meta.TimeTracking = &models.TimeTracking{
			OriginalEstimate: formatEstimate(spec.EstimatedHours),
		}
	}

	created, err := c.client.CreateTicket(ctx, ticket, meta)
	if err != nil {
		return nil, err
	}
	return &models.CreatedSubtask{
		Key:   created.Key,
		Title: spec.Title,
		URL:   c.client.BrowseURL(created.Key),
	}, nil
}

// subtaskIssueType finds the project's subtask issue type. Not finding one
// is an infrastructure-level failure: no item could possibly succeed.
func (c *Creator) subtaskIssueType(ctx context.Context, projectKey string) (string, error) {
	issueTypes, err := c.client.GetIssueTypes(ctx, projectKey)
	if err != nil {
		return "", err
	}
	for _, it := range issueTypes {
		if it.Subtask {
			return it.Name, nil
		}
	}
	return "", apperrors.ErrSubtaskTypeUnavailable.WithContext("project", projectKey)
}

// formatEstimate renders fractional hours in Jira duration syntax.
func formatEstimate(hours float64) string {
	if hours == math.Trunc(hours) {
		return fmt.Sprintf("%dh", int(hours))
	}
	return fmt.Sprintf("%dm", int(math.Round(hours*60)))
}

// ValidateParent checks the parent exists and returns its gating fields.
func (c *Creator) ValidateParent(ctx context.Context, parentKey string) (*models.ParentIssue, error) {
	return c.client.ValidateParentIssue(ctx, parentKey)
}

// projectKeyFromIssue derives the project from an issue key's prefix.
func projectKeyFromIssue(issueKey string) string {
	if idx := strings.Index(issueKey, "-"); idx > 0 {
		return issueKey[:idx]
	}
	return issueKey
}
