package jira

import (
	"encoding/json"
	"testing"

	"github.com/Gyeom/jira-automation/internal/config"
	"github.com/Gyeom/jira-automation/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFieldConfig() *config.JiraConfig {
	return &config.JiraConfig{
		EpicLinkFieldID:    "customfield_10014",
		SprintFieldID:      "customfield_10020",
		StoryPointsFieldID: "customfield_10016",
		StartDateFieldID:   "customfield_10015",
	}
}

func marshalFields(t *testing.T, request issueRequest) map[string]any {
	t.Helper()
	data, err := json.Marshal(request)
	require.NoError(t, err)

	var decoded struct {
		Fields map[string]any `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	return decoded.Fields
}

func TestBuildCreateRequest_MinimalTicketOmitsOptionalFields(t *testing.T) {
	request := BuildCreateRequest(models.Ticket{
		ProjectKey: "ENG",
		Summary:    "Add login",
		IssueType:  "Task",
	}, models.TicketMetadata{}, testFieldConfig())

	fields := marshalFields(t, request)

	assert.Equal(t, map[string]any{"key": "ENG"}, fields["project"])
	assert.Equal(t, "Add login", fields["summary"])
	assert.Equal(t, map[string]any{"name": "Task"}, fields["issuetype"])

	for _, absent := range []string{
		"description", "assignee", "reporter", "priority", "parent",
		"labels", "components", "timetracking", "duedate",
		"customfield_10014", "customfield_10020", "customfield_10016", "customfield_10015",
	} {
		_, ok := fields[absent]
		assert.False(t, ok, "field %s must be absent, not null", absent)
	}
}

func TestBuildCreateRequest_FullMetadata(t *testing.T) {
	request := BuildCreateRequest(models.Ticket{
		ProjectKey:  "ENG",
		Summary:     "Add export",
		Description: "## What\nCSV export",
		IssueType:   "Story",
	}, models.TicketMetadata{
		PriorityID:        "2",
		AssigneeAccountID: "acc-1",
		ReporterAccountID: "acc-2",
		EpicKey:           "ENG-10",
		SprintID:          42,
		Labels:            []string{"backend"},
		ComponentIDs:      []string{"900"},
		StoryPoints:       5,
		HasStoryPoints:    true,
		TimeTracking:      &models.TimeTracking{OriginalEstimate: "3h"},
		StartDate:         "2026-01-05",
		DueDate:           "2026-01-20",
	}, testFieldConfig())

	fields := marshalFields(t, request)

	assert.Equal(t, map[string]any{"id": "2"}, fields["priority"])
	assert.Equal(t, map[string]any{"accountId": "acc-1"}, fields["assignee"])
	assert.Equal(t, map[string]any{"accountId": "acc-2"}, fields["reporter"])
	assert.Equal(t, []any{"backend"}, fields["labels"])
	assert.Equal(t, []any{map[string]any{"id": "900"}}, fields["components"])
	assert.Equal(t, map[string]any{"originalEstimate": "3h"}, fields["timetracking"])
	assert.Equal(t, "2026-01-20", fields["duedate"])

	assert.Equal(t, "ENG-10", fields["customfield_10014"])
	assert.Equal(t, float64(42), fields["customfield_10020"])
	assert.Equal(t, float64(5), fields["customfield_10016"])
	assert.Equal(t, "2026-01-05", fields["customfield_10015"])

	description, ok := fields["description"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "doc", description["type"])
}

func TestBuildCreateRequest_ParentReferenceForSubtasks(t *testing.T) {
	request := BuildCreateRequest(models.Ticket{
		ProjectKey: "ENG",
		Summary:    "Child work",
		IssueType:  "Subtask",
	}, models.TicketMetadata{ParentKey: "ENG-7"}, testFieldConfig())

	fields := marshalFields(t, request)
	assert.Equal(t, map[string]any{"key": "ENG-7"}, fields["parent"])
}

func TestBuildCreateRequest_ZeroStoryPointsSentWhenFlagged(t *testing.T) {
	request := BuildCreateRequest(models.Ticket{
		ProjectKey: "ENG",
		Summary:    "Spike",
		IssueType:  "Task",
	}, models.TicketMetadata{StoryPoints: 0, HasStoryPoints: true}, testFieldConfig())

	fields := marshalFields(t, request)
	assert.Equal(t, float64(0), fields["customfield_10016"])
}
