package jira

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func matchPath(path string) any {
	return mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.Path == path
	})
}

func TestGetProjects_SortedByKey(t *testing.T) {
	mockClient := new(MockHTTPClient)
	client := newTestClient(mockClient)

	mockClient.On("Do", matchPath("/rest/api/3/project")).Return(jsonResponse(t, http.StatusOK, []map[string]string{
		{"id": "2", "key": "OPS", "name": "Operations"},
		{"id": "1", "key": "ENG", "name": "Engineering"},
	}), nil).Once()

	projects, err := client.GetProjects(context.Background())

	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "ENG", projects[0].Key)
	assert.Equal(t, "OPS", projects[1].Key)
}

func TestGetIssueTypes_IncludesSubtaskTypes(t *testing.T) {
	mockClient := new(MockHTTPClient)
	client := newTestClient(mockClient)

	mockClient.On("Do", matchPath("/rest/api/3/project/ENG")).Return(jsonResponse(t, http.StatusOK, map[string]any{
		"issueTypes": []map[string]any{
			{"id": "1", "name": "Task", "subtask": false},
			{"id": "2", "name": "Subtask", "subtask": true},
		},
	}), nil).Once()

	issueTypes, err := client.GetIssueTypes(context.Background(), "ENG")

	require.NoError(t, err)
	require.Len(t, issueTypes, 2)
	assert.True(t, issueTypes[1].Subtask)
}

func TestGetProjectPriorities_UsesCreateMetaAllowedValues(t *testing.T) {
	mockClient := new(MockHTTPClient)
	client := newTestClient(mockClient)

	mockClient.On("Do", matchPath("/rest/api/3/issue/createmeta")).Return(jsonResponse(t, http.StatusOK, map[string]any{
		"projects": []map[string]any{{
			"issuetypes": []map[string]any{{
				"fields": map[string]any{
					"priority": map[string]any{
						"allowedValues": []map[string]string{
							{"id": "1", "name": "Highest"},
							{"id": "3", "name": "Medium"},
						},
					},
				},
			}},
		}},
	}), nil).Once()

	priorities, err := client.GetProjectPriorities(context.Background(), "ENG")

	require.NoError(t, err)
	require.Len(t, priorities, 2)
	assert.Equal(t, "Highest", priorities[0].Name)
	mockClient.AssertNotCalled(t, "Do", matchPath("/rest/api/3/priority"))
}

func TestGetProjectPriorities_EmptyMetaFallsBackToGlobal(t *testing.T) {
	mockClient := new(MockHTTPClient)
	client := newTestClient(mockClient)

	mockClient.On("Do", matchPath("/rest/api/3/issue/createmeta")).Return(jsonResponse(t, http.StatusOK, map[string]any{
		"projects": []map[string]any{},
	}), nil).Once()
	mockClient.On("Do", matchPath("/rest/api/3/priority")).Return(jsonResponse(t, http.StatusOK, []map[string]string{
		{"id": "1", "name": "High"},
		{"id": "2", "name": "Low"},
	}), nil).Once()

	priorities, err := client.GetProjectPriorities(context.Background(), "ENG")

	require.NoError(t, err)
	require.Len(t, priorities, 2)
	mockClient.AssertExpectations(t)
}

func TestGetProjectPriorities_MetaFailureFallsBackToGlobal(t *testing.T) {
	mockClient := new(MockHTTPClient)
	client := newTestClient(mockClient)

	mockClient.On("Do", matchPath("/rest/api/3/issue/createmeta")).Return(jsonResponse(t, http.StatusForbidden, nil), nil).Once()
	mockClient.On("Do", matchPath("/rest/api/3/priority")).Return(jsonResponse(t, http.StatusOK, []map[string]string{
		{"id": "1", "name": "High"},
	}), nil).Once()

	priorities, err := client.GetProjectPriorities(context.Background(), "ENG")

	require.NoError(t, err)
	require.Len(t, priorities, 1)
}

func TestGetEpics_BoardRoute(t *testing.T) {
	mockClient := new(MockHTTPClient)
	client := newTestClient(mockClient)

	mockClient.On("Do", matchPath("/rest/agile/1.0/board")).Return(jsonResponse(t, http.StatusOK, map[string]any{
		"values": []map[string]any{{"id": 7, "name": "ENG board", "type": "scrum"}},
	}), nil).Once()
	mockClient.On("Do", matchPath("/rest/agile/1.0/board/7/epic")).Return(jsonResponse(t, http.StatusOK, map[string]any{
		"values": []map[string]any{
			{"id": 100, "key": "ENG-10", "name": "Payments", "summary": "Payment epic", "done": false},
		},
	}), nil).Once()

	epics, err := client.GetEpics(context.Background(), "ENG")

	require.NoError(t, err)
	require.Len(t, epics, 1)
	assert.Equal(t, "ENG-10", epics[0].Key)
	assert.Equal(t, "Payments", epics[0].Name)
}

func TestGetEpics_NoBoardFallsBackToSearch(t *testing.T) {
	mockClient := new(MockHTTPClient)
	client := newTestClient(mockClient)

	mockClient.On("Do", matchPath("/rest/agile/1.0/board")).Return(jsonResponse(t, http.StatusOK, map[string]any{
		"values": []map[string]any{},
	}), nil).Once()
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.Path == "/rest/api/3/search" &&
			strings.Contains(req.URL.Query().Get("jql"), "issuetype = Epic")
	})).Return(jsonResponse(t, http.StatusOK, map[string]any{
		"issues": []map[string]any{
			{"id": "200", "key": "ENG-20", "fields": map[string]any{"summary": "Search epic"}},
		},
	}), nil).Once()

	epics, err := client.GetEpics(context.Background(), "ENG")

	require.NoError(t, err)
	require.Len(t, epics, 1)
	assert.Equal(t, "ENG-20", epics[0].Key)
	assert.Equal(t, "Search epic", epics[0].Name)
}

func TestGetEpics_SearchFailureYieldsEmptyListNotError(t *testing.T) {
	mockClient := new(MockHTTPClient)
	client := newTestClient(mockClient)

	mockClient.On("Do", matchPath("/rest/agile/1.0/board")).Return(jsonResponse(t, http.StatusNotFound, nil), nil).Once()
	mockClient.On("Do", matchPath("/rest/api/3/search")).Return(jsonResponse(t, http.StatusBadRequest, nil), nil).Once()

	epics, err := client.GetEpics(context.Background(), "ENG")

	require.NoError(t, err)
	assert.Empty(t, epics)
}

func TestGetSprints_ActiveFirstThenFutureAlphabetical(t *testing.T) {
	mockClient := new(MockHTTPClient)
	client := newTestClient(mockClient)

	mockClient.On("Do", matchPath("/rest/agile/1.0/board")).Return(jsonResponse(t, http.StatusOK, map[string]any{
		"values": []map[string]any{{"id": 7, "name": "ENG board", "type": "scrum"}},
	}), nil).Once()
	mockClient.On("Do", matchPath("/rest/agile/1.0/board/7/sprint")).Return(jsonResponse(t, http.StatusOK, map[string]any{
		"values": []map[string]any{
			{"id": 3, "name": "Sprint C", "state": "future"},
			{"id": 1, "name": "Sprint B", "state": "active"},
			{"id": 2, "name": "Sprint A", "state": "future"},
		},
	}), nil).Once()

	sprints, err := client.GetSprints(context.Background(), "ENG")

	require.NoError(t, err)
	require.Len(t, sprints, 3)
	assert.Equal(t, "Sprint B", sprints[0].Name)
	assert.Equal(t, "Sprint A", sprints[1].Name)
	assert.Equal(t, "Sprint C", sprints[2].Name)
}

func TestGetSprints_NoBoardYieldsEmptyList(t *testing.T) {
	mockClient := new(MockHTTPClient)
	client := newTestClient(mockClient)

	mockClient.On("Do", matchPath("/rest/agile/1.0/board")).Return(jsonResponse(t, http.StatusOK, map[string]any{
		"values": []map[string]any{},
	}), nil).Once()

	sprints, err := client.GetSprints(context.Background(), "ENG")

	require.NoError(t, err)
	assert.Empty(t, sprints)
}

func TestGetComponents_FailureYieldsEmptyList(t *testing.T) {
	mockClient := new(MockHTTPClient)
	client := newTestClient(mockClient)

	mockClient.On("Do", matchPath("/rest/api/3/project/ENG/components")).Return(jsonResponse(t, http.StatusForbidden, nil), nil).Once()

	components, err := client.GetComponents(context.Background(), "ENG")

	require.NoError(t, err)
	assert.Empty(t, components)
}

func TestGetLabels_UnionsAndSortsSampledLabels(t *testing.T) {
	mockClient := new(MockHTTPClient)
	client := newTestClient(mockClient)

	mockClient.On("Do", matchPath("/rest/api/3/search")).Return(jsonResponse(t, http.StatusOK, map[string]any{
		"issues": []map[string]any{
			{"key": "ENG-1", "fields": map[string]any{"labels": []string{"backend", "auth"}}},
			{"key": "ENG-2", "fields": map[string]any{"labels": []string{"auth", "api"}}},
		},
	}), nil).Once()

	labels, err := client.GetLabels(context.Background(), "ENG")

	require.NoError(t, err)
	assert.Equal(t, []string{"api", "auth", "backend"}, labels)
}

func TestValidateParentIssue_ExtractsGatingFields(t *testing.T) {
	mockClient := new(MockHTTPClient)
	client := newTestClient(mockClient)

	mockClient.On("Do", matchPath("/rest/api/3/issue/ENG-7")).Return(jsonResponse(t, http.StatusOK, map[string]any{
		"id":  "10007",
		"key": "ENG-7",
		"fields": map[string]any{
			"summary":           "Parent story",
			"project":           map[string]string{"key": "ENG"},
			"issuetype":         map[string]string{"name": "Story"},
			"status":            map[string]string{"name": "In Progress"},
			"customfield_10014": "ENG-2",
		},
	}), nil).Once()

	parent, err := client.ValidateParentIssue(context.Background(), "ENG-7")

	require.NoError(t, err)
	assert.Equal(t, "ENG-7", parent.Key)
	assert.Equal(t, "ENG", parent.ProjectKey)
	assert.Equal(t, "Story", parent.IssueType)
	assert.Equal(t, "In Progress", parent.Status)
	assert.Equal(t, "ENG-2", parent.EpicKey)
}

func TestValidateParentIssue_NotFound(t *testing.T) {
	mockClient := new(MockHTTPClient)
	client := newTestClient(mockClient)

	mockClient.On("Do", matchPath("/rest/api/3/issue/ENG-404")).Return(jsonResponse(t, http.StatusNotFound, map[string]any{
		"errorMessages": []string{"Issue does not exist"},
	}), nil).Once()

	_, err := client.ValidateParentIssue(context.Background(), "ENG-404")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parent issue not validated")
}

func TestRecentIssues_BuildsBrowseURLs(t *testing.T) {
	mockClient := new(MockHTTPClient)
	client := newTestClient(mockClient)

	mockClient.On("Do", matchPath("/rest/api/3/search")).Return(jsonResponse(t, http.StatusOK, map[string]any{
		"issues": []map[string]any{
			{"key": "ENG-3", "fields": map[string]any{
				"summary":   "Recent work",
				"status":    map[string]string{"name": "Done"},
				"issuetype": map[string]string{"name": "Task"},
				"created":   "2026-08-01T10:00:00.000+0000",
			}},
		},
	}), nil).Once()

	recent, err := client.RecentIssues(context.Background(), "ENG", 10)

	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "https://example.atlassian.net/browse/ENG-3", recent[0].URL)
	assert.Equal(t, "Done", recent[0].Status)
}

func TestGetIssueLinkTypes(t *testing.T) {
	mockClient := new(MockHTTPClient)
	client := newTestClient(mockClient)

	mockClient.On("Do", matchPath("/rest/api/3/issueLinkType")).Return(jsonResponse(t, http.StatusOK, map[string]any{
		"issueLinkTypes": []map[string]string{
			{"id": "1", "name": "Blocks", "inward": "is blocked by", "outward": "blocks"},
		},
	}), nil).Once()

	linkTypes, err := client.GetIssueLinkTypes(context.Background())

	require.NoError(t, err)
	require.Len(t, linkTypes, 1)
	assert.Equal(t, "Blocks", linkTypes[0].Name)
}

func TestSearchAssignableUsers_ScopedToProject(t *testing.T) {
	mockClient := new(MockHTTPClient)
	client := newTestClient(mockClient)

	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.Path == "/rest/api/3/user/assignable/search" &&
			req.URL.Query().Get("project") == "ENG"
	})).Return(jsonResponse(t, http.StatusOK, []map[string]any{
		{"accountId": "acc-1", "displayName": "Dana Dev", "active": true},
	}), nil).Once()

	users, err := client.SearchAssignableUsers(context.Background(), "ENG", "dana")

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Dana Dev", users[0].DisplayName)
}
