package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	apperrors "github.com/Gyeom/jira-automation/internal/errors"
	"github.com/Gyeom/jira-automation/internal/logger"
	"github.com/Gyeom/jira-automation/internal/models"
)

// GetProjects lists up to 50 projects, most recently used first, then sorts
// them by key for stable selection lists.
func (c *Client) GetProjects(ctx context.Context) ([]models.Project, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	var response []projectResponse
	endpoint := fmt.Sprintf("%s/rest/api/3/project?orderBy=-lastIssueUpdatedTime&maxResults=50", c.baseURL())
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}

	projects := make([]models.Project, 0, len(response))
	for _, p := range response {
		projects = append(projects, models.Project{
			ID:             p.ID,
			Key:            p.Key,
			Name:           p.Name,
			ProjectTypeKey: p.ProjectTypeKey,
		})
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Key < projects[j].Key })
	return projects, nil
}

// SearchProjects finds projects by key or name fragment.
func (c *Client) SearchProjects(ctx context.Context, query string) ([]models.Project, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	var response projectSearchResponse
	endpoint := fmt.Sprintf("%s/rest/api/3/project/search?query=%s&maxResults=20", c.baseURL(), url.QueryEscape(query))
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to search projects: %w", err)
	}

	projects := make([]models.Project, 0, len(response.Values))
	for _, p := range response.Values {
		projects = append(projects, models.Project{
			ID:             p.ID,
			Key:            p.Key,
			Name:           p.Name,
			ProjectTypeKey: p.ProjectTypeKey,
		})
	}
	return projects, nil
}

// GetIssueTypes lists the issue types available in a project, subtask types
// included.
func (c *Client) GetIssueTypes(ctx context.Context, projectKey string) ([]models.IssueType, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	var response projectDetailResponse
	endpoint := fmt.Sprintf("%s/rest/api/3/project/%s", c.baseURL(), projectKey)
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch issue types: %w", err)
	}

	issueTypes := make([]models.IssueType, 0, len(response.IssueTypes))
	for _, it := range response.IssueTypes {
		issueTypes = append(issueTypes, models.IssueType{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Subtask:     it.Subtask,
		})
	}
	return issueTypes, nil
}

// GetProjectPriorities resolves the priorities allowed in a project via the
// creation-metadata endpoint, reading the first issue type's allowed values.
// An empty or failed project-scoped lookup falls back to the global list.
func (c *Client) GetProjectPriorities(ctx context.Context, projectKey string) ([]models.Priority, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	var response createMetaResponse
	endpoint := fmt.Sprintf("%s/rest/api/3/issue/createmeta?projectKeys=%s&expand=projects.issuetypes.fields", c.baseURL(), url.QueryEscape(projectKey))
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		logger.Debug(ctx, "project-scoped priority lookup failed, using global priorities", "project", projectKey)
		return c.GetPriorities(ctx)
	}

	if len(response.Projects) > 0 && len(response.Projects[0].IssueTypes) > 0 {
		priorityField := response.Projects[0].IssueTypes[0].Fields["priority"]
		if len(priorityField.AllowedValues) > 0 {
			priorities := make([]models.Priority, 0, len(priorityField.AllowedValues))
			for _, p := range priorityField.AllowedValues {
				priorities = append(priorities, models.Priority{
					ID:          p.ID,
					Name:        p.Name,
					Description: p.Description,
				})
			}
			return priorities, nil
		}
	}

	logger.Debug(ctx, "no project-scoped priorities found, using global priorities", "project", projectKey)
	return c.GetPriorities(ctx)
}

// GetPriorities lists the instance's global priorities.
func (c *Client) GetPriorities(ctx context.Context) ([]models.Priority, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	var response []priorityResponse
	endpoint := fmt.Sprintf("%s/rest/api/3/priority", c.baseURL())
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch priorities: %w", err)
	}

	priorities := make([]models.Priority, 0, len(response))
	for _, p := range response {
		priorities = append(priorities, models.Priority{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
		})
	}
	return priorities, nil
}

// GetBoardForProject returns the first agile board of a project, or nil when
// the project has none.
func (c *Client) GetBoardForProject(ctx context.Context, projectKey string) (*models.Board, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	var response boardListResponse
	endpoint := fmt.Sprintf("%s/rest/agile/1.0/board?projectKeyOrId=%s", c.baseURL(), url.QueryEscape(projectKey))
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch boards: %w", err)
	}
	if len(response.Values) == 0 {
		return nil, nil
	}

	board := response.Values[0]
	return &models.Board{ID: board.ID, Name: board.Name, Type: board.Type}, nil
}

// GetEpics resolves a project's epics through its board; when no board
// exists or the board route fails, it falls back to a JQL search for Epic
// issues, newest first, capped at 100. "No epics" is never an error.
func (c *Client) GetEpics(ctx context.Context, projectKey string) ([]models.Epic, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	board, err := c.GetBoardForProject(ctx, projectKey)
	if err == nil && board != nil {
		var response epicListResponse
		endpoint := fmt.Sprintf("%s/rest/agile/1.0/board/%d/epic?maxResults=100", c.baseURL(), board.ID)
		if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &response); err == nil {
			epics := make([]models.Epic, 0, len(response.Values))
			for _, e := range response.Values {
				epics = append(epics, models.Epic{
					ID:      fmt.Sprintf("%d", e.ID),
					Key:     e.Key,
					Name:    e.Name,
					Summary: e.Summary,
					Done:    e.Done,
				})
			}
			return epics, nil
		}
		logger.Debug(ctx, "board epic lookup failed, falling back to search", "project", projectKey)
	}

	return c.searchEpics(ctx, projectKey)
}

func (c *Client) searchEpics(ctx context.Context, projectKey string) ([]models.Epic, error) {
	jql := fmt.Sprintf("project = %s AND issuetype = Epic ORDER BY created DESC", projectKey)
	issues, err := c.searchIssues(ctx, jql, 100, []string{"summary", "status"})
	if err != nil {
		logger.Debug(ctx, "epic search failed, returning no epics", "project", projectKey)
		return []models.Epic{}, nil
	}

	epics := make([]models.Epic, 0, len(issues))
	for _, issue := range issues {
		epics = append(epics, models.Epic{
			ID:      issue.ID,
			Key:     issue.Key,
			Name:    issue.Fields.Summary,
			Summary: issue.Fields.Summary,
		})
	}
	return epics, nil
}

// GetSprints lists a board's open sprints: active and future states only,
// active sprints first, then future, alphabetically within each group. A
// project without a board has no sprints, which is not an error.
func (c *Client) GetSprints(ctx context.Context, projectKey string) ([]models.Sprint, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	board, err := c.GetBoardForProject(ctx, projectKey)
	if err != nil || board == nil {
		return []models.Sprint{}, nil
	}

	var response sprintListResponse
	endpoint := fmt.Sprintf("%s/rest/agile/1.0/board/%d/sprint?state=active,future", c.baseURL(), board.ID)
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		logger.Debug(ctx, "sprint lookup failed, returning no sprints", "project", projectKey)
		return []models.Sprint{}, nil
	}

	sprints := make([]models.Sprint, 0, len(response.Values))
	for _, s := range response.Values {
		sprints = append(sprints, models.Sprint{
			ID:        s.ID,
			Name:      s.Name,
			State:     s.State,
			StartDate: s.StartDate,
			EndDate:   s.EndDate,
			Goal:      s.Goal,
		})
	}

	sort.SliceStable(sprints, func(i, j int) bool {
		iActive := strings.EqualFold(sprints[i].State, "active")
		jActive := strings.EqualFold(sprints[j].State, "active")
		if iActive != jActive {
			return iActive
		}
		return sprints[i].Name < sprints[j].Name
	})
	return sprints, nil
}

// GetComponents lists a project's components, best effort.
func (c *Client) GetComponents(ctx context.Context, projectKey string) ([]models.Component, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	var response []componentResponse
	endpoint := fmt.Sprintf("%s/rest/api/3/project/%s/components", c.baseURL(), projectKey)
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		logger.Debug(ctx, "component lookup failed, returning none", "project", projectKey)
		return []models.Component{}, nil
	}

	components := make([]models.Component, 0, len(response))
	for _, comp := range response {
		components = append(components, models.Component{
			ID:          comp.ID,
			Name:        comp.Name,
			Description: comp.Description,
		})
	}
	return components, nil
}

// GetLabels derives label candidates for a project. The tracker has no
// dedicated label-discovery endpoint, so this samples up to 100 of the
// project's most recently created issues and unions their labels. Best
// effort: discovery failure yields an empty list.
func (c *Client) GetLabels(ctx context.Context, projectKey string) ([]string, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	jql := fmt.Sprintf("project = %s ORDER BY created DESC", projectKey)
	issues, err := c.searchIssues(ctx, jql, 100, []string{"labels"})
	if err != nil {
		logger.Debug(ctx, "label discovery failed, returning none", "project", projectKey)
		return []string{}, nil
	}

	seen := make(map[string]struct{})
	for _, issue := range issues {
		for _, label := range issue.Fields.Labels {
			seen[label] = struct{}{}
		}
	}
	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels, nil
}

// SearchAssignableUsers finds users assignable to issues of a project.
func (c *Client) SearchAssignableUsers(ctx context.Context, projectKey, query string) ([]models.User, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/rest/api/3/user/assignable/search?project=%s&query=%s&maxResults=50",
		c.baseURL(), url.QueryEscape(projectKey), url.QueryEscape(query))
	return c.fetchUsers(ctx, endpoint)
}

// SearchUsers finds users instance-wide, without assignability filtering.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/rest/api/3/user/search?query=%s&maxResults=50", c.baseURL(), url.QueryEscape(query))
	return c.fetchUsers(ctx, endpoint)
}

func (c *Client) fetchUsers(ctx context.Context, endpoint string) ([]models.User, error) {
	var response []userResponse
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	users := make([]models.User, 0, len(response))
	for _, u := range response {
		users = append(users, models.User{
			AccountID:    u.AccountID,
			DisplayName:  u.DisplayName,
			EmailAddress: u.EmailAddress,
			Active:       u.Active,
		})
	}
	return users, nil
}

// GetCurrentUser fetches the authenticated user's profile.
func (c *Client) GetCurrentUser(ctx context.Context) (*models.User, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	var response userResponse
	endpoint := fmt.Sprintf("%s/rest/api/3/myself", c.baseURL())
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch current user: %w", err)
	}

	return &models.User{
		AccountID:    response.AccountID,
		DisplayName:  response.DisplayName,
		EmailAddress: response.EmailAddress,
		Active:       response.Active,
	}, nil
}

// GetIssueLinkTypes lists the link relations available on the instance.
func (c *Client) GetIssueLinkTypes(ctx context.Context) ([]models.IssueLinkType, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	var response issueLinkTypeListResponse
	endpoint := fmt.Sprintf("%s/rest/api/3/issueLinkType", c.baseURL())
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch issue link types: %w", err)
	}

	linkTypes := make([]models.IssueLinkType, 0, len(response.IssueLinkTypes))
	for _, lt := range response.IssueLinkTypes {
		linkTypes = append(linkTypes, models.IssueLinkType{
			ID:      lt.ID,
			Name:    lt.Name,
			Inward:  lt.Inward,
			Outward: lt.Outward,
		})
	}
	return linkTypes, nil
}

// CreateIssueLink links two issues with the named relation.
func (c *Client) CreateIssueLink(ctx context.Context, linkType, inwardKey, outwardKey string) error {
	if err := c.checkCredentials(); err != nil {
		return err
	}

	body := map[string]any{
		"type":         map[string]string{"name": linkType},
		"inwardIssue":  map[string]string{"key": inwardKey},
		"outwardIssue": map[string]string{"key": outwardKey},
	}
	endpoint := fmt.Sprintf("%s/rest/api/3/issueLink", c.baseURL())
	if err := c.doJSON(ctx, http.MethodPost, endpoint, body, nil); err != nil {
		return fmt.Errorf("failed to link issues: %w", err)
	}
	return nil
}

// ValidateParentIssue fetches an issue and extracts the fields subtask
// creation is gated on, the epic link included when the configured custom
// field carries one.
func (c *Client) ValidateParentIssue(ctx context.Context, issueKey string) (*models.ParentIssue, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	var response struct {
		ID     string                     `json:"id"`
		Key    string                     `json:"key"`
		Fields map[string]json.RawMessage `json:"fields"`
	}
	endpoint := fmt.Sprintf("%s/rest/api/3/issue/%s", c.baseURL(), issueKey)
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, apperrors.ErrParentNotValidated.WithError(err).WithContext("issue", issueKey)
	}

	parent := &models.ParentIssue{
		Key: response.Key,
		ID:  response.ID,
	}
	if raw, ok := response.Fields["summary"]; ok {
		_ = json.Unmarshal(raw, &parent.Summary)
	}
	if raw, ok := response.Fields["project"]; ok {
		var project struct {
			Key string `json:"key"`
		}
		if err := json.Unmarshal(raw, &project); err == nil {
			parent.ProjectKey = project.Key
		}
	}
	if raw, ok := response.Fields["issuetype"]; ok {
		var issueType struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &issueType); err == nil {
			parent.IssueType = issueType.Name
		}
	}
	if raw, ok := response.Fields["status"]; ok {
		var status struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &status); err == nil {
			parent.Status = status.Name
		}
	}
	if raw, ok := response.Fields[c.cfg.EpicLinkFieldID]; ok {
		_ = json.Unmarshal(raw, &parent.EpicKey)
	}
	return parent, nil
}

// RecentIssues lists a project's most recently created issues.
func (c *Client) RecentIssues(ctx context.Context, projectKey string, limit int) ([]models.RecentIssue, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	jql := fmt.Sprintf("project = %s ORDER BY created DESC", projectKey)
	issues, err := c.searchIssues(ctx, jql, limit, []string{"summary", "status", "issuetype", "created"})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent issues: %w", err)
	}

	recent := make([]models.RecentIssue, 0, len(issues))
	for _, issue := range issues {
		recent = append(recent, models.RecentIssue{
			Key:       issue.Key,
			Summary:   issue.Fields.Summary,
			Status:    issue.Fields.Status.Name,
			Created:   issue.Fields.Created,
			IssueType: issue.Fields.IssueType.Name,
			URL:       c.BrowseURL(issue.Key),
		})
	}
	return recent, nil
}

// searchIssues runs a JQL query through the search endpoint, the universal
// fallback for epics, labels and recent-issue views.
func (c *Client) searchIssues(ctx context.Context, jql string, limit int, fields []string) ([]searchIssue, error) {
	endpoint := fmt.Sprintf("%s/rest/api/3/search?jql=%s&maxResults=%d&fields=%s",
		c.baseURL(), url.QueryEscape(jql), limit, strings.Join(fields, ","))

	var response searchResponse
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}
	return response.Issues, nil
}
