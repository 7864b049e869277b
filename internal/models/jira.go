package models

import "fmt"

type (
	// Project is one Jira project as listed by the discovery endpoints.
	Project struct {
		ID             string
		Key            string
		Name           string
		ProjectTypeKey string
	}

	// IssueType is one issue type available in a project.
	IssueType struct {
		ID          string
		Name        string
		Description string
		Subtask     bool
	}

	// Priority is one priority value, project-scoped or global.
	Priority struct {
		ID          string
		Name        string
		Description string
	}

	// Epic is one epic reachable from a project's board or via search.
	Epic struct {
		ID      string
		Key     string
		Name    string
		Summary string
		Done    bool
	}

	// Sprint is one sprint of a project's board.
	Sprint struct {
		ID        int64
		Name      string
		State     string
		StartDate string
		EndDate   string
		Goal      string
	}

	// Board associates a project with its sprint and epic views.
	Board struct {
		ID   int64
		Name string
		Type string
	}

	// Component is one project component.
	Component struct {
		ID          string
		Name        string
		Description string
	}

	// User is a Jira user as returned by the user search endpoints.
	User struct {
		AccountID    string
		DisplayName  string
		EmailAddress string
		Active       bool
	}

	// IssueLinkType describes one available link relation.
	IssueLinkType struct {
		ID      string
		Name    string
		Inward  string
		Outward string
	}

	// ParentIssue is the validation result used to gate subtask creation.
	ParentIssue struct {
		Key        string
		ID         string
		Summary    string
		ProjectKey string
		IssueType  string
		Status     string
		EpicKey    string
	}

	// RecentIssue is one issue of the "recently created" view.
	RecentIssue struct {
		Key       string
		Summary   string
		Status    string
		Created   string
		IssueType string
		URL       string
	}

	// CreatedIssue is the tracker's answer to a successful creation.
	CreatedIssue struct {
		ID   string
		Key  string
		Self string
	}

	// TimeTracking holds Jira duration strings such as "3h" or "1d 2h".
	TimeTracking struct {
		OriginalEstimate  string
		RemainingEstimate string
	}

	// TicketMetadata carries every optional field of a creation request.
	// Empty values are omitted from the serialized payload entirely.
	TicketMetadata struct {
		PriorityID        string
		AssigneeAccountID string
		ReporterAccountID string
		ParentKey         string
		EpicKey           string
		SprintID          int64
		Labels            []string
		ComponentIDs      []string
		StoryPoints       float64
		HasStoryPoints    bool
		TimeTracking      *TimeTracking
		StartDate         string
		DueDate           string
	}

	// Ticket is the required part of a creation request.
	Ticket struct {
		ProjectKey  string
		Summary     string
		Description string
		IssueType   string
	}
)

// DisplayText renders a user the way selection lists show them.
func (u User) DisplayText() string {
	if u.EmailAddress != "" {
		return fmt.Sprintf("%s (%s)", u.DisplayName, u.EmailAddress)
	}
	return u.DisplayName
}

func (e Epic) String() string {
	return fmt.Sprintf("%s - %s", e.Key, e.Name)
}
