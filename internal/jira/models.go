package jira

import "encoding/json"

// ADFDoc is an Atlassian Document Format document, the structured rich-text
// body Jira Cloud expects for descriptions.
type ADFDoc struct {
	Type    string    `json:"type"`
	Version int       `json:"version"`
	Content []ADFNode `json:"content"`
}

// ADFNode is one node of an ADF document.
type ADFNode struct {
	Type    string         `json:"type"`
	Text    string         `json:"text,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []ADFNode      `json:"content,omitempty"`
}

type (
	projectRef struct {
		Key string `json:"key"`
	}

	issueTypeRef struct {
		Name string `json:"name"`
	}

	priorityRef struct {
		ID string `json:"id"`
	}

	userRef struct {
		AccountID string `json:"accountId"`
	}

	parentRef struct {
		Key string `json:"key"`
	}

	componentRef struct {
		ID string `json:"id"`
	}

	timeTracking struct {
		OriginalEstimate  string `json:"originalEstimate,omitempty"`
		RemainingEstimate string `json:"remainingEstimate,omitempty"`
	}

	// issueFields holds the fixed creation fields. Optional fields are
	// pointers so absent values stay out of the serialized request; the
	// tracker treats an explicit null differently from an absent field.
	issueFields struct {
		Project     projectRef     `json:"project"`
		Summary     string         `json:"summary"`
		Description *ADFDoc        `json:"description,omitempty"`
		IssueType   issueTypeRef   `json:"issuetype"`
		Assignee    *userRef       `json:"assignee,omitempty"`
		Reporter    *userRef       `json:"reporter,omitempty"`
		Priority    *priorityRef   `json:"priority,omitempty"`
		Parent      *parentRef     `json:"parent,omitempty"`
		Labels      []string       `json:"labels,omitempty"`
		Components  []componentRef `json:"components,omitempty"`
		TimeTrack   *timeTracking  `json:"timetracking,omitempty"`
		DueDate     string         `json:"duedate,omitempty"`

		// Instance-specific custom fields (epic link, sprint, story
		// points, start date) merged in by MarshalJSON.
		custom map[string]any
	}

	issueRequest struct {
		Fields issueFields `json:"fields"`
	}
)

// MarshalJSON merges the configured custom fields into the fixed field set.
func (f issueFields) MarshalJSON() ([]byte, error) {
	type plain issueFields
	data, err := json.Marshal(plain(f))
	if err != nil {
		return nil, err
	}
	if len(f.custom) == 0 {
		return data, nil
	}

	var merged map[string]any
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for id, value := range f.custom {
		merged[id] = value
	}
	return json.Marshal(merged)
}

type (
	createdIssueResponse struct {
		ID   string `json:"id"`
		Key  string `json:"key"`
		Self string `json:"self"`
	}

	apiErrorResponse struct {
		ErrorMessages []string          `json:"errorMessages"`
		Errors        map[string]string `json:"errors"`
	}

	projectResponse struct {
		ID             string `json:"id"`
		Key            string `json:"key"`
		Name           string `json:"name"`
		ProjectTypeKey string `json:"projectTypeKey"`
	}

	projectSearchResponse struct {
		Values []projectResponse `json:"values"`
	}

	issueTypeResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Subtask     bool   `json:"subtask"`
	}

	projectDetailResponse struct {
		IssueTypes []issueTypeResponse `json:"issueTypes"`
		Components []componentResponse `json:"components"`
	}

	priorityResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	createMetaResponse struct {
		Projects []struct {
			IssueTypes []struct {
				Fields map[string]struct {
					AllowedValues []priorityResponse `json:"allowedValues"`
				} `json:"fields"`
			} `json:"issuetypes"`
		} `json:"projects"`
	}

	boardResponse struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Type string `json:"type"`
	}

	boardListResponse struct {
		Values []boardResponse `json:"values"`
	}

	epicResponse struct {
		ID      int64  `json:"id"`
		Key     string `json:"key"`
		Name    string `json:"name"`
		Summary string `json:"summary"`
		Done    bool   `json:"done"`
	}

	epicListResponse struct {
		Values []epicResponse `json:"values"`
	}

	sprintResponse struct {
		ID        int64  `json:"id"`
		Name      string `json:"name"`
		State     string `json:"state"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
		Goal      string `json:"goal"`
	}

	sprintListResponse struct {
		Values []sprintResponse `json:"values"`
	}

	componentResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	userResponse struct {
		AccountID    string `json:"accountId"`
		DisplayName  string `json:"displayName"`
		EmailAddress string `json:"emailAddress"`
		Active       bool   `json:"active"`
	}

	issueLinkTypeResponse struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Inward  string `json:"inward"`
		Outward string `json:"outward"`
	}

	issueLinkTypeListResponse struct {
		IssueLinkTypes []issueLinkTypeResponse `json:"issueLinkTypes"`
	}

	searchIssueFields struct {
		Summary string `json:"summary"`
		Status  struct {
			Name string `json:"name"`
		} `json:"status"`
		IssueType struct {
			Name string `json:"name"`
		} `json:"issuetype"`
		Project struct {
			Key string `json:"key"`
		} `json:"project"`
		Labels  []string `json:"labels"`
		Created string   `json:"created"`
	}

	searchIssue struct {
		ID     string            `json:"id"`
		Key    string            `json:"key"`
		Fields searchIssueFields `json:"fields"`
	}

	searchResponse struct {
		Issues []searchIssue `json:"issues"`
	}
)
