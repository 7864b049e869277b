package models

// SuggestionSource indicates which analyzer produced a suggestion.
type SuggestionSource string

const (
	SourceCommitMessage SuggestionSource = "COMMIT_MESSAGE"
	SourceFilePattern   SuggestionSource = "FILE_PATTERN"
	SourceCodeAnalysis  SuggestionSource = "CODE_ANALYSIS"
	SourceTemplate      SuggestionSource = "TEMPLATE"
	SourceAISuggestion  SuggestionSource = "AI_SUGGESTION"
)

// AssigneeType controls how a subtask definition resolves its assignee.
type AssigneeType string

const (
	AssigneeInherit     AssigneeType = "INHERIT"
	AssigneeCurrentUser AssigneeType = "CURRENT_USER"
	AssigneeUnassigned  AssigneeType = "UNASSIGNED"
	AssigneeSpecific    AssigneeType = "SPECIFIC"
)

type (
	// SubtaskSuggestion is one proposed subtask. Confidence is a fixed
	// rule-author trust value in [0,1], not a computed probability.
	SubtaskSuggestion struct {
		Title       string
		Description string
		Confidence  float64
		Reason      string
		BasedOn     SuggestionSource
	}

	// CommitAnalysisResult holds the deduplicated suggestions for one commit.
	CommitAnalysisResult struct {
		CommitHash        string
		Message           string
		Author            string
		Timestamp         int64
		FilesChanged      []string
		SuggestedSubtasks []SubtaskSuggestion
	}

	// SubtaskDefinition is one entry of a template.
	SubtaskDefinition struct {
		Title          string       `json:"title"`
		Description    string       `json:"description,omitempty"`
		Assignee       AssigneeType `json:"assignee"`
		EstimatedHours float64      `json:"estimated_hours,omitempty"`
		Labels         []string     `json:"labels,omitempty"`
		Priority       string       `json:"priority,omitempty"`
		Order          int          `json:"order"`
	}

	// SubtaskTemplate bundles subtask definitions behind an optional commit
	// message pattern and an optional project scope.
	SubtaskTemplate struct {
		ID          string              `json:"id"`
		Name        string              `json:"name"`
		Description string              `json:"description"`
		ProjectKey  string              `json:"project_key,omitempty"`
		IssueType   string              `json:"issue_type"`
		Pattern     string              `json:"pattern,omitempty"`
		Subtasks    []SubtaskDefinition `json:"subtasks"`
		AutoApply   bool                `json:"auto_apply"`
	}

	// SubtaskSpec is the data for one subtask to create.
	SubtaskSpec struct {
		Title          string
		Description    string
		IssueType      string
		Assignee       string
		EstimatedHours float64
		Labels         []string
		Priority       string
		Components     []string
	}

	// CreatedSubtask identifies a subtask that was created in the tracker.
	CreatedSubtask struct {
		Key   string
		Title string
		URL   string
	}

	// SubtaskCreationError captures a single failed item of a batch.
	SubtaskCreationError struct {
		SubtaskTitle string
		ErrorMessage string
		ErrorCode    string
	}

	// BatchSubtaskResult aggregates a batch creation.
	// TotalRequested == SuccessCount+FailedCount and
	// SuccessCount == len(CreatedSubtasks) always hold.
	BatchSubtaskResult struct {
		ParentIssueKey  string
		TotalRequested  int
		SuccessCount    int
		FailedCount     int
		CreatedSubtasks []CreatedSubtask
		Errors          []SubtaskCreationError
	}
)
