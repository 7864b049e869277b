package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeTracker       ErrorType = "TRACKER"
	TypeAI            ErrorType = "AI"
	TypeGit           ErrorType = "GIT"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if status, ok := e.Context["status"].(string); ok && status != "" {
			msg += fmt.Sprintf(" - %s", status)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Configuration errors
var (
	ErrJiraNotConfigured = NewAppError(TypeConfiguration, "Jira credentials not configured", nil).
				WithSuggestion("Set base URL, email and API token: jira-automation config init")

	ErrProjectKeyMissing = NewAppError(TypeConfiguration, "Project key is required", nil).
				WithSuggestion("Pass --project or set a default: jira-automation config set default-project <KEY>")

	ErrIssueTypeMissing = NewAppError(TypeConfiguration, "Issue type is required", nil).
				WithSuggestion("Pass --type or set a default: jira-automation config set default-issue-type <name>")

	ErrAIKeyMissing = NewAppError(TypeConfiguration, "AI API key is missing", nil).
			WithSuggestion("Configure your provider key: jira-automation config init")

	ErrConfigMissing = NewAppError(TypeConfiguration, "Configuration is missing", nil).
				WithSuggestion("Initialize configuration: jira-automation config init")
)

// Git errors
var (
	ErrNoChanges = NewAppError(TypeGit, "No uncommitted changes detected", nil).
			WithSuggestion("Modify some files first, or check the working tree: git status")

	ErrNotInGitRepo = NewAppError(TypeGit, "Not in a git repository", nil).
			WithSuggestion("Initialize a git repository: git init")

	ErrGetCommits = NewAppError(TypeGit, "Failed to read commits", nil).
			WithSuggestion("Make sure the repository has commits: git log --oneline")
)

// Tracker errors
var (
	ErrParentNotValidated = NewAppError(TypeTracker, "parent issue not validated", nil).
				WithSuggestion("Validate the parent key before creating subtasks")

	ErrParentProjectMismatch = NewAppError(TypeTracker, "subtask project differs from parent project", nil).
					WithSuggestion("Subtasks must be created in the parent issue's project")

	ErrSubtaskTypeUnavailable = NewAppError(TypeTracker, "project has no subtask issue type", nil).
					WithSuggestion("Enable subtasks in the Jira project configuration")
)

// AI errors
var (
	ErrAIGeneration = NewAppError(TypeAI, "AI generation failed", nil).
			WithSuggestion("Try again or check your API key configuration")

	ErrAIProviderUnsupported = NewAppError(TypeAI, "AI provider not supported", nil).
					WithSuggestion("Supported providers: gemini, openai, anthropic")
)
