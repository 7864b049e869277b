package suggest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Gyeom/jira-automation/internal/models"
	"github.com/Gyeom/jira-automation/internal/templates"
)

// Confidence values are fixed per rule. They express how much the rule's
// author trusts the rule, not a computed probability.
const (
	confidencePrefix     = 0.9
	confidenceTest       = 0.75
	confidenceDocs       = 0.65
	confidenceMarker     = 0.85
	confidenceMissing    = 0.7
	confidenceConfig     = 0.6
	confidenceMigration  = 0.8
	confidenceUI         = 0.65
	confidenceTemplate   = 0.95
)

// commitPrefix maps a conventional-commit prefix to a task type label.
// Order matters: suggestions come out in table order.
type commitPrefix struct {
	prefix   string
	taskType string
}

var commitPrefixes = []commitPrefix{
	{"feat:", "New feature"},
	{"fix:", "Bug fix"},
	{"test:", "Add tests"},
	{"docs:", "Documentation update"},
	{"refactor:", "Code refactoring"},
	{"style:", "Code style"},
	{"perf:", "Performance improvement"},
	{"chore:", "Build/config change"},
}

var markerPattern = regexp.MustCompile(`(?i)(TODO|FIXME|HACK|NOTE):\s*(.+)`)

// Engine derives subtask suggestions from commit metadata using a fixed rule
// table plus the user's active templates. It calls no network services.
type Engine struct {
	store *templates.Store
}

func NewEngine(store *templates.Store) *Engine {
	return &Engine{store: store}
}

// AnalyzeCommits analyzes each commit independently.
func (e *Engine) AnalyzeCommits(commits []models.CommitMeta) []models.CommitAnalysisResult {
	results := make([]models.CommitAnalysisResult, 0, len(commits))
	for _, commit := range commits {
		results = append(results, e.AnalyzeCommit(commit))
	}
	return results
}

// AnalyzeCommit runs the three analyzers in order (commit message, file
// patterns, templates) and deduplicates by exact title, keeping the first
// occurrence.
func (e *Engine) AnalyzeCommit(commit models.CommitMeta) models.CommitAnalysisResult {
	var suggestions []models.SubtaskSuggestion
	suggestions = append(suggestions, analyzeMessage(commit.Message)...)
	suggestions = append(suggestions, analyzeFilePatterns(commit.FilesChanged)...)
	suggestions = append(suggestions, e.matchTemplates(commit.Message)...)

	return models.CommitAnalysisResult{
		CommitHash:        commit.Hash,
		Message:           commit.Message,
		Author:            commit.Author,
		Timestamp:         commit.Timestamp,
		FilesChanged:      commit.FilesChanged,
		SuggestedSubtasks: dedupeByTitle(suggestions),
	}
}

func analyzeMessage(message string) []models.SubtaskSuggestion {
	var suggestions []models.SubtaskSuggestion

	lowered := strings.ToLower(message)
	for _, entry := range commitPrefixes {
		if !strings.HasPrefix(lowered, entry.prefix) {
			continue
		}
		title := strings.TrimSpace(message[len(entry.prefix):])
		suggestions = append(suggestions, models.SubtaskSuggestion{
			Title:       fmt.Sprintf("[%s] %s", entry.taskType, title),
			Description: fmt.Sprintf("Commit message: %s", message),
			Confidence:  confidencePrefix,
			Reason:      fmt.Sprintf("Based on commit type '%s'", entry.prefix),
			BasedOn:     models.SourceCommitMessage,
		})

		switch entry.prefix {
		case "feat:":
			suggestions = append(suggestions, testSuggestion(title, false), docsSuggestion(title))
		case "fix:":
			suggestions = append(suggestions, testSuggestion(title, true))
		}
	}

	for _, match := range markerPattern.FindAllStringSubmatch(message, -1) {
		markerType := match[1]
		content := match[2]
		suggestions = append(suggestions, models.SubtaskSuggestion{
			Title:       fmt.Sprintf("[%s] %s", markerType, content),
			Description: fmt.Sprintf("%s item found in the commit message", markerType),
			Confidence:  confidenceMarker,
			Reason:      fmt.Sprintf("%s marker found", markerType),
			BasedOn:     models.SourceCommitMessage,
		})
	}

	return suggestions
}

func analyzeFilePatterns(changedFiles []string) []models.SubtaskSuggestion {
	var suggestions []models.SubtaskSuggestion

	var hasTestFiles, hasConfigFiles, hasMigrationFiles, hasUIFiles bool
	for _, file := range changedFiles {
		lowered := strings.ToLower(file)
		if strings.Contains(lowered, "test") {
			hasTestFiles = true
		}
		if strings.HasSuffix(file, ".yml") || strings.HasSuffix(file, ".yaml") ||
			strings.HasSuffix(file, ".properties") || strings.HasSuffix(file, ".json") {
			hasConfigFiles = true
		}
		if strings.Contains(lowered, "migration") {
			hasMigrationFiles = true
		}
		if strings.HasSuffix(file, ".html") || strings.HasSuffix(file, ".css") ||
			strings.HasSuffix(file, ".tsx") || strings.HasSuffix(file, ".jsx") {
			hasUIFiles = true
		}
	}

	if !hasTestFiles && len(changedFiles) > 2 {
		suggestions = append(suggestions, models.SubtaskSuggestion{
			Title:       "Write test code",
			Description: fmt.Sprintf("Add tests for the %d changed files", len(changedFiles)),
			Confidence:  confidenceMissing,
			Reason:      "Large change without test files",
			BasedOn:     models.SourceFilePattern,
		})
	}
	if hasConfigFiles {
		suggestions = append(suggestions, models.SubtaskSuggestion{
			Title:       "Validate and document configuration",
			Description: "Verify the changed configuration files and update related docs",
			Confidence:  confidenceConfig,
			Reason:      "Configuration file changes detected",
			BasedOn:     models.SourceFilePattern,
		})
	}
	if hasMigrationFiles {
		suggestions = append(suggestions, models.SubtaskSuggestion{
			Title:       "Test database migration",
			Description: "Run the migration scripts and test rollback",
			Confidence:  confidenceMigration,
			Reason:      "Migration file changes detected",
			BasedOn:     models.SourceFilePattern,
		})
	}
	if hasUIFiles {
		suggestions = append(suggestions, models.SubtaskSuggestion{
			Title:       "Verify UI/UX",
			Description: "Visual verification and accessibility testing of changed UI components",
			Confidence:  confidenceUI,
			Reason:      "UI file changes detected",
			BasedOn:     models.SourceFilePattern,
		})
	}

	return suggestions
}

func (e *Engine) matchTemplates(message string) []models.SubtaskSuggestion {
	var suggestions []models.SubtaskSuggestion
	for _, template := range e.store.Active() {
		if template.Pattern == "" {
			continue
		}
		pattern, err := regexp.Compile(template.Pattern)
		if err != nil || !pattern.MatchString(message) {
			continue
		}
		for _, def := range template.Subtasks {
			description := def.Description
			if description == "" {
				description = "Template-based subtask"
			}
			suggestions = append(suggestions, models.SubtaskSuggestion{
				Title:       def.Title,
				Description: description,
				Confidence:  confidenceTemplate,
				Reason:      fmt.Sprintf("Matched template '%s'", template.Name),
				BasedOn:     models.SourceTemplate,
			})
		}
	}
	return suggestions
}

func testSuggestion(feature string, isBugFix bool) models.SubtaskSuggestion {
	if isBugFix {
		return models.SubtaskSuggestion{
			Title:       fmt.Sprintf("Add regression test: %s", feature),
			Description: "Add test cases that prevent the bug from coming back",
			Confidence:  confidenceTest,
			Reason:      "Tests needed for the change",
			BasedOn:     models.SourceCodeAnalysis,
		}
	}
	return models.SubtaskSuggestion{
		Title:       fmt.Sprintf("Write tests: %s", feature),
		Description: "Write unit and integration tests for the new feature",
		Confidence:  confidenceTest,
		Reason:      "Tests needed for the change",
		BasedOn:     models.SourceCodeAnalysis,
	}
}

func docsSuggestion(feature string) models.SubtaskSuggestion {
	return models.SubtaskSuggestion{
		Title:       fmt.Sprintf("Update docs: %s", feature),
		Description: "Update the API docs, user guide and README",
		Confidence:  confidenceDocs,
		Reason:      "Documentation needed for the new feature",
		BasedOn:     models.SourceCodeAnalysis,
	}
}

func dedupeByTitle(suggestions []models.SubtaskSuggestion) []models.SubtaskSuggestion {
	seen := make(map[string]struct{}, len(suggestions))
	out := make([]models.SubtaskSuggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if _, ok := seen[s.Title]; ok {
			continue
		}
		seen[s.Title] = struct{}{}
		out = append(out, s)
	}
	return out
}
