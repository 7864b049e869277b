package diff

import (
	"fmt"
	"strings"

	"github.com/Gyeom/jira-automation/internal/models"
)

// Analyzer turns a set of before/after file contents into aggregate change
// statistics and a rendered diff block. It is a pure function of its inputs.
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

type fileStats struct {
	added   int
	deleted int
	content string
}

// Analyze walks every change and accumulates counts plus the rendered diff.
// Absent before/after content is treated as an empty file, never an error.
func (a *Analyzer) Analyze(changes []models.FileChange, branch string, commits []models.CommitInfo) models.DiffAnalysisResult {
	var linesAdded, linesDeleted int
	fileList := make([]string, 0, len(changes))
	var diffContent strings.Builder

	for _, change := range changes {
		fileList = append(fileList, change.Path)

		stats := computeFileDiff(change.Before, change.After)
		linesAdded += stats.added
		linesDeleted += stats.deleted

		diffContent.WriteString("File: " + change.Path + "\n")
		diffContent.WriteString(stats.content)
		diffContent.WriteString("\n---\n\n")
	}

	return models.DiffAnalysisResult{
		FilesChanged: len(fileList),
		LinesAdded:   linesAdded,
		LinesDeleted: linesDeleted,
		FileList:     fileList,
		DiffContent:  diffContent.String(),
		BranchName:   branch,
		Commits:      commits,
	}
}

// computeFileDiff compares both sides position by position. This is not an
// LCS diff: a line inserted at the top shifts the alignment and every later
// line is counted as changed. The misclassification is a known fidelity
// limitation kept on purpose; see the analyzer tests that pin it down.
func computeFileDiff(before, after string) fileStats {
	beforeLines := strings.Split(before, "\n")
	afterLines := strings.Split(after, "\n")

	var added, deleted int
	var content strings.Builder

	maxLines := len(beforeLines)
	if len(afterLines) > maxLines {
		maxLines = len(afterLines)
	}

	for i := 0; i < maxLines; i++ {
		beforeLine, hasBefore := lineAt(beforeLines, i)
		afterLine, hasAfter := lineAt(afterLines, i)

		switch {
		case !hasBefore && hasAfter:
			added++
			content.WriteString("+ " + afterLine + "\n")
		case hasBefore && !hasAfter:
			deleted++
			content.WriteString("- " + beforeLine + "\n")
		case beforeLine != afterLine:
			deleted++
			added++
			content.WriteString("- " + beforeLine + "\n")
			content.WriteString("+ " + afterLine + "\n")
		default:
			content.WriteString("  " + beforeLine + "\n")
		}
	}

	return fileStats{added: added, deleted: deleted, content: content.String()}
}

func lineAt(lines []string, i int) (string, bool) {
	if i < len(lines) {
		return lines[i], true
	}
	return "", false
}

// FormatSummary renders the markdown summary block handed to the AI prompt
// and shown to the user before creation.
func FormatSummary(result models.DiffAnalysisResult) string {
	var sb strings.Builder

	sb.WriteString("## Code Changes Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Files Changed**: %d\n", result.FilesChanged))
	sb.WriteString(fmt.Sprintf("- **Lines Added**: +%d\n", result.LinesAdded))
	sb.WriteString(fmt.Sprintf("- **Lines Deleted**: -%d\n", result.LinesDeleted))

	if result.BranchName != "" {
		sb.WriteString(fmt.Sprintf("- **Branch**: %s\n", result.BranchName))
	}

	sb.WriteString("\n### Modified Files\n")
	for _, file := range result.FileList {
		sb.WriteString(fmt.Sprintf("- `%s`\n", file))
	}

	if len(result.Commits) > 0 {
		sb.WriteString("\n### Recent Commits\n")
		for _, commit := range result.Commits {
			hash := commit.Hash
			if len(hash) > 7 {
				hash = hash[:7]
			}
			sb.WriteString(fmt.Sprintf("- %s: %s\n", hash, commit.Message))
		}
	}

	return sb.String()
}
