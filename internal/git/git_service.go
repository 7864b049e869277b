package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	apperrors "github.com/Gyeom/jira-automation/internal/errors"
	"github.com/Gyeom/jira-automation/internal/models"
)

// Record and field separators used with git's pretty format so commit
// bodies with newlines survive parsing.
const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

type GitService struct{}

func NewGitService() *GitService {
	return &GitService{}
}

// IsRepository reports whether the working directory is inside a git
// work tree.
func (s *GitService) IsRepository(ctx context.Context) bool {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--is-inside-work-tree")
	output, err := cmd.Output()
	return err == nil && strings.TrimSpace(string(output)) == "true"
}

// GetChangedFiles collects every uncommitted change (staged, unstaged and
// untracked) with full before/after content. The before side comes from
// HEAD; a file new to the repository has no before content, a deleted file
// no after content.
func (s *GitService) GetChangedFiles(ctx context.Context) ([]models.FileChange, error) {
	if !s.IsRepository(ctx) {
		return nil, apperrors.ErrNotInGitRepo
	}

	cmd := exec.CommandContext(ctx, "git", "status", "--porcelain")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("error reading git status: %w", err)
	}

	var changes []models.FileChange
	for _, line := range strings.Split(string(output), "\n") {
		if len(line) <= 3 {
			continue
		}
		path := strings.TrimSpace(line[3:])
		// Renames are reported as "old -> new"; the new path is the one
		// with content.
		if idx := strings.Index(path, " -> "); idx >= 0 {
			path = path[idx+4:]
		}
		if path == "" {
			continue
		}

		changes = append(changes, models.FileChange{
			Path:   path,
			Before: s.contentAtHead(ctx, path),
			After:  readFileOrEmpty(path),
		})
	}

	if len(changes) == 0 {
		return nil, apperrors.ErrNoChanges
	}
	return changes, nil
}

// contentAtHead reads the committed version of a file. Files unknown to
// HEAD (new or untracked) yield empty content.
func (s *GitService) contentAtHead(ctx context.Context, path string) string {
	cmd := exec.CommandContext(ctx, "git", "show", "HEAD:"+path)
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return string(output)
}

func readFileOrEmpty(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(content)
}

// GetCurrentBranch returns the checked-out branch name.
func (s *GitService) GetCurrentBranch(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--abbrev-ref", "HEAD")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("error reading current branch: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// GetRecentCommits reads up to limit commits, newest first, with full
// message bodies and the files each commit touched.
func (s *GitService) GetRecentCommits(ctx context.Context, limit int) ([]models.CommitMeta, error) {
	if !s.IsRepository(ctx) {
		return nil, apperrors.ErrNotInGitRepo
	}

	format := strings.Join([]string{"%h", "%an", "%at", "%B"}, fieldSep) + recordSep
	cmd := exec.CommandContext(ctx, "git", "log", "-n", strconv.Itoa(limit), "--pretty=format:"+format)
	output, err := cmd.Output()
	if err != nil {
		return nil, apperrors.ErrGetCommits.WithError(err)
	}

	var commits []models.CommitMeta
	for _, record := range strings.Split(string(output), recordSep) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}
		fields := strings.SplitN(record, fieldSep, 4)
		if len(fields) != 4 {
			continue
		}

		timestamp, _ := strconv.ParseInt(fields[2], 10, 64)
		commit := models.CommitMeta{
			Hash:      fields[0],
			Author:    fields[1],
			Timestamp: timestamp,
			Message:   strings.TrimSpace(fields[3]),
		}

		files, err := s.commitFiles(ctx, commit.Hash)
		if err == nil {
			commit.FilesChanged = files
		}
		commits = append(commits, commit)
	}
	return commits, nil
}

func (s *GitService) commitFiles(ctx context.Context, hash string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "git", "show", "--name-only", "--pretty=format:", hash)
	output, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	var files []string
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// RecentCommitInfos returns the lightweight commit view diff summaries use.
func (s *GitService) RecentCommitInfos(ctx context.Context, limit int) ([]models.CommitInfo, error) {
	commits, err := s.GetRecentCommits(ctx, limit)
	if err != nil {
		return nil, err
	}

	infos := make([]models.CommitInfo, 0, len(commits))
	for _, c := range commits {
		message := c.Message
		if idx := strings.Index(message, "\n"); idx >= 0 {
			message = message[:idx]
		}
		infos = append(infos, models.CommitInfo{
			Hash:    c.Hash,
			Message: message,
			Author:  c.Author,
		})
	}
	return infos, nil
}
