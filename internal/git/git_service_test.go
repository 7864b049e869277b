package git

import (
	"context"
	"os"
	"os/exec"
	"testing"

	apperrors "github.com/Gyeom/jira-automation/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() {
		if err := os.Chdir(originalDir); err != nil {
			t.Errorf("error restoring working directory: %v", err)
		}
	})

	for _, args := range [][]string{
		{"init"},
		{"config", "user.email", "test@example.com"},
		{"config", "user.name", "Test User"},
	} {
		cmd := exec.Command("git", args...)
		require.NoError(t, cmd.Run(), "git %v", args)
	}
	return tempDir
}

func commitFile(t *testing.T, path, content, message string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	require.NoError(t, exec.Command("git", "add", path).Run())
	require.NoError(t, exec.Command("git", "commit", "-m", message).Run())
}

func TestGetChangedFiles_ModifiedFileHasBothSides(t *testing.T) {
	setupTestRepo(t)
	service := NewGitService()

	commitFile(t, "main.go", "package main\n", "feat: initial")
	require.NoError(t, os.WriteFile("main.go", []byte("package main\n\nfunc main() {}\n"), 0644))

	changes, err := service.GetChangedFiles(context.Background())

	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "main.go", changes[0].Path)
	assert.Equal(t, "package main\n", changes[0].Before)
	assert.Contains(t, changes[0].After, "func main()")
}

func TestGetChangedFiles_UntrackedFileHasNoBeforeContent(t *testing.T) {
	setupTestRepo(t)
	service := NewGitService()

	commitFile(t, "base.txt", "base\n", "chore: base")
	require.NoError(t, os.WriteFile("fresh.txt", []byte("new content\n"), 0644))

	changes, err := service.GetChangedFiles(context.Background())

	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "fresh.txt", changes[0].Path)
	assert.Empty(t, changes[0].Before)
	assert.Equal(t, "new content\n", changes[0].After)
}

func TestGetChangedFiles_DeletedFileHasNoAfterContent(t *testing.T) {
	setupTestRepo(t)
	service := NewGitService()

	commitFile(t, "gone.txt", "old content\n", "chore: add file")
	require.NoError(t, os.Remove("gone.txt"))

	changes, err := service.GetChangedFiles(context.Background())

	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "old content\n", changes[0].Before)
	assert.Empty(t, changes[0].After)
}

func TestGetChangedFiles_CleanTreeReturnsNoChangesError(t *testing.T) {
	setupTestRepo(t)
	service := NewGitService()

	commitFile(t, "main.go", "package main\n", "feat: initial")

	_, err := service.GetChangedFiles(context.Background())

	require.ErrorIs(t, err, apperrors.ErrNoChanges)
}

func TestGetChangedFiles_OutsideRepository(t *testing.T) {
	tempDir := t.TempDir()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { _ = os.Chdir(originalDir) })

	service := NewGitService()
	_, err = service.GetChangedFiles(context.Background())

	require.Error(t, err)
}

func TestGetCurrentBranch(t *testing.T) {
	setupTestRepo(t)
	service := NewGitService()

	commitFile(t, "main.go", "package main\n", "feat: initial")
	require.NoError(t, exec.Command("git", "checkout", "-b", "feature/login").Run())

	branch, err := service.GetCurrentBranch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "feature/login", branch)
}

func TestGetRecentCommits_NewestFirstWithFiles(t *testing.T) {
	setupTestRepo(t)
	service := NewGitService()

	commitFile(t, "first.go", "package a\n", "feat: first change")
	commitFile(t, "second.go", "package b\n", "fix: second change\n\nTODO: clean this up")

	commits, err := service.GetRecentCommits(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, commits, 2)

	assert.Contains(t, commits[0].Message, "fix: second change")
	assert.Contains(t, commits[0].Message, "TODO: clean this up")
	assert.Equal(t, "Test User", commits[0].Author)
	assert.NotZero(t, commits[0].Timestamp)
	assert.Equal(t, []string{"second.go"}, commits[0].FilesChanged)

	assert.Equal(t, "feat: first change", commits[1].Message)
	assert.Equal(t, []string{"first.go"}, commits[1].FilesChanged)
}

func TestRecentCommitInfos_FirstLineOnly(t *testing.T) {
	setupTestRepo(t)
	service := NewGitService()

	commitFile(t, "main.go", "package main\n", "feat: subject line\n\nlong body text")

	infos, err := service.RecentCommitInfos(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "feat: subject line", infos[0].Message)
	assert.NotEmpty(t, infos[0].Hash)
}

func TestGetChangedFiles_RenameUsesNewPath(t *testing.T) {
	setupTestRepo(t)
	service := NewGitService()

	commitFile(t, "old_name.go", "package main\n", "feat: initial")
	require.NoError(t, exec.Command("git", "mv", "old_name.go", "new_name.go").Run())

	changes, err := service.GetChangedFiles(context.Background())

	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "new_name.go", changes[0].Path)
	assert.Equal(t, "package main\n", changes[0].After)
}
