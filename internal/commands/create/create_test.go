package create

import (
	"context"
	"errors"
	"testing"

	"github.com/Gyeom/jira-automation/internal/ai"
	appcfg "github.com/Gyeom/jira-automation/internal/config"
	apperrors "github.com/Gyeom/jira-automation/internal/errors"
	"github.com/Gyeom/jira-automation/internal/i18n"
	"github.com/Gyeom/jira-automation/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/urfave/cli/v3"
)

func setupCreateTest(t *testing.T) (*MockGitService, *MockTrackerService, *MockGenerator, *i18n.Translations, *appcfg.Config) {
	translations, err := i18n.NewTranslations("en", "")
	assert.NoError(t, err)

	cfg := &appcfg.Config{
		Language:       "en",
		OutputLanguage: "en",
		JiraConfig: appcfg.JiraConfig{
			DefaultProjectKey: "PROJ",
			DefaultIssueType:  "Task",
		},
		AIConfig: appcfg.AIConfig{
			Provider: "gemini",
		},
	}

	return new(MockGitService), new(MockTrackerService), new(MockGenerator), translations, cfg
}

func newTestFactory(git *MockGitService, tracker *MockTrackerService, generator *MockGenerator) *CreateCommandFactory {
	provider := func(ctx context.Context) (ai.TicketContentGenerator, error) {
		return generator, nil
	}
	return NewCreateCommandFactory(git, tracker, provider, nil)
}

func TestCreateAction(t *testing.T) {
	changes := []models.FileChange{
		{Path: "internal/auth/login.go", Before: "package auth\n", After: "package auth\n\nfunc Login() {}\n"},
	}

	t.Run("should stop after the preview on dry run", func(t *testing.T) {
		mockGit, mockTracker, mockGen, trans, cfg := setupCreateTest(t)
		factory := newTestFactory(mockGit, mockTracker, mockGen)
		cmd := factory.CreateCommand(trans, cfg)

		mockGit.On("GetChangedFiles", mock.Anything).Return(changes, nil)
		mockGit.On("GetCurrentBranch", mock.Anything).Return("feature/login", nil)
		mockGit.On("RecentCommitInfos", mock.Anything, 5).Return([]models.CommitInfo{}, nil)
		mockGen.On("GenerateTicket", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&models.GeneratedTicket{Title: "Add login flow", Description: "Adds the login entry point"}, nil)

		app := &cli.Command{Name: "test", Commands: []*cli.Command{cmd}}
		err := app.Run(context.Background(), []string{"test", "create", "--dry-run"})

		assert.NoError(t, err)
		mockGen.AssertExpectations(t)
		mockTracker.AssertNotCalled(t, "CreateTicket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should succeed without creating when there are no changes", func(t *testing.T) {
		mockGit, mockTracker, mockGen, trans, cfg := setupCreateTest(t)
		factory := newTestFactory(mockGit, mockTracker, mockGen)
		cmd := factory.CreateCommand(trans, cfg)

		mockGit.On("GetChangedFiles", mock.Anything).Return(nil, apperrors.ErrNoChanges)

		app := &cli.Command{Name: "test", Commands: []*cli.Command{cmd}}
		err := app.Run(context.Background(), []string{"test", "create"})

		assert.NoError(t, err)
		mockGen.AssertNotCalled(t, "GenerateTicket", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should surface generation errors", func(t *testing.T) {
		mockGit, mockTracker, mockGen, trans, cfg := setupCreateTest(t)
		factory := newTestFactory(mockGit, mockTracker, mockGen)
		cmd := factory.CreateCommand(trans, cfg)

		mockGit.On("GetChangedFiles", mock.Anything).Return(changes, nil)
		mockGit.On("GetCurrentBranch", mock.Anything).Return("main", nil)
		mockGit.On("RecentCommitInfos", mock.Anything, 5).Return([]models.CommitInfo{}, nil)
		mockGen.On("GenerateTicket", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrAIGeneration)

		app := &cli.Command{Name: "test", Commands: []*cli.Command{cmd}}
		err := app.Run(context.Background(), []string{"test", "create", "--dry-run"})

		assert.Error(t, err)
		mockTracker.AssertNotCalled(t, "CreateTicket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should pass the language flag to the generator", func(t *testing.T) {
		mockGit, mockTracker, mockGen, trans, cfg := setupCreateTest(t)
		factory := newTestFactory(mockGit, mockTracker, mockGen)
		cmd := factory.CreateCommand(trans, cfg)

		mockGit.On("GetChangedFiles", mock.Anything).Return(changes, nil)
		mockGit.On("GetCurrentBranch", mock.Anything).Return("main", nil)
		mockGit.On("RecentCommitInfos", mock.Anything, 5).Return([]models.CommitInfo{}, nil)
		mockGen.On("GenerateTicket", mock.Anything, mock.Anything, mock.Anything, mock.MatchedBy(func(lang models.OutputLanguage) bool {
			return lang.Code == "ko"
		})).Return(&models.GeneratedTicket{Title: "로그인 추가", Description: "설명"}, nil)

		app := &cli.Command{Name: "test", Commands: []*cli.Command{cmd}}
		err := app.Run(context.Background(), []string{"test", "create", "--dry-run", "--language", "ko"})

		assert.NoError(t, err)
		mockGen.AssertExpectations(t)
	})
}

// runBuildRequest drives buildRequest through a real flag parse so the tests
// exercise the same code path as a user invocation.
func runBuildRequest(t *testing.T, factory *CreateCommandFactory, cfg *appcfg.Config, args ...string) (models.Ticket, models.TicketMetadata, error) {
	t.Helper()

	translations, err := i18n.NewTranslations("en", "")
	assert.NoError(t, err)

	draft := &models.GeneratedTicket{Title: "Add login flow", Description: "Adds the login entry point"}

	var (
		ticket   models.Ticket
		meta     models.TicketMetadata
		buildErr error
	)
	cmd := &cli.Command{
		Name:  "build",
		Flags: factory.createFlags(translations),
		Action: func(ctx context.Context, command *cli.Command) error {
			ticket, meta, buildErr = factory.buildRequest(ctx, command, cfg, draft)
			return nil
		},
	}

	app := &cli.Command{Name: "test", Commands: []*cli.Command{cmd}}
	err = app.Run(context.Background(), append([]string{"test", "build"}, args...))
	assert.NoError(t, err)

	return ticket, meta, buildErr
}

func TestBuildRequest(t *testing.T) {
	t.Run("should fail without a project key", func(t *testing.T) {
		mockGit, mockTracker, mockGen, _, cfg := setupCreateTest(t)
		cfg.JiraConfig.DefaultProjectKey = ""
		factory := newTestFactory(mockGit, mockTracker, mockGen)

		_, _, err := runBuildRequest(t, factory, cfg)

		assert.True(t, errors.Is(err, apperrors.ErrProjectKeyMissing))
	})

	t.Run("should fall back to the configured project and issue type", func(t *testing.T) {
		mockGit, mockTracker, mockGen, _, cfg := setupCreateTest(t)
		factory := newTestFactory(mockGit, mockTracker, mockGen)

		ticket, _, err := runBuildRequest(t, factory, cfg)

		assert.NoError(t, err)
		assert.Equal(t, "PROJ", ticket.ProjectKey)
		assert.Equal(t, "Task", ticket.IssueType)
		assert.Equal(t, "Add login flow", ticket.Summary)
	})

	t.Run("should uppercase the project flag", func(t *testing.T) {
		mockGit, mockTracker, mockGen, _, cfg := setupCreateTest(t)
		factory := newTestFactory(mockGit, mockTracker, mockGen)

		ticket, _, err := runBuildRequest(t, factory, cfg, "--project", "ops")

		assert.NoError(t, err)
		assert.Equal(t, "OPS", ticket.ProjectKey)
	})

	t.Run("should resolve the subtask issue type when a parent is given", func(t *testing.T) {
		mockGit, mockTracker, mockGen, _, cfg := setupCreateTest(t)
		factory := newTestFactory(mockGit, mockTracker, mockGen)

		mockTracker.On("GetIssueTypes", mock.Anything, "PROJ").Return([]models.IssueType{
			{ID: "1", Name: "Task"},
			{ID: "5", Name: "Sub-task", Subtask: true},
		}, nil)

		ticket, meta, err := runBuildRequest(t, factory, cfg, "--parent", "PROJ-10")

		assert.NoError(t, err)
		assert.Equal(t, "Sub-task", ticket.IssueType)
		assert.Equal(t, "PROJ-10", meta.ParentKey)
	})

	t.Run("should fail when the project has no subtask type", func(t *testing.T) {
		mockGit, mockTracker, mockGen, _, cfg := setupCreateTest(t)
		factory := newTestFactory(mockGit, mockTracker, mockGen)

		mockTracker.On("GetIssueTypes", mock.Anything, "PROJ").Return([]models.IssueType{
			{ID: "1", Name: "Task"},
		}, nil)

		_, _, err := runBuildRequest(t, factory, cfg, "--parent", "PROJ-10")

		var appErr *apperrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.TypeTracker, appErr.Type)
		assert.Equal(t, "PROJ", appErr.Context["project"])
	})

	t.Run("should resolve priority names case-insensitively", func(t *testing.T) {
		mockGit, mockTracker, mockGen, _, cfg := setupCreateTest(t)
		factory := newTestFactory(mockGit, mockTracker, mockGen)

		mockTracker.On("GetProjectPriorities", mock.Anything, "PROJ").Return([]models.Priority{
			{ID: "1", Name: "Highest"},
			{ID: "2", Name: "High"},
		}, nil)

		_, meta, err := runBuildRequest(t, factory, cfg, "--priority", "high")

		assert.NoError(t, err)
		assert.Equal(t, "2", meta.PriorityID)
	})

	t.Run("should drop an unknown priority instead of failing", func(t *testing.T) {
		mockGit, mockTracker, mockGen, _, cfg := setupCreateTest(t)
		factory := newTestFactory(mockGit, mockTracker, mockGen)

		mockTracker.On("GetProjectPriorities", mock.Anything, "PROJ").Return([]models.Priority{
			{ID: "2", Name: "High"},
		}, nil)

		_, meta, err := runBuildRequest(t, factory, cfg, "--priority", "Blocker")

		assert.NoError(t, err)
		assert.Empty(t, meta.PriorityID)
	})

	t.Run("should assign the first matching user", func(t *testing.T) {
		mockGit, mockTracker, mockGen, _, cfg := setupCreateTest(t)
		factory := newTestFactory(mockGit, mockTracker, mockGen)

		mockTracker.On("SearchAssignableUsers", mock.Anything, "PROJ", "kim").Return([]models.User{
			{AccountID: "acc-123", DisplayName: "Kim"},
			{AccountID: "acc-456", DisplayName: "Kimberly"},
		}, nil)

		_, meta, err := runBuildRequest(t, factory, cfg, "--assignee", "kim")

		assert.NoError(t, err)
		assert.Equal(t, "acc-123", meta.AssigneeAccountID)
	})

	t.Run("should create unassigned when no user matches", func(t *testing.T) {
		mockGit, mockTracker, mockGen, _, cfg := setupCreateTest(t)
		factory := newTestFactory(mockGit, mockTracker, mockGen)

		mockTracker.On("SearchAssignableUsers", mock.Anything, "PROJ", "nobody").Return([]models.User{}, nil)

		_, meta, err := runBuildRequest(t, factory, cfg, "--assignee", "nobody")

		assert.NoError(t, err)
		assert.Empty(t, meta.AssigneeAccountID)
	})

	t.Run("should map component names to ids and skip unknown ones", func(t *testing.T) {
		mockGit, mockTracker, mockGen, _, cfg := setupCreateTest(t)
		factory := newTestFactory(mockGit, mockTracker, mockGen)

		mockTracker.On("GetComponents", mock.Anything, "PROJ").Return([]models.Component{
			{ID: "10", Name: "Backend"},
			{ID: "11", Name: "Frontend"},
		}, nil)

		_, meta, err := runBuildRequest(t, factory, cfg, "--component", "backend", "--component", "Docs")

		assert.NoError(t, err)
		assert.Equal(t, []string{"10"}, meta.ComponentIDs)
	})

	t.Run("should carry estimate, story points, labels and due date", func(t *testing.T) {
		mockGit, mockTracker, mockGen, _, cfg := setupCreateTest(t)
		factory := newTestFactory(mockGit, mockTracker, mockGen)

		_, meta, err := runBuildRequest(t, factory, cfg,
			"--estimate", "3h",
			"--story-points", "5",
			"--label", "auth",
			"--label", "backend",
			"--due-date", "2026-09-15",
			"--epic", "PROJ-1",
			"--sprint", "42",
		)

		assert.NoError(t, err)
		assert.NotNil(t, meta.TimeTracking)
		assert.Equal(t, "3h", meta.TimeTracking.OriginalEstimate)
		assert.True(t, meta.HasStoryPoints)
		assert.Equal(t, float64(5), meta.StoryPoints)
		assert.Equal(t, []string{"auth", "backend"}, meta.Labels)
		assert.Equal(t, "2026-09-15", meta.DueDate)
		assert.Equal(t, "PROJ-1", meta.EpicKey)
		assert.Equal(t, int64(42), meta.SprintID)
	})

	t.Run("should resolve an epic name to its key", func(t *testing.T) {
		mockGit, mockTracker, mockGen, _, cfg := setupCreateTest(t)
		factory := newTestFactory(mockGit, mockTracker, mockGen)

		mockTracker.On("GetEpics", mock.Anything, "PROJ").Return([]models.Epic{
			{Key: "PROJ-100", Name: "Payments Revamp"},
			{Key: "PROJ-200", Name: "Auth Hardening"},
		}, nil)

		_, meta, err := runBuildRequest(t, factory, cfg, "--epic", "auth hardening")

		assert.NoError(t, err)
		assert.Equal(t, "PROJ-200", meta.EpicKey)
	})

	t.Run("should create without an epic when the name is unknown", func(t *testing.T) {
		mockGit, mockTracker, mockGen, _, cfg := setupCreateTest(t)
		factory := newTestFactory(mockGit, mockTracker, mockGen)

		mockTracker.On("GetEpics", mock.Anything, "PROJ").Return([]models.Epic{}, nil)

		_, meta, err := runBuildRequest(t, factory, cfg, "--epic", "no such epic")

		assert.NoError(t, err)
		assert.Empty(t, meta.EpicKey)
	})

	t.Run("should use a key-shaped epic value without a lookup", func(t *testing.T) {
		mockGit, mockTracker, mockGen, _, cfg := setupCreateTest(t)
		factory := newTestFactory(mockGit, mockTracker, mockGen)

		_, meta, err := runBuildRequest(t, factory, cfg, "--epic", "proj-7")

		assert.NoError(t, err)
		assert.Equal(t, "PROJ-7", meta.EpicKey)
		mockTracker.AssertNotCalled(t, "GetEpics", mock.Anything, mock.Anything)
	})

	t.Run("should resolve a sprint name to its id", func(t *testing.T) {
		mockGit, mockTracker, mockGen, _, cfg := setupCreateTest(t)
		factory := newTestFactory(mockGit, mockTracker, mockGen)

		mockTracker.On("GetSprints", mock.Anything, "PROJ").Return([]models.Sprint{
			{ID: 7, Name: "Sprint Alpha", State: "active"},
			{ID: 8, Name: "Sprint Beta", State: "future"},
		}, nil)

		_, meta, err := runBuildRequest(t, factory, cfg, "--sprint", "sprint beta")

		assert.NoError(t, err)
		assert.Equal(t, int64(8), meta.SprintID)
	})

	t.Run("should create without a sprint when the name is unknown", func(t *testing.T) {
		mockGit, mockTracker, mockGen, _, cfg := setupCreateTest(t)
		factory := newTestFactory(mockGit, mockTracker, mockGen)

		mockTracker.On("GetSprints", mock.Anything, "PROJ").Return([]models.Sprint{}, nil)

		_, meta, err := runBuildRequest(t, factory, cfg, "--sprint", "ghost sprint")

		assert.NoError(t, err)
		assert.Zero(t, meta.SprintID)
	})

	t.Run("should not set story points when the flag is absent", func(t *testing.T) {
		mockGit, mockTracker, mockGen, _, cfg := setupCreateTest(t)
		factory := newTestFactory(mockGit, mockTracker, mockGen)

		_, meta, err := runBuildRequest(t, factory, cfg)

		assert.NoError(t, err)
		assert.False(t, meta.HasStoryPoints)
	})
}

func TestLooksLikeIssueKey(t *testing.T) {
	cases := map[string]bool{
		"PROJ-1":       true,
		"proj-42":      true,
		"Auth Revamp":  false,
		"-1":           false,
		"PROJ-":        false,
		"PROJ-1a":      false,
		"Sprint Alpha": false,
	}
	for value, want := range cases {
		assert.Equal(t, want, looksLikeIssueKey(value), value)
	}
}
