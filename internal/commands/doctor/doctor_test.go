package doctor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	appcfg "github.com/Gyeom/jira-automation/internal/config"
	"github.com/Gyeom/jira-automation/internal/i18n"
	"github.com/Gyeom/jira-automation/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/urfave/cli/v3"
)

type MockTrackerService struct {
	mock.Mock
}

func (m *MockTrackerService) TestConnection(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTrackerService) GetCurrentUser(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockRepoChecker struct {
	mock.Mock
}

func (m *MockRepoChecker) IsRepository(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func setupDoctorTest(t *testing.T) (*MockTrackerService, *MockRepoChecker, *appcfg.Config, *cli.Command) {
	translations, err := i18n.NewTranslations("en", "")
	assert.NoError(t, err)

	configPath := filepath.Join(t.TempDir(), "config.json")
	assert.NoError(t, os.WriteFile(configPath, []byte("{}"), 0644))

	cfg := &appcfg.Config{
		PathFile: configPath,
		Language: "en",
		JiraConfig: appcfg.JiraConfig{
			BaseURL: "https://acme.atlassian.net",
			Email:   "dev@acme.com",
			APIKey:  "token",
		},
		AIConfig: appcfg.AIConfig{Provider: "gemini", APIKey: "AIza-test"},
	}

	mockTracker := new(MockTrackerService)
	mockGit := new(MockRepoChecker)
	cmd := NewDoctorCommandFactory(mockTracker, mockGit).CreateCommand(translations, cfg)

	return mockTracker, mockGit, cfg, &cli.Command{Name: "test", Commands: []*cli.Command{cmd}}
}

func TestDoctorCommand(t *testing.T) {
	t.Run("should pass with a healthy setup", func(t *testing.T) {
		mockTracker, mockGit, _, app := setupDoctorTest(t)

		mockGit.On("IsRepository", mock.Anything).Return(true)
		mockTracker.On("TestConnection", mock.Anything).Return(nil)
		mockTracker.On("GetCurrentUser", mock.Anything).Return(&models.User{DisplayName: "Dev"}, nil)

		err := app.Run(context.Background(), []string{"test", "doctor"})

		assert.NoError(t, err)
		mockTracker.AssertExpectations(t)
	})

	t.Run("should fail when the jira connection is broken", func(t *testing.T) {
		mockTracker, mockGit, _, app := setupDoctorTest(t)

		mockGit.On("IsRepository", mock.Anything).Return(true)
		mockTracker.On("TestConnection", mock.Anything).Return(errors.New("401 unauthorized"))

		err := app.Run(context.Background(), []string{"test", "doctor"})

		assert.Error(t, err)
	})

	t.Run("should fail when jira is not configured", func(t *testing.T) {
		mockTracker, mockGit, cfg, app := setupDoctorTest(t)
		cfg.JiraConfig.APIKey = ""

		mockGit.On("IsRepository", mock.Anything).Return(true)

		err := app.Run(context.Background(), []string{"test", "doctor"})

		assert.Error(t, err)
		mockTracker.AssertNotCalled(t, "TestConnection", mock.Anything)
	})

	t.Run("should only warn outside a git repository", func(t *testing.T) {
		mockTracker, mockGit, _, app := setupDoctorTest(t)

		mockGit.On("IsRepository", mock.Anything).Return(false)
		mockTracker.On("TestConnection", mock.Anything).Return(nil)
		mockTracker.On("GetCurrentUser", mock.Anything).Return(&models.User{DisplayName: "Dev"}, nil)

		err := app.Run(context.Background(), []string{"test", "doctor"})

		assert.NoError(t, err)
	})

	t.Run("should only warn when the ai key is missing", func(t *testing.T) {
		mockTracker, mockGit, cfg, app := setupDoctorTest(t)
		cfg.AIConfig.APIKey = ""

		mockGit.On("IsRepository", mock.Anything).Return(true)
		mockTracker.On("TestConnection", mock.Anything).Return(nil)
		mockTracker.On("GetCurrentUser", mock.Anything).Return(&models.User{DisplayName: "Dev"}, nil)

		err := app.Run(context.Background(), []string{"test", "doctor"})

		assert.NoError(t, err)
	})

	t.Run("should fail when the config file is gone", func(t *testing.T) {
		mockTracker, mockGit, cfg, app := setupDoctorTest(t)
		assert.NoError(t, os.Remove(cfg.PathFile))

		mockGit.On("IsRepository", mock.Anything).Return(true)
		mockTracker.On("TestConnection", mock.Anything).Return(nil)
		mockTracker.On("GetCurrentUser", mock.Anything).Return(&models.User{DisplayName: "Dev"}, nil)

		err := app.Run(context.Background(), []string{"test", "doctor"})

		assert.Error(t, err)
	})
}
