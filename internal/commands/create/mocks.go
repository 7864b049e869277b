package create

import (
	"context"

	"github.com/Gyeom/jira-automation/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockGitService struct {
	mock.Mock
}

func (m *MockGitService) GetChangedFiles(ctx context.Context) ([]models.FileChange, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FileChange), args.Error(1)
}

func (m *MockGitService) GetCurrentBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGitService) RecentCommitInfos(ctx context.Context, limit int) ([]models.CommitInfo, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CommitInfo), args.Error(1)
}

type MockTrackerService struct {
	mock.Mock
}

func (m *MockTrackerService) CreateTicket(ctx context.Context, ticket models.Ticket, meta models.TicketMetadata) (*models.CreatedIssue, error) {
	args := m.Called(ctx, ticket, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CreatedIssue), args.Error(1)
}

func (m *MockTrackerService) GetIssueTypes(ctx context.Context, projectKey string) ([]models.IssueType, error) {
	args := m.Called(ctx, projectKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.IssueType), args.Error(1)
}

func (m *MockTrackerService) GetProjectPriorities(ctx context.Context, projectKey string) ([]models.Priority, error) {
	args := m.Called(ctx, projectKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Priority), args.Error(1)
}

func (m *MockTrackerService) GetComponents(ctx context.Context, projectKey string) ([]models.Component, error) {
	args := m.Called(ctx, projectKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Component), args.Error(1)
}

func (m *MockTrackerService) GetEpics(ctx context.Context, projectKey string) ([]models.Epic, error) {
	args := m.Called(ctx, projectKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Epic), args.Error(1)
}

func (m *MockTrackerService) GetSprints(ctx context.Context, projectKey string) ([]models.Sprint, error) {
	args := m.Called(ctx, projectKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Sprint), args.Error(1)
}

func (m *MockTrackerService) SearchAssignableUsers(ctx context.Context, projectKey, query string) ([]models.User, error) {
	args := m.Called(ctx, projectKey, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockTrackerService) BrowseURL(issueKey string) string {
	args := m.Called(issueKey)
	return args.String(0)
}

type MockHistoryRecorder struct {
	mock.Mock
}

func (m *MockHistoryRecorder) Add(entry models.TicketHistoryEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateTicket(ctx context.Context, summary, diffContent string, lang models.OutputLanguage) (*models.GeneratedTicket, error) {
	args := m.Called(ctx, summary, diffContent, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GeneratedTicket), args.Error(1)
}
