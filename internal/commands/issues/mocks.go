package issues

import (
	"context"

	"github.com/Gyeom/jira-automation/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockTrackerBrowser struct {
	mock.Mock
}

func (m *MockTrackerBrowser) RecentIssues(ctx context.Context, projectKey string, limit int) ([]models.RecentIssue, error) {
	args := m.Called(ctx, projectKey, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RecentIssue), args.Error(1)
}

func (m *MockTrackerBrowser) SearchProjects(ctx context.Context, query string) ([]models.Project, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockTrackerBrowser) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockTrackerBrowser) GetLabels(ctx context.Context, projectKey string) ([]string, error) {
	args := m.Called(ctx, projectKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTrackerBrowser) GetIssueLinkTypes(ctx context.Context) ([]models.IssueLinkType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.IssueLinkType), args.Error(1)
}

func (m *MockTrackerBrowser) CreateIssueLink(ctx context.Context, linkType, inwardKey, outwardKey string) error {
	args := m.Called(ctx, linkType, inwardKey, outwardKey)
	return args.Error(0)
}
