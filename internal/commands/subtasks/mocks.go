package subtasks

import (
	"context"

	"github.com/Gyeom/jira-automation/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockCommitReader struct {
	mock.Mock
}

func (m *MockCommitReader) GetRecentCommits(ctx context.Context, limit int) ([]models.CommitMeta, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CommitMeta), args.Error(1)
}

type MockSuggestionEngine struct {
	mock.Mock
}

func (m *MockSuggestionEngine) AnalyzeCommits(commits []models.CommitMeta) []models.CommitAnalysisResult {
	args := m.Called(commits)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.CommitAnalysisResult)
}

type MockSubtaskCreator struct {
	mock.Mock
}

func (m *MockSubtaskCreator) ValidateParent(ctx context.Context, parentKey string) (*models.ParentIssue, error) {
	args := m.Called(ctx, parentKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ParentIssue), args.Error(1)
}

func (m *MockSubtaskCreator) CreateAll(ctx context.Context, parentKey string, specs []models.SubtaskSpec) (*models.BatchSubtaskResult, error) {
	args := m.Called(ctx, parentKey, specs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BatchSubtaskResult), args.Error(1)
}
