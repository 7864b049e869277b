package templates

import (
	"github.com/Gyeom/jira-automation/internal/models"
	"github.com/google/uuid"
)

func defaultTemplates() []models.SubtaskTemplate {
	return []models.SubtaskTemplate{
		{
			ID:          uuid.NewString(),
			Name:        "Feature development",
			Description: "Standard breakdown for new feature work",
			IssueType:   "Story",
			Pattern:     "^feat:.*",
			Subtasks: []models.SubtaskDefinition{
				{
					Title:          "API design and implementation",
					Description:    "Design and implement the backend API endpoints",
					Assignee:       models.AssigneeInherit,
					EstimatedHours: 4,
					Priority:       "High",
					Order:          1,
				},
				{
					Title:          "Frontend implementation",
					Description:    "Implement UI components and state management",
					Assignee:       models.AssigneeInherit,
					EstimatedHours: 6,
					Priority:       "High",
					Order:          2,
				},
				{
					Title:          "Write unit tests",
					Description:    "Write unit and integration tests",
					Assignee:       models.AssigneeInherit,
					EstimatedHours: 3,
					Labels:         []string{"testing"},
					Priority:       "Medium",
					Order:          3,
				},
				{
					Title:          "Code review",
					Description:    "Peer review and feedback incorporation",
					Assignee:       models.AssigneeInherit,
					EstimatedHours: 2,
					Priority:       "Medium",
					Order:          4,
				},
				{
					Title:          "Update documentation",
					Description:    "Update API docs and user guide",
					Assignee:       models.AssigneeInherit,
					EstimatedHours: 2,
					Labels:         []string{"documentation"},
					Priority:       "Low",
					Order:          5,
				},
			},
		},
		{
			ID:          uuid.NewString(),
			Name:        "Bug fix",
			Description: "Breakdown used for bug fixing work",
			IssueType:   "Bug",
			Pattern:     "^fix:.*",
			Subtasks: []models.SubtaskDefinition{
				{
					Title:          "Reproduce and analyze",
					Description:    "Confirm reproduction steps and find the root cause",
					Assignee:       models.AssigneeInherit,
					EstimatedHours: 2,
					Priority:       "High",
					Order:          1,
				},
				{
					Title:          "Implement the fix",
					Description:    "Write the bug fix",
					Assignee:       models.AssigneeInherit,
					EstimatedHours: 3,
					Priority:       "High",
					Order:          2,
				},
				{
					Title:          "Add regression tests",
					Description:    "Add test cases that prevent the bug from coming back",
					Assignee:       models.AssigneeInherit,
					EstimatedHours: 2,
					Labels:         []string{"testing", "regression"},
					Priority:       "Medium",
					Order:          3,
				},
				{
					Title:          "QA verification",
					Description:    "Verify the fix with QA",
					Assignee:       models.AssigneeInherit,
					EstimatedHours: 1,
					Priority:       "Medium",
					Order:          4,
				},
			},
		},
		{
			ID:          uuid.NewString(),
			Name:        "Refactoring",
			Description: "Breakdown used for code refactoring work",
			IssueType:   "Task",
			Pattern:     "^refactor:.*",
			Subtasks: []models.SubtaskDefinition{
				{
					Title:          "Plan the refactoring",
					Description:    "Define the scope and direction of the refactoring",
					Assignee:       models.AssigneeInherit,
					EstimatedHours: 1,
					Priority:       "Medium",
					Order:          1,
				},
				{
					Title:          "Check existing tests",
					Description:    "Verify test coverage before refactoring",
					Assignee:       models.AssigneeInherit,
					EstimatedHours: 1,
					Labels:         []string{"testing"},
					Priority:       "High",
					Order:          2,
				},
				{
					Title:          "Execute the refactoring",
					Description:    "Carry out the refactoring according to the plan",
					Assignee:       models.AssigneeInherit,
					EstimatedHours: 4,
					Priority:       "Medium",
					Order:          3,
				},
				{
					Title:          "Performance testing",
					Description:    "Check for performance impact after refactoring",
					Assignee:       models.AssigneeInherit,
					EstimatedHours: 2,
					Labels:         []string{"performance"},
					Priority:       "Low",
					Order:          4,
				},
			},
		},
	}
}
