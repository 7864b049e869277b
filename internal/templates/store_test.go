package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Gyeom/jira-automation/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AddAssignsIDAndRespectsAutoApply(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)

	id, err := store.Add(models.SubtaskTemplate{Name: "manual", IssueType: "Task"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.False(t, store.IsActive(id))

	autoID, err := store.Add(models.SubtaskTemplate{Name: "auto", IssueType: "Task", AutoApply: true})
	require.NoError(t, err)
	assert.True(t, store.IsActive(autoID))
	assert.Len(t, store.Active(), 1)
}

func TestStore_AddRollsBackWhenPersistFails(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0644))

	store, err := NewStore("")
	require.NoError(t, err)
	store.path = filepath.Join(blocker, "templates.json")

	_, err = store.Add(models.SubtaskTemplate{Name: "doomed", IssueType: "Task", AutoApply: true})
	require.Error(t, err)
	assert.Empty(t, store.All())
	assert.Empty(t, store.Active())
}

func TestStore_SetActiveTogglesMembershipWithoutDeleting(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)

	id, err := store.Add(models.SubtaskTemplate{Name: "toggle", IssueType: "Task"})
	require.NoError(t, err)

	require.NoError(t, store.SetActive(id, true))
	assert.True(t, store.IsActive(id))

	require.NoError(t, store.SetActive(id, false))
	assert.False(t, store.IsActive(id))
	assert.Len(t, store.All(), 1)
}

func TestStore_DeleteRemovesActiveMembership(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)

	id, err := store.Add(models.SubtaskTemplate{Name: "gone", IssueType: "Task", AutoApply: true})
	require.NoError(t, err)

	require.NoError(t, store.Delete(id))
	assert.Empty(t, store.All())
	assert.False(t, store.IsActive(id))
}

func TestStore_ForProjectIncludesUnscopedTemplates(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)

	_, err = store.Add(models.SubtaskTemplate{Name: "global", IssueType: "Task", AutoApply: true})
	require.NoError(t, err)
	_, err = store.Add(models.SubtaskTemplate{Name: "scoped", IssueType: "Task", ProjectKey: "ENG", AutoApply: true})
	require.NoError(t, err)
	_, err = store.Add(models.SubtaskTemplate{Name: "other", IssueType: "Task", ProjectKey: "OPS", AutoApply: true})
	require.NoError(t, err)

	matched := store.ForProject("ENG")
	require.Len(t, matched, 2)
	assert.Equal(t, "global", matched[0].Name)
	assert.Equal(t, "scoped", matched[1].Name)
}

func TestStore_ForIssueTypeMatchesExactly(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)

	_, err = store.Add(models.SubtaskTemplate{Name: "story", IssueType: "Story", AutoApply: true})
	require.NoError(t, err)
	_, err = store.Add(models.SubtaskTemplate{Name: "bug", IssueType: "Bug", AutoApply: true})
	require.NoError(t, err)

	matched := store.ForIssueType("Bug")
	require.Len(t, matched, 1)
	assert.Equal(t, "bug", matched[0].Name)
}

func TestStore_SeedDefaultsOnlyWhenEmpty(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)

	seeded, err := store.SeedDefaults()
	require.NoError(t, err)
	assert.Equal(t, 3, seeded)
	assert.Len(t, store.Active(), 3, "all default templates start active")

	again, err := store.SeedDefaults()
	require.NoError(t, err)
	assert.Zero(t, again)
	assert.Len(t, store.All(), 3)
}

func TestStore_SeedDefaultsShapes(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)

	_, err = store.SeedDefaults()
	require.NoError(t, err)

	byPattern := make(map[string]models.SubtaskTemplate)
	for _, tpl := range store.All() {
		byPattern[tpl.Pattern] = tpl
	}

	feature := byPattern["^feat:.*"]
	assert.Equal(t, "Story", feature.IssueType)
	assert.Len(t, feature.Subtasks, 5)

	bug := byPattern["^fix:.*"]
	assert.Equal(t, "Bug", bug.IssueType)
	assert.Len(t, bug.Subtasks, 4)

	refactor := byPattern["^refactor:.*"]
	assert.Equal(t, "Task", refactor.IssueType)
	assert.Len(t, refactor.Subtasks, 4)
}

func TestStore_PersistsAcrossReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")

	store, err := NewStore(path)
	require.NoError(t, err)

	id, err := store.Add(models.SubtaskTemplate{
		Name:      "durable",
		IssueType: "Task",
		Pattern:   "^chore:.*",
		Subtasks: []models.SubtaskDefinition{
			{Title: "cleanup", Assignee: models.AssigneeInherit, Order: 1},
		},
		AutoApply: true,
	})
	require.NoError(t, err)

	reloaded, err := NewStore(path)
	require.NoError(t, err)

	got, ok := reloaded.Find(id)
	require.True(t, ok)
	assert.Equal(t, "durable", got.Name)
	assert.True(t, reloaded.IsActive(id))
	require.Len(t, got.Subtasks, 1)
	assert.Equal(t, "cleanup", got.Subtasks[0].Title)
}

func TestStore_FindFallsBackToName(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)

	_, err = store.Add(models.SubtaskTemplate{Name: "named", IssueType: "Task"})
	require.NoError(t, err)

	got, ok := store.Find("named")
	require.True(t, ok)
	assert.Equal(t, "named", got.Name)

	_, ok = store.Find("missing")
	assert.False(t, ok)
}
