package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	appcfg "github.com/Gyeom/jira-automation/internal/config"
	"github.com/Gyeom/jira-automation/internal/history"
	"github.com/Gyeom/jira-automation/internal/i18n"
	"github.com/Gyeom/jira-automation/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v3"
)

func setupHistoryTest(t *testing.T) (*history.Store, *cli.Command) {
	translations, err := i18n.NewTranslations("en", "")
	assert.NoError(t, err)

	store, err := history.NewStore(filepath.Join(t.TempDir(), "history.json"))
	assert.NoError(t, err)

	cfg := &appcfg.Config{Language: "en"}
	cmd := NewHistoryCommandFactory(store).CreateCommand(translations, cfg)

	return store, &cli.Command{Name: "test", Commands: []*cli.Command{cmd}}
}

func addEntry(t *testing.T, store *history.Store, key string) {
	err := store.Add(models.TicketHistoryEntry{
		Key:        key,
		Title:      "Add login flow",
		URL:        "https://acme.atlassian.net/browse/" + key,
		ProjectKey: "PROJ",
		IssueType:  "Task",
		CreatedAt:  time.Now(),
	})
	assert.NoError(t, err)
}

func TestHistoryCommand(t *testing.T) {
	t.Run("should handle an empty history", func(t *testing.T) {
		_, app := setupHistoryTest(t)

		err := app.Run(context.Background(), []string{"test", "history"})

		assert.NoError(t, err)
	})

	t.Run("should list recorded tickets", func(t *testing.T) {
		store, app := setupHistoryTest(t)
		addEntry(t, store, "PROJ-1")
		addEntry(t, store, "PROJ-2")

		err := app.Run(context.Background(), []string{"test", "history", "--limit", "1"})

		assert.NoError(t, err)
	})

	t.Run("should clear the history", func(t *testing.T) {
		store, app := setupHistoryTest(t)
		addEntry(t, store, "PROJ-1")

		err := app.Run(context.Background(), []string{"test", "history", "--clear"})

		assert.NoError(t, err)
		assert.Empty(t, store.Recent(10))
	})
}
