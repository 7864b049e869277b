package history

import (
	"context"
	"fmt"

	appcfg "github.com/Gyeom/jira-automation/internal/config"
	"github.com/Gyeom/jira-automation/internal/i18n"
	"github.com/Gyeom/jira-automation/internal/models"
	"github.com/Gyeom/jira-automation/internal/ui"
	"github.com/urfave/cli/v3"
)

const defaultLimit = 10

// HistoryStore is a minimal interface for testing purposes
type HistoryStore interface {
	Recent(limit int) []models.TicketHistoryEntry
	Clear() error
}

// HistoryCommandFactory is the factory to create the history command.
type HistoryCommandFactory struct {
	store HistoryStore
}

// NewHistoryCommandFactory creates a new instance of the factory.
func NewHistoryCommandFactory(store HistoryStore) *HistoryCommandFactory {
	return &HistoryCommandFactory{store: store}
}

// CreateCommand creates the history command.
func (f *HistoryCommandFactory) CreateCommand(t *i18n.Translations, cfg *appcfg.Config) *cli.Command {
	return &cli.Command{
		Name:    "history",
		Aliases: []string{"hist"},
		Usage:   t.GetMessage("history.command_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   t.GetMessage("history.flag_limit", 0, nil),
				Value:   defaultLimit,
			},
			&cli.BoolFlag{
				Name:  "clear",
				Usage: t.GetMessage("history.flag_clear", 0, nil),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			if command.Bool("clear") {
				if err := f.store.Clear(); err != nil {
					ui.HandleAppError(err, t)
					return err
				}
				ui.PrintInfo(t.GetMessage("history.cleared", 0, nil))
				return nil
			}

			entries := f.store.Recent(int(command.Int("limit")))
			if len(entries) == 0 {
				ui.PrintInfo(t.GetMessage("history.empty", 0, nil))
				return nil
			}

			for _, entry := range entries {
				created := entry.CreatedAt.Format("2006-01-02 15:04")
				fmt.Printf("%s  %s  %s\n", ui.Dim.Sprint(created), ui.Accent.Sprint(entry.Key), entry.Title)
				if entry.URL != "" {
					fmt.Printf("                  %s\n", ui.Dim.Sprint(entry.URL))
				}
			}
			return nil
		},
	}
}
