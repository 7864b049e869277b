package templates

import (
	"context"
	"fmt"
	"os"

	appcfg "github.com/Gyeom/jira-automation/internal/config"
	"github.com/Gyeom/jira-automation/internal/i18n"
	"github.com/Gyeom/jira-automation/internal/models"
	tmplstore "github.com/Gyeom/jira-automation/internal/templates"
	"github.com/Gyeom/jira-automation/internal/ui"
	"github.com/urfave/cli/v3"
)

// TemplatesCommandFactory is the factory to create the templates command.
type TemplatesCommandFactory struct {
	store *tmplstore.Store
}

// NewTemplatesCommandFactory creates a new instance of the factory.
func NewTemplatesCommandFactory(store *tmplstore.Store) *TemplatesCommandFactory {
	return &TemplatesCommandFactory{store: store}
}

// CreateCommand creates the templates command with its subcommands.
func (f *TemplatesCommandFactory) CreateCommand(t *i18n.Translations, cfg *appcfg.Config) *cli.Command {
	return &cli.Command{
		Name:    "templates",
		Aliases: []string{"tpl"},
		Usage:   t.GetMessage("templates.command_usage", 0, nil),
		Commands: []*cli.Command{
			f.newListCommand(t),
			f.newSeedCommand(t),
			f.newToggleCommand(t, "enable", "templates.enable_usage", true),
			f.newToggleCommand(t, "disable", "templates.disable_usage", false),
			f.newDeleteCommand(t),
		},
	}
}

func (f *TemplatesCommandFactory) newListCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   t.GetMessage("templates.list_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			all := f.store.All()
			if len(all) == 0 {
				ui.PrintInfo(t.GetMessage("templates.none", 0, nil))
				return nil
			}

			for _, template := range all {
				f.printTemplate(template)
			}
			return nil
		},
	}
}

func (f *TemplatesCommandFactory) printTemplate(template models.SubtaskTemplate) {
	state := ui.Dim.Sprint("inactive")
	if f.store.IsActive(template.ID) {
		state = ui.Success.Sprint("active")
	}

	fmt.Println()
	fmt.Printf("%s  [%s]\n", ui.Accent.Sprint(template.Name), state)
	ui.PrintKeyValue("id", template.ID)
	ui.PrintKeyValue("issue type", template.IssueType)
	if template.Pattern != "" {
		ui.PrintKeyValue("pattern", template.Pattern)
	}
	if template.ProjectKey != "" {
		ui.PrintKeyValue("project", template.ProjectKey)
	}
	for _, subtask := range template.Subtasks {
		line := "   • " + subtask.Title
		if subtask.EstimatedHours > 0 {
			line += fmt.Sprintf(" (%.1fh)", subtask.EstimatedHours)
		}
		fmt.Println(line)
	}
}

func (f *TemplatesCommandFactory) newSeedCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: t.GetMessage("templates.seed_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			count, err := f.store.SeedDefaults()
			if err != nil {
				ui.HandleAppError(err, t)
				return err
			}
			if count == 0 {
				ui.PrintInfo(t.GetMessage("templates.seed_skipped", 0, nil))
				return nil
			}
			ui.PrintSuccess(os.Stdout, t.GetMessage("templates.seeded", 0, map[string]interface{}{
				"Count": count,
			}))
			return nil
		},
	}
}

func (f *TemplatesCommandFactory) newToggleCommand(t *i18n.Translations, name, usageID string, active bool) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     t.GetMessage(usageID, 0, nil),
		ArgsUsage: "<id-or-name>",
		Action: func(ctx context.Context, command *cli.Command) error {
			template, err := f.findByArg(command, t)
			if err != nil {
				return err
			}
			if err := f.store.SetActive(template.ID, active); err != nil {
				ui.HandleAppError(err, t)
				return err
			}
			ui.PrintSuccess(os.Stdout, fmt.Sprintf("%s: %s", template.Name, name+"d"))
			return nil
		},
	}
}

func (f *TemplatesCommandFactory) newDeleteCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     t.GetMessage("templates.delete_usage", 0, nil),
		ArgsUsage: "<id-or-name>",
		Action: func(ctx context.Context, command *cli.Command) error {
			template, err := f.findByArg(command, t)
			if err != nil {
				return err
			}
			if err := f.store.Delete(template.ID); err != nil {
				ui.HandleAppError(err, t)
				return err
			}
			ui.PrintSuccess(os.Stdout, t.GetMessage("templates.deleted", 0, map[string]interface{}{
				"Name": template.Name,
			}))
			return nil
		},
	}
}

func (f *TemplatesCommandFactory) findByArg(command *cli.Command, t *i18n.Translations) (models.SubtaskTemplate, error) {
	idOrName := command.Args().First()
	if idOrName == "" {
		msg := t.GetMessage("templates.missing_argument", 0, nil)
		ui.PrintError(os.Stdout, msg)
		return models.SubtaskTemplate{}, fmt.Errorf("%s", msg)
	}

	template, ok := f.store.Find(idOrName)
	if !ok {
		msg := t.GetMessage("templates.not_found", 0, map[string]interface{}{"Name": idOrName})
		ui.PrintError(os.Stdout, msg)
		return models.SubtaskTemplate{}, fmt.Errorf("%s", msg)
	}
	return template, nil
}
