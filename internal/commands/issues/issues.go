package issues

import (
	"context"
	"fmt"
	"strings"

	appcfg "github.com/Gyeom/jira-automation/internal/config"
	apperrors "github.com/Gyeom/jira-automation/internal/errors"
	"github.com/Gyeom/jira-automation/internal/i18n"
	"github.com/Gyeom/jira-automation/internal/models"
	"github.com/Gyeom/jira-automation/internal/ui"
	"github.com/urfave/cli/v3"
)

const defaultRecentLimit = 10

// TrackerBrowser is a minimal interface for testing purposes
type TrackerBrowser interface {
	RecentIssues(ctx context.Context, projectKey string, limit int) ([]models.RecentIssue, error)
	SearchProjects(ctx context.Context, query string) ([]models.Project, error)
	SearchUsers(ctx context.Context, query string) ([]models.User, error)
	GetLabels(ctx context.Context, projectKey string) ([]string, error)
	GetIssueLinkTypes(ctx context.Context) ([]models.IssueLinkType, error)
	CreateIssueLink(ctx context.Context, linkType, inwardKey, outwardKey string) error
}

// IssuesCommandFactory is the factory to create the issues command.
type IssuesCommandFactory struct {
	tracker TrackerBrowser
}

// NewIssuesCommandFactory creates a new instance of the factory.
func NewIssuesCommandFactory(tracker TrackerBrowser) *IssuesCommandFactory {
	return &IssuesCommandFactory{tracker: tracker}
}

// CreateCommand creates the issues command with its subcommands.
func (f *IssuesCommandFactory) CreateCommand(t *i18n.Translations, cfg *appcfg.Config) *cli.Command {
	return &cli.Command{
		Name:    "issues",
		Aliases: []string{"i"},
		Usage:   t.GetMessage("issues.command_usage", 0, nil),
		Commands: []*cli.Command{
			f.newRecentCommand(t, cfg),
			f.newProjectsCommand(t),
			f.newUsersCommand(t),
			f.newLabelsCommand(t, cfg),
			f.newLinkTypesCommand(t),
			f.newLinkCommand(t),
		},
	}
}

func (f *IssuesCommandFactory) newRecentCommand(t *i18n.Translations, cfg *appcfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "recent",
		Usage: t.GetMessage("issues.recent_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "project",
				Aliases: []string{"p"},
				Usage:   t.GetMessage("issues.flag_project", 0, nil),
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   t.GetMessage("issues.flag_limit", 0, nil),
				Value:   defaultRecentLimit,
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			projectKey, err := resolveProject(command.String("project"), cfg)
			if err != nil {
				ui.HandleAppError(err, t)
				return err
			}

			recent, err := f.tracker.RecentIssues(ctx, projectKey, int(command.Int("limit")))
			if err != nil {
				ui.HandleAppError(err, t)
				return err
			}
			if len(recent) == 0 {
				ui.PrintInfo(t.GetMessage("issues.none_found", 0, nil))
				return nil
			}

			for _, issue := range recent {
				fmt.Printf("%s  %-12s %s\n", ui.Accent.Sprint(issue.Key), ui.Dim.Sprint(issue.Status), issue.Summary)
			}
			return nil
		},
	}
}

func (f *IssuesCommandFactory) newProjectsCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:      "projects",
		Usage:     t.GetMessage("issues.projects_usage", 0, nil),
		ArgsUsage: "<query>",
		Action: func(ctx context.Context, command *cli.Command) error {
			query := command.Args().First()
			if query == "" {
				err := fmt.Errorf("%s", t.GetMessage("issues.missing_query", 0, nil))
				ui.PrintWarning(err.Error())
				return err
			}

			projects, err := f.tracker.SearchProjects(ctx, query)
			if err != nil {
				ui.HandleAppError(err, t)
				return err
			}
			if len(projects) == 0 {
				ui.PrintInfo(t.GetMessage("issues.none_found", 0, nil))
				return nil
			}

			for _, project := range projects {
				ui.PrintKeyValue(project.Key, project.Name)
			}
			return nil
		},
	}
}

func (f *IssuesCommandFactory) newUsersCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:      "users",
		Usage:     t.GetMessage("issues.users_usage", 0, nil),
		ArgsUsage: "<query>",
		Action: func(ctx context.Context, command *cli.Command) error {
			query := command.Args().First()
			if query == "" {
				err := fmt.Errorf("%s", t.GetMessage("issues.missing_query", 0, nil))
				ui.PrintWarning(err.Error())
				return err
			}

			users, err := f.tracker.SearchUsers(ctx, query)
			if err != nil {
				ui.HandleAppError(err, t)
				return err
			}
			if len(users) == 0 {
				ui.PrintInfo(t.GetMessage("issues.none_found", 0, nil))
				return nil
			}

			for _, user := range users {
				line := user.DisplayName
				if user.EmailAddress != "" {
					line += " " + ui.Dim.Sprint("<"+user.EmailAddress+">")
				}
				if !user.Active {
					line += " " + ui.Dim.Sprint("(inactive)")
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func (f *IssuesCommandFactory) newLabelsCommand(t *i18n.Translations, cfg *appcfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "labels",
		Usage: t.GetMessage("issues.labels_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "project",
				Aliases: []string{"p"},
				Usage:   t.GetMessage("issues.flag_project", 0, nil),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			projectKey, err := resolveProject(command.String("project"), cfg)
			if err != nil {
				ui.HandleAppError(err, t)
				return err
			}

			labels, err := f.tracker.GetLabels(ctx, projectKey)
			if err != nil {
				ui.HandleAppError(err, t)
				return err
			}
			if len(labels) == 0 {
				ui.PrintInfo(t.GetMessage("issues.none_found", 0, nil))
				return nil
			}

			for _, label := range labels {
				fmt.Println("   " + label)
			}
			return nil
		},
	}
}

func (f *IssuesCommandFactory) newLinkTypesCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "link-types",
		Usage: t.GetMessage("issues.link_types_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			linkTypes, err := f.tracker.GetIssueLinkTypes(ctx)
			if err != nil {
				ui.HandleAppError(err, t)
				return err
			}

			for _, lt := range linkTypes {
				ui.PrintKeyValue(lt.Name, fmt.Sprintf("%s / %s", lt.Outward, lt.Inward))
			}
			return nil
		},
	}
}

func (f *IssuesCommandFactory) newLinkCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:      "link",
		Usage:     t.GetMessage("issues.link_usage", 0, nil),
		ArgsUsage: "<inward-key> <outward-key>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   t.GetMessage("issues.flag_link_type", 0, nil),
				Value:   "Relates",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			if command.Args().Len() != 2 {
				err := fmt.Errorf("%s", t.GetMessage("issues.link_missing_arguments", 0, nil))
				ui.PrintWarning(err.Error())
				return err
			}
			inwardKey := strings.ToUpper(command.Args().Get(0))
			outwardKey := strings.ToUpper(command.Args().Get(1))

			linkType, err := f.resolveLinkType(ctx, command.String("type"))
			if err != nil {
				ui.HandleAppError(err, t)
				return err
			}

			if err := f.tracker.CreateIssueLink(ctx, linkType, inwardKey, outwardKey); err != nil {
				ui.HandleAppError(err, t)
				return err
			}

			ui.PrintInfo(t.GetMessage("issues.linked", 0, map[string]interface{}{
				"Inward":  inwardKey,
				"Outward": outwardKey,
				"Type":    linkType,
			}))
			return nil
		},
	}
}

// resolveLinkType matches the requested relation against what the instance
// offers, so the API receives the exact configured name.
func (f *IssuesCommandFactory) resolveLinkType(ctx context.Context, name string) (string, error) {
	linkTypes, err := f.tracker.GetIssueLinkTypes(ctx)
	if err != nil {
		return "", err
	}

	available := make([]string, 0, len(linkTypes))
	for _, lt := range linkTypes {
		if strings.EqualFold(lt.Name, name) {
			return lt.Name, nil
		}
		available = append(available, lt.Name)
	}
	return "", apperrors.NewAppError(apperrors.TypeTracker, "issue link type not found", nil).
		WithContext("type", name).
		WithSuggestion("Available link types: " + strings.Join(available, ", "))
}

func resolveProject(flagValue string, cfg *appcfg.Config) (string, error) {
	projectKey := flagValue
	if projectKey == "" {
		projectKey = cfg.JiraConfig.DefaultProjectKey
	}
	if projectKey == "" {
		return "", apperrors.ErrProjectKeyMissing
	}
	return strings.ToUpper(projectKey), nil
}
