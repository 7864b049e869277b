package create

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Gyeom/jira-automation/internal/ai"
	appcfg "github.com/Gyeom/jira-automation/internal/config"
	"github.com/Gyeom/jira-automation/internal/diff"
	apperrors "github.com/Gyeom/jira-automation/internal/errors"
	"github.com/Gyeom/jira-automation/internal/i18n"
	"github.com/Gyeom/jira-automation/internal/models"
	"github.com/Gyeom/jira-automation/internal/ui"
	"github.com/urfave/cli/v3"
)

// GitService is a minimal interface for testing purposes
type GitService interface {
	GetChangedFiles(ctx context.Context) ([]models.FileChange, error)
	GetCurrentBranch(ctx context.Context) (string, error)
	RecentCommitInfos(ctx context.Context, limit int) ([]models.CommitInfo, error)
}

// TrackerService is a minimal interface for testing purposes
type TrackerService interface {
	CreateTicket(ctx context.Context, ticket models.Ticket, meta models.TicketMetadata) (*models.CreatedIssue, error)
	GetIssueTypes(ctx context.Context, projectKey string) ([]models.IssueType, error)
	GetProjectPriorities(ctx context.Context, projectKey string) ([]models.Priority, error)
	GetComponents(ctx context.Context, projectKey string) ([]models.Component, error)
	GetEpics(ctx context.Context, projectKey string) ([]models.Epic, error)
	GetSprints(ctx context.Context, projectKey string) ([]models.Sprint, error)
	SearchAssignableUsers(ctx context.Context, projectKey, query string) ([]models.User, error)
	BrowseURL(issueKey string) string
}

// HistoryRecorder records created tickets for the history command.
type HistoryRecorder interface {
	Add(entry models.TicketHistoryEntry) error
}

type GeneratorProvider func(ctx context.Context) (ai.TicketContentGenerator, error)

// CreateCommandFactory is the factory to create the create command.
type CreateCommandFactory struct {
	git               GitService
	tracker           TrackerService
	generatorProvider GeneratorProvider
	history           HistoryRecorder
	analyzer          *diff.Analyzer
}

// NewCreateCommandFactory creates a new instance of the factory.
func NewCreateCommandFactory(git GitService, tracker TrackerService, generatorProvider GeneratorProvider, history HistoryRecorder) *CreateCommandFactory {
	return &CreateCommandFactory{
		git:               git,
		tracker:           tracker,
		generatorProvider: generatorProvider,
		history:           history,
		analyzer:          diff.NewAnalyzer(),
	}
}

// CreateCommand creates the create command.
func (f *CreateCommandFactory) CreateCommand(t *i18n.Translations, cfg *appcfg.Config) *cli.Command {
	return &cli.Command{
		Name:    "create",
		Aliases: []string{"c"},
		Usage:   t.GetMessage("create.command_usage", 0, nil),
		Flags:   f.createFlags(t),
		Action:  f.createAction(t, cfg),
	}
}

func (f *CreateCommandFactory) createFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "project",
			Aliases: []string{"p"},
			Usage:   t.GetMessage("create.flag_project", 0, nil),
		},
		&cli.StringFlag{
			Name:    "type",
			Aliases: []string{"t"},
			Usage:   t.GetMessage("create.flag_type", 0, nil),
		},
		&cli.StringFlag{
			Name:  "priority",
			Usage: t.GetMessage("create.flag_priority", 0, nil),
		},
		&cli.StringFlag{
			Name:  "epic",
			Usage: t.GetMessage("create.flag_epic", 0, nil),
		},
		&cli.StringFlag{
			Name:  "sprint",
			Usage: t.GetMessage("create.flag_sprint", 0, nil),
		},
		&cli.StringSliceFlag{
			Name:    "label",
			Aliases: []string{"l"},
			Usage:   t.GetMessage("create.flag_labels", 0, nil),
		},
		&cli.StringSliceFlag{
			Name:  "component",
			Usage: t.GetMessage("create.flag_components", 0, nil),
		},
		&cli.StringFlag{
			Name:    "assignee",
			Aliases: []string{"a"},
			Usage:   t.GetMessage("create.flag_assignee", 0, nil),
		},
		&cli.StringFlag{
			Name:  "parent",
			Usage: t.GetMessage("create.flag_parent", 0, nil),
		},
		&cli.StringFlag{
			Name:  "language",
			Usage: t.GetMessage("create.flag_language", 0, nil),
		},
		&cli.StringFlag{
			Name:  "estimate",
			Usage: t.GetMessage("create.flag_estimate", 0, nil),
		},
		&cli.IntFlag{
			Name:  "story-points",
			Usage: t.GetMessage("create.flag_story_points", 0, nil),
		},
		&cli.StringFlag{
			Name:  "due-date",
			Usage: t.GetMessage("create.flag_due_date", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: t.GetMessage("create.flag_dry_run", 0, nil),
		},
	}
}

func (f *CreateCommandFactory) createAction(t *i18n.Translations, cfg *appcfg.Config) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		ui.PrintSectionBanner(t.GetMessage("create.banner", 0, nil))

		spinner := ui.NewSmartSpinner(t.GetMessage("analyzing_changes", 0, nil))
		spinner.Start()

		changes, err := f.git.GetChangedFiles(ctx)
		if err != nil {
			spinner.Stop()
			if errors.Is(err, apperrors.ErrNoChanges) {
				ui.PrintWarning(t.GetMessage("create.no_changes", 0, nil))
				return nil
			}
			ui.HandleAppError(err, t)
			return err
		}

		branch, _ := f.git.GetCurrentBranch(ctx)
		commits, _ := f.git.RecentCommitInfos(ctx, 5)

		result := f.analyzer.Analyze(changes, branch, commits)
		summary := diff.FormatSummary(result)
		spinner.Stop()

		ui.PrintDiffStats(result)
		ui.ShowFilesTree(result.FileList, t.GetMessage("create.changed_files", 0, nil))

		generator, err := f.generatorProvider(ctx)
		if err != nil {
			ui.HandleAppError(err, t)
			return err
		}

		langCode := command.String("language")
		if langCode == "" {
			langCode = cfg.OutputLanguage
		}
		lang := models.OutputLanguageFromCode(langCode)

		spinner = ui.NewSmartSpinner(t.GetMessage("generating_ticket", 0, map[string]interface{}{
			"Provider": cfg.AIConfig.Provider,
		}))
		spinner.Start()

		draft, err := generator.GenerateTicket(ctx, summary, result.DiffContent, lang)
		spinner.Stop()

		if err != nil {
			ui.HandleAppError(err, t)
			return err
		}

		f.printPreview(draft, t)

		if command.Bool("dry-run") {
			ui.PrintInfo(t.GetMessage("create.dry_run_notice", 0, nil))
			return nil
		}

		if !ui.AskConfirmation(t.GetMessage("create.confirm_prompt", 0, nil)) {
			ui.PrintInfo(t.GetMessage("create.cancelled", 0, nil))
			return nil
		}

		ticket, meta, err := f.buildRequest(ctx, command, cfg, draft)
		if err != nil {
			ui.HandleAppError(err, t)
			return err
		}

		spinner = ui.NewSmartSpinner(t.GetMessage("create.creating", 0, nil))
		spinner.Start()

		created, err := f.tracker.CreateTicket(ctx, ticket, meta)
		spinner.Stop()

		if err != nil {
			ui.HandleAppError(err, t)
			return err
		}

		url := f.tracker.BrowseURL(created.Key)
		ui.PrintSuccess(os.Stdout, t.GetMessage("create.created", 0, map[string]interface{}{
			"Key": created.Key,
			"URL": url,
		}))

		f.recordHistory(created, ticket, url)
		f.rememberLastUsed(cfg, ticket, meta)

		return nil
	}
}

// buildRequest resolves every flag into the creation payload. Names the user
// types (priority, assignee, components) are matched against what the project
// actually offers; a value that cannot be resolved produces a warning and is
// left off the ticket instead of failing the whole creation.
func (f *CreateCommandFactory) buildRequest(ctx context.Context, command *cli.Command, cfg *appcfg.Config, draft *models.GeneratedTicket) (models.Ticket, models.TicketMetadata, error) {
	projectKey := command.String("project")
	if projectKey == "" {
		projectKey = cfg.JiraConfig.DefaultProjectKey
	}
	if projectKey == "" {
		return models.Ticket{}, models.TicketMetadata{}, apperrors.ErrProjectKeyMissing
	}
	projectKey = strings.ToUpper(projectKey)

	parentKey := command.String("parent")

	issueType := command.String("type")
	if issueType == "" {
		if parentKey != "" {
			resolved, err := f.subtaskIssueType(ctx, projectKey)
			if err != nil {
				return models.Ticket{}, models.TicketMetadata{}, err
			}
			issueType = resolved
		} else {
			issueType = cfg.JiraConfig.DefaultIssueType
		}
	}
	if issueType == "" {
		return models.Ticket{}, models.TicketMetadata{}, apperrors.ErrIssueTypeMissing
	}

	ticket := models.Ticket{
		ProjectKey:  projectKey,
		Summary:     draft.Title,
		Description: draft.Description,
		IssueType:   issueType,
	}

	meta := models.TicketMetadata{
		ParentKey: parentKey,
		Labels:    command.StringSlice("label"),
		DueDate:   command.String("due-date"),
	}

	if epic := command.String("epic"); epic != "" {
		meta.EpicKey = f.resolveEpic(ctx, projectKey, epic)
	}

	if sprint := command.String("sprint"); sprint != "" {
		meta.SprintID = f.resolveSprint(ctx, projectKey, sprint)
	}

	if estimate := command.String("estimate"); estimate != "" {
		meta.TimeTracking = &models.TimeTracking{OriginalEstimate: estimate}
	}

	if command.IsSet("story-points") {
		meta.StoryPoints = float64(command.Int("story-points"))
		meta.HasStoryPoints = true
	}

	if priorityName := command.String("priority"); priorityName != "" {
		meta.PriorityID = f.resolvePriority(ctx, projectKey, priorityName)
	}

	if assigneeQuery := command.String("assignee"); assigneeQuery != "" {
		meta.AssigneeAccountID = f.resolveAssignee(ctx, projectKey, assigneeQuery)
	}

	if names := command.StringSlice("component"); len(names) > 0 {
		meta.ComponentIDs = f.resolveComponents(ctx, projectKey, names)
	}

	return ticket, meta, nil
}

func (f *CreateCommandFactory) subtaskIssueType(ctx context.Context, projectKey string) (string, error) {
	types, err := f.tracker.GetIssueTypes(ctx, projectKey)
	if err != nil {
		return "", err
	}
	for _, it := range types {
		if it.Subtask {
			return it.Name, nil
		}
	}
	return "", apperrors.ErrSubtaskTypeUnavailable.WithContext("project", projectKey)
}

func (f *CreateCommandFactory) resolvePriority(ctx context.Context, projectKey, name string) string {
	priorities, err := f.tracker.GetProjectPriorities(ctx, projectKey)
	if err != nil {
		ui.PrintWarning(fmt.Sprintf("could not load priorities: %v", err))
		return ""
	}
	for _, p := range priorities {
		if strings.EqualFold(p.Name, name) {
			return p.ID
		}
	}
	ui.PrintWarning(fmt.Sprintf("priority '%s' not found, creating without priority", name))
	return ""
}

func (f *CreateCommandFactory) resolveAssignee(ctx context.Context, projectKey, query string) string {
	users, err := f.tracker.SearchAssignableUsers(ctx, projectKey, query)
	if err != nil || len(users) == 0 {
		ui.PrintWarning(fmt.Sprintf("no assignable user matches '%s', creating unassigned", query))
		return ""
	}
	return users[0].AccountID
}

// resolveEpic accepts an issue key or an epic name. Names are matched against
// the project's epics by name or summary.
func (f *CreateCommandFactory) resolveEpic(ctx context.Context, projectKey, value string) string {
	if looksLikeIssueKey(value) {
		return strings.ToUpper(value)
	}

	epics, err := f.tracker.GetEpics(ctx, projectKey)
	if err != nil {
		ui.PrintWarning(fmt.Sprintf("could not load epics: %v", err))
		return ""
	}
	for _, e := range epics {
		if strings.EqualFold(e.Name, value) || strings.EqualFold(e.Summary, value) {
			return e.Key
		}
	}
	ui.PrintWarning(fmt.Sprintf("epic '%s' not found, creating without epic", value))
	return ""
}

// resolveSprint accepts a numeric sprint id or a sprint name. Names are
// matched against the board's active and future sprints.
func (f *CreateCommandFactory) resolveSprint(ctx context.Context, projectKey, value string) int64 {
	if id, err := strconv.ParseInt(value, 10, 64); err == nil {
		return id
	}

	sprints, err := f.tracker.GetSprints(ctx, projectKey)
	if err != nil {
		ui.PrintWarning(fmt.Sprintf("could not load sprints: %v", err))
		return 0
	}
	for _, s := range sprints {
		if strings.EqualFold(s.Name, value) {
			return s.ID
		}
	}
	ui.PrintWarning(fmt.Sprintf("sprint '%s' not found, creating without sprint", value))
	return 0
}

func looksLikeIssueKey(value string) bool {
	idx := strings.IndexByte(value, '-')
	if idx <= 0 || idx == len(value)-1 {
		return false
	}
	for _, r := range value[idx+1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (f *CreateCommandFactory) resolveComponents(ctx context.Context, projectKey string, names []string) []string {
	components, err := f.tracker.GetComponents(ctx, projectKey)
	if err != nil {
		ui.PrintWarning(fmt.Sprintf("could not load components: %v", err))
		return nil
	}

	byName := make(map[string]string, len(components))
	for _, c := range components {
		byName[strings.ToLower(c.Name)] = c.ID
	}

	ids := make([]string, 0, len(names))
	for _, name := range names {
		if id, ok := byName[strings.ToLower(name)]; ok {
			ids = append(ids, id)
		} else {
			ui.PrintWarning(fmt.Sprintf("component '%s' not found, skipping", name))
		}
	}
	return ids
}

func (f *CreateCommandFactory) printPreview(draft *models.GeneratedTicket, t *i18n.Translations) {
	separator := strings.Repeat("─", 60)

	fmt.Println()
	fmt.Println(separator)

	ui.PrintInfo(t.GetMessage("create.preview_title", 0, nil))
	fmt.Println()

	ui.PrintKeyValue(t.GetMessage("create.preview_title_label", 0, nil), draft.Title)
	fmt.Println()

	ui.PrintInfo(fmt.Sprintf("%s:", t.GetMessage("create.preview_description_label", 0, nil)))
	fmt.Println(draft.Description)

	fmt.Println(separator)
	fmt.Println()
}

func (f *CreateCommandFactory) recordHistory(created *models.CreatedIssue, ticket models.Ticket, url string) {
	if f.history == nil {
		return
	}
	entry := models.TicketHistoryEntry{
		Key:        created.Key,
		Title:      ticket.Summary,
		URL:        url,
		ProjectKey: ticket.ProjectKey,
		IssueType:  ticket.IssueType,
		CreatedAt:  time.Now(),
	}
	if err := f.history.Add(entry); err != nil {
		ui.PrintWarning(fmt.Sprintf("could not record ticket in history: %v", err))
	}
}

func (f *CreateCommandFactory) rememberLastUsed(cfg *appcfg.Config, ticket models.Ticket, meta models.TicketMetadata) {
	cfg.JiraConfig.LastUsed.ProjectKey = ticket.ProjectKey
	cfg.JiraConfig.LastUsed.IssueType = ticket.IssueType
	cfg.JiraConfig.LastUsed.PriorityID = meta.PriorityID
	cfg.JiraConfig.LastUsed.EpicKey = meta.EpicKey
	if len(meta.Labels) > 0 {
		cfg.JiraConfig.LastUsed.Label = meta.Labels[0]
	}
	if len(meta.ComponentIDs) > 0 {
		cfg.JiraConfig.LastUsed.ComponentID = meta.ComponentIDs[0]
	}

	if err := appcfg.SaveConfig(cfg); err != nil {
		ui.PrintWarning(fmt.Sprintf("could not save last used values: %v", err))
	}
}
