package subtasks

import (
	"context"
	"fmt"
	"os"
	"strings"

	appcfg "github.com/Gyeom/jira-automation/internal/config"
	apperrors "github.com/Gyeom/jira-automation/internal/errors"
	"github.com/Gyeom/jira-automation/internal/i18n"
	"github.com/Gyeom/jira-automation/internal/models"
	"github.com/Gyeom/jira-automation/internal/templates"
	"github.com/Gyeom/jira-automation/internal/ui"
	"github.com/urfave/cli/v3"
)

const (
	defaultCommitCount   = 5
	defaultMinConfidence = 0.6
)

// CommitReader is a minimal interface for testing purposes
type CommitReader interface {
	GetRecentCommits(ctx context.Context, limit int) ([]models.CommitMeta, error)
}

// SuggestionEngine is a minimal interface for testing purposes
type SuggestionEngine interface {
	AnalyzeCommits(commits []models.CommitMeta) []models.CommitAnalysisResult
}

// SubtaskCreator is a minimal interface for testing purposes
type SubtaskCreator interface {
	ValidateParent(ctx context.Context, parentKey string) (*models.ParentIssue, error)
	CreateAll(ctx context.Context, parentKey string, specs []models.SubtaskSpec) (*models.BatchSubtaskResult, error)
}

// SubtasksCommandFactory is the factory to create the subtasks command.
type SubtasksCommandFactory struct {
	git     CommitReader
	engine  SuggestionEngine
	creator SubtaskCreator
	store   *templates.Store
}

// NewSubtasksCommandFactory creates a new instance of the factory.
func NewSubtasksCommandFactory(git CommitReader, engine SuggestionEngine, creator SubtaskCreator, store *templates.Store) *SubtasksCommandFactory {
	return &SubtasksCommandFactory{
		git:     git,
		engine:  engine,
		creator: creator,
		store:   store,
	}
}

// CreateCommand creates the subtasks command with its subcommands.
func (f *SubtasksCommandFactory) CreateCommand(t *i18n.Translations, cfg *appcfg.Config) *cli.Command {
	return &cli.Command{
		Name:    "subtasks",
		Aliases: []string{"st"},
		Usage:   t.GetMessage("subtasks.command_usage", 0, nil),
		Commands: []*cli.Command{
			f.newSuggestCommand(t),
			f.newCreateCommand(t, cfg),
		},
	}
}

func (f *SubtasksCommandFactory) newSuggestCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:    "suggest",
		Aliases: []string{"s"},
		Usage:   t.GetMessage("subtasks.suggest_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "commits",
				Aliases: []string{"n"},
				Usage:   t.GetMessage("subtasks.flag_commits", 0, nil),
				Value:   defaultCommitCount,
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			results, err := f.analyzeRecentCommits(ctx, int(command.Int("commits")))
			if err != nil {
				ui.HandleAppError(err, t)
				return err
			}

			total := 0
			for _, result := range results {
				if len(result.SuggestedSubtasks) == 0 {
					continue
				}
				total += len(result.SuggestedSubtasks)
				f.printCommitSuggestions(result)
			}

			if total == 0 {
				ui.PrintInfo(t.GetMessage("subtasks.no_suggestions", 0, nil))
			}
			return nil
		},
	}
}

func (f *SubtasksCommandFactory) newCreateCommand(t *i18n.Translations, cfg *appcfg.Config) *cli.Command {
	return &cli.Command{
		Name:    "create",
		Aliases: []string{"c"},
		Usage:   t.GetMessage("subtasks.create_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "parent",
				Aliases:  []string{"p"},
				Usage:    t.GetMessage("subtasks.flag_parent", 0, nil),
				Required: true,
			},
			&cli.IntFlag{
				Name:    "commits",
				Aliases: []string{"n"},
				Usage:   t.GetMessage("subtasks.flag_commits", 0, nil),
				Value:   defaultCommitCount,
			},
			&cli.StringFlag{
				Name:  "min-confidence",
				Usage: t.GetMessage("subtasks.flag_min_confidence", 0, nil),
			},
			&cli.StringFlag{
				Name:  "template",
				Usage: t.GetMessage("subtasks.flag_template", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: t.GetMessage("subtasks.flag_dry_run", 0, nil),
			},
		},
		Action: f.createAction(t, cfg),
	}
}

func (f *SubtasksCommandFactory) createAction(t *i18n.Translations, _ *appcfg.Config) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		parentKey := strings.ToUpper(command.String("parent"))

		spinner := ui.NewSmartSpinner(t.GetMessage("subtasks.validating_parent", 0, map[string]interface{}{
			"Parent": parentKey,
		}))
		spinner.Start()

		parent, err := f.creator.ValidateParent(ctx, parentKey)
		spinner.Stop()

		if err != nil {
			ui.HandleAppError(err, t)
			return err
		}

		// Subtasks always live in the parent's project; a key that names a
		// different project than the validated parent means the user typed
		// the wrong thing.
		if prefix := projectPrefix(parentKey); prefix != "" && parent.ProjectKey != "" && prefix != parent.ProjectKey {
			err := apperrors.ErrParentProjectMismatch.
				WithContext("parent", parentKey).
				WithContext("project", parent.ProjectKey)
			ui.HandleAppError(err, t)
			return err
		}

		ui.PrintKeyValue(t.GetMessage("subtasks.parent_label", 0, nil),
			fmt.Sprintf("%s [%s] %s", parent.Key, parent.Status, parent.Summary))

		var specs []models.SubtaskSpec
		if templateName := command.String("template"); templateName != "" {
			specs, err = f.specsFromTemplate(templateName)
			if err != nil {
				ui.PrintError(os.Stdout, t.GetMessage("templates.not_found", 0, map[string]interface{}{
					"Name": templateName,
				}))
				return err
			}
		} else {
			minConfidence := parseConfidence(command.String("min-confidence"))
			specs, err = f.specsFromSuggestions(ctx, int(command.Int("commits")), minConfidence)
			if err != nil {
				ui.HandleAppError(err, t)
				return err
			}
		}

		if len(specs) == 0 {
			ui.PrintInfo(t.GetMessage("subtasks.no_suggestions", 0, nil))
			return nil
		}

		f.printPlannedSubtasks(specs, t)

		if command.Bool("dry-run") {
			ui.PrintInfo(t.GetMessage("subtasks.dry_run_notice", 0, nil))
			return nil
		}

		if !ui.AskConfirmation(t.GetMessage("subtasks.confirm_prompt", 0, map[string]interface{}{
			"Count":  len(specs),
			"Parent": parentKey,
		})) {
			ui.PrintInfo(t.GetMessage("subtasks.cancelled", 0, nil))
			return nil
		}

		spinner = ui.NewSmartSpinner(t.GetMessage("subtasks.creating", 0, nil))
		spinner.Start()

		batch, err := f.creator.CreateAll(ctx, parentKey, specs)
		spinner.Stop()

		if err != nil {
			ui.HandleAppError(err, t)
			return err
		}

		f.printBatchResult(batch, t)
		return nil
	}
}

func (f *SubtasksCommandFactory) analyzeRecentCommits(ctx context.Context, limit int) ([]models.CommitAnalysisResult, error) {
	commits, err := f.git.GetRecentCommits(ctx, limit)
	if err != nil {
		return nil, err
	}
	return f.engine.AnalyzeCommits(commits), nil
}

func (f *SubtasksCommandFactory) specsFromSuggestions(ctx context.Context, commitCount int, minConfidence float64) ([]models.SubtaskSpec, error) {
	results, err := f.analyzeRecentCommits(ctx, commitCount)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var specs []models.SubtaskSpec
	for _, result := range results {
		for _, suggestion := range result.SuggestedSubtasks {
			if suggestion.Confidence < minConfidence {
				continue
			}
			key := strings.ToLower(suggestion.Title)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			specs = append(specs, models.SubtaskSpec{
				Title:       suggestion.Title,
				Description: suggestion.Description,
			})
		}
	}
	return specs, nil
}

func (f *SubtasksCommandFactory) specsFromTemplate(idOrName string) ([]models.SubtaskSpec, error) {
	template, ok := f.store.Find(idOrName)
	if !ok {
		return nil, apperrors.NewAppError(apperrors.TypeInternal, "template not found", nil).
			WithContext("template", idOrName)
	}

	specs := make([]models.SubtaskSpec, 0, len(template.Subtasks))
	for _, def := range template.Subtasks {
		specs = append(specs, models.SubtaskSpec{
			Title:          def.Title,
			Description:    def.Description,
			EstimatedHours: def.EstimatedHours,
			Labels:         def.Labels,
			Priority:       def.Priority,
		})
	}
	return specs, nil
}

func (f *SubtasksCommandFactory) printCommitSuggestions(result models.CommitAnalysisResult) {
	hash := result.CommitHash
	if len(hash) > 7 {
		hash = hash[:7]
	}
	firstLine := result.Message
	if idx := strings.IndexByte(firstLine, '\n'); idx >= 0 {
		firstLine = firstLine[:idx]
	}

	fmt.Println()
	ui.PrintInfo(fmt.Sprintf("%s %s", hash, firstLine))
	for _, suggestion := range result.SuggestedSubtasks {
		fmt.Printf("   • %s (%.0f%%) - %s\n", suggestion.Title, suggestion.Confidence*100, suggestion.Reason)
	}
}

func (f *SubtasksCommandFactory) printPlannedSubtasks(specs []models.SubtaskSpec, t *i18n.Translations) {
	fmt.Println()
	ui.PrintInfo(t.GetMessage("subtasks.planned", 0, map[string]interface{}{"Count": len(specs)}))
	for _, spec := range specs {
		line := "   • " + spec.Title
		if spec.EstimatedHours > 0 {
			line += fmt.Sprintf(" (%.1fh)", spec.EstimatedHours)
		}
		fmt.Println(line)
	}
}

func (f *SubtasksCommandFactory) printBatchResult(batch *models.BatchSubtaskResult, t *i18n.Translations) {
	fmt.Println()
	ui.PrintSuccess(os.Stdout, t.GetMessage("subtasks.batch_result", 0, map[string]interface{}{
		"Success": batch.SuccessCount,
		"Total":   batch.TotalRequested,
		"Parent":  batch.ParentIssueKey,
		"Failed":  batch.FailedCount,
	}))

	for _, created := range batch.CreatedSubtasks {
		fmt.Printf("   %s %s - %s\n", ui.SuccessEmoji, created.Key, created.Title)
	}
	for _, failure := range batch.Errors {
		ui.PrintWarning(fmt.Sprintf("%s: %s", failure.SubtaskTitle, failure.ErrorMessage))
	}
}

func projectPrefix(issueKey string) string {
	if idx := strings.IndexByte(issueKey, '-'); idx > 0 {
		return issueKey[:idx]
	}
	return ""
}

func parseConfidence(raw string) float64 {
	if raw == "" {
		return defaultMinConfidence
	}
	var value float64
	if _, err := fmt.Sscanf(raw, "%f", &value); err != nil || value < 0 || value > 1 {
		return defaultMinConfidence
	}
	return value
}
