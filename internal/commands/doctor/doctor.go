package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	appcfg "github.com/Gyeom/jira-automation/internal/config"
	"github.com/Gyeom/jira-automation/internal/i18n"
	"github.com/Gyeom/jira-automation/internal/models"
	"github.com/Gyeom/jira-automation/internal/ui"
	"github.com/urfave/cli/v3"
)

// TrackerService is a minimal interface for testing purposes
type TrackerService interface {
	TestConnection(ctx context.Context) error
	GetCurrentUser(ctx context.Context) (*models.User, error)
}

// RepoChecker is a minimal interface for testing purposes
type RepoChecker interface {
	IsRepository(ctx context.Context) bool
}

// DoctorCommandFactory is the factory to create the doctor command.
type DoctorCommandFactory struct {
	tracker TrackerService
	git     RepoChecker
}

// NewDoctorCommandFactory creates a new instance of the factory.
func NewDoctorCommandFactory(tracker TrackerService, git RepoChecker) *DoctorCommandFactory {
	return &DoctorCommandFactory{tracker: tracker, git: git}
}

// CreateCommand creates the doctor command.
func (d *DoctorCommandFactory) CreateCommand(t *i18n.Translations, cfg *appcfg.Config) *cli.Command {
	return &cli.Command{
		Name:    "doctor",
		Aliases: []string{"dr"},
		Usage:   t.GetMessage("doctor.command_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			return d.runHealthCheck(ctx, t, cfg)
		},
	}
}

type checkStatus int

const (
	checkStatusOK checkStatus = iota
	checkStatusWarning
	checkStatusError
)

type checkResult struct {
	status     checkStatus
	message    string
	suggestion string
}

type healthCheck struct {
	name string
	fn   func(ctx context.Context, cfg *appcfg.Config) checkResult
}

func (d *DoctorCommandFactory) runHealthCheck(ctx context.Context, t *i18n.Translations, cfg *appcfg.Config) error {
	ui.PrintSectionBanner(t.GetMessage("doctor.running_checks", 0, nil))

	checks := []healthCheck{
		{name: "doctor.check_config_file", fn: d.checkConfigFile},
		{name: "doctor.check_git_installed", fn: d.checkGitInstalled},
		{name: "doctor.check_git_repo", fn: d.checkGitRepo},
		{name: "doctor.check_jira", fn: d.checkJiraConnection},
		{name: "doctor.check_ai_key", fn: d.checkAIKey},
	}

	allPassed := true
	for _, check := range checks {
		checkName := t.GetMessage(check.name, 0, nil)
		spinner := ui.NewSmartSpinner(checkName)
		spinner.Start()

		result := check.fn(ctx, cfg)

		switch result.status {
		case checkStatusOK:
			spinner.Success(checkName)
			if result.message != "" {
				ui.PrintInfo("  " + result.message)
			}
		case checkStatusWarning:
			spinner.Warning(checkName)
			if result.message != "" {
				ui.PrintWarning("  " + result.message)
			}
			if result.suggestion != "" {
				ui.PrintInfo("  → " + result.suggestion)
			}
		case checkStatusError:
			spinner.Error(checkName)
			allPassed = false
			if result.message != "" {
				ui.PrintWarning("  " + result.message)
			}
			if result.suggestion != "" {
				ui.PrintInfo("  → " + result.suggestion)
			}
		}
	}

	fmt.Println()
	if !allPassed {
		msg := t.GetMessage("doctor.checks_failed", 0, nil)
		ui.PrintError(os.Stdout, msg)
		return fmt.Errorf("%s", msg)
	}

	ui.PrintSuccess(os.Stdout, t.GetMessage("doctor.checks_passed", 0, nil))
	return nil
}

func (d *DoctorCommandFactory) checkConfigFile(_ context.Context, cfg *appcfg.Config) checkResult {
	if cfg.PathFile == "" {
		return checkResult{
			status:     checkStatusError,
			message:    "no configuration file loaded",
			suggestion: "run: jira-automation config init",
		}
	}
	if _, err := os.Stat(cfg.PathFile); err != nil {
		return checkResult{
			status:     checkStatusError,
			message:    fmt.Sprintf("config file missing: %s", cfg.PathFile),
			suggestion: "run: jira-automation config init",
		}
	}
	return checkResult{status: checkStatusOK, message: cfg.PathFile}
}

func (d *DoctorCommandFactory) checkGitInstalled(_ context.Context, _ *appcfg.Config) checkResult {
	path, err := exec.LookPath("git")
	if err != nil {
		return checkResult{
			status:     checkStatusError,
			message:    "git is not installed",
			suggestion: "install git and make sure it is on PATH",
		}
	}
	return checkResult{status: checkStatusOK, message: path}
}

func (d *DoctorCommandFactory) checkGitRepo(ctx context.Context, _ *appcfg.Config) checkResult {
	if !d.git.IsRepository(ctx) {
		return checkResult{
			status:     checkStatusWarning,
			message:    "current directory is not a git repository",
			suggestion: "cd into a repository before running create",
		}
	}
	return checkResult{status: checkStatusOK}
}

func (d *DoctorCommandFactory) checkJiraConnection(ctx context.Context, cfg *appcfg.Config) checkResult {
	if !cfg.HasJiraCredentials() {
		return checkResult{
			status:     checkStatusError,
			message:    "Jira credentials are not configured",
			suggestion: "run: jira-automation config init",
		}
	}

	if err := d.tracker.TestConnection(ctx); err != nil {
		return checkResult{
			status:     checkStatusError,
			message:    fmt.Sprintf("connection failed: %v", err),
			suggestion: "check the base URL, email and API token",
		}
	}

	user, err := d.tracker.GetCurrentUser(ctx)
	if err != nil || user == nil {
		return checkResult{status: checkStatusOK}
	}
	return checkResult{status: checkStatusOK, message: "authenticated as " + user.DisplayName}
}

func (d *DoctorCommandFactory) checkAIKey(_ context.Context, cfg *appcfg.Config) checkResult {
	if cfg.AIConfig.APIKey == "" {
		return checkResult{
			status:     checkStatusWarning,
			message:    fmt.Sprintf("no API key for provider '%s'", cfg.AIConfig.Provider),
			suggestion: "run: jira-automation config ai --api-key <key>",
		}
	}
	return checkResult{status: checkStatusOK, message: "provider: " + cfg.AIConfig.Provider}
}
