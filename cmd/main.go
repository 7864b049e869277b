package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Gyeom/jira-automation/internal/ai"
	configcmd "github.com/Gyeom/jira-automation/internal/commands/config"
	"github.com/Gyeom/jira-automation/internal/commands/create"
	"github.com/Gyeom/jira-automation/internal/commands/doctor"
	historycmd "github.com/Gyeom/jira-automation/internal/commands/history"
	"github.com/Gyeom/jira-automation/internal/commands/issues"
	"github.com/Gyeom/jira-automation/internal/commands/registry"
	"github.com/Gyeom/jira-automation/internal/commands/subtasks"
	templatescmd "github.com/Gyeom/jira-automation/internal/commands/templates"
	cfg "github.com/Gyeom/jira-automation/internal/config"
	"github.com/Gyeom/jira-automation/internal/git"
	"github.com/Gyeom/jira-automation/internal/history"
	"github.com/Gyeom/jira-automation/internal/i18n"
	"github.com/Gyeom/jira-automation/internal/logger"
	"github.com/Gyeom/jira-automation/internal/providers"
	"github.com/Gyeom/jira-automation/internal/subtask"
	"github.com/Gyeom/jira-automation/internal/suggest"
	"github.com/Gyeom/jira-automation/internal/templates"
	"github.com/Gyeom/jira-automation/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	logger.Initialize(os.Getenv("JIRA_AUTOMATION_DEBUG") != "", os.Getenv("JIRA_AUTOMATION_VERBOSE") != "")

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Error starting the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func initializeApp() (*cli.Command, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not resolve the user home directory: %w", err)
	}

	cfgApp, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language, "")
	if err != nil {
		return nil, fmt.Errorf("could not load translations: %w", err)
	}

	dataDir := filepath.Dir(cfgApp.PathFile)

	templateStore, err := templates.NewStore(filepath.Join(dataDir, "templates.json"))
	if err != nil {
		return nil, fmt.Errorf("could not open the template store: %w", err)
	}

	historyStore, err := history.NewStore(filepath.Join(dataDir, "history.json"))
	if err != nil {
		return nil, fmt.Errorf("could not open the ticket history: %w", err)
	}

	gitService := git.NewGitService()
	trackerClient := providers.NewTrackerClient(cfgApp)
	suggestionEngine := suggest.NewEngine(templateStore)
	subtaskCreator := subtask.NewCreator(trackerClient)

	generatorProvider := func(ctx context.Context) (ai.TicketContentGenerator, error) {
		return providers.NewTicketContentGenerator(ctx, cfgApp)
	}

	registerCommand := registry.NewRegistry(cfgApp, translations)

	if err := registerCommand.Register("create", create.NewCreateCommandFactory(gitService, trackerClient, generatorProvider, historyStore)); err != nil {
		return nil, fmt.Errorf("could not register the 'create' command: %w", err)
	}

	if err := registerCommand.Register("subtasks", subtasks.NewSubtasksCommandFactory(gitService, suggestionEngine, subtaskCreator, templateStore)); err != nil {
		return nil, fmt.Errorf("could not register the 'subtasks' command: %w", err)
	}

	if err := registerCommand.Register("issues", issues.NewIssuesCommandFactory(trackerClient)); err != nil {
		return nil, fmt.Errorf("could not register the 'issues' command: %w", err)
	}

	if err := registerCommand.Register("templates", templatescmd.NewTemplatesCommandFactory(templateStore)); err != nil {
		return nil, fmt.Errorf("could not register the 'templates' command: %w", err)
	}

	if err := registerCommand.Register("config", configcmd.NewConfigCommandFactory()); err != nil {
		return nil, fmt.Errorf("could not register the 'config' command: %w", err)
	}

	if err := registerCommand.Register("doctor", doctor.NewDoctorCommandFactory(trackerClient, gitService)); err != nil {
		return nil, fmt.Errorf("could not register the 'doctor' command: %w", err)
	}

	if err := registerCommand.Register("history", historycmd.NewHistoryCommandFactory(historyStore)); err != nil {
		return nil, fmt.Errorf("could not register the 'history' command: %w", err)
	}

	return &cli.Command{
		Name:                  "jira-automation",
		Usage:                 translations.GetMessage("app_usage", 0, nil),
		Version:               version.Version,
		Commands:              registerCommand.CreateCommands(),
		EnableShellCompletion: true,
	}, nil
}
