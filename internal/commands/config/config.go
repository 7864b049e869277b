package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gyeom/jira-automation/internal/config"
	"github.com/Gyeom/jira-automation/internal/i18n"
	"github.com/Gyeom/jira-automation/internal/ui"
	"github.com/urfave/cli/v3"
)

// ConfigCommandFactory is the factory to create the config command.
type ConfigCommandFactory struct{}

// NewConfigCommandFactory creates a new instance of the factory.
func NewConfigCommandFactory() *ConfigCommandFactory {
	return &ConfigCommandFactory{}
}

// CreateCommand creates the config command with its subcommands.
func (c *ConfigCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "config",
		Aliases: []string{"cfg"},
		Usage:   t.GetMessage("config.command_usage", 0, nil),
		Commands: []*cli.Command{
			c.newInitCommand(t, cfg),
			c.newShowCommand(t, cfg),
			c.newSetJiraCommand(t, cfg),
			c.newSetAICommand(t, cfg),
			c.newSetLanguageCommand(t, cfg),
		},
	}
}

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config.show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			fmt.Println(t.GetMessage("config.current", 0, nil))
			fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━\n")

			ui.PrintKeyValue("language", cfg.Language)
			ui.PrintKeyValue("output language", cfg.OutputLanguage)

			if cfg.HasJiraCredentials() {
				ui.PrintKeyValue("jira base URL", cfg.JiraConfig.BaseURL)
				ui.PrintKeyValue("jira email", cfg.JiraConfig.Email)
				ui.PrintKeyValue("jira API token", maskSecret(cfg.JiraConfig.APIKey))
			} else {
				fmt.Println(t.GetMessage("config.jira_not_configured", 0, nil))
			}

			if cfg.JiraConfig.DefaultProjectKey != "" {
				ui.PrintKeyValue("default project", cfg.JiraConfig.DefaultProjectKey)
			}
			ui.PrintKeyValue("default issue type", cfg.JiraConfig.DefaultIssueType)

			ui.PrintKeyValue("AI provider", cfg.AIConfig.Provider)
			if cfg.AIConfig.Model != "" {
				ui.PrintKeyValue("AI model", cfg.AIConfig.Model)
			}
			if cfg.AIConfig.APIKey == "" {
				fmt.Println(t.GetMessage("config.ai_key_not_set", 0, nil))
			} else {
				ui.PrintKeyValue("AI API key", maskSecret(cfg.AIConfig.APIKey))
			}

			return nil
		},
	}
}

func (c *ConfigCommandFactory) newSetJiraCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "jira",
		Usage: t.GetMessage("config.jira_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base-url",
				Aliases: []string{"u"},
				Usage:   t.GetMessage("config.flag_base_url", 0, nil),
			},
			&cli.StringFlag{
				Name:  "email",
				Usage: t.GetMessage("config.flag_email", 0, nil),
			},
			&cli.StringFlag{
				Name:  "api-key",
				Usage: t.GetMessage("config.flag_api_key", 0, nil),
			},
			&cli.StringFlag{
				Name:  "project",
				Usage: t.GetMessage("config.flag_default_project", 0, nil),
			},
			&cli.StringFlag{
				Name:  "issue-type",
				Usage: t.GetMessage("config.flag_default_issue_type", 0, nil),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			baseURL := command.String("base-url")
			email := command.String("email")
			apiKey := command.String("api-key")

			if baseURL != "" || email != "" || apiKey != "" {
				if baseURL == "" || email == "" || apiKey == "" {
					msg := t.GetMessage("config.jira_missing_fields", 0, nil)
					return fmt.Errorf("%s", msg)
				}
				cfg.JiraConfig.BaseURL = strings.TrimRight(baseURL, "/")
				cfg.JiraConfig.Email = email
				cfg.JiraConfig.APIKey = apiKey
			}

			if project := command.String("project"); project != "" {
				cfg.JiraConfig.DefaultProjectKey = strings.ToUpper(project)
			}
			if issueType := command.String("issue-type"); issueType != "" {
				cfg.JiraConfig.DefaultIssueType = issueType
			}

			return saveAndConfirm(cfg, t)
		},
	}
}

func (c *ConfigCommandFactory) newSetAICommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "ai",
		Usage: t.GetMessage("config.ai_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "provider",
				Usage: t.GetMessage("config.flag_provider", 0, nil),
			},
			&cli.StringFlag{
				Name:  "api-key",
				Usage: t.GetMessage("config.flag_ai_key", 0, nil),
			},
			&cli.StringFlag{
				Name:  "model",
				Usage: t.GetMessage("config.flag_model", 0, nil),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			if provider := command.String("provider"); provider != "" {
				cfg.AIConfig.Provider = strings.ToLower(provider)
			}
			if apiKey := command.String("api-key"); apiKey != "" {
				cfg.AIConfig.APIKey = apiKey
			}
			if model := command.String("model"); model != "" {
				cfg.AIConfig.Model = model
			}

			return saveAndConfirm(cfg, t)
		},
	}
}

func (c *ConfigCommandFactory) newSetLanguageCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "language",
		Aliases:   []string{"lang"},
		Usage:     t.GetMessage("config.language_usage", 0, nil),
		ArgsUsage: "<code>",
		Action: func(ctx context.Context, command *cli.Command) error {
			code := command.Args().First()
			if code == "" {
				msg := t.GetMessage("config.language_missing", 0, nil)
				return fmt.Errorf("%s", msg)
			}

			cfg.OutputLanguage = code
			return saveAndConfirm(cfg, t)
		},
	}
}

func saveAndConfirm(cfg *config.Config, t *i18n.Translations) error {
	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("%s", t.GetMessage("config.error_saving", 0, map[string]interface{}{
			"Error": err.Error(),
		}))
	}
	ui.PrintInfo(t.GetMessage("config.saved", 0, nil))
	return nil
}

func maskSecret(secret string) string {
	if len(secret) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}
