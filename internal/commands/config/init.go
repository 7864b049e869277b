package config

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/Gyeom/jira-automation/internal/config"
	"github.com/Gyeom/jira-automation/internal/i18n"
	"github.com/Gyeom/jira-automation/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newInitCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:   "init",
		Usage:  t.GetMessage("config.init_usage", 0, nil),
		Action: initConfigAction(cfg, t),
	}
}

func initConfigAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		reader := bufio.NewReader(os.Stdin)
		return runInitProcess(reader, cfg, t)
	}
}

func runInitProcess(reader *bufio.Reader, cfg *config.Config, t *i18n.Translations) error {
	ui.PrintSectionBanner(t.GetMessage("config.init_banner", 0, nil))

	if err := configureJira(reader, cfg, t); err != nil {
		return err
	}
	if err := configureAI(reader, cfg, t); err != nil {
		return err
	}
	if err := configureDefaults(reader, cfg, t); err != nil {
		return err
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("%s", t.GetMessage("config.error_saving", 0, map[string]interface{}{
			"Error": err.Error(),
		}))
	}

	ui.PrintSuccess(os.Stdout, t.GetMessage("config.saved", 0, nil))
	return nil
}

func configureJira(reader *bufio.Reader, cfg *config.Config, t *i18n.Translations) error {
	fmt.Println(t.GetMessage("config.init_jira_intro", 0, nil))
	fmt.Println()

	baseURL, err := promptDefault(reader,
		t.GetMessage("config.prompt_base_url", 0, nil), cfg.JiraConfig.BaseURL)
	if err != nil {
		return err
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL != "" {
		if _, err := url.ParseRequestURI(baseURL); err != nil {
			return fmt.Errorf("%s", t.GetMessage("config.invalid_url", 0, map[string]interface{}{
				"URL": baseURL,
			}))
		}
	}

	email, err := promptDefault(reader,
		t.GetMessage("config.prompt_email", 0, nil), cfg.JiraConfig.Email)
	if err != nil {
		return err
	}

	apiKey, err := promptDefault(reader,
		t.GetMessage("config.prompt_api_key", 0, nil), cfg.JiraConfig.APIKey)
	if err != nil {
		return err
	}

	cfg.JiraConfig.BaseURL = baseURL
	cfg.JiraConfig.Email = email
	cfg.JiraConfig.APIKey = apiKey
	return nil
}

func configureAI(reader *bufio.Reader, cfg *config.Config, t *i18n.Translations) error {
	fmt.Println()
	fmt.Println(t.GetMessage("config.init_ai_intro", 0, nil))

	provider, err := promptDefault(reader,
		t.GetMessage("config.prompt_provider", 0, nil), cfg.AIConfig.Provider)
	if err != nil {
		return err
	}
	provider = strings.ToLower(strings.TrimSpace(provider))
	switch provider {
	case "gemini", "openai", "anthropic":
	default:
		return fmt.Errorf("%s", t.GetMessage("config.invalid_provider", 0, map[string]interface{}{
			"Provider": provider,
		}))
	}

	apiKey, err := promptDefault(reader,
		t.GetMessage("config.prompt_ai_key", 0, nil), cfg.AIConfig.APIKey)
	if err != nil {
		return err
	}

	model, err := promptDefault(reader,
		t.GetMessage("config.prompt_model", 0, nil), cfg.AIConfig.Model)
	if err != nil {
		return err
	}

	cfg.AIConfig.Provider = provider
	cfg.AIConfig.APIKey = apiKey
	cfg.AIConfig.Model = model
	return nil
}

func configureDefaults(reader *bufio.Reader, cfg *config.Config, t *i18n.Translations) error {
	fmt.Println()

	project, err := promptDefault(reader,
		t.GetMessage("config.prompt_default_project", 0, nil), cfg.JiraConfig.DefaultProjectKey)
	if err != nil {
		return err
	}
	cfg.JiraConfig.DefaultProjectKey = strings.ToUpper(project)

	lang, err := promptDefault(reader,
		t.GetMessage("config.prompt_output_language", 0, nil), cfg.OutputLanguage)
	if err != nil {
		return err
	}
	if lang != "" {
		cfg.OutputLanguage = lang
	}
	return nil
}

// promptDefault reads a trimmed line; an empty answer keeps the current value.
func promptDefault(reader *bufio.Reader, prompt, current string) (string, error) {
	if current != "" {
		fmt.Printf("%s [%s]: ", prompt, current)
	} else {
		fmt.Printf("%s: ", prompt)
	}

	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("error reading input: %w", err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return current, nil
	}
	return line, nil
}
