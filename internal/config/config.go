package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type (
	Config struct {
		Language       string `json:"language"`
		OutputLanguage string `json:"output_language"`
		PathFile       string `json:"path_file"`

		JiraConfig JiraConfig `json:"jira_config"`
		AIConfig   AIConfig   `json:"ai_config"`
	}

	JiraConfig struct {
		BaseURL           string `json:"base_url,omitempty"`
		Email             string `json:"email,omitempty"`
		APIKey            string `json:"api_key,omitempty"`
		DefaultProjectKey string `json:"default_project_key,omitempty"`
		DefaultIssueType  string `json:"default_issue_type,omitempty"`

		// Custom field identifiers are instance-specific; the defaults match
		// a stock Jira Cloud site but can be overridden per instance.
		EpicLinkFieldID    string `json:"epic_link_field_id,omitempty"`
		SprintFieldID      string `json:"sprint_field_id,omitempty"`
		StoryPointsFieldID string `json:"story_points_field_id,omitempty"`
		StartDateFieldID   string `json:"start_date_field_id,omitempty"`

		LastUsed LastUsedValues `json:"last_used"`
	}

	// LastUsedValues remembers the previous ticket's selections so the next
	// run can pre-fill them.
	LastUsedValues struct {
		ProjectKey  string `json:"project_key,omitempty"`
		IssueType   string `json:"issue_type,omitempty"`
		PriorityID  string `json:"priority_id,omitempty"`
		EpicKey     string `json:"epic_key,omitempty"`
		Label       string `json:"label,omitempty"`
		ComponentID string `json:"component_id,omitempty"`
	}

	AIConfig struct {
		Provider       string `json:"provider"`
		APIKey         string `json:"api_key,omitempty"`
		Model          string `json:"model,omitempty"`
		TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
	}
)

const (
	defaultLang           = "en"
	defaultOutputLanguage = "en"
	defaultIssueType      = "Task"
	defaultAIProvider     = "gemini"
	defaultAITimeout      = 60

	defaultEpicLinkField    = "customfield_10014"
	defaultSprintField      = "customfield_10020"
	defaultStoryPointsField = "customfield_10016"
	defaultStartDateField   = "customfield_10015"
)

// HasJiraCredentials reports whether the auth triple is complete. Every
// authenticated tracker call requires all three values.
func (c *Config) HasJiraCredentials() bool {
	j := c.JiraConfig
	return j.BaseURL != "" && j.Email != "" && j.APIKey != ""
}

func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configDir := filepath.Join(path, ".jira-automation")
		configPath = filepath.Join(configDir, "config.json")

		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return nil, fmt.Errorf("error creating config directory: %w", err)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	config.PathFile = configPath
	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("loaded configuration is not valid: %w", err)
	}

	return &config, nil
}

func createDefaultConfig(path string) (*Config, error) {
	config := &Config{
		Language:       defaultLang,
		OutputLanguage: defaultOutputLanguage,
		PathFile:       path,
		JiraConfig: JiraConfig{
			DefaultIssueType:   defaultIssueType,
			EpicLinkFieldID:    defaultEpicLinkField,
			SprintFieldID:      defaultSprintField,
			StoryPointsFieldID: defaultStoryPointsField,
			StartDateFieldID:   defaultStartDateField,
		},
		AIConfig: AIConfig{
			Provider:       defaultAIProvider,
			TimeoutSeconds: defaultAITimeout,
		},
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("error saving default config: %w", err)
	}

	return config, nil
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration to save is not valid: %w", err)
	}

	if config.PathFile == "" {
		return errors.New("config file path is not set")
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	if err := os.WriteFile(config.PathFile, data, 0644); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}

	return nil
}

func applyDefaults(config *Config) {
	if config.Language == "" {
		config.Language = defaultLang
	}
	if config.OutputLanguage == "" {
		config.OutputLanguage = defaultOutputLanguage
	}
	if config.JiraConfig.DefaultIssueType == "" {
		config.JiraConfig.DefaultIssueType = defaultIssueType
	}
	if config.JiraConfig.EpicLinkFieldID == "" {
		config.JiraConfig.EpicLinkFieldID = defaultEpicLinkField
	}
	if config.JiraConfig.SprintFieldID == "" {
		config.JiraConfig.SprintFieldID = defaultSprintField
	}
	if config.JiraConfig.StoryPointsFieldID == "" {
		config.JiraConfig.StoryPointsFieldID = defaultStoryPointsField
	}
	if config.JiraConfig.StartDateFieldID == "" {
		config.JiraConfig.StartDateFieldID = defaultStartDateField
	}
	if config.AIConfig.Provider == "" {
		config.AIConfig.Provider = defaultAIProvider
	}
	if config.AIConfig.TimeoutSeconds <= 0 {
		config.AIConfig.TimeoutSeconds = defaultAITimeout
	}
}

func validateConfig(config *Config) error {
	if config.Language == "" {
		return errors.New("language cannot be empty")
	}

	// A partially configured auth triple is worse than none: it would make
	// every tracker call fail with a confusing 401.
	j := config.JiraConfig
	if (j.BaseURL != "" || j.Email != "" || j.APIKey != "") && !configuredOrEmpty(j) {
		return errors.New("jira base URL, email and API token must be configured together")
	}

	switch config.AIConfig.Provider {
	case "", "gemini", "openai", "anthropic":
	default:
		return fmt.Errorf("unsupported AI provider: %s", config.AIConfig.Provider)
	}
	return nil
}

func configuredOrEmpty(j JiraConfig) bool {
	return j.BaseURL != "" && j.Email != "" && j.APIKey != ""
}
