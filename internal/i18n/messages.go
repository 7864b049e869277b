package i18n

var defaultMessages = `
	[app_usage]
	other = "Create Jira tickets from your local changes with AI-drafted content"

	[analyzing_changes]
	other = "Analyzing local changes..."

	[generating_ticket]
	other = "Generating ticket content with {{.Provider}}..."

	[ui_error.try_suggestion]
	other = "💡 Try: "

	[create.command_usage]
	other = "Analyze uncommitted changes and create a Jira ticket from them"

	[create.banner]
	other = "Jira Ticket Creator"

	[create.flag_project]
	other = "Jira project key (defaults to the configured project)"

	[create.flag_type]
	other = "Issue type name (defaults to the configured issue type)"

	[create.flag_priority]
	other = "Priority name to set on the ticket"

	[create.flag_epic]
	other = "Epic key or name to link the ticket under"

	[create.flag_sprint]
	other = "Sprint id or name to place the ticket in"

	[create.flag_labels]
	other = "Labels to attach (repeatable)"

	[create.flag_components]
	other = "Component names to attach (repeatable)"

	[create.flag_assignee]
	other = "Assignee account id or search text"

	[create.flag_parent]
	other = "Parent issue key; creates the ticket as a subtask"

	[create.flag_language]
	other = "Output language for the generated content (en, ko, es, ...)"

	[create.flag_estimate]
	other = "Original time estimate, e.g. 3h or 2d"

	[create.flag_story_points]
	other = "Story points to set"

	[create.flag_due_date]
	other = "Due date in YYYY-MM-DD format"

	[create.flag_dry_run]
	other = "Generate and print the ticket without creating it"

	[create.no_changes]
	other = "No uncommitted changes found. Nothing to create a ticket from."

	[create.changed_files]
	other = "Changed files:"

	[create.preview_title]
	other = "Generated ticket preview"

	[create.preview_title_label]
	other = "Title"

	[create.preview_description_label]
	other = "Description"

	[create.confirm_prompt]
	other = "Create this ticket?"

	[create.cancelled]
	other = "Ticket creation cancelled."

	[create.creating]
	other = "Creating Jira ticket..."

	[create.created]
	other = "Jira ticket created: {{.Key}} ({{.URL}})"

	[create.dry_run_notice]
	other = "Dry run: the ticket was not created."

	[subtasks.command_usage]
	other = "Suggest and create subtasks for a parent issue"

	[subtasks.suggest_usage]
	other = "Analyze recent commits and print subtask suggestions"

	[subtasks.create_usage]
	other = "Create suggested subtasks under a parent issue"

	[subtasks.flag_parent]
	other = "Parent issue key, e.g. PROJ-123"

	[subtasks.flag_commits]
	other = "Number of recent commits to analyze"

	[subtasks.flag_min_confidence]
	other = "Minimum confidence for suggestions to be used"

	[subtasks.flag_template]
	other = "Template name whose subtasks should be created"

	[subtasks.flag_dry_run]
	other = "Print the planned subtasks without creating them"

	[subtasks.validating_parent]
	other = "Validating parent issue {{.Parent}}..."

	[subtasks.parent_label]
	other = "Parent"

	[subtasks.no_suggestions]
	other = "No subtask suggestions for the analyzed commits."

	[subtasks.planned]
	one = "{{.Count}} subtask to create:"
	other = "{{.Count}} subtasks to create:"

	[subtasks.dry_run_notice]
	other = "Dry run: no subtasks were created."

	[subtasks.confirm_prompt]
	other = "Create {{.Count}} subtasks under {{.Parent}}?"

	[subtasks.cancelled]
	other = "Subtask creation cancelled."

	[subtasks.creating]
	other = "Creating subtasks..."

	[subtasks.batch_result]
	other = "Created {{.Success}} of {{.Total}} subtasks under {{.Parent}} ({{.Failed}} failed)"

	[templates.command_usage]
	other = "Manage subtask templates"

	[templates.list_usage]
	other = "List templates and their active state"

	[templates.seed_usage]
	other = "Seed the built-in default templates when none exist"

	[templates.enable_usage]
	other = "Activate a template by id or name"

	[templates.disable_usage]
	other = "Deactivate a template by id or name"

	[templates.delete_usage]
	other = "Delete a template by id or name"

	[templates.seeded]
	other = "Default templates seeded: {{.Count}} templates active"

	[templates.seed_skipped]
	other = "Templates already exist, nothing seeded."

	[templates.deleted]
	other = "Template '{{.Name}}' deleted."

	[templates.none]
	other = "No templates. Seed the defaults with: jira-automation templates seed"

	[templates.not_found]
	other = "No template matches '{{.Name}}'"

	[templates.missing_argument]
	other = "A template id or name is required"

	[config.command_usage]
	other = "Show or change jira-automation configuration"

	[config.init_usage]
	other = "Interactively configure Jira credentials and the AI provider"

	[config.init_banner]
	other = "jira-automation setup"

	[config.init_jira_intro]
	other = "Jira Cloud credentials (API tokens: https://id.atlassian.com/manage-profile/security/api-tokens)"

	[config.init_ai_intro]
	other = "AI provider used to draft ticket content (gemini, openai, anthropic)"

	[config.prompt_base_url]
	other = "Jira base URL (https://your-site.atlassian.net)"

	[config.prompt_email]
	other = "Jira account email"

	[config.prompt_api_key]
	other = "Jira API token"

	[config.prompt_provider]
	other = "AI provider"

	[config.prompt_ai_key]
	other = "AI API key"

	[config.prompt_model]
	other = "AI model (empty for the provider default)"

	[config.prompt_default_project]
	other = "Default project key (optional)"

	[config.prompt_output_language]
	other = "Output language for generated tickets"

	[config.invalid_url]
	other = "'{{.URL}}' is not a valid URL"

	[config.invalid_provider]
	other = "Unsupported AI provider: {{.Provider}}"

	[config.show_usage]
	other = "Print the current configuration"

	[config.current]
	other = "Current configuration"

	[config.jira_usage]
	other = "Set Jira credentials and defaults"

	[config.flag_base_url]
	other = "Jira base URL"

	[config.flag_email]
	other = "Jira account email"

	[config.flag_api_key]
	other = "Jira API token"

	[config.flag_default_project]
	other = "Default project key"

	[config.flag_default_issue_type]
	other = "Default issue type name"

	[config.jira_missing_fields]
	other = "base-url, email and api-key must be set together"

	[config.jira_not_configured]
	other = "Jira is not configured. Run: jira-automation config init"

	[config.ai_usage]
	other = "Set the AI provider, key and model"

	[config.flag_provider]
	other = "AI provider (gemini, openai or anthropic)"

	[config.flag_ai_key]
	other = "AI API key"

	[config.flag_model]
	other = "Model name for the provider"

	[config.ai_key_not_set]
	other = "AI API key is not set"

	[config.language_usage]
	other = "Set the output language for generated tickets"

	[config.language_missing]
	other = "A language code is required, e.g. en or ko"

	[config.saved]
	other = "Configuration saved."

	[config.error_saving]
	other = "Error saving configuration: {{.Error}}"

	[doctor.command_usage]
	other = "Check the Jira connection and configuration"

	[doctor.running_checks]
	other = "Running health checks"

	[doctor.check_config_file]
	other = "Configuration file"

	[doctor.check_git_installed]
	other = "Git installed"

	[doctor.check_git_repo]
	other = "Inside a git repository"

	[doctor.check_jira]
	other = "Jira connection"

	[doctor.check_ai_key]
	other = "AI provider key"

	[doctor.checks_passed]
	other = "All checks passed."

	[doctor.checks_failed]
	other = "Some checks failed."

	[history.command_usage]
	other = "Show recently created tickets"

	[history.flag_limit]
	other = "Maximum number of entries to show"

	[history.flag_clear]
	other = "Delete the recorded history"

	[history.cleared]
	other = "History cleared."

	[history.empty]
	other = "No tickets created yet."

	[issues.command_usage]
	other = "Browse tracker issues, projects, users and links"

	[issues.recent_usage]
	other = "Show the most recently created issues of a project"

	[issues.projects_usage]
	other = "Search projects by key or name"

	[issues.users_usage]
	other = "Search users by name or email"

	[issues.labels_usage]
	other = "Show the labels in use in a project"

	[issues.link_types_usage]
	other = "Show the available issue link relations"

	[issues.link_usage]
	other = "Link two issues with a relation"

	[issues.flag_project]
	other = "Project key to browse"

	[issues.flag_limit]
	other = "Maximum number of issues to show"

	[issues.flag_link_type]
	other = "Link relation name"

	[issues.none_found]
	other = "Nothing found."

	[issues.missing_query]
	other = "A search query is required."

	[issues.link_missing_arguments]
	other = "Two issue keys are required: <inward-key> <outward-key>"

	[issues.linked]
	other = "🔗 Linked {{.Inward}} → {{.Outward}} ({{.Type}})"
	`
