package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to primer! Let's configure your tutorial site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			p, err := strconv.Atoi(s)
			if err != nil || p <= 0 || p > 65535 {
				return fmt.Errorf("port must be a number between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 2. Database location.
	dbPrompt := promptui.Prompt{
		Label:   "SQLite database path",
		Default: cfg.Database.Path,
	}
	cfg.Database.Path, err = dbPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("database path: %w", err)
	}

	// 3. Admin credential.
	userPrompt := promptui.Prompt{
		Label:   "Admin username",
		Default: cfg.Admin.Username,
	}
	cfg.Admin.Username, err = userPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("admin username: %w", err)
	}

	passPrompt := promptui.Prompt{
		Label: "Admin password",
		Mask:  '*',
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("password cannot be empty")
			}
			return nil
		},
	}
	cfg.Admin.Password, err = passPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("admin password: %w", err)
	}

	// 4. Optional GitHub token.
	tokenPrompt := promptui.Prompt{
		Label: "GitHub token (optional, raises API rate limits)",
		Mask:  '*',
	}
	cfg.GitHub.Token, err = tokenPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("github token: %w", err)
	}

	// 5. Markdown patterns.
	includePrompt := promptui.Prompt{
		Label:   "Markdown include patterns (comma-separated globs)",
		Default: strings.Join(DefaultInclude, ","),
	}
	includeStr, err := includePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	if include := splitAndTrim(includeStr); len(include) > 0 {
		cfg.GitHub.Include = include
	}

	excludePrompt := promptui.Prompt{
		Label:   "Exclude patterns (comma-separated, leave blank for none)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	cfg.GitHub.Exclude = splitAndTrim(excludeStr)

	// 6. Log format.
	formatPrompt := promptui.Select{
		Label: "Log format",
		Items: []string{"text", "json"},
	}
	_, cfg.Log.Format, err = formatPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("log format: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
