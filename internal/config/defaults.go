package config

import "time"

// DefaultPath is where the config file is looked up when --config is not given.
const DefaultPath = ".primer.yml"

// DefaultInclude matches markdown files by name during folder scans.
var DefaultInclude = []string{"*.md"}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			ListTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Path: "data/primer.db",
		},
		Admin: AdminConfig{
			Username: "admin",
			Password: "admin",
		},
		GitHub: GitHubConfig{
			Timeout: 30 * time.Second,
			Include: append([]string(nil), DefaultInclude...),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
