package config

import "time"

// Config is the top-level primer configuration, corresponding to .primer.yml.
type Config struct {
	Server   ServerConfig   `yaml:"server" koanf:"server"`
	Database DatabaseConfig `yaml:"database" koanf:"database"`
	Admin    AdminConfig    `yaml:"admin" koanf:"admin"`
	GitHub   GitHubConfig   `yaml:"github" koanf:"github"`
	Log      LogConfig      `yaml:"log" koanf:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port" koanf:"port"`
	AllowAllOrigins bool          `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	ListTimeout     time.Duration `yaml:"list_timeout" koanf:"list_timeout"` // deadline for the public listing query
}

// DatabaseConfig points at the SQLite file.
type DatabaseConfig struct {
	Path string `yaml:"path" koanf:"path"`
}

// AdminConfig is the single admin credential guarding import and delete.
type AdminConfig struct {
	Username string `yaml:"username" koanf:"username"`
	Password string `yaml:"password" koanf:"password"`
}

// GitHubConfig controls how the importer talks to GitHub.
type GitHubConfig struct {
	Token   string        `yaml:"token,omitempty" koanf:"token"`
	APIURL  string        `yaml:"api_url,omitempty" koanf:"api_url"`
	Timeout time.Duration `yaml:"timeout" koanf:"timeout"`
	Include []string      `yaml:"include" koanf:"include"`
	Exclude []string      `yaml:"exclude" koanf:"exclude"`
}

// LogConfig selects the logrus level and formatter.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}
