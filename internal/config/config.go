package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config models taskline.yml.
type Config struct {
	Files struct {
		Tasks string `yaml:"tasks"`
		Users string `yaml:"users"`
	} `yaml:"files"`
	Reports struct {
		TaskOverview string `yaml:"task_overview"`
		UserOverview string `yaml:"user_overview"`
	} `yaml:"reports"`
	DefaultAccount struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"default_account"`
}

// Validate ensures the config meets required structure.
func (c *Config) Validate() error {
	if c.Files.Tasks == "" {
		return fmt.Errorf("config.files.tasks is required")
	}
	if c.Files.Users == "" {
		return fmt.Errorf("config.files.users is required")
	}
	if c.Files.Tasks == c.Files.Users {
		return fmt.Errorf("config.files.tasks and config.files.users must differ")
	}
	if c.Reports.TaskOverview == "" {
		return fmt.Errorf("config.reports.task_overview is required")
	}
	if c.Reports.UserOverview == "" {
		return fmt.Errorf("config.reports.user_overview is required")
	}
	if c.DefaultAccount.Username == "" {
		return fmt.Errorf("config.default_account.username is required")
	}
	if c.DefaultAccount.Password == "" {
		return fmt.Errorf("config.default_account.password is required")
	}
	return nil
}

// Path returns the config file path for a workspace.
func Path(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, "taskline.yml")
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := FromYAML([]byte(defaultTemplate))
	if err != nil {
		panic(fmt.Sprintf("default config invalid: %v", err))
	}
	return cfg
}

// LoadOptional returns the workspace config, or the default when no
// taskline.yml exists.
func LoadOptional(workspace string) (*Config, error) {
	data, err := os.ReadFile(Path(workspace))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return FromYAML(data)
}

// FromYAML parses and validates config from raw YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

const defaultTemplate = `files:
  tasks: tasks.txt
  users: user.txt

reports:
  task_overview: task_overview.txt
  user_overview: user_overview.txt

default_account:
  username: admin
  password: password
`
