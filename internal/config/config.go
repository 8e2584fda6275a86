package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	founderr "github.com/ekim5sg/plugforge/internal/foundation/errors"
)

// Default values applied when the config file omits them.
const (
	DefaultPlugsDir    = "plugs"
	DefaultDeployHost  = "www.webhtml5.info"
	DefaultRemote      = "origin"
	DefaultBranch      = "main"
	DefaultPreviewPort = 8080
	DefaultHistoryPath = ".plugforge/history.db"
)

// Config represents the application configuration.
type Config struct {
	PlugsDir   string        `yaml:"plugs_dir"`
	DeployHost string        `yaml:"deploy_host"`
	Git        GitConfig     `yaml:"git"`
	Preview    PreviewConfig `yaml:"preview"`
	History    HistoryConfig `yaml:"history"`
}

// GitConfig controls the optional publish step. Repositories initialized by
// plugforge get an ignore file that keeps the run journal and this config
// file (which may hold auth material) out of published commits.
type GitConfig struct {
	Remote string       `yaml:"remote,omitempty"`
	Branch string       `yaml:"branch,omitempty"`
	Author AuthorConfig `yaml:"author,omitempty"`
	Auth   *AuthConfig  `yaml:"auth,omitempty"`
}

// AuthorConfig identifies the commit author.
type AuthorConfig struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// AuthConfig represents authentication configuration for the push remote.
type AuthConfig struct {
	Type     string `yaml:"type"` // "none", "ssh", "token", "basic"
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Token    string `yaml:"token,omitempty"`
	KeyPath  string `yaml:"key_path,omitempty"`
}

// PreviewConfig controls the local preview server.
type PreviewConfig struct {
	Port int `yaml:"port,omitempty"`
}

// HistoryConfig controls the scaffold run journal.
type HistoryConfig struct {
	Path string `yaml:"path,omitempty"`
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	if err := loadEnvFile(); err != nil {
		// Don't fail if .env doesn't exist, just log it
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, founderr.ConfigError("configuration file not found").
			WithContext("path", configPath).
			Build()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, founderr.ConfigError("failed to read config file").
			WithCause(err).
			WithContext("path", configPath).
			Build()
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, founderr.ConfigError("failed to unmarshal config").
			WithCause(err).
			WithContext("path", configPath).
			Build()
	}

	config.applyDefaults()
	return &config, nil
}

// LoadOrDefault loads the config file if present, otherwise returns defaults.
// Commands like create and preview work without a config file.
func LoadOrDefault(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := &Config{}
		cfg.applyDefaults()
		return cfg, nil
	}
	return Load(configPath)
}

func (c *Config) applyDefaults() {
	if c.PlugsDir == "" {
		c.PlugsDir = DefaultPlugsDir
	}
	if c.DeployHost == "" {
		c.DeployHost = DefaultDeployHost
	}
	if c.Git.Remote == "" {
		c.Git.Remote = DefaultRemote
	}
	if c.Git.Branch == "" {
		c.Git.Branch = DefaultBranch
	}
	if c.Preview.Port == 0 {
		c.Preview.Port = DefaultPreviewPort
	}
	if c.History.Path == "" {
		c.History.Path = DefaultHistoryPath
	}
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return founderr.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	exampleConfig := Config{
		PlugsDir:   DefaultPlugsDir,
		DeployHost: DefaultDeployHost,
		Git: GitConfig{
			Remote: DefaultRemote,
			Branch: DefaultBranch,
			Author: AuthorConfig{
				Name:  "Plug Creator",
				Email: "plugs@example.com",
			},
			Auth: &AuthConfig{
				Type:  "token",
				Token: "${GITHUB_TOKEN}",
			},
		},
		Preview: PreviewConfig{Port: DefaultPreviewPort},
		History: HistoryConfig{Path: DefaultHistoryPath},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return founderr.ConfigError("failed to marshal example config").
			WithCause(err).
			Build()
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return founderr.ConfigError("failed to write config file").
			WithCause(err).
			WithContext("path", configPath).
			Build()
	}

	return nil
}

// loadEnvFile loads a .env file from the current directory if present.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load()
}
