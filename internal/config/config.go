package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	APIKeys    APIKeys    `yaml:"api_keys"`
	Sources    Sources    `yaml:"sources"`
	Generation Generation `yaml:"generation"`
	Output     Output     `yaml:"output"`
	Server     Server     `yaml:"server"`
}

// APIKeys names the environment variables holding the secrets. The secrets
// themselves never live in the config file.
type APIKeys struct {
	AnthropicEnv string `yaml:"anthropic_env"`
	TwitterEnv   string `yaml:"twitter_env"`
}

type Sources struct {
	Feeds []Feed `yaml:"feeds"`
}

// Feed is an optional RSS/Atom news source. With no feeds configured the
// news adapter falls back to its built-in topic list.
type Feed struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

type Generation struct {
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

type Output struct {
	DataDir string `yaml:"data_dir"`
}

type Server struct {
	Port int `yaml:"port"`
}

// ConfigDir returns the XDG config directory for wuterm.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "wuterm")
}

// DataDir returns the XDG data directory for wuterm.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "wuterm")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/wuterm/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'wuterm init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		APIKeys: APIKeys{
			AnthropicEnv: "ANTHROPIC_API_KEY",
			TwitterEnv:   "TWITTER_API_KEY",
		},
		Generation: Generation{
			Model:     "claude-sonnet-4-20250514",
			MaxTokens: 500,
		},
		Server: Server{Port: 8000},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

// EntryFile returns the path of the daily entry collection.
func (c *Config) EntryFile() string {
	return filepath.Join(c.GetDataDir(), "wu.json")
}

// PostFile returns the path of the pending post collection.
func (c *Config) PostFile() string {
	return filepath.Join(c.GetDataDir(), "pending-posts.json")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
