// Package config loads and validates the adapter configuration from an
// optional YAML file and the environment. Environment variables always win.
package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// emailPattern is deliberately loose: one @, something on both sides, a dot
// in the domain. The backend does the real validation.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Config represents the application configuration
type Config struct {
	Jira    JiraConfig    `yaml:"jira"`
	OpenAI  OpenAIConfig  `yaml:"openai"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// JiraConfig holds the backend connection settings
type JiraConfig struct {
	BaseURL  string `yaml:"baseUrl"`
	Email    string `yaml:"email"`
	APIToken string `yaml:"apiToken"`
}

// OpenAIConfig holds the AI-provider settings reserved for the estimation
// heuristic
type OpenAIConfig struct {
	APIKey string `yaml:"apiKey"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Addr     string `yaml:"addr"`
	BasePath string `yaml:"basePath"`
}

// LoggingConfig holds the logger settings
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration defaults applied before file and
// environment values.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Addr: ":8080"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load builds the configuration: defaults, then the YAML file when filepath
// is non-empty, then environment overrides. Validation is the caller's step
// so it can decide how to fail.
func Load(filepath string) (*Config, error) {
	config := Default()

	if filepath != "" {
		data, err := os.ReadFile(filepath)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal config")
		}
	}

	config.overrideWithEnv()
	return config, nil
}

// overrideWithEnv overrides configuration with environment variables
func (c *Config) overrideWithEnv() {
	if baseURL := os.Getenv("JIRA_BASE_URL"); baseURL != "" {
		c.Jira.BaseURL = baseURL
	}
	if email := os.Getenv("JIRA_API_EMAIL"); email != "" {
		c.Jira.Email = email
	}
	if token := os.Getenv("JIRA_API_TOKEN"); token != "" {
		c.Jira.APIToken = token
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		c.OpenAI.APIKey = apiKey
	}
	if addr := os.Getenv("MCP_HTTP_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if basePath := os.Getenv("MCP_HTTP_BASE_PATH"); basePath != "" {
		c.Server.BasePath = basePath
	}
	if level := os.Getenv("MCP_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if dev := os.Getenv("MCP_LOG_DEV"); dev != "" {
		c.Logging.Development = strings.EqualFold(dev, "true") || dev == "1"
	}
}

// Validate checks every required setting and reports all problems at once.
// The process must refuse to start on any of them.
func (c *Config) Validate() error {
	var problems []string

	switch {
	case c.Jira.BaseURL == "":
		problems = append(problems, "jira.baseUrl (JIRA_BASE_URL) is required")
	default:
		u, err := url.Parse(c.Jira.BaseURL)
		if err != nil || !u.IsAbs() || u.Host == "" {
			problems = append(problems, fmt.Sprintf("jira.baseUrl %q is not an absolute URL", c.Jira.BaseURL))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			problems = append(problems, fmt.Sprintf("jira.baseUrl %q must use http or https", c.Jira.BaseURL))
		}
	}

	switch {
	case c.Jira.Email == "":
		problems = append(problems, "jira.email (JIRA_API_EMAIL) is required")
	case !emailPattern.MatchString(c.Jira.Email):
		problems = append(problems, fmt.Sprintf("jira.email %q is not a valid email address", c.Jira.Email))
	}

	if c.Jira.APIToken == "" {
		problems = append(problems, "jira.apiToken (JIRA_API_TOKEN) is required")
	}
	if c.OpenAI.APIKey == "" {
		problems = append(problems, "openai.apiKey (OPENAI_API_KEY) is required")
	}

	if len(problems) > 0 {
		return errors.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
