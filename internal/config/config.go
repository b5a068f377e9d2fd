// Package config loads maachet's settings: defaults, then an optional YAML
// file, then environment overrides. Command-line flags are applied on top by
// the CLI.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goetz-markgraf/maach-et/internal/dispatch"
	"github.com/goetz-markgraf/maach-et/internal/provider"
)

// DefaultPath is read when no config file is named explicitly.
const DefaultPath = ".maachet.yaml"

type Config struct {
	// Model is "<provider>/<model>".
	Model     string          `yaml:"model" json:"model" jsonschema:"description=Model as provider/model e.g. ollama/qwen2.5-coder"`
	Ollama    OllamaConfig    `yaml:"ollama" json:"ollama"`
	Provider  ProviderConfig  `yaml:"provider" json:"provider"`
	Tools     ToolsConfig     `yaml:"tools" json:"tools"`
	History   HistoryConfig   `yaml:"history" json:"history"`
	Telemetry TelemetryConfig `yaml:"telemetry" json:"telemetry"`
	UI        UIConfig        `yaml:"ui" json:"ui"`
	Preflight bool            `yaml:"preflight" json:"preflight" jsonschema:"description=Ask about uncommitted git changes before starting"`
	Logging   LoggingConfig   `yaml:"logging" json:"logging"`
}

type OllamaConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port" jsonschema:"minimum=1,maximum=65535"`
}

type ProviderConfig struct {
	TimeoutSeconds int   `yaml:"timeout_seconds" json:"timeout_seconds" jsonschema:"minimum=0"`
	MaxTokens      int64 `yaml:"max_tokens" json:"max_tokens" jsonschema:"minimum=0"`
}

type ToolsConfig struct {
	ErrorPolicy    string `yaml:"error_policy" json:"error_policy" jsonschema:"enum=drop,enum=surface"`
	MaxConsecutive int    `yaml:"max_consecutive" json:"max_consecutive" jsonschema:"minimum=0,description=Consecutive tool-output rounds before returning to the user; 0 is unlimited"`
	ReadRoot       string `yaml:"read_root" json:"read_root,omitempty"`
	WriteRoot      string `yaml:"write_root" json:"write_root,omitempty"`
}

type HistoryConfig struct {
	Backend string `yaml:"backend" json:"backend" jsonschema:"enum=json,enum=sqlite,enum=none"`
	Path    string `yaml:"path" json:"path"`
}

type TelemetryConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Dir     string `yaml:"dir" json:"dir,omitempty"`
}

type UIConfig struct {
	Render   bool `yaml:"render" json:"render" jsonschema:"description=Render replies as markdown"`
	WordWrap int  `yaml:"word_wrap" json:"word_wrap" jsonschema:"minimum=0"`
}

type LoggingConfig struct {
	Level string `yaml:"level" json:"level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Model:     "ollama/qwen2.5-coder",
		Ollama:    OllamaConfig{Host: provider.DefaultOllamaHost, Port: provider.DefaultOllamaPort},
		Provider:  ProviderConfig{TimeoutSeconds: int(provider.DefaultTimeout / time.Second)},
		Tools:     ToolsConfig{ErrorPolicy: string(dispatch.PolicyDrop)},
		History:   HistoryConfig{Backend: "json", Path: filepath.Join(".maachet", "history.json")},
		UI:        UIConfig{Render: true, WordWrap: 80},
		Preflight: true,
		Logging:   LoggingConfig{Level: "warn"},
	}
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error unless required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !required:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) applyEnvOverrides() error {
	if m := os.Getenv("MAACHET_MODEL"); m != "" {
		c.Model = m
	}
	if h := os.Getenv("OLLAMA_HOST"); h != "" {
		host, port, err := parseOllamaHost(h)
		if err != nil {
			return fmt.Errorf("OLLAMA_HOST: %w", err)
		}
		c.Ollama.Host = host
		if port != 0 {
			c.Ollama.Port = port
		}
	}
	if p := os.Getenv("MAACHET_ERROR_POLICY"); p != "" {
		c.Tools.ErrorPolicy = p
	}
	if os.Getenv("MAACHET_OBSERVE_JSON") == "1" {
		c.Telemetry.Enabled = true
	}
	return nil
}

// parseOllamaHost accepts "host", "host:port" or a URL such as
// "http://host:port"; port is 0 when absent.
func parseOllamaHost(s string) (string, int, error) {
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	s = strings.TrimSuffix(s, "/")
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		// No port given.
		return s, 0, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port %q", portStr)
	}
	return host, port, nil
}

// Validate checks the settings that would otherwise fail late.
func (c *Config) Validate() error {
	var errs []error
	if _, _, err := provider.ParseModel(c.Model); err != nil {
		errs = append(errs, err)
	}
	if c.Ollama.Port < 1 || c.Ollama.Port > 65535 {
		errs = append(errs, fmt.Errorf("ollama port %d out of range", c.Ollama.Port))
	}
	if _, err := dispatch.ParseErrorPolicy(c.Tools.ErrorPolicy); err != nil {
		errs = append(errs, err)
	}
	if c.Tools.MaxConsecutive < 0 {
		errs = append(errs, fmt.Errorf("tools.max_consecutive must not be negative"))
	}
	switch c.History.Backend {
	case "json", "sqlite", "none":
	default:
		errs = append(errs, fmt.Errorf("unknown history backend %q (want json, sqlite or none)", c.History.Backend))
	}
	return errors.Join(errs...)
}

// ErrorPolicy returns the parsed tools.error_policy; call Validate first.
func (c *Config) ErrorPolicy() dispatch.ErrorPolicy {
	p, err := dispatch.ParseErrorPolicy(c.Tools.ErrorPolicy)
	if err != nil {
		return dispatch.PolicyDrop
	}
	return p
}

// ProviderSettings builds the provider configuration.
func (c *Config) ProviderSettings() provider.Config {
	return provider.Config{
		Model:     c.Model,
		Host:      c.Ollama.Host,
		Port:      c.Ollama.Port,
		MaxTokens: c.Provider.MaxTokens,
		Timeout:   time.Duration(c.Provider.TimeoutSeconds) * time.Second,
	}
}
