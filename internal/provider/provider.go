// Package provider talks to the language-model backends.
//
// Models are named "<provider>/<model>", e.g. "ollama/qwen2.5-coder" or
// "anthropic/claude-3-7-sonnet-latest". Every backend receives the optional
// system prompt, the conversation so far and the next user input, and answers
// with a single assistant turn. Backends do not retry.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goetz-markgraf/maach-et/memory"
)

// DefaultTimeout bounds one HTTP round trip to a backend.
const DefaultTimeout = 300 * time.Second

// ErrEmptyResponse is returned when a backend answers without any text.
var ErrEmptyResponse = errors.New("no response")

// Provider answers one chat request.
type Provider interface {
	Chat(ctx context.Context, system *string, history []memory.Turn, input string) (memory.Turn, error)
}

// Error wraps a failure of the named backend.
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string { return e.Provider + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

func wrap(provider string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Provider: provider, Err: err}
}

// Config selects and configures a backend.
type Config struct {
	// Model is "<provider>/<model>".
	Model string
	// Host and Port address the ollama server.
	Host string
	Port int
	// APIKey overrides the backend's key environment variable.
	APIKey string
	// BaseURL overrides the backend endpoint.
	BaseURL   string
	MaxTokens int64
	Timeout   time.Duration
	// HTTPClient replaces the default client built from Timeout.
	HTTPClient *http.Client
}

// ParseModel splits "<provider>/<model>". The model part may itself contain
// slashes.
func ParseModel(s string) (provider, model string, err error) {
	provider, model, ok := strings.Cut(s, "/")
	if !ok || provider == "" || model == "" {
		return "", "", fmt.Errorf("model %q: want <provider>/<model>", s)
	}
	return provider, model, nil
}

// Names lists the supported backends.
var Names = []string{"anthropic", "gemini", "ollama", "openai"}

// New builds the backend named by cfg.Model.
func New(ctx context.Context, cfg Config) (Provider, error) {
	name, model, err := ParseModel(cfg.Model)
	if err != nil {
		return nil, err
	}
	switch name {
	case "anthropic":
		return NewAnthropic(model, cfg), nil
	case "gemini":
		return NewGemini(ctx, model, cfg)
	case "ollama":
		return NewOllama(model, cfg), nil
	case "openai":
		return NewOpenAI(model, cfg)
	}
	return nil, fmt.Errorf("unknown provider %q (supported: %s)", name, strings.Join(Names, ", "))
}

func (c Config) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
