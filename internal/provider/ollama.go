package provider

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goetz-markgraf/maach-et/memory"
)

const (
	DefaultOllamaHost = "localhost"
	DefaultOllamaPort = 11434
)

// Ollama uses the non-streaming /api/chat endpoint of an ollama server.
type Ollama struct {
	url    string
	model  string
	client *http.Client
}

type ollamaRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type ollamaResponse struct {
	Model   string      `json:"model"`
	Message chatMessage `json:"message"`
}

func NewOllama(model string, cfg Config) *Ollama {
	base := cfg.BaseURL
	if base == "" {
		host, port := cfg.Host, cfg.Port
		if host == "" {
			host = DefaultOllamaHost
		}
		if port == 0 {
			port = DefaultOllamaPort
		}
		base = fmt.Sprintf("http://%s:%d", host, port)
	}
	return &Ollama{url: base + "/api/chat", model: model, client: cfg.httpClient()}
}

func (o *Ollama) Chat(ctx context.Context, system *string, history []memory.Turn, input string) (memory.Turn, error) {
	req := ollamaRequest{
		Model:    o.model,
		Messages: chatMessages(system, history, input),
		Stream:   false,
	}
	var resp ollamaResponse
	if err := postJSON(ctx, o.client, o.url, nil, req, &resp); err != nil {
		return memory.Turn{}, wrap("ollama", err)
	}
	if resp.Message.Content == "" {
		return memory.Turn{}, wrap("ollama", ErrEmptyResponse)
	}
	return turnFrom(resp.Message), nil
}
