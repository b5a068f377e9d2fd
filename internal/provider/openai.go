package provider

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/goetz-markgraf/maach-et/memory"
)

const openAIBaseURL = "https://api.openai.com/v1"

// ErrMissingAPIKey is returned when a backend needs a key that is not set.
var ErrMissingAPIKey = errors.New("missing API key")

// OpenAI uses the chat completions endpoint. The key comes from OPENAI_API_KEY
// unless Config.APIKey is set.
type OpenAI struct {
	url    string
	apiKey string
	model  string
	client *http.Client
}

type openAIRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type openAIResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func NewOpenAI(model string, cfg Config) (*OpenAI, error) {
	key := cfg.APIKey
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	if key == "" {
		return nil, wrap("openai", ErrMissingAPIKey)
	}
	base := cfg.BaseURL
	if base == "" {
		base = openAIBaseURL
	}
	return &OpenAI{url: base + "/chat/completions", apiKey: key, model: model, client: cfg.httpClient()}, nil
}

func (o *OpenAI) Chat(ctx context.Context, system *string, history []memory.Turn, input string) (memory.Turn, error) {
	req := openAIRequest{Model: o.model, Messages: chatMessages(system, history, input)}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+o.apiKey)

	var resp openAIResponse
	if err := postJSON(ctx, o.client, o.url, header, req, &resp); err != nil {
		return memory.Turn{}, wrap("openai", err)
	}
	if len(resp.Choices) == 0 {
		return memory.Turn{}, wrap("openai", ErrEmptyResponse)
	}
	return turnFrom(resp.Choices[0].Message), nil
}
