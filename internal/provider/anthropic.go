package provider

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/goetz-markgraf/maach-et/memory"
)

const defaultMaxTokens = 4096

// Anthropic uses the Messages API. The key comes from ANTHROPIC_API_KEY unless
// Config.APIKey is set.
type Anthropic struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

func NewAnthropic(model string, cfg Config) *Anthropic {
	opts := []option.RequestOption{option.WithHTTPClient(cfg.httpClient())}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Anthropic{
		client:    anthropic.NewClient(opts...),
		model:     anthropic.Model(model),
		maxTokens: maxTokens,
	}
}

func (a *Anthropic) Chat(ctx context.Context, system *string, history []memory.Turn, input string) (memory.Turn, error) {
	msgs := make([]anthropic.MessageParam, 0, len(history)+1)
	for _, t := range history {
		block := anthropic.NewTextBlock(t.Content)
		switch t.Role {
		case memory.RoleAssistant:
			msgs = append(msgs, anthropic.NewAssistantMessage(block))
		case memory.RoleUser:
			msgs = append(msgs, anthropic.NewUserMessage(block))
		}
	}
	msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(input)))

	params := anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages:  msgs,
	}
	if system != nil {
		params.System = []anthropic.TextBlockParam{{Text: *system}}
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return memory.Turn{}, wrap("anthropic", err)
	}
	var parts []string
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok && tb.Text != "" {
			parts = append(parts, tb.Text)
		}
	}
	if len(parts) == 0 {
		return memory.Turn{}, wrap("anthropic", ErrEmptyResponse)
	}
	return memory.AssistantTurn(strings.Join(parts, "\n")), nil
}
