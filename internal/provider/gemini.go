package provider

import (
	"context"

	"google.golang.org/genai"

	"github.com/goetz-markgraf/maach-et/memory"
)

// Gemini uses the Gemini API through genai. Without Config.APIKey the client
// reads GEMINI_API_KEY or GOOGLE_API_KEY.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, model string, cfg Config) (*Gemini, error) {
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.httpClient(),
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, wrap("gemini", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Chat(ctx context.Context, system *string, history []memory.Turn, input string) (memory.Turn, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, t := range history {
		switch t.Role {
		case memory.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(t.Content, genai.RoleModel))
		case memory.RoleUser:
			contents = append(contents, genai.NewContentFromText(t.Content, genai.RoleUser))
		}
	}
	contents = append(contents, genai.NewContentFromText(input, genai.RoleUser))

	var config *genai.GenerateContentConfig
	if system != nil {
		config = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(*system, genai.RoleUser),
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return memory.Turn{}, wrap("gemini", err)
	}
	text := resp.Text()
	if text == "" {
		return memory.Turn{}, wrap("gemini", ErrEmptyResponse)
	}
	return memory.AssistantTurn(text), nil
}
