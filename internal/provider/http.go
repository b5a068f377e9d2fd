package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/goetz-markgraf/maach-et/memory"
)

// chatMessage is the {role, content} shape shared by the ollama and OpenAI
// chat endpoints.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func chatMessages(system *string, history []memory.Turn, input string) []chatMessage {
	msgs := make([]chatMessage, 0, len(history)+2)
	if system != nil {
		msgs = append(msgs, chatMessage{Role: memory.RoleSystem.String(), Content: *system})
	}
	for _, t := range history {
		msgs = append(msgs, chatMessage{Role: t.Role.String(), Content: t.Content})
	}
	return append(msgs, chatMessage{Role: memory.RoleUser.String(), Content: input})
}

// turnFrom converts a backend reply, tolerating unknown role names.
func turnFrom(m chatMessage) memory.Turn {
	role, err := memory.ParseRole(m.Role)
	if err != nil {
		role = memory.RoleAssistant
	}
	return memory.Turn{Role: role, Content: m.Content}
}

// postJSON sends body as JSON and decodes a 2xx answer into out.
func postJSON(ctx context.Context, client *http.Client, url string, header http.Header, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, bytes.TrimSpace(respBody))
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
