package agent

import (
	"context"
	"fmt"

	"github.com/goetz-markgraf/maach-et/memory"
)

// Provider answers one chat request.
type Provider interface {
	Chat(ctx context.Context, system *string, history []memory.Turn, input string) (memory.Turn, error)
}

// Context is the state one agent carries across tasks.
type Context struct {
	SystemPrompt string
	History      *memory.Log
}

func NewContext(systemPrompt string) *Context {
	return &Context{SystemPrompt: systemPrompt, History: memory.NewLog()}
}

// Agent processes a task within a context.
type Agent interface {
	Description() string
	ProcessTask(ctx context.Context, c *Context, task string) (Response, error)
}

// Basic asks the provider once per task and classifies the reply.
type Basic struct {
	description string
	provider    Provider
}

func NewBasic(description string, p Provider) *Basic {
	return &Basic{description: description, provider: p}
}

func (b *Basic) Description() string { return b.description }

// ProcessTask sends task with the context's history, then records the task and
// the reply in that history. On failure the history is left unchanged.
func (b *Basic) ProcessTask(ctx context.Context, c *Context, task string) (Response, error) {
	if c.History == nil {
		c.History = memory.NewLog()
	}
	system := c.SystemPrompt
	reply, err := b.provider.Chat(ctx, &system, c.History.Snapshot(), task)
	if err != nil {
		return nil, fmt.Errorf("process task: %w", err)
	}
	c.History.Append(memory.UserTurn(task), memory.AssistantTurn(reply.Content))
	return Classify(reply.Content), nil
}
