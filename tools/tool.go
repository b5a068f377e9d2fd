package tools

import (
	"context"
	"errors"
)

// ErrMissingParameter is returned by tools whose header parameter is required.
var ErrMissingParameter = errors.New("missing required parameter")

// Func executes one invocation. param is nil when the block header had no parameter.
type Func func(ctx context.Context, param *string, content string) (Result, error)

// ToolDefinition is a named capability matched against an invocation's name.
type ToolDefinition struct {
	Indicator   string
	Description string
	Function    Func
}

// Result is the outcome of a successful execution.
type Result struct {
	text      string
	hasOutput bool
}

// NoOutput is the result of a tool that only has side effects.
func NoOutput() Result { return Result{} }

// Output is the result of a tool whose text is fed back into the conversation.
func Output(text string) Result { return Result{text: text, hasOutput: true} }

// Text returns the surfaced text and whether there is any.
func (r Result) Text() (string, bool) { return r.text, r.hasOutput }

func requireParam(param *string) (string, error) {
	if param == nil || *param == "" {
		return "", ErrMissingParameter
	}
	return *param, nil
}
