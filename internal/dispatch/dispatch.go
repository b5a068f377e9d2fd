// Package dispatch matches parsed invocations to tool definitions and runs them.
//
// Every matched invocation is executed for its side effects until one produces
// surfaced output; that output is returned and later invocations are skipped.
// Names without a matching definition are ignored. Failing tools are collected
// as ExecutionErrors and never stop the pass.
package dispatch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goetz-markgraf/maach-et/internal/invocation"
	"github.com/goetz-markgraf/maach-et/internal/telemetry"
	"github.com/goetz-markgraf/maach-et/tools"
)

// ExecutionError is a failure attributable to one tool.
type ExecutionError struct {
	Tool      string
	Parameter *string
	Err       error
}

func (e *ExecutionError) Error() string {
	if e.Parameter != nil {
		return fmt.Sprintf("tool %s %s: %v", e.Tool, *e.Parameter, e.Err)
	}
	return fmt.Sprintf("tool %s: %v", e.Tool, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// Outcome is the result of one dispatch pass.
type Outcome struct {
	// Output is the first surfaced tool result; valid only when HasOutput.
	Output    string
	HasOutput bool
	Errors    []*ExecutionError
	// Executed lists the indicators run, in execution order.
	Executed []string
}

// Dispatcher runs invocations against a fixed, ordered set of tools.
type Dispatcher struct {
	tools  []tools.ToolDefinition
	logger *zap.Logger
}

func New(defs []tools.ToolDefinition, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{tools: defs, logger: logger}
}

// Dispatch is shorthand for New(defs, nil).Dispatch(ctx, invs).
func Dispatch(ctx context.Context, invs []invocation.Invocation, defs []tools.ToolDefinition) Outcome {
	return New(defs, nil).Dispatch(ctx, invs)
}

func (d *Dispatcher) Dispatch(ctx context.Context, invs []invocation.Invocation) Outcome {
	var out Outcome
	for _, inv := range invs {
		matched := false
		for i := range d.tools {
			def := &d.tools[i]
			if def.Indicator != inv.Name {
				continue
			}
			matched = true
			out.Executed = append(out.Executed, def.Indicator)

			res, err := d.exec(ctx, def, inv)
			if err != nil {
				out.Errors = append(out.Errors, err)
				continue
			}
			if text, ok := res.Text(); ok {
				out.Output, out.HasOutput = text, true
				return out
			}
		}
		if !matched {
			d.logger.Debug("no tool for block", zap.String("name", inv.Name))
		}
	}
	return out
}

func (d *Dispatcher) exec(ctx context.Context, def *tools.ToolDefinition, inv invocation.Invocation) (tools.Result, *ExecutionError) {
	turnID, _ := telemetry.TurnIDFromContext(ctx)
	paramSize := 0
	if inv.Parameter != nil {
		paramSize = len(*inv.Parameter)
	}
	emit := func(elapsed time.Duration, outSize int, errStr string) {
		fields := map[string]any{
			"tool_name":   def.Indicator,
			"duration_ms": elapsed.Milliseconds(),
			"has_param":   inv.Parameter != nil,
			"param_size":  paramSize,
			"input_size":  len(inv.Content),
			"output_size": outSize,
			"turn_id":     turnID,
			"error":       nil,
		}
		if errStr != "" {
			fields["error"] = errStr
		}
		telemetry.Emit("tool_exec", fields)
	}

	start := time.Now()
	res, err := def.Function(ctx, inv.Parameter, inv.Content)
	if err != nil {
		// Generic string only, the error text may quote file content.
		emit(time.Since(start), 0, "tool error")
		d.logger.Warn("tool failed", zap.String("tool", def.Indicator), zap.Error(err))
		return tools.Result{}, &ExecutionError{Tool: def.Indicator, Parameter: inv.Parameter, Err: err}
	}
	text, _ := res.Text()
	emit(time.Since(start), len(text), "")
	d.logger.Debug("tool executed", zap.String("tool", def.Indicator), zap.Int("output_size", len(text)))
	return res, nil
}
