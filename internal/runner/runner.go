package runner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goetz-markgraf/maach-et/internal/dispatch"
	"github.com/goetz-markgraf/maach-et/internal/invocation"
	"github.com/goetz-markgraf/maach-et/internal/telemetry"
	"github.com/goetz-markgraf/maach-et/memory"
	"github.com/goetz-markgraf/maach-et/tools"
)

// Provider answers one request given the system prompt, the history so far and
// the next input.
type Provider interface {
	Chat(ctx context.Context, system *string, history []memory.Turn, input string) (memory.Turn, error)
}

type Runner struct {
	Provider Provider
	Tools    []tools.ToolDefinition
	// System is sent with every request and never stored in Log.
	System *string
	Log    *memory.Log
	// Store, when set, receives a snapshot of Log after every exchange.
	Store  memory.Store
	View   View
	Logger *zap.Logger

	ErrorPolicy dispatch.ErrorPolicy
	// MaxToolFeeds caps consecutive tool-output inputs; 0 means no cap.
	MaxToolFeeds int

	toolFeeds int
}

// New returns a runner with an empty log, no view and a no-op logger.
func New(p Provider, defs []tools.ToolDefinition) *Runner {
	return &Runner{
		Provider:    p,
		Tools:       defs,
		Log:         memory.NewLog(),
		View:        nopView{},
		Logger:      zap.NewNop(),
		ErrorPolicy: dispatch.PolicyDrop,
	}
}

// Run drives the session until it reaches a terminal state. The returned error
// is the provider failure when the final state is Error.
func (r *Runner) Run(ctx context.Context, lines <-chan string) (State, error) {
	r.defaults()
	d := dispatch.New(r.Tools, r.Logger)

	state, eff := Start()
	var failure error
	for {
		var ev Event
		switch eff.Kind {
		case ReadLine:
			r.View.Prompt()
			line, ok := next(ctx, lines)
			if !ok {
				ev = EndOfInput()
			} else {
				ev = Line(line)
			}
		case Submit:
			if ctx.Err() != nil {
				ev = EndOfInput()
				break
			}
			ev = r.exchange(ctx, d, state, eff.Input)
			if ev.Kind == EventProviderFailed {
				failure = ev.Err
				r.View.Diagnostic(fmt.Sprintf("error: %v", ev.Err))
			}
		default:
			r.Logger.Debug("session ended", zap.Stringer("state", state))
			return state, failure
		}
		prev := state
		state, eff = Transition(state, ev)
		if state != prev {
			r.Logger.Debug("transition", zap.Stringer("from", prev), zap.Stringer("to", state))
		}
	}
}

func (r *Runner) defaults() {
	if r.Log == nil {
		r.Log = memory.NewLog()
	}
	if r.View == nil {
		r.View = nopView{}
	}
	if r.Logger == nil {
		r.Logger = zap.NewNop()
	}
}

// exchange performs one request/response cycle from state with input and
// reports its result as an event.
func (r *Runner) exchange(ctx context.Context, d *dispatch.Dispatcher, state State, input string) Event {
	source := "user"
	if state == ToolInput {
		source = "tool"
		r.toolFeeds++
	} else {
		r.toolFeeds = 0
	}

	ctx, turnID := telemetry.NewTurn(ctx)
	start := time.Now()
	history := r.Log.Snapshot()
	telemetry.Emit("turn_start", map[string]any{
		"turn_id":     turnID,
		"source":      source,
		"input_size":  len(input),
		"history_len": len(history),
	})
	telemetry.EmitTextFeatures(ctx, source, input)

	r.View.Thinking()
	reply, err := r.Provider.Chat(ctx, r.System, history, input)
	if err != nil {
		r.Logger.Error("provider request failed", zap.String("turn_id", turnID), zap.Error(err))
		telemetry.Emit("turn_complete", map[string]any{
			"turn_id":     turnID,
			"duration_ms": time.Since(start).Milliseconds(),
			"error":       "provider error",
		})
		return ProviderFailed(err)
	}

	r.Log.Append(memory.UserTurn(input), memory.AssistantTurn(reply.Content))
	r.persist()
	r.View.Reply(reply.Content)
	telemetry.EmitTextFeatures(ctx, "assistant", reply.Content)

	invs := invocation.Parse(reply.Content)
	outcome := d.Dispatch(ctx, invs)
	feedback, ok := outcome.Feedback(r.ErrorPolicy)

	if ok && r.MaxToolFeeds > 0 && r.toolFeeds >= r.MaxToolFeeds {
		r.Logger.Warn("tool feed limit reached", zap.Int("limit", r.MaxToolFeeds))
		r.View.Diagnostic(fmt.Sprintf("stopped feeding tool output after %d consecutive rounds", r.MaxToolFeeds))
		feedback, ok = "", false
	}
	if ok {
		r.View.ToolFeedback(feedback)
	}

	telemetry.Emit("turn_complete", map[string]any{
		"turn_id":      turnID,
		"duration_ms":  time.Since(start).Milliseconds(),
		"reply_size":   len(reply.Content),
		"invocations":  len(invs),
		"executed":     len(outcome.Executed),
		"tool_errors":  len(outcome.Errors),
		"has_feedback": ok,
		"error":        nil,
	})
	return Replied(feedback, ok)
}

func (r *Runner) persist() {
	if r.Store == nil {
		return
	}
	if err := r.Store.Save(r.Log.Snapshot()); err != nil {
		r.Logger.Warn("failed to save conversation", zap.Error(err))
	}
}
