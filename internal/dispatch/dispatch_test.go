package dispatch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goetz-markgraf/maach-et/internal/dispatch"
	"github.com/goetz-markgraf/maach-et/internal/invocation"
	"github.com/goetz-markgraf/maach-et/tools"
)

// recorder builds tool definitions that log every call in order.
type recorder struct {
	calls []string
}

func (r *recorder) silent(name string) tools.ToolDefinition {
	return tools.ToolDefinition{Indicator: name, Function: func(_ context.Context, _ *string, _ string) (tools.Result, error) {
		r.calls = append(r.calls, name)
		return tools.NoOutput(), nil
	}}
}

func (r *recorder) output(name, text string) tools.ToolDefinition {
	return tools.ToolDefinition{Indicator: name, Function: func(_ context.Context, _ *string, _ string) (tools.Result, error) {
		r.calls = append(r.calls, name)
		return tools.Output(text), nil
	}}
}

func (r *recorder) failing(name string, err error) tools.ToolDefinition {
	return tools.ToolDefinition{Indicator: name, Function: func(_ context.Context, _ *string, _ string) (tools.Result, error) {
		r.calls = append(r.calls, name)
		return tools.Result{}, err
	}}
}

func invs(names ...string) []invocation.Invocation {
	out := make([]invocation.Invocation, 0, len(names))
	for _, n := range names {
		out = append(out, invocation.Invocation{Name: n})
	}
	return out
}

func TestDispatch_SilentThenOutput(t *testing.T) {
	rec := &recorder{}
	defs := []tools.ToolDefinition{rec.silent("c1"), rec.silent("c2"), rec.output("c3", "X")}

	got := dispatch.Dispatch(context.Background(), invs("c1", "c2", "c3"), defs)

	require.True(t, got.HasOutput)
	assert.Equal(t, "X", got.Output)
	assert.Equal(t, []string{"c1", "c2", "c3"}, rec.calls)
	assert.Equal(t, []string{"c1", "c2", "c3"}, got.Executed)
	assert.Empty(t, got.Errors)
}

func TestDispatch_ShortCircuitsAfterFirstOutput(t *testing.T) {
	rec := &recorder{}
	defs := []tools.ToolDefinition{rec.output("read", "X"), rec.silent("save"), rec.output("ls", "Y")}

	got := dispatch.Dispatch(context.Background(), invs("read", "save", "ls"), defs)

	require.True(t, got.HasOutput)
	assert.Equal(t, "X", got.Output)
	assert.Equal(t, []string{"read"}, rec.calls)
}

func TestDispatch_NoOutputAfterAllAttempts(t *testing.T) {
	rec := &recorder{}
	defs := []tools.ToolDefinition{rec.silent("save"), rec.silent("append")}

	got := dispatch.Dispatch(context.Background(), invs("save", "append", "save"), defs)

	assert.False(t, got.HasOutput)
	assert.Empty(t, got.Output)
	assert.Equal(t, []string{"save", "append", "save"}, rec.calls)
}

func TestDispatch_UnknownNamesSkipped(t *testing.T) {
	rec := &recorder{}
	defs := []tools.ToolDefinition{rec.output("ls", "listing")}

	got := dispatch.Dispatch(context.Background(), invs("go", "python", "ls"), defs)

	require.True(t, got.HasOutput)
	assert.Equal(t, "listing", got.Output)
	assert.Equal(t, []string{"ls"}, got.Executed)
	assert.Empty(t, got.Errors)
}

func TestDispatch_ErrorsCollectedAndPassContinues(t *testing.T) {
	boom := errors.New("boom")
	rec := &recorder{}
	defs := []tools.ToolDefinition{rec.failing("save", boom), rec.output("read", "contents")}
	param := "a.txt"
	in := []invocation.Invocation{{Name: "save", Parameter: &param}, {Name: "read"}}

	got := dispatch.Dispatch(context.Background(), in, defs)

	require.True(t, got.HasOutput)
	assert.Equal(t, "contents", got.Output)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, "save", got.Errors[0].Tool)
	assert.ErrorIs(t, got.Errors[0], boom)
	assert.Equal(t, "tool save a.txt: boom", got.Errors[0].Error())
}

func TestDispatch_RegistryOrderWithinOneInvocation(t *testing.T) {
	rec := &recorder{}
	defs := []tools.ToolDefinition{rec.silent("dup"), rec.output("dup", "second")}

	got := dispatch.Dispatch(context.Background(), invs("dup"), defs)

	assert.Equal(t, "second", got.Output)
	assert.Equal(t, []string{"dup", "dup"}, rec.calls)
}

func TestDispatch_PassesParameterAndContent(t *testing.T) {
	var gotParam *string
	var gotContent string
	defs := []tools.ToolDefinition{{Indicator: "save", Function: func(_ context.Context, p *string, c string) (tools.Result, error) {
		gotParam, gotContent = p, c
		return tools.NoOutput(), nil
	}}}
	param := "notes.md"

	dispatch.Dispatch(context.Background(), []invocation.Invocation{{Name: "save", Parameter: &param, Content: "body"}}, defs)

	require.NotNil(t, gotParam)
	assert.Equal(t, "notes.md", *gotParam)
	assert.Equal(t, "body", gotContent)
}

func TestDispatch_EmptyInvocations(t *testing.T) {
	got := dispatch.Dispatch(context.Background(), nil, tools.Registry())
	assert.Equal(t, dispatch.Outcome{}, got)
}
